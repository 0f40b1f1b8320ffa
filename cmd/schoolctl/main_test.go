package main

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCLI(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestListPrintsDisplayItems(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":[{"id":1,"name":"A","image":"/schoolImages/a.png"}]}`))
	}))
	defer ts.Close()

	out, _, err := runCLI(t, "list", "--api", ts.URL)
	require.NoError(t, err)
	assert.Equal(t, "1\tA\tNo address provided, Unknown city\t"+ts.URL+"/schoolImages/a.png\n", out)
}

func TestListEmptyAndFailure(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	}))
	defer ts.Close()

	out, _, err := runCLI(t, "list", "--api", ts.URL)
	require.NoError(t, err)
	assert.Equal(t, "No schools found, add the first one!\n", out)

	broken := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"Failed to fetch schools"}`, http.StatusInternalServerError)
	}))
	defer broken.Close()

	_, errOut, err := runCLI(t, "list", "--api", broken.URL)
	assert.Error(t, err)
	assert.Equal(t, "Failed to load schools.\n", errOut)
}

func TestAddValidatesLocallyWithoutCallingServer(t *testing.T) {
	called := false
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer ts.Close()

	_, errOut, err := runCLI(t, "add", "--api", ts.URL, "--name", "A", "--contact", "123")
	assert.Error(t, err)
	assert.Contains(t, errOut, "Contact must be a 10-digit number")
	assert.Contains(t, errOut, "Image is required")
	assert.False(t, called)
}
