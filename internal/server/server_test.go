package server

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/AakashShah07/Web-Development-Assesment/internal/config"
	"github.com/AakashShah07/Web-Development-Assesment/internal/repository"
)

var pngBytes = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x06\x00\x00\x00\x1f\x15\xc4\x89")

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func newTestServer(t *testing.T) (http.Handler, *observer.ObservedLogs) {
	t.Helper()

	cfg := &config.Config{
		Server:  config.ServerConfig{Host: "127.0.0.1", Port: "0", CORSOrigins: []string{"*"}},
		DB:      config.DBConfig{Driver: "sqlite", DSN: ":memory:"},
		Storage: config.StorageConfig{Driver: "local", LocalDir: t.TempDir(), PublicPrefix: "/schoolImages"},
		Upload:  config.UploadConfig{MaxSize: 1 << 20, AllowedFormats: []string{".png", ".jpg", ".jpeg"}},
	}

	db, err := repository.OpenDB(context.Background(), cfg.DB)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	core, logs := observer.New(zap.InfoLevel)
	srv, err := New(context.Background(), cfg, db, zap.New(core))
	require.NoError(t, err)

	return srv.Handler(), logs
}

func upload(t *testing.T, h http.Handler, field, filename string, data []byte) *httptest.ResponseRecorder {
	t.Helper()

	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	if field != "" {
		fw, err := mw.CreateFormFile(field, filename)
		require.NoError(t, err)
		_, err = fw.Write(data)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/upload", body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func postJSON(h http.Handler, path string, v any) *httptest.ResponseRecorder {
	data, _ := json.Marshal(v)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func get(h http.Handler, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func schoolPayload(image string) map[string]string {
	return map[string]string{
		"name":     "Greenwood Elementary",
		"address":  "123 Oak Street",
		"city":     "Springfield",
		"state":    "CA",
		"contact":  "5551234567",
		"image":    image,
		"email_id": "office@greenwood.edu",
	}
}

func TestUploadCreateAndList(t *testing.T) {
	h, _ := newTestServer(t)

	rec := upload(t, h, "image", "campus.png", pngBytes)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var uploaded map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &uploaded))
	path, _ := uploaded["imagePath"].(string)
	require.True(t, strings.HasPrefix(path, "/schoolImages/"), path)
	assert.Equal(t, path, uploaded["path"])
	assert.Equal(t, path, uploaded["url"])

	static := get(h, path)
	require.Equal(t, http.StatusOK, static.Code)
	assert.Equal(t, pngBytes, static.Body.Bytes())

	rec = postJSON(h, "/api/schools", schoolPayload(path))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created struct {
		Message string `json:"message"`
		ID      int64  `json:"id"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, "School added successfully", created.Message)
	assert.NotZero(t, created.ID)

	rec = get(h, "/api/schools")
	require.Equal(t, http.StatusOK, rec.Code)

	var schools []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &schools))
	require.Len(t, schools, 1)
	assert.EqualValues(t, created.ID, schools[0]["id"])
	assert.Equal(t, path, schools[0]["image"])
	assert.Equal(t, "Springfield", schools[0]["city"])
}

func TestListSchoolsEmptyIsArray(t *testing.T) {
	h, _ := newTestServer(t)

	rec := get(h, "/api/schools")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestCreateSchoolValidation(t *testing.T) {
	h, _ := newTestServer(t)

	payload := schoolPayload("/schoolImages/missing.png")
	delete(payload, "city")
	payload["contact"] = "123"

	rec := postJSON(h, "/api/schools", payload)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body struct {
		Error  string            `json:"error"`
		Fields map[string]string `json:"fields"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "City is required", body.Fields["city"])
	assert.Equal(t, "Contact must be a 10-digit number", body.Fields["contact"])

	assert.JSONEq(t, `[]`, get(h, "/api/schools").Body.String())
}

func TestCreateSchoolRejectsUnknownImage(t *testing.T) {
	h, _ := newTestServer(t)

	rec := postJSON(h, "/api/schools", schoolPayload("/schoolImages/never-uploaded.png"))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "upload it first")
}

func TestCreateSchoolMalformedBody(t *testing.T) {
	h, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/schools", strings.NewReader("{not json"))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUploadWithoutFile(t *testing.T) {
	h, _ := newTestServer(t)

	rec := upload(t, h, "", "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"No image file provided"}`, rec.Body.String())
}

func TestUploadRejectsNonImage(t *testing.T) {
	h, _ := newTestServer(t)

	rec := upload(t, h, "image", "notes.png", []byte("plain text"))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "not an image")
}

func TestHealthAndRequestLogging(t *testing.T) {
	h, logs := newTestServer(t)

	rec := get(h, "/health")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"OK"}`, rec.Body.String())

	entries := logs.FilterMessage("Request handled").All()
	require.NotEmpty(t, entries)
	assert.Equal(t, "/health", entries[len(entries)-1].ContextMap()["path"])
}

func TestCORSPreflight(t *testing.T) {
	h, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/schools", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}
