package repository

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/AakashShah07/Web-Development-Assesment/internal/config"
	"github.com/AakashShah07/Web-Development-Assesment/internal/domain"
)

func newTestSchoolRepository(t *testing.T) SchoolRepository {
	t.Helper()

	db, err := OpenDB(context.Background(), config.DBConfig{Driver: "sqlite", DSN: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repo := NewSchoolRepository(db, zap.NewNop())
	require.NoError(t, repo.Migrate(context.Background()))
	return repo
}

func sampleSchool(name string) domain.NewSchool {
	return domain.NewSchool{
		Name:    name,
		Address: "123 Oak Street",
		City:    "Springfield",
		State:   "CA",
		Contact: "5551234567",
		Image:   "/schoolImages/a.png",
		EmailID: "office@example.edu",
	}
}

func TestSchoolRepositoryListEmpty(t *testing.T) {
	repo := newTestSchoolRepository(t)

	schools, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, schools)
	assert.Empty(t, schools)
}

func TestSchoolRepositoryCreateAndList(t *testing.T) {
	repo := newTestSchoolRepository(t)
	ctx := context.Background()

	first, err := repo.Create(ctx, sampleSchool("Greenwood"))
	require.NoError(t, err)
	second, err := repo.Create(ctx, sampleSchool("Riverside"))
	require.NoError(t, err)
	assert.NotEqual(t, first, second)

	schools, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, schools, 2)

	assert.Equal(t, first, schools[0].ID)
	assert.Equal(t, "Greenwood", schools[0].Name)
	assert.Equal(t, "/schoolImages/a.png", schools[0].Image)
	assert.Equal(t, "office@example.edu", schools[0].EmailID)
	assert.False(t, schools[0].CreatedAt.IsZero())
	assert.Equal(t, second, schools[1].ID)
}

func TestSchoolRepositoryConcurrentCreatesGetDistinctIDs(t *testing.T) {
	repo := newTestSchoolRepository(t)

	const n = 20
	ids := make(chan int64, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id, err := repo.Create(context.Background(), sampleSchool("Concurrent"))
			assert.NoError(t, err)
			ids <- id
		}()
	}
	wg.Wait()
	close(ids)

	seen := map[int64]bool{}
	for id := range ids {
		assert.False(t, seen[id], "duplicate id %d", id)
		seen[id] = true
	}
	assert.Len(t, seen, n)
}

func TestSchoolRepositoryFailsOnClosedDB(t *testing.T) {
	db, err := OpenDB(context.Background(), config.DBConfig{Driver: "sqlite", DSN: ":memory:"})
	require.NoError(t, err)
	repo := NewSchoolRepository(db, zap.NewNop())
	require.NoError(t, repo.Migrate(context.Background()))
	require.NoError(t, db.Close())

	_, err = repo.Create(context.Background(), sampleSchool("Closed"))
	assert.Error(t, err)
	_, err = repo.List(context.Background())
	assert.Error(t, err)
}
