//go:build integration

package redis_test

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/nrisk/library-api/book"
	bookredis "github.com/nrisk/library-api/book/redis"
	"github.com/stretchr/testify/require"
	testcontainersredis "github.com/testcontainers/testcontainers-go/modules/redis"
)

/* Test helpers for the Redis cache integration suite
 * Run with: go test -tags=integration ./book/redis/...
 */

// RedisContainer holds the Redis testcontainer and connection details
type RedisContainer struct {
	Container *testcontainersredis.RedisContainer
	Addr      string
}

// SetupRedisContainer creates and starts a Redis testcontainer
func SetupRedisContainer(t *testing.T, ctx context.Context) (*RedisContainer, func()) {
	t.Helper()

	redisContainer, err := testcontainersredis.Run(ctx, "redis:7-alpine")
	require.NoError(t, err, "failed to start Redis container")

	addr, err := redisContainer.ConnectionString(ctx)
	require.NoError(t, err, "failed to get Redis connection string")
	addr = strings.TrimPrefix(addr, "redis://")

	rc := &RedisContainer{
		Container: redisContainer,
		Addr:      addr,
	}

	cleanup := func() {
		if err := redisContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate Redis container: %v", err)
		}
	}

	return rc, cleanup
}

// CreateTestRepository wraps a memory-backed inner repository with the
// Redis cache under test
func CreateTestRepository(t *testing.T, addr string, inner book.Repository, ttl time.Duration) *bookredis.Repository {
	t.Helper()

	repo, err := bookredis.NewRepository(inner, addr, "", 0, ttl)
	require.NoError(t, err)
	return repo
}

/* memoryRepository is the inner source of truth for the cache tests.
 * It counts reads so the tests can tell cache hits from misses.
 */
type memoryRepository struct {
	mu     sync.Mutex
	nextID int64
	books  map[int64]book.Book

	GetCalls       int
	GetByISBNCalls int
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{
		nextID: 1,
		books:  make(map[int64]book.Book),
	}
}

func (m *memoryRepository) Get(_ context.Context, id int64) (book.Book, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GetCalls++
	b, ok := m.books[id]
	if !ok {
		return book.Book{}, book.ErrNotFound
	}
	return b, nil
}

func (m *memoryRepository) GetByISBN(_ context.Context, isbn string) (book.Book, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GetByISBNCalls++
	for _, b := range m.books {
		if b.ISBN == isbn {
			return b, nil
		}
	}
	return book.Book{}, book.ErrNotFound
}

func (m *memoryRepository) ExistsByISBN(_ context.Context, isbn string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, b := range m.books {
		if b.ISBN == isbn {
			return true, nil
		}
	}
	return false, nil
}

func (m *memoryRepository) Insert(_ context.Context, b book.Book) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b.ID = m.nextID
	m.nextID++
	m.books[b.ID] = b
	return b.ID, nil
}

func (m *memoryRepository) Update(_ context.Context, b book.Book) (book.Book, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.books[b.ID]; !ok {
		return book.Book{}, book.ErrNotFound
	}
	m.books[b.ID] = b
	return b, nil
}

func (m *memoryRepository) Delete(_ context.Context, b book.Book) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.books[b.ID]; !ok {
		return book.ErrNotFound
	}
	delete(m.books, b.ID)
	return nil
}

func (m *memoryRepository) Find(_ context.Context, f book.Filter, req book.PageRequest) (book.Page, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	req = req.Normalize()
	var matched []book.Book
	for _, b := range m.books {
		if f.Title != "" && b.Title != f.Title {
			continue
		}
		if f.Author != "" && b.Author != f.Author {
			continue
		}
		if f.ISBN != "" && b.ISBN != f.ISBN {
			continue
		}
		matched = append(matched, b)
	}
	return book.Page{Content: matched, Total: int64(len(matched)), Page: req.Page, Size: req.Size}, nil
}

func (m *memoryRepository) Close(context.Context) error {
	return nil
}
