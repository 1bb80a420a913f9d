package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/nrisk/library-api/book"
	"github.com/redis/go-redis/v9"
)

/* Read-through cache implementation of book.Repository
 * Wraps another repository and keeps Get/GetByISBN results in Redis
 * hashes with a TTL. Existence checks and Find always go to the inner
 * repository: the uniqueness rule must see the source of truth.
 */

const (
	idKeyPrefix   = "book:id"   // Hash naming: book:id:{book_id}
	isbnKeyPrefix = "book:isbn" // Hash naming: book:isbn:{isbn}
)

type Repository struct {
	inner  book.Repository
	client *redis.Client
	ttl    time.Duration
}

// NewRepository creates a caching repository around inner
func NewRepository(inner book.Repository, addr, password string, db int, ttl time.Duration) (*Repository, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connecting to Redis: %w", err)
	}

	return &Repository{
		inner:  inner,
		client: client,
		ttl:    ttl,
	}, nil
}

// Get returns the cached book when present, otherwise reads through
// to the inner repository and fills the cache.
func (r *Repository) Get(ctx context.Context, id int64) (book.Book, error) {
	if b, ok := r.lookup(ctx, idKey(id)); ok {
		return b, nil
	}

	b, err := r.inner.Get(ctx, id)
	if err != nil {
		return book.Book{}, err
	}
	r.fill(ctx, b)
	return b, nil
}

// GetByISBN returns the cached book when present, otherwise reads
// through to the inner repository and fills the cache.
func (r *Repository) GetByISBN(ctx context.Context, isbn string) (book.Book, error) {
	if b, ok := r.lookup(ctx, isbnKey(isbn)); ok {
		return b, nil
	}

	b, err := r.inner.GetByISBN(ctx, isbn)
	if err != nil {
		return book.Book{}, err
	}
	r.fill(ctx, b)
	return b, nil
}

// ExistsByISBN always asks the inner repository
func (r *Repository) ExistsByISBN(ctx context.Context, isbn string) (bool, error) {
	return r.inner.ExistsByISBN(ctx, isbn)
}

// Insert writes through and caches the stored book
func (r *Repository) Insert(ctx context.Context, b book.Book) (int64, error) {
	id, err := r.inner.Insert(ctx, b)
	if err != nil {
		return 0, err
	}
	b.ID = id
	r.fill(ctx, b)
	return id, nil
}

// Update writes through and drops every key the book may be cached
// under. The stored row is read first: the argument carries the new
// field values, so the previous ISBN key is only known to the inner
// repository.
func (r *Repository) Update(ctx context.Context, b book.Book) (book.Book, error) {
	prev, err := r.inner.Get(ctx, b.ID)
	if err != nil && !errors.Is(err, book.ErrNotFound) {
		return book.Book{}, err
	}

	updated, err := r.inner.Update(ctx, b)
	if err != nil {
		return book.Book{}, err
	}
	r.invalidate(ctx, idKey(b.ID), isbnKey(prev.ISBN), isbnKey(updated.ISBN))
	r.fill(ctx, updated)
	return updated, nil
}

// Delete writes through and drops the cached keys. Callers may carry
// only the id, so the ISBN to invalidate comes from the stored row.
func (r *Repository) Delete(ctx context.Context, b book.Book) error {
	prev, err := r.inner.Get(ctx, b.ID)
	if err != nil && !errors.Is(err, book.ErrNotFound) {
		return err
	}

	if err := r.inner.Delete(ctx, b); err != nil {
		return err
	}
	r.invalidate(ctx, idKey(b.ID), isbnKey(prev.ISBN), isbnKey(b.ISBN))
	return nil
}

// Find always asks the inner repository
func (r *Repository) Find(ctx context.Context, f book.Filter, req book.PageRequest) (book.Page, error) {
	return r.inner.Find(ctx, f, req)
}

// Close closes the Redis client and the inner repository
func (r *Repository) Close(ctx context.Context) error {
	if err := r.client.Close(); err != nil {
		return fmt.Errorf("closing redis client: %w", err)
	}
	return r.inner.Close(ctx)
}

// lookup reads one cached hash. A miss or a malformed hash reports
// false and the caller falls back to the inner repository.
func (r *Repository) lookup(ctx context.Context, key string) (book.Book, bool) {
	fields, err := r.client.HGetAll(ctx, key).Result()
	if err != nil || len(fields) == 0 {
		return book.Book{}, false
	}

	id, err := strconv.ParseInt(fields["id"], 10, 64)
	if err != nil {
		return book.Book{}, false
	}

	return book.Book{
		ID:     id,
		Title:  fields["title"],
		Author: fields["author"],
		ISBN:   fields["isbn"],
	}, true
}

// fill caches the book under both keys. Cache writes are best effort;
// a failed fill only costs the next read a trip to the inner
// repository.
func (r *Repository) fill(ctx context.Context, b book.Book) {
	fields := map[string]interface{}{
		"id":     b.ID,
		"title":  b.Title,
		"author": b.Author,
		"isbn":   b.ISBN,
	}

	pipe := r.client.Pipeline()
	for _, key := range []string{idKey(b.ID), isbnKey(b.ISBN)} {
		pipe.HSet(ctx, key, fields)
		pipe.Expire(ctx, key, r.ttl)
	}
	_, _ = pipe.Exec(ctx)
}

func (r *Repository) invalidate(ctx context.Context, keys ...string) {
	_ = r.client.Del(ctx, keys...).Err()
}

func idKey(id int64) string {
	return fmt.Sprintf("%s:%d", idKeyPrefix, id)
}

func isbnKey(isbn string) string {
	return fmt.Sprintf("%s:%s", isbnKeyPrefix, isbn)
}
