package book_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/nrisk/library-api/book"
	"github.com/nrisk/library-api/book/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validBook() book.Book {
	return book.Book{
		Title:  "As aventuras",
		Author: "Fulano",
		ISBN:   "123",
	}
}

func TestSave(t *testing.T) {
	ctx := context.Background()

	t.Run("persists a book with a new isbn and returns the assigned id", func(t *testing.T) {
		b := validBook()
		repo := mocks.NewRepository(t)
		repo.On("ExistsByISBN", ctx, "123").Return(false, nil)
		repo.On("Insert", ctx, b).Return(int64(1), nil)

		s := book.NewService(repo)
		saved, err := s.Save(ctx, b)

		require.NoError(t, err)
		assert.Equal(t, int64(1), saved.ID)
		assert.Equal(t, "123", saved.ISBN)
		assert.Equal(t, "As aventuras", saved.Title)
		assert.Equal(t, "Fulano", saved.Author)
	})

	t.Run("rejects a duplicated isbn and never inserts", func(t *testing.T) {
		b := validBook()
		repo := mocks.NewRepository(t)
		repo.On("ExistsByISBN", ctx, "123").Return(true, nil)

		s := book.NewService(repo)
		saved, err := s.Save(ctx, b)

		require.ErrorIs(t, err, book.ErrDuplicateISBN)
		assert.Empty(t, saved)
		repo.AssertNotCalled(t, "Insert", ctx, b)
	})

	t.Run("propagates existence check failures", func(t *testing.T) {
		b := validBook()
		repo := mocks.NewRepository(t)
		repo.On("ExistsByISBN", ctx, "123").Return(false, fmt.Errorf("some error"))

		s := book.NewService(repo)
		_, err := s.Save(ctx, b)

		require.Error(t, err)
		repo.AssertNotCalled(t, "Insert", ctx, b)
	})

	t.Run("propagates insert failures", func(t *testing.T) {
		b := validBook()
		repo := mocks.NewRepository(t)
		repo.On("ExistsByISBN", ctx, "123").Return(false, nil)
		repo.On("Insert", ctx, b).Return(int64(0), fmt.Errorf("some error"))

		s := book.NewService(repo)
		saved, err := s.Save(ctx, b)

		require.Error(t, err)
		assert.Empty(t, saved)
	})
}

func TestGetByID(t *testing.T) {
	ctx := context.Background()

	t.Run("returns the matching book when present", func(t *testing.T) {
		b := validBook()
		b.ID = 1
		repo := mocks.NewRepository(t)
		repo.On("Get", ctx, int64(1)).Return(b, nil)

		s := book.NewService(repo)
		found, ok, err := s.GetByID(ctx, 1)

		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, b, found)
	})

	t.Run("returns empty without error when absent", func(t *testing.T) {
		repo := mocks.NewRepository(t)
		repo.On("Get", ctx, int64(1)).Return(book.Book{}, book.ErrNotFound)

		s := book.NewService(repo)
		found, ok, err := s.GetByID(ctx, 1)

		require.NoError(t, err)
		assert.False(t, ok)
		assert.Empty(t, found)
	})

	t.Run("propagates repository failures", func(t *testing.T) {
		repo := mocks.NewRepository(t)
		repo.On("Get", ctx, int64(1)).Return(book.Book{}, fmt.Errorf("some error"))

		s := book.NewService(repo)
		_, ok, err := s.GetByID(ctx, 1)

		require.Error(t, err)
		assert.False(t, ok)
	})
}

func TestGetByISBN(t *testing.T) {
	ctx := context.Background()

	t.Run("returns the matching book when present", func(t *testing.T) {
		b := book.Book{ID: 1, ISBN: "1230"}
		repo := mocks.NewRepository(t)
		repo.On("GetByISBN", ctx, "1230").Return(b, nil).Once()

		s := book.NewService(repo)
		found, ok, err := s.GetByISBN(ctx, "1230")

		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, int64(1), found.ID)
		assert.Equal(t, "1230", found.ISBN)
	})

	t.Run("returns empty without error when absent", func(t *testing.T) {
		repo := mocks.NewRepository(t)
		repo.On("GetByISBN", ctx, "1230").Return(book.Book{}, book.ErrNotFound)

		s := book.NewService(repo)
		found, ok, err := s.GetByISBN(ctx, "1230")

		require.NoError(t, err)
		assert.False(t, ok)
		assert.Empty(t, found)
	})
}

func TestUpdate(t *testing.T) {
	ctx := context.Background()

	t.Run("persists the given fields and returns the stored representation", func(t *testing.T) {
		updating := book.Book{ID: 1}
		updated := validBook()
		updated.ID = 1
		repo := mocks.NewRepository(t)
		repo.On("Update", ctx, updating).Return(updated, nil)

		s := book.NewService(repo)
		got, err := s.Update(ctx, updating)

		require.NoError(t, err)
		assert.Equal(t, updated.ID, got.ID)
		assert.Equal(t, updated.Title, got.Title)
		assert.Equal(t, updated.Author, got.Author)
		assert.Equal(t, updated.ISBN, got.ISBN)
	})

	t.Run("rejects a book without id and never persists", func(t *testing.T) {
		b := book.Book{}
		repo := mocks.NewRepository(t)

		s := book.NewService(repo)
		_, err := s.Update(ctx, b)

		require.ErrorIs(t, err, book.ErrMissingID)
		repo.AssertNotCalled(t, "Update", ctx, b)
	})

	t.Run("propagates repository failures", func(t *testing.T) {
		b := validBook()
		b.ID = 1
		repo := mocks.NewRepository(t)
		repo.On("Update", ctx, b).Return(book.Book{}, fmt.Errorf("some error"))

		s := book.NewService(repo)
		_, err := s.Update(ctx, b)

		require.Error(t, err)
	})
}

func TestDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("invokes repository deletion exactly once", func(t *testing.T) {
		b := validBook()
		b.ID = 1
		repo := mocks.NewRepository(t)
		repo.On("Delete", ctx, b).Return(nil).Once()

		s := book.NewService(repo)
		err := s.Delete(ctx, b)

		require.NoError(t, err)
		repo.AssertNumberOfCalls(t, "Delete", 1)
	})

	t.Run("rejects a book without id and never deletes", func(t *testing.T) {
		b := book.Book{}
		repo := mocks.NewRepository(t)

		s := book.NewService(repo)
		err := s.Delete(ctx, b)

		require.ErrorIs(t, err, book.ErrMissingID)
		repo.AssertNotCalled(t, "Delete", ctx, b)
	})

	t.Run("propagates repository failures", func(t *testing.T) {
		b := validBook()
		b.ID = 1
		repo := mocks.NewRepository(t)
		repo.On("Delete", ctx, b).Return(fmt.Errorf("some error"))

		s := book.NewService(repo)
		err := s.Delete(ctx, b)

		require.Error(t, err)
	})
}

func TestFind(t *testing.T) {
	ctx := context.Background()

	t.Run("passes the repository page through unchanged", func(t *testing.T) {
		b := validBook()
		b.ID = 1
		filter := book.Filter{Author: "Fulano"}
		req := book.PageRequest{Page: 0, Size: 10}
		page := book.Page{
			Content: []book.Book{b},
			Total:   1,
			Page:    0,
			Size:    10,
		}
		repo := mocks.NewRepository(t)
		repo.On("Find", ctx, filter, req).Return(page, nil)

		s := book.NewService(repo)
		got, err := s.Find(ctx, filter, req)

		require.NoError(t, err)
		assert.Equal(t, int64(1), got.Total)
		assert.Equal(t, []book.Book{b}, got.Content)
		assert.Equal(t, 0, got.Page)
		assert.Equal(t, 10, got.Size)
	})

	t.Run("normalizes the page request before querying", func(t *testing.T) {
		normalized := book.PageRequest{Page: 0, Size: book.DefaultPageSize}
		repo := mocks.NewRepository(t)
		repo.On("Find", ctx, book.Filter{}, normalized).Return(book.Page{Size: book.DefaultPageSize}, nil)

		s := book.NewService(repo)
		got, err := s.Find(ctx, book.Filter{}, book.PageRequest{Page: -1, Size: 0})

		require.NoError(t, err)
		assert.Equal(t, book.DefaultPageSize, got.Size)
	})

	t.Run("propagates repository failures", func(t *testing.T) {
		repo := mocks.NewRepository(t)
		repo.On("Find", ctx, book.Filter{}, book.PageRequest{Page: 0, Size: 10}).
			Return(book.Page{}, fmt.Errorf("some error"))

		s := book.NewService(repo)
		_, err := s.Find(ctx, book.Filter{}, book.PageRequest{Page: 0, Size: 10})

		require.Error(t, err)
	})
}

func TestPageRequestNormalize(t *testing.T) {
	t.Run("fills defaults", func(t *testing.T) {
		req := book.PageRequest{}.Normalize()
		assert.Equal(t, 0, req.Page)
		assert.Equal(t, book.DefaultPageSize, req.Size)
	})

	t.Run("caps oversized pages", func(t *testing.T) {
		req := book.PageRequest{Size: 1000}.Normalize()
		assert.Equal(t, book.MaxPageSize, req.Size)
	})

	t.Run("offset follows page and size", func(t *testing.T) {
		req := book.PageRequest{Page: 3, Size: 20}
		assert.Equal(t, 60, req.Offset())
	})
}

func TestPageTotalPages(t *testing.T) {
	assert.Equal(t, 3, book.Page{Total: 25, Size: 10}.TotalPages())
	assert.Equal(t, 2, book.Page{Total: 20, Size: 10}.TotalPages())
	assert.Equal(t, 0, book.Page{Total: 5}.TotalPages())
}
