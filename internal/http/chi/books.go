package chi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/nrisk/library-api/book"
)

/* HTTP layer DTOs for the book API
 * Separate from domain entities to avoid leaking internal structure
 */

// bookRequest represents a book in the web layer
type bookRequest struct {
	Title  string `json:"title"`
	Author string `json:"author"`
	ISBN   string `json:"isbn"`
}

// bookResponse represents a book in the web layer
type bookResponse struct {
	ID     int64  `json:"id"`
	Title  string `json:"title"`
	Author string `json:"author"`
	ISBN   string `json:"isbn"`
}

// pageResponse represents one page of find results
type pageResponse struct {
	Content    []bookResponse `json:"content"`
	Total      int64          `json:"total"`
	Page       int            `json:"page"`
	Size       int            `json:"size"`
	TotalPages int            `json:"total_pages"`
}

func toBookResponse(b book.Book) bookResponse {
	return bookResponse{
		ID:     b.ID,
		Title:  b.Title,
		Author: b.Author,
		ISBN:   b.ISBN,
	}
}

// writeServiceError maps domain errors onto HTTP status codes
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, book.ErrDuplicateISBN):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, book.ErrMissingID):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, book.ErrNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// findBooks handles GET /v1/books with example-based filtering
func findBooks(bookService book.UseCase) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		filter := book.Filter{
			Title:  q.Get("title"),
			Author: q.Get("author"),
			ISBN:   q.Get("isbn"),
		}

		req := book.PageRequest{}
		if v := q.Get("page"); v != "" {
			page, err := strconv.Atoi(v)
			if err != nil {
				http.Error(w, "invalid page", http.StatusBadRequest)
				return
			}
			req.Page = page
		}
		if v := q.Get("size"); v != "" {
			size, err := strconv.Atoi(v)
			if err != nil {
				http.Error(w, "invalid size", http.StatusBadRequest)
				return
			}
			req.Size = size
		}

		page, err := bookService.Find(r.Context(), filter, req)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		result := pageResponse{
			Content:    make([]bookResponse, 0, len(page.Content)),
			Total:      page.Total,
			Page:       page.Page,
			Size:       page.Size,
			TotalPages: page.TotalPages(),
		}
		for _, b := range page.Content {
			result.Content = append(result.Content, toBookResponse(b))
		}

		if err := json.NewEncoder(w).Encode(result); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
	})
}

// getBook handles GET /v1/books/{id}
func getBook(bookService book.UseCase) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		b, found, err := bookService.GetByID(r.Context(), id)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		if !found {
			http.Error(w, "book not found", http.StatusNotFound)
			return
		}

		if err := json.NewEncoder(w).Encode(toBookResponse(b)); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})
}

// getBookByISBN handles GET /v1/books/isbn/{isbn}
func getBookByISBN(bookService book.UseCase) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		isbn := chi.URLParam(r, "isbn")
		if isbn == "" {
			http.Error(w, "isbn is required", http.StatusBadRequest)
			return
		}

		b, found, err := bookService.GetByISBN(r.Context(), isbn)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		if !found {
			http.Error(w, "book not found", http.StatusNotFound)
			return
		}

		if err := json.NewEncoder(w).Encode(toBookResponse(b)); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})
}

// postBook handles POST /v1/books
func postBook(bookService book.UseCase) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var br bookRequest
		if err := json.NewDecoder(r.Body).Decode(&br); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if br.Title == "" || br.Author == "" || br.ISBN == "" {
			http.Error(w, "title, author and isbn are required", http.StatusBadRequest)
			return
		}

		saved, err := bookService.Save(r.Context(), book.Book{
			Title:  br.Title,
			Author: br.Author,
			ISBN:   br.ISBN,
		})
		if err != nil {
			writeServiceError(w, err)
			return
		}

		w.WriteHeader(http.StatusCreated)
		if err := json.NewEncoder(w).Encode(toBookResponse(saved)); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})
}

// putBook handles PUT /v1/books/{id}
func putBook(bookService book.UseCase) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		var br bookRequest
		if err := json.NewDecoder(r.Body).Decode(&br); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		updated, err := bookService.Update(r.Context(), book.Book{
			ID:     id,
			Title:  br.Title,
			Author: br.Author,
			ISBN:   br.ISBN,
		})
		if err != nil {
			writeServiceError(w, err)
			return
		}

		if err := json.NewEncoder(w).Encode(toBookResponse(updated)); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})
}

// deleteBook handles DELETE /v1/books/{id}
func deleteBook(bookService book.UseCase) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		if err := bookService.Delete(r.Context(), book.Book{ID: id}); err != nil {
			writeServiceError(w, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	})
}
