package chi

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httplog"
	"github.com/nrisk/library-api/book"
)

// Handlers builds the router. metricsHandler may be nil when the
// exporter is disabled.
func Handlers(ctx context.Context, bookService book.UseCase, metricsHandler http.Handler) *chi.Mux {
	// Logger
	logger := httplog.NewLogger("library-api", httplog.Options{
		JSON: true,
	})
	r := chi.NewRouter()
	r.Use(httplog.RequestLogger(logger))
	r.Method(http.MethodGet, "/v1/books", findBooks(bookService))
	r.Method(http.MethodGet, "/v1/books/{id}", getBook(bookService))
	r.Method(http.MethodGet, "/v1/books/isbn/{isbn}", getBookByISBN(bookService))
	r.Method(http.MethodPost, "/v1/books", postBook(bookService))
	r.Method(http.MethodPut, "/v1/books/{id}", putBook(bookService))
	r.Method(http.MethodDelete, "/v1/books/{id}", deleteBook(bookService))

	if metricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", metricsHandler)
	}

	return r
}
