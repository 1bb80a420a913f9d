package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/nrisk/library-api/book"
	"github.com/nrisk/library-api/book/postgres"
	"github.com/nrisk/library-api/catalog"
	"github.com/nrisk/library-api/config"
)

/* seed loads the catalog file and saves every entry through the
 * service so the duplicate-ISBN rule applies: entries already in the
 * database are skipped, not overwritten.
 */

func main() {
	cfg, err := config.GetConfig()
	if err != nil {
		fmt.Println(err)
		return
	}
	ctx := context.Background()

	loader := catalog.NewLoader()
	if err := loader.Load(cfg.CatalogFile); err != nil {
		fmt.Println(err)
		return
	}

	repo, err := postgres.NewRepository(cfg.PostgresDSN)
	if err != nil {
		fmt.Println(err)
		return
	}
	defer repo.Close(ctx)

	if err := repo.CreateTable(ctx); err != nil {
		fmt.Println(err)
		return
	}

	s := book.NewService(repo)

	var seeded, skipped int
	for _, entry := range loader.List() {
		_, err := s.Save(ctx, book.Book{
			Title:  entry.Title,
			Author: entry.Author,
			ISBN:   entry.ISBN,
		})
		if errors.Is(err, book.ErrDuplicateISBN) {
			skipped++
			continue
		}
		if err != nil {
			fmt.Println(err)
			return
		}
		seeded++
	}

	fmt.Printf("Seeded %d books (%d already present)\n", seeded, skipped)
}
