package main

import (
	"context"
	"fmt"

	"github.com/nrisk/library-api/book"
	"github.com/nrisk/library-api/book/postgres"
	"github.com/nrisk/library-api/config"
)

func main() {
	cfg, err := config.GetConfig()
	if err != nil {
		fmt.Println(err)
		return
	}
	ctx := context.Background()
	repo, err := postgres.NewRepository(cfg.PostgresDSN)
	if err != nil {
		fmt.Println(err)
		return
	}
	defer repo.Close(ctx)
	s := book.NewService(repo)

	saved, err := s.Save(ctx, book.Book{
		Title:  "Neuromancer",
		Author: "William Gibson",
		ISBN:   "9780441569595",
	})
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(saved)

	found, ok, err := s.GetByISBN(ctx, saved.ISBN)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(found, ok)
}
