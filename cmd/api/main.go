package main

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/nrisk/library-api/book"
	"github.com/nrisk/library-api/book/postgres"
	bookredis "github.com/nrisk/library-api/book/redis"
	"github.com/nrisk/library-api/config"
	"github.com/nrisk/library-api/internal/http/chi"
	"github.com/nrisk/library-api/metrics"
)

const TIMEOUT = 30 * time.Second

/* main wires the layers together: config, storage, cache, business
 * logic, HTTP. Imports flow in one direction only: the application
 * imports the business layer, which imports the storage layer.
 */

func main() {
	cfg, err := config.GetConfig()
	if err != nil {
		fmt.Println(err)
		return
	}
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT,
	)
	defer stop()

	pgRepo, err := postgres.NewRepositoryWithPoolConfig(
		cfg.PostgresDSN,
		cfg.DBMaxOpenConns,
		cfg.DBMaxIdleConns,
		cfg.DBConnMaxLifeMins,
	)
	if err != nil {
		fmt.Println(err)
		return
	}

	var repo book.Repository = pgRepo
	if cfg.RedisAddr != "" {
		repo, err = bookredis.NewRepository(pgRepo, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, cfg.CacheTTL())
		if err != nil {
			fmt.Println(err)
			return
		}
	}
	defer repo.Close(ctx)

	s := book.NewService(repo)

	collector := metrics.NewPostgresCollector(pgRepo.DB)
	exporter, err := metrics.NewOTelExporter(collector)
	if err != nil {
		fmt.Println(err)
		return
	}
	defer exporter.Shutdown(ctx)

	r := chi.Handlers(ctx, s, exporter.ServeHTTP())
	http.Handle("/", r)
	srv := &http.Server{
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		Addr:         ":" + cfg.Port,
		Handler:      http.DefaultServeMux,
	}

	errShutdown := make(chan error, 1)
	go shutdown(srv, ctx, errShutdown)
	fmt.Printf("Listening on port %s\n", cfg.Port)
	err = srv.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		fmt.Println(err)
		return
	}
	err = <-errShutdown
	if err != nil {
		fmt.Println(err)
		return
	}
}

func shutdown(server *http.Server, ctxShutdown context.Context, errShutdown chan error) {
	<-ctxShutdown.Done()

	ctxTimeout, stop := context.WithTimeout(context.Background(), TIMEOUT)
	defer stop()

	err := server.Shutdown(ctxTimeout)
	switch err {
	case nil:
		fmt.Printf("\nShutting down server...\n")
		errShutdown <- nil
	case context.DeadlineExceeded:
		errShutdown <- fmt.Errorf("Forcing closing the server")
	default:
		errShutdown <- fmt.Errorf("Forcing closing the server")
	}
}
