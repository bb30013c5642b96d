package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"github.com/brendan-oconnell/thoth/internal/export"
	apphttp "github.com/brendan-oconnell/thoth/internal/http"
	"github.com/brendan-oconnell/thoth/internal/httpx"
	"github.com/brendan-oconnell/thoth/internal/provider"
	"github.com/brendan-oconnell/thoth/internal/provider/graphql"
	"github.com/brendan-oconnell/thoth/internal/provider/postgres"
	"github.com/brendan-oconnell/thoth/internal/specs"
)

func main() {
	_ = godotenv.Load(".env.local")

	serverAddress := getEnv("EXPORT_API_ADDR", ":8181")
	graphqlEndpoint := getEnv("THOTH_GRAPHQL_ENDPOINT", "http://localhost:8000/graphql")
	graphqlRPS := mustGetEnvInt("THOTH_GRAPHQL_RPS", 10)
	databaseDSN := os.Getenv("DB_DSN")

	registry, err := specs.NewRegistry()
	if err != nil {
		log.Fatalf("cannot build specification registry: %v", err)
	}

	// A DSN switches the provider to direct database reads; the default is
	// the GraphQL API.
	var works provider.WorkProvider
	var dbPool *pgxpool.Pool
	if databaseDSN != "" {
		dbPool = mustOpenDB(databaseDSN)
		defer dbPool.Close()
		works = postgres.NewProvider(dbPool)
		log.Printf("using database provider")
	} else {
		works = graphql.NewClient(graphqlEndpoint, graphqlRPS)
		log.Printf("using GraphQL provider at %s", graphqlEndpoint)
	}

	service := export.NewService(registry, works)
	exportHandler := apphttp.NewExportHandler(registry, service)

	router := http.NewServeMux()

	router.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	router.HandleFunc("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if dbPool != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 500*time.Millisecond)
			defer cancel()
			if err := dbPool.Ping(ctx); err != nil {
				http.Error(w, "db not ready", http.StatusServiceUnavailable)
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	router.Handle("/specifications", apphttp.MethodMux(map[string]http.Handler{
		http.MethodGet: http.HandlerFunc(exportHandler.ListSpecifications),
	}))
	router.Handle("/specifications/", apphttp.MethodMux(map[string]http.Handler{
		http.MethodGet: http.HandlerFunc(exportHandler.Dispatch),
	}))

	var handler http.Handler = router
	handler = httpx.AccessLogMiddleware(handler)
	handler = httpx.SecurityHeadersMiddleware(handler)
	if origins := os.Getenv("CORS_ALLOWED_ORIGINS"); origins != "" {
		handler = httpx.CORSMiddleware(strings.Split(origins, ","))(handler)
	}
	if rps := getEnv("RATE_LIMIT_RPS", ""); rps != "" {
		limit, err := strconv.ParseFloat(rps, 64)
		if err != nil {
			log.Fatalf("invalid RATE_LIMIT_RPS: %v", err)
		}
		handler = httpx.NewRateLimitMiddleware(limit, int(limit)*2).Middleware(handler)
	}
	handler = httpx.RecoveryMiddleware(handler)
	handler = httpx.RequestIDMiddleware(handler)

	httpServer := &http.Server{
		Addr:         serverAddress,
		Handler:      handler,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	log.Printf("Starting server on %s", serverAddress)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server error: %v", err)
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func mustGetEnvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Fatalf("invalid %s: %v", key, err)
	}
	return n
}

func mustOpenDB(dsn string) *pgxpool.Pool {
	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		log.Fatalf("cannot create db pool: %v", err)
	}
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		log.Fatalf("cannot ping database (%s): %v", redactDSN(dsn), err)
	}
	log.Println("database connection OK")
	return pool
}

func redactDSN(dsn string) string {
	const marker = "://"
	start := strings.Index(dsn, marker)
	if start < 0 {
		return dsn
	}
	start += len(marker)
	end := strings.Index(dsn[start:], "@")
	if end < 0 {
		return dsn
	}
	return dsn[:start] + "***" + dsn[start+end:]
}
