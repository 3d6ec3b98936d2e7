/*
main.go - Application entry point

PURPOSE:
  Initializes and starts the payroll engine server: configuration, dependency
  wiring, and graceful shutdown.

CONFIGURATION:
  Environment variables (via cleanenv), overridable by flags:
    PORT     HTTP server port (default: 8080)
    DB_PATH  SQLite database path (default: payroll.db, ":memory:" works)

STARTUP SEQUENCE:
  1. Read env config, apply flag overrides
  2. Open the SQLite store
  3. Wire history, ledger, resolver, report generator, HR department
  4. Configure the HTTP router
  5. Serve with graceful shutdown on SIGINT/SIGTERM
*/
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/warp/payroll-engine/api"
	"github.com/warp/payroll-engine/hr"
	"github.com/warp/payroll-engine/payroll"
	"github.com/warp/payroll-engine/store/sqlite"
)

type config struct {
	Port   int    `env:"PORT" env-default:"8080"`
	DBPath string `env:"DB_PATH" env-default:"payroll.db"`
}

func main() {
	var cfg config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		log.Fatalf("Failed to read environment: %v", err)
	}

	port := flag.Int("port", cfg.Port, "HTTP server port")
	dbPath := flag.String("db", cfg.DBPath, "SQLite database path")
	flag.Parse()

	store, err := sqlite.New(*dbPath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer store.Close()

	history := payroll.NewHistory(store)
	ledger := payroll.NewLedger(store)
	resolver := payroll.NewResolver(history, ledger)
	reports := payroll.NewReportGenerator(resolver)
	department := hr.NewDepartment(store, history, ledger)

	handler := api.NewHandler(department, store, history, resolver, reports)
	handler.Resetter = store
	router := api.NewRouter(handler)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", *port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Payroll engine listening on http://localhost:%d", *port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server stopped")
}
