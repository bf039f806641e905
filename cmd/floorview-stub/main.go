// Command floorview-stub serves the backend API from generated fixture
// data, for local development and demos without a real scheduler.
package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/floorview/floorview/internal/stub"
)

func main() {
	addr := flag.String("addr", ":5000", "listen address")
	fixturePath := flag.String("fixture", "", "fixture YAML file (default: built-in demo data)")
	flag.Parse()

	fixture := stub.DefaultFixture()
	if *fixturePath != "" {
		f, err := stub.LoadFixture(*fixturePath)
		if err != nil {
			log.Fatalf("loading fixture %s: %v", *fixturePath, err)
		}
		fixture = f
	}

	srv := &http.Server{
		Addr:    *addr,
		Handler: stub.NewServer(fixture).Router(),
	}

	go func() {
		log.Printf("floorview-stub listening on %s", *addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("shutdown: %v", err)
	}
}
