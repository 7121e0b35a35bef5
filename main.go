package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"desireways/catalog"
	"desireways/database"
	"desireways/routes"
	"desireways/store"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	log.Println("Starting Desireways API server...")

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using process environment")
	}

	if os.Getenv("JWT_SECRET") == "" {
		log.Println("WARNING: JWT_SECRET not set, using the development default")
	}

	if os.Getenv("USE_MEMORY_STORE") == "1" {
		// Local development without a database.
		log.Println("USE_MEMORY_STORE=1, running against the in-memory store")
		store.Set(store.NewMemory())
	} else {
		log.Println("Connecting to MongoDB...")
		var dbErr error
		for i := 1; i <= 3; i++ {
			if err := database.ConnectMongo(); err != nil {
				dbErr = err
				log.Printf("MongoDB connection attempt %d failed: %v", i, err)
				time.Sleep(2 * time.Second)
				continue
			}
			dbErr = nil
			break
		}
		if dbErr != nil {
			log.Fatal("Failed to connect to MongoDB: ", dbErr)
		}
		defer database.DisconnectMongo()

		if err := database.EnsureIndexes(); err != nil {
			log.Fatal("Failed to create indexes: ", err)
		}

		store.Set(store.NewMongo(database.Client.Database(database.Name)))
	}

	if err := seedCatalog(); err != nil {
		log.Fatal("Failed to seed product catalog: ", err)
	}

	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := routes.SetupRouter()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	server := &http.Server{
		Addr:         ":" + port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Server running on port %s", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server error: ", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Println("Forced shutdown: ", err)
	}

	log.Println("Server stopped gracefully")
}

// seedCatalog loads the bundled product list into an empty products
// collection so a fresh install has something to browse.
func seedCatalog() error {
	products, err := catalog.Products()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	return store.Get().SeedProducts(ctx, products)
}
