package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/passionatedev1128/everwell-sub001/internal/cart"
	"github.com/passionatedev1128/everwell-sub001/internal/config"
	"github.com/passionatedev1128/everwell-sub001/internal/database"
	"github.com/passionatedev1128/everwell-sub001/internal/handlers"
	"github.com/passionatedev1128/everwell-sub001/internal/models"
	"github.com/passionatedev1128/everwell-sub001/internal/notify"
	"github.com/passionatedev1128/everwell-sub001/internal/services/documents"
	"github.com/passionatedev1128/everwell-sub001/internal/services/orders"
	"github.com/passionatedev1128/everwell-sub001/internal/storage"
	ws "github.com/passionatedev1128/everwell-sub001/internal/websocket"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// 2. Initialize database (detects Embedded vs External automatically)
	db, err := database.Connect(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	// Note: db.Close() is called manually in shutdown handler below

	// 3. Auto-migrate schema
	log.Println("🚀 Synchronizing database schema...")
	err = db.AutoMigrate(
		&models.UserAccount{},
		&models.Product{},
		&models.DocumentRecord{},
		&models.Order{},
		&models.OrderLine{},
		&models.PaymentProof{},
		&models.Notification{},
	)
	if err != nil {
		log.Fatalf("Migration failed: %v", err)
	}
	log.Println("✅ Schema synchronized successfully")

	// 4. File storage for documents and payment proofs
	files, err := storage.NewLocalStore(cfg.Upload.Dir)
	if err != nil {
		log.Fatalf("Failed to init upload storage: %v", err)
	}

	// 5. Notification hub + emitter
	hub := ws.NewHub()
	go hub.Run()
	emitter := notify.NewEmitter(notify.NewGormStore(db.DB), hub)

	// 6. Workflow services
	docSvc := documents.NewService(documents.NewGormStore(db.DB), files, emitter)
	orderSvc := orders.NewService(orders.NewGormStore(db.DB), files, emitter)
	carts := cart.NewStore()

	// 7. HTTP router
	router := handlers.NewRouter(db, cfg, carts, docSvc, orderSvc, emitter, hub)

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	// Channel to listen for shutdown signals
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)

	// Start server in goroutine
	go func() {
		log.Printf("🚀 Server starting on port %s\n", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for shutdown signal
	sig := <-shutdown
	log.Printf("\n⚠️  Received signal: %v. Shutting down gracefully...\n", sig)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Printf("HTTP server shutdown error: %v", err)
	}

	// Close database (this also stops embedded PostgreSQL)
	log.Println("🛑 Closing database connection...")
	if err := db.Close(); err != nil {
		log.Printf("Database close error: %v", err)
	}

	log.Println("✅ Shutdown complete")
}
