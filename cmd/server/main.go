package main

import (
	"flag"
	"log"
	"net/http"
	"os"
	"path/filepath"

	"github.com/LuckyIntegral/My-finances/internal/handlers"
	"github.com/LuckyIntegral/My-finances/internal/middleware"
	"github.com/LuckyIntegral/My-finances/internal/service"
	"github.com/LuckyIntegral/My-finances/internal/storage"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func run() error {
	// A missing .env file is fine, environment variables still apply.
	_ = godotenv.Load()

	addr := flag.String("addr", envOr("ADDR", ":8080"), "HTTP listen address")
	dbPath := flag.String("db", envOr("DB_PATH", "finances.db"), "Path to database file")
	templateDir := flag.String("templates", envOr("TEMPLATE_DIR", "web/templates"), "Path to HTML templates")
	exportDir := flag.String("export-dir", envOr("EXPORT_DIR", "."), "Directory for CSV exports")
	flag.Parse()

	db, err := storage.NewDB(*dbPath)
	if err != nil {
		return err
	}
	defer db.Close()

	users := service.NewUserService(db)
	accounts := service.NewAccountService(db)
	transactions := service.NewTransactionService(db, *exportDir)
	h := handlers.New(users, accounts, transactions)

	r := setupRouter(h, *templateDir)
	log.Printf("Listening on %s", *addr)
	return r.Run(*addr)
}

func setupRouter(h *handlers.Handlers, templateDir string) *gin.Engine {
	r := gin.Default()
	r.Use(middleware.RequestID())
	r.LoadHTMLGlob(filepath.Join(templateDir, "*.html"))
	r.NoRoute(func(c *gin.Context) {
		c.String(http.StatusNotFound, "Page not found")
	})
	h.RegisterRoutes(r)
	return r
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
