package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/LuckyIntegral/My-finances/internal/service"
	"github.com/LuckyIntegral/My-finances/internal/storage"
	"github.com/joho/godotenv"
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if err == flag.ErrHelp {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	fs.SetOutput(stderr)

	dbPath := fs.String("db", "finances.db", "Path to database file")
	account := fs.Int64("account", 0, "Account id to export (0 exports every transaction)")
	dir := fs.String("dir", ".", "Directory to write the CSV file into")

	if err := fs.Parse(args); err != nil {
		return err
	}

	_ = godotenv.Load()

	// Allow overriding db path via env var if not explicitly set via flag (flag default is used)
	if path := os.Getenv("DB_PATH"); path != "" && *dbPath == "finances.db" {
		*dbPath = path
	}

	db, err := storage.NewDB(*dbPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	transactions := service.NewTransactionService(db, *dir)
	ctx := context.Background()

	var file string
	if *account != 0 {
		file, err = transactions.ExportByAccountID(ctx, *account)
	} else {
		file, err = transactions.ExportAll(ctx)
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(stdout, "Exported transactions to %s\n", file)
	return nil
}
