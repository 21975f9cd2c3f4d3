package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/stayvelle/hotel-backend/internal/config"
	"github.com/stayvelle/hotel-backend/internal/database"
)

func main() {
	var dbURLFlag string
	var confirm bool
	flag.StringVar(&dbURLFlag, "database-url", "", "PostgreSQL connection string (overrides DATABASE_URL)")
	flag.BoolVar(&confirm, "yes", false, "actually truncate; without it the tables are only listed")
	flag.Parse()

	// .env in the working directory keeps secrets off the command line
	_ = godotenv.Load()

	dbURL := dbURLFlag
	if dbURL == "" {
		dbURL = os.Getenv("DATABASE_URL")
	}
	if dbURL == "" {
		log.Fatal("DATABASE_URL is not set and -database-url was not provided")
	}
	if os.Getenv("ENVIRONMENT") == "production" {
		log.Fatal("refusing to clear data while ENVIRONMENT=production")
	}
	if !confirm {
		fmt.Printf("Would truncate: %s\nRe-run with -yes to clear them.\n", strings.Join(database.Tables, ", "))
		return
	}

	db, err := database.NewConnection(config.DatabaseConfig{
		URL:                dbURL,
		MaxConnections:     5,
		MaxIdleConnections: 2,
	})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	fmt.Println("Connected to database. Truncating tables...")

	truncateSQL := "TRUNCATE TABLE " + strings.Join(database.Tables, ", ") + " RESTART IDENTITY CASCADE"
	if _, err := db.ExecContext(ctx, truncateSQL); err != nil {
		log.Fatalf("failed to truncate tables: %v", err)
	}

	fmt.Println("All data cleared successfully.")

	fmt.Println("Post-clear row counts:")
	for _, t := range database.Tables {
		var count int
		if err := db.GetContext(ctx, &count, fmt.Sprintf("SELECT COUNT(*) FROM %s", t)); err != nil {
			fmt.Printf("  %s: error: %v\n", t, err)
			continue
		}
		fmt.Printf("  %s: %d\n", t, count)
	}
}
