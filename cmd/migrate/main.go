package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/pageza/recipe-finder/backend/config"
	"github.com/pageza/recipe-finder/backend/internal/database"
)

func main() {
	dir := flag.String("dir", "migrations", "directory of .sql migrations")
	schema := flag.Bool("schema", true, "create or update tables before running SQL migrations")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("[Migrate] failed to load configuration: %v", err)
	}

	if *schema {
		gdb, err := database.Open(cfg)
		if err != nil {
			log.Fatalf("[Migrate] %v", err)
		}
		if err := database.AutoMigrate(gdb); err != nil {
			log.Fatalf("[Migrate] %v", err)
		}
		if sqlDB, err := gdb.DB(); err == nil {
			sqlDB.Close()
		}
		log.Println("[Migrate] schema is up to date")
	}

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = cfg.DSN()
	}
	db, err := database.NewSQL(dsn)
	if err != nil {
		log.Fatalf("[Migrate] %v", err)
	}
	defer db.Close()

	applied, err := database.RunMigrations(context.Background(), db.DB, *dir)
	if err != nil {
		log.Fatalf("[Migrate] %v", err)
	}
	log.Printf("[Migrate] applied %d migration(s)", len(applied))
}
