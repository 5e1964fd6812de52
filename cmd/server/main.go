package main

import (
	"log"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"edunest/adapters/api"
	"edunest/adapters/excel"
	"edunest/adapters/postgres"
	"edunest/app"
	"edunest/internal"
	"edunest/internal/config"
	"edunest/ui"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using process environment")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := sqlx.Connect("postgres", cfg.Database.URL)
	if err != nil {
		log.Fatalf("Failed to connect to reference database: %v", err)
	}
	defer db.Close()

	manager := app.NewManager(
		excel.NewSheetReader(),
		postgres.NewReferenceRepository(db),
		api.NewClient(cfg.Backend),
		internal.DefaultLogger,
	)

	application := ui.NewApp(manager)
	if err := application.Start(cfg.Server.Port); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
