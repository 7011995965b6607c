package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/dkoroteev/herocards-backend/internal/config"
	"github.com/dkoroteev/herocards-backend/internal/database"
	"github.com/dkoroteev/herocards-backend/internal/importer"
)

func main() {
	csvPath := flag.String("csv", "heroes.csv", "path to the superhero CSV export")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}
	cfg := config.Load()

	file, err := os.Open(*csvPath)
	if err != nil {
		log.Fatal("Failed to open CSV file:", err)
	}
	defer file.Close()

	heroes, err := importer.ParseHeroes(file)
	if err != nil {
		log.Fatal("Failed to parse CSV:", err)
	}
	log.Printf("Parsed %d hero cards from %s", len(heroes), *csvPath)

	if err := database.ConnectPostgres(cfg.PostgresURI); err != nil {
		log.Fatal("Failed to connect to PostgreSQL:", err)
	}
	defer database.DisconnectPostgres()

	if err := importer.InsertHeroes(context.Background(), database.PostgresDB, heroes); err != nil {
		log.Fatal("Failed to import hero cards:", err)
	}

	log.Printf("✅ Imported %d hero cards", len(heroes))
}
