package database

import (
	"database/sql"
	"log"
	"time"

	_ "github.com/lib/pq"
)

var PostgresDB *sql.DB

// ConnectPostgres connects to PostgreSQL database
func ConnectPostgres(postgresURI string) error {
	var err error

	PostgresDB, err = sql.Open("postgres", postgresURI)
	if err != nil {
		return err
	}

	// Set connection pool settings
	PostgresDB.SetMaxOpenConns(25)
	PostgresDB.SetMaxIdleConns(5)
	PostgresDB.SetConnMaxLifetime(5 * time.Minute)

	// Test connection
	if err = PostgresDB.Ping(); err != nil {
		return err
	}

	log.Println("✅ Connected to PostgreSQL")

	// Initialize tables
	if err = InitPostgresTables(); err != nil {
		return err
	}

	return nil
}

// InitPostgresTables creates all necessary tables if they don't exist
func InitPostgresTables() error {
	queries := []string{
		// Users table
		`CREATE TABLE IF NOT EXISTS users (
			id SERIAL PRIMARY KEY,
			email TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			created_at TIMESTAMP NOT NULL DEFAULT NOW()
		)`,

		// Hero catalog table (populated by the CSV importer)
		`CREATE TABLE IF NOT EXISTS heroes (
			id SERIAL PRIMARY KEY,
			name TEXT NOT NULL,
			gender TEXT NOT NULL DEFAULT '',
			intelligence INTEGER NOT NULL DEFAULT 0,
			strength INTEGER NOT NULL DEFAULT 0,
			speed INTEGER NOT NULL DEFAULT 0,
			durability INTEGER NOT NULL DEFAULT 0,
			power INTEGER NOT NULL DEFAULT 0,
			combat INTEGER NOT NULL DEFAULT 0,
			img TEXT NOT NULL DEFAULT ''
		)`,

		// Users <-> heroes collection (many-to-many relationship)
		// UNIQUE(user_id, hero_id) keeps the relation a set: a duplicate
		// add can never create a second row.
		`CREATE TABLE IF NOT EXISTS users_heroes (
			id SERIAL PRIMARY KEY,
			user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			hero_id INTEGER NOT NULL REFERENCES heroes(id) ON DELETE CASCADE,
			added_at TIMESTAMP NOT NULL DEFAULT NOW(),
			UNIQUE(user_id, hero_id)
		)`,

		// Create indexes for better performance
		`CREATE INDEX IF NOT EXISTS idx_users_email ON users(email)`,
		`CREATE INDEX IF NOT EXISTS idx_heroes_name ON heroes(name)`,
		`CREATE INDEX IF NOT EXISTS idx_users_heroes_user_id ON users_heroes(user_id)`,
		`CREATE INDEX IF NOT EXISTS idx_users_heroes_hero_id ON users_heroes(hero_id)`,
	}

	for _, query := range queries {
		if _, err := PostgresDB.Exec(query); err != nil {
			return err
		}
	}

	log.Println("✅ PostgreSQL tables initialized")
	return nil
}

// DisconnectPostgres closes the PostgreSQL connection
func DisconnectPostgres() error {
	if PostgresDB != nil {
		return PostgresDB.Close()
	}
	return nil
}
