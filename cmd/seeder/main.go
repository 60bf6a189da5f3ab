// cmd/seeder/main.go
package main

import (
	"os"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog"

	"github.com/autovilla/dealership-backend/internal/config"
	"github.com/autovilla/dealership-backend/internal/db"
)

func main() {
	log := zerolog.New(os.Stderr).With().Timestamp().Logger()

	if err := godotenv.Load(); err != nil {
		log.Info().Msg("no .env file found, relying on OS environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("loading configuration")
	}

	conn, err := db.Open(cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("connecting to database")
	}
	defer conn.Close()

	// Schema first, then data.
	seedFiles := []string{
		"seed/schema.sql",
		"seed/admins.sql",
		"seed/cars.sql",
		"seed/blogs.sql",
	}

	for _, file := range seedFiles {
		content, err := os.ReadFile(file)
		if err != nil {
			log.Fatal().Err(err).Str("file", file).Msg("reading seed file")
		}
		if _, err := conn.Exec(string(content)); err != nil {
			log.Fatal().Err(err).Str("file", file).Msg("executing seed file")
		}
		log.Info().Str("file", file).Msg("seeded")
	}

	log.Info().Msg("database seeding completed")
}
