package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

func main() {
	_ = godotenv.Load(".env")
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	if err := newApp(logger).Run(os.Args); err != nil {
		logger.Fatal().Err(err).Msg("profitcli")
	}
}
