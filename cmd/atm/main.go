// Package main runs the ATM account ledger in the terminal.
package main

import (
	"context"
	"os"

	"github.com/rs/zerolog/log"

	"github.com/go-petr/atm-ledger/cmd/terminal"
	"github.com/go-petr/atm-ledger/internal/middleware"
	"github.com/go-petr/atm-ledger/pkg/configpkg"
	"github.com/go-petr/atm-ledger/pkg/dbpkg"

	_ "github.com/lib/pq"
)

func main() {
	config, err := configpkg.Load("./configs")
	if err != nil {
		log.Fatal().Err(err).Msg("cannot load config")
	}

	logger := middleware.CreateLogger(config)

	if err := dbpkg.Migrate(config.DBSource, config.MigrationURL); err != nil {
		logger.Fatal().Err(err).Msg("cannot migrate database")
	}

	db, err := dbpkg.Setup(config.DBDriver, config.DBSource)
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot connect to database")
	}

	logger.Info().Msg("ATM HAS STARTED")

	err = terminal.New(db, logger).Handler(os.Stdin, os.Stdout).Run(logger.WithContext(context.Background()))

	if closeErr := db.Close(); closeErr != nil {
		logger.Error().Err(closeErr).Msg("cannot close database")
	}

	if err != nil {
		logger.Fatal().Err(err).Msg("terminal stopped")
	}
}
