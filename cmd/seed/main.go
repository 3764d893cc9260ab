package main

import (
	"context"

	"customers-api/internal/config"
	"customers-api/internal/db"
	"customers-api/internal/logging"
	customerrepo "customers-api/internal/repository/customer"
	customersvc "customers-api/internal/service/customer"
	"customers-api/internal/seed"
)

func main() {
	cfg := config.FromEnv()
	logger := logging.New(cfg.LogLevel, cfg.LogFormat)

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.DBConnString, cfg.DBConnectTimeout, logger)
	if err != nil {
		logger.WithError(err).Fatal("connect db")
	}
	defer pool.Close()

	svc := customersvc.New(customerrepo.NewPostgres(pool, logger), logger)
	n, err := seed.Apply(ctx, svc, logger)
	if err != nil {
		logger.WithError(err).Fatal("seed apply")
	}

	logger.WithField("inserted", n).Info("seed applied")
}
