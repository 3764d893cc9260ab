package db

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"
)

// Connect opens a pgx connection pool and verifies connectivity with a ping.
// The ping is retried with exponential backoff for up to retryFor so the
// service can start alongside a database that is still booting.
func Connect(ctx context.Context, dsn string, retryFor time.Duration, logger *logrus.Logger) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, err
	}

	cfg.MaxConnIdleTime = 5 * time.Minute
	cfg.MaxConnLifetime = 30 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}

	var policy backoff.BackOff = &backoff.StopBackOff{}
	if retryFor > 0 {
		exp := backoff.NewExponentialBackOff()
		exp.MaxElapsedTime = retryFor
		policy = exp
	}
	ping := func() error {
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		return pool.Ping(pingCtx)
	}
	notify := func(err error, wait time.Duration) {
		if logger != nil {
			logger.WithError(err).Warnf("database not reachable, retrying in %s", wait)
		}
	}

	if err := backoff.RetryNotify(ping, backoff.WithContext(policy, ctx), notify); err != nil {
		pool.Close()
		return nil, err
	}

	return pool, nil
}
