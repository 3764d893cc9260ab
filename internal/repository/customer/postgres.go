package customer

import (
	"context"
	"errors"

	"customers-api/internal/domain"
	"customers-api/internal/logging"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"
)

const customerColumns = `guid, email, name_prefix, name_surname, name_middle, name_family, name_suffix, phone_number`

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *logrus.Logger
}

// NewPostgres returns a Repository backed by Postgres.
func NewPostgres(pool *pgxpool.Pool, logger *logrus.Logger) Repository {
	if logger == nil {
		logger = logging.Discard()
	}
	return &postgresRepo{pool: pool, logger: logger}
}

// withConn holds a pooled connection for the duration of fn and always
// hands it back.
func (r *postgresRepo) withConn(ctx context.Context, fn func(conn *pgxpool.Conn) error) error {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return err
	}
	defer conn.Release()
	return fn(conn)
}

func (r *postgresRepo) List(ctx context.Context) ([]domain.Customer, error) {
	const q = `SELECT ` + customerColumns + ` FROM customers`
	result := []domain.Customer{}
	err := r.withConn(ctx, func(conn *pgxpool.Conn) error {
		rows, err := conn.Query(ctx, q)
		if err != nil {
			return err
		}
		defer rows.Close()
		for rows.Next() {
			c, err := scanCustomer(rows)
			if err != nil {
				return err
			}
			result = append(result, *c)
		}
		return rows.Err()
	})
	if err != nil {
		r.logger.WithError(err).Error("customer repo: list")
		return nil, err
	}
	return result, nil
}

func (r *postgresRepo) GetByGUID(ctx context.Context, guid string) (*domain.Customer, error) {
	const q = `SELECT ` + customerColumns + ` FROM customers WHERE guid = $1 LIMIT 1`
	return r.getOne(ctx, q, guid)
}

func (r *postgresRepo) GetByEmail(ctx context.Context, email string) (*domain.Customer, error) {
	const q = `SELECT ` + customerColumns + ` FROM customers WHERE email = $1 LIMIT 1`
	return r.getOne(ctx, q, email)
}

func (r *postgresRepo) getOne(ctx context.Context, q string, arg string) (*domain.Customer, error) {
	var out *domain.Customer
	err := r.withConn(ctx, func(conn *pgxpool.Conn) error {
		c, err := scanCustomer(conn.QueryRow(ctx, q, arg))
		if err != nil {
			return err
		}
		out = c
		return nil
	})
	if err != nil {
		return nil, r.mapError("get", err)
	}
	return out, nil
}

func (r *postgresRepo) Create(ctx context.Context, c domain.Customer) (*domain.Customer, error) {
	const q = `
INSERT INTO customers (` + customerColumns + `)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
RETURNING ` + customerColumns
	var out *domain.Customer
	err := r.withConn(ctx, func(conn *pgxpool.Conn) error {
		created, err := scanCustomer(conn.QueryRow(ctx, q,
			c.GUID,
			c.Email,
			c.NamePrefix,
			c.NameSurname,
			c.NameMiddle,
			c.NameFamily,
			c.NameSuffix,
			c.PhoneNumber,
		))
		if err != nil {
			return err
		}
		out = created
		return nil
	})
	if err != nil {
		return nil, r.mapError("create", err)
	}
	r.logger.WithField("guid", out.GUIDValue()).Info("inserted customer")
	return out, nil
}

func (r *postgresRepo) Update(ctx context.Context, guid string, c domain.Customer) error {
	const q = `
UPDATE customers
SET email = $2,
    name_prefix = $3,
    name_surname = $4,
    name_middle = $5,
    name_family = $6,
    name_suffix = $7,
    phone_number = $8
WHERE guid = $1
`
	err := r.withConn(ctx, func(conn *pgxpool.Conn) error {
		tag, err := conn.Exec(ctx, q,
			guid,
			c.Email,
			c.NamePrefix,
			c.NameSurname,
			c.NameMiddle,
			c.NameFamily,
			c.NameSuffix,
			c.PhoneNumber,
		)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return pgx.ErrNoRows
		}
		return nil
	})
	if err != nil {
		return r.mapError("update", err)
	}
	r.logger.WithField("guid", guid).Info("updated customer")
	return nil
}

func (r *postgresRepo) Delete(ctx context.Context, guid string) error {
	const q = `DELETE FROM customers WHERE guid = $1`
	err := r.withConn(ctx, func(conn *pgxpool.Conn) error {
		tag, err := conn.Exec(ctx, q, guid)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return pgx.ErrNoRows
		}
		return nil
	})
	if err != nil {
		return r.mapError("delete", err)
	}
	r.logger.WithField("guid", guid).Info("deleted customer")
	return nil
}

func (r *postgresRepo) mapError(op string, err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		r.logger.WithField("constraint", pgErr.ConstraintName).Warnf("customer repo: %s rejected by unique index", op)
		return domain.ErrAlreadyExists
	}
	r.logger.WithError(err).Errorf("customer repo: %s", op)
	return err
}

func scanCustomer(row pgx.Row) (*domain.Customer, error) {
	var c domain.Customer
	err := row.Scan(
		&c.GUID,
		&c.Email,
		&c.NamePrefix,
		&c.NameSurname,
		&c.NameMiddle,
		&c.NameFamily,
		&c.NameSuffix,
		&c.PhoneNumber,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}
