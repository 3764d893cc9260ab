package customer

import (
	"context"
	"testing"

	"customers-api/internal/domain"
	"customers-api/internal/migrate"
	"customers-api/internal/testdb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostgres_CreateGetUpdateDelete(t *testing.T) {
	ctx := context.Background()
	pool := testdb.Pool(ctx, t)
	require.NoError(t, migrate.Apply(ctx, pool, nil))
	testdb.Reset(ctx, t, pool)

	repo := NewPostgres(pool, nil)

	created, err := repo.Create(ctx, domain.Customer{
		GUID:        domain.StringPtr("11111111-1111-1111-1111-111111111111"),
		Email:       domain.StringPtr("repo@example.com"),
		NameSurname: domain.StringPtr("Ada"),
	})
	require.NoError(t, err)
	assert.Equal(t, "11111111-1111-1111-1111-111111111111", created.GUIDValue())
	assert.Nil(t, created.NameFamily)

	byEmail, err := repo.GetByEmail(ctx, "repo@example.com")
	require.NoError(t, err)
	assert.True(t, byEmail.Equal(*created))

	err = repo.Update(ctx, created.GUIDValue(), domain.Customer{
		Email:      domain.StringPtr("changed@example.com"),
		NameFamily: domain.StringPtr("Lovelace"),
	})
	require.NoError(t, err)

	byGUID, err := repo.GetByGUID(ctx, created.GUIDValue())
	require.NoError(t, err)
	assert.Equal(t, "changed@example.com", *byGUID.Email)
	assert.Nil(t, byGUID.NameSurname, "update overwrites omitted fields with NULL")
	assert.Equal(t, "Lovelace", *byGUID.NameFamily)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, repo.Delete(ctx, created.GUIDValue()))
	_, err = repo.GetByGUID(ctx, created.GUIDValue())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPostgres_MissingRows(t *testing.T) {
	ctx := context.Background()
	pool := testdb.Pool(ctx, t)
	require.NoError(t, migrate.Apply(ctx, pool, nil))
	testdb.Reset(ctx, t, pool)

	repo := NewPostgres(pool, nil)

	_, err := repo.GetByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, repo.Update(ctx, "missing", domain.Customer{Email: domain.StringPtr("x@y.com")}), domain.ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, "missing"), domain.ErrNotFound)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestPostgres_DuplicateEmail(t *testing.T) {
	ctx := context.Background()
	pool := testdb.Pool(ctx, t)
	require.NoError(t, migrate.Apply(ctx, pool, nil))
	testdb.Reset(ctx, t, pool)

	repo := NewPostgres(pool, nil)

	_, err := repo.Create(ctx, domain.Customer{GUID: domain.StringPtr("g1"), Email: domain.StringPtr("dup@example.com")})
	require.NoError(t, err)
	_, err = repo.Create(ctx, domain.Customer{GUID: domain.StringPtr("g2"), Email: domain.StringPtr("dup@example.com")})
	assert.ErrorIs(t, err, domain.ErrAlreadyExists)
}
