package importer

import (
	"context"
	"errors"
	"strings"
	"testing"

	"customers-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubInserter struct {
	items []domain.Customer
	err   error
}

func (s *stubInserter) Insert(_ context.Context, c *domain.Customer) (*domain.Customer, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if s.err != nil {
		return nil, s.err
	}
	s.items = append(s.items, *c)
	return c, nil
}

func TestCSVImporter_Run(t *testing.T) {
	csvData := `guid,email,namePrefix,nameSurname,nameMiddle,nameFamily,nameSuffix,phoneNumber,notes
00000000-0000-0000-0000-000000000001,ada@example.com,Dr,Ada,,Lovelace,,555-0100,ignored
,,,,,,,,
,grace@example.com,,Grace,Brewster,Hopper,,,`

	repo := &stubInserter{}
	imp := NewCSVImporter(strings.NewReader(csvData), repo, nil)

	count, err := imp.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, count)
	require.Len(t, repo.items, 2)

	first := repo.items[0]
	assert.Equal(t, "00000000-0000-0000-0000-000000000001", first.GUIDValue())
	assert.Equal(t, "Dr", *first.NamePrefix)
	assert.Equal(t, "Lovelace", *first.NameFamily)
	assert.Nil(t, first.NameMiddle)
	assert.Nil(t, first.NameSuffix)

	second := repo.items[1]
	assert.Nil(t, second.GUID)
	assert.Equal(t, "grace@example.com", *second.Email)
	assert.Equal(t, "Brewster", *second.NameMiddle)
	assert.Nil(t, second.PhoneNumber)
}

func TestCSVImporter_InvalidRowAborts(t *testing.T) {
	csvData := "email,nameSurname\nok@example.com,A\nnot-an-email,B\nlater@example.com,C\n"

	repo := &stubInserter{}
	count, err := NewCSVImporter(strings.NewReader(csvData), repo, nil).Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 3")
	var verr *domain.ValidationError
	assert.True(t, errors.As(err, &verr))
	assert.Equal(t, 1, count)
}

func TestCSVImporter_SkipInvalid(t *testing.T) {
	csvData := "email,nameSurname\nok@example.com,A\n,B\nlater@example.com,C\n"

	repo := &stubInserter{}
	imp := NewCSVImporter(strings.NewReader(csvData), repo, nil)
	imp.SkipInvalid = true

	count, err := imp.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestCSVImporter_ServiceErrorAlwaysAborts(t *testing.T) {
	csvData := "email\nok@example.com\n"

	repo := &stubInserter{err: &domain.ServiceError{Err: errors.New("connection refused")}}
	imp := NewCSVImporter(strings.NewReader(csvData), repo, nil)
	imp.SkipInvalid = true

	count, err := imp.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
	assert.Zero(t, count)
}

func TestCSVImporter_RequiresEmailColumn(t *testing.T) {
	_, err := NewCSVImporter(strings.NewReader("guid,nameSurname\n1,A\n"), &stubInserter{}, nil).Run(context.Background())
	require.Error(t, err)
}
