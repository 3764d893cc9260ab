package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"customers-api/internal/domain"
	"customers-api/internal/logging"
	"github.com/sirupsen/logrus"
)

// CustomerInserter stores one customer. The customer service satisfies it.
type CustomerInserter interface {
	Insert(ctx context.Context, c *domain.Customer) (*domain.Customer, error)
}

// CSVImporter reads customer CSV files and inserts every row through the
// customer service. Header names match the JSON keys of a customer; unknown
// columns are ignored and empty cells are treated as absent.
type CSVImporter struct {
	reader    *csv.Reader
	customers CustomerInserter
	logger    *logrus.Logger

	// SkipInvalid logs and skips rows the service rejects with a validation
	// error instead of aborting the import.
	SkipInvalid bool
}

func NewCSVImporter(r io.Reader, customers CustomerInserter, logger *logrus.Logger) *CSVImporter {
	if logger == nil {
		logger = logging.Discard()
	}
	csvr := csv.NewReader(r)
	csvr.FieldsPerRecord = -1 // rows may have trailing commas
	return &CSVImporter{
		reader:    csvr,
		customers: customers,
		logger:    logger,
	}
}

// Run inserts every non-blank row and returns the number of customers stored.
func (i *CSVImporter) Run(ctx context.Context) (int, error) {
	headers, err := i.reader.Read()
	if err != nil {
		return 0, fmt.Errorf("read headers: %w", err)
	}
	index := headerIndex(headers)
	if _, ok := index["email"]; !ok {
		return 0, errors.New("read headers: missing email column")
	}

	imported := 0
	for line := 2; ; line++ {
		record, err := i.reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return imported, fmt.Errorf("read row: %w", err)
		}

		c := parseRow(record, index)
		if c == nil {
			continue
		}

		if _, err := i.customers.Insert(ctx, c); err != nil {
			var verr *domain.ValidationError
			if i.SkipInvalid && errors.As(err, &verr) {
				i.logger.WithFields(logrus.Fields{"line": line, "email": pick(record, index, "email")}).
					WithError(err).Warn("skipping invalid customer row")
				continue
			}
			return imported, fmt.Errorf("insert customer on line %d: %w", line, err)
		}
		imported++
	}

	return imported, nil
}

func headerIndex(headers []string) map[string]int {
	idx := make(map[string]int, len(headers))
	for i, h := range headers {
		idx[strings.TrimSpace(h)] = i
	}
	return idx
}

func parseRow(record []string, index map[string]int) *domain.Customer {
	c := &domain.Customer{
		GUID:        optional(record, index, "guid"),
		Email:       optional(record, index, "email"),
		NamePrefix:  optional(record, index, "namePrefix"),
		NameSurname: optional(record, index, "nameSurname"),
		NameMiddle:  optional(record, index, "nameMiddle"),
		NameFamily:  optional(record, index, "nameFamily"),
		NameSuffix:  optional(record, index, "nameSuffix"),
		PhoneNumber: optional(record, index, "phoneNumber"),
	}
	if *c == (domain.Customer{}) {
		return nil
	}
	return c
}

func optional(record []string, index map[string]int, key string) *string {
	v := pick(record, index, key)
	if v == "" {
		return nil
	}
	return &v
}

func pick(record []string, index map[string]int, key string) string {
	pos, ok := index[key]
	if !ok || pos >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[pos])
}
