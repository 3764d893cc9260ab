package seed

import (
	"context"
	"fmt"

	"customers-api/internal/domain"
	"customers-api/internal/logging"
	"github.com/sirupsen/logrus"
)

// Store is the part of the customer service seeding needs.
type Store interface {
	GetByEmail(ctx context.Context, email string) (*domain.Customer, bool)
	Insert(ctx context.Context, c *domain.Customer) (*domain.Customer, error)
}

func demoCustomers() []domain.Customer {
	s := domain.StringPtr
	return []domain.Customer{
		{
			Email:       s("ada.lovelace@example.com"),
			NamePrefix:  s("Countess"),
			NameSurname: s("Ada"),
			NameFamily:  s("Lovelace"),
			PhoneNumber: s("+44 20 7946 0001"),
		},
		{
			Email:       s("grace.hopper@example.com"),
			NamePrefix:  s("Rear Admiral"),
			NameSurname: s("Grace"),
			NameMiddle:  s("Brewster"),
			NameFamily:  s("Hopper"),
		},
		{
			Email:       s("alan.turing@example.com"),
			NameSurname: s("Alan"),
			NameMiddle:  s("Mathison"),
			NameFamily:  s("Turing"),
			NameSuffix:  s("OBE"),
		},
	}
}

// Apply inserts demo customers for manual testing. Customers whose email is
// already stored are left alone, so running it twice is harmless.
func Apply(ctx context.Context, store Store, logger *logrus.Logger) (int, error) {
	if logger == nil {
		logger = logging.Discard()
	}

	inserted := 0
	for _, c := range demoCustomers() {
		if _, ok := store.GetByEmail(ctx, *c.Email); ok {
			logger.WithField("email", *c.Email).Debug("seed customer already present")
			continue
		}
		created, err := store.Insert(ctx, &c)
		if err != nil {
			return inserted, fmt.Errorf("insert customer %s: %w", *c.Email, err)
		}
		logger.WithFields(logrus.Fields{"email": *c.Email, "guid": created.GUIDValue()}).Info("seeded customer")
		inserted++
	}
	return inserted, nil
}
