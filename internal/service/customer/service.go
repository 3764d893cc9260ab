package customer

import (
	"context"
	"errors"
	"fmt"

	"customers-api/internal/domain"
	"customers-api/internal/logging"
	custrepo "customers-api/internal/repository/customer"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Service is the customer data-access contract used by the HTTP layer.
//
// Reads never fail: a store fault is logged and reported as an empty result.
// Writes surface every failure as a *domain.ValidationError,
// *domain.NotFoundError or *domain.ServiceError.
type Service struct {
	repo    custrepo.Repository
	logger  *logrus.Logger
	newGUID func() string
}

// New creates a Service over repo.
func New(repo custrepo.Repository, logger *logrus.Logger) *Service {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Service{
		repo:    repo,
		logger:  logger,
		newGUID: func() string { return uuid.NewString() },
	}
}

// GetAll returns every stored customer, or an empty slice.
func (s *Service) GetAll(ctx context.Context) []domain.Customer {
	customers, err := s.repo.List(ctx)
	if err != nil {
		s.logger.WithError(err).Warn("listing customers failed, returning empty result")
		return []domain.Customer{}
	}
	if customers == nil {
		return []domain.Customer{}
	}
	return customers
}

// GetByGUID returns the customer with the given guid, if any.
func (s *Service) GetByGUID(ctx context.Context, guid string) (*domain.Customer, bool) {
	return s.getOne(s.repo.GetByGUID(ctx, guid))
}

// GetByEmail returns a customer with the given email, if any.
func (s *Service) GetByEmail(ctx context.Context, email string) (*domain.Customer, bool) {
	return s.getOne(s.repo.GetByEmail(ctx, email))
}

func (s *Service) getOne(c *domain.Customer, err error) (*domain.Customer, bool) {
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			s.logger.WithError(err).Warn("customer lookup failed, returning empty result")
		}
		return nil, false
	}
	return c, true
}

// Insert validates and stores a new customer, assigning a guid when absent.
func (s *Service) Insert(ctx context.Context, c *domain.Customer) (*domain.Customer, error) {
	if c == nil {
		return nil, &domain.ValidationError{Message: "customer object may not be null"}
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	record := *c
	if record.GUID == nil {
		record.GUID = domain.StringPtr(s.newGUID())
	}

	created, err := s.repo.Create(ctx, record)
	if err != nil {
		s.logger.WithError(err).WithField("guid", record.GUIDValue()).Warn("inserting customer failed")
		return nil, s.writeError(err, record)
	}
	return created, nil
}

// Update overwrites every field of the customer stored under guid and returns
// the record as read back from the store.
func (s *Service) Update(ctx context.Context, guid string, c *domain.Customer) (*domain.Customer, error) {
	if _, err := s.existing(ctx, guid, "updated"); err != nil {
		return nil, err
	}
	if c == nil {
		return nil, &domain.ValidationError{Message: "new customer may not be null"}
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, guid, *c); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, &domain.NotFoundError{GUID: guid, Action: "updated"}
		}
		s.logger.WithError(err).WithField("guid", guid).Warn("updating customer failed")
		record := *c
		record.GUID = &guid
		return nil, s.writeError(err, record)
	}

	updated, err := s.repo.GetByGUID(ctx, guid)
	if err != nil {
		s.logger.WithError(err).WithField("guid", guid).Warn("reading back updated customer failed")
		return nil, &domain.ServiceError{Err: fmt.Errorf("customer with guid '%s' could not be read back after update: %w", guid, err)}
	}
	return updated, nil
}

// Delete removes the customer stored under guid and returns its last state.
func (s *Service) Delete(ctx context.Context, guid string) (*domain.Customer, error) {
	old, err := s.existing(ctx, guid, "deleted")
	if err != nil {
		return nil, err
	}

	if err := s.repo.Delete(ctx, guid); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, &domain.NotFoundError{GUID: guid, Action: "deleted"}
		}
		s.logger.WithError(err).WithField("guid", guid).Warn("deleting customer failed")
		return nil, &domain.ServiceError{Err: err}
	}
	return old, nil
}

// existing loads the record a write is about to change. Unlike the read
// operations it reports store faults.
func (s *Service) existing(ctx context.Context, guid, action string) (*domain.Customer, error) {
	c, err := s.repo.GetByGUID(ctx, guid)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, &domain.NotFoundError{GUID: guid, Action: action}
		}
		s.logger.WithError(err).WithField("guid", guid).Warnf("loading customer to be %s failed", action)
		return nil, &domain.ServiceError{Err: err}
	}
	return c, nil
}

func (s *Service) writeError(err error, c domain.Customer) error {
	if errors.Is(err, domain.ErrAlreadyExists) {
		return &domain.ServiceError{Err: fmt.Errorf("customer with guid '%s' or email '%s' %w",
			c.GUIDValue(), stringValue(c.Email), err)}
	}
	return &domain.ServiceError{Err: err}
}

func stringValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
