package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"customers-api/internal/domain"
	"customers-api/internal/metrics"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// CustomerService is the data-access contract the handlers call into.
type CustomerService interface {
	GetAll(ctx context.Context) []domain.Customer
	GetByGUID(ctx context.Context, guid string) (*domain.Customer, bool)
	GetByEmail(ctx context.Context, email string) (*domain.Customer, bool)
	Insert(ctx context.Context, c *domain.Customer) (*domain.Customer, error)
	Update(ctx context.Context, guid string, c *domain.Customer) (*domain.Customer, error)
	Delete(ctx context.Context, guid string) (*domain.Customer, error)
}

type customerHandler struct {
	svc     CustomerService
	metrics *metrics.Recorder
	logger  *logrus.Logger
}

type errorResponse struct {
	Message string `json:"message"`
}

// list answers GET /customers, optionally filtered by guid or email. A guid
// filter wins when both are supplied. The response is always an array.
func (h *customerHandler) list(c *gin.Context) {
	ctx := c.Request.Context()
	if guid, ok := c.GetQuery("guid"); ok {
		h.logger.WithField("guid", guid).Debug("getting customer by guid")
		found, exists := h.svc.GetByGUID(ctx, guid)
		c.JSON(http.StatusOK, asList(found, exists))
		return
	}
	if email, ok := c.GetQuery("email"); ok {
		h.logger.WithField("email", email).Debug("getting customer by email")
		found, exists := h.svc.GetByEmail(ctx, email)
		c.JSON(http.StatusOK, asList(found, exists))
		return
	}
	h.logger.Debug("getting all customers")
	c.JSON(http.StatusOK, h.svc.GetAll(ctx))
}

func (h *customerHandler) insert(c *gin.Context) {
	done := h.metrics.Start(metrics.Insert)
	defer done()

	in, err := decodeCustomer(c.Request.Body)
	if err != nil {
		h.metrics.Failed(metrics.Insert)
		c.JSON(http.StatusBadRequest, errorResponse{Message: err.Error()})
		return
	}

	created, err := h.svc.Insert(c.Request.Context(), in)
	if err != nil {
		h.metrics.Failed(metrics.Insert)
		h.logger.WithError(err).Info("error inserting new customer")
		c.JSON(http.StatusBadRequest, errorResponse{Message: err.Error()})
		return
	}
	h.logger.WithField("guid", created.GUIDValue()).Info("inserted customer")
	c.JSON(http.StatusOK, created)
}

// update answers PUT /customers/:guid. The body replaces the stored record
// entirely: fields left out of the body are cleared.
func (h *customerHandler) update(c *gin.Context) {
	done := h.metrics.Start(metrics.Update)
	defer done()

	guid := c.Param("guid")
	in, err := decodeCustomer(c.Request.Body)
	if err != nil {
		h.metrics.Failed(metrics.Update)
		c.JSON(http.StatusBadRequest, errorResponse{Message: err.Error()})
		return
	}

	updated, err := h.svc.Update(c.Request.Context(), guid, in)
	if err != nil {
		h.writeError(c, metrics.Update, guid, err)
		return
	}
	h.logger.WithField("guid", guid).Info("updated customer")
	c.JSON(http.StatusOK, updated)
}

func (h *customerHandler) delete(c *gin.Context) {
	done := h.metrics.Start(metrics.Delete)
	defer done()

	guid := c.Param("guid")
	old, err := h.svc.Delete(c.Request.Context(), guid)
	if err != nil {
		h.writeError(c, metrics.Delete, guid, err)
		return
	}
	h.logger.WithField("guid", guid).Info("deleted customer")
	c.JSON(http.StatusOK, old)
}

func (h *customerHandler) writeError(c *gin.Context, op metrics.Operation, guid string, err error) {
	entry := h.logger.WithFields(logrus.Fields{"guid": guid, "op": op})
	if errors.Is(err, domain.ErrNotFound) {
		entry.Info("no customer has that guid")
		c.JSON(http.StatusNotFound, errorResponse{Message: err.Error()})
		return
	}
	h.metrics.Failed(op)
	entry.WithError(err).Info("customer write failed")
	c.JSON(http.StatusBadRequest, errorResponse{Message: err.Error()})
}

// decodeCustomer reads a single JSON customer. An empty body or a JSON null
// yields a nil customer, which the service rejects. Anything after the first
// value is an error.
func decodeCustomer(body io.Reader) (*domain.Customer, error) {
	var in *domain.Customer
	if body == nil {
		return nil, nil
	}
	dec := json.NewDecoder(body)
	if err := dec.Decode(&in); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("invalid customer payload: %w", err)
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return nil, errors.New("invalid customer payload: unexpected data after customer object")
	}
	return in, nil
}

func asList(c *domain.Customer, ok bool) []domain.Customer {
	if !ok || c == nil {
		return []domain.Customer{}
	}
	return []domain.Customer{*c}
}
