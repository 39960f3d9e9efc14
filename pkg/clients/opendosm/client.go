package opendosm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/mamadbah2/lfs-pipeline/internal/config"
	"github.com/mamadbah2/lfs-pipeline/internal/domain/models"
)

const (
	// CatalogueID identifies the monthly labour force survey dataset.
	CatalogueID = "lfs_month"
	// Limit caps the number of records requested in a single call.
	Limit = 100

	requestTimeout = 30 * time.Second
)

// ErrUnexpectedStatus is matched by every StatusError.
var ErrUnexpectedStatus = errors.New("unexpected status from data catalogue")

// StatusError reports a non-200 answer from the data catalogue.
type StatusError struct {
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("data catalogue returned status %d", e.StatusCode)
}

// Is lets errors.Is(err, ErrUnexpectedStatus) match.
func (e *StatusError) Is(target error) bool {
	return target == ErrUnexpectedStatus
}

// Client exposes the data catalogue operations used by the pipeline.
type Client interface {
	FetchDataset(ctx context.Context) (models.RawData, error)
}

// APIClient is a resty-backed implementation of Client.
type APIClient struct {
	httpClient *resty.Client
	logger     *zap.Logger
}

// NewClient builds a data catalogue client using the provided configuration values.
func NewClient(cfg config.SourceConfig, logger *zap.Logger) *APIClient {
	if logger == nil {
		logger = zap.NewNop()
	}

	restyClient := resty.New()
	restyClient.
		SetBaseURL(strings.TrimSuffix(cfg.BaseURL, "/")).
		SetHeader("Accept", "application/json").
		SetTimeout(requestTimeout)

	return &APIClient{
		httpClient: restyClient,
		logger:     logger,
	}
}

// FetchDataset issues a single GET for the lfs_month catalogue and returns the raw body.
// A non-200 answer is logged and returned as *StatusError; transport failures are
// returned wrapped without logging.
func (c *APIClient) FetchDataset(ctx context.Context) (models.RawData, error) {
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"id":    CatalogueID,
			"limit": strconv.Itoa(Limit),
		}).
		Get("/data-catalogue")
	if err != nil {
		return nil, fmt.Errorf("fetch %s dataset: %w", CatalogueID, err)
	}

	if resp.StatusCode() != http.StatusOK {
		c.logger.Warn("data catalogue request failed",
			zap.Int("status", resp.StatusCode()),
			zap.String("catalogue", CatalogueID))
		return nil, &StatusError{StatusCode: resp.StatusCode()}
	}

	c.logger.Debug("data catalogue fetched",
		zap.String("catalogue", CatalogueID),
		zap.Int("bytes", len(resp.Body())))

	return models.RawData(resp.Body()), nil
}
