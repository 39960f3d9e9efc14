package supabase

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/mamadbah2/lfs-pipeline/internal/config"
)

const requestTimeout = 30 * time.Second

// ErrMissingCredentials is returned when SUPABASE_URL or SUPABASE_KEY is empty.
var ErrMissingCredentials = errors.New("supabase url and key must be provided")

// Client exposes the PostgREST operations used by the application.
type Client interface {
	Upsert(ctx context.Context, table, onConflict string, rows any) error
}

// APIClient is a resty-backed implementation of Client.
type APIClient struct {
	httpClient *resty.Client
	url        string
	key        string
}

// NewClient builds a Supabase REST client. Credentials are checked lazily so
// that a missing key surfaces at the first request.
func NewClient(cfg config.SupabaseConfig) *APIClient {
	base := strings.TrimSuffix(cfg.URL, "/")

	restyClient := resty.New()
	restyClient.
		SetBaseURL(base+"/rest/v1").
		SetHeader("apikey", cfg.Key).
		SetHeader("Authorization", fmt.Sprintf("Bearer %s", cfg.Key)).
		SetHeader("Content-Type", "application/json").
		SetTimeout(requestTimeout)

	return &APIClient{
		httpClient: restyClient,
		url:        base,
		key:        cfg.Key,
	}
}

// apiError represents a PostgREST error payload.
type apiError struct {
	Message string `json:"message"`
	Code    string `json:"code"`
	Details string `json:"details"`
	Hint    string `json:"hint"`
}

// Upsert posts rows to the table in a single request, merging duplicates on the
// onConflict column list.
func (c *APIClient) Upsert(ctx context.Context, table, onConflict string, rows any) error {
	if c.url == "" || c.key == "" {
		return ErrMissingCredentials
	}
	if table == "" {
		return errors.New("table must not be empty")
	}

	apiErr := new(apiError)

	req := c.httpClient.R().
		SetContext(ctx).
		SetHeader("Prefer", "resolution=merge-duplicates,return=minimal").
		SetBody(rows).
		SetError(apiErr)
	if onConflict != "" {
		req.SetQueryParam("on_conflict", onConflict)
	}

	resp, err := req.Post("/" + table)
	if err != nil {
		return fmt.Errorf("upsert into %s: %w", table, err)
	}

	if resp.StatusCode() >= http.StatusBadRequest {
		message := apiErr.Message
		if message == "" {
			message = resp.String()
		}
		return fmt.Errorf("supabase api error: status=%d, code=%s, message=%s", resp.StatusCode(), apiErr.Code, message)
	}

	return nil
}
