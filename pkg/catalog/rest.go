// pkg/catalog/rest.go
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/David-Botos/report-migrator/pkg/model"
)

// Client queries one org's metadata endpoint over HTTPS. It authenticates
// with the API session token harvested from the logged-in browser session.
type Client struct {
	httpClient   *http.Client
	instanceURL  string
	sessionToken string
	apiVersion   string
	logger       *zap.Logger
}

// NewClient creates a catalog client for a single org.
func NewClient(instanceURL, sessionToken, apiVersion string, logger *zap.Logger) *Client {
	return &Client{
		httpClient:   &http.Client{Timeout: 60 * time.Second},
		instanceURL:  strings.TrimRight(instanceURL, "/"),
		sessionToken: sessionToken,
		apiVersion:   apiVersion,
		logger:       logger,
	}
}

// fieldRecords and objectRecords mirror the endpoint's query response shape.
type fieldRecords struct {
	TotalSize int                   `json:"totalSize"`
	Records   []model.FieldMetadata `json:"records"`
}

type objectRecords struct {
	TotalSize int                    `json:"totalSize"`
	Records   []model.ObjectMetadata `json:"records"`
}

// FieldsByIDs fetches field metadata for all ids in a single query.
func (c *Client) FieldsByIDs(ctx context.Context, ids []string) ([]model.FieldMetadata, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	query, err := fieldsByIDsQuery(ids)
	if err != nil {
		return nil, err
	}
	var res fieldRecords
	if err := c.runQuery(ctx, query, &res); err != nil {
		return nil, err
	}
	return res.Records, nil
}

// ObjectsByIDs fetches custom object metadata for all ids in a single query.
func (c *Client) ObjectsByIDs(ctx context.Context, ids []string) ([]model.ObjectMetadata, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	query, err := objectsByIDsQuery(ids)
	if err != nil {
		return nil, err
	}
	var res objectRecords
	if err := c.runQuery(ctx, query, &res); err != nil {
		return nil, err
	}
	return res.Records, nil
}

// ObjectsByNames fetches custom object metadata by portable identity in a
// single query.
func (c *Client) ObjectsByNames(ctx context.Context, keys []model.ObjectKey) ([]model.ObjectMetadata, error) {
	if len(keys) == 0 {
		return nil, nil
	}
	query, err := objectsByNamesQuery(keys)
	if err != nil {
		return nil, err
	}
	var res objectRecords
	if err := c.runQuery(ctx, query, &res); err != nil {
		return nil, err
	}
	return res.Records, nil
}

// FieldsByNaturalKeys fetches every field matching one of the keys in a
// single query.
func (c *Client) FieldsByNaturalKeys(ctx context.Context, keys []model.NaturalKey) ([]model.FieldMetadata, error) {
	if len(keys) == 0 {
		return nil, nil
	}
	query, err := fieldsByNaturalKeysQuery(keys)
	if err != nil {
		return nil, err
	}
	var res fieldRecords
	if err := c.runQuery(ctx, query, &res); err != nil {
		return nil, err
	}
	return res.Records, nil
}

// runQuery executes one statement against the metadata query endpoint and
// decodes the response into out. Failures are returned as-is; nothing is
// retried.
func (c *Client) runQuery(ctx context.Context, query string, out interface{}) error {
	endpoint := fmt.Sprintf("%s/services/data/v%s/tooling/query?q=%s",
		c.instanceURL, c.apiVersion, url.QueryEscape(query))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("build catalog request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.sessionToken)
	req.Header.Set("Accept", "application/json")

	if c.logger != nil {
		c.logger.Debug("Running catalog query", zap.String("query", query))
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("catalog query failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read catalog response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("catalog query returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode catalog response: %w", err)
	}
	return nil
}
