// Package source retrieves raw endpoint documents from a node REST API or
// from saved responses on disk.
package source

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"
)

// Endpoint names a node REST API collection.
type Endpoint string

const (
	EndpointBlocks Endpoint = "blocks"
	EndpointState  Endpoint = "state"
)

// Path returns the URL path of the endpoint.
func (e Endpoint) Path() string { return "/" + string(e) }

// Noun names one record of the endpoint.
func (e Endpoint) Noun() string {
	if e == EndpointBlocks {
		return "block"
	}
	return string(e)
}

// Source fetches the raw JSON document of an endpoint.
type Source interface {
	Fetch(ctx context.Context, endpoint Endpoint) ([]byte, error)
}

// Query holds the optional paging and filter parameters of a request.
// Zero values are omitted. Start is a paging id of one endpoint's records,
// so it is only sent to StartOn, or to every endpoint when StartOn is empty.
type Query struct {
	Limit   int
	Start   string
	StartOn Endpoint
	Head    string
	Address string
}

func (q Query) params(endpoint Endpoint) map[string]string {
	p := map[string]string{}
	if q.Limit > 0 {
		p["limit"] = strconv.Itoa(q.Limit)
	}
	if q.Start != "" && (q.StartOn == "" || q.StartOn == endpoint) {
		p["start"] = q.Start
	}
	if q.Head != "" {
		p["head"] = q.Head
	}
	if q.Address != "" && endpoint == EndpointState {
		p["address"] = q.Address
	}
	return p
}

// StatusError is returned for any non-2xx response.
type StatusError struct {
	Code     int
	Endpoint Endpoint
}

func (e *StatusError) Error() string {
	if e.Code >= 400 && e.Code < 600 {
		return fmt.Sprintf("Error code %d when trying to get %s endpoint", e.Code, e.Endpoint.Path())
	}
	return fmt.Sprintf("Unexpected code %d when trying to get %s endpoint", e.Code, e.Endpoint.Path())
}

// HTTPSource reads endpoints from a node. Redirects are returned as
// responses, not followed.
type HTTPSource struct {
	name   string
	client *resty.Client
	query  Query
}

// NewHTTPSource creates a source for the node at baseURL.
func NewHTTPSource(name, baseURL string, timeout time.Duration, query Query) *HTTPSource {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json").
		SetRedirectPolicy(resty.RedirectPolicyFunc(func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		}))
	return &HTTPSource{name: name, client: client, query: query}
}

func (s *HTTPSource) Name() string { return s.name }

// Fetch performs a single GET of the endpoint.
func (s *HTTPSource) Fetch(ctx context.Context, endpoint Endpoint) ([]byte, error) {
	params := s.query.params(endpoint)
	slog.Debug("Fetching endpoint", "node", s.name, "path", endpoint.Path(), "params", params)

	start := time.Now()
	resp, err := s.client.R().
		SetContext(ctx).
		SetQueryParams(params).
		Get(endpoint.Path())
	if err != nil {
		return nil, errors.WithMessagef(err, "failed to get %s endpoint from %s", endpoint.Path(), s.name)
	}

	slog.Debug("Fetched endpoint", "node", s.name, "path", endpoint.Path(),
		"status", resp.StatusCode(), "bytes", len(resp.Body()), "latency", time.Since(start))

	if code := resp.StatusCode(); code < 200 || code >= 300 {
		return nil, &StatusError{Code: code, Endpoint: endpoint}
	}
	return resp.Body(), nil
}

// FileSource reads a saved endpoint response from disk. The same file
// serves every endpoint.
type FileSource struct {
	Path string
}

func (s FileSource) Fetch(_ context.Context, endpoint Endpoint) ([]byte, error) {
	raw, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("unable to open file for reading %s data: %w", endpoint.Noun(), err)
	}
	return raw, nil
}
