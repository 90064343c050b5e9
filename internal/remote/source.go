// Package remote fetches articles from the upstream search API. One GET per
// trigger, no retries: failed fetches wait for the next trigger.
package remote

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-resty/resty/v2"
	"github.com/tkaraca/newsdesk/internal/config"
	"github.com/tkaraca/newsdesk/internal/models"
)

// Source produces the current article set from the remote search API.
type Source interface {
	Fetch(ctx context.Context, query string) ([]models.Article, error)
}

// Client is the resty-backed Source implementation.
type Client struct {
	client    *resty.Client
	endpoint  string
	apiKey    string
	imageBase string
}

func NewClient(cfg *config.Config) *Client {
	return &Client{
		client:    resty.New().SetTimeout(cfg.FetchTimeout),
		endpoint:  cfg.SearchEndpoint,
		apiKey:    cfg.SearchAPIKey,
		imageBase: cfg.ImageBaseURL,
	}
}

// Fetch issues the search request and maps the envelope to articles,
// keeping only those with a resolved image URL.
func (c *Client) Fetch(ctx context.Context, query string) ([]models.Article, error) {
	req := c.client.R().
		SetContext(ctx).
		SetHeader("Accept", "application/json").
		SetQueryParam("api-key", c.apiKey)
	if query != "" {
		req.SetQueryParam("q", query)
	}

	resp, err := req.Get(c.endpoint)
	if err != nil {
		return nil, &FetchError{Err: err}
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, &FetchError{StatusCode: resp.StatusCode()}
	}

	var envelope models.SearchResponse
	if err := json.Unmarshal(resp.Body(), &envelope); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParseFailed, err)
	}

	return models.ArticlesFromDocs(envelope.Response.Docs, c.imageBase), nil
}
