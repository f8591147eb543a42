package source

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"go-review-pipeline/internal/auth"
	"go-review-pipeline/internal/errors"
	"go-review-pipeline/internal/pipeline"
)

// APIReader reads review rows from the reviews REST endpoint.
type APIReader struct {
	baseURL string
	client  *http.Client
}

type valuesResponse struct {
	Values [][]any `json:"values"`
}

func NewAPIReader(ctx context.Context, baseURL string, creds auth.CredentialProvider) (*APIReader, error) {
	if _, err := url.ParseRequestURI(baseURL); err != nil {
		return nil, &errors.AppError{Code: errors.CodeConfigInvalid, Message: "invalid api url", Cause: err}
	}
	client, err := creds.HTTPClient(ctx)
	if err != nil {
		return nil, err
	}
	return &APIReader{baseURL: strings.TrimRight(baseURL, "/"), client: client}, nil
}

func (a *APIReader) ReadRows(ctx context.Context, req pipeline.ReadRequest) ([][]any, error) {
	query := url.Values{}
	if req.SKU != "" {
		query.Set("sku", req.SKU)
	}
	if req.Page.Page > 0 {
		query.Set("page", strconv.Itoa(req.Page.Page))
	}
	if req.Page.Length != nil {
		query.Set("length", strconv.Itoa(*req.Page.Length))
	}
	endpoint := a.baseURL + "/reviews"
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, errors.TransportError("reviews api", err)
	}
	httpReq.Header.Set("Accept", "application/json")

	resp, err := a.client.Do(httpReq)
	if err != nil {
		return nil, errors.TransportError("reviews api", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.TransportError("reviews api", fmt.Errorf("unexpected status %s", resp.Status))
	}

	var body valuesResponse
	dec := json.NewDecoder(resp.Body)
	dec.UseNumber()
	if err := dec.Decode(&body); err != nil {
		return nil, errors.TransportError("reviews api", err)
	}
	if body.Values == nil {
		return [][]any{}, nil
	}
	return body.Values, nil
}
