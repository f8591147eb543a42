package auth

import (
	"context"
	"net/http"
	"os"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/sheets/v4"

	"go-review-pipeline/internal/errors"
)

// APIKeyHeader carries the key for the reviews REST source.
const APIKeyHeader = "X-Api-Key"

// CredentialProvider hands out an authorized HTTP client for a data source.
type CredentialProvider interface {
	HTTPClient(ctx context.Context) (*http.Client, error)
}

// ServiceAccount authorizes read-only spreadsheet access with a Google
// service account key file.
type ServiceAccount struct {
	CredentialsFile string
	Scopes          []string
}

// NewServiceAccount reads credentials from path with the read-only
// spreadsheets scope.
func NewServiceAccount(path string) *ServiceAccount {
	return &ServiceAccount{
		CredentialsFile: path,
		Scopes:          []string{sheets.SpreadsheetsReadonlyScope},
	}
}

func (s *ServiceAccount) HTTPClient(ctx context.Context) (*http.Client, error) {
	if s.CredentialsFile == "" {
		return nil, errors.ConfigInvalid("service account credentials file is not set")
	}
	data, err := os.ReadFile(s.CredentialsFile)
	if err != nil {
		return nil, &errors.AppError{Code: errors.CodeConfigInvalid, Message: "read credentials " + s.CredentialsFile, Cause: err}
	}
	conf, err := google.JWTConfigFromJSON(data, s.Scopes...)
	if err != nil {
		return nil, &errors.AppError{Code: errors.CodeConfigInvalid, Message: "invalid service account key", Cause: err}
	}
	return conf.Client(ctx), nil
}

// APIKey adds a static key header to every request.
type APIKey struct {
	Key  string
	Base http.RoundTripper
}

func (a *APIKey) HTTPClient(_ context.Context) (*http.Client, error) {
	if a.Key == "" {
		return nil, errors.ConfigInvalid("api key is not set")
	}
	base := a.Base
	if base == nil {
		base = http.DefaultTransport
	}
	return &http.Client{Transport: &headerTransport{key: a.Key, base: base}}, nil
}

type headerTransport struct {
	key  string
	base http.RoundTripper
}

func (t *headerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.Header.Set(APIKeyHeader, t.key)
	return t.base.RoundTrip(req)
}
