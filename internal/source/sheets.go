package source

import (
	"context"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"go-review-pipeline/internal/auth"
	"go-review-pipeline/internal/errors"
	"go-review-pipeline/internal/pipeline"
)

// SheetsReader reads review rows from a Google spreadsheet.
type SheetsReader struct {
	service       *sheets.Service
	spreadsheetID string
}

// NewSheetsReader creates a reader authorized by creds. Extra client
// options are applied after the credentials.
func NewSheetsReader(ctx context.Context, spreadsheetID string, creds auth.CredentialProvider, opts ...option.ClientOption) (*SheetsReader, error) {
	if spreadsheetID == "" {
		return nil, errors.ConfigInvalid("spreadsheet id is required")
	}
	client, err := creds.HTTPClient(ctx)
	if err != nil {
		return nil, err
	}
	clientOpts := append([]option.ClientOption{option.WithHTTPClient(client)}, opts...)
	service, err := sheets.NewService(ctx, clientOpts...)
	if err != nil {
		return nil, errors.TransportError("sheets client", err)
	}
	return &SheetsReader{service: service, spreadsheetID: spreadsheetID}, nil
}

func (s *SheetsReader) ReadRows(ctx context.Context, req pipeline.ReadRequest) ([][]any, error) {
	rng := req.Range.String()
	resp, err := s.service.Spreadsheets.Values.Get(s.spreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		return nil, errors.TransportError("sheet range "+rng, err)
	}
	if resp.Values == nil {
		return [][]any{}, nil
	}
	return resp.Values, nil
}
