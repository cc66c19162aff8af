package export

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"memberscout/internal/config"
	"memberscout/internal/types"
)

// SheetsSink publishes records to a Google Sheets spreadsheet: it clears the
// configured range, then writes the header row plus all data rows in one
// batched update starting at A1.
type SheetsSink struct {
	cfg    config.SheetsConfig
	svc    *sheets.Service
	logger *slog.Logger
}

// NewSheetsSink authenticates with the service-account key file and builds
// the Sheets client. A missing or malformed key file is an error here, at
// startup, before any scraping begins.
func NewSheetsSink(ctx context.Context, cfg config.SheetsConfig, logger *slog.Logger) (*SheetsSink, error) {
	if err := validateServiceAccountKey(cfg.CredentialsFile); err != nil {
		return nil, err
	}

	svc, err := sheets.NewService(ctx,
		option.WithCredentialsFile(cfg.CredentialsFile),
		option.WithScopes(sheets.SpreadsheetsScope),
	)
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}

	return &SheetsSink{
		cfg:    cfg,
		svc:    svc,
		logger: logger.With("component", "sheets_sink"),
	}, nil
}

func (s *SheetsSink) Name() string { return "sheets" }

func (s *SheetsSink) Export(ctx context.Context, records []types.MemberRecord) error {
	_, err := s.svc.Spreadsheets.Values.
		Clear(s.cfg.SheetID, s.cfg.ClearRange, &sheets.ClearValuesRequest{}).
		Context(ctx).Do()
	if err != nil {
		return &types.SinkError{Sink: s.Name(), Err: fmt.Errorf("clear range %s: %w", s.cfg.ClearRange, err)}
	}

	values := make([][]any, 0, len(records)+1)
	values = append(values, toRow(types.ExportHeader))
	for _, rec := range records {
		values = append(values, toRow(rec.Row()))
	}

	_, err = s.svc.Spreadsheets.Values.
		Update(s.cfg.SheetID, "A1", &sheets.ValueRange{Values: values}).
		ValueInputOption("RAW").
		Context(ctx).Do()
	if err != nil {
		return &types.SinkError{Sink: s.Name(), Err: fmt.Errorf("update values: %w", err)}
	}

	s.logger.Info("spreadsheet updated", "sheet_id", s.cfg.SheetID, "rows", len(values))
	return nil
}

func toRow(cells []string) []any {
	row := make([]any, len(cells))
	for i, c := range cells {
		row[i] = c
	}
	return row
}

// validateServiceAccountKey checks the key file is a readable service
// account credential before any network activity happens.
func validateServiceAccountKey(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("%w: read %s: %v", types.ErrBadCredentials, path, err)
	}

	var key struct {
		Type        string `json:"type"`
		ClientEmail string `json:"client_email"`
		PrivateKey  string `json:"private_key"`
	}
	if err := json.Unmarshal(raw, &key); err != nil {
		return fmt.Errorf("%w: parse %s: %v", types.ErrBadCredentials, path, err)
	}
	if key.Type != "service_account" || key.ClientEmail == "" || key.PrivateKey == "" {
		return fmt.Errorf("%w: %s is not a service account key", types.ErrBadCredentials, path)
	}
	return nil
}
