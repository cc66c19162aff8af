package export

import (
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"memberscout/internal/types"
)

// CSVSink writes all records to a single CSV file with the fixed header row.
// Each export overwrites the previous file.
type CSVSink struct {
	path   string
	logger *slog.Logger
}

// NewCSVSink creates a CSV file sink.
func NewCSVSink(path string, logger *slog.Logger) *CSVSink {
	return &CSVSink{
		path:   path,
		logger: logger.With("component", "csv_sink"),
	}
}

func (s *CSVSink) Name() string { return "csv" }

func (s *CSVSink) Export(_ context.Context, records []types.MemberRecord) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return &types.SinkError{Sink: s.Name(), Err: fmt.Errorf("create output dir: %w", err)}
	}

	f, err := os.Create(s.path)
	if err != nil {
		return &types.SinkError{Sink: s.Name(), Err: fmt.Errorf("create output file: %w", err)}
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(types.ExportHeader); err != nil {
		return &types.SinkError{Sink: s.Name(), Err: fmt.Errorf("write header: %w", err)}
	}
	for _, rec := range records {
		if err := w.Write(rec.Row()); err != nil {
			return &types.SinkError{Sink: s.Name(), Err: fmt.Errorf("write row: %w", err)}
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return &types.SinkError{Sink: s.Name(), Err: err}
	}

	s.logger.Info("CSV written", "path", s.path, "records", len(records))
	return nil
}
