package export

import (
	"context"
	"fmt"
	"log/slog"

	"memberscout/internal/types"
)

// Sink persists the final record sequence to one target.
type Sink interface {
	// Export writes all records in one call.
	Export(ctx context.Context, records []types.MemberRecord) error

	// Name returns the sink identifier.
	Name() string
}

// Publisher writes the record sequence to the primary sink and then to any
// best-effort sinks. The primary sink (the CSV file) is authoritative: its
// failure aborts publishing before any best-effort sink runs. Best-effort
// sink failures are logged and swallowed.
type Publisher struct {
	primary    Sink
	bestEffort []Sink
	logger     *slog.Logger
}

// NewPublisher creates a Publisher.
func NewPublisher(primary Sink, bestEffort []Sink, logger *slog.Logger) *Publisher {
	return &Publisher{
		primary:    primary,
		bestEffort: bestEffort,
		logger:     logger.With("component", "publisher"),
	}
}

// Publish persists the records. With zero records no sink is invoked.
func (p *Publisher) Publish(ctx context.Context, records []types.MemberRecord) error {
	if len(records) == 0 {
		p.logger.Warn("no records to publish, skipping all sinks")
		return nil
	}

	if err := p.primary.Export(ctx, records); err != nil {
		return fmt.Errorf("%s sink: %w", p.primary.Name(), err)
	}
	p.logger.Info("records published", "sink", p.primary.Name(), "records", len(records))

	for _, sink := range p.bestEffort {
		if err := sink.Export(ctx, records); err != nil {
			p.logger.Error("best-effort sink failed", "sink", sink.Name(), "error", err)
			continue
		}
		p.logger.Info("records published", "sink", sink.Name(), "records", len(records))
	}

	return nil
}
