package export

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"memberscout/internal/config"
	"memberscout/internal/types"
)

// MongoSink archives records to a MongoDB collection. Like the sheets sink
// it is best-effort: the run does not depend on it.
type MongoSink struct {
	client     *mongo.Client
	collection *mongo.Collection
	logger     *slog.Logger
}

// NewMongoSink connects to MongoDB and verifies the connection.
func NewMongoSink(ctx context.Context, cfg config.MongoConfig, logger *slog.Logger) (*MongoSink, error) {
	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("mongodb connect: %w", err)
	}
	if err := client.Ping(connectCtx, nil); err != nil {
		return nil, fmt.Errorf("mongodb ping: %w", err)
	}

	return &MongoSink{
		client:     client,
		collection: client.Database(cfg.Database).Collection(cfg.Collection),
		logger:     logger.With("component", "mongo_sink"),
	}, nil
}

func (s *MongoSink) Name() string { return "mongodb" }

func (s *MongoSink) Export(ctx context.Context, records []types.MemberRecord) error {
	docs := make([]any, len(records))
	scrapedAt := time.Now()
	for i, rec := range records {
		docs[i] = map[string]any{
			"company":     rec.Company,
			"contact":     rec.Contact,
			"phone":       rec.Phone,
			"email":       rec.Email,
			"city":        rec.City,
			"province":    rec.Province,
			"website":     rec.Website,
			"member_type": rec.MemberType,
			"scraped_at":  scrapedAt,
		}
	}

	insertCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if _, err := s.collection.InsertMany(insertCtx, docs); err != nil {
		return &types.SinkError{Sink: s.Name(), Err: fmt.Errorf("insert records: %w", err)}
	}

	s.logger.Info("records archived", "count", len(records))
	return nil
}

// Close disconnects from MongoDB.
func (s *MongoSink) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}
