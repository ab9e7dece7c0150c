// Package archive persists completed analysis reports to Postgres. Writes
// are insert-only and never read back; the analyzer itself stays a pure
// function of its input whether or not an archive is configured.
package archive

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/lib/pq"

	"spyglass/pkg/logging"
	"spyglass/pkg/models"
)

// Archive writes analysis reports to a Postgres table.
type Archive struct {
	db     *sql.DB
	logger logging.Logger
}

// New creates an archive backed by the given connection.
func New(db *sql.DB, logger logging.Logger) *Archive {
	return &Archive{db: db, logger: logger}
}

const insertReport = `
	INSERT INTO feed_analysis_reports (
		request_id, message_count, engagement_score,
		sentiment_positive, sentiment_negative, sentiment_neutral,
		trending_topics, anomaly_detected, processing_time_ms, created_at
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

// SaveReport inserts one report row.
func (a *Archive) SaveReport(ctx context.Context, requestID string, result models.AnalysisResult, messageCount int) error {
	_, err := a.db.ExecContext(ctx, insertReport,
		requestID,
		messageCount,
		result.EngagementScore,
		result.SentimentDistribution.Positive,
		result.SentimentDistribution.Negative,
		result.SentimentDistribution.Neutral,
		pq.Array(result.TrendingTopics),
		result.AnomalyDetected,
		result.ProcessingTimeMs,
		time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("insert analysis report: %w", err)
	}
	return nil
}
