package archive

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"spyglass/pkg/logging"
	"spyglass/pkg/models"
)

func TestSaveReport(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("INSERT INTO feed_analysis_reports").
		WithArgs("req-1", 3, 0.075,
			50.0, 25.0, 25.0,
			sqlmock.AnyArg(), false, int64(12), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	a := New(db, logging.NewLogger())
	result := models.AnalysisResult{
		SentimentDistribution: models.SentimentDistribution{Positive: 50, Negative: 25, Neutral: 25},
		EngagementScore:       0.075,
		TrendingTopics:        []string{"#promo"},
		ProcessingTimeMs:      12,
	}

	err = a.SaveReport(context.Background(), "req-1", result, 3)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSaveReport_ExecError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("INSERT INTO feed_analysis_reports").
		WillReturnError(assert.AnError)

	a := New(db, logging.NewLogger())
	err = a.SaveReport(context.Background(), "req-1", models.AnalysisResult{}, 0)
	require.Error(t, err)
}
