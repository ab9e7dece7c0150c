package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"spyglass/internal/analyzer"
	"spyglass/internal/archive"
	"spyglass/internal/metrics"
	api "spyglass/pkg/api/spyglass"
	"spyglass/pkg/logging"
	"spyglass/pkg/validation"
)

var (
	logger         logging.Logger
	serviceMetrics *metrics.Metrics
	feedValidator  *validation.FeedValidator
	reportArchive  *archive.Archive
)

// Init initializes the handlers package. reports may be nil when no archive
// database is configured.
func Init(log logging.Logger, m *metrics.Metrics, reports *archive.Archive) {
	logger = log
	serviceMetrics = m
	feedValidator = validation.NewFeedValidator()
	reportArchive = reports
}

// AnalyzeFeed handles POST /analyze-feed: validate, run the analyzer core,
// attach the measured processing time, and envelope the report.
func AnalyzeFeed(c *gin.Context) {
	var req api.AnalyzeFeedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		if serviceMetrics != nil {
			serviceMetrics.FeedAnalyses.WithLabelValues("invalid_payload").Inc()
		}
		c.JSON(http.StatusBadRequest, api.ErrorResponse{
			Error:   "Payload inválido. Verifique os campos enviados.",
			Code:    "INVALID_PAYLOAD",
			Details: []string{err.Error()},
		})
		return
	}

	messages, err := feedValidator.ValidateRequest(&req)
	if err != nil {
		if serviceMetrics != nil {
			serviceMetrics.FeedAnalyses.WithLabelValues("invalid_payload").Inc()
		}
		details := []string{err.Error()}
		var reqErr *validation.RequestError
		if errors.As(err, &reqErr) {
			details = reqErr.Details
		}
		c.JSON(http.StatusBadRequest, api.ErrorResponse{
			Error:   "Payload inválido. Verifique os campos enviados.",
			Code:    "INVALID_PAYLOAD",
			Details: details,
		})
		return
	}

	start := time.Now()
	result, err := analyzer.AnalyzeFeed(messages, req.TimeWindowMinutes, time.Now().UTC())
	if err != nil {
		if errors.Is(err, analyzer.ErrUnsupportedWindow) {
			if serviceMetrics != nil {
				serviceMetrics.FeedAnalyses.WithLabelValues("rejected_window").Inc()
			}
			c.JSON(http.StatusUnprocessableEntity, api.ErrorResponse{
				Error: "Valor de janela temporal não suportado na versão atual",
				Code:  "UNSUPPORTED_TIME_WINDOW",
			})
			return
		}

		logger.WithError(err).Error("Feed analysis failed")
		if serviceMetrics != nil {
			serviceMetrics.FeedAnalyses.WithLabelValues("error").Inc()
		}
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{
			Error: "Falha interna ao analisar o feed",
			Code:  "ANALYSIS_FAILED",
		})
		return
	}

	elapsed := time.Since(start)
	result.ProcessingTimeMs = elapsed.Milliseconds()

	if serviceMetrics != nil {
		serviceMetrics.FeedAnalyses.WithLabelValues("completed").Inc()
		serviceMetrics.AnalysisDuration.WithLabelValues("analyze_feed").Observe(elapsed.Seconds())
		serviceMetrics.MessagesProcessed.WithLabelValues().Add(float64(len(messages)))
		if result.AnomalyDetails.BurstActivity {
			serviceMetrics.AnomalyFlags.WithLabelValues("burst_activity").Inc()
		}
		if result.AnomalyDetails.AlternatingSentiment {
			serviceMetrics.AnomalyFlags.WithLabelValues("alternating_sentiment").Inc()
		}
		if result.AnomalyDetails.SynchronizedPosting {
			serviceMetrics.AnomalyFlags.WithLabelValues("synchronized_posting").Inc()
		}
	}

	if reportArchive != nil {
		requestID := c.GetString("request_id")
		if err := reportArchive.SaveReport(c.Request.Context(), requestID, result, len(messages)); err != nil {
			// Archiving is best-effort; the report still goes out.
			logger.WithError(err).WithFields(logging.Fields{
				"request_id": requestID,
			}).Error("Failed to archive analysis report")
			if serviceMetrics != nil {
				serviceMetrics.ArchiveWrites.WithLabelValues("error").Inc()
			}
		} else if serviceMetrics != nil {
			serviceMetrics.ArchiveWrites.WithLabelValues("ok").Inc()
		}
	}

	c.JSON(http.StatusOK, api.AnalyzeFeedResponse{Analysis: result})
}
