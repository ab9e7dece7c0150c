// Package spyglass defines the wire-level request and response types for
// the feed analytics endpoint.
package spyglass

import "spyglass/pkg/models"

// MessagePayload is a single message as received on the wire. The timestamp
// stays a string here; validation parses it into the typed model.
type MessagePayload struct {
	ID        string   `json:"id" validate:"required,min=1"`
	Content   string   `json:"content" validate:"required,min=1,max=280"`
	Timestamp string   `json:"timestamp" validate:"required"`
	UserID    string   `json:"user_id" validate:"required,min=1"`
	Hashtags  []string `json:"hashtags"`
	Reactions int      `json:"reactions" validate:"gte=0"`
	Shares    int      `json:"shares" validate:"gte=0"`
	Views     int      `json:"views" validate:"gte=0"`
}

// AnalyzeFeedRequest is the payload accepted by POST /analyze-feed.
type AnalyzeFeedRequest struct {
	Messages          []MessagePayload `json:"messages" validate:"required,min=1,dive"`
	TimeWindowMinutes int              `json:"time_window_minutes" validate:"required,gt=0"`
}

// AnalyzeFeedResponse envelopes the assembled report.
type AnalyzeFeedResponse struct {
	Analysis models.AnalysisResult `json:"analysis"`
}

// ErrorResponse is the client-facing error envelope.
type ErrorResponse struct {
	Error   string   `json:"error"`
	Code    string   `json:"code"`
	Details []string `json:"details,omitempty"`
}
