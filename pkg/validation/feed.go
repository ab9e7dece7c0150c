// Package validation checks analyze-feed payloads before they reach the
// analyzer core. The core assumes contract-valid input; everything suspect
// is rejected here.
package validation

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"spyglass/internal/textnorm"
	api "spyglass/pkg/api/spyglass"
	"spyglass/pkg/models"
)

// Timestamps must be RFC 3339 with an explicit UTC 'Z' suffix.
const timestampLayout = "2006-01-02T15:04:05Z"

var userIDPattern = regexp.MustCompile(`^user_[a-z0-9_]{3,}$`)

// RequestError aggregates all field-level violations of one payload.
type RequestError struct {
	Details []string
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("invalid analyze-feed payload: %s", strings.Join(e.Details, "; "))
}

// FeedValidator performs structural and semantic validation of
// analyze-feed requests.
type FeedValidator struct {
	validator *validator.Validate
}

// NewFeedValidator constructs a FeedValidator with standard struct validation.
func NewFeedValidator() *FeedValidator {
	return &FeedValidator{
		validator: validator.New(),
	}
}

// ValidateRequest checks the envelope and every message, returning the
// typed message list on success. All violations are collected so the client
// sees the full picture in one round trip.
func (v *FeedValidator) ValidateRequest(req *api.AnalyzeFeedRequest) ([]models.Message, error) {
	details := []string{}

	if err := v.validator.Struct(req); err != nil {
		verrs, ok := err.(validator.ValidationErrors)
		if !ok {
			return nil, fmt.Errorf("validate request: %w", err)
		}
		for _, fe := range verrs {
			details = append(details, fmt.Sprintf("%s: failed %q validation", fe.Namespace(), fe.Tag()))
		}
	}

	messages := make([]models.Message, 0, len(req.Messages))
	for i, payload := range req.Messages {
		msg, msgDetails := v.validateMessage(i, payload)
		if len(msgDetails) > 0 {
			details = append(details, msgDetails...)
			continue
		}
		messages = append(messages, msg)
	}

	if len(details) > 0 {
		return nil, &RequestError{Details: details}
	}
	return messages, nil
}

func (v *FeedValidator) validateMessage(index int, payload api.MessagePayload) (models.Message, []string) {
	details := []string{}

	ts, err := parseTimestamp(payload.Timestamp)
	if err != nil {
		details = append(details, fmt.Sprintf("messages[%d].timestamp: %v", index, err))
	}

	if normalized := textnorm.Normalize(payload.UserID); !userIDPattern.MatchString(normalized) {
		details = append(details, fmt.Sprintf("messages[%d].user_id: must match pattern ^user_[a-z0-9_]{3,}$", index))
	}

	for j, tag := range payload.Hashtags {
		if !strings.HasPrefix(tag, "#") {
			details = append(details, fmt.Sprintf("messages[%d].hashtags[%d]: must start with '#'", index, j))
		}
	}

	if len(details) > 0 {
		return models.Message{}, details
	}

	return models.Message{
		ID:        payload.ID,
		Content:   payload.Content,
		Timestamp: ts,
		UserID:    payload.UserID,
		Hashtags:  payload.Hashtags,
		Reactions: payload.Reactions,
		Shares:    payload.Shares,
		Views:     payload.Views,
	}, nil
}

func parseTimestamp(value string) (time.Time, error) {
	if !strings.HasSuffix(value, "Z") {
		return time.Time{}, fmt.Errorf("must be an RFC 3339 string with UTC suffix 'Z'")
	}
	ts, err := time.Parse(timestampLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("must follow RFC 3339 format YYYY-MM-DDTHH:MM:SSZ")
	}
	return ts.UTC(), nil
}
