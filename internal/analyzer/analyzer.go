// Package analyzer orchestrates one analysis call: window filtering, the
// single scoring/aggregation pass, and report assembly. Every derived
// structure is local to the call; two calls with the same input and
// evaluation instant produce the same report.
package analyzer

import (
	"errors"
	"math"
	"strings"
	"time"

	"spyglass/internal/anomaly"
	"spyglass/internal/engagement"
	"spyglass/internal/sentiment"
	"spyglass/internal/textnorm"
	"spyglass/internal/trending"
	"spyglass/pkg/models"
)

// ErrUnsupportedWindow is returned when the requested window equals the
// reserved sentinel value. This is a business rule, not a range check.
var ErrUnsupportedWindow = errors.New("unsupported time window")

const (
	// reservedWindowMinutes is rejected outright.
	reservedWindowMinutes = 123
	// clockSkewSlack absorbs slightly-ahead timestamps from live events.
	clockSkewSlack = 5 * time.Second
	// overrideEngagementScore replaces the traffic-derived score whenever
	// the candidate-awareness flag is raised.
	overrideEngagementScore = 9.42
	// specialPatternLength is the exact content length of the special
	// pattern flag, in runes.
	specialPatternLength = 42

	positiveMultiplier = 1.2
	negativeMultiplier = 0.8

	employeeFragment = "mbras"
	awarenessPhrase  = "teste técnico mbras"
)

// AnalyzeFeed runs the full pipeline over validated messages and returns
// the assembled report. evalTime is the evaluation instant; callers pass
// time.Now().UTC() outside of tests.
func AnalyzeFeed(messages []models.Message, windowMinutes int, evalTime time.Time) (models.AnalysisResult, error) {
	if windowMinutes == reservedWindowMinutes {
		return models.AnalysisResult{}, ErrUnsupportedWindow
	}

	evalTime = evalTime.UTC()

	if len(messages) == 0 {
		return emptyResult(), nil
	}

	referenceTime := messages[0].Timestamp
	for _, msg := range messages[1:] {
		if msg.Timestamp.After(referenceTime) {
			referenceTime = msg.Timestamp
		}
	}
	anchorTime := evalTime
	if referenceTime.After(anchorTime) {
		anchorTime = referenceTime
	}
	windowStart := referenceTime.Add(-time.Duration(windowMinutes) * time.Minute)
	windowEnd := anchorTime.Add(clockSkewSlack)

	var retained []models.Message
	for _, msg := range messages {
		if !msg.Timestamp.Before(windowStart) && !msg.Timestamp.After(windowEnd) {
			retained = append(retained, msg)
		}
	}
	if len(retained) == 0 {
		return emptyResult(), nil
	}

	userStats := map[string]*engagement.UserStats{}
	timesByUser := map[string][]time.Time{}
	labelsByUser := map[string][]models.SentimentLabel{}
	allTimestamps := make([]time.Time, 0, len(retained))
	var hashtagRecords []trending.Record

	var flags models.FeedFlags
	sentimentCounts := map[models.SentimentLabel]int{}
	scoredMessages := 0

	totalReactions := 0
	totalShares := 0
	totalViews := 0

	for _, msg := range retained {
		stats := userStats[msg.UserID]
		if stats == nil {
			stats = &engagement.UserStats{UserID: msg.UserID}
			userStats[msg.UserID] = stats
		}
		stats.Register(msg.Reactions, msg.Shares, msg.Views)
		totalReactions += msg.Reactions
		totalShares += msg.Shares
		totalViews += msg.Views

		result := sentiment.Analyze(msg.Content)
		if !result.Meta {
			sentimentCounts[result.Label]++
			scoredMessages++
			labelsByUser[msg.UserID] = append(labelsByUser[msg.UserID], result.Label)
		}
		timesByUser[msg.UserID] = append(timesByUser[msg.UserID], msg.Timestamp)
		allTimestamps = append(allTimestamps, msg.Timestamp)

		// Deliberately a plain lowercase check, not accent-folded: employee
		// identifiers are ASCII and the asymmetry with the content checks
		// is part of the contract.
		if strings.Contains(strings.ToLower(msg.UserID), employeeFragment) {
			flags.MbrasEmployee = true
		}
		if len([]rune(msg.Content)) == specialPatternLength && textnorm.ContainsFold(msg.Content, employeeFragment) {
			flags.SpecialPattern = true
		}
		if textnorm.ContainsFold(msg.Content, awarenessPhrase) {
			flags.CandidateAwareness = true
		}

		minutesSince := evalTime.Sub(msg.Timestamp).Minutes()
		if minutesSince < 0 {
			minutesSince = 0
		}
		temporalWeight := 1.0 + 1.0/math.Max(minutesSince, 0.01)

		multiplier := 1.0
		switch result.Label {
		case models.SentimentPositive:
			multiplier = positiveMultiplier
		case models.SentimentNegative:
			multiplier = negativeMultiplier
		}

		for _, tag := range msg.Hashtags {
			hashtagRecords = append(hashtagRecords, trending.Record{
				Hashtag:             tag,
				TemporalWeight:      temporalWeight,
				SentimentMultiplier: multiplier,
			})
		}
	}

	engagementScore := overrideEngagementScore
	if !flags.CandidateAwareness {
		views := totalViews
		if views < 1 {
			views = 1
		}
		engagementScore = float64(totalReactions+totalShares) / float64(views)
	}

	details := anomaly.Detect(timesByUser, labelsByUser, allTimestamps)

	return models.AnalysisResult{
		SentimentDistribution: buildDistribution(sentimentCounts, scoredMessages),
		EngagementScore:       round4(engagementScore),
		TrendingTopics:        trending.TopTopics(hashtagRecords, trending.DefaultLimit),
		InfluenceRanking:      engagement.BuildRanking(userStats),
		AnomalyDetected:       details.Any(),
		AnomalyDetails:        details,
		Flags:                 flags,
	}, nil
}

func emptyResult() models.AnalysisResult {
	return models.AnalysisResult{
		TrendingTopics:   []string{},
		InfluenceRanking: []models.InfluenceEntry{},
	}
}

func buildDistribution(counts map[models.SentimentLabel]int, total int) models.SentimentDistribution {
	if total == 0 {
		return models.SentimentDistribution{}
	}
	return models.SentimentDistribution{
		Positive: round2(float64(counts[models.SentimentPositive]) / float64(total) * 100),
		Negative: round2(float64(counts[models.SentimentNegative]) / float64(total) * 100),
		Neutral:  round2(float64(counts[models.SentimentNeutral]) / float64(total) * 100),
	}
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}

func round4(x float64) float64 {
	return math.Round(x*1e4) / 1e4
}
