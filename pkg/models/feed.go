package models

import "time"

// SentimentLabel is the categorical outcome of scoring one message.
type SentimentLabel string

const (
	SentimentPositive SentimentLabel = "positive"
	SentimentNegative SentimentLabel = "negative"
	SentimentNeutral  SentimentLabel = "neutral"
	SentimentMeta     SentimentLabel = "meta"
)

// Message is a single validated feed message. Timestamps are always UTC;
// validation rejects anything that is not an RFC 3339 instant with a Z suffix.
type Message struct {
	ID        string
	Content   string
	Timestamp time.Time
	UserID    string
	Hashtags  []string
	Reactions int
	Shares    int
	Views     int
}

// SentimentDistribution holds per-label percentages over the non-meta
// messages of one analysis window.
type SentimentDistribution struct {
	Positive float64 `json:"positive"`
	Negative float64 `json:"negative"`
	Neutral  float64 `json:"neutral"`
}

// InfluenceEntry is one row of the influence ranking.
type InfluenceEntry struct {
	UserID         string  `json:"user_id"`
	Followers      int     `json:"followers"`
	EngagementRate float64 `json:"engagement_rate"`
	InfluenceScore float64 `json:"influence_score"`
}

// AnomalyDetails carries the three independent detector outcomes.
type AnomalyDetails struct {
	BurstActivity        bool `json:"burst_activity"`
	AlternatingSentiment bool `json:"alternating_sentiment"`
	SynchronizedPosting  bool `json:"synchronized_posting"`
}

// Any reports whether at least one detector fired.
func (d AnomalyDetails) Any() bool {
	return d.BurstActivity || d.AlternatingSentiment || d.SynchronizedPosting
}

// FeedFlags are the business-rule boundary flags computed during the
// analysis pass.
type FeedFlags struct {
	MbrasEmployee      bool `json:"mbras_employee"`
	SpecialPattern     bool `json:"special_pattern"`
	CandidateAwareness bool `json:"candidate_awareness"`
}

// AnalysisResult is the assembled report for one analysis call.
type AnalysisResult struct {
	SentimentDistribution SentimentDistribution `json:"sentiment_distribution"`
	EngagementScore       float64               `json:"engagement_score"`
	TrendingTopics        []string              `json:"trending_topics"`
	InfluenceRanking      []InfluenceEntry      `json:"influence_ranking"`
	AnomalyDetected       bool                  `json:"anomaly_detected"`
	AnomalyDetails        AnomalyDetails        `json:"anomaly_details"`
	Flags                 FeedFlags             `json:"flags"`
	ProcessingTimeMs      int64                 `json:"processing_time_ms"`
}
