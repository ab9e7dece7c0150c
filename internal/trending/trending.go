// Package trending ranks hashtags by weighted occurrence over one analysis
// window.
package trending

import (
	"math"
	"sort"
	"strings"
)

// DefaultLimit is the number of topics exposed in the report.
const DefaultLimit = 5

// Record is one (hashtag, message) occurrence with the weights the
// orchestrator attached to it.
type Record struct {
	Hashtag             string
	TemporalWeight      float64
	SentimentMultiplier float64
}

type accumulator struct {
	totalWeight     float64
	frequency       int
	sentimentWeight float64
}

// lengthDecay discounts hashtags longer than 8 characters logarithmically.
// The zero-denominator guard cannot trigger past the length-8 branch but is
// kept to match the contractual formula.
func lengthDecay(length int) float64 {
	if length <= 8 {
		return 1.0
	}
	denominator := math.Log10(float64(length))
	if denominator == 0 {
		return 1.0
	}
	return math.Log10(8) / denominator
}

// TopTopics accumulates records per lowercased hashtag and returns up to
// limit hashtag strings ranked by total weight, frequency, sentiment weight
// sum, and finally the hashtag text itself.
func TopTopics(records []Record, limit int) []string {
	accumulators := map[string]*accumulator{}

	for _, rec := range records {
		normalized := strings.ToLower(rec.Hashtag)
		acc := accumulators[normalized]
		if acc == nil {
			acc = &accumulator{}
			accumulators[normalized] = acc
		}
		weight := rec.TemporalWeight * rec.SentimentMultiplier * lengthDecay(len([]rune(normalized)))
		acc.totalWeight += weight
		acc.frequency++
		acc.sentimentWeight += rec.SentimentMultiplier
	}

	topics := make([]string, 0, len(accumulators))
	for tag := range accumulators {
		topics = append(topics, tag)
	}

	sort.Slice(topics, func(i, j int) bool {
		a, b := accumulators[topics[i]], accumulators[topics[j]]
		if a.totalWeight != b.totalWeight {
			return a.totalWeight > b.totalWeight
		}
		if a.frequency != b.frequency {
			return a.frequency > b.frequency
		}
		if a.sentimentWeight != b.sentimentWeight {
			return a.sentimentWeight > b.sentimentWeight
		}
		return topics[i] < topics[j]
	})

	if len(topics) > limit {
		topics = topics[:limit]
	}
	return topics
}
