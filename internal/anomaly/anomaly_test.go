package anomaly

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"spyglass/pkg/models"
)

var base = time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

func spread(count int, step time.Duration) []time.Time {
	out := make([]time.Time, count)
	for i := range out {
		out[i] = base.Add(time.Duration(i) * step)
	}
	return out
}

func TestMaxWithinWindow(t *testing.T) {
	tests := []struct {
		name   string
		times  []time.Time
		window time.Duration
		want   int
	}{
		{"empty", nil, time.Minute, 0},
		{"single", spread(1, time.Second), time.Minute, 1},
		{"all inside", spread(5, time.Second), time.Minute, 5},
		{"none overlap", spread(5, 2*time.Minute), time.Minute, 1},
		{"boundary is inclusive", []time.Time{base, base.Add(time.Minute)}, time.Minute, 2},
		{"just past boundary", []time.Time{base, base.Add(time.Minute + time.Nanosecond)}, time.Minute, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, maxWithinWindow(tt.times, tt.window))
		})
	}
}

func TestMaxWithinWindow_UnsortedInput(t *testing.T) {
	times := []time.Time{base.Add(10 * time.Second), base, base.Add(5 * time.Second)}
	assert.Equal(t, 3, maxWithinWindow(times, 10*time.Second))
}

func TestDetectBurst(t *testing.T) {
	// Eleven messages inside four minutes from one user is a burst.
	assert.True(t, DetectBurst(map[string][]time.Time{
		"user_burst": spread(11, 4*time.Minute/10),
	}))

	// The same eleven messages over twenty minutes are not.
	assert.False(t, DetectBurst(map[string][]time.Time{
		"user_calm": spread(11, 2*time.Minute),
	}))

	// Exactly ten inside the window is not strictly greater than the threshold.
	assert.False(t, DetectBurst(map[string][]time.Time{
		"user_edge": spread(10, time.Second),
	}))

	// Bursts are per user; two users posting five each do not combine.
	assert.False(t, DetectBurst(map[string][]time.Time{
		"user_a": spread(6, time.Second),
		"user_b": spread(6, time.Second),
	}))
}

func alternating(n int) []models.SentimentLabel {
	out := make([]models.SentimentLabel, n)
	for i := range out {
		if i%2 == 0 {
			out[i] = models.SentimentPositive
		} else {
			out[i] = models.SentimentNegative
		}
	}
	return out
}

func TestDetectAlternating(t *testing.T) {
	t.Run("ten alternating labels trigger", func(t *testing.T) {
		assert.True(t, DetectAlternating(map[string][]models.SentimentLabel{
			"user_flip": alternating(10),
		}))
	})

	t.Run("adjacent repeat resets the run", func(t *testing.T) {
		labels := alternating(10)
		labels[5] = labels[4]
		assert.False(t, DetectAlternating(map[string][]models.SentimentLabel{
			"user_flip": labels,
		}))
	})

	t.Run("longer alternating sub-run still triggers after a repeat", func(t *testing.T) {
		labels := append([]models.SentimentLabel{models.SentimentPositive, models.SentimentPositive}, alternating(10)...)
		assert.True(t, DetectAlternating(map[string][]models.SentimentLabel{
			"user_flip": labels,
		}))
	})

	t.Run("neutral labels are dropped, not breaking the run", func(t *testing.T) {
		var labels []models.SentimentLabel
		for i, label := range alternating(10) {
			labels = append(labels, label)
			if i == 4 {
				labels = append(labels, models.SentimentNeutral)
			}
		}
		assert.True(t, DetectAlternating(map[string][]models.SentimentLabel{
			"user_flip": labels,
		}))
	})

	t.Run("fewer than ten eligible labels are skipped", func(t *testing.T) {
		assert.False(t, DetectAlternating(map[string][]models.SentimentLabel{
			"user_short": alternating(9),
		}))
	})
}

func TestDetectSynchronized(t *testing.T) {
	// Three messages within three seconds trigger.
	assert.True(t, DetectSynchronized(spread(3, 1500*time.Millisecond)))

	// The same three messages five seconds apart do not.
	assert.False(t, DetectSynchronized(spread(3, 5*time.Second)))

	// Fewer than three timestamps are never synchronized.
	assert.False(t, DetectSynchronized(spread(2, 0)))
}

func TestDetect_IndependentResults(t *testing.T) {
	details := Detect(
		map[string][]time.Time{"user_burst": spread(11, time.Second)},
		map[string][]models.SentimentLabel{"user_calm": alternating(4)},
		spread(2, time.Second),
	)
	assert.True(t, details.BurstActivity)
	assert.False(t, details.AlternatingSentiment)
	assert.False(t, details.SynchronizedPosting)
	assert.True(t, details.Any())
}
