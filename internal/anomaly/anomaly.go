// Package anomaly runs the three sliding-window detectors over one
// already-filtered analysis window. Detectors are independent and pure.
package anomaly

import (
	"sort"
	"time"

	"spyglass/pkg/models"
)

const (
	burstWindow     = 5 * time.Minute
	burstThreshold  = 10
	alternatingRun  = 10
	syncWindow      = 4 * time.Second
	syncThreshold   = 3
	syncMinMessages = 3
)

// maxWithinWindow sorts timestamps ascending and returns the largest number
// of points that fit inside a trailing window, closed on both ends. Shared
// by the burst and synchronized-posting detectors so the two-pointer logic
// cannot drift apart.
func maxWithinWindow(timestamps []time.Time, window time.Duration) int {
	sorted := make([]time.Time, len(timestamps))
	copy(sorted, timestamps)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Before(sorted[j]) })

	best := 0
	left := 0
	for right, ts := range sorted {
		for ts.Sub(sorted[left]) > window {
			left++
		}
		if count := right - left + 1; count > best {
			best = count
		}
	}
	return best
}

// DetectBurst reports whether any single user posted more than the burst
// threshold inside a five-minute window.
func DetectBurst(timesByUser map[string][]time.Time) bool {
	for _, timestamps := range timesByUser {
		if maxWithinWindow(timestamps, burstWindow) > burstThreshold {
			return true
		}
	}
	return false
}

// DetectAlternating reports whether any user shows an exact
// positive/negative alternation of the required length. Neutral labels are
// dropped from the sequence entirely; a repeat resets the run.
func DetectAlternating(labelsByUser map[string][]models.SentimentLabel) bool {
	for _, labels := range labelsByUser {
		var filtered []models.SentimentLabel
		for _, label := range labels {
			if label == models.SentimentPositive || label == models.SentimentNegative {
				filtered = append(filtered, label)
			}
		}
		if len(filtered) < alternatingRun {
			continue
		}

		maxRun, run := 1, 1
		for i := 1; i < len(filtered); i++ {
			if filtered[i] != filtered[i-1] {
				run++
				if run > maxRun {
					maxRun = run
				}
			} else {
				run = 1
			}
		}
		if maxRun >= alternatingRun {
			return true
		}
	}
	return false
}

// DetectSynchronized reports whether at least three messages, from any
// combination of users, land inside a four-second window.
func DetectSynchronized(timestamps []time.Time) bool {
	if len(timestamps) < syncMinMessages {
		return false
	}
	return maxWithinWindow(timestamps, syncWindow) >= syncThreshold
}

// Detect runs all three detectors over the window.
func Detect(timesByUser map[string][]time.Time, labelsByUser map[string][]models.SentimentLabel, allTimestamps []time.Time) models.AnomalyDetails {
	return models.AnomalyDetails{
		BurstActivity:        DetectBurst(timesByUser),
		AlternatingSentiment: DetectAlternating(labelsByUser),
		SynchronizedPosting:  DetectSynchronized(allTimestamps),
	}
}
