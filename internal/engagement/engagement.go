// Package engagement aggregates per-user counters into engagement rates and
// a deterministically ordered influence ranking.
package engagement

import (
	"crypto/sha256"
	"math"
	"math/big"
	"sort"
	"strings"

	"spyglass/pkg/models"
)

var goldenRatio = (1 + math.Sqrt(5)) / 2

// UserStats accumulates counters for one author over a single analysis call.
type UserStats struct {
	UserID         string
	TotalReactions int
	TotalShares    int
	TotalViews     int
	Messages       int
}

// Register adds one message's counters to the aggregate.
func (s *UserStats) Register(reactions, shares, views int) {
	s.TotalReactions += reactions
	s.TotalShares += shares
	s.TotalViews += views
	s.Messages++
}

// Interactions is the reaction+share sum used by the rate and bonus rules.
func (s *UserStats) Interactions() int {
	return s.TotalReactions + s.TotalShares
}

// EngagementRate is interactions over views, zero when there are no views.
// Interaction totals divisible by 7 earn the golden-ratio bonus; the rule is
// contractual, not principled.
func (s *UserStats) EngagementRate() float64 {
	if s.TotalViews <= 0 {
		return 0
	}
	rate := float64(s.Interactions()) / float64(s.TotalViews)
	if s.Interactions() > 0 && s.Interactions()%7 == 0 {
		rate *= 1 + 1/goldenRatio
	}
	return rate
}

// baseFollowers derives a stable pseudo-random follower estimate in
// [100, 10099] from the author identifier.
func baseFollowers(userID string) int {
	digest := sha256.Sum256([]byte(userID))
	n := new(big.Int).SetBytes(digest[:])
	return int(new(big.Int).Mod(n, big.NewInt(10000)).Int64()) + 100
}

func hasNonASCII(s string) bool {
	for _, r := range s {
		if r > 127 {
			return true
		}
	}
	return false
}

// fibonacci returns the nth Fibonacci number, 1-indexed from the seed
// a=0, b=1.
func fibonacci(n int) int {
	a, b := 0, 1
	for i := 0; i < n; i++ {
		a, b = b, a+b
	}
	return a
}

func isPrime(x int) bool {
	if x <= 1 {
		return false
	}
	if x <= 3 {
		return true
	}
	if x%2 == 0 || x%3 == 0 {
		return false
	}
	for i := 5; i*i <= x; i += 6 {
		if x%i == 0 || x%(i+2) == 0 {
			return false
		}
	}
	return true
}

func nextPrime(n int) int {
	candidate := n
	if candidate < 2 {
		candidate = 2
	}
	for !isPrime(candidate) {
		candidate++
	}
	return candidate
}

// Followers computes the follower estimate for an author. Special cases are
// checked in fixed precedence order before the hash-derived base.
func Followers(userID string) int {
	if hasNonASCII(userID) {
		return 4242
	}
	if len(userID) == 13 {
		return fibonacci(13)
	}
	if strings.HasSuffix(strings.ToLower(userID), "_prime") {
		return nextPrime(baseFollowers(userID))
	}
	return baseFollowers(userID)
}

// BuildRanking produces the influence ranking for all users of one call,
// sorted descending by influence score with identifier as the tie-break.
func BuildRanking(stats map[string]*UserStats) []models.InfluenceEntry {
	ranking := make([]models.InfluenceEntry, 0, len(stats))
	for userID, s := range stats {
		followers := Followers(userID)
		rate := s.EngagementRate()
		influence := float64(followers)*0.4 + rate*0.6

		lowered := strings.ToLower(userID)
		if strings.HasSuffix(lowered, "007") {
			influence *= 0.5
		}
		if strings.Contains(lowered, "mbras") {
			influence += 2.0
		}

		ranking = append(ranking, models.InfluenceEntry{
			UserID:         userID,
			Followers:      followers,
			EngagementRate: round6(rate),
			InfluenceScore: round6(influence),
		})
	}

	sort.Slice(ranking, func(i, j int) bool {
		if ranking[i].InfluenceScore != ranking[j].InfluenceScore {
			return ranking[i].InfluenceScore > ranking[j].InfluenceScore
		}
		return ranking[i].UserID < ranking[j].UserID
	})
	return ranking
}

func round6(x float64) float64 {
	return math.Round(x*1e6) / 1e6
}
