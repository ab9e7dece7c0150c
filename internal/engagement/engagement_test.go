package engagement

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEngagementRate(t *testing.T) {
	tests := []struct {
		name      string
		reactions int
		shares    int
		views     int
		want      float64
	}{
		{"no views", 5, 5, 0, 0},
		{"plain rate", 6, 4, 100, 0.1},
		{"interactions divisible by 7 get golden bonus", 4, 3, 100, 0.07 * (1 + 1/goldenRatio)},
		{"fourteen interactions also bonused", 7, 7, 100, 0.14 * (1 + 1/goldenRatio)},
		{"zero interactions no bonus", 0, 0, 50, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &UserStats{UserID: "user_test"}
			s.Register(tt.reactions, tt.shares, tt.views)
			assert.InDelta(t, tt.want, s.EngagementRate(), 1e-12)
		})
	}
}

func TestUserStatsRegisterAccumulates(t *testing.T) {
	s := &UserStats{UserID: "user_test"}
	s.Register(1, 2, 10)
	s.Register(3, 4, 20)
	assert.Equal(t, 4, s.TotalReactions)
	assert.Equal(t, 6, s.TotalShares)
	assert.Equal(t, 30, s.TotalViews)
	assert.Equal(t, 2, s.Messages)
	assert.Equal(t, 10, s.Interactions())
}

func TestFollowers_SpecialCases(t *testing.T) {
	// Non-ASCII identifiers always resolve to the fixed count.
	assert.Equal(t, 4242, Followers("user_josé"))

	// Thirteen characters resolve to the 13th Fibonacci number.
	require.Len(t, "user_thirteen", 13)
	assert.Equal(t, 233, Followers("user_thirteen"))

	// Length check wins over the _prime suffix.
	require.Len(t, "usrabc_prime1", 13)
	assert.Equal(t, 233, Followers("usrabc_prime1"))

	// Non-ASCII wins over everything.
	assert.Equal(t, 4242, Followers("usuário_prime"))
}

func TestFollowers_PrimeSuffix(t *testing.T) {
	followers := Followers("user_abc_prime")
	assert.True(t, isPrime(followers), "expected prime follower count, got %d", followers)
	assert.GreaterOrEqual(t, followers, baseFollowers("user_abc_prime"))
}

func TestFollowers_BaseRangeAndDeterminism(t *testing.T) {
	for _, id := range []string{"user_alice", "user_bob", "user_carol"} {
		f := Followers(id)
		assert.GreaterOrEqual(t, f, 100)
		assert.LessOrEqual(t, f, 10099)
		assert.Equal(t, f, Followers(id), "follower estimate must be stable")
	}
}

func TestFibonacci(t *testing.T) {
	assert.Equal(t, 1, fibonacci(1))
	assert.Equal(t, 1, fibonacci(2))
	assert.Equal(t, 2, fibonacci(3))
	assert.Equal(t, 233, fibonacci(13))
}

func TestNextPrime(t *testing.T) {
	assert.Equal(t, 2, nextPrime(0))
	assert.Equal(t, 7, nextPrime(7))
	assert.Equal(t, 11, nextPrime(8))
	assert.Equal(t, 101, nextPrime(100))
}

func TestBuildRanking_OrderAndOverrides(t *testing.T) {
	stats := map[string]*UserStats{
		"user_alice":    {UserID: "user_alice"},
		"user_mbras_01": {UserID: "user_mbras_01"},
		"user_agent007": {UserID: "user_agent007"},
	}

	ranking := BuildRanking(stats)
	require.Len(t, ranking, 3)

	// Descending by influence score.
	for i := 1; i < len(ranking); i++ {
		assert.GreaterOrEqual(t, ranking[i-1].InfluenceScore, ranking[i].InfluenceScore)
	}

	byUser := map[string]float64{}
	for _, e := range ranking {
		byUser[e.UserID] = e.InfluenceScore
	}

	// With zero traffic, influence is followers*0.4 plus overrides.
	assert.InDelta(t, float64(Followers("user_alice"))*0.4, byUser["user_alice"], 1e-6)
	assert.InDelta(t, float64(Followers("user_mbras_01"))*0.4+2.0, byUser["user_mbras_01"], 1e-6)
	assert.InDelta(t, float64(Followers("user_agent007"))*0.4*0.5, byUser["user_agent007"], 1e-6)
}

func TestBuildRanking_TieBreakByUserID(t *testing.T) {
	// Thirteen-character identifiers share the Fibonacci follower count, so
	// with no traffic their scores tie and order falls back to the ID.
	stats := map[string]*UserStats{
		"user_thirteen": {UserID: "user_thirteen"},
		"user_aaaaaaaa": {UserID: "user_aaaaaaaa"},
	}
	require.Len(t, "user_aaaaaaaa", 13)

	ranking := BuildRanking(stats)
	require.Len(t, ranking, 2)
	assert.Equal(t, "user_aaaaaaaa", ranking[0].UserID)
	assert.Equal(t, "user_thirteen", ranking[1].UserID)
	assert.Equal(t, ranking[0].InfluenceScore, ranking[1].InfluenceScore)
}
