// Package sentiment scores a single message with a deterministic
// lexicon-and-rules pipeline: no model, no randomness, same input same output.
package sentiment

import (
	"strings"

	"spyglass/internal/textnorm"
	"spyglass/pkg/models"
)

// Result is the sentiment evaluation of one message.
type Result struct {
	Score      float64
	Label      models.SentimentLabel
	TokenCount int
	Meta       bool
}

// IsMetaMessage reports whether content is exactly the administrative meta
// phrase after normalization. Partial matches do not count.
func IsMetaMessage(content string) bool {
	stripped := strings.TrimSpace(content)
	if stripped == "" {
		return false
	}
	return textnorm.Normalize(stripped) == textnorm.Normalize(metaPhrase)
}

func classify(score float64) models.SentimentLabel {
	switch {
	case score > 0.1:
		return models.SentimentPositive
	case score < -0.1:
		return models.SentimentNegative
	default:
		return models.SentimentNeutral
	}
}

// Analyze scores message content token by token. Hashtag tokens are skipped
// entirely: they neither count as analyzed tokens nor consume pending
// intensifier state. Negation indices are positions in the full token list,
// hashtags included.
func Analyze(content string) Result {
	if IsMetaMessage(content) {
		return Result{Score: 0, Label: models.SentimentMeta, TokenCount: 1, Meta: true}
	}

	tokens := textnorm.Tokenize(content)
	if len(tokens) == 0 {
		return Result{Label: models.SentimentNeutral}
	}

	normalized := make([]string, len(tokens))
	for i, token := range tokens {
		normalized[i] = textnorm.Normalize(token)
	}

	var negationIndices []int
	for i, norm := range normalized {
		if _, ok := negations[norm]; ok {
			negationIndices = append(negationIndices, i)
		}
	}

	totalScore := 0.0
	analyzedTokens := 0
	pendingIntensity := 1.0

	for i, token := range tokens {
		if strings.HasPrefix(token, "#") {
			continue
		}

		analyzedTokens++
		norm := normalized[i]

		if _, ok := intensifiers[norm]; ok {
			pendingIntensity *= intensifierFactor
			continue
		}

		baseScore, ok := lexicon[norm]
		if !ok {
			// A non-lexicon, non-intensifier word cancels pending intensity.
			pendingIntensity = 1.0
			continue
		}

		score := baseScore * pendingIntensity
		pendingIntensity = 1.0

		negationCount := 0
		for _, n := range negationIndices {
			if n < i && i <= n+negationScope {
				negationCount++
			}
		}
		if negationCount%2 == 1 {
			score = -score
		}

		if score > 0 {
			score *= positiveBoostFactor
		}

		totalScore += score
	}

	if analyzedTokens == 0 {
		return Result{Label: models.SentimentNeutral}
	}

	average := totalScore / float64(analyzedTokens)
	return Result{
		Score:      average,
		Label:      classify(average),
		TokenCount: analyzedTokens,
	}
}
