package sentiment

// Static scoring tables. These values are contractual business rules carried
// over from the upstream system; changing any of them changes observable
// report output, so they are fixed lookup tables rather than tunables.

const (
	// intensifierFactor compounds on consecutive intensifier tokens and
	// applies to the next scored lexicon token.
	intensifierFactor = 1.5
	// positiveBoostFactor multiplies positive scores only.
	positiveBoostFactor = 2.0
	// negationScope is the token distance within which a preceding negation
	// flips the sign of a scored token.
	negationScope = 3
	// metaPhrase marks an administrative message excluded from sentiment
	// statistics. Compared after normalization, exact match only.
	metaPhrase = "teste técnico mbras"
)

// lexicon maps normalized tokens to polarity scores. Accented spellings are
// kept alongside their folded forms so the table reads the same as the
// upstream one, even though lookups always happen on normalized tokens.
var lexicon = map[string]float64{
	// Positive
	"adorei":     1.0,
	"adoro":      1.0,
	"amo":        1.2,
	"excelente":  1.3,
	"otimo":      1.2,
	"ótimo":      1.2,
	"bom":        1.0,
	"gostei":     1.0,
	"perfeito":   1.3,
	"incrivel":   1.3,
	"incrível":   1.3,
	"fantastico": 1.3,
	"fantástico": 1.3,
	"satisfeito": 0.9,
	// Negative
	"ruim":         -1.0,
	"péssimo":      -1.4,
	"pessimo":      -1.4,
	"terrivel":     -1.3,
	"terrível":     -1.3,
	"horrivel":     -1.5,
	"horrível":     -1.5,
	"odeio":        -1.2,
	"detestei":     -1.1,
	"insuportavel": -1.3,
	"insuportável": -1.3,
	"lamentavel":   -1.2,
	"lamentável":   -1.2,
}

var intensifiers = map[string]struct{}{
	"muito":        {},
	"super":        {},
	"bem":          {},
	"demais":       {},
	"mega":         {},
	"extremamente": {},
	"totalmente":   {},
}

var negations = map[string]struct{}{
	"nao":    {},
	"não":    {},
	"nunca":  {},
	"jamais": {},
	"sem":    {},
}
