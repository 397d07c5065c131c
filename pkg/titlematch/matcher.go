package titlematch

import (
	"regexp"

	"github.com/hbollon/go-edlib"
)

var numberRegex = regexp.MustCompile(`\b(\d+)\b`)

// Confidence is how sure a match is.
type Confidence int

const (
	ConfidenceNone   Confidence = iota // Score < 0.70
	ConfidenceLow                      // Score >= 0.70
	ConfidenceMedium                   // Score >= 0.85
	ConfidenceHigh                     // Score >= 0.95
)

func (c Confidence) String() string {
	switch c {
	case ConfidenceHigh:
		return "high"
	case ConfidenceMedium:
		return "medium"
	case ConfidenceLow:
		return "low"
	default:
		return "none"
	}
}

// Match is the best candidate for a query.
type Match struct {
	Index      int // position in the candidate slice, -1 when nothing matched
	Title      string
	Score      float64 // Jaro-Winkler similarity, 0.0-1.0
	Confidence Confidence
}

// Best returns the candidate closest to query. Jaro-Winkler favors shared
// prefixes, which suits titles; matching sequel numbers earn a small bonus and
// mismatched ones a penalty. The first candidate wins ties.
func Best(query string, candidates []string) Match {
	best := Match{Index: -1}
	if len(candidates) == 0 {
		return best
	}

	q := CleanTitle(query)
	queryNumbers := numberRegex.FindAllString(q, -1)

	for i, candidate := range candidates {
		c := CleanTitle(candidate)
		score := float64(edlib.JaroWinklerSimilarity(q, c))
		score = adjustForNumbers(score, queryNumbers, numberRegex.FindAllString(c, -1))

		if score > best.Score {
			best = Match{Index: i, Title: candidate, Score: score}
		}
	}

	switch {
	case best.Score >= 0.95:
		best.Confidence = ConfidenceHigh
	case best.Score >= 0.85:
		best.Confidence = ConfidenceMedium
	case best.Score >= 0.70:
		best.Confidence = ConfidenceLow
	default:
		best = Match{Index: -1, Score: best.Score}
	}
	return best
}

func adjustForNumbers(score float64, queryNums, candidateNums []string) float64 {
	if len(queryNums) == 0 {
		return score
	}
	if len(candidateNums) == 0 {
		return score * 0.85
	}

	candidateSet := make(map[string]bool, len(candidateNums))
	for _, n := range candidateNums {
		candidateSet[n] = true
	}
	for _, n := range queryNums {
		if candidateSet[n] {
			return min(score*1.05, 1.0)
		}
	}
	return score * 0.90
}
