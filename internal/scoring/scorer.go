package scoring

import (
	"strings"

	"github.com/reclaimip/backend/internal/models"
)

const (
	conceptWeight = 0.2
	wordWeight    = 0.02
	wordWeightCap = 0.4
	maxScore      = 1.0
)

// Score computes the relevance of a patent to a project description.
// Each extracted concept found in title+abstract adds 0.2; shared
// whitespace-tokenized words add 0.02 each up to 0.4. The result is
// clamped to [0,1] and monotonic in overlap count.
func Score(description string, concepts []string, patent models.Patent) float64 {
	patentText := strings.ToLower(patent.Title + " " + patent.Abstract)

	score := 0.0
	for _, concept := range concepts {
		c := strings.ToLower(strings.TrimSpace(concept))
		if c != "" && strings.Contains(patentText, c) {
			score += conceptWeight
		}
	}

	descWords := wordSet(strings.ToLower(description))
	patentWords := wordSet(patentText)

	shared := 0
	for word := range descWords {
		if patentWords[word] {
			shared++
		}
	}

	bonus := float64(shared) * wordWeight
	if bonus > wordWeightCap {
		bonus = wordWeightCap
	}
	score += bonus

	if score > maxScore {
		score = maxScore
	}
	if score < 0 {
		score = 0
	}
	return score
}

func wordSet(text string) map[string]bool {
	set := make(map[string]bool)
	for _, word := range strings.Fields(text) {
		set[word] = true
	}
	return set
}
