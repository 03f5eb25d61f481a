package concepts

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/sirupsen/logrus"
)

const maxConcepts = 5

// Extractor turns a free-text project description into a small set of
// lowercase technical concepts. Implementations never fail a request: the
// worst case is a degraded keyword set.
type Extractor interface {
	Extract(ctx context.Context, description string) []string
}

// FallbackExtractor is the local stoplist-based tokenizer. It needs no
// external services and always returns at least the default keyword set.
type FallbackExtractor struct{}

var (
	wordPattern = regexp.MustCompile(`[a-z0-9]+`)

	// Function words plus generic patent-speak that carries no signal
	stopwords = map[string]bool{
		"the": true, "and": true, "for": true, "with": true, "that": true,
		"this": true, "from": true, "are": true, "was": true, "were": true,
		"has": true, "have": true, "had": true, "will": true, "would": true,
		"can": true, "could": true, "should": true, "than": true, "then": true,
		"its": true, "into": true, "such": true, "each": true, "when": true,
		"where": true, "which": true, "while": true, "about": true, "also": true,
		"system": true, "method": true, "using": true, "used": true, "use": true,
		"device": true, "apparatus": true, "based": true, "new": true,
		"improved": true, "design": true, "designed": true, "provide": true,
		"providing": true, "include": true, "including": true,
	}

	defaultConcepts = []string{"battery", "thermal", "cooling"}
)

func NewFallbackExtractor() *FallbackExtractor {
	return &FallbackExtractor{}
}

// Extract tokenizes the description into word runs of length >= 3,
// drops stopwords, and returns the deduplicated terms in input order,
// capped at 10. Empty or all-noise input yields the default set.
func (e *FallbackExtractor) Extract(_ context.Context, description string) []string {
	words := wordPattern.FindAllString(strings.ToLower(description), -1)

	seen := make(map[string]bool)
	var terms []string
	for _, word := range words {
		if len(word) < 3 || stopwords[word] || seen[word] {
			continue
		}
		seen[word] = true
		terms = append(terms, word)
		if len(terms) == 10 {
			break
		}
	}

	if len(terms) == 0 {
		return append([]string(nil), defaultConcepts...)
	}
	return terms
}

// APIExtractor asks the external text-generation service for 3-5 technical
// concepts and degrades silently to the fallback extractor on any failure.
type APIExtractor struct {
	client   *Client
	fallback Extractor
	logger   *logrus.Logger
}

func NewAPIExtractor(client *Client, fallback Extractor, logger *logrus.Logger) *APIExtractor {
	return &APIExtractor{
		client:   client,
		fallback: fallback,
		logger:   logger,
	}
}

func (e *APIExtractor) Extract(ctx context.Context, description string) []string {
	prompt := fmt.Sprintf("Extract 3-5 key technical concepts from this project description. Return only a comma-separated list:\n\n%s", description)

	text, err := e.client.GenerateText(ctx, prompt, 100)
	if err != nil {
		e.logger.WithError(err).Warn("Concept extraction failed, using fallback")
		return e.fallback.Extract(ctx, description)
	}

	concepts := parseConceptList(text)
	if len(concepts) == 0 {
		e.logger.Warn("Concept extraction returned no usable concepts, using fallback")
		return e.fallback.Extract(ctx, description)
	}

	return concepts
}

// parseConceptList splits a comma-separated completion into trimmed
// lowercase terms, capped at maxConcepts.
func parseConceptList(text string) []string {
	var concepts []string
	for _, part := range strings.Split(text, ",") {
		concept := strings.ToLower(strings.TrimSpace(part))
		if concept == "" {
			continue
		}
		concepts = append(concepts, concept)
		if len(concepts) == maxConcepts {
			break
		}
	}
	return concepts
}
