package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/opensearch-project/opensearch-go/v2"
	"github.com/opensearch-project/opensearch-go/v2/opensearchapi"
	"github.com/reclaimip/backend/internal/models"
	"github.com/reclaimip/backend/internal/scoring"
	"github.com/sirupsen/logrus"
)

const maxLiveHits = 100

// OpenSearchConfig holds connection settings for the live patent index.
type OpenSearchConfig struct {
	Addresses []string
	Index     string
	Username  string
	Password  string
}

// OpenSearchProvider queries a patent index with a simple query string
// search over title, abstract and claims. Hits are mapped into the common
// patent shape and rescored locally; the provider's own ranking only
// decides which 100 candidates we look at.
type OpenSearchProvider struct {
	client *opensearch.Client
	index  string
	logger *logrus.Logger
}

func NewOpenSearchProvider(cfg OpenSearchConfig, logger *logrus.Logger) (*OpenSearchProvider, error) {
	client, err := opensearch.NewClient(opensearch.Config{
		Addresses: cfg.Addresses,
		Username:  cfg.Username,
		Password:  cfg.Password,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create search client: %w", err)
	}

	index := cfg.Index
	if index == "" {
		index = "patents"
	}

	return &OpenSearchProvider{
		client: client,
		index:  index,
		logger: logger,
	}, nil
}

// patentHit mirrors the patent index document shape.
type patentHit struct {
	PublicationNumber string `json:"publication_number"`
	Title             string `json:"title"`
	Abstract          string `json:"abstract"`
	Publication       struct {
		Date string `json:"date"`
	} `json:"publication"`
}

type searchResponse struct {
	Hits struct {
		Hits []struct {
			Source patentHit `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
}

func (p *OpenSearchProvider) Search(ctx context.Context, description string, concepts []string, max int) ([]models.Patent, error) {
	if max <= 0 || max > maxLiveHits {
		max = maxLiveHits
	}

	dsl := map[string]interface{}{
		"query": map[string]interface{}{
			"simple_query_string": map[string]interface{}{
				"query":            description,
				"fields":           []string{"title", "abstract", "claims"},
				"default_operator": "and",
			},
		},
		"size": max,
		"sort": []map[string]interface{}{
			{"_score": map[string]interface{}{"order": "desc"}},
		},
	}

	body, err := json.Marshal(dsl)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal search query: %w", err)
	}

	osReq := opensearchapi.SearchRequest{
		Index: []string{p.index},
		Body:  bytes.NewReader(body),
	}

	resp, err := osReq.Do(ctx, p.client)
	if err != nil {
		return nil, fmt.Errorf("patent search request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.IsError() {
		return nil, fmt.Errorf("patent search failed with status %s", resp.Status())
	}

	var result searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode search response: %w", err)
	}

	patents := make([]models.Patent, 0, len(result.Hits.Hits))
	for _, hit := range result.Hits.Hits {
		patent := p.mapHit(hit.Source)
		patent.RelevanceScore = scoring.Score(description, concepts, patent)
		patents = append(patents, patent)
	}

	p.logger.WithFields(logrus.Fields{
		"index": p.index,
		"hits":  len(patents),
	}).Debug("Live patent search completed")

	return patents, nil
}

func (p *OpenSearchProvider) mapHit(hit patentHit) models.Patent {
	abstract := hit.Abstract
	if len(abstract) > 1500 {
		abstract = abstract[:1500]
	}

	patent := models.Patent{
		PatentNumber: hit.PublicationNumber,
		Title:        hit.Title,
		Abstract:     abstract,
		FilingYear:   scoring.YearFromDate(hit.Publication.Date),
	}

	if hit.PublicationNumber != "" {
		patent.URL = "https://patents.google.com/patent/" + hit.PublicationNumber
	} else {
		// No publication number, fall back to a title search link
		patent.URL = "https://patents.google.com/?q=" + url.QueryEscape(hit.Title)
	}

	return patent
}
