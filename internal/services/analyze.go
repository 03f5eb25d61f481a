// backend/internal/services/analyze.go
package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/reclaimip/backend/internal/catalog"
	"github.com/reclaimip/backend/internal/concepts"
	"github.com/reclaimip/backend/internal/models"
	"github.com/reclaimip/backend/internal/scoring"
	"github.com/sirupsen/logrus"
)

const (
	SortRelevanceDesc = "relevance_desc"
	SortRelevanceAsc  = "relevance_asc"
	SortTitleAsc      = "title_asc"
	SortTitleDesc     = "title_desc"
)

// AnalyzeService runs the full query pipeline: concept extraction, catalog
// lookup, enrichment, filtering, sorting, pagination and the savings
// aggregate. It holds no per-request state.
type AnalyzeService struct {
	extractor        concepts.Extractor
	provider         catalog.Provider
	savingsPerPatent int
	currency         string
	logger           *logrus.Logger
}

func NewAnalyzeService(
	extractor concepts.Extractor,
	provider catalog.Provider,
	savingsPerPatent int,
	currency string,
	logger *logrus.Logger,
) *AnalyzeService {
	return &AnalyzeService{
		extractor:        extractor,
		provider:         provider,
		savingsPerPatent: savingsPerPatent,
		currency:         currency,
		logger:           logger,
	}
}

// Analyze processes one query end to end. An empty filtered set is a valid
// result, never an error; only a total catalog failure surfaces.
func (s *AnalyzeService) Analyze(ctx context.Context, q models.AnalyzeQuery) (*models.AnalyzeResponse, error) {
	keyConcepts := s.extractor.Extract(ctx, q.Description)

	candidates, err := s.provider.Search(ctx, q.Description, keyConcepts, 0)
	if err != nil {
		return nil, fmt.Errorf("patent catalog unavailable: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"concepts":   keyConcepts,
		"candidates": len(candidates),
	}).Debug("Candidates retrieved")

	now := time.Now()
	enriched := make([]models.Patent, 0, len(candidates))
	for _, patent := range candidates {
		if patent.Jurisdiction == "" {
			patent.Jurisdiction = scoring.Jurisdiction(patent.PatentNumber)
		}
		if patent.Status == "" {
			patent.Status = scoring.ClassifyStatus(patent.FilingYear, now)
		}
		patent.PlainSummary = fmt.Sprintf("This patent covers %s.", strings.ToLower(patent.Title))
		enriched = append(enriched, patent)
	}

	filtered := applyFilters(enriched, q)
	sortPatents(filtered, q.Sort)

	total := len(filtered)
	savings := s.estimateSavings(filtered)
	page := paginate(filtered, q.Offset, q.Limit)

	s.logger.WithFields(logrus.Fields{
		"total":    total,
		"returned": len(page),
		"filter":   q.Filter,
		"sort":     q.Sort,
	}).Info("Analysis completed")

	return &models.AnalyzeResponse{
		ProjectDescription: q.Description,
		KeyConcepts:        keyConcepts,
		TotalPatentsFound:  total,
		EstimatedSavings:   savings,
		Patents:            page,
		Pagination:         buildPagination(q.Limit, q.Offset, total),
		AppliedFilters: models.AppliedFilters{
			Status:       statusFilterLabel(q.Filter),
			MinRelevance: q.MinRelevance,
			MinYear:      q.MinYear,
			Jurisdiction: strings.ToUpper(q.Jurisdiction),
			Sort:         q.Sort,
		},
	}, nil
}

// applyFilters applies the predicates in a fixed order: status, jurisdiction,
// minimum year, minimum relevance.
func applyFilters(patents []models.Patent, q models.AnalyzeQuery) []models.Patent {
	filtered := make([]models.Patent, 0, len(patents))
	for _, p := range patents {
		switch strings.ToLower(q.Filter) {
		case "expired":
			if !strings.Contains(p.Status, "Expired") {
				continue
			}
		case "active":
			if !strings.Contains(p.Status, "Active") {
				continue
			}
		}

		if q.Jurisdiction != "" && !strings.EqualFold(p.Jurisdiction, q.Jurisdiction) {
			continue
		}

		// Unknown-year records are dropped once a year floor is active
		if q.MinYear > 0 && p.FilingYear < q.MinYear {
			continue
		}

		if p.RelevanceScore < q.MinRelevance {
			continue
		}

		filtered = append(filtered, p)
	}
	return filtered
}

// sortPatents sorts in place. Stability matters: records with equal keys
// keep their pre-sort relative order.
func sortPatents(patents []models.Patent, key string) {
	switch key {
	case SortRelevanceAsc:
		sort.SliceStable(patents, func(i, j int) bool {
			return patents[i].RelevanceScore < patents[j].RelevanceScore
		})
	case SortTitleAsc:
		sort.SliceStable(patents, func(i, j int) bool {
			return strings.ToLower(patents[i].Title) < strings.ToLower(patents[j].Title)
		})
	case SortTitleDesc:
		sort.SliceStable(patents, func(i, j int) bool {
			return strings.ToLower(patents[i].Title) > strings.ToLower(patents[j].Title)
		})
	default: // relevance_desc
		sort.SliceStable(patents, func(i, j int) bool {
			return patents[i].RelevanceScore > patents[j].RelevanceScore
		})
	}
}

func paginate(patents []models.Patent, offset, limit int) []models.Patent {
	if offset >= len(patents) {
		return []models.Patent{}
	}
	end := offset + limit
	if end > len(patents) {
		end = len(patents)
	}
	return patents[offset:end]
}

func buildPagination(limit, offset, total int) models.Pagination {
	p := models.Pagination{
		Limit:  limit,
		Offset: offset,
		Total:  total,
	}

	if offset+limit < total {
		next := offset + limit
		p.NextOffset = &next
	}
	if offset > 0 {
		prev := offset - limit
		if prev < 0 {
			prev = 0
		}
		p.PrevOffset = &prev
	}

	return p
}

// estimateSavings prices the expired records in the filtered (but not yet
// paginated) set at the configured per-patent figure.
func (s *AnalyzeService) estimateSavings(patents []models.Patent) string {
	expired := 0
	for _, p := range patents {
		if strings.Contains(p.Status, "Expired") {
			expired++
		}
	}
	return s.currency + humanize.Comma(int64(expired*s.savingsPerPatent))
}

func statusFilterLabel(filter string) string {
	switch strings.ToLower(filter) {
	case "expired", "active":
		return strings.ToLower(filter)
	default:
		return "all"
	}
}
