package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/reclaimip/backend/internal/catalog"
	"github.com/reclaimip/backend/internal/models"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubExtractor struct {
	concepts []string
}

func (s *stubExtractor) Extract(_ context.Context, _ string) []string {
	return s.concepts
}

type stubCatalog struct {
	patents []models.Patent
	err     error
}

func (s *stubCatalog) Search(_ context.Context, _ string, _ []string, _ int) ([]models.Patent, error) {
	return s.patents, s.err
}

func newService(provider catalog.Provider) *AnalyzeService {
	extractor := &stubExtractor{concepts: []string{"battery", "thermal", "cooling"}}
	return NewAnalyzeService(extractor, provider, 15000, "£", logrus.New())
}

func query(filter string, limit, offset int) models.AnalyzeQuery {
	return models.AnalyzeQuery{
		Description: "battery thermal cooling system",
		Filter:      filter,
		Sort:        SortRelevanceDesc,
		Limit:       limit,
		Offset:      offset,
	}
}

func TestAnalyze_ExpiredFilterExample(t *testing.T) {
	svc := newService(catalog.NewStaticProvider())

	resp, err := svc.Analyze(context.Background(), query("expired", 2, 0))
	require.NoError(t, err)

	// Exactly the page size, all expired, relevance non-increasing
	require.Len(t, resp.Patents, 2)
	for _, p := range resp.Patents {
		assert.Contains(t, p.Status, "Expired")
	}
	assert.GreaterOrEqual(t, resp.Patents[0].RelevanceScore, resp.Patents[1].RelevanceScore)

	// Total counts every expired record in the curated catalog
	assert.Equal(t, 7, resp.TotalPatentsFound)
	assert.Equal(t, "£105,000", resp.EstimatedSavings)

	require.NotNil(t, resp.Pagination.NextOffset)
	assert.Equal(t, 2, *resp.Pagination.NextOffset)
	assert.Nil(t, resp.Pagination.PrevOffset)
}

func TestAnalyze_TotalIndependentOfPagination(t *testing.T) {
	svc := newService(catalog.NewStaticProvider())

	first, err := svc.Analyze(context.Background(), query("all", 3, 0))
	require.NoError(t, err)
	second, err := svc.Analyze(context.Background(), query("all", 3, 9))
	require.NoError(t, err)

	assert.Equal(t, first.TotalPatentsFound, second.TotalPatentsFound)
	assert.Equal(t, first.EstimatedSavings, second.EstimatedSavings)
	assert.LessOrEqual(t, len(first.Patents), 3)
}

func TestAnalyze_OffsetBeyondTotal(t *testing.T) {
	svc := newService(catalog.NewStaticProvider())

	resp, err := svc.Analyze(context.Background(), query("all", 5, 500))
	require.NoError(t, err)
	assert.Empty(t, resp.Patents)
	assert.Nil(t, resp.Pagination.NextOffset)
	require.NotNil(t, resp.Pagination.PrevOffset)
	assert.Equal(t, 495, *resp.Pagination.PrevOffset)
}

func TestAnalyze_ActiveFilter(t *testing.T) {
	svc := newService(catalog.NewStaticProvider())

	resp, err := svc.Analyze(context.Background(), query("active", 50, 0))
	require.NoError(t, err)
	require.NotEmpty(t, resp.Patents)
	for _, p := range resp.Patents {
		assert.Contains(t, p.Status, "Active")
	}
	// No expired records in the filtered set means nothing to save
	assert.Equal(t, "£0", resp.EstimatedSavings)
}

func TestAnalyze_SortRelevanceDescending(t *testing.T) {
	svc := newService(catalog.NewStaticProvider())

	resp, err := svc.Analyze(context.Background(), query("all", 50, 0))
	require.NoError(t, err)
	for i := 1; i < len(resp.Patents); i++ {
		assert.GreaterOrEqual(t, resp.Patents[i-1].RelevanceScore, resp.Patents[i].RelevanceScore)
	}
}

func TestAnalyze_SortTitleAscending(t *testing.T) {
	svc := newService(catalog.NewStaticProvider())

	q := query("all", 50, 0)
	q.Sort = SortTitleAsc
	resp, err := svc.Analyze(context.Background(), q)
	require.NoError(t, err)
	for i := 1; i < len(resp.Patents); i++ {
		prev := strings.ToLower(resp.Patents[i-1].Title)
		curr := strings.ToLower(resp.Patents[i].Title)
		assert.LessOrEqual(t, prev, curr)
	}
}

func TestAnalyze_SortIsStable(t *testing.T) {
	provider := &stubCatalog{patents: []models.Patent{
		{PatentNumber: "US1", Title: "Alpha", Status: models.StatusActive, RelevanceScore: 0.5},
		{PatentNumber: "US2", Title: "Bravo", Status: models.StatusActive, RelevanceScore: 0.5},
		{PatentNumber: "US3", Title: "Charlie", Status: models.StatusActive, RelevanceScore: 0.5},
	}}
	svc := newService(provider)

	resp, err := svc.Analyze(context.Background(), query("all", 10, 0))
	require.NoError(t, err)
	require.Len(t, resp.Patents, 3)
	// Equal scores keep their pre-sort order
	assert.Equal(t, "US1", resp.Patents[0].PatentNumber)
	assert.Equal(t, "US2", resp.Patents[1].PatentNumber)
	assert.Equal(t, "US3", resp.Patents[2].PatentNumber)
}

func TestAnalyze_MinRelevanceFilter(t *testing.T) {
	svc := newService(catalog.NewStaticProvider())

	q := query("all", 50, 0)
	q.MinRelevance = 0.99
	resp, err := svc.Analyze(context.Background(), q)
	require.NoError(t, err)
	for _, p := range resp.Patents {
		assert.GreaterOrEqual(t, p.RelevanceScore, 0.99)
	}
	// An over-strict threshold is a valid empty result, not an error
	assert.Equal(t, len(resp.Patents), resp.TotalPatentsFound)
}

func TestAnalyze_JurisdictionFilter(t *testing.T) {
	svc := newService(catalog.NewStaticProvider())

	q := query("all", 50, 0)
	q.Jurisdiction = "ep"
	resp, err := svc.Analyze(context.Background(), q)
	require.NoError(t, err)
	require.NotEmpty(t, resp.Patents)
	for _, p := range resp.Patents {
		assert.True(t, strings.HasPrefix(p.PatentNumber, "EP"))
	}
	assert.Equal(t, "EP", resp.AppliedFilters.Jurisdiction)
}

func TestAnalyze_MinYearDropsUnknownYears(t *testing.T) {
	provider := &stubCatalog{patents: []models.Patent{
		{PatentNumber: "US1", Title: "Known year", Status: models.StatusActive, FilingYear: 2015},
		{PatentNumber: "US2", Title: "Unknown year", Status: models.StatusActive},
	}}
	svc := newService(provider)

	q := query("all", 10, 0)
	q.MinYear = 2010
	resp, err := svc.Analyze(context.Background(), q)
	require.NoError(t, err)
	require.Len(t, resp.Patents, 1)
	assert.Equal(t, "US1", resp.Patents[0].PatentNumber)
}

func TestAnalyze_ClassifiesRecordsWithoutStatus(t *testing.T) {
	provider := &stubCatalog{patents: []models.Patent{
		{PatentNumber: "US1", Title: "Old one", FilingYear: 1999},
		{PatentNumber: "US2", Title: "New one", FilingYear: 2024},
		{PatentNumber: "US3", Title: "No year at all"},
	}}
	svc := newService(provider)

	resp, err := svc.Analyze(context.Background(), query("all", 10, 0))
	require.NoError(t, err)
	byNumber := map[string]models.Patent{}
	for _, p := range resp.Patents {
		byNumber[p.PatentNumber] = p
	}
	assert.Equal(t, models.StatusExpired, byNumber["US1"].Status)
	assert.Equal(t, models.StatusActive, byNumber["US2"].Status)
	assert.Equal(t, models.StatusActive, byNumber["US3"].Status)
}

func TestAnalyze_EmptyDescriptionStillSucceeds(t *testing.T) {
	extractor := &stubExtractor{concepts: []string{"battery", "thermal", "cooling"}}
	svc := NewAnalyzeService(extractor, catalog.NewStaticProvider(), 15000, "£", logrus.New())

	q := query("all", 19, 0)
	q.Description = ""
	resp, err := svc.Analyze(context.Background(), q)
	require.NoError(t, err)
	assert.NotEmpty(t, resp.KeyConcepts)
	assert.NotNil(t, resp.Patents)
}

func TestAnalyze_PlainSummaryDerived(t *testing.T) {
	svc := newService(catalog.NewStaticProvider())

	resp, err := svc.Analyze(context.Background(), query("all", 1, 0))
	require.NoError(t, err)
	require.NotEmpty(t, resp.Patents)
	p := resp.Patents[0]
	assert.Equal(t, "This patent covers "+strings.ToLower(p.Title)+".", p.PlainSummary)
}

func TestAnalyze_CatalogFailureSurfaces(t *testing.T) {
	provider := &stubCatalog{err: errors.New("boom")}
	svc := newService(provider)

	_, err := svc.Analyze(context.Background(), query("all", 10, 0))
	assert.Error(t, err)
}

func TestAnalyze_ScoresStayBounded(t *testing.T) {
	svc := newService(catalog.NewStaticProvider())

	resp, err := svc.Analyze(context.Background(), query("all", 50, 0))
	require.NoError(t, err)
	for _, p := range resp.Patents {
		assert.GreaterOrEqual(t, p.RelevanceScore, 0.0)
		assert.LessOrEqual(t, p.RelevanceScore, 1.0)
	}
}
