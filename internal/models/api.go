package models

// AnalyzeRequest is the /analyze body. An empty description is allowed and
// falls through to the extractor's default keyword set.
type AnalyzeRequest struct {
	Description string `json:"description"`
	Filter      string `json:"filter"`
}

// AnalyzeQuery bundles the request body with the query parameters after
// defaulting. Owned by a single request, never persisted.
type AnalyzeQuery struct {
	Description  string
	Filter       string
	Sort         string
	Jurisdiction string
	MinRelevance float64
	MinYear      int
	Limit        int
	Offset       int
}

type Pagination struct {
	Limit      int  `json:"limit"`
	Offset     int  `json:"offset"`
	Total      int  `json:"total"`
	NextOffset *int `json:"next_offset"`
	PrevOffset *int `json:"prev_offset"`
}

type AppliedFilters struct {
	Status       string  `json:"status"`
	MinRelevance float64 `json:"min_relevance"`
	MinYear      int     `json:"min_year,omitempty"`
	Jurisdiction string  `json:"jurisdiction,omitempty"`
	Sort         string  `json:"sort"`
}

type AnalyzeResponse struct {
	ProjectDescription string         `json:"project_description"`
	KeyConcepts        []string       `json:"key_concepts"`
	TotalPatentsFound  int            `json:"total_patents_found"`
	EstimatedSavings   string         `json:"estimated_savings"`
	Patents            []Patent       `json:"patents"`
	Pagination         Pagination     `json:"pagination"`
	AppliedFilters     AppliedFilters `json:"applied_filters"`
}

// ExportRequest is the /export-pdf body. The result set is supplied by the
// caller wholesale and rendered as-is, not recomputed.
type ExportRequest struct {
	ProjectDescription string   `json:"project_description"`
	KeyConcepts        []string `json:"key_concepts"`
	EstimatedSavings   string   `json:"estimated_savings"`
	Patents            []Patent `json:"patents"`
	Filter             string   `json:"filter"`
}

type HealthResponse struct {
	Status   string            `json:"status"`
	LiveData bool              `json:"live_data"`
	Uptime   string            `json:"uptime"`
	Services map[string]string `json:"services,omitempty"`
}
