package models

// Patent status values. Curated catalog entries carry one of these literals;
// everything else is derived from the filing year.
const (
	StatusActive  = "Active Patent"
	StatusExpired = "Expired - Free to Use"
)

// Patent is a single patent record as returned to clients. FilingYear and
// Jurisdiction are query-time helpers and never serialized.
type Patent struct {
	PatentNumber   string  `json:"patent_number"`
	Title          string  `json:"title"`
	Abstract       string  `json:"abstract"`
	Status         string  `json:"status"`
	URL            string  `json:"url"`
	RelevanceScore float64 `json:"relevance_score"`
	PlainSummary   string  `json:"plain_summary,omitempty"`

	FilingYear   int    `json:"-"`
	Jurisdiction string `json:"-"`
}
