package catalog

import (
	"context"

	"github.com/reclaimip/backend/internal/models"
	"github.com/reclaimip/backend/internal/scoring"
)

// curatedPatents is the built-in catalog used when no live search backend
// is configured or reachable. Entries are immutable for the process
// lifetime; statuses are pre-assigned so curated data never drifts with
// the clock. Scores are recomputed per query.
var curatedPatents = []models.Patent{
	{
		PatentNumber: "US10326145B2",
		Title:        "Battery thermal management system using phase change material",
		Abstract:     "A battery thermal management system for electric vehicles that uses phase change materials to maintain optimal operating temperature. The system includes a housing containing phase change material surrounding battery cells.",
		Status:       models.StatusExpired,
		URL:          "https://patents.google.com/patent/US10326145B2",
		FilingYear:   2003,
	},
	{
		PatentNumber: "US9847537B2",
		Title:        "Lithium-ion battery cooling system with integrated heat exchanger",
		Abstract:     "An integrated cooling system for lithium-ion batteries featuring a compact heat exchanger design that improves thermal efficiency while reducing weight and cost.",
		Status:       models.StatusActive,
		URL:          "https://patents.google.com/patent/US9847537B2",
		FilingYear:   2014,
	},
	{
		PatentNumber: "US8993134B2",
		Title:        "Phase change material composition for battery thermal regulation",
		Abstract:     "A novel phase change material composition specifically designed for battery thermal management applications, providing improved heat absorption and release characteristics.",
		Status:       models.StatusExpired,
		URL:          "https://patents.google.com/patent/US8993134B2",
		FilingYear:   2001,
	},
	{
		PatentNumber: "US10224546B2",
		Title:        "Electric vehicle battery pack with passive cooling",
		Abstract:     "A battery pack design for electric vehicles incorporating passive cooling elements that reduce the need for active cooling systems, improving efficiency and reducing complexity.",
		Status:       models.StatusActive,
		URL:          "https://patents.google.com/patent/US10224546B2",
		FilingYear:   2016,
	},
	{
		PatentNumber: "US9728778B2",
		Title:        "Thermal interface material for battery applications",
		Abstract:     "A thermal interface material optimized for use between battery cells and cooling systems, providing enhanced thermal conductivity and long-term stability.",
		Status:       models.StatusExpired,
		URL:          "https://patents.google.com/patent/US9728778B2",
		FilingYear:   2002,
	},
	{
		PatentNumber: "US10141559B2",
		Title:        "Battery module with integrated phase change cooling",
		Abstract:     "A modular battery design that integrates phase change material cooling directly into the battery module structure, simplifying assembly and improving thermal performance.",
		Status:       models.StatusExpired,
		URL:          "https://patents.google.com/patent/US10141559B2",
		FilingYear:   2004,
	},
	{
		PatentNumber: "US9923229B2",
		Title:        "Method for thermal management of high-power battery systems",
		Abstract:     "A comprehensive method for managing thermal conditions in high-power battery systems, particularly suited for fast-charging applications and high-performance electric vehicles.",
		Status:       models.StatusActive,
		URL:          "https://patents.google.com/patent/US9923229B2",
		FilingYear:   2015,
	},
	{
		PatentNumber: "US8974929B2",
		Title:        "Composite phase change material for energy storage",
		Abstract:     "A composite phase change material that combines multiple materials to achieve optimal thermal properties for battery thermal management and energy storage applications.",
		Status:       models.StatusExpired,
		URL:          "https://patents.google.com/patent/US8974929B2",
		FilingYear:   2000,
	},
	{
		PatentNumber: "US10320031B2",
		Title:        "Battery pack thermal management with liquid cooling",
		Abstract:     "An advanced liquid cooling system for battery packs that uses optimized flow channels and cooling plate designs to achieve uniform temperature distribution.",
		Status:       models.StatusActive,
		URL:          "https://patents.google.com/patent/US10320031B2",
		FilingYear:   2017,
	},
	{
		PatentNumber: "US9666864B2",
		Title:        "Encapsulated phase change material for thermal regulation",
		Abstract:     "Microencapsulated phase change materials designed for integration into battery thermal management systems, providing improved handling and performance characteristics.",
		Status:       models.StatusExpired,
		URL:          "https://patents.google.com/patent/US9666864B2",
		FilingYear:   2001,
	},
	{
		PatentNumber: "EP2612390B1",
		Title:        "Thermal runaway protection for battery cell assemblies",
		Abstract:     "A protection arrangement for battery cell assemblies that detects early thermal runaway conditions and isolates affected cells using a heat-activated barrier layer.",
		Status:       models.StatusExpired,
		URL:          "https://patents.google.com/patent/EP2612390B1",
		FilingYear:   2005,
	},
	{
		PatentNumber: "EP3340338A1",
		Title:        "Immersion cooling arrangement for traction battery modules",
		Abstract:     "A dielectric immersion cooling arrangement for traction battery modules in which cells are partially submerged in a circulating non-conductive coolant.",
		Status:       models.StatusActive,
		URL:          "https://patents.google.com/patent/EP3340338A1",
		FilingYear:   2018,
	},
}

// StaticProvider serves the curated catalog, rescoring every record
// against the current query's concepts.
type StaticProvider struct{}

func NewStaticProvider() *StaticProvider {
	return &StaticProvider{}
}

func (p *StaticProvider) Search(_ context.Context, description string, concepts []string, max int) ([]models.Patent, error) {
	patents := make([]models.Patent, 0, len(curatedPatents))
	for _, patent := range curatedPatents {
		patent.RelevanceScore = scoring.Score(description, concepts, patent)
		patents = append(patents, patent)
		if max > 0 && len(patents) == max {
			break
		}
	}
	return patents, nil
}

// CatalogSize returns the number of curated records, mainly for health
// reporting.
func CatalogSize() int {
	return len(curatedPatents)
}
