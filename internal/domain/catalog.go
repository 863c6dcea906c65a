package domain

import (
	"sort"

	"github.com/shopspring/decimal"
)

// StrategyID identifies a tax-reduction strategy in the catalog.
type StrategyID string

const (
	StrategyRetirement401kMax StrategyID = "retirement_401k_max"
	StrategyAugustaRule       StrategyID = "augusta_rule"
	StrategyHireChildren      StrategyID = "hire_children"
	StrategySCorpElection     StrategyID = "s_corp_election"
	StrategyCostSegregation   StrategyID = "cost_segregation"
	StrategyRenewableTaxUnits StrategyID = "renewable_tax_units"
	StrategyFilmFinancing     StrategyID = "film_financing"
	StrategyLeveragedGiving   StrategyID = "leveraged_giving"
)

// CatalogEntry describes a strategy's fixed catalog attributes: where it
// sorts in display order, which impact model it uses, whether it stacks
// automatically when eligible, and an optional income gate.
type CatalogEntry struct {
	ID           StrategyID
	Title        string
	DisplayOrder int
	Kind         ModelKind
	AutoApply    bool
	// MinBaselineTaxableIncome, when set, gates application on the original
	// baseline taxable income (never the running revised total).
	MinBaselineTaxableIncome *decimal.Decimal
}

// Catalog is an immutable, explicitly constructed strategy lookup table.
// It is passed into the evaluator and registry rather than living as
// package-level state.
type Catalog struct {
	byID    map[StrategyID]CatalogEntry
	ordered []CatalogEntry
}

// NewCatalog builds a catalog from entries, ordered by display order with
// lexicographic id tiebreak.
func NewCatalog(entries []CatalogEntry) Catalog {
	ordered := make([]CatalogEntry, len(entries))
	copy(ordered, entries)
	sort.Slice(ordered, func(i, j int) bool {
		if ordered[i].DisplayOrder != ordered[j].DisplayOrder {
			return ordered[i].DisplayOrder < ordered[j].DisplayOrder
		}
		return ordered[i].ID < ordered[j].ID
	})
	byID := make(map[StrategyID]CatalogEntry, len(ordered))
	for _, e := range ordered {
		byID[e.ID] = e
	}
	return Catalog{byID: byID, ordered: ordered}
}

// Lookup returns the entry for id.
func (c Catalog) Lookup(id StrategyID) (CatalogEntry, bool) {
	e, ok := c.byID[id]
	return e, ok
}

// Known reports whether id belongs to the catalog.
func (c Catalog) Known(id StrategyID) bool {
	_, ok := c.byID[id]
	return ok
}

// Ordered returns entries in deterministic application order.
func (c Catalog) Ordered() []CatalogEntry {
	out := make([]CatalogEntry, len(c.ordered))
	copy(out, c.ordered)
	return out
}

// AutoApplyIDs returns the ids of strategies that stack automatically when
// eligible, in application order.
func (c Catalog) AutoApplyIDs() []StrategyID {
	var ids []StrategyID
	for _, e := range c.ordered {
		if e.AutoApply {
			ids = append(ids, e.ID)
		}
	}
	return ids
}

// IDs returns every catalog id in application order.
func (c Catalog) IDs() []StrategyID {
	ids := make([]StrategyID, 0, len(c.ordered))
	for _, e := range c.ordered {
		ids = append(ids, e.ID)
	}
	return ids
}

func gate(amount int64) *decimal.Decimal {
	d := decimal.NewFromInt(amount)
	return &d
}

// DefaultCatalog returns the built-in strategy catalog.
func DefaultCatalog() Catalog {
	return NewCatalog([]CatalogEntry{
		{ID: StrategyRetirement401kMax, Title: "Maximize 401(k) Deferrals", DisplayOrder: 1, Kind: ModelDeferralRange, AutoApply: true},
		{ID: StrategyAugustaRule, Title: "Augusta Rule Home Rental", DisplayOrder: 2, Kind: ModelDeductionRange, AutoApply: true},
		{ID: StrategyHireChildren, Title: "Hire Your Children", DisplayOrder: 3, Kind: ModelDeductionRange, AutoApply: true},
		{ID: StrategySCorpElection, Title: "S Corporation Election", DisplayOrder: 4, Kind: ModelCreditRange, AutoApply: true},
		{ID: StrategyCostSegregation, Title: "Cost Segregation Study", DisplayOrder: 5, Kind: ModelDeductionRange},
		{ID: StrategyRenewableTaxUnits, Title: "Renewable Tax Units", DisplayOrder: 6, Kind: ModelCreditRange, MinBaselineTaxableIncome: gate(350000)},
		{ID: StrategyFilmFinancing, Title: "Film Financing", DisplayOrder: 7, Kind: ModelDeductionRange, MinBaselineTaxableIncome: gate(500000)},
		{ID: StrategyLeveragedGiving, Title: "Leveraged Charitable Giving", DisplayOrder: 8, Kind: ModelDeductionRange, MinBaselineTaxableIncome: gate(833000)},
	})
}
