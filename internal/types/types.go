// =============================================================================
// Sales Analytics - Shared Types
// =============================================================================
//
// This package contains the shared data model used across the pipeline to
// avoid import cycles. Types defined here are used by:
//   - parser
//   - validation
//   - analytics
//   - catalog / enrich
//   - report
//
// =============================================================================

package types

// =============================================================================
// ID PREFIXES
// =============================================================================
// Every valid record carries reserved prefixes on its three identifier
// fields. Records missing any of them are dropped during validation.

const (
	// TransactionPrefix marks a TransactionID (e.g. "T1001").
	TransactionPrefix = "T"

	// ProductPrefix marks a ProductID (e.g. "P101"). The digits embedded in
	// the ID are used for catalog lookups.
	ProductPrefix = "P"

	// CustomerPrefix marks a CustomerID (e.g. "C042").
	CustomerPrefix = "C"
)

// =============================================================================
// TRANSACTION TYPES
// =============================================================================

// Transaction represents a single parsed sales record. Fields are never
// mutated after parsing; enrichment produces a separate type.
type Transaction struct {
	// TransactionID is the unique record identifier ("T"-prefixed).
	TransactionID string

	// Date is the transaction date in YYYY-MM-DD form. It is kept as a
	// string: the pipeline only groups and sorts by it, relying on the ISO
	// layout for lexicographic ordering.
	Date string

	// ProductID is the "P"-prefixed product reference.
	ProductID string

	// ProductName is the display name with delimiter-colliding commas
	// already stripped by the parser.
	ProductName string

	// Quantity is the number of units sold. Strictly positive for valid
	// records.
	Quantity int

	// UnitPrice is the per-unit price. Strictly positive for valid records.
	UnitPrice float64

	// CustomerID is the "C"-prefixed customer reference.
	CustomerID string

	// Region is the free-text sales region.
	Region string
}

// Amount returns the monetary value of the transaction. It is always
// derived, never stored, so it cannot drift from its inputs.
func (t Transaction) Amount() float64 {
	return float64(t.Quantity) * t.UnitPrice
}

// EnrichedTransaction is a Transaction plus the optional catalog metadata
// attached by the enricher. Enrichment is additive: the embedded
// Transaction is copied unchanged.
type EnrichedTransaction struct {
	Transaction

	// APICategory is the catalog category, nil when unmatched.
	APICategory *string

	// APIBrand is the catalog brand, nil when unmatched.
	APIBrand *string

	// APIRating is the catalog rating, nil when unmatched or absent.
	APIRating *float64

	// APIMatch reports whether the product was found in the catalog.
	APIMatch bool
}

// =============================================================================
// CATALOG TYPES
// =============================================================================

// CatalogEntry is one normalized product record from the external catalog
// service.
type CatalogEntry struct {
	ID       int      `json:"id"`
	Title    string   `json:"title"`
	Category string   `json:"category"`
	Brand    string   `json:"brand"`
	Price    float64  `json:"price"`
	Rating   *float64 `json:"rating"`
}

// ProductInfo is the CatalogEntry subset attached to transactions during
// enrichment.
type ProductInfo struct {
	Title    string
	Category string
	Brand    string
	Rating   *float64
}

// CatalogIndex maps a numeric product id to its catalog metadata. It is
// built once per run and read-only thereafter.
type CatalogIndex map[int]ProductInfo

// =============================================================================
// FILTER TYPES
// =============================================================================

// FilterOptions holds the optional user-specified filters applied after
// validation. Zero values mean "not set".
type FilterOptions struct {
	// Region keeps only transactions whose Region matches exactly.
	Region string

	// MinAmount keeps only transactions with Amount >= *MinAmount.
	MinAmount *float64

	// MaxAmount keeps only transactions with Amount <= *MaxAmount.
	MaxAmount *float64
}

// FilterSummary reports what validation and filtering removed.
type FilterSummary struct {
	// TotalInput is the number of records handed to the validator.
	TotalInput int

	// Invalid is the number of records dropped by validation rules.
	Invalid int

	// FilteredByRegion is the number removed by the region filter.
	FilteredByRegion int

	// FilteredByAmount is the combined number removed by the min and max
	// amount filters.
	FilteredByAmount int

	// FinalCount is the number of records that survived.
	FinalCount int
}
