package model

// Order export columns (marketplace "Pedidos" sheet).
const (
	ColSKU        = "Número do produto"
	ColName       = "Nome do produto"
	ColPrice      = "Preço do produto"
	ColCoupon     = "Valor do cupom"
	ColCommission = "Comissão"
	ColRevenue    = "Receita estimada de mercadorias"
)

// RequiredOrderColumns in export order.
var RequiredOrderColumns = []string{ColSKU, ColName, ColPrice, ColCoupon, ColCommission, ColRevenue}

// Accepted header aliases of a cost table, in order of preference.
var (
	CostKeyAliases   = []string{"SKU", "Número do produto", "Codigo", "Code"}
	CostValueAliases = []string{"Custo Unitário", "Custo", "Cost", "Valor", "Price"}
)

const (
	Pieces   = 1
	Shipping = 4.0
	// NoCost is rendered wherever cost, margin or gross profit is unknown.
	NoCost = "Sem dados"
)

// Table is a parsed sheet: ordered headers plus one map per data row.
// Cell values are string, float64 or nil.
type Table struct {
	Headers []string
	Rows    []map[string]any
}

type CostEntry struct {
	SKU      string  `json:"sku"`
	UnitCost float64 `json:"unitCost"`
}

// Tier names the rule that produced a cost.
type Tier string

const (
	TierExact      Tier = "exact"
	TierNormalized Tier = "normalized"
	TierPartial    Tier = "partial"
	TierFuzzy      Tier = "fuzzy"
	TierNone       Tier = "none"
)

type MatchResult struct {
	Cost  *float64 `json:"cost"`
	Tier  Tier     `json:"tier"`
	Key   string   `json:"key,omitempty"`   // index key that produced the cost
	Score *float64 `json:"score,omitempty"` // similarity for fuzzy
}

type ProcessedOrder struct {
	SKU           string   `json:"sku"`
	Name          string   `json:"name"`
	Price         float64  `json:"price"`
	Coupon        float64  `json:"coupon"`
	Commission    float64  `json:"commission"`
	Revenue       float64  `json:"revenue"`
	Pieces        int      `json:"pieces"`
	Shipping      float64  `json:"shipping"`
	NetReceivable float64  `json:"netReceivable"`
	Cost          *float64 `json:"cost"`
	Margin        *float64 `json:"margin"`
	GrossProfit   *float64 `json:"grossProfit"`
	Match         Tier     `json:"match"`
}

type CostMatchingStats struct {
	TotalSKUs      int `json:"totalSKUs"`
	ExactMatches   int `json:"exactMatches"`
	PartialMatches int `json:"partialMatches"`
	FuzzyMatches   int `json:"fuzzyMatches"`
	NoMatches      int `json:"noMatches"`
}

// Efficiency is the share of resolved SKUs in percent.
func (s CostMatchingStats) Efficiency() float64 {
	if s.TotalSKUs == 0 {
		return 0
	}
	return float64(s.ExactMatches+s.PartialMatches+s.FuzzyMatches) / float64(s.TotalSKUs) * 100
}

type SkippedRow struct {
	Line   int    `json:"line"` // 1-based position among data rows
	SKU    string `json:"sku,omitempty"`
	Reason string `json:"reason"`
}

// Batch is the outcome of one processing pass. Rows holds only the
// successfully processed lines; Skipped lists the rest.
type Batch struct {
	Rows        []ProcessedOrder  `json:"rows"`
	MissingSKUs []string          `json:"missingSkus"`
	Stats       CostMatchingStats `json:"stats"`
	Skipped     []SkippedRow      `json:"skipped"`
}

type Summary struct {
	Orders             int     `json:"orders"`
	TotalRevenue       float64 `json:"totalRevenue"`
	TotalCommission    float64 `json:"totalCommission"`
	TotalNetReceivable float64 `json:"totalNetReceivable"`
	TotalMargin        float64 `json:"totalMargin"`
	TotalGrossProfit   float64 `json:"totalGrossProfit"`
	WithCost           int     `json:"withCost"`
	WithoutCost        int     `json:"withoutCost"`
	Efficiency         float64 `json:"efficiency"`
}

const (
	SourceFile     = "file"
	SourceFallback = "fallback"
)

type Result struct {
	Batch
	Summary       Summary `json:"summary"`
	CostSource    string  `json:"costSource"`  // file | fallback
	CostEntries   int     `json:"costEntries"` // usable entries fed to the index
	CostDropped   int     `json:"costDropped"` // malformed cost rows
	CostFileError string  `json:"costFileError,omitempty"`
}
