// Package analytics is the fixed catalogue of aggregate queries over the
// procurement graph, plus the risk classification applied to supplier
// profiles. Every entry is a pure read: parameters in, typed rows out.
package analytics

import "time"

// GeneralStats counts each node kind in the graph. Recomputed on every
// request, never cached.
type GeneralStats struct {
	Buyers       int64 `json:"buyers"`
	Suppliers    int64 `json:"suppliers"`
	Procurements int64 `json:"procurements"`
	Awards       int64 `json:"awards"`
}

// BuyerRanking is one entry of the top-buyers ranking, descending by
// published procurement count.
type BuyerRanking struct {
	Name  string `json:"name"`
	Total int64  `json:"total"`
}

// SupplierRanking is one entry of the top-suppliers ranking, descending by
// received award count.
type SupplierRanking struct {
	Name   string `json:"name"`
	Awards int64  `json:"awards"`
}

// RepetitiveContract is a (buyer, supplier) pair whose award count exceeds
// the repetitive threshold, a proxy signal for potential favoritism. The
// JSON field names are the ones the dashboard charts consume.
type RepetitiveContract struct {
	Buyer      string `json:"entidad"`
	Supplier   string `json:"proveedor"`
	AwardCount int64  `json:"adjudicaciones"`
}

// SupplierProfile is the derived per-supplier metric set produced by the
// search query. QuickAwardRatio is a rounded 0-100 percentage; both ratio and
// average are zero for suppliers without awards.
type SupplierProfile struct {
	Name             string  `json:"name"`
	RUC              string  `json:"ruc"`
	TotalAwards      int64   `json:"totalAwards"`
	UniqueBuyers     int64   `json:"uniqueBuyers"`
	QuickAwardRatio  float64 `json:"quickAwardRatio"`
	AvgContractValue float64 `json:"avgContractValue"`
}

// BuyerContract is one supplier row of the buyer drill-down: how many awards
// that supplier received from the buyer and for how much in total.
type BuyerContract struct {
	Supplier   string  `json:"proveedor"`
	AwardCount int64   `json:"adjudicaciones"`
	TotalValue float64 `json:"montoTotal"`
}

// SupplierContract is one contract row of the supplier drill-down. Date is
// nil when the procurement has no published date; Description is empty when
// the store holds none (the formatter substitutes the display sentinel).
type SupplierContract struct {
	Buyer       string
	OCID        string
	Description string
	Amount      float64
	Currency    string
	Date        *time.Time
}
