package analytics

import (
	"context"

	"github.com/procurewatch/backend/pkg/graph"
)

// Default thresholds for the frequency-based indicators. Both are
// overridable per call; the defaults mirror the dashboard's original tuning.
const (
	DefaultFrequentThreshold   = 5
	DefaultRepetitiveThreshold = 3
)

const generalStatsQuery = `
CALL { MATCH (b:Buyer) RETURN count(b) AS buyers }
CALL { MATCH (s:Supplier) RETURN count(s) AS suppliers }
CALL { MATCH (p:Procurement) RETURN count(p) AS procurements }
CALL { MATCH (a:Award) RETURN count(a) AS awards }
RETURN buyers, suppliers, procurements, awards`

const topBuyersQuery = `
MATCH (b:Buyer)-[:PUBLISHED]->(p:Procurement)
WITH b.name AS name, count(p) AS total
ORDER BY total DESC
LIMIT 5
RETURN name, total`

const topSuppliersQuery = `
MATCH (s:Supplier)<-[:AWARDED_TO]-(a:Award)
WITH s.name AS name, count(a) AS awards
ORDER BY awards DESC
LIMIT 5
RETURN name, awards`

const frequentSupplierCountQuery = `
MATCH (s:Supplier)<-[:AWARDED_TO]-(a:Award)
WITH s, count(a) AS awards
WHERE awards > $threshold
RETURN count(s) AS count`

const repetitiveContractsQuery = `
MATCH (b:Buyer)-[:PUBLISHED]->(p:Procurement)-[:HAS_AWARD]->(a:Award)-[:AWARDED_TO]->(s:Supplier)
WITH b.name AS buyer, s.name AS supplier, count(a) AS awardCount
WHERE awardCount > $threshold
RETURN buyer, supplier, awardCount
ORDER BY awardCount DESC
LIMIT 10`

// Supplier search keeps left-outer semantics: a matched supplier with no
// awards still comes back, with zero-valued metrics.
const supplierSearchQuery = `
MATCH (s:Supplier)
WHERE toLower(s.name) CONTAINS toLower($term)
OPTIONAL MATCH (s)<-[:AWARDED_TO]-(a:Award)
OPTIONAL MATCH (b:Buyer)-[:PUBLISHED]->(p:Procurement)-[:HAS_AWARD]->(a)
RETURN
    s.name AS name,
    s.ruc AS ruc,
    count(DISTINCT a) AS totalAwards,
    count(DISTINCT b) AS uniqueBuyers,
    CASE WHEN count(a) > 0
        THEN round(100.0 * count(CASE WHEN p.quickAward = true THEN 1 END) / count(a))
        ELSE 0
    END AS quickAwardRatio,
    CASE WHEN count(a) > 0
        THEN round(avg(toFloat(a.value)))
        ELSE 0
    END AS avgContractValue`

const buyerContractsQuery = `
MATCH (b:Buyer)-[:PUBLISHED]->(p:Procurement)-[:HAS_AWARD]->(a:Award)-[:AWARDED_TO]->(s:Supplier)
WHERE b.name = $buyerName
RETURN s.name AS supplier,
       count(a) AS awardCount,
       sum(toFloat(a.value)) AS totalValue
ORDER BY awardCount DESC
LIMIT 10`

const supplierContractsQuery = `
MATCH (b:Buyer)-[:PUBLISHED]->(p:Procurement)-[:HAS_AWARD]->(a:Award)-[:AWARDED_TO]->(s:Supplier)
WHERE s.name = $supplierName
RETURN b.name AS buyer,
       p.ocid AS ocid,
       p.description AS description,
       toFloat(a.value) AS amount,
       a.currency AS currency,
       p.publishedDate AS date
ORDER BY date DESC`

// Catalog runs the fixed set of analytical queries through a graph.Store.
// It holds no state of its own; each call is an independent read.
type Catalog struct {
	store graph.Store
}

func NewCatalog(store graph.Store) *Catalog {
	return &Catalog{store: store}
}

// GeneralStats returns the total count of each entity kind.
func (c *Catalog) GeneralStats(ctx context.Context) (GeneralStats, error) {
	records, err := c.store.Run(ctx, generalStatsQuery, nil)
	if err != nil {
		return GeneralStats{}, err
	}
	if len(records) == 0 {
		return GeneralStats{}, nil
	}
	rec := records[0]
	return GeneralStats{
		Buyers:       rec.Int("buyers"),
		Suppliers:    rec.Int("suppliers"),
		Procurements: rec.Int("procurements"),
		Awards:       rec.Int("awards"),
	}, nil
}

// TopBuyers returns the five buyers with the most published procurements,
// descending.
func (c *Catalog) TopBuyers(ctx context.Context) ([]BuyerRanking, error) {
	records, err := c.store.Run(ctx, topBuyersQuery, nil)
	if err != nil {
		return nil, err
	}
	out := make([]BuyerRanking, 0, len(records))
	for _, rec := range records {
		out = append(out, BuyerRanking{
			Name:  rec.String("name"),
			Total: rec.Int("total"),
		})
	}
	return out, nil
}

// TopSuppliers returns the five suppliers with the most awards, descending.
func (c *Catalog) TopSuppliers(ctx context.Context) ([]SupplierRanking, error) {
	records, err := c.store.Run(ctx, topSuppliersQuery, nil)
	if err != nil {
		return nil, err
	}
	out := make([]SupplierRanking, 0, len(records))
	for _, rec := range records {
		out = append(out, SupplierRanking{
			Name:   rec.String("name"),
			Awards: rec.Int("awards"),
		})
	}
	return out, nil
}

// FrequentSupplierCount counts suppliers holding strictly more awards than
// threshold. A non-positive threshold falls back to the default.
func (c *Catalog) FrequentSupplierCount(ctx context.Context, threshold int) (int64, error) {
	if threshold <= 0 {
		threshold = DefaultFrequentThreshold
	}
	records, err := c.store.Run(ctx, frequentSupplierCountQuery, map[string]any{
		"threshold": threshold,
	})
	if err != nil {
		return 0, err
	}
	if len(records) == 0 {
		return 0, nil
	}
	return records[0].Int("count"), nil
}

// RepetitiveContracts returns the top ten (buyer, supplier) pairs whose award
// count exceeds threshold, descending. Pairs at or below the threshold are
// excluded by construction (inner-join semantics).
func (c *Catalog) RepetitiveContracts(ctx context.Context, threshold int) ([]RepetitiveContract, error) {
	if threshold <= 0 {
		threshold = DefaultRepetitiveThreshold
	}
	records, err := c.store.Run(ctx, repetitiveContractsQuery, map[string]any{
		"threshold": threshold,
	})
	if err != nil {
		return nil, err
	}
	out := make([]RepetitiveContract, 0, len(records))
	for _, rec := range records {
		out = append(out, RepetitiveContract{
			Buyer:      rec.String("buyer"),
			Supplier:   rec.String("supplier"),
			AwardCount: rec.Int("awardCount"),
		})
	}
	return out, nil
}

// SearchSuppliers matches suppliers whose name contains term,
// case-insensitively, and derives their award metrics. An empty match set is
// an empty slice, never an error.
func (c *Catalog) SearchSuppliers(ctx context.Context, term string) ([]SupplierProfile, error) {
	records, err := c.store.Run(ctx, supplierSearchQuery, map[string]any{
		"term": term,
	})
	if err != nil {
		return nil, err
	}
	out := make([]SupplierProfile, 0, len(records))
	for _, rec := range records {
		out = append(out, SupplierProfile{
			Name:             rec.String("name"),
			RUC:              rec.String("ruc"),
			TotalAwards:      rec.Int("totalAwards"),
			UniqueBuyers:     rec.Int("uniqueBuyers"),
			QuickAwardRatio:  rec.Float("quickAwardRatio"),
			AvgContractValue: rec.Float("avgContractValue"),
		})
	}
	return out, nil
}

// BuyerContracts returns the buyer's top ten suppliers by award count, with
// totals. A buyer name that no longer resolves yields an empty slice.
func (c *Catalog) BuyerContracts(ctx context.Context, buyerName string) ([]BuyerContract, error) {
	records, err := c.store.Run(ctx, buyerContractsQuery, map[string]any{
		"buyerName": buyerName,
	})
	if err != nil {
		return nil, err
	}
	out := make([]BuyerContract, 0, len(records))
	for _, rec := range records {
		out = append(out, BuyerContract{
			Supplier:   rec.String("supplier"),
			AwardCount: rec.Int("awardCount"),
			TotalValue: rec.Float("totalValue"),
		})
	}
	return out, nil
}

// SupplierContracts returns every contract awarded to the supplier, newest
// first. A supplier name that no longer resolves yields an empty slice.
func (c *Catalog) SupplierContracts(ctx context.Context, supplierName string) ([]SupplierContract, error) {
	records, err := c.store.Run(ctx, supplierContractsQuery, map[string]any{
		"supplierName": supplierName,
	})
	if err != nil {
		return nil, err
	}
	out := make([]SupplierContract, 0, len(records))
	for _, rec := range records {
		contract := SupplierContract{
			Buyer:       rec.String("buyer"),
			OCID:        rec.String("ocid"),
			Description: rec.String("description"),
			Amount:      rec.Float("amount"),
			Currency:    rec.String("currency"),
		}
		if date, ok := rec.Time("date"); ok {
			contract.Date = &date
		}
		out = append(out, contract)
	}
	return out, nil
}
