package analytics

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/procurewatch/backend/pkg/graph"
)

// fakeStore dispatches on query content and, for the threshold queries,
// evaluates the filter against an in-memory fixture the way the store would.
type fakeStore struct {
	supplierAwards map[string]int64    // supplier -> award count
	pairAwards     map[[2]string]int64 // (buyer, supplier) -> award count
	searchRows     []graph.Record      // canned supplier search rows
	contractRows   []graph.Record      // canned supplier drill-down rows
	err            error               // returned for every query when set
	calls          []string            // queries seen, in order
	lastParams     map[string]any
}

func (f *fakeStore) Run(ctx context.Context, query string, params map[string]any) ([]graph.Record, error) {
	f.calls = append(f.calls, query)
	f.lastParams = params
	if f.err != nil {
		return nil, f.err
	}

	switch {
	case strings.Contains(query, "RETURN buyers, suppliers, procurements, awards"):
		return []graph.Record{{
			"buyers": int64(12), "suppliers": int64(34),
			"procurements": int64(56), "awards": int64(78),
		}}, nil

	case strings.Contains(query, "count(s) AS count"):
		threshold := int64(params["threshold"].(int))
		var n int64
		for _, awards := range f.supplierAwards {
			if awards > threshold {
				n++
			}
		}
		return []graph.Record{{"count": n}}, nil

	case strings.Contains(query, "WHERE awardCount > $threshold"):
		threshold := int64(params["threshold"].(int))
		out := make([]graph.Record, 0)
		for pair, awards := range f.pairAwards {
			if awards > threshold {
				out = append(out, graph.Record{
					"buyer": pair[0], "supplier": pair[1], "awardCount": awards,
				})
			}
		}
		return out, nil

	case strings.Contains(query, "CONTAINS toLower($term)"):
		return f.searchRows, nil

	case strings.Contains(query, "WHERE s.name = $supplierName"):
		return f.contractRows, nil
	}
	return []graph.Record{}, nil
}

func TestGeneralStats(t *testing.T) {
	c := NewCatalog(&fakeStore{})

	stats, err := c.GeneralStats(context.Background())
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	want := GeneralStats{Buyers: 12, Suppliers: 34, Procurements: 56, Awards: 78}
	if stats != want {
		t.Fatalf("expected %+v, got %+v", want, stats)
	}
}

func TestFrequentSupplierCount(t *testing.T) {
	store := &fakeStore{
		supplierAwards: map[string]int64{"A": 1, "B": 6, "C": 7, "D": 2},
	}
	c := NewCatalog(store)

	count, err := c.FrequentSupplierCount(context.Background(), 5)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if count != 2 {
		t.Fatalf("expected 2 suppliers above threshold, got %d", count)
	}
	if store.lastParams["threshold"] != 5 {
		t.Fatalf("expected parameterized threshold 5, got %v", store.lastParams["threshold"])
	}
}

func TestFrequentSupplierCount_DefaultThreshold(t *testing.T) {
	store := &fakeStore{supplierAwards: map[string]int64{}}
	c := NewCatalog(store)

	if _, err := c.FrequentSupplierCount(context.Background(), 0); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if store.lastParams["threshold"] != DefaultFrequentThreshold {
		t.Fatalf("expected default threshold %d, got %v",
			DefaultFrequentThreshold, store.lastParams["threshold"])
	}
}

func TestRepetitiveContracts_FiltersByThreshold(t *testing.T) {
	store := &fakeStore{
		pairAwards: map[[2]string]int64{
			{"MUNICIPALIDAD DE LIMA", "CONSTRUCTORA NORTE"}: 4,
			{"GOBIERNO REGIONAL", "SERVICIOS SUR"}:          2,
		},
	}
	c := NewCatalog(store)

	pairs, err := c.RepetitiveContracts(context.Background(), 3)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if len(pairs) != 1 {
		t.Fatalf("expected only the pair above the threshold, got %d rows", len(pairs))
	}
	got := pairs[0]
	if got.Buyer != "MUNICIPALIDAD DE LIMA" || got.Supplier != "CONSTRUCTORA NORTE" || got.AwardCount != 4 {
		t.Fatalf("unexpected pair: %+v", got)
	}
}

func TestSearchSuppliers_EmptyMatchSet(t *testing.T) {
	c := NewCatalog(&fakeStore{searchRows: []graph.Record{}})

	profiles, err := c.SearchSuppliers(context.Background(), "nothing matches this")
	if err != nil {
		t.Fatalf("expected nil error for empty match set, got %v", err)
	}
	if profiles == nil || len(profiles) != 0 {
		t.Fatalf("expected empty slice, got %v", profiles)
	}
}

func TestSearchSuppliers_ZeroAwardSupplierDefaults(t *testing.T) {
	store := &fakeStore{searchRows: []graph.Record{{
		"name":             "NUEVA EMPRESA S.A.C.",
		"ruc":              nil,
		"totalAwards":      int64(0),
		"uniqueBuyers":     int64(0),
		"quickAwardRatio":  int64(0),
		"avgContractValue": int64(0),
	}}}
	c := NewCatalog(store)

	profiles, err := c.SearchSuppliers(context.Background(), "nueva")
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if len(profiles) != 1 {
		t.Fatalf("expected 1 profile, got %d", len(profiles))
	}
	p := profiles[0]
	if p.QuickAwardRatio != 0 || p.AvgContractValue != 0 {
		t.Fatalf("expected zero metrics for zero-award supplier, got %+v", p)
	}
	if p.RUC != "" {
		t.Fatalf("expected empty ruc for null column, got %q", p.RUC)
	}
	if Classify(p) != RiskLow {
		t.Fatalf("expected zero-award supplier to classify low, got %s", Classify(p))
	}
	if store.lastParams["term"] != "nueva" {
		t.Fatalf("expected search term passed as parameter, got %v", store.lastParams)
	}
}

func TestSupplierContracts_MapsRows(t *testing.T) {
	published := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	store := &fakeStore{contractRows: []graph.Record{
		{
			"buyer":       "MINISTERIO DE SALUD",
			"ocid":        "ocds-aaa-111",
			"description": "Adquisición de equipos",
			"amount":      1234.5,
			"currency":    "PEN",
			"date":        published,
		},
		{
			"buyer":       "MINISTERIO DE SALUD",
			"ocid":        "ocds-aaa-112",
			"description": nil,
			"amount":      nil,
			"currency":    "USD",
			"date":        nil,
		},
	}}
	c := NewCatalog(store)

	contracts, err := c.SupplierContracts(context.Background(), "CONSTRUCTORA NORTE")
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if len(contracts) != 2 {
		t.Fatalf("expected 2 contracts, got %d", len(contracts))
	}

	first := contracts[0]
	if first.Amount != 1234.5 || first.Currency != "PEN" {
		t.Fatalf("unexpected first contract: %+v", first)
	}
	if first.Date == nil || !first.Date.Equal(published) {
		t.Fatalf("expected published date preserved, got %v", first.Date)
	}

	second := contracts[1]
	if second.Description != "" || second.Amount != 0 || second.Date != nil {
		t.Fatalf("expected null columns to default safely, got %+v", second)
	}
	if store.lastParams["supplierName"] != "CONSTRUCTORA NORTE" {
		t.Fatalf("expected supplier name passed as parameter, got %v", store.lastParams)
	}
}

func TestCatalog_SurfacesStoreErrors(t *testing.T) {
	boom := errors.New("boom")
	c := NewCatalog(&fakeStore{err: boom})

	if _, err := c.GeneralStats(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("expected store error surfaced, got %v", err)
	}
	if _, err := c.TopBuyers(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("expected store error surfaced, got %v", err)
	}
	if _, err := c.SearchSuppliers(context.Background(), "x"); !errors.Is(err, boom) {
		t.Fatalf("expected store error surfaced, got %v", err)
	}
}
