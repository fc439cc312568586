package dashboard

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/procurewatch/backend/pkg/graph"
)

// trackingStore counts session acquire/release pairs per Run and can be told
// to fail specific queries, emulating a fault-injected store.
type trackingStore struct {
	mu       sync.Mutex
	opened   int
	released int
	failOn   string
	rows     map[string][]graph.Record
}

func (s *trackingStore) Run(ctx context.Context, query string, params map[string]any) ([]graph.Record, error) {
	s.mu.Lock()
	s.opened++
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		s.released++
		s.mu.Unlock()
	}()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.failOn != "" && strings.Contains(query, s.failOn) {
		return nil, errors.New("injected failure")
	}
	for marker, rows := range s.rows {
		if strings.Contains(query, marker) {
			return rows, nil
		}
	}
	return []graph.Record{}, nil
}

func overviewFixture() map[string][]graph.Record {
	return map[string][]graph.Record{
		"RETURN buyers, suppliers, procurements, awards": {{
			"buyers": int64(3), "suppliers": int64(5),
			"procurements": int64(9), "awards": int64(7),
		}},
		"count(p) AS total": {
			{"name": "MUNICIPALIDAD DE LIMA", "total": int64(4)},
		},
		"s.name AS name, count(a) AS awards": {
			{"name": "CONSTRUCTORA NORTE", "awards": int64(6)},
		},
		"count(s) AS count": {{"count": int64(1)}},
		"awardCount > $threshold": {
			{"buyer": "MUNICIPALIDAD DE LIMA", "supplier": "CONSTRUCTORA NORTE", "awardCount": int64(4)},
		},
	}
}

func TestOverview_MergesAllFiveQueries(t *testing.T) {
	store := &trackingStore{rows: overviewFixture()}
	svc := NewService(store)

	view, err := svc.Overview(context.Background(), 0, 0)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if view.GeneralStats.Procurements != 9 {
		t.Fatalf("unexpected general stats: %+v", view.GeneralStats)
	}
	if len(view.TopBuyers) != 1 || view.TopBuyers[0].Total != 4 {
		t.Fatalf("unexpected top buyers: %+v", view.TopBuyers)
	}
	if len(view.TopSuppliers) != 1 || view.TopSuppliers[0].Awards != 6 {
		t.Fatalf("unexpected top suppliers: %+v", view.TopSuppliers)
	}
	if view.FrequentSuppliers != 1 {
		t.Fatalf("unexpected frequent supplier count: %d", view.FrequentSuppliers)
	}
	if len(view.RepetitiveContracts) != 1 {
		t.Fatalf("unexpected repetitive contracts: %+v", view.RepetitiveContracts)
	}

	store.mu.Lock()
	defer store.mu.Unlock()
	if store.opened != 5 {
		t.Fatalf("expected 5 queries issued, got %d", store.opened)
	}
	if store.opened != store.released {
		t.Fatalf("session leak: opened %d, released %d", store.opened, store.released)
	}
}

func TestOverview_OneFailureAbortsAssembly(t *testing.T) {
	store := &trackingStore{
		rows:   overviewFixture(),
		failOn: "s.name AS name, count(a) AS awards", // fail the top-suppliers query
	}
	svc := NewService(store)

	view, err := svc.Overview(context.Background(), 0, 0)
	if err == nil {
		t.Fatal("expected overview assembly to fail")
	}
	if view != nil {
		t.Fatalf("expected no partial view-model, got %+v", view)
	}

	store.mu.Lock()
	defer store.mu.Unlock()
	if store.opened != store.released {
		t.Fatalf("session leak on failure: opened %d, released %d", store.opened, store.released)
	}
}

func TestSearchSuppliers_AttachesRiskAndSentinels(t *testing.T) {
	store := &trackingStore{rows: map[string][]graph.Record{
		"CONTAINS toLower($term)": {
			{
				"name": "CORPORACION BRAVO-SANCHEZ S.R.L", "ruc": nil,
				"totalAwards": int64(1), "uniqueBuyers": int64(0),
				"quickAwardRatio": int64(0), "avgContractValue": float64(320112),
			},
			{
				"name": "CONSTRUCTORA NORTE", "ruc": "20100070970",
				"totalAwards": int64(12), "uniqueBuyers": int64(3),
				"quickAwardRatio": int64(60), "avgContractValue": float64(80000),
			},
		},
	}}
	svc := NewService(store)

	results, err := svc.SearchSuppliers(context.Background(), "s")
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].RUC != "No disponible" {
		t.Fatalf("expected ruc sentinel, got %q", results[0].RUC)
	}
	if results[0].Risk != "low" {
		t.Fatalf("expected low risk, got %s", results[0].Risk)
	}
	if results[1].Risk != "high" {
		t.Fatalf("expected high risk for 60%% quick awards, got %s", results[1].Risk)
	}
}

func TestSupplierContracts_FormatsAndTotals(t *testing.T) {
	published := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	store := &trackingStore{rows: map[string][]graph.Record{
		"WHERE s.name = $supplierName": {
			{
				"buyer": "MINISTERIO DE SALUD", "ocid": "ocds-aaa-111",
				"description": "Adquisición de equipos",
				"amount":      1000.0, "currency": "PEN", "date": published,
			},
			{
				"buyer": "MINISTERIO DE SALUD", "ocid": "ocds-aaa-112",
				"description": nil,
				"amount":      234.5, "currency": "PEN", "date": nil,
			},
		},
	}}
	svc := NewService(store)

	view, err := svc.SupplierContracts(context.Background(), "CONSTRUCTORA NORTE")
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if view.ContractCount != 2 {
		t.Fatalf("expected 2 contracts, got %d", view.ContractCount)
	}
	if !strings.Contains(view.TotalAmount, "S/.") {
		t.Fatalf("expected total in PEN, got %q", view.TotalAmount)
	}
	if view.Contracts[0].Date != "15/03/2024" {
		t.Fatalf("unexpected date formatting: %q", view.Contracts[0].Date)
	}
	if view.Contracts[1].Date != "Fecha no disponible" {
		t.Fatalf("expected date sentinel, got %q", view.Contracts[1].Date)
	}
	if view.Contracts[1].Description != "Sin descripción" {
		t.Fatalf("expected description sentinel, got %q", view.Contracts[1].Description)
	}
}

func TestSupplierContracts_EmptyDrilldownIsNotAnError(t *testing.T) {
	svc := NewService(&trackingStore{rows: map[string][]graph.Record{}})

	view, err := svc.SupplierContracts(context.Background(), "gone")
	if err != nil {
		t.Fatalf("expected empty drill-down to succeed, got %v", err)
	}
	if view.ContractCount != 0 || len(view.Contracts) != 0 {
		t.Fatalf("expected empty contract list, got %+v", view)
	}
}
