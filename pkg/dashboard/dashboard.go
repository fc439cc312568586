// Package dashboard composes the query catalogue into the view-models the
// presentation layer consumes. It is stateless: every call runs its queries
// fresh and holds nothing between requests.
package dashboard

import (
	"context"

	"github.com/procurewatch/backend/pkg/analytics"
	"github.com/procurewatch/backend/pkg/format"
	"github.com/procurewatch/backend/pkg/graph"

	"golang.org/x/sync/errgroup"
)

// Overview is the merged view-model of the five overview queries.
type Overview struct {
	GeneralStats        analytics.GeneralStats         `json:"generalStats"`
	TopBuyers           []analytics.BuyerRanking       `json:"topBuyers"`
	TopSuppliers        []analytics.SupplierRanking    `json:"topSuppliers"`
	FrequentSuppliers   int64                          `json:"frequentSuppliers"`
	RepetitiveContracts []analytics.RepetitiveContract `json:"repetitiveContracts"`
}

// SupplierResult is a search hit with its risk classification attached.
type SupplierResult struct {
	analytics.SupplierProfile
	Risk analytics.RiskLevel `json:"risk"`
}

// ContractView is one display-formatted row of the supplier drill-down.
type ContractView struct {
	OCID        string `json:"ocid"`
	Buyer       string `json:"entidad"`
	Description string `json:"description"`
	Amount      string `json:"amount"`
	Currency    string `json:"currency"`
	Date        string `json:"date"`
}

// SupplierContracts is the supplier drill-down view: formatted contract rows
// plus the aggregate total in the dominant currency.
type SupplierContracts struct {
	Supplier      string         `json:"proveedor"`
	Contracts     []ContractView `json:"contracts"`
	ContractCount int            `json:"contractCount"`
	TotalAmount   string         `json:"totalAmount"`
}

// Service orchestrates catalogue queries into view-models.
type Service struct {
	catalog *analytics.Catalog
}

func NewService(store graph.Store) *Service {
	return &Service{catalog: analytics.NewCatalog(store)}
}

// Overview issues the five overview queries concurrently and merges them once
// all complete. The queries are independent reads; the first failure cancels
// the rest and aborts the assembly, so callers never see a partial dashboard.
func (s *Service) Overview(
	ctx context.Context,
	frequentThreshold int,
	repetitiveThreshold int,
) (*Overview, error) {
	var view Overview
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		stats, err := s.catalog.GeneralStats(ctx)
		if err != nil {
			return err
		}
		view.GeneralStats = stats
		return nil
	})
	g.Go(func() error {
		buyers, err := s.catalog.TopBuyers(ctx)
		if err != nil {
			return err
		}
		view.TopBuyers = buyers
		return nil
	})
	g.Go(func() error {
		suppliers, err := s.catalog.TopSuppliers(ctx)
		if err != nil {
			return err
		}
		view.TopSuppliers = suppliers
		return nil
	})
	g.Go(func() error {
		count, err := s.catalog.FrequentSupplierCount(ctx, frequentThreshold)
		if err != nil {
			return err
		}
		view.FrequentSuppliers = count
		return nil
	})
	g.Go(func() error {
		pairs, err := s.catalog.RepetitiveContracts(ctx, repetitiveThreshold)
		if err != nil {
			return err
		}
		view.RepetitiveContracts = pairs
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &view, nil
}

// SearchSuppliers runs the supplier search and classifies every hit.
func (s *Service) SearchSuppliers(ctx context.Context, term string) ([]SupplierResult, error) {
	profiles, err := s.catalog.SearchSuppliers(ctx, term)
	if err != nil {
		return nil, err
	}
	results := make([]SupplierResult, 0, len(profiles))
	for _, p := range profiles {
		p.RUC = format.RUC(p.RUC)
		results = append(results, SupplierResult{
			SupplierProfile: p,
			Risk:            analytics.Classify(p),
		})
	}
	return results, nil
}

// BuyerContracts returns the buyer drill-down. An unresolvable buyer name is
// an empty list, not an error.
func (s *Service) BuyerContracts(ctx context.Context, buyerName string) ([]analytics.BuyerContract, error) {
	return s.catalog.BuyerContracts(ctx, buyerName)
}

// SupplierContracts returns the supplier drill-down with display formatting
// applied and the total amount summed in the first contract's currency,
// defaulting to PEN when the supplier has no contracts.
func (s *Service) SupplierContracts(ctx context.Context, supplierName string) (*SupplierContracts, error) {
	contracts, err := s.catalog.SupplierContracts(ctx, supplierName)
	if err != nil {
		return nil, err
	}

	currency := "PEN"
	if len(contracts) > 0 && contracts[0].Currency != "" {
		currency = contracts[0].Currency
	}

	var total float64
	rows := make([]ContractView, 0, len(contracts))
	for _, c := range contracts {
		total += c.Amount
		rows = append(rows, ContractView{
			OCID:        c.OCID,
			Buyer:       c.Buyer,
			Description: format.Description(c.Description),
			Amount:      format.Currency(c.Amount, c.Currency),
			Currency:    c.Currency,
			Date:        format.Date(c.Date),
		})
	}

	return &SupplierContracts{
		Supplier:      supplierName,
		Contracts:     rows,
		ContractCount: len(rows),
		TotalAmount:   format.Currency(total, currency),
	}, nil
}
