package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/gestion-api/internal/domain/entity"
	"github.com/jhoicas/gestion-api/internal/domain/repository"
)

var _ repository.StatsRepository = (*StatsRepo)(nil)

// StatsRepo consultas de estadísticas sobre el estado publicado del Store.
type StatsRepo struct {
	v *view
}

// NewStatsRepository construye el repositorio de estadísticas.
func NewStatsRepository(s *Store) *StatsRepo {
	return &StatsRepo{v: &view{store: s}}
}

func (r *StatsRepo) CountProducts(_ context.Context) (int64, error) {
	var n int64
	err := r.v.read(func(st *state) error { n = int64(st.products.len()); return nil })
	return n, err
}

func (r *StatsRepo) CountClients(_ context.Context) (int64, error) {
	var n int64
	err := r.v.read(func(st *state) error { n = int64(st.clients.len()); return nil })
	return n, err
}

func (r *StatsRepo) CountFournisseurs(_ context.Context) (int64, error) {
	var n int64
	err := r.v.read(func(st *state) error { n = int64(st.fournisseurs.len()); return nil })
	return n, err
}

func (r *StatsRepo) CountFactures(_ context.Context, factureType string) (int64, error) {
	var n int64
	err := r.v.read(func(st *state) error {
		for _, f := range st.factures.all() {
			if factureType == "" || string(f.Type) == factureType {
				n++
			}
		}
		return nil
	})
	return n, err
}

func (r *StatsRepo) StockValue(_ context.Context) (decimal.Decimal, error) {
	total := decimal.Zero
	err := r.v.read(func(st *state) error {
		for _, p := range st.products.all() {
			total = total.Add(p.StockValue())
		}
		return nil
	})
	return total, err
}

func (r *StatsRepo) ProductCatalog(_ context.Context) (map[string]*entity.Product, error) {
	out := map[string]*entity.Product{}
	err := r.v.read(func(st *state) error {
		for _, p := range st.products.all() {
			out[p.ID] = &p
		}
		return nil
	})
	return out, err
}

func (r *StatsRepo) FactureDocuments(_ context.Context, from, to time.Time) ([]entity.RawDocument, error) {
	var out []entity.RawDocument
	err := r.v.read(func(st *state) error {
		for _, f := range st.factures.all() {
			if f.CreatedAt.Before(from) || !f.CreatedAt.Before(to) {
				continue
			}
			lines, err := json.Marshal(f.Lines)
			if err != nil {
				return fmt.Errorf("encode facture lines: %w", err)
			}
			out = append(out, entity.RawDocument{
				ID:        f.ID,
				Kind:      string(f.Type),
				Partner:   counterpartyName(st, &f),
				Paid:      f.Paid,
				Remaining: f.Remaining,
				CreatedAt: f.CreatedAt,
				Lines:     lines,
			})
		}
		return nil
	})
	return out, err
}

func (r *StatsRepo) ClientDocuments(_ context.Context) ([]entity.RawDocument, error) {
	var out []entity.RawDocument
	err := r.v.read(func(st *state) error {
		for _, c := range st.clients.all() {
			lines, err := json.Marshal(c.Purchases)
			if err != nil {
				return fmt.Errorf("encode client purchases: %w", err)
			}
			out = append(out, entity.RawDocument{
				ID: c.ID, Kind: "client", Partner: c.Name, CreatedAt: c.CreatedAt, Lines: lines,
			})
		}
		return nil
	})
	return out, err
}

func (r *StatsRepo) FournisseurDocuments(_ context.Context) ([]entity.RawDocument, error) {
	var out []entity.RawDocument
	err := r.v.read(func(st *state) error {
		for _, f := range st.fournisseurs.all() {
			lines, err := json.Marshal(f.Deliveries)
			if err != nil {
				return fmt.Errorf("encode fournisseur deliveries: %w", err)
			}
			out = append(out, entity.RawDocument{
				ID: f.ID, Kind: "fournisseur", Partner: f.Name, CreatedAt: f.CreatedAt, Lines: lines,
			})
		}
		return nil
	})
	return out, err
}

func counterpartyName(st *state, f *entity.Facture) string {
	if f.Type == entity.FactureFournisseur {
		if s, ok := st.fournisseurs.get(f.FournisseurID); ok {
			return s.Name
		}
		return ""
	}
	if c, ok := st.clients.get(f.ClientID); ok {
		return c.Name
	}
	return ""
}
