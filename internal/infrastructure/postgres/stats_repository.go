package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/gestion-api/internal/domain/entity"
	"github.com/jhoicas/gestion-api/internal/domain/repository"
)

var _ repository.StatsRepository = (*StatsRepo)(nil)

// StatsRepo consultas de solo lectura del tablero. Las líneas JSONB se devuelven crudas.
type StatsRepo struct {
	q Querier
}

// NewStatsRepository construye el repositorio de estadísticas.
func NewStatsRepository(q Querier) *StatsRepo {
	return &StatsRepo{q: q}
}

func (r *StatsRepo) count(ctx context.Context, query string, args ...any) (int64, error) {
	var n int64
	if err := r.q.QueryRow(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count: %w", err)
	}
	return n, nil
}

func (r *StatsRepo) CountProducts(ctx context.Context) (int64, error) {
	return r.count(ctx, `SELECT count(*) FROM products`)
}

func (r *StatsRepo) CountClients(ctx context.Context) (int64, error) {
	return r.count(ctx, `SELECT count(*) FROM clients`)
}

func (r *StatsRepo) CountFournisseurs(ctx context.Context) (int64, error) {
	return r.count(ctx, `SELECT count(*) FROM fournisseurs`)
}

func (r *StatsRepo) CountFactures(ctx context.Context, factureType string) (int64, error) {
	return r.count(ctx, `SELECT count(*) FROM factures WHERE $1 = '' OR type = $1`, factureType)
}

func (r *StatsRepo) StockValue(ctx context.Context) (decimal.Decimal, error) {
	var v decimal.Decimal
	err := r.q.QueryRow(ctx, `SELECT COALESCE(SUM(purchase_price * quantity), 0) FROM products`).Scan(&v)
	if err != nil {
		return decimal.Zero, fmt.Errorf("stock value: %w", err)
	}
	return v, nil
}

func (r *StatsRepo) ProductCatalog(ctx context.Context) (map[string]*entity.Product, error) {
	list, err := NewProductRepository(r.q).List(ctx)
	if err != nil {
		return nil, err
	}
	out := make(map[string]*entity.Product, len(list))
	for _, p := range list {
		out[p.ID] = p
	}
	return out, nil
}

func (r *StatsRepo) FactureDocuments(ctx context.Context, from, to time.Time) ([]entity.RawDocument, error) {
	query := `
		SELECT f.id, f.type, COALESCE(c.name, s.name, ''), f.paid, f.remaining, f.created_at, f.lines
		FROM factures f
		LEFT JOIN clients c ON c.id = f.client_id
		LEFT JOIN fournisseurs s ON s.id = f.fournisseur_id
		WHERE f.created_at >= $1 AND f.created_at < $2
		ORDER BY f.created_at`
	return r.documents(ctx, query, from, to)
}

func (r *StatsRepo) ClientDocuments(ctx context.Context) ([]entity.RawDocument, error) {
	return r.documents(ctx, `
		SELECT id, 'client', name, 0::numeric, 0::numeric, created_at, purchases
		FROM clients ORDER BY created_at`)
}

func (r *StatsRepo) FournisseurDocuments(ctx context.Context) ([]entity.RawDocument, error) {
	return r.documents(ctx, `
		SELECT id, 'fournisseur', name, 0::numeric, 0::numeric, created_at, deliveries
		FROM fournisseurs ORDER BY created_at`)
}

func (r *StatsRepo) documents(ctx context.Context, query string, args ...any) ([]entity.RawDocument, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("stats documents: %w", err)
	}
	defer rows.Close()
	var out []entity.RawDocument
	for rows.Next() {
		var d entity.RawDocument
		var lines []byte
		if err := rows.Scan(&d.ID, &d.Kind, &d.Partner, &d.Paid, &d.Remaining, &d.CreatedAt, &lines); err != nil {
			return nil, fmt.Errorf("scan stats document: %w", err)
		}
		d.Lines = lines
		out = append(out, d)
	}
	return out, rows.Err()
}
