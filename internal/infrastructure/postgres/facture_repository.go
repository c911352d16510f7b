package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/gestion-api/internal/domain"
	"github.com/jhoicas/gestion-api/internal/domain/entity"
	"github.com/jhoicas/gestion-api/internal/domain/repository"
)

var _ repository.FactureRepository = (*FactureRepo)(nil)

const factureColumns = `id, type, COALESCE(client_id, ''), COALESCE(fournisseur_id, ''), lines,
	total, paid, remaining, status, created_at, updated_at`

// FactureRepo facturas con sus líneas (produits) en JSONB.
type FactureRepo struct {
	q Querier
}

func NewFactureRepository(q Querier) *FactureRepo {
	return &FactureRepo{q: q}
}

func (r *FactureRepo) Create(ctx context.Context, f *entity.Facture) error {
	lines, err := encodeList(f.Lines)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO factures (id, type, client_id, fournisseur_id, lines, total, paid, remaining, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	if _, err := r.q.Exec(ctx, query,
		f.ID, string(f.Type), nullIfEmpty(f.ClientID), nullIfEmpty(f.FournisseurID), lines,
		f.Total, f.Paid, f.Remaining, string(f.Status), f.CreatedAt, f.UpdatedAt,
	); err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert facture: %w", err)
	}
	return nil
}

func (r *FactureRepo) GetByID(ctx context.Context, id string) (*entity.Facture, error) {
	return r.get(ctx, `SELECT `+factureColumns+` FROM factures WHERE id = $1`, id)
}

func (r *FactureRepo) GetForUpdate(ctx context.Context, id string) (*entity.Facture, error) {
	return r.get(ctx, `SELECT `+factureColumns+` FROM factures WHERE id = $1 FOR UPDATE`, id)
}

func (r *FactureRepo) get(ctx context.Context, query, id string) (*entity.Facture, error) {
	f, err := scanFacture(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get facture: %w", err)
	}
	return f, nil
}

// Update persiste líneas, totales y estado.
func (r *FactureRepo) Update(ctx context.Context, f *entity.Facture) error {
	lines, err := encodeList(f.Lines)
	if err != nil {
		return err
	}
	tag, err := r.q.Exec(ctx, `
		UPDATE factures SET lines = $2, total = $3, paid = $4, remaining = $5, status = $6, updated_at = $7
		WHERE id = $1`,
		f.ID, lines, f.Total, f.Paid, f.Remaining, string(f.Status), f.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update facture: %w", err)
	}
	return affected(tag, domain.ErrNotFound)
}

// List aplica los filtros opcionales de tipo y contraparte, más recientes primero.
func (r *FactureRepo) List(ctx context.Context, filter repository.FactureFilter) ([]*entity.Facture, error) {
	var where []string
	var args []any
	if filter.Type != "" {
		args = append(args, string(filter.Type))
		where = append(where, fmt.Sprintf("type = $%d", len(args)))
	}
	if filter.CounterpartyID != "" {
		args = append(args, filter.CounterpartyID)
		where = append(where, fmt.Sprintf("(client_id = $%d OR fournisseur_id = $%d)", len(args), len(args)))
	}
	query := `SELECT ` + factureColumns + ` FROM factures`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list factures: %w", err)
	}
	defer rows.Close()
	var list []*entity.Facture
	for rows.Next() {
		f, err := scanFacture(rows)
		if err != nil {
			return nil, fmt.Errorf("scan facture: %w", err)
		}
		list = append(list, f)
	}
	return list, rows.Err()
}

func scanFacture(row pgx.Row) (*entity.Facture, error) {
	var f entity.Facture
	var typ, status string
	var lines []byte
	if err := row.Scan(
		&f.ID, &typ, &f.ClientID, &f.FournisseurID, &lines,
		&f.Total, &f.Paid, &f.Remaining, &status, &f.CreatedAt, &f.UpdatedAt,
	); err != nil {
		return nil, err
	}
	f.Type = entity.FactureType(typ)
	f.Status = entity.LineStatus(status)
	if err := decodeJSON(lines, &f.Lines); err != nil {
		return nil, err
	}
	return &f, nil
}
