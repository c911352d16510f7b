package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/gestion-api/internal/domain"
	"github.com/jhoicas/gestion-api/internal/domain/entity"
	"github.com/jhoicas/gestion-api/internal/domain/repository"
)

var _ repository.FournisseurRepository = (*FournisseurRepo)(nil)

const fournisseurColumns = `id, name, contact, deliveries, created_at, updated_at`

// FournisseurRepo proveedores con sus entregas en JSONB.
type FournisseurRepo struct {
	q Querier
}

func NewFournisseurRepository(q Querier) *FournisseurRepo {
	return &FournisseurRepo{q: q}
}

func (r *FournisseurRepo) Create(ctx context.Context, f *entity.Fournisseur) error {
	deliveries, err := encodeList(f.Deliveries)
	if err != nil {
		return err
	}
	query := `INSERT INTO fournisseurs (` + fournisseurColumns + `) VALUES ($1, $2, $3, $4, $5, $6)`
	if _, err := r.q.Exec(ctx, query, f.ID, f.Name, f.Contact, deliveries, f.CreatedAt, f.UpdatedAt); err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert fournisseur: %w", err)
	}
	return nil
}

func (r *FournisseurRepo) GetByID(ctx context.Context, id string) (*entity.Fournisseur, error) {
	return r.get(ctx, `SELECT `+fournisseurColumns+` FROM fournisseurs WHERE id = $1`, id)
}

func (r *FournisseurRepo) GetForUpdate(ctx context.Context, id string) (*entity.Fournisseur, error) {
	return r.get(ctx, `SELECT `+fournisseurColumns+` FROM fournisseurs WHERE id = $1 FOR UPDATE`, id)
}

func (r *FournisseurRepo) get(ctx context.Context, query, id string) (*entity.Fournisseur, error) {
	f, err := scanFournisseur(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get fournisseur: %w", err)
	}
	return f, nil
}

func (r *FournisseurRepo) Update(ctx context.Context, f *entity.Fournisseur) error {
	deliveries, err := encodeList(f.Deliveries)
	if err != nil {
		return err
	}
	tag, err := r.q.Exec(ctx,
		`UPDATE fournisseurs SET name = $2, contact = $3, deliveries = $4, updated_at = $5 WHERE id = $1`,
		f.ID, f.Name, f.Contact, deliveries, f.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update fournisseur: %w", err)
	}
	return affected(tag, domain.ErrNotFound)
}

func (r *FournisseurRepo) List(ctx context.Context) ([]*entity.Fournisseur, error) {
	rows, err := r.q.Query(ctx, `SELECT `+fournisseurColumns+` FROM fournisseurs ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list fournisseurs: %w", err)
	}
	defer rows.Close()
	var list []*entity.Fournisseur
	for rows.Next() {
		f, err := scanFournisseur(rows)
		if err != nil {
			return nil, fmt.Errorf("scan fournisseur: %w", err)
		}
		list = append(list, f)
	}
	return list, rows.Err()
}

func (r *FournisseurRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM fournisseurs WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete fournisseur: %w", err)
	}
	return affected(tag, domain.ErrNotFound)
}

func scanFournisseur(row pgx.Row) (*entity.Fournisseur, error) {
	var f entity.Fournisseur
	var deliveries []byte
	if err := row.Scan(&f.ID, &f.Name, &f.Contact, &deliveries, &f.CreatedAt, &f.UpdatedAt); err != nil {
		return nil, err
	}
	if err := decodeJSON(deliveries, &f.Deliveries); err != nil {
		return nil, err
	}
	return &f, nil
}
