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

var _ repository.BordereauRepository = (*BordereauRepo)(nil)

const bordereauColumns = `id, type, company, partner, delivery, items, totals, notes,
	COALESCE(created_by, ''), created_at, updated_at`

// bordereauSearch filtro de texto sobre partenaire, empresa y número de entrega.
const bordereauSearch = `($1 = '' OR partner->>'name' ILIKE $1 OR company->>'name' ILIKE $1 OR delivery->>'numero' ILIKE $1)`

// BordereauRepo bordereaux; los bloques anidados se guardan como JSONB.
type BordereauRepo struct {
	q Querier
}

func NewBordereauRepository(q Querier) *BordereauRepo {
	return &BordereauRepo{q: q}
}

type bordereauJSON struct {
	company, partner, delivery, items, totals []byte
}

func encodeBordereau(b *entity.Bordereau) (*bordereauJSON, error) {
	var out bordereauJSON
	var err error
	if out.company, err = encodeJSON(b.Company); err != nil {
		return nil, err
	}
	if out.partner, err = encodeJSON(b.Partner); err != nil {
		return nil, err
	}
	if out.delivery, err = encodeJSON(b.Delivery); err != nil {
		return nil, err
	}
	if out.items, err = encodeList(b.Items); err != nil {
		return nil, err
	}
	if out.totals, err = encodeJSON(b.Totals); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *BordereauRepo) Create(ctx context.Context, b *entity.Bordereau) error {
	j, err := encodeBordereau(b)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO bordereaux (id, type, company, partner, delivery, items, totals, notes, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	if _, err := r.q.Exec(ctx, query,
		b.ID, string(b.Type), j.company, j.partner, j.delivery, j.items, j.totals, b.Notes,
		nullIfEmpty(b.CreatedBy), b.CreatedAt, b.UpdatedAt,
	); err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert bordereau: %w", err)
	}
	return nil
}

func (r *BordereauRepo) GetByID(ctx context.Context, id string) (*entity.Bordereau, error) {
	b, err := scanBordereau(r.q.QueryRow(ctx, `SELECT `+bordereauColumns+` FROM bordereaux WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get bordereau: %w", err)
	}
	return b, nil
}

// Update reemplaza el documento completo.
func (r *BordereauRepo) Update(ctx context.Context, b *entity.Bordereau) error {
	j, err := encodeBordereau(b)
	if err != nil {
		return err
	}
	tag, err := r.q.Exec(ctx, `
		UPDATE bordereaux SET type = $2, company = $3, partner = $4, delivery = $5, items = $6,
			totals = $7, notes = $8, updated_at = $9
		WHERE id = $1`,
		b.ID, string(b.Type), j.company, j.partner, j.delivery, j.items, j.totals, b.Notes, b.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update bordereau: %w", err)
	}
	return affected(tag, domain.ErrNotFound)
}

func (r *BordereauRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM bordereaux WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete bordereau: %w", err)
	}
	return affected(tag, domain.ErrNotFound)
}

// List página de bordereaux más recientes primero y total de coincidencias.
func (r *BordereauRepo) List(ctx context.Context, filter repository.BordereauFilter) ([]*entity.Bordereau, int, error) {
	pattern := ""
	if q := strings.TrimSpace(filter.Query); q != "" {
		pattern = "%" + escapeLike(q) + "%"
	}

	var total int
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM bordereaux WHERE `+bordereauSearch, pattern).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count bordereaux: %w", err)
	}

	query := `SELECT ` + bordereauColumns + ` FROM bordereaux WHERE ` + bordereauSearch +
		` ORDER BY created_at DESC OFFSET $2`
	args := []any{pattern, max(filter.Offset, 0)}
	if filter.Limit > 0 {
		query += ` LIMIT $3`
		args = append(args, filter.Limit)
	}
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list bordereaux: %w", err)
	}
	defer rows.Close()
	var list []*entity.Bordereau
	for rows.Next() {
		b, err := scanBordereau(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan bordereau: %w", err)
		}
		list = append(list, b)
	}
	return list, total, rows.Err()
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

func scanBordereau(row pgx.Row) (*entity.Bordereau, error) {
	var b entity.Bordereau
	var typ string
	var j bordereauJSON
	if err := row.Scan(
		&b.ID, &typ, &j.company, &j.partner, &j.delivery, &j.items, &j.totals, &b.Notes,
		&b.CreatedBy, &b.CreatedAt, &b.UpdatedAt,
	); err != nil {
		return nil, err
	}
	b.Type = entity.BordereauType(typ)
	for _, part := range []struct {
		raw []byte
		dst any
	}{
		{j.company, &b.Company},
		{j.partner, &b.Partner},
		{j.delivery, &b.Delivery},
		{j.items, &b.Items},
		{j.totals, &b.Totals},
	} {
		if err := decodeJSON(part.raw, part.dst); err != nil {
			return nil, err
		}
	}
	return &b, nil
}
