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

var _ repository.PartnerRepository = (*PartnerRepo)(nil)

const partnerColumns = `id, name, identifier, contact, transactions, created_at, updated_at`

// PartnerRepo partenaires; el libro de transacciones vive en una columna JSONB
// y se reescribe completo en cada Update (la fila se bloquea antes con GetForUpdate).
type PartnerRepo struct {
	q Querier
}

func NewPartnerRepository(q Querier) *PartnerRepo {
	return &PartnerRepo{q: q}
}

func (r *PartnerRepo) Create(ctx context.Context, p *entity.Partner) error {
	txs, err := encodeList(p.Transactions)
	if err != nil {
		return err
	}
	query := `INSERT INTO partners (` + partnerColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7)`
	if _, err := r.q.Exec(ctx, query,
		p.ID, p.Name, p.Identifier, p.Contact, txs, p.CreatedAt, p.UpdatedAt,
	); err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert partner: %w", err)
	}
	return nil
}

func (r *PartnerRepo) GetByID(ctx context.Context, id string) (*entity.Partner, error) {
	return r.get(ctx, `SELECT `+partnerColumns+` FROM partners WHERE id = $1`, id)
}

func (r *PartnerRepo) GetForUpdate(ctx context.Context, id string) (*entity.Partner, error) {
	return r.get(ctx, `SELECT `+partnerColumns+` FROM partners WHERE id = $1 FOR UPDATE`, id)
}

func (r *PartnerRepo) get(ctx context.Context, query, id string) (*entity.Partner, error) {
	p, err := scanPartner(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get partner: %w", err)
	}
	return p, nil
}

func (r *PartnerRepo) Update(ctx context.Context, p *entity.Partner) error {
	txs, err := encodeList(p.Transactions)
	if err != nil {
		return err
	}
	tag, err := r.q.Exec(ctx, `
		UPDATE partners SET name = $2, identifier = $3, contact = $4, transactions = $5, updated_at = $6
		WHERE id = $1`,
		p.ID, p.Name, p.Identifier, p.Contact, txs, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update partner: %w", err)
	}
	return affected(tag, domain.ErrNotFound)
}

func (r *PartnerRepo) List(ctx context.Context) ([]*entity.Partner, error) {
	rows, err := r.q.Query(ctx, `SELECT `+partnerColumns+` FROM partners ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list partners: %w", err)
	}
	defer rows.Close()
	var list []*entity.Partner
	for rows.Next() {
		p, err := scanPartner(rows)
		if err != nil {
			return nil, fmt.Errorf("scan partner: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

func (r *PartnerRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM partners WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete partner: %w", err)
	}
	return affected(tag, domain.ErrNotFound)
}

func scanPartner(row pgx.Row) (*entity.Partner, error) {
	var p entity.Partner
	var txs []byte
	if err := row.Scan(&p.ID, &p.Name, &p.Identifier, &p.Contact, &txs, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	if err := decodeJSON(txs, &p.Transactions); err != nil {
		return nil, err
	}
	return &p, nil
}
