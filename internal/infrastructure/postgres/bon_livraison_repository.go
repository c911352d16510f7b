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

var _ repository.BonLivraisonRepository = (*BonLivraisonRepo)(nil)

const bonLivraisonColumns = `id, number, client_id, lines, total, paid, remaining, status,
	delivery_address, client_phone, created_at, updated_at`

// BonLivraisonRepo notas de entrega. number es único.
type BonLivraisonRepo struct {
	q Querier
}

func NewBonLivraisonRepository(q Querier) *BonLivraisonRepo {
	return &BonLivraisonRepo{q: q}
}

// Create inserta la nota. Un numeroBL repetido no aborta la transacción en curso:
// ON CONFLICT lo descarta y se devuelve domain.ErrDuplicate para reintentar con otro número.
func (r *BonLivraisonRepo) Create(ctx context.Context, b *entity.BonLivraison) error {
	lines, err := encodeList(b.Lines)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO bons_livraison (` + bonLivraisonColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (number) DO NOTHING`
	tag, err := r.q.Exec(ctx, query,
		b.ID, b.Number, b.ClientID, lines, b.Total, b.Paid, b.Remaining, string(b.Status),
		b.DeliveryAddress, b.ClientPhone, b.CreatedAt, b.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert bon de livraison: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrDuplicate
	}
	return nil
}

func (r *BonLivraisonRepo) GetByID(ctx context.Context, id string) (*entity.BonLivraison, error) {
	b, err := scanBonLivraison(r.q.QueryRow(ctx, `SELECT `+bonLivraisonColumns+` FROM bons_livraison WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get bon de livraison: %w", err)
	}
	return b, nil
}

func (r *BonLivraisonRepo) List(ctx context.Context) ([]*entity.BonLivraison, error) {
	rows, err := r.q.Query(ctx, `SELECT `+bonLivraisonColumns+` FROM bons_livraison ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list bons de livraison: %w", err)
	}
	defer rows.Close()
	var list []*entity.BonLivraison
	for rows.Next() {
		b, err := scanBonLivraison(rows)
		if err != nil {
			return nil, fmt.Errorf("scan bon de livraison: %w", err)
		}
		list = append(list, b)
	}
	return list, rows.Err()
}

func scanBonLivraison(row pgx.Row) (*entity.BonLivraison, error) {
	var b entity.BonLivraison
	var status string
	var lines []byte
	if err := row.Scan(
		&b.ID, &b.Number, &b.ClientID, &lines, &b.Total, &b.Paid, &b.Remaining, &status,
		&b.DeliveryAddress, &b.ClientPhone, &b.CreatedAt, &b.UpdatedAt,
	); err != nil {
		return nil, err
	}
	b.Status = entity.LineStatus(status)
	if err := decodeJSON(lines, &b.Lines); err != nil {
		return nil, err
	}
	return &b, nil
}
