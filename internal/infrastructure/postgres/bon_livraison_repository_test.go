package postgres

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/gestion-api/internal/domain"
	"github.com/jhoicas/gestion-api/internal/domain/entity"
)

// execStub devuelve un CommandTag fijo y guarda la última sentencia.
type execStub struct {
	tag     pgconn.CommandTag
	lastSQL string
}

func (s *execStub) Exec(_ context.Context, sql string, _ ...any) (pgconn.CommandTag, error) {
	s.lastSQL = sql
	return s.tag, nil
}

func (s *execStub) Query(context.Context, string, ...any) (pgx.Rows, error) { return nil, nil }
func (s *execStub) QueryRow(context.Context, string, ...any) pgx.Row       { return nil }

func TestBonLivraisonRepo_NumeroRepetidoEsDuplicadoSinAbortar(t *testing.T) {
	q := &execStub{tag: pgconn.NewCommandTag("INSERT 0 0")}
	repo := NewBonLivraisonRepository(q)

	err := repo.Create(context.Background(), &entity.BonLivraison{ID: "bl-1", Number: "BL-2026-1234"})

	assert.ErrorIs(t, err, domain.ErrDuplicate)
	assert.Contains(t, q.lastSQL, "ON CONFLICT (number) DO NOTHING")
}

func TestBonLivraisonRepo_InsercionOK(t *testing.T) {
	q := &execStub{tag: pgconn.NewCommandTag("INSERT 0 1")}
	repo := NewBonLivraisonRepository(q)

	require.NoError(t, repo.Create(context.Background(), &entity.BonLivraison{ID: "bl-1", Number: "BL-2026-1234"}))
}
