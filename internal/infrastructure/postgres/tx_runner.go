package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/gestion-api/internal/application/ports"
)

var _ ports.TxRunner = (*TxRunner)(nil)

// NewRepos arma el conjunto de repositorios sobre un pool o una tx.
func NewRepos(q Querier) ports.Repos {
	return ports.Repos{
		Products:      NewProductRepository(q),
		Clients:       NewClientRepository(q),
		Fournisseurs:  NewFournisseurRepository(q),
		Partners:      NewPartnerRepository(q),
		Factures:      NewFactureRepository(q),
		BonsLivraison: NewBonLivraisonRepository(q),
		Bordereaux:    NewBordereauRepository(q),
		Users:         NewUserRepository(q),
	}
}

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(repos ports.Repos) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewRepos(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
