// Package ports define los puertos de la capa de aplicación que implementa la infraestructura.
package ports

import (
	"context"

	"github.com/jhoicas/gestion-api/internal/domain/repository"
)

// Repos agrupa los repositorios de una unidad de trabajo. Fuera de una transacción
// cada llamada es independiente; dentro de TxRunner.Run todas comparten la misma tx.
type Repos struct {
	Products      repository.ProductRepository
	Clients       repository.ClientRepository
	Fournisseurs  repository.FournisseurRepository
	Partners      repository.PartnerRepository
	Factures      repository.FactureRepository
	BonsLivraison repository.BonLivraisonRepository
	Bordereaux    repository.BordereauRepository
	Users         repository.UserRepository
}

// TxRunner ejecuta una función dentro de una transacción, pasando repositorios atados a esa tx.
// Si fn devuelve error no queda ningún cambio aplicado.
type TxRunner interface {
	Run(ctx context.Context, fn func(repos Repos) error) error
}
