package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/gestion-api/internal/domain/entity"
)

// StatsRepository consultas de solo lectura para el tablero de estadísticas.
// Los documentos se devuelven con sus líneas crudas para que los adaptadores
// normalicen las formas históricas.
type StatsRepository interface {
	CountProducts(ctx context.Context) (int64, error)
	CountClients(ctx context.Context) (int64, error)
	CountFournisseurs(ctx context.Context) (int64, error)
	// CountFactures cuenta facturas; factureType vacío cuenta todas.
	CountFactures(ctx context.Context, factureType string) (int64, error)
	// StockValue Σ prixAchat × quantite de todos los productos.
	StockValue(ctx context.Context) (decimal.Decimal, error)
	// ProductCatalog productos por ID, para resolver nombres y costos referenciados.
	ProductCatalog(ctx context.Context) (map[string]*entity.Product, error)
	// FactureDocuments facturas creadas en [from, to).
	FactureDocuments(ctx context.Context, from, to time.Time) ([]entity.RawDocument, error)
	// ClientDocuments un documento por cliente con sus produitsAchetes crudos.
	ClientDocuments(ctx context.Context) ([]entity.RawDocument, error)
	// FournisseurDocuments un documento por proveedor con sus produitsFournis crudos.
	FournisseurDocuments(ctx context.Context) ([]entity.RawDocument, error)
}
