package usecase_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/gestion-api/internal/application/billing"
	"github.com/jhoicas/gestion-api/internal/application/dto"
	"github.com/jhoicas/gestion-api/internal/application/inventory"
	"github.com/jhoicas/gestion-api/internal/application/usecase"
	"github.com/jhoicas/gestion-api/internal/domain"
	"github.com/jhoicas/gestion-api/internal/domain/entity"
	"github.com/jhoicas/gestion-api/internal/infrastructure/memory"
)

func dec(v int64) decimal.Decimal { return decimal.NewFromInt(v) }
func decPtr(v int64) *decimal.Decimal {
	d := dec(v)
	return &d
}

func seedProduct(t *testing.T, store *memory.Store, id string, qty, achat, vente int64) {
	t.Helper()
	p := &entity.Product{
		ID:            id,
		Name:          "Produit " + id,
		Quantity:      qty,
		PurchasePrice: dec(achat),
		CreatedAt:     time.Now(),
	}
	if vente > 0 {
		p.SalePrice = decimal.NewNullDecimal(dec(vente))
	}
	require.NoError(t, store.Repos().Products.Create(context.Background(), p))
}

func quantityOf(t *testing.T, store *memory.Store, id string) int64 {
	t.Helper()
	p, err := store.Repos().Products.GetByID(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, p)
	return p.Quantity
}

// ──────────────────────────────────────────────────────────────────────────────
// Productos
// ──────────────────────────────────────────────────────────────────────────────

func TestProduct_CrearActualizarEliminar(t *testing.T) {
	store := memory.NewStore()
	uc := usecase.NewProductUseCase(store.Repos().Products)
	ctx := context.Background()

	p, err := uc.Create(ctx, "admin-1", dto.CreateProductRequest{Nom: "  Ciment ", Quantite: 5, PrixAchat: dec(10)})
	require.NoError(t, err)
	assert.Equal(t, "Ciment", p.Nom)
	assert.Equal(t, "admin-1", p.CreatedBy)
	assert.Nil(t, p.PrixVente)

	up, err := uc.Update(ctx, p.ID, dto.UpdateProductRequest{PrixVente: decPtr(14)})
	require.NoError(t, err)
	require.NotNil(t, up.PrixVente)
	assert.Equal(t, "14", up.PrixVente.String())
	assert.Equal(t, int64(5), up.Quantite)

	_, err = uc.Create(ctx, "admin-1", dto.CreateProductRequest{Nom: " "})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	require.NoError(t, uc.Delete(ctx, p.ID))
	_, err = uc.GetByID(ctx, p.ID)
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
	assert.ErrorIs(t, uc.Delete(ctx, p.ID), domain.ErrProductNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Clientes
// ──────────────────────────────────────────────────────────────────────────────

func newClientUseCase(store *memory.Store) *usecase.ClientUseCase {
	repos := store.Repos()
	return usecase.NewClientUseCase(repos, store, inventory.NewStockService(), billing.NewBuilder(repos.Products))
}

func TestClient_EmailDuplicadoEsConflicto(t *testing.T) {
	store := memory.NewStore()
	uc := newClientUseCase(store)
	ctx := context.Background()

	_, err := uc.Create(ctx, dto.CreateClientRequest{Name: "Amal", Email: "amal@example.com"})
	require.NoError(t, err)

	_, err = uc.Create(ctx, dto.CreateClientRequest{Name: "Otro", Email: "AMAL@example.com"})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestClient_CompraDescuentaStockYDerivaMarge(t *testing.T) {
	store := memory.NewStore()
	seedProduct(t, store, "p1", 10, 6, 10)
	uc := newClientUseCase(store)
	ctx := context.Background()
	c, err := uc.Create(ctx, dto.CreateClientRequest{Name: "Amal", Email: "amal@example.com"})
	require.NoError(t, err)

	out, err := uc.AddPurchase(ctx, c.ID, dto.AddPurchaseRequest{ProductID: "p1", Quantite: 3, PrixVente: decPtr(10), MontantPaye: dec(5)})

	require.NoError(t, err)
	require.Len(t, out.ProduitsAchetes, 1)
	line := out.ProduitsAchetes[0]
	assert.Equal(t, "30", line.Total.String())
	assert.Equal(t, "4", line.Margin.Decimal.String())
	assert.Equal(t, "25", line.Remaining.String())
	assert.Equal(t, int64(7), quantityOf(t, store, "p1"))

	paid, err := uc.UpdatePayment(ctx, c.ID, line.ID, dec(25))
	require.NoError(t, err)
	assert.True(t, paid.Remaining.IsZero())

	// Clientes antiguos direccionan la línea por ID de producto.
	paid, err = uc.UpdatePayment(ctx, c.ID, "p1", dec(1))
	require.NoError(t, err)
	assert.Equal(t, "-1", paid.Remaining.String())
}

// Sin prixVente en la petición se factura al costo aunque el producto tenga precio de venta.
func TestClient_CompraSinPrixVenteUsaCosto(t *testing.T) {
	store := memory.NewStore()
	seedProduct(t, store, "p1", 10, 6, 10)
	uc := newClientUseCase(store)
	ctx := context.Background()
	c, err := uc.Create(ctx, dto.CreateClientRequest{Name: "Amal", Email: "amal@example.com"})
	require.NoError(t, err)

	out, err := uc.AddPurchase(ctx, c.ID, dto.AddPurchaseRequest{ProductID: "p1", Quantite: 3, MontantPaye: dec(5)})

	require.NoError(t, err)
	require.Len(t, out.ProduitsAchetes, 1)
	line := out.ProduitsAchetes[0]
	assert.False(t, line.SalePrice.Valid)
	assert.False(t, line.Margin.Valid)
	assert.Equal(t, "18", line.Total.String())
	assert.Equal(t, "13", line.Remaining.String())
}

func TestClient_CompraSinStockNoEscribe(t *testing.T) {
	store := memory.NewStore()
	seedProduct(t, store, "p1", 2, 6, 10)
	uc := newClientUseCase(store)
	ctx := context.Background()
	c, err := uc.Create(ctx, dto.CreateClientRequest{Name: "Amal", Email: "amal@example.com"})
	require.NoError(t, err)

	_, err = uc.AddPurchase(ctx, c.ID, dto.AddPurchaseRequest{ProductID: "p1", Quantite: 3})

	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	got, err := uc.Get(ctx, c.ID)
	require.NoError(t, err)
	assert.Empty(t, got.ProduitsAchetes)
	assert.Equal(t, int64(2), quantityOf(t, store, "p1"))

	_, err = uc.AddPurchase(ctx, "ghost", dto.AddPurchaseRequest{ProductID: "p1", Quantite: 1})
	assert.ErrorIs(t, err, domain.ErrClientNotFound)
	_, err = uc.UpdatePayment(ctx, c.ID, "ghost", dec(1))
	assert.ErrorIs(t, err, domain.ErrLineNotFound)
}

func TestClient_Factura(t *testing.T) {
	store := memory.NewStore()
	seedProduct(t, store, "p1", 10, 6, 10)
	uc := newClientUseCase(store)
	ctx := context.Background()
	c, err := uc.Create(ctx, dto.CreateClientRequest{Name: "Amal", Email: "amal@example.com"})
	require.NoError(t, err)
	_, err = uc.AddPurchase(ctx, c.ID, dto.AddPurchaseRequest{ProductID: "p1", Quantite: 2, PrixVente: decPtr(10), MontantPaye: dec(20)})
	require.NoError(t, err)

	inv, doc, err := uc.Invoice(ctx, c.ID, billing.FormatPDF, billing.Period{})

	require.NoError(t, err)
	assert.Nil(t, doc, "sin renderer PDF registrado se responde JSON")
	assert.True(t, strings.HasSuffix(inv.Number, "-CLIENT"))
	assert.Equal(t, "20", inv.Totals.Total.String())
	assert.True(t, inv.Totals.Remaining.IsZero())
}

// ──────────────────────────────────────────────────────────────────────────────
// Proveedores
// ──────────────────────────────────────────────────────────────────────────────

func TestFournisseur_EntregaSumaStockYPago(t *testing.T) {
	store := memory.NewStore()
	seedProduct(t, store, "p1", 1, 6, 0)
	uc := usecase.NewFournisseurUseCase(store.Repos(), store, inventory.NewStockService())
	ctx := context.Background()
	f, err := uc.Create(ctx, dto.CreateFournisseurRequest{Name: "Sahel", Contact: 612345678})
	require.NoError(t, err)

	out, err := uc.AddDelivery(ctx, f.ID, dto.AddDeliveryRequest{ProductID: "p1", Quantite: 4, MontantPaye: dec(10)})

	require.NoError(t, err)
	require.Len(t, out.ProduitsFournis, 1)
	line := out.ProduitsFournis[0]
	assert.Equal(t, "24", line.Total.String(), "prixAchat por defecto del producto")
	assert.Equal(t, entity.StatusPending, line.Status)
	assert.Equal(t, int64(5), quantityOf(t, store, "p1"))

	paid, err := uc.UpdatePayment(ctx, f.ID, line.ID, dec(14))
	require.NoError(t, err)
	assert.Equal(t, entity.StatusPaid, paid.Status)

	_, err = uc.UpdatePayment(ctx, f.ID, line.ID, dec(-1))
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)
	_, err = uc.AddDelivery(ctx, f.ID, dto.AddDeliveryRequest{ProductID: "ghost", Quantite: 1})
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Facturas
// ──────────────────────────────────────────────────────────────────────────────

func TestFacture_CrearNoMueveStock(t *testing.T) {
	store := memory.NewStore()
	seedProduct(t, store, "p1", 10, 6, 10)
	cuc := newClientUseCase(store)
	ctx := context.Background()
	c, err := cuc.Create(ctx, dto.CreateClientRequest{Name: "Amal", Email: "amal@example.com"})
	require.NoError(t, err)
	uc := usecase.NewFactureUseCase(store.Repos(), store)

	f, err := uc.Create(ctx, dto.CreateFactureRequest{
		Type:        "client",
		ClientID:    c.ID,
		Produits:    []dto.FactureLineRequest{{ProductID: "p1", Quantite: 2}, {ProductID: "p1", Quantite: 1, PrixUnitaire: decPtr(7)}},
		MontantPaye: dec(20),
	})

	require.NoError(t, err)
	assert.Equal(t, "27", f.MontantTotal.String())
	assert.Equal(t, "7", f.ResteAPayer.String())
	assert.Equal(t, entity.StatusPending, f.Status)
	assert.Equal(t, int64(10), quantityOf(t, store, "p1"))

	f, err = uc.AddPayment(ctx, f.ID, dec(7))
	require.NoError(t, err)
	assert.Equal(t, entity.StatusPaid, f.Status)

	list, err := uc.List(ctx, "client", c.ID)
	require.NoError(t, err)
	assert.Len(t, list, 1)
	list, err = uc.List(ctx, "fournisseur", "")
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestFacture_Validaciones(t *testing.T) {
	store := memory.NewStore()
	uc := usecase.NewFactureUseCase(store.Repos(), store)
	ctx := context.Background()

	_, err := uc.Create(ctx, dto.CreateFactureRequest{Type: "gift", Produits: []dto.FactureLineRequest{{ProductID: "p", Quantite: 1}}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create(ctx, dto.CreateFactureRequest{Type: "fournisseur", FournisseurID: "ghost", Produits: []dto.FactureLineRequest{{ProductID: "p", Quantite: 1}}})
	assert.ErrorIs(t, err, domain.ErrFournisseurNotFound)

	_, err = uc.Get(ctx, "ghost")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Bons de livraison
// ──────────────────────────────────────────────────────────────────────────────

func TestBonLivraison_DescuentaTodasLasLineas(t *testing.T) {
	store := memory.NewStore()
	seedProduct(t, store, "p1", 10, 6, 10)
	seedProduct(t, store, "p2", 5, 3, 0)
	cuc := newClientUseCase(store)
	ctx := context.Background()
	c, err := cuc.Create(ctx, dto.CreateClientRequest{Name: "Amal", Email: "amal@example.com", Address: "12 rue Atlas", Phone: "0600"})
	require.NoError(t, err)
	uc := usecase.NewBonLivraisonUseCase(store.Repos(), store, inventory.NewStockService())

	bl, err := uc.Create(ctx, dto.CreateBonLivraisonRequest{
		ClientID: c.ID,
		Produits: []dto.BonLivraisonLineRequest{{ProductID: "p1", Quantite: 2}, {ProductID: "p2", Quantite: 5}},
	})

	require.NoError(t, err)
	assert.Regexp(t, `^BL-\d{4}-\d{4}$`, bl.NumeroBL)
	assert.Equal(t, "12 rue Atlas", bl.AdresseLivraison)
	assert.Equal(t, "0600", bl.TelephoneClient)
	assert.Equal(t, "Produit p1", bl.Produits[0].Designation)
	assert.Equal(t, "35", bl.MontantTotal.String())
	assert.Equal(t, int64(8), quantityOf(t, store, "p1"))
	assert.Equal(t, int64(0), quantityOf(t, store, "p2"))
}

func TestBonLivraison_LineaInvalidaRevierteTodo(t *testing.T) {
	store := memory.NewStore()
	seedProduct(t, store, "p1", 10, 6, 10)
	cuc := newClientUseCase(store)
	ctx := context.Background()
	c, err := cuc.Create(ctx, dto.CreateClientRequest{Name: "Amal", Email: "amal@example.com"})
	require.NoError(t, err)
	uc := usecase.NewBonLivraisonUseCase(store.Repos(), store, inventory.NewStockService())

	_, err = uc.Create(ctx, dto.CreateBonLivraisonRequest{
		ClientID: c.ID,
		Produits: []dto.BonLivraisonLineRequest{{ProductID: "p1", Quantite: 2}, {ProductID: "ghost", Quantite: 1}},
	})

	assert.ErrorIs(t, err, domain.ErrProductNotFound)
	assert.Equal(t, int64(10), quantityOf(t, store, "p1"))
	list, err := uc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

// ──────────────────────────────────────────────────────────────────────────────
// Bordereaux
// ──────────────────────────────────────────────────────────────────────────────

func TestBordereau_RecalculaTotalesYPagina(t *testing.T) {
	store := memory.NewStore()
	uc := usecase.NewBordereauUseCase(store.Repos().Bordereaux)
	ctx := context.Background()

	b, err := uc.Create(ctx, "admin-1", dto.BordereauRequest{
		Partner: entity.BordereauParty{Name: "Atlas Négoce"},
		Items: []entity.BordereauItem{
			{Designation: "Ciment", Quantity: 4, UnitPrice: dec(5)},
			{Designation: "Transport", Amount: dec(30)},
		},
		Totals: dto.BordereauTotalsRequest{Paye: dec(60)},
	})
	require.NoError(t, err)
	assert.Equal(t, entity.BordereauGeneric, b.Type)
	assert.Equal(t, "50", b.Totals.TotalHT.String())
	assert.True(t, b.Totals.Remaining.IsZero())

	for i := 0; i < 3; i++ {
		_, err := uc.Create(ctx, "admin-1", dto.BordereauRequest{Partner: entity.BordereauParty{Name: "Boreal"}})
		require.NoError(t, err)
	}

	page, err := uc.List(ctx, dto.PageRequest{Page: 1, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, 4, page.TotalCount)
	assert.Len(t, page.Data, 2)

	page, err = uc.List(ctx, dto.PageRequest{Query: "atlas"})
	require.NoError(t, err)
	assert.Equal(t, 1, page.TotalCount)
	assert.Equal(t, 20, page.Limit)

	require.NoError(t, uc.Delete(ctx, b.ID))
	assert.ErrorIs(t, uc.Delete(ctx, b.ID), domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Usuarios
// ──────────────────────────────────────────────────────────────────────────────

func TestUser_CrearConRolUserYSinHash(t *testing.T) {
	store := memory.NewStore()
	uc := usecase.NewUserUseCase(store.Repos().Users)
	ctx := context.Background()

	u, err := uc.Create(ctx, dto.CreateUserRequest{Name: "Sara", Email: "sara@example.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleUser, u.Role)

	stored, err := store.Repos().Users.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.NotEqual(t, "secret1", stored.PasswordHash)

	_, err = uc.Create(ctx, dto.CreateUserRequest{Name: "Sara", Email: "sara@example.com", Password: "secret1"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)

	list, err := uc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestUser_AdminNoSeGestionaAqui(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	require.NoError(t, store.Repos().Users.Create(ctx, &entity.User{ID: "a1", Email: "root@example.com", Role: entity.RoleAdmin}))
	uc := usecase.NewUserUseCase(store.Repos().Users)

	_, err := uc.GetByID(ctx, "a1")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
	assert.ErrorIs(t, uc.Delete(ctx, "a1"), domain.ErrUserNotFound)
}
