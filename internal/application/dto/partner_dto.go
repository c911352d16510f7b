package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/gestion-api/internal/domain/entity"
)

// CreatePartnerRequest entrada para crear un partenaire.
type CreatePartnerRequest struct {
	Name       string `json:"name" validate:"required,min=1,max=200"`
	Identifier string `json:"identifier" validate:"max=100"`
	Contact    string `json:"contact" validate:"max=200"`
}

// UpdatePartnerRequest actualización parcial de un partenaire (no toca transacciones).
type UpdatePartnerRequest struct {
	Name       *string `json:"name" validate:"omitempty,min=1,max=200"`
	Identifier *string `json:"identifier" validate:"omitempty,max=100"`
	Contact    *string `json:"contact" validate:"omitempty,max=200"`
}

// ProductDataRequest producto a crear al vuelo en un supply.
type ProductDataRequest struct {
	Nom       string           `json:"nom"`
	Marque    string           `json:"marque"`
	Categorie string           `json:"categorie"`
	PrixAchat decimal.Decimal  `json:"prixAchat"`
	PrixVente *decimal.Decimal `json:"prixVente"`
}

// AddTransactionRequest transacción buy|supply. Para supply basta productId o productData;
// para buy productId es obligatorio.
type AddTransactionRequest struct {
	Type         string              `json:"type"`
	ProductID    string              `json:"productId"`
	ProductData  *ProductDataRequest `json:"productData"`
	Quantite     int64               `json:"quantite"`
	PrixUnitaire *decimal.Decimal    `json:"prixUnitaire"`
	MontantPaye  decimal.Decimal     `json:"montantPaye"`
}

// TransferRequest transferencia de un producto entre dos partenaires.
type TransferRequest struct {
	ProductID string           `json:"productId"`
	Quantite  int64            `json:"quantite"`
	PrixFrom  *decimal.Decimal `json:"prixFrom"`
	PrixTo    *decimal.Decimal `json:"prixTo"`
}

// SettleItemRequest par ad hoc precio/cantidad. Acepta prix o price.
type SettleItemRequest struct {
	Prix     *decimal.Decimal `json:"prix"`
	Price    *decimal.Decimal `json:"price"`
	Quantite decimal.Decimal  `json:"quantite"`
}

// UnitPrice precio del ítem; prix tiene prioridad sobre price.
func (i SettleItemRequest) UnitPrice() decimal.Decimal {
	if i.Prix != nil {
		return *i.Prix
	}
	if i.Price != nil {
		return *i.Price
	}
	return decimal.Zero
}

// SettleRequest ítems de cada lado del cálculo neto.
type SettleRequest struct {
	PartnerAItems []SettleItemRequest `json:"partnerAItems"`
	PartnerBItems []SettleItemRequest `json:"partnerBItems"`
}

// SettleResponse resultado informativo; no modifica ningún libro.
type SettleResponse struct {
	TotalA  decimal.Decimal `json:"totalA"`
	TotalB  decimal.Decimal `json:"totalB"`
	Net     decimal.Decimal `json:"net"`
	Message string          `json:"message"`
}

// DistributePaymentRequest pago global a repartir.
type DistributePaymentRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

// AppliedPayment monto aplicado a una transacción.
type AppliedPayment struct {
	TransactionID string          `json:"transactionId"`
	Amount        decimal.Decimal `json:"amount"`
}

// DistributePaymentResponse resultado del reparto, de la transacción más antigua a la más reciente.
type DistributePaymentResponse struct {
	Partner     PartnerResponse  `json:"partner"`
	Applied     []AppliedPayment `json:"applied"`
	Unallocated decimal.Decimal  `json:"unallocated"`
}

// PartnerResponse salida de un partenaire con su libro.
type PartnerResponse struct {
	ID           string               `json:"id"`
	Name         string               `json:"name"`
	Identifier   string               `json:"identifier"`
	Contact      string               `json:"contact"`
	Transactions []entity.Transaction `json:"transactions"`
	CreatedAt    time.Time            `json:"createdAt"`
	UpdatedAt    time.Time            `json:"updatedAt"`
}

// PartnerMutationResponse partenaire actualizado tras una transacción.
type PartnerMutationResponse struct {
	Message string          `json:"message"`
	Partner PartnerResponse `json:"partner"`
}

// TransactionPaymentResponse transacción tras un pago.
type TransactionPaymentResponse struct {
	Message     string             `json:"message"`
	Transaction entity.Transaction `json:"transaction"`
}

// TransferResponse ambos partenaires tras la transferencia.
type TransferResponse struct {
	Message string          `json:"message"`
	From    PartnerResponse `json:"from"`
	To      PartnerResponse `json:"to"`
}

// AmountsDTO total / pagado / restante.
type AmountsDTO struct {
	Total       decimal.Decimal `json:"total"`
	Paid        decimal.Decimal `json:"paid"`
	ResteAPayer decimal.Decimal `json:"resteAPayer"`
}

// PartnerSummaryResponse balance neto. Net > 0: le debemos al partenaire.
type PartnerSummaryResponse struct {
	PartnerID    string          `json:"partnerId"`
	Name         string          `json:"name"`
	Supply       AmountsDTO      `json:"supply"`
	Buy          AmountsDTO      `json:"buy"`
	Net          decimal.Decimal `json:"net"`
	NetRemaining decimal.Decimal `json:"netRemaining"`
}
