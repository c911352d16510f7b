package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/gestion-api/internal/application/billing"
	"github.com/jhoicas/gestion-api/internal/application/dto"
	"github.com/jhoicas/gestion-api/internal/application/partner"
	"github.com/jhoicas/gestion-api/internal/domain"
	"github.com/jhoicas/gestion-api/internal/domain/entity"
)

// PartnerHandler libro de partenaires: transacciones, pagos, transferencias y balances.
type PartnerHandler struct {
	uc *partner.UseCase
}

func NewPartnerHandler(uc *partner.UseCase) *PartnerHandler {
	return &PartnerHandler{uc: uc}
}

// Create godoc
// @Summary      Crear partenaire
// @Tags         partners
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreatePartnerRequest  true  "name, identifier, contact"
// @Success      201   {object}  dto.PartnerResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/partner [post]
func (h *PartnerHandler) Create(c *fiber.Ctx) error {
	var in dto.CreatePartnerRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar partenaires
// @Tags         partners
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ListResponse[dto.PartnerResponse]
// @Router       /api/partner [get]
func (h *PartnerHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(dto.NewListResponse(out))
}

// Get godoc
// @Summary      Obtener partenaire
// @Tags         partners
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del partenaire"
// @Success      200  {object}  dto.PartnerResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/partner/{id} [get]
func (h *PartnerHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar partenaire
// @Tags         partners
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                    true  "ID del partenaire"
// @Param        body  body  dto.UpdatePartnerRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.PartnerResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/partner/{id} [put]
func (h *PartnerHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdatePartnerRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar partenaire
// @Tags         partners
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del partenaire"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/partner/{id} [delete]
func (h *PartnerHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(dto.MessageResponse{Message: "Partenaire supprimé"})
}

// AddTransaction godoc
// @Summary      Registrar transacción buy o supply
// @Description  buy descuenta stock; supply lo suma y puede crear el producto con productData.
// @Tags         partners
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                     true  "ID del partenaire"
// @Param        body  body  dto.AddTransactionRequest  true  "Transacción"
// @Success      200   {object}  dto.PartnerMutationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/partner/{id}/transaction [post]
func (h *PartnerHandler) AddTransaction(c *fiber.Ctx) error {
	var in dto.AddTransactionRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.AddTransaction(c.UserContext(), GetUserID(c), c.Params("id"), in)
	if err != nil {
		return err
	}
	return c.JSON(dto.PartnerMutationResponse{Message: "Transaction enregistrée", Partner: *out})
}

// UpdatePayment godoc
// @Summary      Pago adicional sobre una transacción
// @Tags         partners
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        partnerId      path  string              true  "ID del partenaire"
// @Param        transactionId  path  string              true  "ID de la transacción"
// @Param        body           body  dto.PaymentRequest  true  "additionalPayment"
// @Success      200            {object}  dto.TransactionPaymentResponse
// @Failure      400            {object}  dto.ErrorResponse
// @Failure      404            {object}  dto.ErrorResponse
// @Router       /api/partner/{partnerId}/transaction/{transactionId}/payment [put]
func (h *PartnerHandler) UpdatePayment(c *fiber.Ctx) error {
	var in dto.PaymentRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	tx, err := h.uc.UpdatePayment(c.UserContext(), c.Params("partnerId"), c.Params("transactionId"), in.AdditionalPayment)
	if err != nil {
		return err
	}
	return c.JSON(dto.TransactionPaymentResponse{Message: "Paiement mis à jour", Transaction: *tx})
}

// Transfer godoc
// @Summary      Transferir producto entre dos partenaires
// @Tags         partners
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        fromId  path  string               true  "Partenaire origen (buy)"
// @Param        toId    path  string               true  "Partenaire destino (supply)"
// @Param        body    body  dto.TransferRequest  true  "productId, quantite, prixFrom, prixTo"
// @Success      200     {object}  dto.TransferResponse
// @Failure      400     {object}  dto.ErrorResponse
// @Failure      404     {object}  dto.ErrorResponse
// @Router       /api/partner/transfer/{fromId}/{toId} [post]
func (h *PartnerHandler) Transfer(c *fiber.Ctx) error {
	var in dto.TransferRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.Transfer(c.UserContext(), c.Params("fromId"), c.Params("toId"), in)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Settle godoc
// @Summary      Neto entre dos listas de ítems (no escribe)
// @Tags         partners
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        aId   path  string             true  "Partenaire A"
// @Param        bId   path  string             true  "Partenaire B"
// @Param        body  body  dto.SettleRequest  true  "partnerAItems, partnerBItems"
// @Success      200   {object}  dto.SettleResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/partner/settle/{aId}/{bId} [post]
func (h *PartnerHandler) Settle(c *fiber.Ctx) error {
	var in dto.SettleRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.Settle(c.UserContext(), c.Params("aId"), c.Params("bId"), in)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Summary godoc
// @Summary      Balance supply/buy de un partenaire
// @Tags         partners
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del partenaire"
// @Success      200  {object}  dto.PartnerSummaryResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/partner/{id}/summary [get]
func (h *PartnerHandler) Summary(c *fiber.Ctx) error {
	out, err := h.uc.Summary(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// DistributePayment godoc
// @Summary      Repartir un pago global sobre las transacciones pendientes
// @Tags         partners
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                        true  "ID del partenaire"
// @Param        body  body  dto.DistributePaymentRequest  true  "amount"
// @Success      200   {object}  dto.DistributePaymentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/partner/{id}/distribute-payment [post]
func (h *PartnerHandler) DistributePayment(c *fiber.Ctx) error {
	var in dto.DistributePaymentRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.DistributePayment(c.UserContext(), c.Params("id"), in.Amount)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Invoice godoc
// @Summary      Factura de las transacciones de un partenaire
// @Tags         partners
// @Security     Bearer
// @Produce      json,application/pdf,application/xml
// @Param        id      path   string  true   "ID del partenaire"
// @Param        type    query  string  false  "buy | supply"  default(supply)
// @Param        format  query  string  false  "json | pdf | xml"  default(json)
// @Param        from    query  string  false  "YYYY-MM-DD"
// @Param        to      query  string  false  "YYYY-MM-DD (inclusive)"
// @Success      200     {object}  dto.InvoiceResponse
// @Failure      400     {object}  dto.ErrorResponse
// @Failure      404     {object}  dto.ErrorResponse
// @Router       /api/partner/{id}/invoice [get]
func (h *PartnerHandler) Invoice(c *fiber.Ctx) error {
	txType := entity.TransactionType(c.Query("type", string(entity.TransactionSupply)))
	if txType != entity.TransactionBuy && txType != entity.TransactionSupply {
		return domain.ErrInvalidType
	}
	period, err := parsePeriod(c)
	if err != nil {
		return err
	}
	inv, doc, err := h.uc.Invoice(c.UserContext(), c.Params("id"), txType, billing.ParseFormat(c.Query("format")), period)
	if err != nil {
		return err
	}
	return sendInvoice(c, inv, doc)
}
