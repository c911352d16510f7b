package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/gestion-api/internal/application/dto"
	"github.com/jhoicas/gestion-api/internal/application/usecase"
)

// FactureHandler facturas independientes del stock.
type FactureHandler struct {
	uc *usecase.FactureUseCase
}

func NewFactureHandler(uc *usecase.FactureUseCase) *FactureHandler {
	return &FactureHandler{uc: uc}
}

// Create godoc
// @Summary      Crear factura (no mueve stock)
// @Tags         factures
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateFactureRequest  true  "type, client|fournisseur, produits, montantPaye"
// @Success      201   {object}  dto.FactureResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/facture [post]
func (h *FactureHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateFactureRequest
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
// @Summary      Listar facturas
// @Tags         factures
// @Security     Bearer
// @Produce      json
// @Param        type          query  string  false  "client | fournisseur"
// @Param        counterparty  query  string  false  "ID del cliente o proveedor"
// @Success      200  {object}  dto.ListResponse[dto.FactureResponse]
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/facture [get]
func (h *FactureHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), c.Query("type"), c.Query("counterparty"))
	if err != nil {
		return err
	}
	return c.JSON(dto.NewListResponse(out))
}

// Get godoc
// @Summary      Obtener factura
// @Tags         factures
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la factura"
// @Success      200  {object}  dto.FactureResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/facture/{id} [get]
func (h *FactureHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// AddPayment godoc
// @Summary      Pago adicional sobre una factura
// @Tags         factures
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string              true  "ID de la factura"
// @Param        body  body  dto.PaymentRequest  true  "additionalPayment"
// @Success      200   {object}  dto.FactureResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/facture/{id}/payment [put]
func (h *FactureHandler) AddPayment(c *fiber.Ctx) error {
	var in dto.PaymentRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.AddPayment(c.UserContext(), c.Params("id"), in.AdditionalPayment)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// BonLivraisonHandler bons de livraison: descuentan stock al crearse.
type BonLivraisonHandler struct {
	uc *usecase.BonLivraisonUseCase
}

func NewBonLivraisonHandler(uc *usecase.BonLivraisonUseCase) *BonLivraisonHandler {
	return &BonLivraisonHandler{uc: uc}
}

// Create godoc
// @Summary      Crear bon de livraison
// @Tags         bonlivraison
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateBonLivraisonRequest  true  "clientId, produits"
// @Success      201   {object}  dto.BonLivraisonResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/bonlivraison [post]
func (h *BonLivraisonHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateBonLivraisonRequest
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
// @Summary      Listar bons de livraison
// @Tags         bonlivraison
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ListResponse[dto.BonLivraisonResponse]
// @Router       /api/bonlivraison [get]
func (h *BonLivraisonHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(dto.NewListResponse(out))
}

// Get godoc
// @Summary      Obtener bon de livraison
// @Tags         bonlivraison
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del bon"
// @Success      200  {object}  dto.BonLivraisonResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/bonlivraison/{id} [get]
func (h *BonLivraisonHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(out)
}
