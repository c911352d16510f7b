package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/gestion-api/internal/application/dto"
	"github.com/jhoicas/gestion-api/internal/application/usecase"
)

// FournisseurHandler proveedores y sus entregas.
type FournisseurHandler struct {
	uc *usecase.FournisseurUseCase
}

func NewFournisseurHandler(uc *usecase.FournisseurUseCase) *FournisseurHandler {
	return &FournisseurHandler{uc: uc}
}

// Create godoc
// @Summary      Crear proveedor
// @Tags         fournisseurs
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateFournisseurRequest  true  "name, contact"
// @Success      201   {object}  dto.FournisseurResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/fournisseur [post]
func (h *FournisseurHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateFournisseurRequest
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
// @Summary      Listar proveedores
// @Tags         fournisseurs
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ListResponse[dto.FournisseurResponse]
// @Router       /api/fournisseur [get]
func (h *FournisseurHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(dto.NewListResponse(out))
}

// Get godoc
// @Summary      Obtener proveedor
// @Tags         fournisseurs
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del proveedor"
// @Success      200  {object}  dto.FournisseurResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/fournisseur/{id} [get]
func (h *FournisseurHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar proveedor
// @Tags         fournisseurs
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                        true  "ID del proveedor"
// @Param        body  body  dto.UpdateFournisseurRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.FournisseurResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/fournisseur/{id} [put]
func (h *FournisseurHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateFournisseurRequest
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
// @Summary      Eliminar proveedor
// @Tags         fournisseurs
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del proveedor"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/fournisseur/{id} [delete]
func (h *FournisseurHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(dto.MessageResponse{Message: "Fournisseur supprimé"})
}

// AddDelivery godoc
// @Summary      Registrar entrega de un proveedor (suma stock)
// @Tags         fournisseurs
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                  true  "ID del proveedor"
// @Param        body  body  dto.AddDeliveryRequest  true  "productId, quantite, prixAchat, montantPaye"
// @Success      200   {object}  dto.FournisseurResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/fournisseur/{id}/produit [post]
func (h *FournisseurHandler) AddDelivery(c *fiber.Ctx) error {
	var in dto.AddDeliveryRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.AddDelivery(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// UpdatePayment godoc
// @Summary      Pago adicional sobre una entrega
// @Tags         fournisseurs
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id      path  string              true  "ID del proveedor"
// @Param        lineId  path  string              true  "ID de la entrega"
// @Param        body    body  dto.PaymentRequest  true  "additionalPayment"
// @Success      200     {object}  dto.DeliveryPaymentResponse
// @Failure      400     {object}  dto.ErrorResponse
// @Failure      404     {object}  dto.ErrorResponse
// @Router       /api/fournisseur/{id}/produit/{lineId}/payment [put]
func (h *FournisseurHandler) UpdatePayment(c *fiber.Ctx) error {
	var in dto.PaymentRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	line, err := h.uc.UpdatePayment(c.UserContext(), c.Params("id"), c.Params("lineId"), in.AdditionalPayment)
	if err != nil {
		return err
	}
	return c.JSON(dto.DeliveryPaymentResponse{Message: "Paiement mis à jour", Delivery: *line})
}
