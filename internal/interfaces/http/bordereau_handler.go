package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/gestion-api/internal/application/dto"
	"github.com/jhoicas/gestion-api/internal/application/usecase"
)

// BordereauHandler documentos libres (facture / bon de livraison / bordereau).
type BordereauHandler struct {
	uc *usecase.BordereauUseCase
}

func NewBordereauHandler(uc *usecase.BordereauUseCase) *BordereauHandler {
	return &BordereauHandler{uc: uc}
}

// Create godoc
// @Summary      Crear bordereau
// @Tags         bordereaux
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.BordereauRequest  true  "Documento"
// @Success      201   {object}  dto.BordereauEnvelope
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/bordereau [post]
func (h *BordereauHandler) Create(c *fiber.Ctx) error {
	var in dto.BordereauRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(dto.BordereauEnvelope{Message: "Bordereau créé", Bordereau: *out})
}

// List godoc
// @Summary      Listar bordereaux paginados
// @Tags         bordereaux
// @Security     Bearer
// @Produce      json
// @Param        page   query  int     false  "Página (desde 1)"  default(1)
// @Param        limit  query  int     false  "Tamaño de página"  default(20)
// @Param        q      query  string  false  "Búsqueda por partenaire, empresa o ítems"
// @Success      200    {object}  dto.BordereauPageResponse
// @Failure      400    {object}  dto.ErrorResponse
// @Router       /api/bordereau [get]
func (h *BordereauHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return invalidBody(c)
	}
	if err := validate.Struct(page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: validationMessage(err)})
	}
	out, err := h.uc.List(c.UserContext(), page)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Get godoc
// @Summary      Obtener bordereau
// @Tags         bordereaux
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del bordereau"
// @Success      200  {object}  dto.BordereauEnvelope
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/bordereau/{id} [get]
func (h *BordereauHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(dto.BordereauEnvelope{Bordereau: *out})
}

// Update godoc
// @Summary      Reemplazar bordereau
// @Tags         bordereaux
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                true  "ID del bordereau"
// @Param        body  body  dto.BordereauRequest  true  "Documento"
// @Success      200   {object}  dto.BordereauEnvelope
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/bordereau/{id} [put]
func (h *BordereauHandler) Update(c *fiber.Ctx) error {
	var in dto.BordereauRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return err
	}
	return c.JSON(dto.BordereauEnvelope{Message: "Mis à jour", Bordereau: *out})
}

// Delete godoc
// @Summary      Eliminar bordereau
// @Tags         bordereaux
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del bordereau"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/bordereau/{id} [delete]
func (h *BordereauHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(dto.MessageResponse{Message: "Supprimé"})
}
