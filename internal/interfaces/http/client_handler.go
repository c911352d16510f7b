package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/gestion-api/internal/application/billing"
	"github.com/jhoicas/gestion-api/internal/application/dto"
	"github.com/jhoicas/gestion-api/internal/application/usecase"
)

// ClientHandler clientes y su historial de compras.
type ClientHandler struct {
	uc *usecase.ClientUseCase
}

func NewClientHandler(uc *usecase.ClientUseCase) *ClientHandler {
	return &ClientHandler{uc: uc}
}

// Create godoc
// @Summary      Crear cliente
// @Tags         clients
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateClientRequest  true  "Datos del cliente"
// @Success      201   {object}  dto.ClientResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/client [post]
func (h *ClientHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateClientRequest
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
// @Summary      Listar clientes
// @Tags         clients
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ListResponse[dto.ClientResponse]
// @Router       /api/client [get]
func (h *ClientHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(dto.NewListResponse(out))
}

// Get godoc
// @Summary      Obtener cliente
// @Tags         clients
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del cliente"
// @Success      200  {object}  dto.ClientResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/client/{id} [get]
func (h *ClientHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar cliente
// @Tags         clients
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del cliente"
// @Param        body  body  dto.UpdateClientRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.ClientResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/client/{id} [put]
func (h *ClientHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateClientRequest
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
// @Summary      Eliminar cliente
// @Tags         clients
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del cliente"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/client/{id} [delete]
func (h *ClientHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(dto.MessageResponse{Message: "Client supprimé"})
}

// AddPurchase godoc
// @Summary      Registrar compra de un cliente (descuenta stock)
// @Tags         clients
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        clientId  path  string                  true  "ID del cliente"
// @Param        body      body  dto.AddPurchaseRequest  true  "productId, quantite, prixVente, montantPaye"
// @Success      200       {object}  dto.ClientResponse
// @Failure      400       {object}  dto.ErrorResponse
// @Failure      404       {object}  dto.ErrorResponse
// @Router       /api/client/{clientId}/purchase [post]
func (h *ClientHandler) AddPurchase(c *fiber.Ctx) error {
	var in dto.AddPurchaseRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.AddPurchase(c.UserContext(), c.Params("clientId"), in)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// UpdatePayment godoc
// @Summary      Pago adicional sobre una compra
// @Tags         clients
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        clientId  path  string              true  "ID del cliente"
// @Param        lineId    path  string              true  "ID de la línea (o del producto en clientes antiguos)"
// @Param        body      body  dto.PaymentRequest  true  "additionalPayment"
// @Success      200       {object}  dto.PurchasePaymentResponse
// @Failure      400       {object}  dto.ErrorResponse
// @Failure      404       {object}  dto.ErrorResponse
// @Router       /api/client/{clientId}/purchase/{lineId}/payment [put]
func (h *ClientHandler) UpdatePayment(c *fiber.Ctx) error {
	var in dto.PaymentRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	line, err := h.uc.UpdatePayment(c.UserContext(), c.Params("clientId"), c.Params("lineId"), in.AdditionalPayment)
	if err != nil {
		return err
	}
	return c.JSON(dto.PurchasePaymentResponse{Message: "Paiement mis à jour", Purchase: *line})
}

// Invoice godoc
// @Summary      Factura de las compras de un cliente
// @Tags         clients
// @Security     Bearer
// @Produce      json,application/pdf,application/xml
// @Param        id      path   string  true   "ID del cliente"
// @Param        format  query  string  false  "json | pdf | xml"  default(json)
// @Param        from    query  string  false  "YYYY-MM-DD"
// @Param        to      query  string  false  "YYYY-MM-DD (inclusive)"
// @Success      200     {object}  dto.InvoiceResponse
// @Failure      404     {object}  dto.ErrorResponse
// @Router       /api/client/{id}/invoice [get]
func (h *ClientHandler) Invoice(c *fiber.Ctx) error {
	period, err := parsePeriod(c)
	if err != nil {
		return err
	}
	inv, doc, err := h.uc.Invoice(c.UserContext(), c.Params("id"), billing.ParseFormat(c.Query("format")), period)
	if err != nil {
		return err
	}
	return sendInvoice(c, inv, doc)
}
