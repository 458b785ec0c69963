package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/catalog-api/internal/application/dto"
	"github.com/jhoicas/catalog-api/internal/application/usecase"
)

// VariantHandler variantes anidadas bajo /api/products/:id/variants.
type VariantHandler struct {
	uc *usecase.VariantUseCase
}

// NewVariantHandler construye el handler.
func NewVariantHandler(uc *usecase.VariantUseCase) *VariantHandler {
	return &VariantHandler{uc: uc}
}

// List godoc
// @Summary      Listar variantes de un producto
// @Tags         variants
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del producto"
// @Success      200  {array}  dto.VariantResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id}/variants [get]
func (h *VariantHandler) List(c *fiber.Ctx) error {
	productID, err := paramID(c, "id")
	if err != nil {
		return badID(c, err)
	}
	out, err := h.uc.ListByProduct(c.UserContext(), productID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Agregar variante
// @Tags         variants
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int  true  "ID del producto"
// @Param        body  body  dto.CreateVariantRequest  true  "Variante"
// @Success      201   {object}  dto.VariantResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/products/{id}/variants [post]
func (h *VariantHandler) Create(c *fiber.Ctx) error {
	productID, err := paramID(c, "id")
	if err != nil {
		return badID(c, err)
	}
	var in dto.CreateVariantRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), productID, &in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Reemplazar variante
// @Tags         variants
// @Security     Bearer
// @Accept       json
// @Param        id         path  int  true  "ID del producto"
// @Param        variantId  path  int  true  "ID de la variante"
// @Param        body       body  dto.UpdateVariantRequest  true  "Variante completa"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id}/variants/{variantId} [put]
func (h *VariantHandler) Update(c *fiber.Ctx) error {
	productID, err := paramID(c, "id")
	if err != nil {
		return badID(c, err)
	}
	variantID, err := paramID(c, "variantId")
	if err != nil {
		return badID(c, err)
	}
	var in dto.UpdateVariantRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if err := h.uc.Update(c.UserContext(), productID, variantID, &in); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Delete godoc
// @Summary      Eliminar variante
// @Tags         variants
// @Security     Bearer
// @Param        id         path  int  true  "ID del producto"
// @Param        variantId  path  int  true  "ID de la variante"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id}/variants/{variantId} [delete]
func (h *VariantHandler) Delete(c *fiber.Ctx) error {
	productID, err := paramID(c, "id")
	if err != nil {
		return badID(c, err)
	}
	variantID, err := paramID(c, "variantId")
	if err != nil {
		return badID(c, err)
	}
	if err := h.uc.Delete(c.UserContext(), productID, variantID); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
