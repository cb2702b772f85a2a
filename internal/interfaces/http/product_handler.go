package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/coffee-stock-api/internal/application/dto"
	"github.com/jhoicas/coffee-stock-api/internal/application/inventory"
	"github.com/jhoicas/coffee-stock-api/internal/application/usecase"
)

// ProductHandler maneja las peticiones HTTP del catálogo de productos.
type ProductHandler struct {
	uc    *usecase.ProductUseCase
	query *inventory.QueryUseCase
}

// NewProductHandler construye el handler.
func NewProductHandler(uc *usecase.ProductUseCase, query *inventory.QueryUseCase) *ProductHandler {
	return &ProductHandler{uc: uc, query: query}
}

// Create godoc
// @Summary      Crear producto
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateProductRequest  true  "name, type (BEAN|DESSERT), price > 0, stock >= 0"
// @Success      201   {object}  dto.APIResponse{data=dto.ProductResponse}
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/v1/products [post]
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProductRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return success(c, fiber.StatusCreated, msgCreated, out)
}

// GetByID godoc
// @Summary      Obtener producto por ID
// @Tags         products
// @Produce      json
// @Param        id   path  int  true  "ID del producto"
// @Success      200  {object}  dto.APIResponse{data=dto.ProductResponse}
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/v1/products/{id} [get]
func (h *ProductHandler) GetByID(c *fiber.Ctx) error {
	id, ok := productIDParam(c)
	if !ok {
		return invalidProductID(c)
	}
	out, err := h.query.GetProduct(c.Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return success(c, fiber.StatusOK, msgQuerySucceeded, out)
}

// List godoc
// @Summary      Listar productos
// @Description  Sin page/size devuelve todos en orden de creación.
// @Tags         products
// @Produce      json
// @Param        page  query  int  false  "Página (desde 1)"
// @Param        size  query  int  false  "Elementos por página (máx 100)"
// @Success      200   {object}  dto.APIResponse{data=[]dto.ProductResponse}
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/v1/products [get]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if ok, err := parseQuery(c, &page); !ok {
		return err
	}
	out, err := h.query.ListProductsPage(c.Context(), page)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.APIResponse{
		Result:   true,
		Message:  msgQuerySucceeded,
		Data:     out.Items,
		PageInfo: out.PageInfo,
	})
}
