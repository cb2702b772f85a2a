package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/coffee-stock-api/internal/application/dto"
	"github.com/jhoicas/coffee-stock-api/internal/application/inventory"
	"github.com/jhoicas/coffee-stock-api/internal/domain/entity"
)

// StockNotifier recibe los ajustes confirmados (hub websocket). Puede ser nil.
type StockNotifier interface {
	PublishStock(event dto.StockEvent)
}

// InventoryHandler maneja las peticiones HTTP de movimientos de stock y reportes de inventario.
type InventoryHandler struct {
	adjust        *inventory.AdjustStockUseCase
	query         *inventory.QueryUseCase
	stockCard     *inventory.StockCardUseCase
	replenishment *inventory.ReplenishmentUseCase
	notifier      StockNotifier
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(
	adjust *inventory.AdjustStockUseCase,
	query *inventory.QueryUseCase,
	stockCard *inventory.StockCardUseCase,
	replenishment *inventory.ReplenishmentUseCase,
	notifier StockNotifier,
) *InventoryHandler {
	return &InventoryHandler{
		adjust:        adjust,
		query:         query,
		stockCard:     stockCard,
		replenishment: replenishment,
		notifier:      notifier,
	}
}

// StockIn godoc
// @Summary      Registrar entrada de stock
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int                     true  "ID del producto"
// @Param        body  body  dto.StockAdjustRequest  true  "quantity > 0"
// @Success      200   {object}  dto.APIResponse{data=dto.StockAdjustResponse}
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/v1/products/{id}/stock/in [post]
func (h *InventoryHandler) StockIn(c *fiber.Ctx) error {
	return h.adjustStock(c, entity.TransactionIn, msgStockInSucceeded)
}

// StockOut godoc
// @Summary      Registrar salida de stock
// @Description  Falla con 400 INSUFFICIENT_STOCK si la cantidad supera el stock actual.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int                     true  "ID del producto"
// @Param        body  body  dto.StockAdjustRequest  true  "quantity > 0"
// @Success      200   {object}  dto.APIResponse{data=dto.StockAdjustResponse}
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/v1/products/{id}/stock/out [post]
func (h *InventoryHandler) StockOut(c *fiber.Ctx) error {
	return h.adjustStock(c, entity.TransactionOut, msgStockOutSucceeded)
}

func (h *InventoryHandler) adjustStock(c *fiber.Ctx, direction entity.TransactionType, message string) error {
	id, ok := productIDParam(c)
	if !ok {
		return invalidProductID(c)
	}
	var in dto.StockAdjustRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	stock, err := h.adjust.Adjust(c.Context(), id, direction, *in.Quantity)
	if err != nil {
		return writeError(c, err)
	}
	if h.notifier != nil {
		h.notifier.PublishStock(dto.StockEvent{
			Type:      "stock_update",
			ProductID: id,
			Direction: direction.String(),
			Quantity:  *in.Quantity,
			Stock:     stock,
		})
	}
	return success(c, fiber.StatusOK, message, dto.StockAdjustResponse{ProductID: id, Stock: stock})
}

// History godoc
// @Summary      Historial de movimientos de un producto
// @Description  Más recientes primero. Lista vacía si el producto no tiene movimientos.
// @Tags         inventory
// @Produce      json
// @Param        id   path  int  true  "ID del producto"
// @Success      200  {object}  dto.APIResponse{data=[]dto.TransactionResponse}
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/v1/products/{id}/transactions [get]
func (h *InventoryHandler) History(c *fiber.Ctx) error {
	id, ok := productIDParam(c)
	if !ok {
		return invalidProductID(c)
	}
	out, err := h.query.GetTransactionHistory(c.Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return success(c, fiber.StatusOK, msgQuerySucceeded, out)
}

// StockCardPDF godoc
// @Summary      Kardex del producto en PDF
// @Tags         inventory
// @Produce      application/pdf
// @Param        id   path  int  true  "ID del producto"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/v1/products/{id}/stock-card [get]
func (h *InventoryHandler) StockCardPDF(c *fiber.Ctx) error {
	id, ok := productIDParam(c)
	if !ok {
		return invalidProductID(c)
	}
	pdf, err := h.stockCard.DownloadPDF(c.Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`inline; filename="kardex-%d.pdf"`, id))
	return c.Send(pdf)
}

// GetReplenishmentList godoc
// @Summary      Lista de reposición
// @Description  Productos en o bajo el umbral de stock bajo con la cantidad sugerida de pedido.
// @Tags         inventory
// @Produce      json
// @Success      200  {object}  dto.APIResponse{data=[]dto.ReplenishmentSuggestionDTO}
// @Router       /api/v1/inventory/replenishment-list [get]
func (h *InventoryHandler) GetReplenishmentList(c *fiber.Ctx) error {
	out, err := h.replenishment.GenerateReplenishmentList(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return success(c, fiber.StatusOK, msgQuerySucceeded, out)
}
