package handler

import (
	"net/http"

	"github.com/sahilo5/delval-report-management/internal/apierror"
	"github.com/sahilo5/delval-report-management/internal/dto"
	"github.com/sahilo5/delval-report-management/internal/middleware"
	"github.com/sahilo5/delval-report-management/internal/service"

	"github.com/gin-gonic/gin"
)

type OrdersHandler struct {
	orders service.OrderService
	units  service.UnitService
}

func NewOrdersHandler(orders service.OrderService, units service.UnitService) *OrdersHandler {
	return &OrdersHandler{orders: orders, units: units}
}

// Intake godoc
// @Summary Register a scanned or manually entered order and fan out its serial units
// @Tags orders
// @Accept json
// @Produce json
// @Success 201 {object} dto.IntakeResponse
// @Failure 409 {object} apierror.APIError
// @Failure 422 {object} apierror.APIError
// @Router /v1/orders/intake [post]
func (h *OrdersHandler) Intake(c *gin.Context) {
	// Scanned payloads are loosely keyed, so the body binds as a raw map and
	// the intake resolver normalizes it. Strict DTO binding happens nowhere
	// on this path on purpose.
	var payload map[string]any
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid order data JSON: "+err.Error()))
		return
	}

	resp, err := h.orders.Intake(c.Request.Context(), payload)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *OrdersHandler) List(c *gin.Context) {
	var filter dto.OrderFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.units.ListOrders(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *OrdersHandler) Detail(c *gin.Context) {
	resp, err := h.units.Detail(c.Request.Context(), c.Param("order_no"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *OrdersHandler) Advance(c *gin.Context) {
	claims := middleware.GetClaims(c)
	resp, err := h.orders.Advance(c.Request.Context(), c.Param("order_no"), claims.Role)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
