package handler

import (
	"fmt"
	"net/http"

	"github.com/sahilo5/delval-report-management/internal/apierror"
	"github.com/sahilo5/delval-report-management/internal/dto"
	"github.com/sahilo5/delval-report-management/internal/middleware"
	"github.com/sahilo5/delval-report-management/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type DashboardHandler struct {
	svc    service.UnitService
	routes map[string]string
}

func NewDashboardHandler(svc service.UnitService, routes map[string]string) *DashboardHandler {
	return &DashboardHandler{svc: svc, routes: routes}
}

// Summary returns the order counters for the assembler dashboard.
// With ?mine=true the "my orders" counter is scoped to orders the
// caller has completed units on.
func (h *DashboardHandler) Summary(c *gin.Context) {
	claims := middleware.GetClaims(c)
	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, apierror.New("Malformed token"))
		return
	}

	mine := c.Query("mine") == "true"
	summary, err := h.svc.Summary(c.Request.Context(), userID, mine)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// Route resolves the caller's role to its landing dashboard path so the
// frontend can redirect straight after login.
func (h *DashboardHandler) Route(c *gin.Context) {
	claims := middleware.GetClaims(c)
	route, ok := h.routes[claims.Role]
	if !ok {
		respondError(c, apierror.NotFound(fmt.Sprintf("No dashboard configured for role %s", claims.Role)))
		return
	}
	c.JSON(http.StatusOK, dto.DashboardRouteResponse{Role: claims.Role, Route: route})
}
