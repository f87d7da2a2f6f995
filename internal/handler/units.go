package handler

import (
	"net/http"

	"github.com/sahilo5/delval-report-management/internal/apierror"
	"github.com/sahilo5/delval-report-management/internal/dto"
	"github.com/sahilo5/delval-report-management/internal/middleware"
	"github.com/sahilo5/delval-report-management/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type UnitsHandler struct{ svc service.UnitService }

func NewUnitsHandler(svc service.UnitService) *UnitsHandler { return &UnitsHandler{svc: svc} }

// SaveFields stores a unit's traceability fields without touching its status.
func (h *UnitsHandler) SaveFields(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid unit ID"))
		return
	}
	var req dto.SaveFieldsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid JSON: "+err.Error()))
		return
	}
	if err := h.svc.SaveFields(c.Request.Context(), c.Param("series"), id, req.Fields); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Complete marks a unit completed once all required fields are filled, and
// records the submitting user as its assembler.
func (h *UnitsHandler) Complete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid unit ID"))
		return
	}
	claims := middleware.GetClaims(c)
	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, apierror.New("Malformed token"))
		return
	}
	if err := h.svc.SubmitComplete(c.Request.Context(), c.Param("series"), id, userID, claims.DisplayName()); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
