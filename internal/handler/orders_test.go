package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sahilo5/delval-report-management/internal/apierror"
	"github.com/sahilo5/delval-report-management/internal/dto"
	"github.com/sahilo5/delval-report-management/internal/handler"
	"github.com/sahilo5/delval-report-management/internal/model"
	"github.com/sahilo5/delval-report-management/internal/report"
	"github.com/sahilo5/delval-report-management/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

// stubOrderSvc returns canned results per scenario.
type stubOrderSvc struct {
	intakeResp *dto.IntakeResponse
	intakeErr  error
}

func (s *stubOrderSvc) Intake(_ context.Context, _ map[string]any) (*dto.IntakeResponse, error) {
	return s.intakeResp, s.intakeErr
}

func (s *stubOrderSvc) Advance(_ context.Context, _, _ string) (*dto.OrderResponse, error) {
	return nil, apierror.NotFound("Order not found")
}

var _ service.OrderService = (*stubOrderSvc)(nil)

type stubUnitSvc struct{}

func (s *stubUnitSvc) ListOrders(_ context.Context, _ dto.OrderFilter) (*dto.OrderListResponse, error) {
	return &dto.OrderListResponse{Items: []dto.OrderResponse{}, Page: 1}, nil
}
func (s *stubUnitSvc) Summary(_ context.Context, _ uuid.UUID, _ bool) (*dto.DashboardSummary, error) {
	return &dto.DashboardSummary{}, nil
}
func (s *stubUnitSvc) Detail(_ context.Context, orderNo string) (*dto.OrderDetailResponse, error) {
	return nil, apierror.NotFound("Order " + orderNo + " not found")
}
func (s *stubUnitSvc) SaveFields(_ context.Context, _ string, _ uuid.UUID, _ map[string]string) error {
	return nil
}
func (s *stubUnitSvc) SubmitComplete(_ context.Context, _ string, _, _ uuid.UUID, _ string) error {
	return nil
}
func (s *stubUnitSvc) ReportData(_ context.Context, _ string) (*report.Data, error) {
	return nil, apierror.NotFound("Order not found")
}

var _ service.UnitService = (*stubUnitSvc)(nil)

func intakeRouter(orderSvc service.OrderService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := handler.NewOrdersHandler(orderSvc, &stubUnitSvc{})
	r.POST("/v1/orders/intake", h.Intake)
	r.GET("/v1/orders/:order_no", h.Detail)
	return r
}

func postIntake(r *gin.Engine, body []byte) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/v1/orders/intake", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestIntakeEndpoint_Created(t *testing.T) {
	svc := &stubOrderSvc{intakeResp: &dto.IntakeResponse{
		Order:        dto.OrderResponse{OrderNo: "DV-1", OrderStatus: model.StatusUnderAssembly},
		UnitsCreated: 3,
	}}
	body, _ := json.Marshal(map[string]any{"order_no": "DV-1"})

	w := postIntake(intakeRouter(svc), body)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"units_created":3`)
}

func TestIntakeEndpoint_DuplicateMapsTo409(t *testing.T) {
	svc := &stubOrderSvc{intakeErr: apierror.Duplicate("Order DV-1 already exists")}
	body, _ := json.Marshal(map[string]any{"order_no": "DV-1"})

	w := postIntake(intakeRouter(svc), body)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "already exists")
}

func TestIntakeEndpoint_ValidationMapsTo422(t *testing.T) {
	svc := &stubOrderSvc{intakeErr: apierror.Validation("Series must be either '21' or '25'")}
	body, _ := json.Marshal(map[string]any{"order_no": "DV-1", "series": "30"})

	w := postIntake(intakeRouter(svc), body)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestIntakeEndpoint_MalformedJSON(t *testing.T) {
	w := postIntake(intakeRouter(&stubOrderSvc{}), []byte("{not json"))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDetailEndpoint_NotFoundMapsTo404(t *testing.T) {
	r := intakeRouter(&stubOrderSvc{})
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/v1/orders/DV-404", nil)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
