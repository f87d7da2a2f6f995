package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/sahilo5/delval-report-management/internal/apierror"
	"github.com/sahilo5/delval-report-management/internal/dto"
	"github.com/sahilo5/delval-report-management/internal/intake"
	"github.com/sahilo5/delval-report-management/internal/model"
	"github.com/sahilo5/delval-report-management/internal/repository"
)

// advanceRoles lists who may move an order OUT of each stage. Admin may
// always advance.
var advanceRoles = map[string][]string{
	model.StatusUnderAssembly:  {model.RoleAssemblyEngineer},
	model.StatusUnderTesting:   {model.RoleTester},
	model.StatusUnderPainting:  {model.RolePaintingEngineer},
	model.StatusUnderFinishing: {model.RoleFinisher},
	model.StatusUnderQA:        {model.RoleQAEngineer},
}

// OrderService owns the order lifecycle: intake fan-out and the status
// transitions along the fixed stage sequence.
type OrderService interface {
	Intake(ctx context.Context, payload map[string]any) (*dto.IntakeResponse, error)
	Advance(ctx context.Context, orderNo, role string) (*dto.OrderResponse, error)
}

type orderService struct {
	orders repository.OrderRepository
	units  repository.UnitRepository
}

func NewOrderService(orders repository.OrderRepository, units repository.UnitRepository) OrderService {
	return &orderService{orders: orders, units: units}
}

func mapOrder(o *model.Order) dto.OrderResponse {
	return dto.OrderResponse{
		ID:           o.ID.String(),
		SalesOrderNo: o.SalesOrderNo,
		LineItem:     o.LineItem,
		OrderNo:      o.OrderNo,
		Customer:     o.Customer,
		Series:       o.Series,
		Type:         o.Type,
		Size:         o.Size,
		CylinderSize: o.CylinderSize,
		SpringSize:   o.SpringSize,
		MOC:          o.MOC,
		OrderQty:     o.OrderQty,
		OrderStatus:  o.OrderStatus,
		ItemCode:     o.ItemCode,
		CreationDate: o.CreationDate,
		Branch:       o.Branch,
		CreatedAt:    o.CreatedAt,
		UpdatedAt:    o.UpdatedAt,
	}
}

// materialDescription combines the size-related order attributes the way the
// dashboards and reports display them, skipping empty parts.
func materialDescription(o *model.Order) string {
	parts := []string{o.Series, o.Type, o.Size, o.CylinderSize, o.SpringSize, o.MOC}
	var kept []string
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, ", ")
}

// Intake validates the scanned/manual payload and creates the order plus its
// serialized unit fan-out. Validation runs entirely before the first write:
// a rejected payload leaves no orphaned order behind.
func (s *orderService) Intake(ctx context.Context, payload map[string]any) (*dto.IntakeResponse, error) {
	orderNo := intake.Resolve(payload, "order_no")
	salesOrderNo := intake.Resolve(payload, "sales_order_no")
	if orderNo == "" || salesOrderNo == "" {
		return nil, apierror.Validation("Order No and Sales Order No are required")
	}

	series := intake.Resolve(payload, "series")
	if !model.ValidSeries(series) {
		return nil, apierror.Validation("Series must be either '21' or '25'")
	}

	exists, err := s.orders.ExistsByOrderNo(ctx, orderNo)
	if err != nil {
		return nil, apierror.Storage("duplicate check failed", err)
	}
	if exists {
		return nil, apierror.Duplicate(fmt.Sprintf("Order %s already exists", orderNo))
	}

	qtyStr := intake.Resolve(payload, "order_qty")
	if qtyStr == "" {
		qtyStr = "1"
	}

	order := &model.Order{
		SalesOrderNo: salesOrderNo,
		LineItem:     intake.Resolve(payload, "line_item"),
		OrderNo:      orderNo,
		Customer:     intake.Resolve(payload, "customer"),
		Series:       series,
		Type:         intake.Resolve(payload, "type"),
		Size:         intake.Resolve(payload, "size"),
		CylinderSize: intake.Resolve(payload, "cylinder_size"),
		SpringSize:   intake.Resolve(payload, "spring_size"),
		MOC:          intake.Resolve(payload, "moc"),
		OrderQty:     qtyStr,
		OrderStatus:  model.StatusUnderAssembly,
		ItemCode:     intake.Resolve(payload, "item_code"),
		CreationDate: intake.Resolve(payload, "creation_date"),
		Branch:       intake.Resolve(payload, "branch"),
	}

	qty := order.Quantity()
	var units25 []model.Unit25
	var units21 []model.Unit21
	switch series {
	case model.Series25:
		units25 = make([]model.Unit25, qty)
		for i := range units25 {
			units25[i] = model.Unit25{
				SerialNo:        fmt.Sprintf("%s-%d", orderNo, i+1),
				AssemblerStatus: model.UnitPending,
			}
		}
	case model.Series21:
		units21 = make([]model.Unit21, qty)
		for i := range units21 {
			units21[i] = model.Unit21{
				SerialNo:        fmt.Sprintf("%s-%d", orderNo, i+1),
				AssemblerStatus: model.UnitPending,
			}
		}
	}

	if err := s.orders.CreateWithUnits(ctx, order, units25, units21); err != nil {
		return nil, apierror.Storage("failed to create order", err)
	}

	return &dto.IntakeResponse{Order: mapOrder(order), UnitsCreated: qty}, nil
}

// Advance moves an order one step along the stage sequence. Leaving assembly
// additionally requires every unit of the order to be completed.
func (s *orderService) Advance(ctx context.Context, orderNo, role string) (*dto.OrderResponse, error) {
	order, err := s.orders.FindByOrderNo(ctx, orderNo)
	if err != nil {
		return nil, apierror.NotFound(fmt.Sprintf("Order %s not found", orderNo))
	}

	next := model.NextStatus(order.OrderStatus)
	if next == "" {
		return nil, apierror.Validation(fmt.Sprintf("Order %s cannot advance from status %s", orderNo, order.OrderStatus))
	}

	if role != model.RoleAdmin && !roleMayAdvance(order.OrderStatus, role) {
		return nil, apierror.Validation(fmt.Sprintf("Role %s may not advance an order in status %s", role, order.OrderStatus))
	}

	if order.OrderStatus == model.StatusUnderAssembly {
		pending, err := s.units.PendingCount(ctx, order.ID, order.Series)
		if err != nil {
			return nil, apierror.Storage("pending count failed", err)
		}
		if pending > 0 {
			return nil, apierror.Validation(fmt.Sprintf("Order %s still has %d units pending assembly", orderNo, pending))
		}
	}

	order.OrderStatus = next
	if err := s.orders.Update(ctx, order); err != nil {
		return nil, apierror.Storage("failed to update order status", err)
	}

	resp := mapOrder(order)
	return &resp, nil
}

func roleMayAdvance(status, role string) bool {
	for _, allowed := range advanceRoles[status] {
		if allowed == role {
			return true
		}
	}
	return false
}
