package service_test

import (
	"context"
	"strings"

	"github.com/sahilo5/delval-report-management/internal/dto"
	"github.com/sahilo5/delval-report-management/internal/model"
	"github.com/sahilo5/delval-report-management/internal/repository"
	"github.com/sahilo5/delval-report-management/internal/worker"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ── Stubs ─────────────────────────────────────────────────────────────────────

// stubUnitRepo is an in-memory UnitRepository shared by the service tests.
type stubUnitRepo struct {
	u25 map[uuid.UUID]*model.Unit25
	u21 map[uuid.UUID]*model.Unit21
}

func newStubUnitRepo() *stubUnitRepo {
	return &stubUnitRepo{
		u25: make(map[uuid.UUID]*model.Unit25),
		u21: make(map[uuid.UUID]*model.Unit21),
	}
}

func (r *stubUnitRepo) Find25(_ context.Context, id uuid.UUID) (*model.Unit25, error) {
	u, ok := r.u25[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *stubUnitRepo) Find21(_ context.Context, id uuid.UUID) (*model.Unit21, error) {
	u, ok := r.u21[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *stubUnitRepo) Update25(_ context.Context, u *model.Unit25) error {
	cp := *u
	r.u25[u.ID] = &cp
	return nil
}

func (r *stubUnitRepo) Update21(_ context.Context, u *model.Unit21) error {
	cp := *u
	r.u21[u.ID] = &cp
	return nil
}

func (r *stubUnitRepo) ListByOrder25(_ context.Context, orderID uuid.UUID) ([]model.Unit25, error) {
	var units []model.Unit25
	for _, u := range r.u25 {
		if u.OrderID == orderID {
			units = append(units, *u)
		}
	}
	return units, nil
}

func (r *stubUnitRepo) ListByOrder21(_ context.Context, orderID uuid.UUID) ([]model.Unit21, error) {
	var units []model.Unit21
	for _, u := range r.u21 {
		if u.OrderID == orderID {
			units = append(units, *u)
		}
	}
	return units, nil
}

func (r *stubUnitRepo) CompletionCounts(_ context.Context) (map[uuid.UUID]repository.CompletionCount, error) {
	counts := make(map[uuid.UUID]repository.CompletionCount)
	for _, u := range r.u25 {
		c := counts[u.OrderID]
		c.Total++
		if u.AssemblerStatus == model.UnitCompleted {
			c.Completed++
		}
		counts[u.OrderID] = c
	}
	for _, u := range r.u21 {
		c := counts[u.OrderID]
		c.Total++
		if u.AssemblerStatus == model.UnitCompleted {
			c.Completed++
		}
		counts[u.OrderID] = c
	}
	return counts, nil
}

func (r *stubUnitRepo) PendingCount(_ context.Context, orderID uuid.UUID, series string) (int64, error) {
	var count int64
	if series == model.Series21 {
		for _, u := range r.u21 {
			if u.OrderID == orderID && u.AssemblerStatus != model.UnitCompleted {
				count++
			}
		}
		return count, nil
	}
	for _, u := range r.u25 {
		if u.OrderID == orderID && u.AssemblerStatus != model.UnitCompleted {
			count++
		}
	}
	return count, nil
}

func (r *stubUnitRepo) PendingOrderIDs(_ context.Context) ([]uuid.UUID, error) {
	seen := make(map[uuid.UUID]struct{})
	var ids []uuid.UUID
	add := func(orderID uuid.UUID, status string) {
		if status == model.UnitCompleted {
			return
		}
		if _, ok := seen[orderID]; !ok {
			seen[orderID] = struct{}{}
			ids = append(ids, orderID)
		}
	}
	for _, u := range r.u25 {
		add(u.OrderID, u.AssemblerStatus)
	}
	for _, u := range r.u21 {
		add(u.OrderID, u.AssemblerStatus)
	}
	return ids, nil
}

func (r *stubUnitRepo) CompletedOrderIDsBy(_ context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	seen := make(map[uuid.UUID]struct{})
	var ids []uuid.UUID
	add := func(orderID uuid.UUID, assembler *uuid.UUID, status string) {
		if status != model.UnitCompleted || assembler == nil || *assembler != userID {
			return
		}
		if _, ok := seen[orderID]; !ok {
			seen[orderID] = struct{}{}
			ids = append(ids, orderID)
		}
	}
	for _, u := range r.u25 {
		add(u.OrderID, u.AssemblerID, u.AssemblerStatus)
	}
	for _, u := range r.u21 {
		add(u.OrderID, u.AssemblerID, u.AssemblerStatus)
	}
	return ids, nil
}

var _ repository.UnitRepository = (*stubUnitRepo)(nil)

// stubOrderRepo is an in-memory OrderRepository. CreateWithUnits lands the
// unit fan-out in the associated stubUnitRepo, mirroring the transactional
// fan-out of the real repository.
type stubOrderRepo struct {
	orders []*model.Order
	units  *stubUnitRepo
}

func newStubOrderRepo(units *stubUnitRepo) *stubOrderRepo {
	return &stubOrderRepo{units: units}
}

func (r *stubOrderRepo) CreateWithUnits(_ context.Context, o *model.Order, u25 []model.Unit25, u21 []model.Unit21) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	r.orders = append(r.orders, o)
	for i := range u25 {
		u25[i].OrderID = o.ID
		if u25[i].ID == uuid.Nil {
			u25[i].ID = uuid.New()
		}
		cp := u25[i]
		r.units.u25[cp.ID] = &cp
	}
	for i := range u21 {
		u21[i].OrderID = o.ID
		if u21[i].ID == uuid.Nil {
			u21[i].ID = uuid.New()
		}
		cp := u21[i]
		r.units.u21[cp.ID] = &cp
	}
	return nil
}

func (r *stubOrderRepo) FindByOrderNo(_ context.Context, orderNo string) (*model.Order, error) {
	for _, o := range r.orders {
		if o.OrderNo == orderNo {
			return o, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubOrderRepo) FindByIDs(_ context.Context, ids []uuid.UUID) ([]model.Order, error) {
	var found []model.Order
	for _, id := range ids {
		for _, o := range r.orders {
			if o.ID == id {
				found = append(found, *o)
			}
		}
	}
	return found, nil
}

func (r *stubOrderRepo) ExistsByOrderNo(_ context.Context, orderNo string) (bool, error) {
	for _, o := range r.orders {
		if o.OrderNo == orderNo {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubOrderRepo) List(_ context.Context, filter dto.OrderFilter) ([]model.Order, int64, error) {
	var matched []model.Order
	for _, o := range r.orders {
		if filter.Status != "" && o.OrderStatus != filter.Status {
			continue
		}
		if filter.Search != "" {
			needle := strings.ToLower(filter.Search)
			haystack := strings.ToLower(o.OrderNo + " " + o.SalesOrderNo + " " + o.Customer + " " + o.ItemCode)
			if !strings.Contains(haystack, needle) {
				continue
			}
		}
		matched = append(matched, *o)
	}

	total := int64(len(matched))
	page, _ := repository.ClampPage(filter.Page, total)
	start := (page - 1) * repository.PageSize
	if start > len(matched) {
		start = len(matched)
	}
	end := start + repository.PageSize
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

func (r *stubOrderRepo) ListBySeries(_ context.Context, series ...string) ([]model.Order, error) {
	var matched []model.Order
	for _, o := range r.orders {
		for _, s := range series {
			if o.Series == s {
				matched = append(matched, *o)
				break
			}
		}
	}
	return matched, nil
}

func (r *stubOrderRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.orders)), nil
}

func (r *stubOrderRepo) Update(_ context.Context, o *model.Order) error {
	for i, existing := range r.orders {
		if existing.ID == o.ID {
			r.orders[i] = o
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

var _ repository.OrderRepository = (*stubOrderRepo)(nil)

// stubNotifier records enqueued completion notifications.
type stubNotifier struct {
	payloads []worker.NotifyJobPayload
}

func (n *stubNotifier) EnqueueNotify(_ context.Context, payload worker.NotifyJobPayload) error {
	n.payloads = append(n.payloads, payload)
	return nil
}
