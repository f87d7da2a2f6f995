package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/sahilo5/delval-report-management/internal/apierror"
	"github.com/sahilo5/delval-report-management/internal/config"
	"github.com/sahilo5/delval-report-management/internal/dto"
	"github.com/sahilo5/delval-report-management/internal/model"
	"github.com/sahilo5/delval-report-management/internal/report"
	"github.com/sahilo5/delval-report-management/internal/repository"
	"github.com/sahilo5/delval-report-management/internal/worker"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const summaryCacheKey = "dashboard:summary"

// Notifier enqueues order completion notifications. Satisfied by
// *worker.Dispatcher; nil disables notifications.
type Notifier interface {
	EnqueueNotify(ctx context.Context, payload worker.NotifyJobPayload) error
}

// UnitService is the progress tracker: order listing and summaries for the
// dashboards, per-unit field capture, and the completion transition.
type UnitService interface {
	ListOrders(ctx context.Context, filter dto.OrderFilter) (*dto.OrderListResponse, error)
	Summary(ctx context.Context, userID uuid.UUID, mine bool) (*dto.DashboardSummary, error)
	Detail(ctx context.Context, orderNo string) (*dto.OrderDetailResponse, error)
	SaveFields(ctx context.Context, series string, id uuid.UUID, fields map[string]string) error
	SubmitComplete(ctx context.Context, series string, id, userID uuid.UUID, userName string) error
	ReportData(ctx context.Context, orderNo string) (*report.Data, error)
}

type unitService struct {
	orders   repository.OrderRepository
	units    repository.UnitRepository
	rdb      *redis.Client
	notifier Notifier
	cfg      *config.Config
}

// NewUnitService wires the tracker. rdb and notifier may be nil: the summary
// is then computed uncached and completion notifications are disabled.
func NewUnitService(orders repository.OrderRepository, units repository.UnitRepository, rdb *redis.Client, notifier Notifier, cfg *config.Config) UnitService {
	return &unitService{orders: orders, units: units, rdb: rdb, notifier: notifier, cfg: cfg}
}

func (s *unitService) ListOrders(ctx context.Context, filter dto.OrderFilter) (*dto.OrderListResponse, error) {
	orders, total, err := s.orders.List(ctx, filter)
	if err != nil {
		return nil, apierror.Storage("failed to list orders", err)
	}
	page, pages := repository.ClampPage(filter.Page, total)
	items := make([]dto.OrderResponse, len(orders))
	for i := range orders {
		items[i] = mapOrder(&orders[i])
	}
	return &dto.OrderListResponse{
		Items:    items,
		Total:    total,
		Page:     page,
		Pages:    pages,
		PageSize: repository.PageSize,
	}, nil
}

// Summary computes the assembler dashboard. An order is "in progress" while
// pending = total - completed is positive; with zero units both counts are
// zero and the order lands in the completed bucket. The needs-attention list
// ("my orders") is system-wide by default; mine=true narrows it to orders the
// caller has completed units on.
func (s *unitService) Summary(ctx context.Context, userID uuid.UUID, mine bool) (*dto.DashboardSummary, error) {
	// The shared system-wide summary is cached briefly; the per-user variant
	// is always computed fresh.
	if !mine && s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, summaryCacheKey).Bytes(); err == nil {
			var summary dto.DashboardSummary
			if json.Unmarshal(cached, &summary) == nil {
				return &summary, nil
			}
		}
	}

	orders, err := s.orders.ListBySeries(ctx, model.Series21, model.Series25)
	if err != nil {
		return nil, apierror.Storage("failed to load orders", err)
	}
	counts, err := s.units.CompletionCounts(ctx)
	if err != nil {
		return nil, apierror.Storage("failed to aggregate unit counts", err)
	}
	totalOrders, err := s.orders.Count(ctx)
	if err != nil {
		return nil, apierror.Storage("failed to count orders", err)
	}

	summary := &dto.DashboardSummary{
		TotalOrders:      totalOrders,
		OrdersInProgress: []dto.OrderProgress{},
		CompletedOrders:  []dto.OrderProgress{},
		MyOrders:         []dto.OrderResponse{},
	}
	for i := range orders {
		o := &orders[i]
		c := counts[o.ID]
		progress := dto.OrderProgress{
			OrderResponse: mapOrder(o),
			TotalQty:      c.Total,
			CompletedQty:  c.Completed,
			PendingQty:    c.Pending(),
			Material:      materialDescription(o),
		}
		if c.Pending() > 0 {
			summary.OrdersInProgress = append(summary.OrdersInProgress, progress)
		} else {
			summary.CompletedOrders = append(summary.CompletedOrders, progress)
		}
	}

	var attentionIDs []uuid.UUID
	if mine {
		attentionIDs, err = s.units.CompletedOrderIDsBy(ctx, userID)
	} else {
		attentionIDs, err = s.units.PendingOrderIDs(ctx)
	}
	if err != nil {
		return nil, apierror.Storage("failed to resolve attention list", err)
	}
	attention, err := s.orders.FindByIDs(ctx, attentionIDs)
	if err != nil {
		return nil, apierror.Storage("failed to load attention orders", err)
	}
	for i := range attention {
		summary.MyOrders = append(summary.MyOrders, mapOrder(&attention[i]))
	}

	if !mine && s.rdb != nil {
		if data, err := json.Marshal(summary); err == nil {
			ttl := time.Duration(s.cfg.SummaryCacheSeconds) * time.Second
			_ = s.rdb.Set(ctx, summaryCacheKey, data, ttl).Err()
		}
	}
	return summary, nil
}

func (s *unitService) Detail(ctx context.Context, orderNo string) (*dto.OrderDetailResponse, error) {
	order, err := s.orders.FindByOrderNo(ctx, orderNo)
	if err != nil {
		return nil, apierror.NotFound(fmt.Sprintf("Order %s not found", orderNo))
	}
	units, err := s.orderedUnits(ctx, order)
	if err != nil {
		return nil, err
	}
	return &dto.OrderDetailResponse{Order: mapOrder(order), Units: units}, nil
}

// orderedUnits loads the order's units sorted by the numeric suffix of their
// serial number, so ORD-1-10 follows ORD-1-9 instead of ORD-1-1.
func (s *unitService) orderedUnits(ctx context.Context, order *model.Order) ([]dto.UnitResponse, error) {
	var units []dto.UnitResponse
	switch order.Series {
	case model.Series25:
		rows, err := s.units.ListByOrder25(ctx, order.ID)
		if err != nil {
			return nil, apierror.Storage("failed to load units", err)
		}
		units = make([]dto.UnitResponse, len(rows))
		for i := range rows {
			u := &rows[i]
			units[i] = dto.UnitResponse{
				ID:              u.ID.String(),
				SerialNo:        u.SerialNo,
				Series:          model.Series25,
				AssemblerStatus: u.AssemblerStatus,
				AssemblerName:   u.AssemblerName,
				Fields:          u.FieldValues(),
				UpdatedAt:       u.UpdatedAt,
			}
		}
	case model.Series21:
		rows, err := s.units.ListByOrder21(ctx, order.ID)
		if err != nil {
			return nil, apierror.Storage("failed to load units", err)
		}
		units = make([]dto.UnitResponse, len(rows))
		for i := range rows {
			u := &rows[i]
			units[i] = dto.UnitResponse{
				ID:              u.ID.String(),
				SerialNo:        u.SerialNo,
				Series:          model.Series21,
				AssemblerStatus: u.AssemblerStatus,
				AssemblerName:   u.AssemblerName,
				Fields:          u.FieldValues(),
				UpdatedAt:       u.UpdatedAt,
			}
		}
	default:
		// Orders from before the series split have no unit table.
		return []dto.UnitResponse{}, nil
	}

	sortBySerialSuffix(units, order.OrderNo)
	return units, nil
}

// sortBySerialSuffix orders units by the integer following "{order_no}-",
// whatever its digit count. Serials that do not parse sort last,
// lexicographically.
func sortBySerialSuffix(units []dto.UnitResponse, orderNo string) {
	prefix := orderNo + "-"
	suffix := func(serial string) (int, bool) {
		n, err := strconv.Atoi(strings.TrimPrefix(serial, prefix))
		return n, err == nil
	}
	sort.SliceStable(units, func(i, j int) bool {
		ni, oki := suffix(units[i].SerialNo)
		nj, okj := suffix(units[j].SerialNo)
		if oki && okj {
			return ni < nj
		}
		if oki != okj {
			return oki
		}
		return units[i].SerialNo < units[j].SerialNo
	})
}

// SaveFields replaces the whole editable field set of one unit. Status is
// untouched; unknown keys are ignored and missing keys clear their field.
func (s *unitService) SaveFields(ctx context.Context, series string, id uuid.UUID, fields map[string]string) error {
	switch series {
	case model.Series25:
		u, err := s.units.Find25(ctx, id)
		if err != nil {
			return apierror.NotFound("Unit not found")
		}
		u.ApplyFields(fields)
		if err := s.units.Update25(ctx, u); err != nil {
			return apierror.Storage("failed to save unit fields", err)
		}
	case model.Series21:
		u, err := s.units.Find21(ctx, id)
		if err != nil {
			return apierror.NotFound("Unit not found")
		}
		u.ApplyFields(fields)
		if err := s.units.Update21(ctx, u); err != nil {
			return apierror.Storage("failed to save unit fields", err)
		}
	default:
		return apierror.Validation("Invalid series specified")
	}
	return nil
}

// SubmitComplete flips a unit from pending to completed once every required
// field of its series is filled in. The transition is one-shot and
// one-directional; repeating it on a completed unit is a no-op that keeps
// the original completer.
func (s *unitService) SubmitComplete(ctx context.Context, series string, id, userID uuid.UUID, userName string) error {
	var orderID uuid.UUID
	switch series {
	case model.Series25:
		u, err := s.units.Find25(ctx, id)
		if err != nil {
			return apierror.NotFound("Unit not found")
		}
		if missing := u.MissingFields(); len(missing) > 0 {
			return apierror.Validation("All heat numbers required for 25 Series: missing " + strings.Join(missing, ", "))
		}
		if u.AssemblerStatus == model.UnitCompleted {
			return nil
		}
		u.AssemblerStatus = model.UnitCompleted
		u.AssemblerID = &userID
		u.AssemblerName = userName
		if err := s.units.Update25(ctx, u); err != nil {
			return apierror.Storage("failed to complete unit", err)
		}
		orderID = u.OrderID
	case model.Series21:
		u, err := s.units.Find21(ctx, id)
		if err != nil {
			return apierror.NotFound("Unit not found")
		}
		if missing := u.MissingFields(); len(missing) > 0 {
			return apierror.Validation("All fields required for 21 Series: missing " + strings.Join(missing, ", "))
		}
		if u.AssemblerStatus == model.UnitCompleted {
			return nil
		}
		u.AssemblerStatus = model.UnitCompleted
		u.AssemblerID = &userID
		u.AssemblerName = userName
		if err := s.units.Update21(ctx, u); err != nil {
			return apierror.Storage("failed to complete unit", err)
		}
		orderID = u.OrderID
	default:
		return apierror.Validation("Invalid series specified")
	}

	s.maybeNotifyCompletion(ctx, orderID, series)
	return nil
}

// maybeNotifyCompletion enqueues the completion email when the order's last
// pending unit was just completed. Best effort: a failure here never fails
// the submit that triggered it.
func (s *unitService) maybeNotifyCompletion(ctx context.Context, orderID uuid.UUID, series string) {
	if s.notifier == nil || s.cfg == nil || s.cfg.NotifyEmail == "" {
		return
	}
	pending, err := s.units.PendingCount(ctx, orderID, series)
	if err != nil || pending > 0 {
		return
	}
	orders, err := s.orders.FindByIDs(ctx, []uuid.UUID{orderID})
	if err != nil || len(orders) == 0 {
		log.Error().Err(err).Str("order_id", orderID.String()).Msg("completion notify: order lookup failed")
		return
	}
	order := &orders[0]

	data, err := s.reportDataFor(ctx, order)
	if err != nil {
		log.Error().Err(err).Str("order_no", order.OrderNo).Msg("completion notify: report data failed")
		return
	}
	pdfPath, err := report.SavePDF(s.cfg.PDFStoragePath, data)
	if err != nil {
		log.Error().Err(err).Str("order_no", order.OrderNo).Msg("completion notify: pdf generation failed")
		pdfPath = ""
	}

	payload := worker.NotifyJobPayload{
		OrderNo: order.OrderNo,
		ToEmail: s.cfg.NotifyEmail,
		Subject: fmt.Sprintf("Assembly completed: order %s", order.OrderNo),
		Body: fmt.Sprintf("All %s units of order %s (%s) have completed assembly.",
			order.OrderQty, order.OrderNo, order.Customer),
		PDFPath: pdfPath,
	}
	if err := s.notifier.EnqueueNotify(ctx, payload); err != nil {
		log.Error().Err(err).Str("order_no", order.OrderNo).Msg("completion notify: enqueue failed")
	}
}

func (s *unitService) ReportData(ctx context.Context, orderNo string) (*report.Data, error) {
	order, err := s.orders.FindByOrderNo(ctx, orderNo)
	if err != nil {
		return nil, apierror.NotFound(fmt.Sprintf("Order %s not found", orderNo))
	}
	return s.reportDataFor(ctx, order)
}

func (s *unitService) reportDataFor(ctx context.Context, order *model.Order) (*report.Data, error) {
	units, err := s.orderedUnits(ctx, order)
	if err != nil {
		return nil, err
	}
	fields := model.FieldsForSeries(order.Series)
	rows := make([]report.Row, len(units))
	for i, u := range units {
		values := make([]string, len(fields))
		for j, name := range fields {
			values[j] = u.Fields[name]
		}
		rows[i] = report.Row{
			SrNo:      i + 1,
			SerialNo:  u.SerialNo,
			Values:    values,
			Status:    u.AssemblerStatus,
			Assembler: u.AssemblerName,
		}
	}
	company := "DELVAL FLOW CONTROLS PRIVATE LIMITED"
	if s.cfg != nil && s.cfg.CompanyName != "" {
		company = s.cfg.CompanyName
	}
	return &report.Data{
		Company:     company,
		Order:       order,
		Rows:        rows,
		GeneratedAt: time.Now(),
	}, nil
}
