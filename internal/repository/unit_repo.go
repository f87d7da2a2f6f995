package repository

import (
	"context"

	"github.com/sahilo5/delval-report-management/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CompletionCount aggregates unit progress for one order.
type CompletionCount struct {
	Total     int
	Completed int
}

// Pending is the unit count still awaiting completion. By this formula an
// order with zero units is trivially complete.
func (c CompletionCount) Pending() int { return c.Total - c.Completed }

type UnitRepository interface {
	Find25(ctx context.Context, id uuid.UUID) (*model.Unit25, error)
	Find21(ctx context.Context, id uuid.UUID) (*model.Unit21, error)
	Update25(ctx context.Context, u *model.Unit25) error
	Update21(ctx context.Context, u *model.Unit21) error
	ListByOrder25(ctx context.Context, orderID uuid.UUID) ([]model.Unit25, error)
	ListByOrder21(ctx context.Context, orderID uuid.UUID) ([]model.Unit21, error)

	// CompletionCounts aggregates total/completed unit counts per order
	// across both series tables.
	CompletionCounts(ctx context.Context) (map[uuid.UUID]CompletionCount, error)
	// PendingCount counts an order's units not yet completed in the table
	// matching its series.
	PendingCount(ctx context.Context, orderID uuid.UUID, series string) (int64, error)
	// PendingOrderIDs lists distinct orders having at least one unit in
	// pending or in_progress state, across both series tables.
	PendingOrderIDs(ctx context.Context) ([]uuid.UUID, error)
	// CompletedOrderIDsBy lists distinct orders with at least one unit
	// completed by the given user.
	CompletedOrderIDsBy(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
}

type unitRepo struct{ db *gorm.DB }

func NewUnitRepository(db *gorm.DB) UnitRepository { return &unitRepo{db: db} }

func (r *unitRepo) Find25(ctx context.Context, id uuid.UUID) (*model.Unit25, error) {
	var u model.Unit25
	err := r.db.WithContext(ctx).First(&u, id).Error
	return &u, err
}

func (r *unitRepo) Find21(ctx context.Context, id uuid.UUID) (*model.Unit21, error) {
	var u model.Unit21
	err := r.db.WithContext(ctx).First(&u, id).Error
	return &u, err
}

func (r *unitRepo) Update25(ctx context.Context, u *model.Unit25) error {
	return r.db.WithContext(ctx).Save(u).Error
}

func (r *unitRepo) Update21(ctx context.Context, u *model.Unit21) error {
	return r.db.WithContext(ctx).Save(u).Error
}

func (r *unitRepo) ListByOrder25(ctx context.Context, orderID uuid.UUID) ([]model.Unit25, error) {
	var units []model.Unit25
	err := r.db.WithContext(ctx).Where("order_id = ?", orderID).Find(&units).Error
	return units, err
}

func (r *unitRepo) ListByOrder21(ctx context.Context, orderID uuid.UUID) ([]model.Unit21, error) {
	var units []model.Unit21
	err := r.db.WithContext(ctx).Where("order_id = ?", orderID).Find(&units).Error
	return units, err
}

type completionRow struct {
	OrderID   uuid.UUID
	Total     int
	Completed int
}

func (r *unitRepo) CompletionCounts(ctx context.Context) (map[uuid.UUID]CompletionCount, error) {
	counts := make(map[uuid.UUID]CompletionCount)
	for _, table := range []string{"units_25", "units_21"} {
		var rows []completionRow
		err := r.db.WithContext(ctx).
			Table(table).
			Select("order_id, COUNT(*) AS total, COUNT(*) FILTER (WHERE assembler_status = ?) AS completed", model.UnitCompleted).
			Group("order_id").
			Scan(&rows).Error
		if err != nil {
			return nil, err
		}
		for _, row := range rows {
			c := counts[row.OrderID]
			c.Total += row.Total
			c.Completed += row.Completed
			counts[row.OrderID] = c
		}
	}
	return counts, nil
}

func (r *unitRepo) PendingCount(ctx context.Context, orderID uuid.UUID, series string) (int64, error) {
	table := "units_25"
	if series == model.Series21 {
		table = "units_21"
	}
	var count int64
	err := r.db.WithContext(ctx).
		Table(table).
		Where("order_id = ? AND assembler_status <> ?", orderID, model.UnitCompleted).
		Count(&count).Error
	return count, err
}

func (r *unitRepo) PendingOrderIDs(ctx context.Context) ([]uuid.UUID, error) {
	seen := make(map[uuid.UUID]struct{})
	var ids []uuid.UUID
	for _, table := range []string{"units_25", "units_21"} {
		var partial []uuid.UUID
		err := r.db.WithContext(ctx).
			Table(table).
			Distinct("order_id").
			Where("assembler_status IN ?", []string{model.UnitPending, model.UnitInProgress}).
			Pluck("order_id", &partial).Error
		if err != nil {
			return nil, err
		}
		for _, id := range partial {
			if _, ok := seen[id]; !ok {
				seen[id] = struct{}{}
				ids = append(ids, id)
			}
		}
	}
	return ids, nil
}

func (r *unitRepo) CompletedOrderIDsBy(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	seen := make(map[uuid.UUID]struct{})
	var ids []uuid.UUID
	for _, table := range []string{"units_25", "units_21"} {
		var partial []uuid.UUID
		err := r.db.WithContext(ctx).
			Table(table).
			Distinct("order_id").
			Where("assembler_id = ? AND assembler_status = ?", userID, model.UnitCompleted).
			Pluck("order_id", &partial).Error
		if err != nil {
			return nil, err
		}
		for _, id := range partial {
			if _, ok := seen[id]; !ok {
				seen[id] = struct{}{}
				ids = append(ids, id)
			}
		}
	}
	return ids, nil
}
