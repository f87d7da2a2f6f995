package repository

import (
	"context"
	"strings"

	"github.com/sahilo5/delval-report-management/internal/dto"
	"github.com/sahilo5/delval-report-management/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PageSize is the fixed dashboard page size.
const PageSize = 20

// sortColumns whitelists the sort keys accepted from the list query; anything
// else falls back to created_at.
var sortColumns = map[string]string{
	"created_at":     "created_at",
	"order_no":       "order_no",
	"sales_order_no": "sales_order_no",
	"customer":       "customer",
	"item_code":      "item_code",
	"order_status":   "order_status",
	"creation_date":  "creation_date",
}

// ClampPage normalizes a requested page against the row count: out-of-range
// pages land on the first/last page instead of erroring.
func ClampPage(page int, total int64) (clamped, pages int) {
	pages = int((total + PageSize - 1) / PageSize)
	if page < 1 {
		page = 1
	}
	if pages > 0 && page > pages {
		page = pages
	}
	return page, pages
}

type OrderRepository interface {
	// CreateWithUnits persists the order and its unit fan-out in one
	// transaction so no reader ever sees the order without its units.
	CreateWithUnits(ctx context.Context, o *model.Order, u25 []model.Unit25, u21 []model.Unit21) error
	FindByOrderNo(ctx context.Context, orderNo string) (*model.Order, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Order, error)
	ExistsByOrderNo(ctx context.Context, orderNo string) (bool, error)
	List(ctx context.Context, filter dto.OrderFilter) ([]model.Order, int64, error)
	ListBySeries(ctx context.Context, series ...string) ([]model.Order, error)
	Count(ctx context.Context) (int64, error)
	Update(ctx context.Context, o *model.Order) error
}

type orderRepo struct{ db *gorm.DB }

func NewOrderRepository(db *gorm.DB) OrderRepository { return &orderRepo{db: db} }

func (r *orderRepo) CreateWithUnits(ctx context.Context, o *model.Order, u25 []model.Unit25, u21 []model.Unit21) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(o).Error; err != nil {
			return err
		}
		for i := range u25 {
			u25[i].OrderID = o.ID
		}
		for i := range u21 {
			u21[i].OrderID = o.ID
		}
		if len(u25) > 0 {
			if err := tx.Create(&u25).Error; err != nil {
				return err
			}
		}
		if len(u21) > 0 {
			if err := tx.Create(&u21).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *orderRepo) FindByOrderNo(ctx context.Context, orderNo string) (*model.Order, error) {
	var o model.Order
	err := r.db.WithContext(ctx).Where("order_no = ?", orderNo).First(&o).Error
	return &o, err
}

func (r *orderRepo) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Order, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var orders []model.Order
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&orders).Error
	return orders, err
}

func (r *orderRepo) ExistsByOrderNo(ctx context.Context, orderNo string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Order{}).Where("order_no = ?", orderNo).Count(&count).Error
	return count > 0, err
}

func (r *orderRepo) List(ctx context.Context, filter dto.OrderFilter) ([]model.Order, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.Order{})

	if filter.Search != "" {
		needle := "%" + filter.Search + "%"
		q = q.Where(
			"order_no ILIKE ? OR sales_order_no ILIKE ? OR customer ILIKE ? OR item_code ILIKE ?",
			needle, needle, needle, needle,
		)
	}
	if filter.Status != "" {
		q = q.Where("order_status = ?", filter.Status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	sort := filter.Sort
	if sort == "" {
		sort = "-created_at"
	}
	dir := "ASC"
	if strings.HasPrefix(sort, "-") {
		sort = strings.TrimPrefix(sort, "-")
		dir = "DESC"
	}
	column, ok := sortColumns[sort]
	if !ok {
		column, dir = "created_at", "DESC"
	}

	page, _ := ClampPage(filter.Page, total)

	var orders []model.Order
	err := q.Order(column + " " + dir).
		Limit(PageSize).
		Offset((page - 1) * PageSize).
		Find(&orders).Error
	return orders, total, err
}

func (r *orderRepo) ListBySeries(ctx context.Context, series ...string) ([]model.Order, error) {
	var orders []model.Order
	err := r.db.WithContext(ctx).Where("series IN ?", series).Find(&orders).Error
	return orders, err
}

func (r *orderRepo) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Order{}).Count(&count).Error
	return count, err
}

func (r *orderRepo) Update(ctx context.Context, o *model.Order) error {
	return r.db.WithContext(ctx).Save(o).Error
}
