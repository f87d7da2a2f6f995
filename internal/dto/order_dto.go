package dto

import "time"

// OrderFilter carries the list query parameters. Sort uses the descending
// prefix convention ("-created_at" = newest first).
type OrderFilter struct {
	Search string `form:"search"`
	Status string `form:"status"`
	Sort   string `form:"sort"`
	Page   int    `form:"page"`
}

type OrderResponse struct {
	ID           string    `json:"id"`
	SalesOrderNo string    `json:"sales_order_no"`
	LineItem     string    `json:"line_item"`
	OrderNo      string    `json:"order_no"`
	Customer     string    `json:"customer"`
	Series       string    `json:"series"`
	Type         string    `json:"type"`
	Size         string    `json:"size"`
	CylinderSize string    `json:"cylinder_size"`
	SpringSize   string    `json:"spring_size"`
	MOC          string    `json:"moc"`
	OrderQty     string    `json:"order_qty"`
	OrderStatus  string    `json:"order_status"`
	ItemCode     string    `json:"item_code"`
	CreationDate string    `json:"creation_date"`
	Branch       string    `json:"branch"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// OrderProgress is an order decorated with its unit completion counts and the
// combined material description shown on dashboards.
type OrderProgress struct {
	OrderResponse
	TotalQty     int    `json:"total_qty"`
	CompletedQty int    `json:"completed_qty"`
	PendingQty   int    `json:"pending_qty"`
	Material     string `json:"material"`
}

type OrderListResponse struct {
	Items    []OrderResponse `json:"items"`
	Total    int64           `json:"total"`
	Page     int             `json:"page"`
	Pages    int             `json:"pages"`
	PageSize int             `json:"page_size"`
}

// IntakeResponse reports what intake created.
type IntakeResponse struct {
	Order        OrderResponse `json:"order"`
	UnitsCreated int           `json:"units_created"`
}

// DashboardSummary is the assembler dashboard payload.
type DashboardSummary struct {
	TotalOrders      int64           `json:"total_orders"`
	OrdersInProgress []OrderProgress `json:"orders_in_progress"`
	CompletedOrders  []OrderProgress `json:"completed_orders"`
	MyOrders         []OrderResponse `json:"my_orders"`
}

// OrderDetailResponse is the per-order view: the order plus its units ordered
// by the numeric serial suffix.
type OrderDetailResponse struct {
	Order OrderResponse  `json:"order"`
	Units []UnitResponse `json:"units"`
}
