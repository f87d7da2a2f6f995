package model

import (
	"strconv"
	"time"

	"github.com/google/uuid"
)

// Order statuses. An order walks the stage sequence one way; finished_goods
// is terminal.
const (
	StatusPending        = "pending"
	StatusUnderAssembly  = "under_assembly"
	StatusUnderTesting   = "under_testing"
	StatusUnderPainting  = "under_painting"
	StatusUnderFinishing = "under_finishing"
	StatusUnderQA        = "under_qa"
	StatusFinishedGoods  = "finished_goods"
)

// StageSequence is the fixed manufacturing path after intake.
var StageSequence = []string{
	StatusUnderAssembly,
	StatusUnderTesting,
	StatusUnderPainting,
	StatusUnderFinishing,
	StatusUnderQA,
	StatusFinishedGoods,
}

// Series tags. The tag selects which unit table an order fans out into;
// rows from before the series split carry neither tag and are ignored by
// the progress tracker.
const (
	Series21 = "21"
	Series25 = "25"
)

// ValidSeries reports whether s is one of the two supported series tags.
func ValidSeries(s string) bool { return s == Series21 || s == Series25 }

// NextStatus returns the stage after current, or "" when current is
// terminal or not part of the sequence.
func NextStatus(current string) string {
	for i, s := range StageSequence {
		if s == current && i+1 < len(StageSequence) {
			return StageSequence[i+1]
		}
	}
	return ""
}

// Order is one manufacturing work order for a quantity of actuators.
// OrderQty keeps the raw text exactly as received from the intake payload;
// Quantity() parses it for fan-out.
type Order struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SalesOrderNo string    `gorm:"not null"`
	LineItem     string
	OrderNo      string `gorm:"uniqueIndex;not null"`
	Customer     string
	Series       string `gorm:"type:varchar(10);not null"`
	Type         string
	Size         string
	CylinderSize string
	SpringSize   string
	MOC          string `gorm:"column:moc"`
	OrderQty     string `gorm:"not null;default:'1'"`
	OrderStatus  string `gorm:"type:varchar(20);not null;default:'pending'"`
	ItemCode     string
	CreationDate string
	Branch       string
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Units25 []Unit25 `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	Units21 []Unit21 `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// Quantity parses OrderQty. A bad quantity never blocks an order — it only
// affects the unit fan-out, so parse failures fall back to 1.
func (o *Order) Quantity() int {
	q, err := strconv.Atoi(o.OrderQty)
	if err != nil || q < 1 {
		return 1
	}
	return q
}
