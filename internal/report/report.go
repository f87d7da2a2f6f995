// Package report renders the heat annexure for one order — the fixed-column
// traceability table handed to the customer alongside the actuators. Two
// output formats exist: a landscape A4 PDF and an auto-printing HTML page.
package report

import (
	"time"

	"github.com/sahilo5/delval-report-management/internal/model"
)

// Series "25" column headers, also used as the fixed PDF grid: series "21"
// rows fill the first four columns and leave the rest blank.
var heatColumns = []string{
	"Housing Heat No", "Yoke Heat No", "Top Cover", "DA Adaptor",
	"Spring Adaptor", "DA End Plate", "Spring End Plate",
}

var componentColumns = []string{"Body", "End Cap Right", "End Cap Left", "Pinion"}

// Row is one unit line of the annexure table.
type Row struct {
	SrNo      int
	SerialNo  string
	Values    []string // series field values in column order
	Status    string
	Assembler string
}

// Data is everything the renderers need for one order's annexure.
type Data struct {
	Company     string
	Order       *model.Order
	Rows        []Row
	GeneratedAt time.Time
}

// FieldColumns returns the series-specific column headers of the order.
func (d *Data) FieldColumns() []string {
	if d.Order.Series == model.Series21 {
		return componentColumns
	}
	return heatColumns
}

// SizeDescription combines size, cylinder size and spring size for the header
// band; a missing spring size renders as "-".
func (d *Data) SizeDescription() string {
	spring := d.Order.SpringSize
	if spring == "" {
		spring = "-"
	}
	return d.Order.Size + ", " + d.Order.CylinderSize + ", " + spring
}
