package model

import (
	"time"

	"github.com/google/uuid"
)

// Unit assembler statuses. pending → completed is the only transition and it
// is one-directional; in_progress still appears on rows written before the
// two-state simplification and is treated as "not completed".
const (
	UnitPending    = "pending"
	UnitInProgress = "in_progress"
	UnitCompleted  = "completed"
)

// Editable field names per series, in report column order. The completion
// gate requires every field in the set to be non-empty.
var (
	Fields25 = []string{
		"housing_heat_no",
		"yoke_heat_no",
		"top_cover_heat_no",
		"da_side_adaptor_plate_heat_no",
		"spring_side_adaptor_heat_no",
		"da_side_end_plate_heat_no",
		"spring_side_end_plate_heat_no",
	}
	Fields21 = []string{
		"body",
		"end_cap_right",
		"end_cap_left",
		"pinion",
	}
)

// FieldsForSeries returns the editable field set of a series tag.
func FieldsForSeries(series string) []string {
	if series == Series21 {
		return Fields21
	}
	return Fields25
}

// Unit25 is one serialized actuator of a series "25" order. Traceability is
// captured as seven heat numbers, one per machined component.
type Unit25 struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OrderID         uuid.UUID  `gorm:"type:uuid;index;not null"`
	SerialNo        string     `gorm:"uniqueIndex;not null"`
	AssemblerStatus string     `gorm:"type:varchar(20);not null;default:'pending'"`
	AssemblerID     *uuid.UUID `gorm:"type:uuid"`
	AssemblerName   string

	HousingHeatNo            string
	YokeHeatNo               string
	TopCoverHeatNo           string
	DASideAdaptorPlateHeatNo string `gorm:"column:da_side_adaptor_plate_heat_no"`
	SpringSideAdaptorHeatNo  string
	DASideEndPlateHeatNo     string `gorm:"column:da_side_end_plate_heat_no"`
	SpringSideEndPlateHeatNo string

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Unit25) TableName() string { return "units_25" }

// Unit21 is one serialized actuator of a series "21" order, tracked by four
// component identifiers instead of heat numbers.
type Unit21 struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OrderID         uuid.UUID  `gorm:"type:uuid;index;not null"`
	SerialNo        string     `gorm:"uniqueIndex;not null"`
	AssemblerStatus string     `gorm:"type:varchar(20);not null;default:'pending'"`
	AssemblerID     *uuid.UUID `gorm:"type:uuid"`
	AssemblerName   string

	Body        string
	EndCapRight string
	EndCapLeft  string
	Pinion      string

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Unit21) TableName() string { return "units_21" }

// fieldRefs returns pointers to the editable fields keyed by canonical name.
// Dispatch is always on the owning order's series tag, never on column
// presence, so each variant enumerates its own set.
func (u *Unit25) fieldRefs() map[string]*string {
	return map[string]*string{
		"housing_heat_no":               &u.HousingHeatNo,
		"yoke_heat_no":                  &u.YokeHeatNo,
		"top_cover_heat_no":             &u.TopCoverHeatNo,
		"da_side_adaptor_plate_heat_no": &u.DASideAdaptorPlateHeatNo,
		"spring_side_adaptor_heat_no":   &u.SpringSideAdaptorHeatNo,
		"da_side_end_plate_heat_no":     &u.DASideEndPlateHeatNo,
		"spring_side_end_plate_heat_no": &u.SpringSideEndPlateHeatNo,
	}
}

func (u *Unit21) fieldRefs() map[string]*string {
	return map[string]*string{
		"body":          &u.Body,
		"end_cap_right": &u.EndCapRight,
		"end_cap_left":  &u.EndCapLeft,
		"pinion":        &u.Pinion,
	}
}

// ApplyFields replaces the whole editable field set from values: unknown keys
// are ignored, missing keys are written as empty string. This is a full
// replace, not a partial patch.
func (u *Unit25) ApplyFields(values map[string]string) { applyFields(u.fieldRefs(), values) }
func (u *Unit21) ApplyFields(values map[string]string) { applyFields(u.fieldRefs(), values) }

func applyFields(refs map[string]*string, values map[string]string) {
	for name, ref := range refs {
		*ref = values[name]
	}
}

// MissingFields lists required fields that are still empty, in field order.
func (u *Unit25) MissingFields() []string { return missingFields(u.fieldRefs(), Fields25) }
func (u *Unit21) MissingFields() []string { return missingFields(u.fieldRefs(), Fields21) }

func missingFields(refs map[string]*string, order []string) []string {
	var missing []string
	for _, name := range order {
		if *refs[name] == "" {
			missing = append(missing, name)
		}
	}
	return missing
}

// FieldValues returns the editable fields keyed by canonical name.
func (u *Unit25) FieldValues() map[string]string { return fieldValues(u.fieldRefs()) }
func (u *Unit21) FieldValues() map[string]string { return fieldValues(u.fieldRefs()) }

func fieldValues(refs map[string]*string) map[string]string {
	values := make(map[string]string, len(refs))
	for name, ref := range refs {
		values[name] = *ref
	}
	return values
}
