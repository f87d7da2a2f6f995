package dto

import "time"

// UnitResponse is the series-agnostic view of one serialized unit. Fields
// holds the series-specific editable values keyed by canonical name.
type UnitResponse struct {
	ID              string            `json:"id"`
	SerialNo        string            `json:"serial_no"`
	Series          string            `json:"series"`
	AssemblerStatus string            `json:"assembler_status"`
	AssemblerName   string            `json:"assembler_name"`
	Fields          map[string]string `json:"fields"`
	UpdatedAt       time.Time         `json:"updated_at"`
}

// SaveFieldsRequest carries the full editable field set of one unit. Keys not
// belonging to the unit's series are ignored; missing keys clear the field.
type SaveFieldsRequest struct {
	Fields map[string]string `json:"fields"`
}
