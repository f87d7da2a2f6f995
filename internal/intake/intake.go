// Package intake normalizes the loosely structured order payloads coming from
// QR scans and manual entry. Scanned payloads spell the same field several
// ways ("order_no", "order no", "orderno"); each canonical field resolves to
// the first non-empty match among its alias list.
package intake

import (
	"strconv"
)

// aliases maps each canonical intake field to its accepted spellings, in
// match-priority order.
var aliases = map[string][]string{
	"order_no":       {"order_no", "order no", "orderno"},
	"sales_order_no": {"sales_order_no", "sales order no", "salesorder"},
	"order_qty":      {"order_qty", "order qty", "qty", "quantity"},
	"line_item":      {"line_item", "line item"},
	"series":         {"series"},
	"type":           {"type"},
	"size":           {"size"},
	"cylinder_size":  {"cylinder_size", "cylinder size"},
	"spring_size":    {"spring_size", "spring size"},
	"moc":            {"moc"},
	"customer":       {"customer"},
	"item_code":      {"item_code", "item code"},
	"creation_date":  {"creation_date", "creation date"},
	"branch":         {"branch"},
}

// Resolve returns the first non-empty value among the aliases of field, or ""
// when no alias matches. Unknown field names also resolve to "".
func Resolve(payload map[string]any, field string) string {
	for _, key := range aliases[field] {
		if v := stringify(payload[key]); v != "" {
			return v
		}
	}
	return ""
}

// stringify renders the JSON value types a scanned payload can carry.
// Quantities in particular arrive either as "3" or as the number 3.
func stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		if t == float64(int64(t)) {
			return strconv.FormatInt(int64(t), 10)
		}
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		return ""
	}
}
