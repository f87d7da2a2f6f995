package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNextStatus(t *testing.T) {
	assert.Equal(t, StatusUnderTesting, NextStatus(StatusUnderAssembly))
	assert.Equal(t, StatusFinishedGoods, NextStatus(StatusUnderQA))
	assert.Equal(t, "", NextStatus(StatusFinishedGoods), "terminal status has no successor")
	assert.Equal(t, "", NextStatus("no_such_status"))
}

func TestOrderQuantity(t *testing.T) {
	assert.Equal(t, 5, (&Order{OrderQty: "5"}).Quantity())
	assert.Equal(t, 1, (&Order{OrderQty: ""}).Quantity())
	assert.Equal(t, 1, (&Order{OrderQty: "several"}).Quantity())
	assert.Equal(t, 1, (&Order{OrderQty: "0"}).Quantity())
}

func TestApplyFields_FullReplace(t *testing.T) {
	u := Unit25{HousingHeatNo: "H-1", YokeHeatNo: "Y-1"}
	u.ApplyFields(map[string]string{
		"yoke_heat_no": "Y-2",
		"unknown_key":  "dropped",
	})
	assert.Equal(t, "Y-2", u.YokeHeatNo)
	assert.Empty(t, u.HousingHeatNo, "keys absent from the payload clear their field")
}

func TestMissingFields_InColumnOrder(t *testing.T) {
	u := Unit21{Body: "B-1", Pinion: "P-1"}
	assert.Equal(t, []string{"end_cap_right", "end_cap_left"}, u.MissingFields())

	u.EndCapRight, u.EndCapLeft = "R-1", "L-1"
	assert.Empty(t, u.MissingFields())
}

func TestFieldValues_RoundTrip(t *testing.T) {
	u := Unit25{HousingHeatNo: "H-1"}
	values := u.FieldValues()
	assert.Equal(t, "H-1", values["housing_heat_no"])
	assert.Len(t, values, len(Fields25))
}
