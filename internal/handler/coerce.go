package handler

import (
	"encoding/json"
	"strconv"

	"autoparts-service/internal/model"

	"github.com/labstack/echo/v4"
)

// Form fields arrive as strings and are coerced here. Bad input on optional
// numeric fields falls back to the zero value rather than failing the
// request; price is the one field whose coercion must succeed.

func formFloat(c echo.Context, name string) (float64, bool) {
	raw := c.FormValue(name)
	if raw == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func formFloatPtr(c echo.Context, name string) *float64 {
	if v, ok := formFloat(c, name); ok {
		return &v
	}
	return nil
}

func formInt(c echo.Context, name string) int {
	v, err := strconv.Atoi(c.FormValue(name))
	if err != nil {
		return 0
	}
	return v
}

func formIntPtr(c echo.Context, name string) *int {
	raw := c.FormValue(name)
	if raw == "" {
		return nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil
	}
	return &v
}

// formBool is true only for the literal string "true".
func formBool(c echo.Context, name string) bool {
	return c.FormValue(name) == "true"
}

// formStringList decodes a JSON-encoded string array, returning an empty
// list on absence or malformed input.
func formStringList(c echo.Context, name string) []string {
	raw := c.FormValue(name)
	if raw == "" {
		return []string{}
	}
	var list []string
	if err := json.Unmarshal([]byte(raw), &list); err != nil {
		return []string{}
	}
	return list
}

// formSpecifications decodes the JSON-encoded specifications sub-record,
// returning an empty record on absence or malformed input. A separate
// compatibility field, when present, overrides the nested list.
func formSpecifications(c echo.Context) model.Specifications {
	var specs model.Specifications
	if raw := c.FormValue("specifications"); raw != "" {
		_ = json.Unmarshal([]byte(raw), &specs)
	}
	if raw := c.FormValue("compatibility"); raw != "" {
		var list []string
		if err := json.Unmarshal([]byte(raw), &list); err == nil {
			specs.Compatibility = list
		}
	}
	return specs
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
