package components

import (
	"fmt"
	"html/template"
	"math"
	"net/url"
	"strings"

	"github.com/docker/go-units"
)

var volumeUnits = []string{"", "K", "M", "B", "T"}

// Funcs returns the template functions the partials and views use.
func Funcs() template.FuncMap {
	return template.FuncMap{
		"price":       Price,
		"percent":     Percent,
		"volume":      Volume,
		"fundingRate": FundingRate,
		"changeClass": ChangeClass,
		"active":      Active,
		"sortHref":    SortHref,
		"stylesheet":  func() string { return Stylesheet },
	}
}

// Price formats a quote price. Sub-unit prices keep up to eight decimals.
func Price(v float64) string {
	switch a := math.Abs(v); {
	case a >= 100:
		return fmt.Sprintf("%.2f", v)
	case a >= 1:
		return fmt.Sprintf("%.4f", v)
	case a == 0:
		return "0"
	}
	s := strings.TrimRight(fmt.Sprintf("%.8f", v), "0")
	return strings.TrimSuffix(s, ".")
}

// Percent formats a signed percentage with two decimals.
func Percent(v float64) string {
	return fmt.Sprintf("%+.2f%%", v)
}

// Volume formats a quote volume or open interest with decimal unit suffixes.
func Volume(v float64) string {
	if v < 0 {
		return "-" + units.CustomSize("%.4g%s", -v, 1000.0, volumeUnits)
	}
	return units.CustomSize("%.4g%s", v, 1000.0, volumeUnits)
}

// FundingRate formats a funding rate fraction as a percentage. It accepts
// float64 or *float64; a nil pointer renders as n/a.
func FundingRate(v any) string {
	switch r := v.(type) {
	case float64:
		return fmt.Sprintf("%.4f%%", r*100)
	case *float64:
		if r == nil {
			return "n/a"
		}
		return fmt.Sprintf("%.4f%%", *r*100)
	default:
		return "n/a"
	}
}

// ChangeClass returns the CSS class for a signed change.
func ChangeClass(v float64) string {
	switch {
	case v > 0:
		return "up"
	case v < 0:
		return "down"
	default:
		return "flat"
	}
}

// Active returns "active" when path is the current path.
func Active(current, path string) string {
	if current == path {
		return "active"
	}
	return ""
}

// SortHref builds a link that sorts the current view by key. Selecting the
// key already sorted descending flips it to ascending.
func SortHref(path string, query map[string]string, key string) string {
	v := url.Values{}
	for k, val := range query {
		v.Set(k, val)
	}

	order := "desc"
	if query["sort"] == key && query["order"] != "asc" {
		order = "asc"
	}
	v.Set("sort", key)
	v.Set("order", order)

	return path + "?" + v.Encode()
}
