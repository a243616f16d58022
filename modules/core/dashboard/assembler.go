package dashboard

import (
	"math"
	"sort"
	"strings"

	"parttrack/modules/core/assets"
)

// statusOrder is the fixed bar order of the distribution chart
var statusOrder = []string{
	string(assets.StatusOK),
	string(assets.StatusNOK),
	string(assets.StatusFlag),
	string(assets.StatusMissing),
}

// AssembleDashboard turns a summary into headline numbers and chart series
func AssembleDashboard(s Summary) Dashboard {
	d := Dashboard{
		KPIs: []KPI{
			{Key: "myParts", Label: "My parts", Value: copyInt(s.MyParts)},
			{Key: "otherParts", Label: "Other manufacturers' parts", Value: copyInt(s.OtherParts)},
			{Key: "pendingInvestigations", Label: "Pending investigations", Value: copyInt(s.PendingInvestigations)},
		},
		Statuses:  make([]StatusSlice, 0, len(statusOrder)),
		Countries: AssembleCountries(s.AssetsPerCountry),
	}

	counts := make(map[string]int, len(s.QualityStatusCounts))
	for status, n := range s.QualityStatusCounts {
		if n > 0 {
			counts[strings.ToUpper(status)] += n
		}
	}
	for _, status := range statusOrder {
		d.Total += counts[status]
	}
	for _, status := range statusOrder {
		d.Statuses = append(d.Statuses, StatusSlice{
			Status:  status,
			Count:   counts[status],
			Percent: Percent(counts[status], d.Total),
		})
	}
	return d
}

// AssembleCountries sorts the per-country series by count descending, then
// by country code. Non-positive counts are dropped.
func AssembleCountries(perCountry map[string]int) []CountrySlice {
	out := make([]CountrySlice, 0, len(perCountry))
	for country, n := range perCountry {
		if n <= 0 {
			continue
		}
		out = append(out, CountrySlice{Country: country, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Country < out[j].Country
	})
	return out
}

// Percent returns part of total as a percentage rounded to one decimal
func Percent(part, total int) float64 {
	if total <= 0 {
		return 0
	}
	return math.Round(float64(part)*1000/float64(total)) / 10
}

func copyInt(v *int) *int {
	if v == nil {
		return nil
	}
	n := *v
	return &n
}
