package dashboard

// Summary is the aggregate payload of the dashboard endpoint. Counters the
// caller may not see are omitted by the backend and stay nil.
type Summary struct {
	MyParts               *int           `json:"myParts,omitempty"`
	OtherParts            *int           `json:"otherParts,omitempty"`
	PendingInvestigations *int           `json:"pendingInvestigations,omitempty"`
	QualityStatusCounts   map[string]int `json:"qualityStatusCounts,omitempty"`
	AssetsPerCountry      map[string]int `json:"assetsPerCountry,omitempty"`
}

// KPI is one headline number. Value is nil when the backend did not report it.
type KPI struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Value *int   `json:"value"`
}

// StatusSlice is one bar of the quality-status distribution
type StatusSlice struct {
	Status  string  `json:"status"`
	Count   int     `json:"count"`
	Percent float64 `json:"percent"`
}

// CountrySlice is one entry of the production-country series
type CountrySlice struct {
	Country string `json:"country"`
	Count   int    `json:"count"`
}

// Dashboard is the display-ready dashboard
type Dashboard struct {
	KPIs      []KPI          `json:"kpis"`
	Statuses  []StatusSlice  `json:"statuses"`
	Countries []CountrySlice `json:"countries"`
	Total     int            `json:"total"`
}
