// Package country defines the domain entity shared by the refresh pipeline
// and the read-side services.
package country

import (
	"strings"
	"time"
)

// PlaceholderName is stored when an upstream record carries no name at all.
const PlaceholderName = "Unknown"

// Country is one persisted country snapshot. A nil ExchangeRate/EstimatedGDP
// means "unknown"; a zero EstimatedGDP with a nil CurrencyCode means the
// country has no currency. The two cases are distinct and must stay distinct.
type Country struct {
	ID              int64
	Name            string
	NameKey         string
	Capital         *string
	Region          *string
	Population      int64
	CurrencyCode    *string
	ExchangeRate    *float64
	EstimatedGDP    *float64
	FlagURL         *string
	LastRefreshedAt *time.Time
}

// New creates a Country with its name key computed from the display name.
// The key is computed exactly once here, never as a side effect of a
// persistence call.
func New(name string) *Country {
	if name == "" {
		name = PlaceholderName
	}
	return &Country{
		Name:    name,
		NameKey: Key(name),
	}
}

// Key returns the normalized uniqueness/lookup form of a display name.
func Key(name string) string {
	return strings.ToLower(name)
}

// View is the JSON representation served by the API.
type View struct {
	ID              int64    `json:"id"`
	Name            string   `json:"name"`
	Capital         *string  `json:"capital"`
	Region          *string  `json:"region"`
	Population      int64    `json:"population"`
	CurrencyCode    *string  `json:"currency_code"`
	ExchangeRate    *float64 `json:"exchange_rate"`
	EstimatedGDP    *float64 `json:"estimated_gdp"`
	FlagURL         *string  `json:"flag_url"`
	LastRefreshedAt *string  `json:"last_refreshed_at"`
}

// ToView converts the entity to its API representation.
func (c *Country) ToView() View {
	v := View{
		ID:           c.ID,
		Name:         c.Name,
		Capital:      c.Capital,
		Region:       c.Region,
		Population:   c.Population,
		CurrencyCode: c.CurrencyCode,
		ExchangeRate: c.ExchangeRate,
		EstimatedGDP: c.EstimatedGDP,
		FlagURL:      c.FlagURL,
	}
	if c.LastRefreshedAt != nil {
		ts := c.LastRefreshedAt.UTC().Format(time.RFC3339)
		v.LastRefreshedAt = &ts
	}
	return v
}

// Views converts a slice of entities to API representations.
// It always returns a non-nil slice so empty results serialize as [].
func Views(countries []*Country) []View {
	views := make([]View, 0, len(countries))
	for _, c := range countries {
		views = append(views, c.ToView())
	}
	return views
}
