// Package query validates listing parameters and composes parameterized SQL
// for them. Field names reach SQL only after whitelist validation; filter
// values are always bound.
package query

import "fmt"

// SortOrder is the direction of the ORDER BY clause.
type SortOrder string

const (
	ASC  SortOrder = "ASC"
	DESC SortOrder = "DESC"
)

// ParseSortOrder accepts exactly "ASC" or "DESC".
func ParseSortOrder(raw string) (SortOrder, error) {
	switch SortOrder(raw) {
	case ASC, DESC:
		return SortOrder(raw), nil
	}
	return "", invalid(nil, fmt.Sprintf("sort_order %q must be one of [ASC, DESC].", raw), map[string]any{
		"sort_order": raw,
	})
}

// Filter keys accepted by listing endpoints.
const (
	FilterYearFrom = "year_from"
	FilterYearTo   = "year_to"
	FilterRegion   = "region"
)

// Listing defaults.
const (
	DefaultPage     = 0
	DefaultPageSize = 5
)

// Params are the raw-but-typed listing parameters of one request.
type Params struct {
	Page      int
	PageSize  int
	SortField string
	SortOrder SortOrder
	Filters   map[string]string
}

// WhitelistPolicy bounds what one endpoint accepts. Policies are built once at
// startup and must not be modified afterwards.
type WhitelistPolicy struct {
	Endpoint     string
	Fields       []string
	DefaultField string
	FilterKeys   []string
}

// AllowsFilter reports whether key is one of the endpoint's filters.
func (p WhitelistPolicy) AllowsFilter(key string) bool {
	for _, k := range p.FilterKeys {
		if k == key {
			return true
		}
	}
	return false
}

// Policies groups the per-endpoint whitelists.
type Policies struct {
	Countries       WhitelistPolicy
	MaxGDPPerCapita WhitelistPolicy
	Stats           WhitelistPolicy
}

// DefaultPolicies returns the whitelists of the nations endpoints.
func DefaultPolicies() Policies {
	return Policies{
		Countries: WhitelistPolicy{
			Endpoint:     "countries",
			Fields:       []string{"name", "area", "country_code2"},
			DefaultField: "name",
		},
		MaxGDPPerCapita: WhitelistPolicy{
			Endpoint:     "maxgdppercapita",
			Fields:       []string{"name"},
			DefaultField: "name",
		},
		Stats: WhitelistPolicy{
			Endpoint:     "stats",
			Fields:       []string{"continent_name", "region_name", "country_name", "year", "population", "gdp"},
			DefaultField: "country_name",
			FilterKeys:   []string{FilterYearFrom, FilterYearTo, FilterRegion},
		},
	}
}
