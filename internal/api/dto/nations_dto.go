package dto

// ListMeta describes the page a listing response holds.
type ListMeta struct {
	Page        int    `json:"page"`
	ItemsInPage int    `json:"items_in_page"`
	SortByField string `json:"sort_by_field"`
	SortOrder   string `json:"sort_order"`
}

// CountryResponse is one countries row.
type CountryResponse struct {
	Name        string  `json:"name"`
	Area        float64 `json:"area"`
	CountryCode string  `json:"country_code"`
}

// MaxGDPPerCapitaResponse is one maxgdppercapita row.
type MaxGDPPerCapitaResponse struct {
	Name            string  `json:"name"`
	CountryCode     string  `json:"country_code"`
	MaxGDPPerCapita float64 `json:"max_gdp_per_capita"`
}

// StatsResponse is one stats row.
type StatsResponse struct {
	ContinentName string  `json:"continent_name"`
	RegionName    string  `json:"region_name"`
	CountryName   string  `json:"country_name"`
	Year          int     `json:"year"`
	Population    int64   `json:"population"`
	GDP           float64 `json:"gdp"`
}

// LanguagesResponse lists the languages of one country.
type LanguagesResponse struct {
	Country   string   `json:"country"`
	Languages []string `json:"languages"`
}
