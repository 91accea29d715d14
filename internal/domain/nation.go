package domain

// CountryEntry is one row of the countries listing.
type CountryEntry struct {
	Name        string
	Area        float64
	CountryCode string
}

// MaxGDPPerCapitaEntry is a country with its best recorded GDP per capita.
type MaxGDPPerCapitaEntry struct {
	Name            string
	CountryCode     string
	MaxGDPPerCapita float64
}

// StatsEntry is one yearly statistics row joined with its geography.
type StatsEntry struct {
	ContinentName string
	RegionName    string
	CountryName   string
	Year          int
	Population    int64
	GDP           float64
}
