package repository

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/nationsapi/nations-service/internal/domain"
	"github.com/nationsapi/nations-service/internal/query"
)

// NationsRepository reads the nations dataset. List methods run a composed,
// already validated query and return an empty slice when nothing matches.
type NationsRepository interface {
	ListCountries(ctx context.Context, q query.ComposedQuery) ([]domain.CountryEntry, error)
	ListMaxGDPPerCapita(ctx context.Context, q query.ComposedQuery) ([]domain.MaxGDPPerCapitaEntry, error)
	ListStats(ctx context.Context, q query.ComposedQuery) ([]domain.StatsEntry, error)
	CountryExists(ctx context.Context, name string) (bool, error)
	LanguagesOfCountry(ctx context.Context, name string) ([]string, error)
}

const (
	countriesBase = `
        SELECT countries.name AS name, countries.area AS area, countries.country_code2 AS country_code2
        FROM countries`

	maxGDPPerCapitaBase = `
        SELECT countries.name AS name, countries.country_code3 AS country_code,
               COALESCE(MAX(country_stats.gdp / NULLIF(country_stats.population, 0)), 0) AS max_gdp_per_capita
        FROM countries
        INNER JOIN country_stats ON countries.country_id = country_stats.country_id`
	maxGDPPerCapitaGroupBy = "countries.country_id, countries.name, countries.country_code3"

	statsBase = `
        SELECT continents.name AS continent_name, regions.name AS region_name, countries.name AS country_name,
               country_stats.year AS year, country_stats.population AS population, country_stats.gdp AS gdp
        FROM continents
        INNER JOIN regions ON continents.continent_id = regions.continent_id
        INNER JOIN countries ON regions.region_id = countries.region_id
        INNER JOIN country_stats ON countries.country_id = country_stats.country_id`
)

type nationsRepository struct {
	db Querier
}

// NewNationsRepository returns a Postgres-backed implementation.
func NewNationsRepository(db Querier) NationsRepository {
	return &nationsRepository{db: db}
}

func (r *nationsRepository) ListCountries(ctx context.Context, q query.ComposedQuery) ([]domain.CountryEntry, error) {
	sql, args := q.Render(countriesBase, "")
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, dataLayer("list countries", err)
	}
	defer rows.Close()

	result := []domain.CountryEntry{}
	for rows.Next() {
		var entry domain.CountryEntry
		if err := rows.Scan(&entry.Name, &entry.Area, &entry.CountryCode); err != nil {
			return nil, dataLayer("scan country", err)
		}
		result = append(result, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, dataLayer("list countries", err)
	}
	return result, nil
}

func (r *nationsRepository) ListMaxGDPPerCapita(ctx context.Context, q query.ComposedQuery) ([]domain.MaxGDPPerCapitaEntry, error) {
	sql, args := q.Render(maxGDPPerCapitaBase, maxGDPPerCapitaGroupBy)
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, dataLayer("list max gdp per capita", err)
	}
	defer rows.Close()

	result := []domain.MaxGDPPerCapitaEntry{}
	for rows.Next() {
		var entry domain.MaxGDPPerCapitaEntry
		if err := rows.Scan(&entry.Name, &entry.CountryCode, &entry.MaxGDPPerCapita); err != nil {
			return nil, dataLayer("scan max gdp per capita", err)
		}
		result = append(result, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, dataLayer("list max gdp per capita", err)
	}
	return result, nil
}

func (r *nationsRepository) ListStats(ctx context.Context, q query.ComposedQuery) ([]domain.StatsEntry, error) {
	sql, args := q.Render(statsBase, "")
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, dataLayer("list stats", err)
	}
	defer rows.Close()

	result := []domain.StatsEntry{}
	for rows.Next() {
		var entry domain.StatsEntry
		if err := rows.Scan(
			&entry.ContinentName,
			&entry.RegionName,
			&entry.CountryName,
			&entry.Year,
			&entry.Population,
			&entry.GDP,
		); err != nil {
			return nil, dataLayer("scan stats", err)
		}
		result = append(result, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, dataLayer("list stats", err)
	}
	return result, nil
}

func (r *nationsRepository) CountryExists(ctx context.Context, name string) (bool, error) {
	const q = `SELECT EXISTS (SELECT 1 FROM countries WHERE name=$1)`
	var exists bool
	if err := r.db.QueryRow(ctx, q, name).Scan(&exists); err != nil {
		return false, dataLayer("country exists", err)
	}
	return exists, nil
}

func (r *nationsRepository) LanguagesOfCountry(ctx context.Context, name string) ([]string, error) {
	const q = `
        SELECT languages.language
        FROM languages
        INNER JOIN country_languages ON languages.language_id = country_languages.language_id
        INNER JOIN countries ON country_languages.country_id = countries.country_id
        WHERE countries.name=$1
        ORDER BY languages.language`
	rows, err := r.db.Query(ctx, q, name)
	if err != nil {
		return nil, dataLayer("languages of country", err)
	}
	languages, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, dataLayer("scan languages", err)
	}
	if languages == nil {
		languages = []string{}
	}
	return languages, nil
}
