package query

import (
	"errors"
	"math"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	apperrors "github.com/nationsapi/nations-service/pkg/util"
)

func requireValidation(t *testing.T, err error) *apperrors.DomainError {
	t.Helper()
	require.Error(t, err)
	de := apperrors.ToDomainError(err)
	require.Equal(t, http.StatusBadRequest, de.HTTPStatus)
	require.Equal(t, apperrors.CodeValidation, de.Code)
	return de
}

func TestValidateSortField(t *testing.T) {
	whitelist := DefaultPolicies().Countries.Fields

	assert.NoError(t, ValidateSortField("area", whitelist))
	assert.NoError(t, ValidateSortField("  name ", whitelist))

	err := ValidateSortField("password", whitelist)
	de := requireValidation(t, err)
	assert.Equal(t, "Invalid sort by field: password specified. Acceptable fields are: [name, area, country_code2].", de.Message)

	var sortErr *InvalidSortFieldError
	require.True(t, errors.As(err, &sortErr))
	assert.Equal(t, "password", sortErr.Field)
	assert.Equal(t, whitelist, sortErr.Acceptable)

	t.Run("case sensitive", func(t *testing.T) {
		requireValidation(t, ValidateSortField("Name", whitelist))
	})

	t.Run("injection attempt", func(t *testing.T) {
		requireValidation(t, ValidateSortField("name; DROP TABLE users", whitelist))
	})
}

func TestValidatePagination(t *testing.T) {
	assert.NoError(t, ValidatePagination(0, 1))
	assert.NoError(t, ValidatePagination(1000, 5))

	de := requireValidation(t, ValidatePagination(-1, 5))
	assert.Equal(t, "page must be greater than or equal to 0", de.Message)

	de = requireValidation(t, ValidatePagination(0, 0))
	assert.Equal(t, "items_in_page must be greater than or equal to 1", de.Message)
}

func TestValidateYearFilter(t *testing.T) {
	assert.NoError(t, ValidateYearFilter("1990"))

	for _, bad := range []string{"90", "abcd", "19900", "199a", " 1990", ""} {
		err := ValidateYearFilter(bad)
		requireValidation(t, err)
		assert.ErrorIs(t, err, ErrBadDateFormat, bad)
	}
}

func TestParseYear(t *testing.T) {
	y, err := ParseYear("2004")
	require.NoError(t, err)
	assert.Equal(t, 2004, y.Year())
	assert.Equal(t, 1, int(y.Month()))
	assert.Equal(t, 1, y.Day())
}

func TestValidateRegionFilter(t *testing.T) {
	assert.NoError(t, ValidateRegionFilter("Western Europe"))
	requireValidation(t, ValidateRegionFilter("   "))
	requireValidation(t, ValidateRegionFilter(""))
}

func TestParseSortOrder(t *testing.T) {
	o, err := ParseSortOrder("DESC")
	require.NoError(t, err)
	assert.Equal(t, DESC, o)

	_, err = ParseSortOrder("desc")
	requireValidation(t, err)
}

func TestBuildFilterPredicate(t *testing.T) {
	t.Run("no filters matches everything", func(t *testing.T) {
		p := BuildFilterPredicate(nil)
		assert.Equal(t, "1=1", p.SQL)
		assert.Empty(t, p.Args)
	})

	t.Run("year range", func(t *testing.T) {
		p := BuildFilterPredicate(map[string]string{FilterYearTo: "2000", FilterYearFrom: "1990"})
		assert.Equal(t, "1=1 AND country_stats.year >= $1 AND country_stats.year <= $2", p.SQL)
		assert.Equal(t, []any{1990, 2000}, p.Args)
	})

	t.Run("region is bound not inlined", func(t *testing.T) {
		p := BuildFilterPredicate(map[string]string{FilterRegion: "Europe' OR '1'='1"})
		assert.Equal(t, "1=1 AND regions.name = $1", p.SQL)
		assert.Equal(t, []any{"Europe' OR '1'='1"}, p.Args)
	})
}

func TestBuildPageWindow(t *testing.T) {
	limit, offset := BuildPageWindow(2, 5)
	assert.Equal(t, 5, limit)
	assert.Equal(t, 10, offset)

	limit, offset = BuildPageWindow(0, 1)
	assert.Equal(t, 1, limit)
	assert.Equal(t, 0, offset)

	t.Run("offset saturates instead of wrapping", func(t *testing.T) {
		limit, offset := BuildPageWindow(math.MaxInt/5+1, 5)
		assert.Equal(t, 5, limit)
		assert.Equal(t, math.MaxInt, offset)

		limit, offset = BuildPageWindow(math.MaxInt, math.MaxInt)
		assert.Equal(t, math.MaxInt, limit)
		assert.Equal(t, math.MaxInt, offset)

		_, offset = BuildPageWindow(math.MaxInt/5, 5)
		assert.Equal(t, math.MaxInt/5*5, offset)
	})
}

func TestBuilderCompose(t *testing.T) {
	policies := DefaultPolicies()
	b := NewBuilder()

	t.Run("defaults", func(t *testing.T) {
		q, err := b.Compose(Params{Page: 0, PageSize: 5}, policies.Countries)
		require.NoError(t, err)
		assert.Equal(t, OrderClause{Field: "name", Order: ASC}, q.OrderBy)
		assert.Equal(t, 5, q.Limit)
		assert.Equal(t, 0, q.Offset)
	})

	t.Run("stats default field", func(t *testing.T) {
		q, err := b.Compose(Params{PageSize: 5}, policies.Stats)
		require.NoError(t, err)
		assert.Equal(t, "country_name", q.OrderBy.Field)
	})

	t.Run("full stats query", func(t *testing.T) {
		q, err := b.Compose(Params{
			Page:      3,
			PageSize:  10,
			SortField: "gdp",
			SortOrder: DESC,
			Filters:   map[string]string{FilterYearFrom: "1990", FilterRegion: "Caribbean"},
		}, policies.Stats)
		require.NoError(t, err)

		sql, args := q.Render("SELECT gdp FROM country_stats JOIN regions ON true", "")
		assert.Equal(t,
			"SELECT gdp FROM country_stats JOIN regions ON true WHERE 1=1 AND country_stats.year >= $1 AND regions.name = $2 ORDER BY gdp DESC LIMIT $3 OFFSET $4",
			sql)
		assert.Equal(t, []any{1990, "Caribbean", 10, 30}, args)
	})

	t.Run("group by goes before order by", func(t *testing.T) {
		q, err := b.Compose(Params{PageSize: 5}, policies.MaxGDPPerCapita)
		require.NoError(t, err)
		sql, args := q.Render("SELECT name FROM countries", "name")
		assert.Equal(t, "SELECT name FROM countries WHERE 1=1 GROUP BY name ORDER BY name ASC LIMIT $1 OFFSET $2", sql)
		assert.Equal(t, []any{5, 0}, args)
	})

	t.Run("filter not offered by endpoint", func(t *testing.T) {
		_, err := b.Compose(Params{PageSize: 5, Filters: map[string]string{FilterRegion: "Europe"}}, policies.Countries)
		requireValidation(t, err)
	})

	t.Run("first unsupported filter is reported by name order", func(t *testing.T) {
		filters := map[string]string{"zone": "x", "continent": "Asia", "region": "Europe", "month": "01"}
		for i := 0; i < 20; i++ {
			_, err := b.Compose(Params{PageSize: 5, Filters: filters}, policies.Countries)
			de := requireValidation(t, err)
			assert.Equal(t, "unsupported filter: continent", de.Message)
		}
	})

	t.Run("bad year", func(t *testing.T) {
		_, err := b.Compose(Params{PageSize: 5, Filters: map[string]string{FilterYearTo: "20x0"}}, policies.Stats)
		assert.ErrorIs(t, err, ErrBadDateFormat)
	})

	t.Run("bad sort field", func(t *testing.T) {
		_, err := b.Compose(Params{PageSize: 5, SortField: "password"}, policies.MaxGDPPerCapita)
		var sortErr *InvalidSortFieldError
		require.True(t, errors.As(err, &sortErr))
		assert.Equal(t, []string{"name"}, sortErr.Acceptable)
	})

	t.Run("huge page renders a non-negative offset", func(t *testing.T) {
		q, err := b.Compose(Params{Page: math.MaxInt/5 + 1, PageSize: 5}, policies.Countries)
		require.NoError(t, err)
		_, args := q.Render("SELECT name FROM countries", "")
		assert.Equal(t, []any{5, math.MaxInt}, args)
	})

	t.Run("bad pagination", func(t *testing.T) {
		_, err := b.Compose(Params{Page: 0, PageSize: 0}, policies.Countries)
		requireValidation(t, err)
	})
}

func TestLoggedComposer(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	c := LoggedComposer(NewBuilder(), zap.New(core))

	_, err := c.Compose(Params{PageSize: 5}, DefaultPolicies().Countries)
	require.NoError(t, err)
	assert.Equal(t, 1, logs.FilterMessage("Completed the call").Len())

	_, err = c.Compose(Params{PageSize: 5, SortField: "nope"}, DefaultPolicies().Countries)
	require.Error(t, err)
	failed := logs.FilterMessage("Call failed").All()
	require.Len(t, failed, 1)
	assert.Equal(t, "QueryBuilder.Compose", failed[0].ContextMap()["op"])
}
