package query

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Columns the stats filters compare against.
const (
	YearColumn   = "country_stats.year"
	RegionColumn = "regions.name"
)

// Predicate is a WHERE expression with $n placeholders numbered from 1.
type Predicate struct {
	SQL  string
	Args []any
}

// OrderClause is a validated ORDER BY target.
type OrderClause struct {
	Field string
	Order SortOrder
}

func (o OrderClause) String() string {
	return o.Field + " " + string(o.Order)
}

// ComposedQuery is everything needed to run one listing query.
type ComposedQuery struct {
	Predicate Predicate
	OrderBy   OrderClause
	Limit     int
	Offset    int
}

// BuildFilterPredicate ANDs the present filters together. With no filters the
// predicate matches every row.
func BuildFilterPredicate(filters map[string]string) Predicate {
	clauses := []string{"1=1"}
	args := []any{}

	if v, ok := filters[FilterYearFrom]; ok {
		args = append(args, yearArg(v))
		clauses = append(clauses, fmt.Sprintf("%s >= $%d", YearColumn, len(args)))
	}
	if v, ok := filters[FilterYearTo]; ok {
		args = append(args, yearArg(v))
		clauses = append(clauses, fmt.Sprintf("%s <= $%d", YearColumn, len(args)))
	}
	if v, ok := filters[FilterRegion]; ok {
		args = append(args, v)
		clauses = append(clauses, fmt.Sprintf("%s = $%d", RegionColumn, len(args)))
	}

	return Predicate{SQL: strings.Join(clauses, " AND "), Args: args}
}

// yearArg binds validated years as integers; anything else is passed through
// and left for the database to reject.
func yearArg(v string) any {
	if n, err := strconv.Atoi(v); err == nil {
		return n
	}
	return v
}

// BuildOrderClause assumes field has already passed ValidateSortField.
func BuildOrderClause(field string, order SortOrder) OrderClause {
	return OrderClause{Field: strings.TrimSpace(field), Order: order}
}

// BuildPageWindow converts a zero-based page into LIMIT and OFFSET. An offset
// that would overflow saturates at math.MaxInt, which selects no rows.
func BuildPageWindow(page, pageSize int) (limit, offset int) {
	if pageSize > 0 && page > math.MaxInt/pageSize {
		return pageSize, math.MaxInt
	}
	return pageSize, page * pageSize
}

// Render appends the WHERE, optional GROUP BY, ORDER BY and paging clauses to
// base and returns the statement with its bound arguments.
func (q ComposedQuery) Render(base, groupBy string) (string, []any) {
	args := append([]any{}, q.Predicate.Args...)

	var sb strings.Builder
	sb.WriteString(strings.TrimSpace(base))
	sb.WriteString(" WHERE ")
	sb.WriteString(q.Predicate.SQL)
	if groupBy != "" {
		sb.WriteString(" GROUP BY ")
		sb.WriteString(groupBy)
	}
	sb.WriteString(" ORDER BY ")
	sb.WriteString(q.OrderBy.String())

	args = append(args, q.Limit)
	fmt.Fprintf(&sb, " LIMIT $%d", len(args))
	args = append(args, q.Offset)
	fmt.Fprintf(&sb, " OFFSET $%d", len(args))

	return sb.String(), args
}

// Composer turns request parameters into a ComposedQuery.
type Composer interface {
	Compose(params Params, policy WhitelistPolicy) (ComposedQuery, error)
}

// Builder is the default Composer. It validates before it builds, so a
// returned ComposedQuery is always safe to render.
type Builder struct{}

// NewBuilder returns a Builder.
func NewBuilder() *Builder {
	return &Builder{}
}

func (b *Builder) Compose(params Params, policy WhitelistPolicy) (ComposedQuery, error) {
	field := strings.TrimSpace(params.SortField)
	if field == "" {
		field = policy.DefaultField
	}
	if err := ValidateSortField(field, policy.Fields); err != nil {
		return ComposedQuery{}, err
	}
	if err := ValidatePagination(params.Page, params.PageSize); err != nil {
		return ComposedQuery{}, err
	}
	if err := ValidateFilters(params.Filters, policy); err != nil {
		return ComposedQuery{}, err
	}

	order := params.SortOrder
	if order == "" {
		order = ASC
	}
	if _, err := ParseSortOrder(string(order)); err != nil {
		return ComposedQuery{}, err
	}

	limit, offset := BuildPageWindow(params.Page, params.PageSize)
	return ComposedQuery{
		Predicate: BuildFilterPredicate(params.Filters),
		OrderBy:   BuildOrderClause(field, order),
		Limit:     limit,
		Offset:    offset,
	}, nil
}
