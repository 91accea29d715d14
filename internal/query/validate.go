package query

import (
	"errors"
	"fmt"
	"maps"
	"net/http"
	"regexp"
	"slices"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	apperrors "github.com/nationsapi/nations-service/pkg/util"
)

// ErrBadDateFormat marks a year filter that is not four digits.
var ErrBadDateFormat = errors.New("bad date format")

// yearLayout parses a bare year as January 1st of that year.
const yearLayout = "2006"

var yearPattern = regexp.MustCompile(`^[0-9]{4}$`)

var validate = validator.New(validator.WithRequiredStructEnabled())

// InvalidSortFieldError reports a sort field outside the endpoint whitelist.
type InvalidSortFieldError struct {
	Field      string
	Acceptable []string
}

func (e *InvalidSortFieldError) Error() string {
	return fmt.Sprintf("Invalid sort by field: %s specified. Acceptable fields are: [%s].",
		e.Field, strings.Join(e.Acceptable, ", "))
}

// invalid wraps cause in a 400 DomainError so callers can still match cause
// with errors.Is/As.
func invalid(cause error, message string, details map[string]any) error {
	return &apperrors.DomainError{
		Code:       apperrors.CodeValidation,
		Message:    message,
		HTTPStatus: http.StatusBadRequest,
		Details:    details,
		Err:        cause,
	}
}

// ValidateSortField checks field, trimmed, against whitelist. Matching is exact
// and case-sensitive.
func ValidateSortField(field string, whitelist []string) error {
	field = strings.TrimSpace(field)
	for _, allowed := range whitelist {
		if field == allowed {
			return nil
		}
	}
	cause := &InvalidSortFieldError{Field: field, Acceptable: append([]string(nil), whitelist...)}
	return invalid(cause, cause.Error(), map[string]any{
		"sort_by_field":     field,
		"acceptable_fields": cause.Acceptable,
	})
}

type pageWindow struct {
	Page     int `validate:"min=0"`
	PageSize int `validate:"min=1"`
}

// ValidatePagination requires page >= 0 and pageSize >= 1.
func ValidatePagination(page, pageSize int) error {
	err := validate.Struct(pageWindow{Page: page, PageSize: pageSize})
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return invalid(err, "invalid pagination", nil)
	}
	fe := fieldErrs[0]
	name := "page"
	if fe.Field() == "PageSize" {
		name = "items_in_page"
	}
	return invalid(err, fmt.Sprintf("%s must be greater than or equal to %s", name, fe.Param()), map[string]any{
		name: fe.Value(),
	})
}

// ParseYear parses a strict yyyy year.
func ParseYear(value string) (time.Time, error) {
	if !yearPattern.MatchString(value) {
		return time.Time{}, ErrBadDateFormat
	}
	t, err := time.Parse(yearLayout, value)
	if err != nil {
		return time.Time{}, ErrBadDateFormat
	}
	return t, nil
}

// ValidateYearFilter accepts exactly four digits.
func ValidateYearFilter(value string) error {
	if _, err := ParseYear(value); err != nil {
		return invalid(err, fmt.Sprintf("year %s not in yyyy format.", value), map[string]any{"year": value})
	}
	return nil
}

// ValidateRegionFilter rejects blank region names.
func ValidateRegionFilter(value string) error {
	if strings.TrimSpace(value) == "" {
		return invalid(nil, "region must not be blank", nil)
	}
	return nil
}

// ValidateFilters checks every filter against policy and its value format.
// Keys are checked in a fixed order so the first reported error is stable.
func ValidateFilters(filters map[string]string, policy WhitelistPolicy) error {
	for _, key := range slices.Sorted(maps.Keys(filters)) {
		if !policy.AllowsFilter(key) {
			return invalid(nil, fmt.Sprintf("unsupported filter: %s", key), map[string]any{
				"filter":            key,
				"supported_filters": policy.FilterKeys,
			})
		}
	}
	for _, key := range []string{FilterYearFrom, FilterYearTo} {
		if v, ok := filters[key]; ok {
			if err := ValidateYearFilter(v); err != nil {
				return err
			}
		}
	}
	if v, ok := filters[FilterRegion]; ok {
		if err := ValidateRegionFilter(v); err != nil {
			return err
		}
	}
	return nil
}
