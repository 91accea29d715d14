package handlers

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/nationsapi/nations-service/internal/query"
	apperrors "github.com/nationsapi/nations-service/pkg/util"
)

// parseListParams reads the listing query string. It only converts types;
// range and whitelist checks belong to the query composer.
func parseListParams(c *fiber.Ctx, policy query.WhitelistPolicy) (query.Params, error) {
	page, err := parseQueryInt(c, "page", query.DefaultPage)
	if err != nil {
		return query.Params{}, err
	}
	pageSize, err := parseQueryInt(c, "items_in_page", query.DefaultPageSize)
	if err != nil {
		return query.Params{}, err
	}

	order := query.ASC
	if raw := c.Query("sort_order"); raw != "" {
		if order, err = query.ParseSortOrder(raw); err != nil {
			return query.Params{}, err
		}
	}

	filters := map[string]string{}
	args := c.Context().QueryArgs()
	for _, key := range policy.FilterKeys {
		if args.Has(key) {
			filters[key] = string(args.Peek(key))
		}
	}

	return query.Params{
		Page:      page,
		PageSize:  pageSize,
		SortField: c.Query("sort_by_field", policy.DefaultField),
		SortOrder: order,
		Filters:   filters,
	}, nil
}

func parseQueryInt(c *fiber.Ctx, key string, def int) (int, error) {
	raw := c.Query(key)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if errors.Is(err, strconv.ErrRange) {
		// Atoi clamps to the int range; validation then judges the sign.
		return v, nil
	}
	if err != nil {
		return 0, apperrors.NewValidationError(fmt.Sprintf("%s must be an integer", key), map[string]any{key: raw})
	}
	return v, nil
}
