package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/nationsapi/nations-service/internal/api/dto"
	"github.com/nationsapi/nations-service/internal/domain"
	"github.com/nationsapi/nations-service/internal/service"
)

// NationsHandler serves the authenticated nations listings.
type NationsHandler struct {
	nations *service.NationsService
}

// NewNationsHandler constructs handler.
func NewNationsHandler(nationsService *service.NationsService) *NationsHandler {
	return &NationsHandler{nations: nationsService}
}

// Countries GET /nationapi/countries.
func (h *NationsHandler) Countries(c *fiber.Ctx) error {
	params, err := parseListParams(c, h.nations.Policies().Countries)
	if err != nil {
		return err
	}
	page, err := h.nations.Countries(c.UserContext(), params)
	if err != nil {
		return err
	}
	items := make([]dto.CountryResponse, 0, len(page.Items))
	for _, e := range page.Items {
		items = append(items, countryResponse(e))
	}
	return c.JSON(fiber.Map{"data": items, "meta": listMeta(page)})
}

// Languages GET /nationapi/languages/:countryName.
func (h *NationsHandler) Languages(c *fiber.Ctx) error {
	name := c.Params("countryName")
	languages, err := h.nations.Languages(c.UserContext(), name)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.LanguagesResponse{Country: name, Languages: languages}})
}

// MaxGDPPerCapita GET /nationapi/maxgdppercapita.
func (h *NationsHandler) MaxGDPPerCapita(c *fiber.Ctx) error {
	params, err := parseListParams(c, h.nations.Policies().MaxGDPPerCapita)
	if err != nil {
		return err
	}
	page, err := h.nations.MaxGDPPerCapita(c.UserContext(), params)
	if err != nil {
		return err
	}
	items := make([]dto.MaxGDPPerCapitaResponse, 0, len(page.Items))
	for _, e := range page.Items {
		items = append(items, dto.MaxGDPPerCapitaResponse{
			Name:            e.Name,
			CountryCode:     e.CountryCode,
			MaxGDPPerCapita: e.MaxGDPPerCapita,
		})
	}
	return c.JSON(fiber.Map{"data": items, "meta": listMeta(page)})
}

// Stats GET /nationapi/stats.
func (h *NationsHandler) Stats(c *fiber.Ctx) error {
	params, err := parseListParams(c, h.nations.Policies().Stats)
	if err != nil {
		return err
	}
	page, err := h.nations.Stats(c.UserContext(), params)
	if err != nil {
		return err
	}
	items := make([]dto.StatsResponse, 0, len(page.Items))
	for _, e := range page.Items {
		items = append(items, statsResponse(e))
	}
	return c.JSON(fiber.Map{"data": items, "meta": listMeta(page)})
}

func listMeta[T any](page service.Page[T]) dto.ListMeta {
	return dto.ListMeta{
		Page:        page.Page,
		ItemsInPage: page.PageSize,
		SortByField: page.SortField,
		SortOrder:   string(page.SortOrder),
	}
}

func countryResponse(e domain.CountryEntry) dto.CountryResponse {
	return dto.CountryResponse{Name: e.Name, Area: e.Area, CountryCode: e.CountryCode}
}

func statsResponse(e domain.StatsEntry) dto.StatsResponse {
	return dto.StatsResponse{
		ContinentName: e.ContinentName,
		RegionName:    e.RegionName,
		CountryName:   e.CountryName,
		Year:          e.Year,
		Population:    e.Population,
		GDP:           e.GDP,
	}
}
