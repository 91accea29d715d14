package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/nationsapi/nations-service/internal/domain"
	"github.com/nationsapi/nations-service/internal/query"
	"github.com/nationsapi/nations-service/internal/repository"
	apperrors "github.com/nationsapi/nations-service/pkg/util"
)

// Page is one page of a listing together with the parameters that produced it.
type Page[T any] struct {
	Items     []T
	Page      int
	PageSize  int
	SortField string
	SortOrder query.SortOrder
}

// NationsService serves the nations listings. Parameters are validated by the
// composer before any query reaches the repository.
type NationsService struct {
	repo     repository.NationsRepository
	composer query.Composer
	policies query.Policies
}

// NewNationsService builds the service.
func NewNationsService(repo repository.NationsRepository, composer query.Composer, policies query.Policies) *NationsService {
	return &NationsService{repo: repo, composer: composer, policies: policies}
}

// Policies returns the whitelists the service validates against.
func (s *NationsService) Policies() query.Policies {
	return s.policies
}

func (s *NationsService) Countries(ctx context.Context, params query.Params) (Page[domain.CountryEntry], error) {
	return listPage(ctx, s.composer, params, s.policies.Countries, s.repo.ListCountries)
}

func (s *NationsService) MaxGDPPerCapita(ctx context.Context, params query.Params) (Page[domain.MaxGDPPerCapitaEntry], error) {
	return listPage(ctx, s.composer, params, s.policies.MaxGDPPerCapita, s.repo.ListMaxGDPPerCapita)
}

func (s *NationsService) Stats(ctx context.Context, params query.Params) (Page[domain.StatsEntry], error) {
	return listPage(ctx, s.composer, params, s.policies.Stats, s.repo.ListStats)
}

// Languages lists the languages spoken in countryName. A known country with no
// languages yields an empty list; an unknown one is a not-found error.
func (s *NationsService) Languages(ctx context.Context, countryName string) ([]string, error) {
	if strings.TrimSpace(countryName) == "" {
		return nil, apperrors.NewValidationError("country name must not be blank", nil)
	}
	exists, err := s.repo.CountryExists(ctx, countryName)
	if err != nil {
		return nil, repositoryError(err)
	}
	if !exists {
		return nil, apperrors.NewNotFound(fmt.Sprintf("Country %s not found in database.", countryName))
	}
	languages, err := s.repo.LanguagesOfCountry(ctx, countryName)
	if err != nil {
		return nil, repositoryError(err)
	}
	return languages, nil
}

func listPage[T any](
	ctx context.Context,
	composer query.Composer,
	params query.Params,
	policy query.WhitelistPolicy,
	fetch func(context.Context, query.ComposedQuery) ([]T, error),
) (Page[T], error) {
	q, err := composer.Compose(params, policy)
	if err != nil {
		return Page[T]{}, err
	}
	items, err := fetch(ctx, q)
	if err != nil {
		return Page[T]{}, repositoryError(err)
	}
	return Page[T]{
		Items:     items,
		Page:      params.Page,
		PageSize:  params.PageSize,
		SortField: q.OrderBy.Field,
		SortOrder: q.OrderBy.Order,
	}, nil
}

func repositoryError(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return apperrors.NewNotFound("resource not found")
	}
	return apperrors.NewDataLayerError(err)
}
