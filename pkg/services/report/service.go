package report

import (
	"context"
	"time"

	"github.com/fieldops/pulse/pkg/models/domain"
	"github.com/fieldops/pulse/pkg/services/config"
	"github.com/rs/zerolog"
)

// FetcherFactory builds an upstream fetcher for one tenant profile.
type FetcherFactory func(profile config.Profile) Fetcher

// Service generates reports per state, resolving tenant credentials
// through the profile registry.
type Service interface {
	States(ctx context.Context) ([]string, error)
	Generate(ctx context.Context, state string, req Request) (domain.Report, error)
}

type service struct {
	profiles config.Registry
	fetchers FetcherFactory
	loc      *time.Location
}

func NewService(profiles config.Registry, fetchers FetcherFactory, loc *time.Location) Service {
	return &service{
		profiles: profiles,
		fetchers: fetchers,
		loc:      loc,
	}
}

func (s *service) States(ctx context.Context) ([]string, error) {
	return s.profiles.GetStates(ctx)
}

func (s *service) Generate(ctx context.Context, state string, req Request) (domain.Report, error) {
	logger := zerolog.Ctx(ctx)

	profile, err := s.profiles.GetProfile(ctx, state)
	if err != nil {
		return nil, err
	}

	ctrl := NewController(s.fetchers(*profile), s.loc)
	rep, err := ctrl.Generate(ctx, req)
	if err != nil {
		return nil, err
	}

	logger.Info().
		Str("state", state).
		Int("columns", len(rep)).
		Msg("report generated")

	return rep, nil
}
