package config

import (
	"context"
	"errors"
	"fmt"

	"gopkg.in/ini.v1"
)

// ErrUnknownState is returned when no tenant profile exists for a state.
var ErrUnknownState = errors.New("no tenant profile for state")

// Profile holds the upstream API credentials for one state's tenant.
type Profile struct {
	State        string
	AppKey       string
	TenantID     string
	ClientID     string
	ClientSecret string
}

// Registry resolves state names to tenant profiles.
type Registry interface {
	GetStates(ctx context.Context) ([]string, error)
	GetProfile(ctx context.Context, state string) (*Profile, error)
}

type iniRegistry struct {
	cfg *ini.File
}

// NewRegistry loads a profile file with one INI section per state:
//
//	[NSW]
//	app_key = ...
//	tenant_id = ...
//	client_id = ...
//	client_secret = ...
func NewRegistry(path string) (Registry, error) {
	cfg, err := ini.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load profiles: %w", err)
	}
	return &iniRegistry{cfg: cfg}, nil
}

func (r *iniRegistry) GetStates(_ context.Context) ([]string, error) {
	var states []string
	for _, section := range r.cfg.Sections() {
		if len(section.Keys()) > 0 {
			states = append(states, section.Name())
		}
	}
	return states, nil
}

func (r *iniRegistry) GetProfile(_ context.Context, state string) (*Profile, error) {
	section, err := r.cfg.GetSection(state)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownState, state)
	}
	profile := &Profile{
		State:        state,
		AppKey:       section.Key("app_key").String(),
		TenantID:     section.Key("tenant_id").String(),
		ClientID:     section.Key("client_id").String(),
		ClientSecret: section.Key("client_secret").String(),
	}
	if profile.TenantID == "" {
		return nil, fmt.Errorf("profile %s: tenant_id is required", state)
	}
	return profile, nil
}
