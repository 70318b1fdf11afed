package config

import (
	"context"
	"fmt"

	"gopkg.in/ini.v1"

	"github.com/de-tools/fg-sync/pkg/models/domain"
)

// ProfileRegistry reads ERP connection profiles from an ini file, one section
// per profile:
//
//	[production]
//	url      = https://erp.example.com
//	db       = prod
//	username = sync@example.com
//	api_key  = ...
type ProfileRegistry interface {
	GetProfiles(ctx context.Context) ([]string, error)
	GetSource(ctx context.Context, profile string) (*domain.SourceConfig, error)
}

type iniRegistry struct {
	cfg *ini.File
}

func NewProfileRegistry(path string) (ProfileRegistry, error) {
	cfg, err := ini.Load(path)
	if err != nil {
		return nil, err
	}
	return &iniRegistry{cfg: cfg}, nil
}

func (r *iniRegistry) GetProfiles(_ context.Context) ([]string, error) {
	var profiles []string
	for _, section := range r.cfg.Sections() {
		if len(section.Keys()) > 0 {
			profiles = append(profiles, section.Name())
		}
	}
	return profiles, nil
}

func (r *iniRegistry) GetSource(_ context.Context, profile string) (*domain.SourceConfig, error) {
	section, err := r.cfg.GetSection(profile)
	if err != nil {
		return nil, fmt.Errorf("profile %s not found", profile)
	}

	return &domain.SourceConfig{
		URL:      section.Key("url").String(),
		Database: section.Key("db").String(),
		Username: section.Key("username").String(),
		Password: section.Key("password").String(),
		APIKey:   section.Key("api_key").String(),
	}, nil
}
