// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package config

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/gophercloud/gophercloud/v2"
	"github.com/ilyakaznacheev/cleanenv"
	"github.com/platform-engineering-labs/formae/pkg/model"

	ovhtransport "github.com/platform-engineering-labs/ovh-compute/pkg/transport/ovh"
)

// OVHConfig holds the signed REST API credentials.
type OVHConfig struct {
	Endpoint          string `yaml:"endpoint" env:"OVH_ENDPOINT" env-default:"ovh-eu"`
	ApplicationKey    string `yaml:"application_key" env:"OVH_APPLICATION_KEY"`
	ApplicationSecret string `yaml:"application_secret" env:"OVH_APPLICATION_SECRET"`
	ConsumerKey       string `yaml:"consumer_key" env:"OVH_CONSUMER_KEY"`
}

// OpenStackConfig holds the Keystone credentials used by list commands.
type OpenStackConfig struct {
	AuthURL        string `yaml:"auth_url" env:"OS_AUTH_URL" env-default:"https://auth.cloud.ovh.net/v3"`
	Username       string `yaml:"username" env:"OS_USERNAME"`
	Password       string `yaml:"password" env:"OS_PASSWORD"`
	ProjectID      string `yaml:"project_id" env:"OS_PROJECT_ID"`
	UserDomainName string `yaml:"user_domain_name" env:"OS_USER_DOMAIN_NAME" env-default:"Default"`
}

// LogConfig selects the logger preset and level.
type LogConfig struct {
	Env   string `yaml:"env" env:"LOG_ENV" env-default:"dev"`
	Level string `yaml:"level" env:"LOG_LEVEL" env-default:"info"`
}

// Config is the complete runtime configuration.
type Config struct {
	OVH       OVHConfig       `yaml:"ovh"`
	OpenStack OpenStackConfig `yaml:"openstack"`
	Project   string          `yaml:"project" env:"OVH_CLOUD_PROJECT_ID"`
	Region    string          `yaml:"region" env:"OS_REGION_NAME"`
	Zone      string          `yaml:"zone" env:"OVH_ZONE"`
	Log       LogConfig       `yaml:"log"`
}

// Load reads path when given, otherwise the environment only. Environment
// variables override file values.
func Load(path string) (*Config, error) {
	var cfg Config
	if path != "" {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("cannot read configuration from file: %w", err)
		}
		return &cfg, nil
	}

	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("cannot read configuration from env: %w", err)
	}
	return &cfg, nil
}

// targetConfig is the non-sensitive part stored in a formae target.
type targetConfig struct {
	ProjectID string `json:"projectId"`
	Region    string `json:"region"`
	Zone      string `json:"zone"`
	Endpoint  string `json:"endpoint"`
	AuthURL   string `json:"authURL"`
}

// FromTarget extracts configuration from a Target
func FromTarget(target *model.Target) (*Config, error) {
	if target == nil {
		return nil, fmt.Errorf("target is nil")
	}
	return FromTargetConfig(target.Config)
}

// FromTargetConfig merges a target config over the environment.
// Only project, region, zone and endpoints come from the target;
// credentials are always read from environment variables.
func FromTargetConfig(raw json.RawMessage) (*Config, error) {
	cfg, err := Load("")
	if err != nil {
		return nil, err
	}

	if len(raw) > 0 {
		var tc targetConfig
		if err := json.Unmarshal(raw, &tc); err != nil {
			return nil, fmt.Errorf("failed to unmarshal target config: %w", err)
		}
		if tc.ProjectID != "" {
			cfg.Project = tc.ProjectID
		}
		if tc.Region != "" {
			cfg.Region = tc.Region
		}
		if tc.Zone != "" {
			cfg.Zone = tc.Zone
		}
		if tc.Endpoint != "" {
			cfg.OVH.Endpoint = tc.Endpoint
		}
		if tc.AuthURL != "" {
			cfg.OpenStack.AuthURL = tc.AuthURL
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the settings every mutating call needs.
func (c *Config) Validate() error {
	var errs []error
	if c.OVH.ApplicationKey == "" {
		errs = append(errs, errors.New("OVH_APPLICATION_KEY is required"))
	}
	if c.OVH.ApplicationSecret == "" {
		errs = append(errs, errors.New("OVH_APPLICATION_SECRET is required"))
	}
	if c.OVH.ConsumerKey == "" {
		errs = append(errs, errors.New("OVH_CONSUMER_KEY is required"))
	}
	if c.Project == "" {
		errs = append(errs, errors.New("project is required (set OVH_CLOUD_PROJECT_ID or provide it in the target config)"))
	}
	return errors.Join(errs...)
}

// ValidateOpenStack checks the Keystone settings used for listing.
func (c *Config) ValidateOpenStack() error {
	var errs []error
	if c.OpenStack.Username == "" {
		errs = append(errs, errors.New("OS_USERNAME environment variable is required"))
	}
	if c.OpenStack.Password == "" {
		errs = append(errs, errors.New("OS_PASSWORD environment variable is required"))
	}
	if c.OpenStack.ProjectID == "" {
		errs = append(errs, errors.New("OS_PROJECT_ID environment variable is required"))
	}
	if c.Region == "" {
		errs = append(errs, errors.New("region is required (set OS_REGION_NAME or --region)"))
	}
	return errors.Join(errs...)
}

// TransportConfig returns the go-ovh client settings.
func (c *Config) TransportConfig() *ovhtransport.OVHConfig {
	return &ovhtransport.OVHConfig{
		Endpoint:          c.OVH.Endpoint,
		ApplicationKey:    c.OVH.ApplicationKey,
		ApplicationSecret: c.OVH.ApplicationSecret,
		ConsumerKey:       c.OVH.ConsumerKey,
	}
}

// ToAuthOptions converts the OpenStack settings to gophercloud AuthOptions
func (c *Config) ToAuthOptions() gophercloud.AuthOptions {
	return gophercloud.AuthOptions{
		IdentityEndpoint: c.OpenStack.AuthURL,
		Username:         c.OpenStack.Username,
		Password:         c.OpenStack.Password,
		TenantID:         c.OpenStack.ProjectID,
		DomainName:       c.OpenStack.UserDomainName,
		AllowReauth:      true,
	}
}
