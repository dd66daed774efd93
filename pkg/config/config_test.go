// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/platform-engineering-labs/formae/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setCredentials(t *testing.T) {
	t.Helper()
	t.Setenv("OVH_APPLICATION_KEY", "ak")
	t.Setenv("OVH_APPLICATION_SECRET", "as")
	t.Setenv("OVH_CONSUMER_KEY", "ck")
}

func TestLoad_FromEnv(t *testing.T) {
	setCredentials(t)
	t.Setenv("OVH_CLOUD_PROJECT_ID", "proj")
	t.Setenv("OS_REGION_NAME", "GRA11")
	t.Setenv("OVH_ZONE", "GRA11-a")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "ovh-eu", cfg.OVH.Endpoint)
	assert.Equal(t, "ak", cfg.OVH.ApplicationKey)
	assert.Equal(t, "proj", cfg.Project)
	assert.Equal(t, "GRA11", cfg.Region)
	assert.Equal(t, "GRA11-a", cfg.Zone)
	assert.Equal(t, "Default", cfg.OpenStack.UserDomainName)
	assert.Equal(t, "https://auth.cloud.ovh.net/v3", cfg.OpenStack.AuthURL)
	assert.Equal(t, "dev", cfg.Log.Env)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
ovh:
  endpoint: ovh-ca
  application_key: file-ak
  application_secret: file-as
  consumer_key: file-ck
project: file-project
region: BHS5
zone: BHS5-a
log:
  env: prod
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	t.Setenv("OVH_CLOUD_PROJECT_ID", "env-project")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "ovh-ca", cfg.OVH.Endpoint)
	assert.Equal(t, "file-ak", cfg.OVH.ApplicationKey)
	assert.Equal(t, "env-project", cfg.Project)
	assert.Equal(t, "BHS5", cfg.Region)
	assert.Equal(t, "BHS5-a", cfg.Zone)
	assert.Equal(t, "prod", cfg.Log.Env)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestFromTargetConfig(t *testing.T) {
	setCredentials(t)
	t.Setenv("OVH_CLOUD_PROJECT_ID", "env-project")
	t.Setenv("OS_REGION_NAME", "DE1")

	raw := json.RawMessage(`{"projectId":"target-project","zone":"GRA11-b","region":"GRA11"}`)
	cfg, err := FromTargetConfig(raw)
	require.NoError(t, err)

	assert.Equal(t, "target-project", cfg.Project)
	assert.Equal(t, "GRA11", cfg.Region)
	assert.Equal(t, "GRA11-b", cfg.Zone)
	assert.Equal(t, "ak", cfg.OVH.ApplicationKey)
}

func TestFromTargetConfig_FallsBackToEnv(t *testing.T) {
	setCredentials(t)
	t.Setenv("OVH_CLOUD_PROJECT_ID", "env-project")

	cfg, err := FromTargetConfig(nil)
	require.NoError(t, err)
	assert.Equal(t, "env-project", cfg.Project)
}

func TestFromTargetConfig_Errors(t *testing.T) {
	t.Run("invalid json", func(t *testing.T) {
		setCredentials(t)
		_, err := FromTargetConfig(json.RawMessage(`{`))
		assert.Error(t, err)
	})

	t.Run("missing credentials", func(t *testing.T) {
		t.Setenv("OVH_APPLICATION_KEY", "")
		t.Setenv("OVH_APPLICATION_SECRET", "")
		t.Setenv("OVH_CONSUMER_KEY", "")
		t.Setenv("OVH_CLOUD_PROJECT_ID", "")

		_, err := FromTargetConfig(json.RawMessage(`{}`))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "OVH_APPLICATION_KEY")
		assert.Contains(t, err.Error(), "project is required")
	})
}

func TestFromTarget(t *testing.T) {
	_, err := FromTarget(nil)
	assert.Error(t, err)

	setCredentials(t)
	cfg, err := FromTarget(&model.Target{Config: json.RawMessage(`{"projectId":"p"}`)})
	require.NoError(t, err)
	assert.Equal(t, "p", cfg.Project)
}

func TestValidateOpenStack(t *testing.T) {
	cfg := &Config{}
	err := cfg.ValidateOpenStack()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "OS_USERNAME")
	assert.Contains(t, err.Error(), "region is required")

	cfg = &Config{
		Region:    "GRA11",
		OpenStack: OpenStackConfig{Username: "u", Password: "p", ProjectID: "id"},
	}
	assert.NoError(t, cfg.ValidateOpenStack())
}

func TestToAuthOptions(t *testing.T) {
	cfg := &Config{OpenStack: OpenStackConfig{
		AuthURL:        "https://auth.example/v3",
		Username:       "u",
		Password:       "p",
		ProjectID:      "tenant",
		UserDomainName: "Default",
	}}

	opts := cfg.ToAuthOptions()
	assert.Equal(t, "https://auth.example/v3", opts.IdentityEndpoint)
	assert.Equal(t, "tenant", opts.TenantID)
	assert.Equal(t, "Default", opts.DomainName)
	assert.True(t, opts.AllowReauth)
}

func TestTransportConfig(t *testing.T) {
	cfg := &Config{OVH: OVHConfig{Endpoint: "ovh-eu", ApplicationKey: "a", ApplicationSecret: "b", ConsumerKey: "c"}}
	tc := cfg.TransportConfig()
	assert.Equal(t, "ovh-eu", tc.Endpoint)
	assert.Equal(t, "c", tc.ConsumerKey)
}
