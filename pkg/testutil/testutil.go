// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package testutil

import (
	"os"

	ovhtransport "github.com/platform-engineering-labs/ovh-compute/pkg/transport/ovh"
)

var (
	// OVH REST API configuration - read from environment variables
	OVHEndpoint          = getEnvOrDefault("OVH_ENDPOINT", ovhtransport.DefaultEndpoint)
	OVHApplicationKey    = os.Getenv("OVH_APPLICATION_KEY")
	OVHApplicationSecret = os.Getenv("OVH_APPLICATION_SECRET")
	OVHConsumerKey       = os.Getenv("OVH_CONSUMER_KEY")
	OVHCloudProjectID    = os.Getenv("OVH_CLOUD_PROJECT_ID")

	OVHConfig = &ovhtransport.OVHConfig{
		Endpoint:          OVHEndpoint,
		ApplicationKey:    OVHApplicationKey,
		ApplicationSecret: OVHApplicationSecret,
		ConsumerKey:       OVHConsumerKey,
	}

	// Region and zone for integration tests (e.g., GRA11 / GRA11-a)
	Region = getEnvOrDefault("OS_REGION_NAME", "GRA11")
	Zone   = getEnvOrDefault("OVH_ZONE", "GRA11-a")
)

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// IsOVHConfigured returns true if the required OVH REST API environment variables are set
func IsOVHConfigured() bool {
	return OVHApplicationKey != "" && OVHApplicationSecret != "" && OVHConsumerKey != "" && OVHCloudProjectID != ""
}

// SkipIfOVHNotConfigured skips the test if required OVH REST API environment variables are not set
func SkipIfOVHNotConfigured(t interface{ Skip(...any) }) {
	if !IsOVHConfigured() {
		t.Skip("Skipping test: OVH REST API credentials not configured. Set OVH_APPLICATION_KEY, OVH_APPLICATION_SECRET, OVH_CONSUMER_KEY, and OVH_CLOUD_PROJECT_ID environment variables.")
	}
}

// NewOVHClient creates a new OVH REST API client from environment configuration
func NewOVHClient() (*ovhtransport.Client, error) {
	return ovhtransport.NewClient(OVHConfig)
}
