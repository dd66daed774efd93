// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package base

import "fmt"

// APIConfig defines the configuration for an API
type APIConfig struct {
	BaseURL     string
	APIVersion  string
	PathBuilder PathBuilderFunc
}

// PathBuilderFunc constructs a resource path from context
type PathBuilderFunc func(ctx PathContext) string

// PathContext contains all information needed to build a URL path
type PathContext struct {
	Project      string
	Region       string
	Zone         string
	ResourceType string
	ResourceName string
	Action       string // e.g. "resize", appended after the resource name
}

// URLBuilder builds URLs for API resources
type URLBuilder struct {
	apiConfig APIConfig
	context   PathContext
}

// NewURLBuilder creates a new URL builder
func NewURLBuilder(apiConfig APIConfig, context PathContext) *URLBuilder {
	return &URLBuilder{apiConfig: apiConfig, context: context}
}

// CollectionURL returns the URL for a resource collection
func (b *URLBuilder) CollectionURL() string {
	ctx := b.context
	ctx.ResourceName = ""
	ctx.Action = ""
	return b.build(ctx)
}

// ResourceURL returns the URL for a specific resource
func (b *URLBuilder) ResourceURL(name string) string {
	ctx := b.context
	ctx.ResourceName = name
	ctx.Action = ""
	return b.build(ctx)
}

// ActionURL returns the URL of a custom action on a resource
func (b *URLBuilder) ActionURL(name, action string) string {
	ctx := b.context
	ctx.ResourceName = name
	ctx.Action = action
	return b.build(ctx)
}

func (b *URLBuilder) build(ctx PathContext) string {
	path := b.apiConfig.PathBuilder(ctx)
	if b.apiConfig.BaseURL != "" {
		return fmt.Sprintf("%s%s", b.apiConfig.BaseURL, path)
	}
	return path
}
