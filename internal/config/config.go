// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/apidoc

// Package config loads layered apidoc settings.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/woozymasta/apidoc"
)

// DefaultFile is loaded from working directory when no config path is given.
const DefaultFile = "apidoc.yaml"

// Config holds markdown rendering settings.
type Config struct {
	APIVersion    string `koanf:"api-version"`
	BaseURL       string `koanf:"base-url"`
	Template      string `koanf:"template"`
	TemplateFile  string `koanf:"template-file"`
	ExampleFormat string `koanf:"example-format"`
	Wrap          int    `koanf:"wrap"`
}

// Defaults returns built-in settings.
func Defaults() map[string]any {
	return map[string]any{
		"api-version":    apidoc.DefaultAPIVersion,
		"base-url":       apidoc.DefaultBaseURL,
		"template":       "default",
		"template-file":  "",
		"example-format": string(apidoc.ExampleFormatJSON),
		"wrap":           0,
	}
}

// Load merges defaults, the config file and overrides, in that order.
//
// An empty path falls back to DefaultFile when it exists. Overrides hold
// only explicitly set CLI values.
func Load(path string, overrides map[string]any) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(Defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("loading defaults: %w", err)
	}

	if path == "" {
		if _, err := os.Stat(DefaultFile); err == nil {
			path = DefaultFile
		}
	}

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	if len(overrides) > 0 {
		if err := k.Load(confmap.Provider(overrides, "."), nil); err != nil {
			return nil, fmt.Errorf("loading flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks settings consistency.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.APIVersion) == "" {
		return errors.New("api version is required")
	}

	if strings.TrimSpace(c.BaseURL) == "" {
		return errors.New("base url is required")
	}

	if _, err := apidoc.NormalizeExampleFormat(apidoc.ExampleFormat(c.ExampleFormat)); err != nil {
		return fmt.Errorf("invalid example format: %w", err)
	}

	if c.Wrap < 0 {
		return fmt.Errorf("invalid wrap width %d: must not be negative", c.Wrap)
	}

	return nil
}

// Options converts settings into render options.
// TemplateFile content is read by the caller.
func (c *Config) Options() apidoc.Options {
	return apidoc.Options{
		APIVersion:    c.APIVersion,
		BaseURL:       c.BaseURL,
		TemplateName:  c.Template,
		ExampleFormat: apidoc.ExampleFormat(c.ExampleFormat),
		WrapWidth:     c.Wrap,
	}
}
