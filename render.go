// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/apidoc

package apidoc

import (
	"fmt"
	"log/slog"
	"os"
	"sort"
	"strings"
)

const (
	// DefaultAPIVersion is the API version used in request lines when caller does not provide one.
	DefaultAPIVersion = "3"
	// DefaultBaseURL is the request line base URL when caller does not provide one.
	DefaultBaseURL = "http://example.com/store-api"
	// defaultTemplateName is used when caller does not provide template name.
	defaultTemplateName = templateDefaultName
)

const (
	templateDefaultName = "default"
)

// Options configures markdown rendering.
type Options struct {
	// APIVersion is rendered into request lines as "v{APIVersion}".
	APIVersion string
	// BaseURL prefixes request line paths.
	BaseURL string
	// TemplateName selects built-in template.
	TemplateName string
	// TemplateText overrides built-in template when not empty.
	TemplateText string
	// ExampleFormat selects response example encoding, JSON by default.
	ExampleFormat ExampleFormat
	// WrapWidth wraps plain description paragraphs; zero keeps lines as is.
	WrapWidth int
	// Logger receives debug diagnostics; nil discards them.
	Logger *slog.Logger
}

// renderView is the root view model passed to markdown templates.
type renderView struct {
	APIVersion    string
	BaseURL       string
	ExampleFormat string
	Endpoints     []endpointView
}

// endpointView is one path section.
type endpointView struct {
	Path       string
	Operations []operationView
}

// operationView is one method section inside a path.
type operationView struct {
	Heading     string
	Method      string
	RequestURL  string
	Description string
	Responses   []responseView
	Parameters  []parameterView

	// HasParameters keeps the parameters table for an empty parameters list.
	HasParameters bool
}

// responseView is one status code block.
type responseView struct {
	Code        string
	Description string
	Example     string
}

// parameterView is one parameters table row.
type parameterView struct {
	Name        string
	Type        string
	In          string
	Required    string
	Description string
}

// RenderFile reads schema document from file and renders markdown.
func RenderFile(path string, opt Options) (string, error) {
	schemaBytes, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrReadSchemaFile, err)
	}

	return Render(schemaBytes, opt)
}

// Render decodes schema document bytes and renders markdown.
func Render(schemaBytes []byte, opt Options) (string, error) {
	doc, err := parseDocument(schemaBytes, opt.logger())
	if err != nil {
		return "", err
	}

	return RenderDocument(doc, opt)
}

// RenderDocument renders decoded document into markdown.
//
// All examples are resolved before any text is produced, so a resolution
// error never yields partial output.
func RenderDocument(doc *Document, opt Options) (string, error) {
	view, err := buildRenderView(doc, opt)
	if err != nil {
		return "", err
	}

	markdownTemplate, err := resolveTemplate(opt)
	if err != nil {
		return "", err
	}

	var out strings.Builder
	if err := markdownTemplate.Execute(&out, view); err != nil {
		return "", fmt.Errorf("%w: %w", ErrExecuteMarkdownTemplate, err)
	}

	return ensureTrailingNewline(normalizeMarkdownOutput(out.String())), nil
}

// BuiltinTemplateNames returns all available built-in template names.
func BuiltinTemplateNames() []string {
	names := make([]string, 0, len(builtInTemplateFiles))
	for name := range builtInTemplateFiles {
		names = append(names, name)
	}

	sort.Strings(names)
	return names
}

// BuiltinTemplate returns one built-in template by name.
func BuiltinTemplate(name string) (string, error) {
	name = normalizeTemplateName(name)
	path, ok := builtInTemplateFiles[name]
	if !ok {
		return "", fmt.Errorf("%w %q", ErrUnknownBuiltinTemplate, name)
	}

	data, err := templateFS.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrReadBuiltinTemplate, err)
	}

	return string(data), nil
}

// logger returns configured logger or a discarding one.
func (opt Options) logger() *slog.Logger {
	if opt.Logger != nil {
		return opt.Logger
	}

	return discardLogger()
}

// discardLogger returns logger dropping every record.
func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
