// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/apidoc

package apidoc

import (
	"fmt"
	"strings"
)

const (
	// referencePrefix marks document-local references.
	referencePrefix = "#/"
	// namespaceDefinitions is the Swagger 2 style definitions namespace.
	namespaceDefinitions = "definitions"
	// namespaceComponents is the OpenAPI 3 style components namespace.
	namespaceComponents = "components"
	// componentsSchemas is the only components section holding type definitions.
	componentsSchemas = "schemas"
)

// Document is a decoded API definition document.
type Document struct {
	// Paths keeps endpoints in document order.
	Paths []PathItem
	// Definitions holds "#/definitions/{name}" targets.
	Definitions map[string]Schema
	// Schemas holds "#/components/schemas/{name}" targets.
	Schemas map[string]Schema

	// invalid holds decode errors of named definitions, reported on lookup.
	invalid map[Reference]error
}

// PathItem is one endpoint path with its operations in document order.
type PathItem struct {
	Path       string
	Operations []Operation
}

// Operation is one HTTP method entry of a path.
type Operation struct {
	// Method is the lower-case HTTP method key.
	Method        string
	OperationID   string
	Description   string
	Parameters    []Parameter
	// HasParameters reports whether a parameters keyword was present on the
	// operation or its path item, even when the list is empty.
	HasParameters bool
	Responses     []Response
}

// Parameter is one operation parameter.
type Parameter struct {
	Name string
	In   string
	// Type is the literal type name or the raw $ref string.
	Type        string
	Required    bool
	Description string
}

// Response is one status code entry of an operation.
type Response struct {
	Code        string
	Description string
	// Schema is nil when no JSON schema is attached.
	Schema Schema
}

// Schema is a type definition variant.
//
// Variants: ObjectSchema, ArraySchema, StringSchema, IntegerSchema,
// BooleanSchema, FloatSchema, OtherSchema and RefSchema.
type Schema interface {
	schemaKind() string
}

// Property is one named object property.
type Property struct {
	Name   string
	Schema Schema
}

// ObjectSchema is an object definition.
type ObjectSchema struct {
	// Properties keeps declaration order.
	Properties []Property
	// HasProperties reports whether the properties keyword was present.
	HasProperties bool
}

// ArraySchema is an array definition. Item types are not resolved.
type ArraySchema struct{}

// StringSchema is a string definition.
type StringSchema struct{}

// IntegerSchema is an integer definition.
type IntegerSchema struct{}

// BooleanSchema is a boolean definition.
type BooleanSchema struct{}

// FloatSchema is a float definition.
type FloatSchema struct{}

// OtherSchema is a definition with a type tag not known to the resolver.
type OtherSchema struct {
	Type string
}

// RefSchema points to a named definition in the document.
type RefSchema struct {
	Ref string
}

func (ObjectSchema) schemaKind() string  { return "object" }
func (ArraySchema) schemaKind() string   { return "array" }
func (StringSchema) schemaKind() string  { return "string" }
func (IntegerSchema) schemaKind() string { return "integer" }
func (BooleanSchema) schemaKind() string { return "boolean" }
func (FloatSchema) schemaKind() string   { return "float" }
func (s OtherSchema) schemaKind() string { return s.Type }
func (RefSchema) schemaKind() string     { return "$ref" }

// Reference is a parsed document-local type reference.
type Reference struct {
	// Namespace is "definitions" or "components".
	Namespace string
	Name      string
}

// ParseReference splits ref into namespace and definition name.
//
// Accepted shapes are "#/definitions/{name}" and "#/components/schemas/{name}".
func ParseReference(ref string) (Reference, error) {
	trimmed := strings.TrimSpace(ref)
	if !strings.HasPrefix(trimmed, referencePrefix) {
		return Reference{}, fmt.Errorf("%w %q: must start with %q", ErrMalformedReference, ref, referencePrefix)
	}

	segments := strings.Split(strings.TrimPrefix(trimmed, referencePrefix), "/")
	for i, segment := range segments {
		segments[i] = decodeJSONPointerToken(segment)
	}

	switch segments[0] {
	case namespaceDefinitions:
		if len(segments) != 2 || segments[1] == "" {
			return Reference{}, fmt.Errorf("%w %q: want #/definitions/{name}", ErrMalformedReference, ref)
		}

		return Reference{Namespace: namespaceDefinitions, Name: segments[1]}, nil
	case namespaceComponents:
		if len(segments) != 3 || segments[1] != componentsSchemas || segments[2] == "" {
			return Reference{}, fmt.Errorf("%w %q: want #/components/schemas/{name}", ErrMalformedReference, ref)
		}

		return Reference{Namespace: namespaceComponents, Name: segments[2]}, nil
	default:
		return Reference{}, fmt.Errorf("%w %q: unknown namespace %q", ErrMalformedReference, ref, segments[0])
	}
}

// Lookup returns the definition ref points to.
func (doc *Document) Lookup(ref string) (Schema, error) {
	parsed, err := ParseReference(ref)
	if err != nil {
		return nil, err
	}

	if err, ok := doc.invalid[parsed]; ok {
		return nil, fmt.Errorf("%q: %w", ref, err)
	}

	var namespace map[string]Schema
	switch parsed.Namespace {
	case namespaceDefinitions:
		namespace = doc.Definitions
	case namespaceComponents:
		namespace = doc.Schemas
	}

	target, ok := namespace[parsed.Name]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnresolvedReference, ref)
	}

	return target, nil
}

// decodeJSONPointerToken unescapes one JSON pointer token.
func decodeJSONPointerToken(token string) string {
	token = strings.ReplaceAll(token, "~1", "/")
	token = strings.ReplaceAll(token, "~0", "~")
	return token
}

// encodeJSONPointerToken escapes one JSON pointer token.
func encodeJSONPointerToken(token string) string {
	token = strings.ReplaceAll(token, "~", "~0")
	token = strings.ReplaceAll(token, "/", "~1")
	return token
}

// appendPointer joins JSON pointer location with one escaped token.
func appendPointer(base, token string) string {
	return base + "/" + encodeJSONPointerToken(token)
}
