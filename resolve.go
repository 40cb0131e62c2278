// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/apidoc

package apidoc

import (
	"fmt"
	"slices"
	"strings"
)

// Placeholder values produced for scalar type definitions.
const (
	ExampleString  = "some-string"
	ExampleInteger = 42
	ExampleBoolean = true
	ExampleFloat   = 17.29
	// ExampleObjectWithoutProperties stands in for objects without properties keyword.
	ExampleObjectWithoutProperties = "object"
)

// ResolveExample builds a representative example value for schema.
//
// References are looked up in doc and resolved recursively. The result is
// built from string, int, bool, float64, []any and ExampleObject values.
func ResolveExample(doc *Document, schema Schema) (any, error) {
	return resolveExample(doc, schema, nil)
}

// ResolveReferenceExample builds example value for the definition ref points to.
func ResolveReferenceExample(doc *Document, ref string) (any, error) {
	return resolveExample(doc, RefSchema{Ref: ref}, nil)
}

// resolveExample resolves schema with chain holding references currently being expanded.
func resolveExample(doc *Document, schema Schema, chain []string) (any, error) {
	switch typed := schema.(type) {
	case RefSchema:
		if slices.Contains(chain, typed.Ref) {
			return nil, fmt.Errorf("%w: %s", ErrCircularReference, strings.Join(append(chain, typed.Ref), " -> "))
		}

		target, err := doc.Lookup(typed.Ref)
		if err != nil {
			return nil, err
		}

		return resolveExample(doc, target, append(chain[:len(chain):len(chain)], typed.Ref))
	case ObjectSchema:
		if !typed.HasProperties {
			return ExampleObjectWithoutProperties, nil
		}

		out := make(ExampleObject, 0, len(typed.Properties))
		for _, property := range typed.Properties {
			value, err := resolveExample(doc, property.Schema, chain)
			if err != nil {
				return nil, fmt.Errorf("property %q: %w", property.Name, err)
			}

			out = append(out, ExampleField{Key: property.Name, Value: value})
		}

		return out, nil
	case ArraySchema:
		return []any{}, nil
	case StringSchema:
		return ExampleString, nil
	case IntegerSchema:
		return ExampleInteger, nil
	case BooleanSchema:
		return ExampleBoolean, nil
	case FloatSchema:
		return ExampleFloat, nil
	case OtherSchema:
		return typed.Type, nil
	case nil:
		return nil, ErrMissingType
	default:
		return nil, fmt.Errorf("unsupported schema variant %T", schema)
	}
}
