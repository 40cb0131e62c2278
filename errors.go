// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/apidoc

package apidoc

import "errors"

var (
	// ErrReadSchemaFile is returned when schema file loading fails.
	ErrReadSchemaFile = errors.New("read schema file")
	// ErrDecodeSchema is returned when schema document decoding fails.
	ErrDecodeSchema = errors.New("decode schema")
	// ErrSchemaRootType is returned when schema root is not a mapping.
	ErrSchemaRootType = errors.New("schema root must be a mapping")
	// ErrMissingPaths is returned when schema document has no paths mapping.
	ErrMissingPaths = errors.New("schema has no paths")
	// ErrMissingType is returned when a type definition has neither type nor $ref.
	ErrMissingType = errors.New("type definition has no type")
	// ErrMalformedReference is returned when $ref does not point into a supported namespace.
	ErrMalformedReference = errors.New("malformed reference")
	// ErrUnresolvedReference is returned when $ref target does not exist in the document.
	ErrUnresolvedReference = errors.New("unresolved reference")
	// ErrCircularReference is returned when $ref chain points back to itself.
	ErrCircularReference = errors.New("circular reference")
	// ErrExecuteMarkdownTemplate is returned when markdown template execution fails.
	ErrExecuteMarkdownTemplate = errors.New("execute markdown template")
	// ErrUnknownBuiltinTemplate is returned when requested built-in template name is not registered.
	ErrUnknownBuiltinTemplate = errors.New("unknown built-in template")
	// ErrReadBuiltinTemplate is returned when built-in template file loading fails.
	ErrReadBuiltinTemplate = errors.New("read built-in template")
	// ErrParseBuiltinTemplate is returned when built-in template parsing fails.
	ErrParseBuiltinTemplate = errors.New("parse built-in template")
	// ErrUnknownExampleFormat is returned when example encoding format is not supported.
	ErrUnknownExampleFormat = errors.New("unknown example format")
	// ErrEncodeExampleJSON is returned when example JSON encoding fails.
	ErrEncodeExampleJSON = errors.New("encode example json")
	// ErrEncodeExampleYAML is returned when example YAML encoding fails.
	ErrEncodeExampleYAML = errors.New("encode example yaml")
)
