// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/apidoc

/*
Package apidoc renders Markdown API references from OpenAPI-like documents.

A document maps endpoint paths to HTTP methods and their metadata
(operationId, description, parameters, responses). Named type definitions
live in "definitions" or "components.schemas" and are referenced with
"#/definitions/{name}" or "#/components/schemas/{name}". Every response
schema is turned into an example payload: objects map each property to its
own example, arrays become empty lists and scalars get fixed placeholders
("some-string", 42, true, 17.29).

Render from schema bytes (JSON or YAML):

	schemaBytes, err := os.ReadFile("store-api.json")
	if err != nil {
		return err
	}

	md, err := apidoc.Render(schemaBytes, apidoc.Options{
		APIVersion: "3",
	})
	if err != nil {
		return err
	}

	fmt.Print(md)

Render an already decoded document:

	doc, err := apidoc.ParseDocument(schemaBytes)
	if err != nil {
		return err
	}

	md, err := apidoc.RenderDocument(doc, apidoc.Options{
		BaseURL:       "https://shop.example.com/store-api",
		ExampleFormat: apidoc.ExampleFormatYAML,
	})

Resolve one definition into an example payload:

	value, err := apidoc.ResolveReferenceExample(doc, "#/components/schemas/Product")
	if err != nil {
		return err
	}

	data, err := apidoc.EncodeExample(value, apidoc.ExampleFormatJSON)

Unresolved references fail with ErrUnresolvedReference and abort the whole
render; no partial document is returned.
*/
package apidoc
