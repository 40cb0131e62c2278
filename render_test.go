// SPDX-License-Identifier: AGPL-3.0-only
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/apidoc

package apidoc

import (
	"bytes"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const pingDocument = `{"paths": {"/ping": {"get": {"operationId": "ping", "description": "Health check", "responses": {"200": {"description": "OK", "content": {"application/json": {"schema": {"type": "object", "properties": {"status": {"type": "string"}}}}}}}}}}}`

func TestRenderPingRoundTrip(t *testing.T) {
	t.Parallel()

	rendered, err := Render([]byte(pingDocument), Options{APIVersion: "3"})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	assertContains(t, rendered, "# /ping\n")
	assertContains(t, rendered, "## ping\n")
	assertContains(t, rendered, "`GET http://example.com/store-api/v3/ping`")
	assertContains(t, rendered, "```json\n{\n  \"status\": \"some-string\"\n}\n```")

	want := "# /ping\n" +
		"\n" +
		"## ping\n" +
		"\n" +
		"> **Responses**\n" +
		"\n" +
		"> 200 - OK\n" +
		"\n" +
		"```json\n" +
		"{\n" +
		"  \"status\": \"some-string\"\n" +
		"}\n" +
		"```\n" +
		"\n" +
		"Health check\n" +
		"\n" +
		"### HTTP Request\n" +
		"\n" +
		"`GET http://example.com/store-api/v3/ping`\n"

	if rendered != want {
		t.Fatalf("rendered markdown mismatch\ngot:\n%s\nwant:\n%s", rendered, want)
	}
}

func TestRenderParameterTable(t *testing.T) {
	t.Parallel()

	rendered, err := Render([]byte(`{
  "paths": {
    "/product/{id}": {
      "get": {
        "operationId": "readProduct",
        "parameters": [
          {"name": "id", "schema": {"type": "integer"}, "in": "path", "required": true}
        ]
      }
    }
  }
}`), Options{})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	want := "# /product/{id}\n" +
		"\n" +
		"## readProduct\n" +
		"\n" +
		"### HTTP Request\n" +
		"\n" +
		"`GET http://example.com/store-api/v3/product/{id}`\n" +
		"\n" +
		"### Parameters:\n" +
		"\n" +
		"Parameter | Type | In | Required | Description\n" +
		"----- | ----- | -----| ----- | -----\n" +
		"**id** | integer | path | yes | \n"

	if rendered != want {
		t.Fatalf("rendered markdown mismatch\ngot:\n%q\nwant:\n%q", rendered, want)
	}
}

func TestRenderParameterRows(t *testing.T) {
	t.Parallel()

	rendered, err := Render([]byte(`{
  "paths": {
    "/search": {
      "post": {
        "operationId": "searchPage",
        "parameters": [
          {"name": "search", "in": "query", "schema": {"type": "string"}, "description": "Search term"},
          {"name": "criteria", "in": "body", "schema": {"$ref": "#/definitions/Criteria"}},
          {"name": "filter", "in": "query", "schema": {"type": "string"}, "description": "a | b\nc"}
        ]
      }
    }
  }
}`), Options{})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	assertContains(t, rendered, "\n**search** | string | query | no | Search term\n")
	assertContains(t, rendered, "\n**criteria** | #/definitions/Criteria | body | no | \n")
	assertContains(t, rendered, "\n**filter** | string | query | no | a \\| b c\n")
}

func TestRenderUnresolvedReferenceAbortsDocument(t *testing.T) {
	t.Parallel()

	rendered, err := Render([]byte(`{
  "paths": {
    "/ok": {"get": {"operationId": "ok", "responses": {"200": {"description": "OK", "schema": {"type": "string"}}}}},
    "/broken": {"get": {"operationId": "broken", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Missing"}}}}}
  }
}`), Options{})
	if !errors.Is(err, ErrUnresolvedReference) {
		t.Fatalf("Render error = %v, want ErrUnresolvedReference", err)
	}

	if rendered != "" {
		t.Fatalf("partial output returned: %q", rendered)
	}

	assertContains(t, err.Error(), "GET /broken response 200")
	assertContains(t, err.Error(), "#/definitions/Missing")
}

func TestRenderIgnoresUnreferencedInvalidDefinitions(t *testing.T) {
	t.Parallel()

	rendered, err := Render([]byte(`{
  "paths": {"/ping": {"get": {"operationId": "ping", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Status"}}}}}},
  "definitions": {
    "Status": {"type": "string"},
    "Unused": {"type": "object", "properties": {"error": {"$ref": "#/components/responses/Err"}}}
  },
  "components": {
    "schemas": {
      "Composed": {"allOf": [{"type": "string"}]}
    }
  }
}`), Options{})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	assertContains(t, rendered, "```json\n\"some-string\"\n```")
}

func TestRenderReferencedUntypedDefinitionFails(t *testing.T) {
	t.Parallel()

	rendered, err := Render([]byte(`{
  "paths": {"/ping": {"get": {"operationId": "ping", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/components/schemas/Composed"}}}}}},
  "components": {
    "schemas": {
      "Composed": {"allOf": [{"type": "string"}]}
    }
  }
}`), Options{})
	if !errors.Is(err, ErrMissingType) {
		t.Fatalf("Render error = %v, want ErrMissingType", err)
	}

	if rendered != "" {
		t.Fatalf("partial output returned: %q", rendered)
	}

	assertContains(t, err.Error(), "#/components/schemas/Composed")
}

func TestRenderEmptyParametersKeepsTable(t *testing.T) {
	t.Parallel()

	rendered, err := Render([]byte(`{
  "paths": {
    "/a": {"get": {"operationId": "listed", "parameters": []}},
    "/b": {"get": {"operationId": "absent"}}
  }
}`), Options{})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	header := "### Parameters:\n\nParameter | Type | In | Required | Description\n----- | ----- | -----| ----- | -----\n"
	assertContains(t, rendered, "`GET http://example.com/store-api/v3/a`\n\n"+header+"\n# /b")
	if strings.Count(rendered, "### Parameters:") != 1 {
		t.Fatalf("expected one parameters table in:\n%s", rendered)
	}
}

func TestRenderClosesUnterminatedDescriptionFence(t *testing.T) {
	t.Parallel()

	rendered, err := Render([]byte(`{
  "paths": {
    "/a": {"get": {"operationId": "first", "description": "intro\n` + "```" + `\ncode"}},
    "/b": {"get": {"operationId": "second"}}
  }
}`), Options{})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	assertContains(t, rendered, "intro\n```\ncode\n```\n\n### HTTP Request")
	assertNotContains(t, rendered, "\n\n\n")
	assertContains(t, rendered, "## second\n\n### HTTP Request\n")
}

func TestRenderKeepsDocumentOrder(t *testing.T) {
	t.Parallel()

	rendered, err := Render([]byte(`{
  "paths": {
    "/zeta": {
      "post": {"operationId": "createZeta"},
      "get": {"operationId": "readZeta"}
    },
    "/alpha": {
      "get": {"operationId": "readAlpha"}
    }
  }
}`), Options{})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	assertOrder(t, rendered, "# /zeta", "## createZeta", "`POST ", "## readZeta", "`GET ", "# /alpha", "## readAlpha")
}

func TestRenderResponsesBlock(t *testing.T) {
	t.Parallel()

	rendered, err := Render([]byte(`{
  "paths": {
    "/cart": {
      "delete": {
        "operationId": "deleteCart",
        "description": "Delete the cart",
        "responses": {
          "204": {"description": "Deleted"},
          "400": {"content": {"application/json": {"schema": {"$ref": "#/components/schemas/Error"}}}}
        }
      }
    }
  },
  "components": {
    "schemas": {
      "Error": {
        "type": "object",
        "properties": {
          "code": {"type": "integer"},
          "details": {"type": "array", "items": {"type": "string"}},
          "meta": {"type": "object"}
        }
      }
    }
  }
}`), Options{})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	assertContains(t, rendered, "> **Responses**\n\n> 204 - Deleted\n\n> 400 - \n\n```json\n")
	assertContains(t, rendered, "{\n  \"code\": 42,\n  \"details\": [],\n  \"meta\": \"object\"\n}")
	assertOrder(t, rendered, "> 204 - Deleted", "> 400 - ", "Delete the cart", "### HTTP Request", "`DELETE http://example.com/store-api/v3/cart`")
	assertNotContains(t, rendered, "### Parameters:")
}

func TestRenderWithoutResponsesOmitsResponsesHeading(t *testing.T) {
	t.Parallel()

	rendered, err := Render([]byte(`{"paths": {"/ping": {"get": {"operationId": "ping"}}}}`), Options{})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	assertNotContains(t, rendered, "> **Responses**")
}

func TestRenderOptionsBaseURLVersionAndYAML(t *testing.T) {
	t.Parallel()

	rendered, err := Render([]byte(pingDocument), Options{
		APIVersion:    "4",
		BaseURL:       "https://shop.example.com/store-api/",
		ExampleFormat: ExampleFormatYAML,
	})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	assertContains(t, rendered, "`GET https://shop.example.com/store-api/v4/ping`")
	assertContains(t, rendered, "```yaml\nstatus: some-string\n```")
	assertNotContains(t, rendered, "```json")
}

func TestRenderUnknownExampleFormat(t *testing.T) {
	t.Parallel()

	_, err := Render([]byte(pingDocument), Options{ExampleFormat: "xml"})
	if !errors.Is(err, ErrUnknownExampleFormat) {
		t.Fatalf("Render error = %v, want ErrUnknownExampleFormat", err)
	}
}

func TestRenderOperationIDFallback(t *testing.T) {
	t.Parallel()

	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))

	rendered, err := Render([]byte(`{
  "paths": {
    "/ping": {
      "summary": "Ping endpoint",
      "head": {"description": "Probe"}
    }
  }
}`), Options{Logger: logger})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	assertContains(t, rendered, "## HEAD /ping\n")
	assertContains(t, logs.String(), "skip path item key")
	assertContains(t, logs.String(), "key=summary")
	assertContains(t, logs.String(), "operation has no operationId")
}

func TestRenderWrapsDescription(t *testing.T) {
	t.Parallel()

	rendered, err := Render([]byte(`{
  "paths": {
    "/ping": {
      "get": {
        "operationId": "ping",
        "description": "one two three four five six\n\n- keep this list item as is\n- second"
      }
    }
  }
}`), Options{WrapWidth: 10})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	assertContains(t, rendered, "one two\nthree four\nfive six\n\n- keep this list item as is\n- second\n")
}

func TestRenderJoinsDescriptionLinesWithoutWrap(t *testing.T) {
	t.Parallel()

	rendered, err := Render([]byte(`{
  "paths": {
    "/ping": {
      "get": {
        "operationId": "ping",
        "description": "first line\r\nsecond line"
      }
    }
  }
}`), Options{})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	assertContains(t, rendered, "\nfirst line second line\n")
}

func TestRenderCustomTemplate(t *testing.T) {
	t.Parallel()

	rendered, err := Render([]byte(`{
  "paths": {
    "/ping": {"get": {"operationId": "ping"}},
    "/product/{id}": {"get": {"operationId": "readProduct"}}
  }
}`), Options{
		TemplateText: "{{ range .Endpoints }}- [{{ .Path }}](#{{ headingAnchor .Path }})\n{{ end }}\nVersion {{ inlineCode .APIVersion }}\n",
	})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	want := "- [/ping](#ping)\n- [/product/{id}](#product-id)\n\nVersion `3`\n"
	if rendered != want {
		t.Fatalf("custom template output = %q, want %q", rendered, want)
	}
}

func TestRenderUnknownBuiltinTemplate(t *testing.T) {
	t.Parallel()

	_, err := Render([]byte(pingDocument), Options{TemplateName: "slate"})
	if !errors.Is(err, ErrUnknownBuiltinTemplate) {
		t.Fatalf("Render error = %v, want ErrUnknownBuiltinTemplate", err)
	}
}

func TestBuiltinTemplates(t *testing.T) {
	t.Parallel()

	names := BuiltinTemplateNames()
	if strings.Join(names, ",") != "default" {
		t.Fatalf("BuiltinTemplateNames = %v", names)
	}

	text, err := BuiltinTemplate(" Default ")
	if err != nil {
		t.Fatalf("BuiltinTemplate: %v", err)
	}

	assertContains(t, text, "### HTTP Request")
}

func TestRenderDocumentNil(t *testing.T) {
	t.Parallel()

	if _, err := RenderDocument(nil, Options{}); err == nil {
		t.Fatal("RenderDocument(nil) should fail")
	}
}

func TestRenderEmptyPaths(t *testing.T) {
	t.Parallel()

	rendered, err := Render([]byte(`{"paths": {}}`), Options{})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	if rendered != "\n" {
		t.Fatalf("Render = %q, want single newline", rendered)
	}
}

func TestRenderFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "store-api.json")
	if err := os.WriteFile(path, []byte(pingDocument), 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	rendered, err := RenderFile(path, Options{})
	if err != nil {
		t.Fatalf("RenderFile: %v", err)
	}

	assertContains(t, rendered, "## ping")

	_, err = RenderFile(filepath.Join(t.TempDir(), "missing.json"), Options{})
	if !errors.Is(err, ErrReadSchemaFile) {
		t.Fatalf("RenderFile error = %v, want ErrReadSchemaFile", err)
	}
}

func TestRenderFixture(t *testing.T) {
	t.Parallel()

	rendered, err := RenderFile(filepath.Join("testdata", "store-api.fixture.json"), Options{})
	if err != nil {
		t.Fatalf("RenderFile: %v", err)
	}

	assertOrder(t, rendered,
		"# /product/{productId}",
		"## readProductDetail",
		"> 200 - Product information along with variant groups and options",
		"\"calculatedPrice\": {",
		"`POST http://example.com/store-api/v3/product/{productId}`",
		"**productId** | string | path | yes | Product ID",
		"# /checkout/cart",
		"## readCart",
		"`GET http://example.com/store-api/v3/checkout/cart`",
		"**sw-context-token** | string | header | no | ",
	)
}

func TestMarkdownHeadingAnchor(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"/ping":               "ping",
		"/checkout/cart":      "checkout-cart",
		"Read Product Detail": "read-product-detail",
		"  ":                  "",
	}

	for input, want := range cases {
		if got := markdownHeadingAnchor(input); got != want {
			t.Fatalf("markdownHeadingAnchor(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestNormalizeMarkdownOutput(t *testing.T) {
	t.Parallel()

	got := normalizeMarkdownOutput("\n\n# a\n\n\n\nb | \n```json\n\n\n{}\n```\n\n\n")
	want := "# a\n\nb | \n```json\n\n\n{}\n```"
	if got != want {
		t.Fatalf("normalizeMarkdownOutput = %q, want %q", got, want)
	}
}

// assertContains fails test when text does not contain expected substring.
func assertContains(t *testing.T, text, want string) {
	t.Helper()

	if !strings.Contains(text, want) {
		t.Fatalf("expected %q in:\n%s", want, text)
	}
}

// assertNotContains fails test when text contains unexpected substring.
func assertNotContains(t *testing.T, text, unexpected string) {
	t.Helper()

	if strings.Contains(text, unexpected) {
		t.Fatalf("unexpected %q in:\n%s", unexpected, text)
	}
}

// assertOrder fails test when parts do not appear in text in the given order.
func assertOrder(t *testing.T, text string, parts ...string) {
	t.Helper()

	offset := 0
	for _, part := range parts {
		index := strings.Index(text[offset:], part)
		if index < 0 {
			t.Fatalf("expected %q after offset %d in:\n%s", part, offset, text)
		}

		offset += index + len(part)
	}
}
