// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/apidoc

package apidoc

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"strings"
)

// buildRenderView walks document paths and resolves every response example.
func buildRenderView(doc *Document, opt Options) (renderView, error) {
	if doc == nil {
		return renderView{}, errors.New("document is nil")
	}

	format, err := NormalizeExampleFormat(opt.ExampleFormat)
	if err != nil {
		return renderView{}, err
	}

	version := strings.TrimSpace(opt.APIVersion)
	if version == "" {
		version = DefaultAPIVersion
	}

	baseURL := strings.TrimRight(strings.TrimSpace(opt.BaseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	logger := opt.logger()
	view := renderView{
		APIVersion:    version,
		BaseURL:       baseURL,
		ExampleFormat: string(format),
		Endpoints:     make([]endpointView, 0, len(doc.Paths)),
	}

	for _, item := range doc.Paths {
		endpoint := endpointView{
			Path:       item.Path,
			Operations: make([]operationView, 0, len(item.Operations)),
		}

		for _, operation := range item.Operations {
			section, err := buildOperationView(doc, item.Path, operation, view, opt.WrapWidth, logger)
			if err != nil {
				return renderView{}, err
			}

			endpoint.Operations = append(endpoint.Operations, section)
		}

		view.Endpoints = append(view.Endpoints, endpoint)
	}

	return view, nil
}

// buildOperationView renders one method section model.
func buildOperationView(doc *Document, path string, operation Operation, root renderView, wrapWidth int, logger *slog.Logger) (operationView, error) {
	method := strings.ToUpper(operation.Method)

	heading := strings.TrimSpace(operation.OperationID)
	if heading == "" {
		heading = method + " " + path
		logger.Debug("operation has no operationId", "path", path, "method", method)
	}

	out := operationView{
		Heading:     heading,
		Method:      method,
		RequestURL:  requestURL(root.BaseURL, root.APIVersion, path),
		Description: formatDescriptionMarkdown(operation.Description, wrapWidth),
		Responses:   make([]responseView, 0, len(operation.Responses)),
		Parameters:  parameterRows(operation.Parameters),

		HasParameters: operation.HasParameters || len(operation.Parameters) > 0,
	}

	for _, response := range operation.Responses {
		block, err := buildResponseView(doc, response, ExampleFormat(root.ExampleFormat))
		if err != nil {
			return operationView{}, fmt.Errorf("%s %s response %s: %w", method, path, response.Code, err)
		}

		out.Responses = append(out.Responses, block)
	}

	return out, nil
}

// buildResponseView resolves response example and formats response header.
func buildResponseView(doc *Document, response Response, format ExampleFormat) (responseView, error) {
	out := responseView{
		Code:        response.Code,
		Description: sanitizeText(response.Description),
	}

	if response.Schema == nil {
		return out, nil
	}

	value, err := ResolveExample(doc, response.Schema)
	if err != nil {
		return responseView{}, err
	}

	data, err := EncodeExample(value, format)
	if err != nil {
		return responseView{}, err
	}

	out.Example = string(bytes.TrimRight(data, "\n"))
	return out, nil
}

// requestURL builds "{base}/v{version}{path}" request target.
func requestURL(baseURL, version, path string) string {
	return baseURL + "/v" + version + path
}
