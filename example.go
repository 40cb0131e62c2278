// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/apidoc

package apidoc

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// ExampleFormatJSON encodes example payload as JSON.
	ExampleFormatJSON ExampleFormat = "json"
	// ExampleFormatYAML encodes example payload as YAML.
	ExampleFormatYAML ExampleFormat = "yaml"
)

// ExampleFormat configures output format for example payloads.
type ExampleFormat string

// ExampleField is one key of an example object.
type ExampleField struct {
	Key   string
	Value any
}

// ExampleObject is an example object keeping property declaration order.
type ExampleObject []ExampleField

// MarshalJSON encodes fields as JSON object in declaration order.
func (object ExampleObject) MarshalJSON() ([]byte, error) {
	var out bytes.Buffer
	out.WriteByte('{')

	for index, field := range object {
		if index > 0 {
			out.WriteByte(',')
		}

		key, err := marshalJSONValue(field.Key)
		if err != nil {
			return nil, err
		}

		value, err := marshalJSONValue(field.Value)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", field.Key, err)
		}

		out.Write(key)
		out.WriteByte(':')
		out.Write(value)
	}

	out.WriteByte('}')
	return out.Bytes(), nil
}

// Get returns value stored under key.
func (object ExampleObject) Get(key string) (any, bool) {
	for _, field := range object {
		if field.Key == key {
			return field.Value, true
		}
	}

	return nil, false
}

// Keys returns object keys in declaration order.
func (object ExampleObject) Keys() []string {
	out := make([]string, 0, len(object))
	for _, field := range object {
		out = append(out, field.Key)
	}

	return out
}

// GenerateExample decodes schema bytes and encodes example for the definition ref points to.
func GenerateExample(schemaBytes []byte, ref string, format ExampleFormat) ([]byte, error) {
	format, err := NormalizeExampleFormat(format)
	if err != nil {
		return nil, err
	}

	doc, err := ParseDocument(schemaBytes)
	if err != nil {
		return nil, err
	}

	value, err := ResolveReferenceExample(doc, ref)
	if err != nil {
		return nil, err
	}

	return EncodeExample(value, format)
}

// EncodeExample encodes example value in selected format.
func EncodeExample(value any, format ExampleFormat) ([]byte, error) {
	format, err := NormalizeExampleFormat(format)
	if err != nil {
		return nil, err
	}

	switch format {
	case ExampleFormatYAML:
		node, err := yamlNodeForValue(value)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrEncodeExampleYAML, err)
		}

		data, err := marshalExampleYAMLNode(node)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrEncodeExampleYAML, err)
		}

		return data, nil
	default:
		data, err := marshalExampleJSON(value)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrEncodeExampleJSON, err)
		}

		return data, nil
	}
}

// NormalizeExampleFormat validates format; empty value selects JSON.
func NormalizeExampleFormat(format ExampleFormat) (ExampleFormat, error) {
	normalized := ExampleFormat(strings.ToLower(strings.TrimSpace(string(format))))
	switch normalized {
	case "":
		return ExampleFormatJSON, nil
	case ExampleFormatJSON, ExampleFormatYAML:
		return normalized, nil
	default:
		return "", fmt.Errorf("%w %q", ErrUnknownExampleFormat, format)
	}
}

// marshalJSONValue marshals one value without HTML escaping.
func marshalJSONValue(value any) ([]byte, error) {
	var out bytes.Buffer
	encoder := json.NewEncoder(&out)
	encoder.SetEscapeHTML(false)

	if err := encoder.Encode(value); err != nil {
		return nil, err
	}

	return bytes.TrimRight(out.Bytes(), "\n"), nil
}

// marshalExampleJSON serializes example payload as pretty JSON.
func marshalExampleJSON(value any) ([]byte, error) {
	var out bytes.Buffer
	encoder := json.NewEncoder(&out)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", "  ")

	if err := encoder.Encode(value); err != nil {
		return nil, err
	}

	return out.Bytes(), nil
}

// marshalExampleYAMLNode serializes example node as YAML document.
func marshalExampleYAMLNode(node *yaml.Node) ([]byte, error) {
	document := &yaml.Node{
		Kind:    yaml.DocumentNode,
		Content: []*yaml.Node{node},
	}

	var out bytes.Buffer
	encoder := yaml.NewEncoder(&out)
	encoder.SetIndent(2)

	if err := encoder.Encode(document); err != nil {
		return nil, err
	}

	if err := encoder.Close(); err != nil {
		return nil, err
	}

	return out.Bytes(), nil
}

// yamlNodeForValue builds yaml.Node tree from resolved example value.
func yamlNodeForValue(value any) (*yaml.Node, error) {
	switch typed := value.(type) {
	case nil:
		return yamlScalarNode("!!null", "null"), nil
	case bool:
		return yamlScalarNode("!!bool", strconv.FormatBool(typed)), nil
	case string:
		return yamlScalarNode("!!str", typed), nil
	case int:
		return yamlScalarNode("!!int", strconv.Itoa(typed)), nil
	case int64:
		return yamlScalarNode("!!int", strconv.FormatInt(typed, 10)), nil
	case float64:
		return yamlScalarNode("!!float", strconv.FormatFloat(typed, 'g', -1, 64)), nil
	case ExampleObject:
		node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for _, field := range typed {
			valueNode, err := yamlNodeForValue(field.Value)
			if err != nil {
				return nil, err
			}

			node.Content = append(node.Content, yamlScalarNode("!!str", field.Key), valueNode)
		}

		return node, nil
	case []any:
		node := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		if len(typed) == 0 {
			node.Style = yaml.FlowStyle
		}

		for _, item := range typed {
			valueNode, err := yamlNodeForValue(item)
			if err != nil {
				return nil, err
			}

			node.Content = append(node.Content, valueNode)
		}

		return node, nil
	default:
		return nil, fmt.Errorf("unsupported example value %T", value)
	}
}

// yamlScalarNode creates one scalar yaml.Node with explicit tag.
func yamlScalarNode(tag, value string) *yaml.Node {
	return &yaml.Node{
		Kind:  yaml.ScalarNode,
		Tag:   tag,
		Value: value,
	}
}
