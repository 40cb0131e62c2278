// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/apidoc

package apidoc

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// httpMethods lists path item keys treated as operations.
var httpMethods = map[string]struct{}{
	"get":     {},
	"put":     {},
	"post":    {},
	"delete":  {},
	"options": {},
	"head":    {},
	"patch":   {},
	"trace":   {},
}

// nodeEntry is one key/value pair of a YAML mapping node.
type nodeEntry struct {
	Key   string
	Value *yaml.Node
}

// documentDecoder converts YAML node tree into typed document.
type documentDecoder struct {
	root   *yaml.Node
	logger *slog.Logger
}

// ParseDocument decodes JSON or YAML schema document bytes.
//
// Mapping order of the input is kept in Document.Paths, operations,
// parameters, responses and object properties.
func ParseDocument(data []byte) (*Document, error) {
	return parseDocument(data, discardLogger())
}

// parseDocument decodes schema bytes and logs skipped input with logger.
func parseDocument(data []byte, logger *slog.Logger) (*Document, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecodeSchema, err)
	}

	if node.Kind != yaml.DocumentNode || len(node.Content) == 0 {
		return nil, fmt.Errorf("%w: empty document", ErrDecodeSchema)
	}

	root := resolveAlias(node.Content[0])
	if root.Kind != yaml.MappingNode {
		return nil, ErrSchemaRootType
	}

	decoder := documentDecoder{root: root, logger: logger}
	return decoder.decode()
}

// decode converts root mapping into document.
func (decoder *documentDecoder) decode() (*Document, error) {
	paths := mappingValue(decoder.root, "paths")
	if paths == nil {
		return nil, ErrMissingPaths
	}

	if paths.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w: paths must be a mapping", ErrDecodeSchema)
	}

	doc := &Document{
		Paths:   make([]PathItem, 0, len(paths.Content)/2),
		invalid: make(map[Reference]error),
	}

	definitions, err := decoder.decodeNamespace(doc, mappingValue(decoder.root, namespaceDefinitions), namespaceDefinitions, "#/"+namespaceDefinitions)
	if err != nil {
		return nil, err
	}

	components := mappingValue(decoder.root, namespaceComponents)
	schemas, err := decoder.decodeNamespace(doc, mappingValue(components, componentsSchemas), namespaceComponents, "#/"+namespaceComponents+"/"+componentsSchemas)
	if err != nil {
		return nil, err
	}

	doc.Definitions = definitions
	doc.Schemas = schemas

	for _, entry := range mappingEntries(paths) {
		item, err := decoder.decodePathItem(entry.Key, entry.Value, appendPointer("#/paths", entry.Key))
		if err != nil {
			return nil, err
		}

		doc.Paths = append(doc.Paths, item)
	}

	return doc, nil
}

// decodeNamespace decodes one named definitions mapping.
//
// A definition that fails to decode is recorded in doc and only reported
// when a reference points to it.
func (decoder *documentDecoder) decodeNamespace(doc *Document, node *yaml.Node, namespace, at string) (map[string]Schema, error) {
	out := make(map[string]Schema)
	if node == nil {
		return out, nil
	}

	if node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w at %s: namespace must be a mapping", ErrDecodeSchema, at)
	}

	for _, entry := range mappingEntries(node) {
		location := appendPointer(at, entry.Key)
		schema, err := decodeSchema(entry.Value, location)
		if err != nil {
			doc.invalid[Reference{Namespace: namespace, Name: entry.Key}] = err
			decoder.logger.Debug("skip invalid definition", "definition", location, "error", err)
			continue
		}

		out[entry.Key] = schema
	}

	return out, nil
}

// decodePathItem decodes one endpoint path and its operations.
func (decoder *documentDecoder) decodePathItem(path string, node *yaml.Node, at string) (PathItem, error) {
	node = resolveAlias(node)
	if node == nil || node.Kind != yaml.MappingNode {
		return PathItem{}, fmt.Errorf("%w at %s: path item must be a mapping", ErrDecodeSchema, at)
	}

	sharedNode := mappingValue(node, "parameters")
	shared, err := decoder.decodeParameters(sharedNode, at+"/parameters")
	if err != nil {
		return PathItem{}, err
	}

	item := PathItem{Path: path}
	for _, entry := range mappingEntries(node) {
		method := strings.ToLower(strings.TrimSpace(entry.Key))
		if _, ok := httpMethods[method]; !ok {
			if entry.Key != "parameters" {
				decoder.logger.Debug("skip path item key", "path", path, "key", entry.Key)
			}

			continue
		}

		operation, err := decoder.decodeOperation(method, entry.Value, appendPointer(at, entry.Key), shared, sharedNode != nil)
		if err != nil {
			return PathItem{}, err
		}

		item.Operations = append(item.Operations, operation)
	}

	return item, nil
}

// decodeOperation decodes one method entry.
func (decoder *documentDecoder) decodeOperation(method string, node *yaml.Node, at string, shared []Parameter, hasShared bool) (Operation, error) {
	node = resolveAlias(node)
	if node == nil || node.Kind != yaml.MappingNode {
		return Operation{}, fmt.Errorf("%w at %s: operation must be a mapping", ErrDecodeSchema, at)
	}

	operation := Operation{
		Method:      method,
		OperationID: scalarString(mappingValue(node, "operationId")),
		Description: scalarString(mappingValue(node, "description")),
	}

	ownNode := mappingValue(node, "parameters")
	own, err := decoder.decodeParameters(ownNode, at+"/parameters")
	if err != nil {
		return Operation{}, err
	}

	operation.Parameters = mergeParameters(shared, own)
	operation.HasParameters = hasShared || ownNode != nil

	responses, err := decoder.decodeResponses(mappingValue(node, "responses"), at+"/responses")
	if err != nil {
		return Operation{}, err
	}

	operation.Responses = responses
	return operation, nil
}

// decodeParameters decodes a parameters sequence.
func (decoder *documentDecoder) decodeParameters(node *yaml.Node, at string) ([]Parameter, error) {
	if node == nil {
		return nil, nil
	}

	if node.Kind != yaml.SequenceNode {
		return nil, fmt.Errorf("%w at %s: parameters must be a sequence", ErrDecodeSchema, at)
	}

	out := make([]Parameter, 0, len(node.Content))
	for index, raw := range node.Content {
		location := at + "/" + strconv.Itoa(index)
		item, err := decoder.followReference(raw, location)
		if err != nil {
			return nil, err
		}

		if item.Kind != yaml.MappingNode {
			return nil, fmt.Errorf("%w at %s: parameter must be a mapping", ErrDecodeSchema, location)
		}

		required, _ := scalarBool(mappingValue(item, "required"))
		out = append(out, Parameter{
			Name:        scalarString(mappingValue(item, "name")),
			In:          scalarString(mappingValue(item, "in")),
			Type:        parameterType(item),
			Required:    required,
			Description: scalarString(mappingValue(item, "description")),
		})
	}

	return out, nil
}

// decodeResponses decodes a status code mapping.
func (decoder *documentDecoder) decodeResponses(node *yaml.Node, at string) ([]Response, error) {
	if node == nil {
		return nil, nil
	}

	if node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w at %s: responses must be a mapping", ErrDecodeSchema, at)
	}

	out := make([]Response, 0, len(node.Content)/2)
	for _, entry := range mappingEntries(node) {
		location := appendPointer(at, entry.Key)
		item, err := decoder.followReference(entry.Value, location)
		if err != nil {
			return nil, err
		}

		response := Response{
			Code:        entry.Key,
			Description: scalarString(mappingValue(item, "description")),
		}

		schemaNode, schemaAt := responseSchemaNode(item, location)
		if schemaNode != nil {
			schema, err := decodeSchema(schemaNode, schemaAt)
			if err != nil {
				return nil, err
			}

			response.Schema = schema
		}

		out = append(out, response)
	}

	return out, nil
}

// followReference replaces $ref mapping nodes with their JSON pointer targets.
func (decoder *documentDecoder) followReference(node *yaml.Node, at string) (*yaml.Node, error) {
	seen := make(map[string]struct{})
	for {
		node = resolveAlias(node)
		if node == nil {
			return nil, fmt.Errorf("%w at %s: empty value", ErrDecodeSchema, at)
		}

		ref := scalarString(mappingValue(node, "$ref"))
		if ref == "" {
			return node, nil
		}

		if _, ok := seen[ref]; ok {
			return nil, fmt.Errorf("%w %q at %s", ErrCircularReference, ref, at)
		}

		seen[ref] = struct{}{}
		target, ok := resolveJSONPointer(decoder.root, ref)
		if !ok {
			return nil, fmt.Errorf("%w %q at %s", ErrUnresolvedReference, ref, at)
		}

		node = target
	}
}

// decodeSchema converts one type definition node into schema variant.
func decodeSchema(node *yaml.Node, at string) (Schema, error) {
	node = resolveAlias(node)
	if node == nil || node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w at %s: type definition must be a mapping", ErrDecodeSchema, at)
	}

	if refNode := mappingValue(node, "$ref"); refNode != nil {
		ref := scalarString(refNode)
		if _, err := ParseReference(ref); err != nil {
			return nil, fmt.Errorf("at %s: %w", at, err)
		}

		return RefSchema{Ref: ref}, nil
	}

	typeName := schemaTypeName(mappingValue(node, "type"))
	if typeName == "" {
		return nil, fmt.Errorf("%w at %s", ErrMissingType, at)
	}

	switch typeName {
	case "object":
		return decodeObjectSchema(node, at)
	case "array":
		return ArraySchema{}, nil
	case "string":
		return StringSchema{}, nil
	case "integer":
		return IntegerSchema{}, nil
	case "boolean":
		return BooleanSchema{}, nil
	case "float":
		return FloatSchema{}, nil
	default:
		return OtherSchema{Type: typeName}, nil
	}
}

// decodeObjectSchema decodes object properties in declaration order.
func decodeObjectSchema(node *yaml.Node, at string) (Schema, error) {
	properties := mappingValue(node, "properties")
	if properties == nil {
		return ObjectSchema{}, nil
	}

	if properties.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w at %s/properties: properties must be a mapping", ErrDecodeSchema, at)
	}

	object := ObjectSchema{
		Properties:    make([]Property, 0, len(properties.Content)/2),
		HasProperties: true,
	}

	for _, entry := range mappingEntries(properties) {
		schema, err := decodeSchema(entry.Value, appendPointer(at+"/properties", entry.Key))
		if err != nil {
			return nil, err
		}

		object.Properties = append(object.Properties, Property{Name: entry.Key, Schema: schema})
	}

	return object, nil
}

// responseSchemaNode returns JSON content schema or Swagger 2 response schema.
func responseSchemaNode(response *yaml.Node, at string) (*yaml.Node, string) {
	content := mappingValue(response, "content")
	if media := mappingValue(content, "application/json"); media != nil {
		if schema := mappingValue(media, "schema"); schema != nil {
			return schema, at + "/content/application~1json/schema"
		}
	}

	if schema := mappingValue(response, "schema"); schema != nil {
		return schema, at + "/schema"
	}

	return nil, ""
}

// parameterType returns schema type, schema reference or Swagger 2 inline type.
func parameterType(parameter *yaml.Node) string {
	schema := mappingValue(parameter, "schema")
	if schema == nil {
		return schemaTypeName(mappingValue(parameter, "type"))
	}

	if typeName := schemaTypeName(mappingValue(schema, "type")); typeName != "" {
		return typeName
	}

	return scalarString(mappingValue(schema, "$ref"))
}

// mergeParameters appends operation parameters to shared path parameters.
// Operation parameters override shared ones with the same name and location.
func mergeParameters(shared, own []Parameter) []Parameter {
	if len(shared) == 0 {
		return own
	}

	overridden := make(map[string]struct{}, len(own))
	for _, parameter := range own {
		overridden[parameter.In+"\x00"+parameter.Name] = struct{}{}
	}

	out := make([]Parameter, 0, len(shared)+len(own))
	for _, parameter := range shared {
		if _, ok := overridden[parameter.In+"\x00"+parameter.Name]; ok {
			continue
		}

		out = append(out, parameter)
	}

	return append(out, own...)
}

// schemaTypeName returns first non-null value of a "type" keyword node.
func schemaTypeName(node *yaml.Node) string {
	node = resolveAlias(node)
	if node == nil {
		return ""
	}

	switch node.Kind {
	case yaml.ScalarNode:
		return scalarString(node)
	case yaml.SequenceNode:
		hasNull := false
		for _, item := range node.Content {
			text := scalarString(resolveAlias(item))
			if text == "" {
				continue
			}

			if strings.EqualFold(text, "null") {
				hasNull = true
				continue
			}

			return text
		}

		if hasNull {
			return "null"
		}
	}

	return ""
}

// resolveJSONPointer resolves local JSON pointer reference against root node.
func resolveJSONPointer(root *yaml.Node, ref string) (*yaml.Node, bool) {
	ref = strings.TrimSpace(ref)
	if ref == "#" {
		return root, true
	}

	if !strings.HasPrefix(ref, referencePrefix) {
		return nil, false
	}

	current := root
	for token := range strings.SplitSeq(strings.TrimPrefix(ref, referencePrefix), "/") {
		token = decodeJSONPointerToken(token)
		current = resolveAlias(current)
		if current == nil {
			return nil, false
		}

		switch current.Kind {
		case yaml.MappingNode:
			next := mappingValue(current, token)
			if next == nil {
				return nil, false
			}

			current = next
		case yaml.SequenceNode:
			index, err := strconv.Atoi(token)
			if err != nil || index < 0 || index >= len(current.Content) {
				return nil, false
			}

			current = current.Content[index]
		default:
			return nil, false
		}
	}

	return resolveAlias(current), true
}

// mappingEntries returns mapping node pairs in document order.
func mappingEntries(node *yaml.Node) []nodeEntry {
	node = resolveAlias(node)
	if node == nil || node.Kind != yaml.MappingNode {
		return nil
	}

	out := make([]nodeEntry, 0, len(node.Content)/2)
	for index := 0; index+1 < len(node.Content); index += 2 {
		out = append(out, nodeEntry{
			Key:   node.Content[index].Value,
			Value: node.Content[index+1],
		})
	}

	return out
}

// mappingValue returns value node for key or nil when absent.
func mappingValue(node *yaml.Node, key string) *yaml.Node {
	node = resolveAlias(node)
	if node == nil || node.Kind != yaml.MappingNode {
		return nil
	}

	for index := 0; index+1 < len(node.Content); index += 2 {
		if node.Content[index].Value == key {
			return resolveAlias(node.Content[index+1])
		}
	}

	return nil
}

// scalarString returns scalar text, empty for null and non-scalar nodes.
func scalarString(node *yaml.Node) string {
	node = resolveAlias(node)
	if node == nil || node.Kind != yaml.ScalarNode || node.Tag == "!!null" {
		return ""
	}

	return node.Value
}

// scalarBool decodes boolean scalar value.
func scalarBool(node *yaml.Node) (bool, bool) {
	node = resolveAlias(node)
	if node == nil || node.Kind != yaml.ScalarNode {
		return false, false
	}

	var value bool
	if err := node.Decode(&value); err != nil {
		return false, false
	}

	return value, true
}

// resolveAlias follows YAML alias nodes to their anchors.
func resolveAlias(node *yaml.Node) *yaml.Node {
	for node != nil && node.Kind == yaml.AliasNode {
		node = node.Alias
	}

	return node
}
