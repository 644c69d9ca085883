// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package source

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

// DecodeYAML decodes YAML bytes into an ordered Mapping. The document
// root must be a mapping (or empty). Decoding goes through yaml.Node
// rather than map[string]any: a plain map decode would destroy both key
// order and duplicate keys, and the resolver needs both (duplicates are
// how array fields accumulate).
func DecodeYAML(data []byte) (*Mapping, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing YAML: %w", err)
	}
	if doc.Kind == 0 || len(doc.Content) == 0 {
		return NewMapping(), nil
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("parsing YAML: top level must be a mapping")
	}
	return mappingFromYAML(root)
}

func mappingFromYAML(node *yaml.Node) (*Mapping, error) {
	mapping := NewMapping()
	for i := 0; i+1 < len(node.Content); i += 2 {
		keyNode := node.Content[i]
		value, err := valueFromYAML(node.Content[i+1])
		if err != nil {
			return nil, fmt.Errorf("key %q: %w", keyNode.Value, err)
		}
		mapping.Add(keyNode.Value, value)
	}
	return mapping, nil
}

func valueFromYAML(node *yaml.Node) (any, error) {
	switch node.Kind {
	case yaml.MappingNode:
		return mappingFromYAML(node)
	case yaml.SequenceNode:
		elements := make([]any, 0, len(node.Content))
		for _, child := range node.Content {
			element, err := valueFromYAML(child)
			if err != nil {
				return nil, err
			}
			elements = append(elements, element)
		}
		return elements, nil
	case yaml.AliasNode:
		return valueFromYAML(node.Alias)
	case yaml.ScalarNode:
		switch node.Tag {
		case "!!int":
			n, err := strconv.ParseInt(node.Value, 0, 64)
			if err != nil {
				return nil, fmt.Errorf("integer %q: %w", node.Value, err)
			}
			return n, nil
		case "!!float":
			f, err := strconv.ParseFloat(node.Value, 64)
			if err != nil {
				return nil, fmt.Errorf("float %q: %w", node.Value, err)
			}
			return f, nil
		case "!!bool":
			b, err := strconv.ParseBool(node.Value)
			if err != nil {
				return nil, fmt.Errorf("bool %q: %w", node.Value, err)
			}
			return b, nil
		case "!!null":
			return nil, nil
		default:
			return node.Value, nil
		}
	default:
		return nil, fmt.Errorf("unsupported YAML node kind %d", node.Kind)
	}
}

// DecodeJSONC decodes JSON-with-comments bytes into an ordered Mapping.
// Comments and trailing commas are stripped first (the same JSONC
// dialect deck configs may be authored in), then the stream is walked
// token by token so key order and duplicate keys survive.
func DecodeJSONC(data []byte) (*Mapping, error) {
	stripped := jsonc.ToJSON(data)
	decoder := json.NewDecoder(bytes.NewReader(stripped))
	decoder.UseNumber()

	token, err := decoder.Token()
	if err != nil {
		return nil, fmt.Errorf("parsing JSON: %w", err)
	}
	if delim, ok := token.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("parsing JSON: top level must be an object")
	}
	mapping, err := objectFromJSON(decoder)
	if err != nil {
		return nil, fmt.Errorf("parsing JSON: %w", err)
	}
	return mapping, nil
}

// objectFromJSON consumes object members up to and including the
// closing brace. The opening brace has already been consumed.
func objectFromJSON(decoder *json.Decoder) (*Mapping, error) {
	mapping := NewMapping()
	for decoder.More() {
		keyToken, err := decoder.Token()
		if err != nil {
			return nil, err
		}
		key, ok := keyToken.(string)
		if !ok {
			return nil, fmt.Errorf("object key is %T, not a string", keyToken)
		}
		value, err := valueFromJSON(decoder)
		if err != nil {
			return nil, fmt.Errorf("key %q: %w", key, err)
		}
		mapping.Add(key, value)
	}
	if _, err := decoder.Token(); err != nil {
		return nil, err
	}
	return mapping, nil
}

func valueFromJSON(decoder *json.Decoder) (any, error) {
	token, err := decoder.Token()
	if err != nil {
		return nil, err
	}
	switch typed := token.(type) {
	case json.Delim:
		switch typed {
		case '{':
			return objectFromJSON(decoder)
		case '[':
			var elements []any
			for decoder.More() {
				element, err := valueFromJSON(decoder)
				if err != nil {
					return nil, err
				}
				elements = append(elements, element)
			}
			if _, err := decoder.Token(); err != nil {
				return nil, err
			}
			return elements, nil
		default:
			return nil, fmt.Errorf("unexpected delimiter %v", typed)
		}
	case json.Number:
		if n, err := typed.Int64(); err == nil {
			return n, nil
		}
		f, err := typed.Float64()
		if err != nil {
			return nil, fmt.Errorf("number %q: %w", typed.String(), err)
		}
		return f, nil
	default:
		// string, bool, or nil.
		return token, nil
	}
}

// DecodeFile reads and decodes a config file, dispatching on its
// extension: .yaml/.yml via DecodeYAML, .json/.jsonc via DecodeJSONC.
func DecodeFile(path string) (*Mapping, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		mapping, err := DecodeYAML(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		return mapping, nil
	case ".json", ".jsonc":
		mapping, err := DecodeJSONC(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		return mapping, nil
	default:
		return nil, fmt.Errorf("%s: unsupported config extension (want .yaml, .yml, .json, or .jsonc)", path)
	}
}
