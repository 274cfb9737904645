package util

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"reflect"
	"strings"

	"gopkg.in/yaml.v3"
)

// GetYamlLocation fetches a descriptive location of YAML node
func GetYamlLocation(node *yaml.Node) string {
	if len(node.Anchor) > 0 {
		return fmt.Sprintf("yaml line %d:%d %s", node.Line, node.Column, node.Anchor)
	}
	return fmt.Sprintf("yaml line %d:%d", node.Line, node.Column)
}

// MarshalYaml marshals the given source to a YAML string
func MarshalYaml(source interface{}) (string, error) {
	writer := &bytes.Buffer{}
	if err := EncodeYaml(writer, source); err != nil {
		return "", err
	}
	return writer.String(), nil
}

// EncodeYaml marshals the given source as YAML to the writer, indented by two spaces
func EncodeYaml(writer io.Writer, source interface{}) error {
	encoder := yaml.NewEncoder(writer)
	encoder.SetIndent(2)
	if err := encoder.Encode(source); err != nil {
		return err
	}
	return encoder.Close()
}

// NewYamlError creates a new error with location information of YAML node
func NewYamlError(node *yaml.Node, message string) error {
	return fmt.Errorf("yaml line %d:%d: %s", node.Line, node.Column, message)
}

// NewYamlErrorf creates a new error with location information of YAML node and formatted message
func NewYamlErrorf(node *yaml.Node, format string, args ...interface{}) error {
	return NewYamlError(node, fmt.Sprintf(format, args...))
}

// UnmarshalYamlFile loads and unmarshals YAML from file to interface or pointer to struct
func UnmarshalYamlFile(path string, output interface{}) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()
	if err := UnmarshalYamlReader(file, output); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

// UnmarshalYamlReader loads and unmarshals YAML from IO reader to interface or pointer to struct
func UnmarshalYamlReader(reader io.Reader, output interface{}) error {
	decoder := yaml.NewDecoder(reader)
	decoder.KnownFields(true) // only works outside of custom unmarshalers
	return decoder.Decode(output)
}

// DecodeYamlNodeKnownFields decodes a node into output, rejecting fields unknown to the output struct
//
// yaml.Node.Decode ignores unknown fields, so the keys of mappings are checked against the output type first. Types
// implementing yaml.Unmarshaler are left to check their own nodes. Errors point at the positions of the original node.
func DecodeYamlNodeKnownFields(node *yaml.Node, output interface{}) error {
	if err := checkYamlKnownFields(node, reflect.TypeOf(output)); err != nil {
		return err
	}
	return node.Decode(output)
}

var yamlUnmarshalerType = reflect.TypeOf((*yaml.Unmarshaler)(nil)).Elem()

func checkYamlKnownFields(node *yaml.Node, t reflect.Type) error {
	switch node.Kind {
	case yaml.DocumentNode:
		if len(node.Content) == 0 {
			return nil
		}
		return checkYamlKnownFields(node.Content[0], t)
	case yaml.AliasNode:
		return nil // checked where the anchor is defined
	}
	for t.Kind() == reflect.Pointer {
		if t.Implements(yamlUnmarshalerType) {
			return nil
		}
		t = t.Elem()
	}
	if t.Implements(yamlUnmarshalerType) || reflect.PointerTo(t).Implements(yamlUnmarshalerType) {
		return nil
	}

	switch t.Kind() {
	case reflect.Struct:
		if node.Kind != yaml.MappingNode {
			return nil
		}
		fields, anyKey := listYamlFields(t)
		for i := 0; i+1 < len(node.Content); i += 2 {
			key, value := node.Content[i], node.Content[i+1]
			if key.Value == "<<" {
				continue
			}
			fieldType, found := fields[key.Value]
			if !found {
				if anyKey {
					continue
				}
				return NewYamlErrorf(key, "field %s not found in type %s", key.Value, t)
			}
			if err := checkYamlKnownFields(value, fieldType); err != nil {
				return err
			}
		}
	case reflect.Slice, reflect.Array:
		if node.Kind != yaml.SequenceNode {
			return nil
		}
		for _, item := range node.Content {
			if err := checkYamlKnownFields(item, t.Elem()); err != nil {
				return err
			}
		}
	case reflect.Map:
		if node.Kind != yaml.MappingNode {
			return nil
		}
		for i := 1; i < len(node.Content); i += 2 {
			if err := checkYamlKnownFields(node.Content[i], t.Elem()); err != nil {
				return err
			}
		}
	}
	return nil
}

// listYamlFields lists the YAML keys of struct fields including inlined ones, and whether an inlined map accepts
// any other key
func listYamlFields(t reflect.Type) (map[string]reflect.Type, bool) {
	fields := make(map[string]reflect.Type, t.NumField())
	anyKey := false
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() && !field.Anonymous {
			continue
		}
		tag := field.Tag.Get("yaml")
		if tag == "-" {
			continue
		}
		name, options, _ := strings.Cut(tag, ",")
		if strings.Contains(","+options+",", ",inline,") {
			inlined := field.Type
			if inlined.Kind() == reflect.Pointer {
				inlined = inlined.Elem()
			}
			switch inlined.Kind() {
			case reflect.Struct:
				inner, innerAnyKey := listYamlFields(inlined)
				for key, fieldType := range inner {
					fields[key] = fieldType
				}
				anyKey = anyKey || innerAnyKey
			case reflect.Map:
				anyKey = true
			}
			continue
		}
		if !field.IsExported() {
			continue
		}
		if name == "" {
			name = strings.ToLower(field.Name)
		}
		fields[name] = field.Type
	}
	return fields, anyKey
}

// UnmarshalYamlString loads and unmarshals YAML in string to interface or pointer to struct
func UnmarshalYamlString(contents string, output interface{}) error {
	return UnmarshalYamlReader(strings.NewReader(contents), output)
}
