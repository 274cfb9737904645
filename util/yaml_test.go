package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gopkg.in/yaml.v3"
)

type yamlParentType struct {
	Name  string
	Child yamlChildType
}

type yamlChildType string

var yamlTestTempLocation string

func (yc *yamlChildType) UnmarshalYAML(node *yaml.Node) error {
	yamlTestTempLocation = GetYamlLocation(node)
	if node.Value == "fail" {
		return NewYamlError(node, "Fail")
	}
	*yc = yamlChildType(node.Value)
	return nil
}

func TestYAMLMarshal(t *testing.T) {
	y, err := MarshalYaml(&yamlParentType{
		Name:  "succ",
		Child: yamlChildType("here"),
	})
	assert.Nil(t, err)
	assert.Equal(t, "name: succ\nchild: here\n", y)
}

func TestYAMLUnmarshal(t *testing.T) {
	var yp yamlParentType

	assert.ErrorContains(t, UnmarshalYamlString(`
name: hi
child: fail
`, &yp), "yaml line 3:8: Fail")
	assert.Equal(t, "yaml line 3:8", yamlTestTempLocation)
}

func TestDecodeYamlNodeKnownFields(t *testing.T) {
	var node yaml.Node
	assert.Nil(t, yaml.Unmarshal([]byte("name: hi\nchild: there\n"), &node))
	var yp yamlParentType
	assert.Nil(t, DecodeYamlNodeKnownFields(&node, &yp))
	assert.Equal(t, "hi", yp.Name)
	assert.Equal(t, yamlChildType("there"), yp.Child)

	assert.Nil(t, yaml.Unmarshal([]byte("name: hi\nchildren: there\n"), &node))
	assert.EqualError(t, DecodeYamlNodeKnownFields(&node, &yp), "yaml line 2:1: field children not found in type util.yamlParentType")

	assert.Nil(t, yaml.Unmarshal([]byte("\n\nname: hi\nchild: fail\n"), &node))
	assert.EqualError(t, DecodeYamlNodeKnownFields(&node, &yp), "yaml line 4:8: Fail")
}

type yamlInlineBase struct {
	Kind string `yaml:"kind"`
}

type yamlNestedType struct {
	yamlInlineBase `yaml:",inline"`
	Items          []yamlParentType          `yaml:"items"`
	ByName         map[string]yamlParentType `yaml:"byName"`
	Ignored        string                    `yaml:"-"`
}

func TestDecodeYamlNodeKnownFieldsNested(t *testing.T) {
	var node yaml.Node
	var yn yamlNestedType

	assert.Nil(t, yaml.Unmarshal([]byte(`
kind: box
items:
  - name: a
byName:
  b: {name: b, child: c}
`), &node))
	assert.Nil(t, DecodeYamlNodeKnownFields(&node, &yn))
	assert.Equal(t, "box", yn.Kind)
	assert.Equal(t, "a", yn.Items[0].Name)
	assert.Equal(t, yamlChildType("c"), yn.ByName["b"].Child)

	cases := map[string]string{
		"kind: box\nitems:\n  - name: a\n  - nam: b\n": "yaml line 4:5: field nam not found",
		"byName:\n  b: {name: b, color: red}\n":        "yaml line 2:16: field color not found",
		"ignored: x\n":                                 "yaml line 1:1: field ignored not found",
	}
	for input, message := range cases {
		t.Run(input, func(t *testing.T) {
			assert.Nil(t, yaml.Unmarshal([]byte(input), &node))
			assert.ErrorContains(t, DecodeYamlNodeKnownFields(&node, &yamlNestedType{}), message)
		})
	}
}
