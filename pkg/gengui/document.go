package gengui

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/odvcencio/gengui/pkg/errors"
)

// Node is one value of a widget document: a *Mapping, a List or a Scalar.
type Node interface {
	node()
}

// Scalar is a leaf value. Value holds a string, json.Number, bool or nil.
type Scalar struct {
	Value any
}

// List is a sequence value.
type List []Node

// Mapping is an object whose keys keep document order, so widgets are built
// and children stored in the order they were written.
type Mapping struct {
	keys   []string
	values map[string]Node
}

func (Scalar) node()   {}
func (List) node()     {}
func (*Mapping) node() {}

// String renders the scalar as a toolkit option value. Booleans become
// "true"/"false" and null becomes the empty string.
func (s Scalar) String() string {
	switch v := s.Value.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		if v {
			return "true"
		}
		return "false"
	default:
		return fmt.Sprint(v)
	}
}

// NewMapping returns an empty mapping.
func NewMapping() *Mapping {
	return &Mapping{values: make(map[string]Node)}
}

// Set stores v under key. Replacing a key keeps its original position.
func (m *Mapping) Set(key string, v Node) {
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = v
}

// Get returns the value under key.
func (m *Mapping) Get(key string) (Node, bool) {
	v, ok := m.values[key]
	return v, ok
}

// Keys returns the keys in document order.
func (m *Mapping) Keys() []string {
	out := make([]string, len(m.keys))
	copy(out, m.keys)
	return out
}

// Len returns the number of keys.
func (m *Mapping) Len() int { return len(m.keys) }

// Format names a document encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatForPath picks the format from a file extension; anything other
// than .yaml or .yml is read as JSON.
func FormatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Parse reads a document in the given format.
func Parse(r io.Reader, format Format) (*Mapping, error) {
	switch format {
	case FormatYAML:
		return ParseYAML(r)
	case FormatJSON, "":
		return ParseJSON(r)
	default:
		return nil, errors.Newf(errors.ErrCodeInvalidInput, "unsupported document format %q", format).
			WithRemediation("use json or yaml")
	}
}

// ParseJSON reads a JSON document whose top level is an object.
func ParseJSON(r io.Reader) (*Mapping, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	root, err := decodeJSON(dec)
	if err != nil {
		return nil, malformed(err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, malformed(fmt.Errorf("unexpected data after top-level value"))
	}
	m, ok := root.(*Mapping)
	if !ok {
		return nil, malformed(fmt.Errorf("top-level value must be an object"))
	}
	return m, nil
}

func decodeJSON(dec *json.Decoder) (Node, error) {
	tok, err := dec.Token()
	if err != nil {
		if err == io.EOF {
			return nil, io.ErrUnexpectedEOF
		}
		return nil, err
	}
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			m := NewMapping()
			for dec.More() {
				kt, err := dec.Token()
				if err != nil {
					return nil, err
				}
				key, ok := kt.(string)
				if !ok {
					return nil, fmt.Errorf("object key %v is not a string", kt)
				}
				v, err := decodeJSON(dec)
				if err != nil {
					return nil, err
				}
				m.Set(key, v)
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return m, nil
		case '[':
			list := List{}
			for dec.More() {
				v, err := decodeJSON(dec)
				if err != nil {
					return nil, err
				}
				list = append(list, v)
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return list, nil
		}
		return nil, fmt.Errorf("unexpected delimiter %q", t)
	default:
		return Scalar{Value: t}, nil
	}
}

// ParseYAML reads a YAML document whose top level is a mapping. Anchors and
// aliases are resolved; merge keys are kept as ordinary keys.
func ParseYAML(r io.Reader) (*Mapping, error) {
	var doc yaml.Node
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if err == io.EOF {
			return nil, malformed(fmt.Errorf("empty document"))
		}
		return nil, malformed(err)
	}
	node := &doc
	if node.Kind == yaml.DocumentNode && len(node.Content) > 0 {
		node = node.Content[0]
	}
	conv := &yamlConverter{}
	root, err := conv.convert(node, 0)
	if err != nil {
		return nil, malformed(err)
	}
	m, ok := root.(*Mapping)
	if !ok {
		return nil, malformed(fmt.Errorf("top-level value must be a mapping"))
	}
	return m, nil
}

const (
	maxYAMLDepth = 256
	// Aliases are expanded in place, so the converted tree can be far larger
	// than the source text.
	maxYAMLNodes = 1_000_000
)

type yamlConverter struct {
	nodes int
}

func (c *yamlConverter) convert(n *yaml.Node, depth int) (Node, error) {
	if depth > maxYAMLDepth {
		return nil, fmt.Errorf("document nested deeper than %d levels", maxYAMLDepth)
	}
	c.nodes++
	if c.nodes > maxYAMLNodes {
		return nil, fmt.Errorf("document expands to more than %d nodes", maxYAMLNodes)
	}
	switch n.Kind {
	case yaml.AliasNode:
		return c.convert(n.Alias, depth+1)
	case yaml.MappingNode:
		m := NewMapping()
		for i := 0; i+1 < len(n.Content); i += 2 {
			k, v := n.Content[i], n.Content[i+1]
			if k.Kind != yaml.ScalarNode {
				return nil, fmt.Errorf("line %d: mapping keys must be scalars", k.Line)
			}
			child, err := c.convert(v, depth+1)
			if err != nil {
				return nil, err
			}
			m.Set(k.Value, child)
		}
		return m, nil
	case yaml.SequenceNode:
		list := List{}
		for _, item := range n.Content {
			child, err := c.convert(item, depth+1)
			if err != nil {
				return nil, err
			}
			list = append(list, child)
		}
		return list, nil
	case yaml.ScalarNode:
		return yamlScalar(n)
	}
	return nil, fmt.Errorf("line %d: unsupported YAML node", n.Line)
}

func yamlScalar(n *yaml.Node) (Node, error) {
	switch n.ShortTag() {
	case "!!null":
		return Scalar{}, nil
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return nil, err
		}
		return Scalar{Value: b}, nil
	case "!!int", "!!float":
		return Scalar{Value: json.Number(n.Value)}, nil
	default:
		return Scalar{Value: n.Value}, nil
	}
}

func malformed(err error) error {
	return errors.Wrap(err, errors.ErrCodeMalformedInput, "cannot parse widget document")
}
