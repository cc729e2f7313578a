package yamldoc

import (
	"github.com/juju/errors"
	"gopkg.in/yaml.v3"
)

const mergeTag = "!!merge"

// UnmarshalYAML implements yaml.Unmarshaler. The node must be a mapping.
func (m *Map) UnmarshalYAML(node *yaml.Node) error {
	v, err := decodeNode(node)
	if err != nil {
		return err
	}

	decoded, ok := v.(*Map)
	if !ok {
		return errors.Errorf("line %d: expected a mapping, got %s", node.Line, kindName(node))
	}

	*m = *decoded

	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (m *Map) MarshalYAML() (any, error) {
	return encodeValue(m)
}

// MarshalYAML implements yaml.Marshaler for Quoted.
func (q Quoted) MarshalYAML() (any, error) {
	return &yaml.Node{
		Kind:  yaml.ScalarNode,
		Tag:   "!!str",
		Value: string(q),
		Style: yaml.DoubleQuotedStyle,
	}, nil
}

func decodeNode(node *yaml.Node) (any, error) {
	switch node.Kind {
	case yaml.DocumentNode:
		if len(node.Content) == 0 {
			return nil, nil
		}

		return decodeNode(node.Content[0])

	case yaml.AliasNode:
		return decodeNode(node.Alias)

	case yaml.MappingNode:
		return decodeMapping(node)

	case yaml.SequenceNode:
		items := make([]any, 0, len(node.Content))

		for _, item := range node.Content {
			v, err := decodeNode(item)
			if err != nil {
				return nil, err
			}

			items = append(items, v)
		}

		return items, nil

	case yaml.ScalarNode:
		var v any

		err := node.Decode(&v)
		if err != nil {
			return nil, errors.Annotatef(err, "line %d", node.Line)
		}

		return v, nil

	default:
		return nil, errors.Errorf("line %d: unsupported YAML node kind %d", node.Line, node.Kind)
	}
}

func decodeMapping(node *yaml.Node) (*Map, error) {
	m := NewMap()

	var merged []*Map

	for i := 0; i+1 < len(node.Content); i += 2 {
		keyNode, valueNode := node.Content[i], node.Content[i+1]

		if keyNode.Kind != yaml.ScalarNode {
			return nil, errors.Errorf("line %d: mapping keys must be scalars, got %s", keyNode.Line, kindName(keyNode))
		}

		value, err := decodeNode(valueNode)
		if err != nil {
			return nil, err
		}

		if keyNode.ShortTag() == mergeTag {
			sources, err := mergeSources(value, keyNode.Line)
			if err != nil {
				return nil, err
			}

			merged = append(merged, sources...)

			continue
		}

		m.Set(keyNode.Value, value)
	}

	// Explicit keys win over merged ones; earlier merge sources win over later.
	for _, src := range merged {
		src.Each(func(k string, v any) {
			if !m.Has(k) {
				m.Set(k, v)
			}
		})
	}

	return m, nil
}

func mergeSources(value any, line int) ([]*Map, error) {
	switch v := value.(type) {
	case *Map:
		return []*Map{v.Clone()}, nil
	case []any:
		out := make([]*Map, 0, len(v))

		for _, item := range v {
			src, ok := item.(*Map)
			if !ok {
				return nil, errors.Errorf("line %d: merge key expects mappings", line)
			}

			out = append(out, src.Clone())
		}

		return out, nil
	default:
		return nil, errors.Errorf("line %d: merge key expects a mapping or a list of mappings", line)
	}
}

func encodeValue(v any) (*yaml.Node, error) {
	switch val := v.(type) {
	case *Map:
		node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		if val == nil {
			return node, nil
		}

		for _, k := range val.keys {
			keyNode := &yaml.Node{}

			err := keyNode.Encode(k)
			if err != nil {
				return nil, errors.Annotatef(err, "encoding key %q", k)
			}

			valueNode, err := encodeValue(val.values[k])
			if err != nil {
				return nil, errors.Annotatef(err, "encoding %q", k)
			}

			node.Content = append(node.Content, keyNode, valueNode)
		}

		return node, nil

	case []any:
		node := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}

		for _, item := range val {
			itemNode, err := encodeValue(item)
			if err != nil {
				return nil, err
			}

			node.Content = append(node.Content, itemNode)
		}

		return node, nil

	case []string:
		items := make([]any, len(val))
		for i, s := range val {
			items[i] = s
		}

		return encodeValue(items)

	case Quoted:
		q, _ := val.MarshalYAML()
		return q.(*yaml.Node), nil

	default:
		node := &yaml.Node{}

		err := node.Encode(val)
		if err != nil {
			return nil, errors.Trace(err)
		}

		return node, nil
	}
}

func kindName(node *yaml.Node) string {
	switch node.Kind {
	case yaml.DocumentNode:
		return "document"
	case yaml.SequenceNode:
		return "sequence"
	case yaml.MappingNode:
		return "mapping"
	case yaml.ScalarNode:
		return "scalar"
	case yaml.AliasNode:
		return "alias"
	default:
		return "unknown"
	}
}
