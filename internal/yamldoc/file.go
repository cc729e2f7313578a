package yamldoc

import (
	"bytes"

	"github.com/juju/errors"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// ErrNotMapping is returned when a document's top level is not a mapping.
const ErrNotMapping = errors.ConstError("top level of the document is not a mapping")

// Parse decodes YAML data into a Map. An empty document yields an empty Map.
func Parse(data []byte) (*Map, error) {
	var node yaml.Node

	err := yaml.Unmarshal(data, &node)
	if err != nil {
		return nil, errors.Annotate(err, "parsing YAML")
	}

	if node.Kind == 0 {
		return NewMap(), nil
	}

	v, err := decodeNode(&node)
	if err != nil {
		return nil, errors.Trace(err)
	}

	switch doc := v.(type) {
	case nil:
		return NewMap(), nil
	case *Map:
		return doc, nil
	default:
		return nil, errors.Trace(ErrNotMapping)
	}
}

// Marshal encodes a Map as YAML, keeping key order, with two-space indents.
func Marshal(m *Map) ([]byte, error) {
	node, err := encodeValue(m)
	if err != nil {
		return nil, errors.Trace(err)
	}

	var buf bytes.Buffer

	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)

	err = enc.Encode(node)
	if err != nil {
		return nil, errors.Annotate(err, "encoding YAML")
	}

	err = enc.Close()
	if err != nil {
		return nil, errors.Trace(err)
	}

	return buf.Bytes(), nil
}

// WriteFile serializes m and writes it to path, replacing any existing file.
func WriteFile(fs afero.Fs, path string, m *Map) error {
	data, err := Marshal(m)
	if err != nil {
		return errors.Annotatef(err, "serializing %s", path)
	}

	err = afero.WriteFile(fs, path, data, 0o644)
	if err != nil {
		return errors.Annotatef(err, "writing %s", path)
	}

	return nil
}
