// Package yaml provides a YAML codec implementation.
package yaml

import (
	"bytes"
	"errors"
	"io"

	"github.com/zoobzio/replica"
	"gopkg.in/yaml.v3"
)

// yamlCodec implements replica.Codec for YAML.
type yamlCodec struct{}

// New returns a YAML codec.
// Mappings with string keys decode as plain records.
func New() replica.Codec {
	return &yamlCodec{}
}

// ContentType returns the MIME type for YAML.
func (c *yamlCodec) ContentType() string {
	return "application/yaml"
}

// Marshal encodes v as YAML.
func (c *yamlCodec) Marshal(v any) ([]byte, error) {
	return yaml.Marshal(v)
}

// Unmarshal decodes the first YAML document in data into v.
func (c *yamlCodec) Unmarshal(data []byte, v any) error {
	return yaml.Unmarshal(data, v)
}

// Split separates a multi-document stream ("---" separated) into one encoded
// document each. Empty documents are dropped. Anchors resolve within their
// own document.
func Split(data []byte) ([][]byte, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))

	var docs [][]byte
	for {
		var node yaml.Node
		err := dec.Decode(&node)
		if errors.Is(err, io.EOF) {
			return docs, nil
		}
		if err != nil {
			return nil, err
		}
		if len(node.Content) == 0 {
			continue
		}

		doc, err := yaml.Marshal(&node)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
}
