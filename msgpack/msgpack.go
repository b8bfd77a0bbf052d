// Package msgpack provides a MessagePack codec implementation.
package msgpack

import (
	"bytes"
	"errors"
	"io"

	"github.com/vmihailenco/msgpack/v5"
	"github.com/zoobzio/replica"
)

// msgpackCodec implements replica.Codec for MessagePack.
type msgpackCodec struct{}

// New returns a MessagePack codec.
// Maps decode as plain records; integers keep their encoded width.
func New() replica.Codec {
	return &msgpackCodec{}
}

// ContentType returns the MIME type for MessagePack.
func (c *msgpackCodec) ContentType() string {
	return "application/msgpack"
}

// Marshal encodes v as MessagePack.
func (c *msgpackCodec) Marshal(v any) ([]byte, error) {
	return msgpack.Marshal(v)
}

// Unmarshal decodes MessagePack data into v.
func (c *msgpackCodec) Unmarshal(data []byte, v any) error {
	return msgpack.Unmarshal(data, v)
}

// Split separates a stream of concatenated MessagePack values into one
// document per value.
func Split(data []byte) ([][]byte, error) {
	dec := msgpack.NewDecoder(bytes.NewReader(data))

	var docs [][]byte
	for {
		raw, err := dec.DecodeRaw()
		if errors.Is(err, io.EOF) {
			return docs, nil
		}
		if err != nil {
			return nil, err
		}
		docs = append(docs, raw)
	}
}
