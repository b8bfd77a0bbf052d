// Package bson provides a BSON codec implementation.
package bson

import (
	"bytes"
	"errors"
	"io"

	"github.com/zoobzio/replica"
	"go.mongodb.org/mongo-driver/bson"
)

// bsonCodec implements replica.Codec for BSON.
type bsonCodec struct{}

// New returns a BSON codec.
// Embedded documents decode as plain records and arrays as primitive.A.
func New() replica.Codec {
	return &bsonCodec{}
}

// ContentType returns the MIME type for BSON.
func (c *bsonCodec) ContentType() string {
	return "application/bson"
}

// Marshal encodes v as BSON. v must encode as a document.
func (c *bsonCodec) Marshal(v any) ([]byte, error) {
	return bson.Marshal(v)
}

// Unmarshal decodes BSON data into v.
func (c *bsonCodec) Unmarshal(data []byte, v any) error {
	return bson.Unmarshal(data, v)
}

// Split separates back-to-back BSON documents, as written by mongodump, into
// one document each.
func Split(data []byte) ([][]byte, error) {
	r := bytes.NewReader(data)

	var docs [][]byte
	for {
		doc, err := bson.ReadDocument(r)
		if errors.Is(err, io.EOF) {
			return docs, nil
		}
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
}
