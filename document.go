package replica

import (
	"context"
	"time"
)

// MergeDocuments decodes each document with c and merges the results into
// target, in order, as Merge does.
//
// Every document is decoded before anything is merged, so a decode failure
// leaves target untouched. Empty documents, and documents that decode to a
// null value, are skipped.
func MergeDocuments(c Codec, target any, docs ...[]byte) (Record, error) {
	if c == nil {
		return nil, ErrNilCodec
	}

	ctx := context.Background()
	start := time.Now()

	sources := make([]any, 0, len(docs))
	for i, doc := range docs {
		if len(doc) == 0 {
			continue
		}

		var rec map[string]any
		if err := c.Unmarshal(doc, &rec); err != nil {
			err = newDocumentError(ErrUnmarshal, i, c.ContentType(), err)
			emitDocumentsComplete(ctx, c.ContentType(), len(docs), time.Since(start), err)
			return nil, err
		}
		sources = append(sources, rec)
	}

	result := Merge(target, sources...)
	emitDocumentsComplete(ctx, c.ContentType(), len(docs), time.Since(start), nil)
	return result, nil
}
