package replica

import (
	"context"
	"time"

	"github.com/zoobzio/capitan"
)

// Signals for replica events.
var (
	SignalCloneComplete     = capitan.NewSignal("replica.clone.complete", "Clone operation finished")
	SignalCloneFallback     = capitan.NewSignal("replica.clone.fallback", "Clone method failed, value copied reflectively")
	SignalMergeComplete     = capitan.NewSignal("replica.merge.complete", "Merge operation finished")
	SignalDocumentsComplete = capitan.NewSignal("replica.documents.complete", "Document layering finished")
)

// Keys for typed event data.
var (
	KeyTypeName    = capitan.NewStringKey("type_name")
	KeyContentType = capitan.NewStringKey("content_type")
	KeyDuration    = capitan.NewDurationKey("duration")
	KeyError       = capitan.NewErrorKey("error")
	KeyNodes       = capitan.NewIntKey("nodes")
	KeyCycles      = capitan.NewIntKey("cycles")
	KeySources     = capitan.NewIntKey("sources")
	KeySkipped     = capitan.NewIntKey("skipped")
	KeyDocuments   = capitan.NewIntKey("documents")
)

// emitCloneComplete emits an event when a top-level clone finishes.
func emitCloneComplete(ctx context.Context, typeName string, duration time.Duration, nodes, cycles int) {
	capitan.Emit(ctx, SignalCloneComplete,
		KeyTypeName.Field(typeName),
		KeyDuration.Field(duration),
		KeyNodes.Field(nodes),
		KeyCycles.Field(cycles),
	)
}

// emitCloneFallback emits an error event when a Clone method panics.
func emitCloneFallback(ctx context.Context, typeName string, err error) {
	capitan.Error(ctx, SignalCloneFallback,
		KeyTypeName.Field(typeName),
		KeyError.Field(err),
	)
}

// emitMergeComplete emits an event when a merge finishes.
func emitMergeComplete(ctx context.Context, typeName string, sources, skipped int, duration time.Duration) {
	capitan.Emit(ctx, SignalMergeComplete,
		KeyTypeName.Field(typeName),
		KeySources.Field(sources),
		KeySkipped.Field(skipped),
		KeyDuration.Field(duration),
	)
}

// emitDocumentsComplete emits an event when document layering finishes.
func emitDocumentsComplete(ctx context.Context, contentType string, documents int, duration time.Duration, err error) {
	fields := []capitan.Field{
		KeyContentType.Field(contentType),
		KeyDocuments.Field(documents),
		KeyDuration.Field(duration),
	}
	if err != nil {
		fields = append(fields, KeyError.Field(err))
		capitan.Error(ctx, SignalDocumentsComplete, fields...)
	} else {
		capitan.Emit(ctx, SignalDocumentsComplete, fields...)
	}
}
