package logger

import (
	"log/slog"
)

// Standard field keys for structured logging across the storage engine.
// Use these keys consistently across all log statements for log aggregation
// and querying.
const (
	// ========================================================================
	// Distributed Tracing
	// ========================================================================
	KeyTraceID = "trace_id" // OpenTelemetry trace ID for request correlation
	KeySpanID  = "span_id"  // OpenTelemetry span ID for operation tracking

	// ========================================================================
	// Engine Operations
	// ========================================================================
	KeyOperation = "operation" // Facade operation name: open, close, insert, flush, load, ...
	KeyDataPath  = "data_path" // Data directory backing an engine instance

	// ========================================================================
	// Item / Key Identity
	// ========================================================================
	KeyItemKey     = "key"       // Caller-visible item key
	KeyItemID      = "item_id"   // Engine-assigned opaque item identifier
	KeyItemVersion = "version"   // Item version counter
	KeyItemType    = "item_type" // Item type descriptor tag

	// ========================================================================
	// Framing & Codec
	// ========================================================================
	KeyPacketType = "packet_type" // Frame packet type tag
	KeyCodecType  = "codec_type"  // Codec tag recorded in a frame header

	// ========================================================================
	// Filesystem
	// ========================================================================
	KeyPath = "path" // Filesystem path involved in the operation

	// ========================================================================
	// Operation Metadata
	// ========================================================================
	KeyDurationMs = "duration_ms" // Operation duration in milliseconds
	KeyError      = "error"       // Error message
	KeyCount      = "count"       // Generic item/entry count
)

// TraceID returns a slog.Attr for OpenTelemetry trace ID.
func TraceID(id string) slog.Attr {
	return slog.String(KeyTraceID, id)
}

// SpanID returns a slog.Attr for OpenTelemetry span ID.
func SpanID(id string) slog.Attr {
	return slog.String(KeySpanID, id)
}

// Operation returns a slog.Attr for the facade operation name.
func Operation(op string) slog.Attr {
	return slog.String(KeyOperation, op)
}

// DataPath returns a slog.Attr for the engine's data directory.
func DataPath(path string) slog.Attr {
	return slog.String(KeyDataPath, path)
}

// ItemKey returns a slog.Attr for a caller-visible item key.
func ItemKey(key string) slog.Attr {
	return slog.String(KeyItemKey, key)
}

// ItemID returns a slog.Attr for an engine-assigned item identifier.
func ItemID(id string) slog.Attr {
	return slog.String(KeyItemID, id)
}

// ItemVersion returns a slog.Attr for an item's version counter.
func ItemVersion(v uint64) slog.Attr {
	return slog.Uint64(KeyItemVersion, v)
}

// PacketType returns a slog.Attr for a frame's packet type tag.
func PacketType(t uint8) slog.Attr {
	return slog.Int(KeyPacketType, int(t))
}

// CodecType returns a slog.Attr for a frame's codec tag.
func CodecType(t uint8) slog.Attr {
	return slog.Int(KeyCodecType, int(t))
}

// Path returns a slog.Attr for a filesystem path.
func Path(p string) slog.Attr {
	return slog.String(KeyPath, p)
}

// DurationMs returns a slog.Attr for a duration in milliseconds.
func DurationMs(ms float64) slog.Attr {
	return slog.Float64(KeyDurationMs, ms)
}

// Err returns a slog.Attr for an error, or a zero Attr if err is nil.
func Err(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.String(KeyError, err.Error())
}

// Count returns a slog.Attr for a generic item/entry count.
func Count(n int) slog.Attr {
	return slog.Int(KeyCount, n)
}
