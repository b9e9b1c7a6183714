package anor

import (
	"bytes"
	"encoding/gob"
)

// CodecType identifies the wire encoding used for a frame's payload.
type CodecType uint8

const (
	// CodecBincode is the default, required codec.
	CodecBincode CodecType = 1

	// CodecProtocolBuffers is reserved; not implemented.
	CodecProtocolBuffers CodecType = 2

	// CodecFlatBuffers is reserved; not implemented.
	CodecFlatBuffers CodecType = 3

	// CodecMessagePack is reserved; not implemented.
	CodecMessagePack CodecType = 4

	// CodecCapnProto is reserved; not implemented.
	CodecCapnProto CodecType = 5
)

func (t CodecType) String() string {
	switch t {
	case CodecBincode:
		return "Bincode"
	case CodecProtocolBuffers:
		return "ProtocolBuffers"
	case CodecFlatBuffers:
		return "FlatBuffers"
	case CodecMessagePack:
		return "MessagePack"
	case CodecCapnProto:
		return "CapnProto"
	default:
		return "Unknown"
	}
}

// Codec encodes and decodes Go values to and from the byte payload carried
// inside a frame.
type Codec interface {
	Encode(value any) ([]byte, error)
	Decode(data []byte, out any) error
}

// codecs is the tag-keyed registry of available codecs. Only CodecBincode
// is functional; the remaining reserved tags are registered so the frame
// parser treats them as known tags, per spec, and fail only at the codec
// boundary.
var codecs = map[CodecType]Codec{
	CodecBincode:         gobCodec{},
	CodecProtocolBuffers: unsupportedCodec{CodecProtocolBuffers},
	CodecFlatBuffers:     unsupportedCodec{CodecFlatBuffers},
	CodecMessagePack:     unsupportedCodec{CodecMessagePack},
	CodecCapnProto:       unsupportedCodec{CodecCapnProto},
}

// codecFor returns the registered codec for a tag, or a framing error if
// the tag is entirely unknown (not one of the five registered values).
func codecFor(t CodecType) (Codec, error) {
	c, ok := codecs[t]
	if !ok {
		return nil, newStoreError(ErrFraming, "", "unknown codec tag %d", t)
	}
	return c, nil
}

// gobCodec implements Codec using encoding/gob, the default codec (tag 1).
//
// Bincode itself has no Go equivalent in the dependency pack. The closer
// candidate is github.com/rasky/go-xdr's xdr2 package, already used
// elsewhere in this dependency set for reflection-based, schema-free
// Marshal/Unmarshal of arbitrary structs. It doesn't fit
// here: XDR (RFC 4506) has no map type, and the Codec contract has to
// round-trip whatever shape a caller inserts, including the map[string]string
// inner objects this engine stores and rewrites in place. gob is the
// standard library's self-describing, reflection-based binary encoding for
// arbitrary Go values including maps, and is used here for the same reason
// the source reaches for bincode: zero schema ceremony at the call site.
type gobCodec struct{}

func (gobCodec) Encode(value any) ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(value); err != nil {
		return nil, newStoreError(ErrCodec, "", "gob encode failed: %v", err)
	}
	return buf.Bytes(), nil
}

func (gobCodec) Decode(data []byte, out any) error {
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(out); err != nil {
		return newStoreError(ErrCodec, "", "gob decode failed: %v", err)
	}
	return nil
}

// unsupportedCodec stands in for the reserved codec tags (Protocol
// Buffers, FlatBuffers, MessagePack, Cap'n Proto). The frame format
// accepts these tags when parsing; only encode/decode fail.
type unsupportedCodec struct {
	tag CodecType
}

func (u unsupportedCodec) Encode(any) ([]byte, error) {
	return nil, newStoreError(ErrUnsupportedCodec, "", "codec %s not supported yet", u.tag)
}

func (u unsupportedCodec) Decode([]byte, any) error {
	return newStoreError(ErrUnsupportedCodec, "", "codec %s not supported yet", u.tag)
}
