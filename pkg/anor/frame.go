package anor

import "encoding/binary"

// frameHeaderSize is the fixed size, in bytes, of every frame header.
const frameHeaderSize = 11

// frameVersion is the current packet_version value written by this
// implementation.
const frameVersion uint8 = 1

// PacketType identifies the kind of payload carried by a frame.
type PacketType uint8

const (
	// PacketStorageInfo tags a frame whose payload is the manifest.
	PacketStorageInfo PacketType = 1

	// PacketStorageItem tags a frame whose payload is a single Item.
	PacketStorageItem PacketType = 2

	// PacketStorageItemObject is reserved for a future per-field framing
	// of an item's inner object; the parser accepts it but the engine
	// never emits it.
	PacketStorageItemObject PacketType = 3
)

func (t PacketType) known() bool {
	switch t {
	case PacketStorageInfo, PacketStorageItem, PacketStorageItemObject:
		return true
	default:
		return false
	}
}

// frameHeader is the 11-byte, big-endian header prefixed to every
// persisted artifact.
type frameHeader struct {
	PacketLength  uint64
	PacketType    PacketType
	PacketVersion uint8
	CodecType     CodecType
}

// encodeHeader renders a header to its 11-byte wire representation.
func encodeHeader(h frameHeader) []byte {
	buf := make([]byte, frameHeaderSize)
	binary.BigEndian.PutUint64(buf[0:8], h.PacketLength)
	buf[8] = byte(h.PacketType)
	buf[9] = h.PacketVersion
	buf[10] = byte(h.CodecType)
	return buf
}

// decodeHeader parses the 11-byte header from the front of buf. It does
// not validate packet_length against the buffer size; callers combine it
// with ReadFrame's check for that.
func decodeHeader(buf []byte) (frameHeader, error) {
	if len(buf) < frameHeaderSize {
		return frameHeader{}, newStoreError(ErrFraming, "", "buffer too small for frame header: %d bytes", len(buf))
	}
	h := frameHeader{
		PacketLength:  binary.BigEndian.Uint64(buf[0:8]),
		PacketType:    PacketType(buf[8]),
		PacketVersion: buf[9],
		CodecType:     CodecType(buf[10]),
	}
	if !h.PacketType.known() {
		return frameHeader{}, newStoreError(ErrFraming, "", "unknown packet type %d", h.PacketType)
	}
	if _, err := codecFor(h.CodecType); err != nil {
		return frameHeader{}, err
	}
	return h, nil
}

// WriteFrame builds a frame (header + payload) wrapping data, tagged with
// packetType and codecType.
func WriteFrame(data []byte, packetType PacketType, codecType CodecType) []byte {
	h := frameHeader{
		PacketLength:  uint64(len(data) + frameHeaderSize),
		PacketType:    packetType,
		PacketVersion: frameVersion,
		CodecType:     codecType,
	}
	out := make([]byte, 0, h.PacketLength)
	out = append(out, encodeHeader(h)...)
	out = append(out, data...)
	return out
}

// ReadFrame parses a frame, validating that the declared packet_length
// matches the actual buffer size and that packet_type/codec_type are
// recognized tags. It returns the header and the payload slice.
func ReadFrame(buf []byte) (frameHeader, []byte, error) {
	h, err := decodeHeader(buf)
	if err != nil {
		return frameHeader{}, nil, err
	}
	if int(h.PacketLength) != len(buf) {
		return frameHeader{}, nil, newStoreError(ErrFraming, "", "declared packet_length %d does not match buffer size %d", h.PacketLength, len(buf))
	}
	return h, buf[frameHeaderSize:], nil
}

// encodeToFrame encodes value with the codec identified by codecType and
// wraps it in a frame tagged packetType.
func encodeToFrame(value any, packetType PacketType, codecType CodecType) ([]byte, error) {
	codec, err := codecFor(codecType)
	if err != nil {
		return nil, err
	}
	payload, err := codec.Encode(value)
	if err != nil {
		return nil, err
	}
	return WriteFrame(payload, packetType, codecType), nil
}

// decodeFromFrame parses a frame and decodes its payload into out using
// the codec tag recorded in the frame header.
func decodeFromFrame(buf []byte, out any) error {
	h, payload, err := ReadFrame(buf)
	if err != nil {
		return err
	}
	codec, err := codecFor(h.CodecType)
	if err != nil {
		return err
	}
	return codec.Decode(payload, out)
}
