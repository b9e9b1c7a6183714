package anor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGobCodecRoundTrip(t *testing.T) {
	c := gobCodec{}

	data, err := c.Encode(map[string]int{"a": 1, "b": 2})
	require.NoError(t, err)

	var out map[string]int
	require.NoError(t, c.Decode(data, &out))
	assert.Equal(t, map[string]int{"a": 1, "b": 2}, out)
}

func TestGobCodecDecodeErrorWrapsStoreError(t *testing.T) {
	c := gobCodec{}

	var out string
	err := c.Decode([]byte("not a gob stream"), &out)
	require.Error(t, err)

	var storeErr *StoreError
	require.ErrorAs(t, err, &storeErr)
	assert.Equal(t, ErrCodec, storeErr.Code)
}

func TestUnsupportedCodecsReportUnsupported(t *testing.T) {
	for _, tag := range []CodecType{CodecProtocolBuffers, CodecFlatBuffers, CodecMessagePack, CodecCapnProto} {
		c, err := codecFor(tag)
		require.NoError(t, err)

		_, encErr := c.Encode("x")
		require.Error(t, encErr)
		var storeErr *StoreError
		require.ErrorAs(t, encErr, &storeErr)
		assert.Equal(t, ErrUnsupportedCodec, storeErr.Code)

		var out string
		decErr := c.Decode([]byte{}, &out)
		require.Error(t, decErr)
		require.ErrorAs(t, decErr, &storeErr)
		assert.Equal(t, ErrUnsupportedCodec, storeErr.Code)
	}
}

func TestCodecForUnknownTagIsFraming(t *testing.T) {
	_, err := codecFor(CodecType(99))
	require.Error(t, err)

	var storeErr *StoreError
	require.ErrorAs(t, err, &storeErr)
	assert.Equal(t, ErrFraming, storeErr.Code)
}

func TestCodecTypeString(t *testing.T) {
	assert.Equal(t, "Bincode", CodecBincode.String())
	assert.Equal(t, "MessagePack", CodecMessagePack.String())
	assert.Equal(t, "Unknown", CodecType(200).String())
}
