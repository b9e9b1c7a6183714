package anor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRoundTrip(t *testing.T) {
	item, err := New("my_string", "abc1", CodecBincode)
	require.NoError(t, err)
	assert.NotEmpty(t, item.ID)
	assert.Equal(t, "my_string", item.Key)
	assert.Equal(t, uint64(0), item.Version)

	var out string
	assert.True(t, GetObject(item, CodecBincode, &out))
	assert.Equal(t, "abc1", out)
}

func TestWithTypeRoundTrip(t *testing.T) {
	myMap := map[string]string{"1": "One", "2": "Two", "3": "Three"}
	itemType := ItemType{Kind: ItemTypeComplex, Outer: ComplexMap, Key: BasicString, Elem: BasicString}

	item, err := WithType("my_map1", itemType, myMap, CodecBincode)
	require.NoError(t, err)

	var decoded map[string]string
	require.True(t, GetObject(item, CodecBincode, &decoded))
	assert.Equal(t, myMap, decoded)
}

func TestUpdateObjectDoesNotBumpVersion(t *testing.T) {
	item, err := New("k", "v1", CodecBincode)
	require.NoError(t, err)
	require.Equal(t, uint64(0), item.Version)

	ok := UpdateObject(item, "v2", CodecBincode)
	require.True(t, ok)

	var out string
	require.True(t, GetObject(item, CodecBincode, &out))
	assert.Equal(t, "v2", out)
	assert.Equal(t, uint64(0), item.Version, "UpdateObject must not auto-bump version")

	item.BumpVersion()
	assert.Equal(t, uint64(1), item.Version)
}

func TestItemMutators(t *testing.T) {
	item, err := New("k", "v", CodecBincode)
	require.NoError(t, err)

	item.SetDescription("abc")
	require.NotNil(t, item.Description)
	assert.Equal(t, "abc", *item.Description)

	item.AddTag("a")
	item.AddTag("b")
	assert.Equal(t, []string{"a", "b"}, item.Tags)

	item.AddMetafield("k1", "v1")
	item.AddMetafield("k2", "v2")
	assert.Equal(t, map[string]string{"k1": "v1", "k2": "v2"}, item.Metafields)
}

func TestItemCloneIsIndependent(t *testing.T) {
	item, err := New("k", "v", CodecBincode)
	require.NoError(t, err)
	item.AddTag("a")

	clone := item.Clone()
	clone.Tags[0] = "mutated"
	originalFirstByte := item.Data[0]
	clone.Data[0] = originalFirstByte + 1

	assert.Equal(t, "a", item.Tags[0])
	assert.Equal(t, originalFirstByte, item.Data[0])
	assert.NotEqual(t, clone.Data[0], item.Data[0])
}
