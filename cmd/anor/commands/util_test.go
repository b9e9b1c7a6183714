package commands

import (
	"testing"

	"github.com/anor-db/anor/pkg/anor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeForDisplayString(t *testing.T) {
	dir := t.TempDir()
	store, err := anor.Open(dir)
	require.NoError(t, err)
	defer store.Close()

	item, err := anor.New("k", "hello", anor.CodecBincode)
	require.NoError(t, err)
	store.Insert(item)

	got, ok := store.Get("k")
	require.True(t, ok)
	assert.Equal(t, "hello", decodeForDisplay(store, "k", got))
}

func TestDecodeForDisplayMap(t *testing.T) {
	dir := t.TempDir()
	store, err := anor.Open(dir)
	require.NoError(t, err)
	defer store.Close()

	item, err := anor.New("k", map[string]string{"a": "1"}, anor.CodecBincode)
	require.NoError(t, err)
	store.Insert(item)

	got, ok := store.Get("k")
	require.True(t, ok)
	assert.Contains(t, decodeForDisplay(store, "k", got), "a:1")
}
