package commands

import (
	"fmt"
	"strconv"

	"github.com/anor-db/anor/pkg/anor"
)

func formatVersion(v uint64) string {
	return strconv.FormatUint(v, 10)
}

// decodeForDisplay attempts, in order, a string (the shape anor insert
// stores) and then a string map, and falls back to reporting the raw
// payload size when neither decodes. A command-line
// front-end has no way to know a library caller's original value type; the
// engine itself never needs to, since it treats Data as opaque.
func decodeForDisplay(store *anor.Storage, key string, item *anor.Item) string {
	var s string
	if store.GetInnerObject(key, &s) {
		return s
	}

	var m map[string]string
	if store.GetInnerObject(key, &m) {
		return fmt.Sprintf("%v", m)
	}

	return fmt.Sprintf("<%d bytes, undecodable as string or map[string]string>", len(item.Data))
}
