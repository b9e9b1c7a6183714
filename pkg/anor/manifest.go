package anor

// ManifestEntry is the persisted identity pair for one key: the item's
// stable id and its version at the time the manifest was written.
type ManifestEntry struct {
	ID      string
	Version uint64
}

// StorageInfo is the manifest: a mapping from key to (id, version),
// representing the last-persisted snapshot of identities.
type StorageInfo map[string]ManifestEntry

// encodeManifest frames a manifest for writing to D/storage-info.
func encodeManifest(info StorageInfo, codecType CodecType) ([]byte, error) {
	return encodeToFrame(info, PacketStorageInfo, codecType)
}

// decodeManifest parses a framed manifest read from D/storage-info.
func decodeManifest(buf []byte) (StorageInfo, error) {
	var info StorageInfo
	if err := decodeFromFrame(buf, &info); err != nil {
		return nil, err
	}
	if info == nil {
		info = StorageInfo{}
	}
	return info, nil
}
