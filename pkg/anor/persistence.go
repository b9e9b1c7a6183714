package anor

import (
	"os"
	"path/filepath"
	"strings"
)

const (
	manifestFilename = "storage-info"
	blobDirName      = "storage"
)

func (s *Storage) manifestPath() string {
	return filepath.Join(s.dataDir, manifestFilename)
}

func (s *Storage) blobDir() string {
	return filepath.Join(s.dataDir, blobDirName)
}

func (s *Storage) blobPath(id string) string {
	return filepath.Join(s.blobDir(), id)
}

// readManifest loads D/storage-info. A missing or undecodable manifest is
// not fatal here: it is reported to the caller, which treats it as "no
// prior manifest" (first write / empty load).
func (s *Storage) readManifest() (StorageInfo, error) {
	buf, err := os.ReadFile(s.manifestPath())
	if err != nil {
		return nil, newStoreError(ErrIO, s.manifestPath(), "could not read manifest: %v", err)
	}
	return decodeManifest(buf)
}

// writeManifest overwrites D/storage-info with info.
func (s *Storage) writeManifest(info StorageInfo) error {
	buf, err := encodeManifest(info, s.codecType)
	if err != nil {
		return err
	}
	if err := os.WriteFile(s.manifestPath(), buf, 0o644); err != nil {
		return newStoreError(ErrIO, s.manifestPath(), "could not write manifest: %v", err)
	}
	return nil
}

// readItem loads D/storage/<id> and decodes the framed item.
func (s *Storage) readItem(id string) (*Item, error) {
	path := s.blobPath(id)
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, newStoreError(ErrIO, path, "could not read item blob: %v", err)
	}
	var item Item
	if err := decodeFromFrame(buf, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// writeItem persists item to D/storage/<item.ID>.
func (s *Storage) writeItem(item *Item) error {
	buf, err := encodeToFrame(*item, PacketStorageItem, s.codecType)
	if err != nil {
		return err
	}
	path := s.blobPath(item.ID)
	if err := os.WriteFile(path, buf, 0o644); err != nil {
		return newStoreError(ErrIO, path, "could not write item blob: %v", err)
	}
	return nil
}

// Load clears the in-memory map and repopulates it from the on-disk
// manifest and blobs, under the Global Lock. A missing manifest is
// treated as an empty store (logged, non-fatal); a missing or undecodable
// blob referenced by the manifest is a fatal load error.
func (s *Storage) Load() error {
	lock := acquireGlobalLock(s)
	defer lock.Unlock()

	s.clearLocked(lock.token)

	info, err := s.readManifest()
	if err != nil {
		s.log().Warn("no prior manifest, starting with empty storage", "error", err)
		return nil
	}

	for key, entry := range info {
		item, err := s.readItem(entry.ID)
		if err != nil {
			s.log().Error("failed to load item", "key", key, "item_id", entry.ID, "error", err)
			return err
		}
		if item.Key != key {
			err := newStoreError(ErrFraming, s.blobPath(entry.ID),
				"manifest key %q does not match on-disk item key %q", key, item.Key)
			s.log().Error("manifest/blob key mismatch", "error", err)
			return err
		}
		s.insertLocked(item, lock.token)
	}
	return nil
}

// Flush persists the in-memory map to disk: the manifest is always
// rewritten; each item's blob is rewritten only when needs_persist holds
// (the key is new, its id changed, or its version increased since the
// last persisted manifest); orphan blobs not referenced by the new
// manifest are deleted. All of this runs under the Global Lock.
func (s *Storage) Flush() error {
	lock := acquireGlobalLock(s)
	defer lock.Unlock()

	persistedInfo, hadPriorManifest := func() (StorageInfo, bool) {
		info, err := s.readManifest()
		if err != nil {
			return nil, false
		}
		return info, true
	}()

	infoToPersist := StorageInfo{}
	for _, key := range s.keysLocked(lock.token) {
		item, ok := s.getLocked(key, lock.token)
		if !ok {
			continue
		}
		infoToPersist[key] = ManifestEntry{ID: item.ID, Version: item.Version}
	}

	if err := s.writeManifest(infoToPersist); err != nil {
		s.log().Error("failed to persist manifest", "error", err)
		return err
	}

	if err := os.MkdirAll(s.blobDir(), 0o755); err != nil {
		err = newStoreError(ErrIO, s.blobDir(), "could not create blob directory: %v", err)
		s.log().Error("failed to create blob directory", "error", err)
		return err
	}

	s.removeOrphanBlobs(infoToPersist)

	for key, entry := range infoToPersist {
		item, ok := s.getLocked(key, lock.token)
		if !ok {
			continue
		}

		needsPersist := !hadPriorManifest
		if hadPriorManifest {
			prev, existed := persistedInfo[key]
			if !existed {
				needsPersist = true
			} else {
				needsPersist = entry.ID != prev.ID || entry.Version > prev.Version
			}
		}

		if needsPersist {
			if err := s.writeItem(item); err != nil {
				s.log().Error("failed to persist item", "key", key, "error", err)
				return err
			}
		}
	}
	return nil
}

// removeOrphanBlobs deletes every file in D/storage/ whose name
// (case-insensitive) is not the id of some item in infoToPersist.
// Failures here are logged and non-fatal, matching spec.md §4.4 step 5.
func (s *Storage) removeOrphanBlobs(infoToPersist StorageInfo) {
	ids := make(map[string]struct{}, len(infoToPersist))
	for _, entry := range infoToPersist {
		ids[strings.ToLower(entry.ID)] = struct{}{}
	}

	entries, err := os.ReadDir(s.blobDir())
	if err != nil {
		s.log().Warn("could not enumerate blob directory for orphan cleanup", "error", err)
		return
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := strings.ToLower(entry.Name())
		if _, keep := ids[name]; keep {
			continue
		}
		path := s.blobPath(entry.Name())
		if err := os.Remove(path); err != nil {
			s.log().Warn("could not remove orphan blob", "path", path, "error", err)
		}
	}
}
