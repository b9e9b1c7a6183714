package anor

import (
	"github.com/google/uuid"
)

// ItemTypeKind is the top-level tag of an Item's advisory type descriptor.
type ItemTypeKind uint8

const (
	// ItemTypeCustom is a client-defined custom type.
	ItemTypeCustom ItemTypeKind = iota
	// ItemTypeBasic wraps a BasicType primitive.
	ItemTypeBasic
	// ItemTypeComplex wraps a ComplexType container/blob descriptor.
	ItemTypeComplex
)

// BasicType enumerates primitive value kinds for the advisory type tag.
type BasicType uint8

const (
	BasicBool BasicType = iota
	BasicI8
	BasicI16
	BasicI32
	BasicI64
	BasicI128
	BasicU8
	BasicU16
	BasicU32
	BasicU64
	BasicU128
	BasicF32
	BasicF64
	BasicChar
	BasicString
)

// ComplexType enumerates container/blob kinds for the advisory type tag.
type ComplexType uint8

const (
	ComplexArray ComplexType = iota
	ComplexSet
	ComplexMap
	ComplexBlob
	ComplexJSON
	ComplexXML
	ComplexFile
	ComplexFolder
	ComplexPath
)

// ItemType is the advisory, non-interpreted type descriptor carried by an
// Item. It exists for consumers; the engine never branches on it.
type ItemType struct {
	Kind   ItemTypeKind
	Basic  BasicType   // valid when Kind == ItemTypeBasic
	Outer  ComplexType // valid when Kind == ItemTypeComplex
	Key    BasicType   // valid when Outer == ComplexMap (map key type)
	Elem   BasicType   // valid when Outer in {Array, Set, Map} (element/value type)
}

// Persistence describes an item's forward-compatibility persistence hint.
// The core does not enforce it; it is carried through load/flush as-is.
type Persistence uint8

const (
	PersistenceMemory Persistence = iota
	PersistenceDisk
	PersistenceHybrid
)

// Item is one stored record: the unit of persistence.
type Item struct {
	// ID is a stable opaque identifier assigned at creation. It never
	// changes for the lifetime of the logical item, and is used verbatim
	// as the on-disk blob filename.
	ID string

	// Key is the caller-visible string used to address the item. Unique
	// within an engine instance.
	Key string

	// Version is a caller-managed, monotonically non-decreasing counter.
	// The engine never auto-increments it; flush uses it only as a
	// persistence hint (see BumpVersion).
	Version uint64

	// Data is the opaque encoded payload, produced by the active codec.
	Data []byte

	// ItemType is an advisory, non-interpreted descriptor.
	ItemType ItemType

	Description *string
	Tags        []string
	Metafields  map[string]string

	// ExpiresOn is an optional absolute expiry time, in seconds. Not
	// enforced by the core.
	ExpiresOn *uint64

	// Persistence is a forward-compatibility hint. Not enforced.
	Persistence Persistence

	// Redundancy is a forward-compatibility hint. Not enforced.
	Redundancy uint8
}

// New creates an Item of type ItemTypeCustom, encoding value with the
// given codec tag.
func New(key string, value any, codecType CodecType) (*Item, error) {
	return WithType(key, ItemType{Kind: ItemTypeCustom}, value, codecType)
}

// WithType creates an Item with an explicit advisory type descriptor,
// encoding value with the given codec tag.
func WithType(key string, itemType ItemType, value any, codecType CodecType) (*Item, error) {
	codec, err := codecFor(codecType)
	if err != nil {
		return nil, err
	}
	data, err := codec.Encode(value)
	if err != nil {
		return nil, err
	}
	return &Item{
		ID:          uuid.New().String(),
		Key:         key,
		Version:     0,
		Data:        data,
		ItemType:    itemType,
		Persistence: PersistenceMemory,
	}, nil
}

// GetObject decodes the item's data into out with the codec identified
// by codecType. Data carries no codec tag of its own; since the engine
// keeps a single active codec per instance, callers pass the instance's
// configured codec tag.
func GetObject(item *Item, codecType CodecType, out any) bool {
	codec, err := codecFor(codecType)
	if err != nil {
		return false
	}
	return codec.Decode(item.Data, out) == nil
}

// UpdateObject re-encodes the item's data to reflect value, using the
// given codec tag. It returns whether encoding succeeded. It does not
// bump Version; see BumpVersion and SPEC_FULL.md §9.
func UpdateObject(item *Item, value any, codecType CodecType) bool {
	codec, err := codecFor(codecType)
	if err != nil {
		return false
	}
	data, err := codec.Encode(value)
	if err != nil {
		return false
	}
	item.Data = data
	return true
}

// BumpVersion increments Version. Callers that want a logical update to
// survive a reopen must call this (or set Version directly) themselves;
// the engine never bumps it on their behalf.
func (item *Item) BumpVersion() {
	item.Version++
}

// SetDescription sets the item's human-readable description.
func (item *Item) SetDescription(description string) {
	item.Description = &description
}

// AddTag appends a tag.
func (item *Item) AddTag(tag string) {
	item.Tags = append(item.Tags, tag)
}

// AddMetafield inserts or overwrites a metafield entry.
func (item *Item) AddMetafield(key, value string) {
	if item.Metafields == nil {
		item.Metafields = make(map[string]string)
	}
	item.Metafields[key] = value
}

// Clone returns a deep-enough copy of item suitable for returning from
// Get: mutating the clone never affects the in-memory map's copy.
func (item *Item) Clone() *Item {
	clone := *item
	if item.Data != nil {
		clone.Data = append([]byte(nil), item.Data...)
	}
	if item.Description != nil {
		d := *item.Description
		clone.Description = &d
	}
	if item.Tags != nil {
		clone.Tags = append([]string(nil), item.Tags...)
	}
	if item.Metafields != nil {
		clone.Metafields = make(map[string]string, len(item.Metafields))
		for k, v := range item.Metafields {
			clone.Metafields[k] = v
		}
	}
	if item.ExpiresOn != nil {
		e := *item.ExpiresOn
		clone.ExpiresOn = &e
	}
	return &clone
}
