package anor

import (
	"sync"
	"sync/atomic"
)

// lockToken is an opaque identifier minted for the goroutine that holds a
// GlobalLock. The source keys its global-owner cell by OS thread id;
// goroutines have no such stable identity, so a monotonically increasing
// token stands in for it (see SPEC_FULL.md §4.5/§9).
type lockToken uint64

var tokenSeq atomic.Uint64

func nextToken() lockToken {
	return lockToken(tokenSeq.Add(1))
}

// concurrency bundles the three primitives spec.md §4.5 names:
// methodMu serializes the check-and-acquire race in lock(); mapMu guards
// the in-memory map; globalMu + globalOwner implement the thread-owned
// (here: token-owned) Global Lock.
type concurrency struct {
	methodMu sync.Mutex

	mapMu sync.Mutex

	globalMu    sync.Mutex
	ownerMu     sync.RWMutex
	globalOwner *lockToken
}

// currentOwner returns the lockToken currently holding the Global Lock,
// or nil if it is free.
func (c *concurrency) currentOwner() *lockToken {
	c.ownerMu.RLock()
	defer c.ownerMu.RUnlock()
	return c.globalOwner
}

func (c *concurrency) setOwner(tok *lockToken) {
	c.ownerMu.Lock()
	defer c.ownerMu.Unlock()
	c.globalOwner = tok
}

// lock implements the per-operation acquisition algorithm from spec.md
// §4.5: a brief methodMu hold serializes the "do I need to wait?" check
// against a concurrent GlobalLock acquisition, avoiding a TOCTOU gap
// between deciding to wait and actually waiting. holder, if non-zero,
// identifies a caller that already owns the Global Lock (so it must not
// wait on itself); pass 0 for ordinary callers.
func (c *concurrency) lock(holder lockToken) func() {
	c.methodMu.Lock()

	owner := c.currentOwner()
	mustWaitForRelease := owner != nil && *owner != holder

	if mustWaitForRelease {
		c.globalMu.Lock()
		c.globalMu.Unlock() //nolint:staticcheck // barrier only, see spec.md §4.5
	}

	c.mapMu.Lock()
	c.methodMu.Unlock()

	return c.mapMu.Unlock
}

// GlobalLock is a scoped, thread-owned (token-owned) exclusive acquisition
// granting its holder exclusive multi-step access to the engine: while
// held, lock() calls from any other caller block until it is released.
type GlobalLock struct {
	storage *Storage
	token   lockToken
	once    sync.Once
}

// acquireGlobalLock takes globalMu and records the caller's token as the
// current owner.
func acquireGlobalLock(s *Storage) *GlobalLock {
	s.conc.globalMu.Lock()
	tok := nextToken()
	s.conc.setOwner(&tok)
	return &GlobalLock{storage: s, token: tok}
}

// Unlock releases the Global Lock. It is safe to call multiple times or
// via defer after an explicit call; only the first call has effect.
func (g *GlobalLock) Unlock() {
	g.once.Do(func() {
		g.storage.conc.setOwner(nil)
		g.storage.conc.globalMu.Unlock()
	})
}

// ---- scoped operations: for use by a goroutine that already holds this
// GlobalLock. The public Storage facade methods (Insert, Get, ...) always
// pass holder=0 to concurrency.lock, so a GlobalLock holder calling them
// directly would see itself as a different holder, try to acquire
// globalMu again, and deadlock against itself. These mirror the facade
// but thread g.token through to the private *Locked helpers instead.

// Insert stores item under item.Key, overwriting any existing item at
// that key.
func (g *GlobalLock) Insert(item *Item) {
	g.storage.insertLocked(item, g.token)
	g.storage.rec().ObserveOp("insert")
}

// Update is identical to Insert; see Storage.Update.
func (g *GlobalLock) Update(item *Item) {
	g.Insert(item)
}

// Get returns a snapshot clone of the item stored under key, if any.
func (g *GlobalLock) Get(key string) (*Item, bool) {
	item, ok := g.storage.getLocked(key, g.token)
	g.storage.rec().ObserveOp("get")
	return item, ok
}

// Remove deletes the item stored under key, if any.
func (g *GlobalLock) Remove(key string) {
	g.storage.removeLocked(key, g.token)
	g.storage.rec().ObserveOp("remove")
}

// Clear removes every item from the engine.
func (g *GlobalLock) Clear() {
	g.storage.clearLocked(g.token)
	g.storage.rec().ObserveOp("clear")
}

// Keys returns the keys of every stored item. Order is unspecified.
func (g *GlobalLock) Keys() []string {
	return g.storage.keysLocked(g.token)
}

// GetInnerObject decodes the inner object of the item stored under key
// into out (a pointer), returning whether the key was found and decoding
// succeeded.
func (g *GlobalLock) GetInnerObject(key string, out any) bool {
	item, ok := g.storage.getLocked(key, g.token)
	if !ok {
		return false
	}
	return GetObject(item, g.storage.codecType, out)
}

// UpdateInnerObject re-encodes the inner object of the item stored under
// key to reflect value, returning whether the key was found and encoding
// succeeded. It does not bump the item's Version; see Item.BumpVersion.
func (g *GlobalLock) UpdateInnerObject(key string, value any) bool {
	unlock := g.storage.conc.lock(g.token)
	defer unlock()
	item, ok := g.storage.items[key]
	if !ok {
		return false
	}
	return UpdateObject(item, value, g.storage.codecType)
}
