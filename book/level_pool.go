package book

import "itchbook/domain"

// LevelID addresses a Level inside a LevelPool. Levels are identified by
// index, never by pointer, so the pool's backing storage can grow
// without invalidating any order's reference to its level.
type LevelID uint32

// Level is the aggregate resting state at one signed price.
type Level struct {
	Price domain.SignedPrice
	Qty   domain.Qty
}

// LevelPool is a slab allocator for Level records shared by every book
// that addresses levels indirectly (the scalar and SoA-indirection
// variants). It never shrinks its backing storage; freed slots are
// tracked on a LIFO free list and reused before the storage grows, which
// keeps recently touched levels resident in cache.
//
// Alloc is an increment when the free list is empty, or a pop off the
// tail of the free list (likely still hot) when it is not; Free is a
// push. Both are O(1) and allocation-free once the pool has warmed up to
// its steady-state level count.
type LevelPool struct {
	slots []Level
	free  []LevelID
}

// NewLevelPool creates a pool pre-sized to capacityHint levels. The
// source hardcodes NUM_LEVELS = 2^20 for a full NASDAQ session; callers
// should size capacityHint to their own feed instead of inheriting that
// constant.
func NewLevelPool(capacityHint int) *LevelPool {
	return &LevelPool{slots: make([]Level, 0, capacityHint)}
}

// Alloc reserves a level slot, either recycled from the free list or
// freshly appended, and returns its stable index.
func (p *LevelPool) Alloc() LevelID {
	if n := len(p.free); n > 0 {
		id := p.free[n-1]
		p.free = p.free[:n-1]
		return id
	}
	id := LevelID(len(p.slots))
	p.slots = append(p.slots, Level{})
	return id
}

// Free returns id to the pool. The slot's contents are left untouched
// until the next Alloc that reuses it overwrites them.
func (p *LevelPool) Free(id LevelID) {
	p.free = append(p.free, id)
}

// Get borrows the level at id by reference. The caller must have
// previously received id from Alloc and must not have freed it since.
func (p *LevelPool) Get(id LevelID) *Level {
	return &p.slots[id]
}

// FreeListSize reports how many level slots are currently on the free
// list, used by tests to check invariant 5 (a fully executed or deleted
// level's slot is returned to the pool).
func (p *LevelPool) FreeListSize() int { return len(p.free) }
