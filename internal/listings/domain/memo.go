package domain

import "sync"

// Snapshot is an immutable set of browsable listings. Version changes
// whenever the set is reloaded.
type Snapshot struct {
	Version  uint64
	Listings []Listing
}

// Memo remembers the filtered and sorted sequence for the most recent
// (snapshot version, criteria, sort key). Paging through one result set
// then costs a slice instead of a full filter and sort.
type Memo struct {
	mu      sync.Mutex
	version uint64
	key     string
	sorted  []Listing
	valid   bool

	hits   uint64
	misses uint64
}

// Sorted returns the filtered and sorted listings for snap. The returned
// slice is shared and must not be modified.
func (m *Memo) Sorted(snap Snapshot, c Criteria, key SortKey) []Listing {
	memoKey := string(key) + "\x1e" + c.Key()

	m.mu.Lock()
	if m.valid && m.version == snap.Version && m.key == memoKey {
		m.hits++
		sorted := m.sorted
		m.mu.Unlock()
		return sorted
	}
	m.misses++
	m.mu.Unlock()

	filtered := snap.Listings
	if !c.IsEmpty() {
		filtered = Filter(snap.Listings, c)
	}
	sorted := Sort(filtered, key)

	m.mu.Lock()
	m.version, m.key, m.sorted, m.valid = snap.Version, memoKey, sorted, true
	m.mu.Unlock()
	return sorted
}

// Page is ComputePage backed by the memo.
func (m *Memo) Page(snap Snapshot, c Criteria, key SortKey, pageNumber, pageSize int) Page {
	return Paginate(m.Sorted(snap, c, key), pageNumber, pageSize)
}

// Reset drops the remembered result.
func (m *Memo) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.valid = false
	m.sorted = nil
}

// Stats reports memo hits and misses.
func (m *Memo) Stats() (hits, misses uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.hits, m.misses
}
