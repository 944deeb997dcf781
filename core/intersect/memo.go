package intersect

import (
	"encoding/binary"
	"encoding/hex"

	"github.com/zeebo/blake3"

	"github.com/FocuswithJustin/IntersectionFinder/core/cache"
	"github.com/FocuswithJustin/IntersectionFinder/core/region"
)

// Computer computes the intersection closure of a set of initial regions.
type Computer interface {
	Compute(initial []*region.Region) ([]*region.Region, error)
}

// Memo caches the results of a Computer by input digest.
type Memo struct {
	computer Computer
	results  *cache.ResultCache
}

// NewMemo wraps computer with results. A nil results cache gets the default
// configuration.
func NewMemo(computer Computer, results *cache.ResultCache) *Memo {
	if results == nil {
		results = cache.NewDefaultResultCache()
	}
	return &Memo{computer: computer, results: results}
}

// Compute returns the cached closure for initial, computing it on a miss.
func (m *Memo) Compute(initial []*region.Region) ([]*region.Region, error) {
	if err := validateInitial(initial); err != nil {
		return nil, err
	}

	key := Digest(initial)
	if found, ok := m.results.Get(key); ok {
		return found, nil
	}

	found, err := m.computer.Compute(initial)
	if err != nil {
		return nil, err
	}
	m.results.Put(key, found)
	return found, nil
}

// Stats returns the statistics of the underlying cache.
func (m *Memo) Stats() cache.Stats {
	return m.results.Stats()
}

// Digest returns the hex BLAKE3 digest of the ordered ids and bounds of
// regions. Inputs that differ only in order hash differently, since order
// determines ids and discovery order.
func Digest(regions []*region.Region) string {
	h := blake3.New()
	var buf [8]byte
	put := func(v int) {
		binary.LittleEndian.PutUint64(buf[:], uint64(int64(v)))
		_, _ = h.Write(buf[:])
	}

	put(len(regions))
	for _, r := range regions {
		put(int(r.Kind()))
		ids := r.IDs()
		put(len(ids))
		for _, id := range ids {
			put(id)
		}
		put(r.X())
		put(r.Y())
		put(r.Width())
		put(r.Height())
	}
	return hex.EncodeToString(h.Sum(nil))
}
