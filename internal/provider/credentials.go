package provider

import (
	"fmt"
	"os"
	"sync/atomic"
)

// maxAlternateSlots bounds the numbered credential slots scanned after
// the base slot (GEMINI_API_KEY, GEMINI_API_KEY_2 ... _5).
const maxAlternateSlots = 4

// Pool is an ordered list of API keys for one provider with a rotating
// cursor. The key list is immutable after construction; only the cursor
// moves. The cursor is a shared atomic counter; concurrent rotations may
// race over which key comes next, which is harmless.
type Pool struct {
	keys   []string
	cursor atomic.Uint64
}

// NewPool builds a pool from the given keys, dropping empty entries.
func NewPool(keys []string) *Pool {
	filtered := make([]string, 0, len(keys))
	for _, k := range keys {
		if k != "" {
			filtered = append(filtered, k)
		}
	}
	return &Pool{keys: filtered}
}

// PoolFromEnv scans the base environment slot plus up to four numbered
// alternates and builds a pool from whatever is set.
func PoolFromEnv(baseVar string) *Pool {
	keys := []string{os.Getenv(baseVar)}
	for i := 2; i <= maxAlternateSlots+1; i++ {
		keys = append(keys, os.Getenv(fmt.Sprintf("%s_%d", baseVar, i)))
	}
	return NewPool(keys)
}

// Configured reports whether the pool holds at least one key.
func (p *Pool) Configured() bool { return len(p.keys) > 0 }

// Size returns the number of keys in the pool.
func (p *Pool) Size() int { return len(p.keys) }

// Current returns the key under the cursor. Empty string when the pool
// is unconfigured.
func (p *Pool) Current() string {
	if len(p.keys) == 0 {
		return ""
	}
	return p.keys[p.cursor.Load()%uint64(len(p.keys))]
}

// Rotate advances the cursor to the next key. Returns false when the pool
// has at most one key, meaning the caller must back off instead.
func (p *Pool) Rotate() bool {
	if len(p.keys) <= 1 {
		return false
	}
	p.cursor.Add(1)
	return true
}
