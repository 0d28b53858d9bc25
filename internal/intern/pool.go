// Package intern provides a concurrency-safe string interning pool.
package intern

import (
	"strings"
	"sync"

	"github.com/arloliu/rmeta/internal/hash"
)

// Pool maps string values to one canonical instance.
//
// Strings are bucketed by their xxHash64; a bucket holds more than one entry
// only on a hash collision.
type Pool struct {
	mu      sync.RWMutex
	buckets map[uint64][]string
	count   int
}

// NewPool creates an empty pool.
func NewPool() *Pool {
	return &Pool{buckets: make(map[uint64][]string)}
}

// Intern returns the canonical instance of s. The first instance seen becomes
// canonical; it is cloned so it does not pin a larger backing array.
func (p *Pool) Intern(s string) string {
	h := hash.ID(s)

	p.mu.RLock()
	if v, ok := lookup(p.buckets[h], s); ok {
		p.mu.RUnlock()
		return v
	}
	p.mu.RUnlock()

	p.mu.Lock()
	defer p.mu.Unlock()

	bucket := p.buckets[h]
	if v, ok := lookup(bucket, s); ok {
		return v
	}

	canonical := strings.Clone(s)
	p.buckets[h] = append(bucket, canonical)
	p.count++

	return canonical
}

// Len returns the number of distinct strings in the pool.
func (p *Pool) Len() int {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return p.count
}

// HasCollision reports whether two distinct interned strings share a hash.
func (p *Pool) HasCollision() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()

	for _, bucket := range p.buckets {
		if len(bucket) > 1 {
			return true
		}
	}

	return false
}

func lookup(bucket []string, s string) (string, bool) {
	for _, v := range bucket {
		if v == s {
			return v, true
		}
	}

	return "", false
}
