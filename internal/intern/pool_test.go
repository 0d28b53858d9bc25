package intern

import (
	"strings"
	"sync"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/require"
)

func TestPool_Intern(t *testing.T) {
	p := NewPool()

	a := p.Intern(strings.Repeat("x", 3))
	b := p.Intern(strings.Repeat("x", 3))

	require.Equal(t, "xxx", a)
	require.Same(t, unsafe.StringData(a), unsafe.StringData(b))
	require.Equal(t, 1, p.Len())
	require.False(t, p.HasCollision())
}

func TestPool_DistinctStrings(t *testing.T) {
	p := NewPool()

	names := []string{"value", "count", "<init>", "", "toString"}
	for _, n := range names {
		require.Equal(t, n, p.Intern(n))
	}
	for _, n := range names {
		require.Equal(t, n, p.Intern(n))
	}

	require.Equal(t, len(names), p.Len())
}

func TestPool_Concurrent(t *testing.T) {
	p := NewPool()

	var wg sync.WaitGroup
	results := make([]string, 32)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = p.Intern(string([]byte("shared")))
		}(i)
	}
	wg.Wait()

	for _, r := range results[1:] {
		require.Same(t, unsafe.StringData(results[0]), unsafe.StringData(r))
	}
	require.Equal(t, 1, p.Len())
}
