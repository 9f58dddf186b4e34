package treap

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// span is a contiguous run of work units [lo, hi) tagged with an id.
type span struct {
	id     int
	lo, hi int64
}

func (s span) Weight() int64 { return s.hi - s.lo }

func (s span) SplitAt(w int64) (span, span) {
	return span{id: s.id, lo: s.lo, hi: s.lo + w}, span{id: s.id, lo: s.lo + w, hi: s.hi}
}

func units(id int, w int64) span { return span{id: id, hi: w} }

func heightOf[V Splittable[V]](n *node[V]) int {
	if n == nil {
		return 0
	}
	return 1 + max(heightOf(n.left), heightOf(n.right))
}

// walk visits entries in ascending key order until fn returns false.
func walk[V Splittable[V]](n *node[V], fn func(int64, V) bool) bool {
	if n == nil {
		return true
	}
	if !walk(n.left, fn) || !fn(n.key, n.value) {
		return false
	}
	return walk(n.right, fn)
}

func sumWalk(t *Treap[span]) int64 {
	var total int64
	walk(t.root, func(_ int64, v span) bool {
		total += v.Weight()
		return true
	})
	return total
}

func keys(t *Treap[span]) []int64 {
	var out []int64
	walk(t.root, func(k int64, _ span) bool {
		out = append(out, k)
		return true
	})
	return out
}

func randomTreap(rng *rand.Rand, n int) *Treap[span] {
	t := New[span]()
	for i := 0; i < n; i++ {
		t.Insert(rng.Int64N(1000), units(i, 1+rng.Int64N(15)))
	}
	return t
}

func TestTreap_DeleteMinOrder(t *testing.T) {
	tr := New[span]()
	tr.Insert(5, units('A', 1))
	tr.Insert(2, units('B', 1))
	tr.Insert(8, units('C', 1))
	require.NoError(t, tr.Check())

	var got []int
	for tr.Len() > 0 {
		_, v := tr.DeleteMin()
		got = append(got, v.id)
	}
	assert.Equal(t, []int{'B', 'A', 'C'}, got)
	assert.Zero(t, tr.TotalWeight())
}

func TestTreap_DuplicateKeysKeepInsertionOrder(t *testing.T) {
	tr := New[span]()
	for i := 0; i < 10; i++ {
		tr.Insert(7, units(i, 1))
	}
	require.NoError(t, tr.Check())
	assert.Equal(t, 10, tr.Len())

	for i := 0; i < 10; i++ {
		k, v := tr.DeleteMin()
		assert.Equal(t, int64(7), k)
		assert.Equal(t, i, v.id)
	}
}

func TestTreap_ZeroWeightDropped(t *testing.T) {
	tr := New[span]()
	assert.False(t, tr.Insert(1, span{}))
	assert.Equal(t, 0, tr.Len())
	assert.True(t, tr.Insert(1, units(0, 3)))
	assert.Equal(t, int64(3), tr.TotalWeight())
}

func TestTreap_Preconditions(t *testing.T) {
	tr := New[span]()
	assert.PanicsWithValue(t, ErrEmpty, func() { tr.DeleteMin() })
	assert.Panics(t, func() { tr.Insert(0, span{lo: 5, hi: 1}) })
	assert.Panics(t, func() { tr.SplitAt(-1, New[span]()) })
}

func TestTreap_SplitScenario(t *testing.T) {
	tr := New[span]()
	tr.Insert(1, units(0, 3))
	tr.Insert(2, units(1, 3))
	tr.Insert(3, units(2, 4))
	require.Equal(t, int64(10), tr.TotalWeight())

	other := New[span]()
	tr.SplitAt(4, other)

	require.NoError(t, tr.Check())
	require.NoError(t, other.Check())
	assert.Equal(t, int64(4), tr.TotalWeight())
	assert.Equal(t, int64(6), other.TotalWeight())

	// The straddling entry (key 2) lives in both halves with the same key.
	assert.Equal(t, []int64{1, 2}, keys(tr))
	assert.Equal(t, []int64{2, 3}, keys(other))

	_, head := other.DeleteMin()
	assert.Equal(t, span{id: 1, lo: 1, hi: 3}, head)
}

func TestTreap_SplitBounds(t *testing.T) {
	tr := New[span]()
	tr.Insert(1, units(0, 5))

	other := New[span]()
	other.Insert(9, units(1, 1))
	tr.SplitAt(5, other)
	assert.Equal(t, int64(5), tr.TotalWeight())
	assert.Zero(t, other.TotalWeight(), "other is replaced, not appended to")

	tr.SplitAt(0, other)
	assert.Zero(t, tr.TotalWeight())
	assert.Equal(t, int64(5), other.TotalWeight())
}

func TestTreap_SplitConservation(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	for trial := 0; trial < 50; trial++ {
		base := randomTreap(rng, 1+rng.IntN(200))
		total := base.TotalWeight()

		for _, w := range []int64{0, 1, total / 3, total / 2, total - 1, total} {
			if w < 0 {
				continue
			}
			tr := New[span]()
			walk(base.root, func(k int64, v span) bool {
				tr.Insert(k, v)
				return true
			})

			other := New[span]()
			tr.SplitAt(w, other)

			require.NoError(t, tr.Check())
			require.NoError(t, other.Check())
			assert.Equal(t, w, tr.TotalWeight())
			assert.Equal(t, total, tr.TotalWeight()+other.TotalWeight())
			assert.Equal(t, tr.TotalWeight(), sumWalk(tr))
			assert.Equal(t, other.TotalWeight(), sumWalk(other))

			if tr.Len() > 0 && other.Len() > 0 {
				lastLeft := keys(tr)[tr.Len()-1]
				firstRight := keys(other)[0]
				assert.LessOrEqual(t, lastLeft, firstRight)
			}
		}
	}
}

func TestTreap_SplitThenMergeRestoresWeight(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 4))
	for trial := 0; trial < 50; trial++ {
		tr := randomTreap(rng, 1+rng.IntN(300))
		total := tr.TotalWeight()
		before := keys(tr)

		other := New[span]()
		tr.SplitAt(rng.Int64N(total+1), other)
		tr.Merge(other)

		require.NoError(t, tr.Check())
		assert.Equal(t, total, tr.TotalWeight())
		assert.Zero(t, other.Len())

		// A split entry comes back as two entries under the same key.
		after := keys(tr)
		assert.GreaterOrEqual(t, len(after), len(before))
		assert.IsNonDecreasing(t, after)
	}
}

func TestTreap_MergeInterleavedKeys(t *testing.T) {
	a, b := New[span](), New[span]()
	for i := int64(0); i < 100; i++ {
		if i%2 == 0 {
			a.Insert(i, units(int(i), 1))
		} else {
			b.Insert(i, units(int(i), 2))
		}
	}
	a.Merge(b)
	require.NoError(t, a.Check())
	assert.Equal(t, int64(50+100), a.TotalWeight())

	for i := int64(0); i < 100; i++ {
		k, _ := a.DeleteMin()
		assert.Equal(t, i, k)
	}
}

func TestTreap_RandomOperations(t *testing.T) {
	rng := rand.New(rand.NewPCG(5, 6))
	tr := New[span]()
	var inserted, removed int64
	var lastKey int64 = math.MinInt64

	for op := 0; op < 5000; op++ {
		switch r := rng.IntN(10); {
		case r < 6:
			w := 1 + rng.Int64N(10)
			tr.Insert(rng.Int64N(500), units(op, w))
			inserted += w
			lastKey = math.MinInt64
		case r < 9 && tr.Len() > 0:
			k, v := tr.DeleteMin()
			assert.GreaterOrEqual(t, k, lastKey)
			lastKey = k
			removed += v.Weight()
		default:
			other := New[span]()
			tr.SplitAt(tr.TotalWeight()/2, other)
			tr.Merge(other)
			lastKey = math.MinInt64
		}
		assert.Equal(t, inserted-removed, tr.TotalWeight())
	}
	require.NoError(t, tr.Check())
}

// TestTreap_ExpectedHeight checks the probabilistic balance bound over many
// trials with sorted (adversarial for plain BSTs) key sequences.
func TestTreap_ExpectedHeight(t *testing.T) {
	const (
		n      = 4096
		trials = 20
	)
	var total int
	for trial := 0; trial < trials; trial++ {
		tr := New[span]()
		for i := 0; i < n; i++ {
			tr.Insert(int64(i), units(i, 1))
		}
		total += heightOf(tr.root)
	}
	avg := float64(total) / trials

	// Expected height of a random treap is about 3*log2(n); 36 for n=4096.
	assert.Less(t, avg, 4*math.Log2(n))
}

func BenchmarkTreap_InsertDeleteMin(b *testing.B) {
	rng := rand.New(rand.NewPCG(7, 8))
	tr := New[span]()
	for i := 0; i < 1<<14; i++ {
		tr.Insert(rng.Int64N(1<<20), units(i, 1))
	}
	b.ResetTimer()
	for b.Loop() {
		tr.Insert(rng.Int64N(1<<20), units(0, 1))
		tr.DeleteMin()
	}
}
