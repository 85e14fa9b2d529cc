package scrape_test

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/fwojciec/bookgrab"
	"github.com/fwojciec/bookgrab/scrape"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEngine_Discover(t *testing.T) {
	t.Parallel()

	t.Run("numbers new locators and skips seen ones across cycles", func(t *testing.T) {
		t.Parallel()

		e := scrape.NewEngine(0)

		// Cycle 1: viewer renders A and B
		got := e.Discover([]bookgrab.Locator{"A", "B"})
		assert.Equal(t, []bookgrab.Discovery{{Locator: "A", Number: 0}, {Locator: "B", Number: 1}}, got)

		// Cycle 2: A and B stay mounted, C is rendered
		got = e.Discover([]bookgrab.Locator{"A", "B", "C"})
		assert.Equal(t, []bookgrab.Discovery{{Locator: "C", Number: 2}}, got)

		// Cycle 3: nothing new
		got = e.Discover([]bookgrab.Locator{"A", "B", "C"})
		assert.Empty(t, got)

		assert.Equal(t, []bookgrab.Locator{"A", "B", "C"}, e.Locators())
	})

	t.Run("returns empty result for empty input", func(t *testing.T) {
		t.Parallel()

		e := scrape.NewEngine(0)

		assert.Empty(t, e.Discover(nil))
		assert.Equal(t, 0, e.Len())
	})

	t.Run("skips empty locators", func(t *testing.T) {
		t.Parallel()

		e := scrape.NewEngine(0)

		got := e.Discover([]bookgrab.Locator{"", "A", ""})

		assert.Equal(t, []bookgrab.Discovery{{Locator: "A", Number: 0}}, got)
	})

	t.Run("assigns one number to a locator repeated within a cycle", func(t *testing.T) {
		t.Parallel()

		e := scrape.NewEngine(0)

		got := e.Discover([]bookgrab.Locator{"A", "A", "B"})

		assert.Equal(t, []bookgrab.Discovery{{Locator: "A", Number: 0}, {Locator: "B", Number: 1}}, got)
	})
}

func TestEngine_Discover_Offset(t *testing.T) {
	t.Parallel()

	tests := []struct {
		offset int
		want   []int
	}{
		{offset: 5, want: []int{5, 6, 7}},
		{offset: -1, want: []int{-1, 0, 1}},
		{offset: 0, want: []int{0, 1, 2}},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("offset %d", tt.offset), func(t *testing.T) {
			t.Parallel()

			e := scrape.NewEngine(tt.offset)

			got := e.Discover([]bookgrab.Locator{"L0", "L1", "L2"})

			require.Len(t, got, 3)
			for i, d := range got {
				assert.Equal(t, tt.want[i], d.Number)
			}
		})
	}
}

func TestEngine_Discover_RandomCycles(t *testing.T) {
	t.Parallel()

	// Given random overlapping samples from a pool of locators
	rng := rand.New(rand.NewSource(42))
	pool := make([]bookgrab.Locator, 50)
	for i := range pool {
		pool[i] = bookgrab.Locator(fmt.Sprintf("blob:page-%d", i))
	}

	const offset = 3
	e := scrape.NewEngine(offset)
	numbers := make(map[bookgrab.Locator][]int)
	var order []bookgrab.Locator

	// When many cycles re-observe locators
	for cycle := 0; cycle < 200; cycle++ {
		start := rng.Intn(len(pool))
		end := start + rng.Intn(len(pool)-start+1)
		for _, d := range e.Discover(pool[start:end]) {
			numbers[d.Locator] = append(numbers[d.Locator], d.Number)
			order = append(order, d.Locator)
		}
	}

	// Then each distinct locator was reported exactly once
	for loc, ns := range numbers {
		assert.Len(t, ns, 1, "locator %s reported more than once", loc)
	}

	// And the i-th discovery was numbered i + offset
	for i, loc := range order {
		assert.Equal(t, i+offset, numbers[loc][0])
	}

	// And the ledger matches discovery order
	assert.Equal(t, order, e.Locators())
}

func TestEngine_Seed(t *testing.T) {
	t.Parallel()

	e := scrape.NewEngine(10)

	n := e.Seed([]bookgrab.Locator{"A", "B", "A"})

	assert.Equal(t, 2, n)
	assert.Equal(t, 2, e.Len())

	got := e.Discover([]bookgrab.Locator{"A", "B", "C"})
	assert.Equal(t, []bookgrab.Discovery{{Locator: "C", Number: 12}}, got)
}
