package history

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// For any capacity and any append count, the buffer never exceeds its
// capacity and always retains exactly the newest entries in order.
func TestBufferFIFOProperty(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	properties.Property("size never exceeds capacity and oldest entries go first", prop.ForAll(
		func(capacity, appends int) bool {
			b := NewBuffer(capacity)

			for i := 0; i < appends; i++ {
				b.Append(entry(i))
				if b.Len() > b.Cap() {
					return false
				}
			}

			got := b.Last(0)
			expected := appends
			if expected > capacity {
				expected = capacity
			}
			if len(got) != expected {
				return false
			}

			// The retained window is the newest `expected` entries, oldest first.
			first := appends - expected
			for i, e := range got {
				if e.Message != entry(first+i).Message {
					return false
				}
			}
			return true
		},
		gen.IntRange(1, 50),
		gen.IntRange(0, 200),
	))

	properties.TestingRun(t)
}
