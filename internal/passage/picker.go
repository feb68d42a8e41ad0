package passage

import (
	"math/rand"
	"time"
)

// Picker selects pool indexes uniformly at random.
type Picker struct {
	rnd *rand.Rand
}

// NewPicker returns a Picker seeded with the current time.
func NewPicker() *Picker {
	return &Picker{rnd: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// NewPickerWithRand returns a Picker backed by rnd.
func NewPickerWithRand(rnd *rand.Rand) *Picker {
	return &Picker{rnd: rnd}
}

// Pick returns an index in [0, n).
func (p *Picker) Pick(n int) int {
	return p.rnd.Intn(n)
}
