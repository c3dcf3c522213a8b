package review

import "math/rand/v2"

type globalRandom struct{}

func (globalRandom) Float64() float64                   { return rand.Float64() }
func (globalRandom) IntN(n int) int                     { return rand.IntN(n) }
func (globalRandom) Shuffle(n int, swap func(i, j int)) { rand.Shuffle(n, swap) }

// DefaultRandom draws from the runtime's shared generator.
var DefaultRandom Random = globalRandom{}
