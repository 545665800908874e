package synth

import (
	"fmt"
	"hash/fnv"
	"math"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Rand is the deterministic random source every generator draws from.
// Constructed from a single integer seed; the same seed produces the same
// sequence across runs. Not safe for concurrent use — the pipeline consumes
// it linearly by design.
type Rand struct {
	rng *rand.Rand
}

func NewRand(seed int64) *Rand {
	return &Rand{rng: rand.New(rand.NewSource(seed))}
}

// DeriveSeed folds a stage name into a base seed so each pipeline stage gets
// its own stream. Additive runs re-derive the same per-stage seeds and so
// reproduce stage output even when earlier stages are skipped.
func DeriveSeed(base int64, stage string) int64 {
	h := fnv.New64a()
	h.Write([]byte(stage))
	return base ^ int64(h.Sum64())
}

// Int returns a uniform integer in [min, max], inclusive on both ends.
// An inverted range is a programmer error and panics.
func (r *Rand) Int(min, max int) int {
	if min > max {
		panic(fmt.Sprintf("synth: Int range inverted: [%d, %d]", min, max))
	}
	if min == max {
		return min
	}
	return min + r.rng.Intn(max-min+1)
}

// Float returns a uniform float in [min, max).
func (r *Rand) Float(min, max float64) float64 {
	if min > max {
		panic(fmt.Sprintf("synth: Float range inverted: [%g, %g)", min, max))
	}
	return min + r.rng.Float64()*(max-min)
}

// Normal returns a draw from N(mean, stdDev).
func (r *Rand) Normal(mean, stdDev float64) float64 {
	return mean + r.rng.NormFloat64()*stdDev
}

// NormalInt rounds a normal draw and clamps it to [lo, hi].
func (r *Rand) NormalInt(mean, stdDev float64, lo, hi int) int {
	if lo > hi {
		panic(fmt.Sprintf("synth: NormalInt clamp inverted: [%d, %d]", lo, hi))
	}
	v := int(math.Round(r.Normal(mean, stdDev)))
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Bool returns true with probability p.
func (r *Rand) Bool(p float64) bool {
	return r.rng.Float64() < p
}

// DateBetween returns a uniform instant in [start, end). An end before start
// is a programmer error and panics; equal bounds return start.
func (r *Rand) DateBetween(start, end time.Time) time.Time {
	span := end.Sub(start)
	if span < 0 {
		panic(fmt.Sprintf("synth: DateBetween range inverted: [%s, %s)", start.Format(time.RFC3339), end.Format(time.RFC3339)))
	}
	if span == 0 {
		return start
	}
	return start.Add(time.Duration(r.rng.Int63n(int64(span))))
}

// UUID synthesizes a version-4 UUID from this source's stream.
func (r *Rand) UUID() uuid.UUID {
	id, _ := uuid.NewRandomFromReader(r.rng)
	return id
}

// NPI synthesizes a 10-digit provider identifier whose final digit is a Luhn
// check digit computed over the 80840 issuer prefix, matching the real
// numbering scheme closely enough to pass checksum validation.
func (r *Rand) NPI() string {
	digits := make([]int, 9)
	digits[0] = r.Int(1, 2)
	for i := 1; i < 9; i++ {
		digits[i] = r.Int(0, 9)
	}
	var sb strings.Builder
	for _, d := range digits {
		sb.WriteByte(byte('0' + d))
	}
	sb.WriteByte(byte('0' + npiCheckDigit(digits)))
	return sb.String()
}

func npiCheckDigit(digits []int) int {
	full := append([]int{8, 0, 8, 4, 0}, digits...)
	sum := 0
	double := true
	for i := len(full) - 1; i >= 0; i-- {
		d := full[i]
		if double {
			d *= 2
			if d > 9 {
				d -= 9
			}
		}
		sum += d
		double = !double
	}
	return (10 - sum%10) % 10
}

// Pick returns a uniform element of items. Panics on an empty slice — callers
// only pass the fixed non-empty enum slices.
func Pick[T any](r *Rand, items []T) T {
	return items[r.rng.Intn(len(items))]
}

// PickMany returns k distinct elements of items in random order. k greater
// than len(items) returns all of them.
func PickMany[T any](r *Rand, items []T, k int) []T {
	if k > len(items) {
		k = len(items)
	}
	pool := make([]T, len(items))
	copy(pool, items)
	for i := 0; i < k; i++ {
		j := i + r.rng.Intn(len(pool)-i)
		pool[i], pool[j] = pool[j], pool[i]
	}
	return pool[:k]
}

// Shuffle permutes items in place.
func Shuffle[T any](r *Rand, items []T) {
	r.rng.Shuffle(len(items), func(i, j int) {
		items[i], items[j] = items[j], items[i]
	})
}

// Weighted pairs an item with its selection weight. Weights need not sum to
// one; selection probability is weight over the table total.
type Weighted[T any] struct {
	Item   T
	Weight float64
}

// WeightedPick draws one item from the table proportionally to its weight.
// Tables are ordered slices, never maps, so the draw sequence is stable.
func WeightedPick[T any](r *Rand, table []Weighted[T]) T {
	total := 0.0
	for _, w := range table {
		total += w.Weight
	}
	target := r.rng.Float64() * total
	acc := 0.0
	for _, w := range table {
		acc += w.Weight
		if target < acc {
			return w.Item
		}
	}
	return table[len(table)-1].Item
}
