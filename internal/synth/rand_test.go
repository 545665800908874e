package synth

import (
	"testing"
	"time"
)

func TestRand_SameSeedSameSequence(t *testing.T) {
	a := NewRand(42)
	b := NewRand(42)
	for i := 0; i < 100; i++ {
		if av, bv := a.Int(0, 1000), b.Int(0, 1000); av != bv {
			t.Fatalf("draw %d diverged: %d vs %d", i, av, bv)
		}
	}
}

func TestRand_DifferentSeedsDiverge(t *testing.T) {
	a := NewRand(42)
	b := NewRand(43)
	same := 0
	for i := 0; i < 100; i++ {
		if a.Int(0, 1_000_000) == b.Int(0, 1_000_000) {
			same++
		}
	}
	if same == 100 {
		t.Fatal("different seeds produced identical sequences")
	}
}

func TestDeriveSeed_StageSeparation(t *testing.T) {
	base := int64(42)
	persona := DeriveSeed(base, "persona")
	stimuli := DeriveSeed(base, "stimuli")
	if persona == stimuli {
		t.Fatal("expected different stage names to derive different seeds")
	}
	if persona != DeriveSeed(base, "persona") {
		t.Fatal("expected derivation to be stable")
	}
}

func TestRand_IntBounds(t *testing.T) {
	r := NewRand(7)
	for i := 0; i < 1000; i++ {
		v := r.Int(3, 9)
		if v < 3 || v > 9 {
			t.Fatalf("Int(3, 9) = %d out of bounds", v)
		}
	}
	if v := r.Int(5, 5); v != 5 {
		t.Errorf("Int(5, 5) = %d, want 5", v)
	}
}

func TestRand_PanicsOnInvertedRanges(t *testing.T) {
	mustPanic := func(name string, fn func()) {
		defer func() {
			if recover() == nil {
				t.Errorf("%s did not panic on inverted range", name)
			}
		}()
		fn()
	}
	r := NewRand(7)
	mustPanic("Int", func() { r.Int(9, 3) })
	mustPanic("Float", func() { r.Float(1.2, 0.8) })
	mustPanic("NormalInt", func() { r.NormalInt(12, 2.5, 19, 7) })
	t0 := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	mustPanic("DateBetween", func() { r.DateBetween(t0.AddDate(1, 0, 0), t0) })
}

func TestRand_FloatBounds(t *testing.T) {
	r := NewRand(7)
	for i := 0; i < 1000; i++ {
		v := r.Float(0.8, 1.2)
		if v < 0.8 || v >= 1.2 {
			t.Fatalf("Float(0.8, 1.2) = %f out of bounds", v)
		}
	}
}

func TestRand_NormalIntClamps(t *testing.T) {
	r := NewRand(7)
	for i := 0; i < 1000; i++ {
		v := r.NormalInt(12, 2.5, 7, 19)
		if v < 7 || v > 19 {
			t.Fatalf("NormalInt out of bounds: %d", v)
		}
	}
}

func TestRand_DateBetween(t *testing.T) {
	r := NewRand(7)
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(1, 0, 0)
	for i := 0; i < 100; i++ {
		d := r.DateBetween(start, end)
		if d.Before(start) || !d.Before(end) {
			t.Fatalf("DateBetween out of range: %v", d)
		}
	}
	if d := r.DateBetween(start, start); !d.Equal(start) {
		t.Errorf("equal bounds should return start, got %v", d)
	}
}

// validNPI checks the Luhn sum over the 80840 issuer prefix plus all ten
// digits, the same scheme real NPIs use.
func validNPI(npi string) bool {
	if len(npi) != 10 {
		return false
	}
	full := []int{8, 0, 8, 4, 0}
	for _, c := range npi {
		if c < '0' || c > '9' {
			return false
		}
		full = append(full, int(c-'0'))
	}
	sum := 0
	double := false
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
	return sum%10 == 0
}

func TestRand_NPI(t *testing.T) {
	r := NewRand(42)
	for i := 0; i < 500; i++ {
		npi := r.NPI()
		if len(npi) != 10 {
			t.Fatalf("NPI length %d, want 10: %s", len(npi), npi)
		}
		if npi[0] != '1' && npi[0] != '2' {
			t.Fatalf("NPI first digit %c, want 1 or 2", npi[0])
		}
		if !validNPI(npi) {
			t.Fatalf("NPI %s fails checksum", npi)
		}
	}
}

func TestWeightedPick_Distribution(t *testing.T) {
	r := NewRand(42)
	table := []Weighted[string]{
		{"heavy", 90},
		{"light", 10},
	}
	heavy := 0
	const draws = 10_000
	for i := 0; i < draws; i++ {
		if WeightedPick(r, table) == "heavy" {
			heavy++
		}
	}
	frac := float64(heavy) / draws
	if frac < 0.85 || frac > 0.95 {
		t.Errorf("heavy picked %.3f of draws, want ~0.90", frac)
	}
}

func TestWeightedPick_ZeroWeightNeverPicked(t *testing.T) {
	r := NewRand(42)
	table := []Weighted[string]{
		{"always", 1},
		{"never", 0},
	}
	for i := 0; i < 1000; i++ {
		if WeightedPick(r, table) == "never" {
			t.Fatal("zero-weight item was picked")
		}
	}
}

func TestPickMany_Distinct(t *testing.T) {
	r := NewRand(42)
	items := []int{1, 2, 3, 4, 5, 6}
	got := PickMany(r, items, 3)
	if len(got) != 3 {
		t.Fatalf("got %d items, want 3", len(got))
	}
	seen := make(map[int]bool)
	for _, v := range got {
		if seen[v] {
			t.Fatalf("duplicate item %d", v)
		}
		seen[v] = true
	}
	if got := PickMany(r, items, 10); len(got) != len(items) {
		t.Errorf("over-asking should return all items, got %d", len(got))
	}
}
