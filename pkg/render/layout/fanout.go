package layout

// Slot is one placement produced by [FanOut]: the endpoint index it belongs
// to and its horizontal position in the edge frame.
type Slot struct {
	Index int
	X     float64
}

// OddOffsets returns the offsets 0, +1, -1, +2, -2, ... up to n/2, the
// visiting order for a row with an odd number of endpoints.
func OddOffsets(n int) []int {
	if n <= 0 {
		return nil
	}
	out := make([]int, 0, n)
	for i := 0; 2*i < n+1; i++ {
		if i == 0 {
			out = append(out, 0)
			continue
		}
		out = append(out, i, -i)
	}
	return out
}

// EvenOffsets returns the offsets -1, +1, -2, +2, ... up to n/2, the visiting
// order for a row with an even number of endpoints. There is no zero offset:
// the middle falls between the two central endpoints.
func EvenOffsets(n int) []int {
	if n <= 0 {
		return nil
	}
	out := make([]int, 0, n)
	for i := 1; i <= n/2; i++ {
		out = append(out, -i, i)
	}
	return out
}

// FanOut spreads n endpoints symmetrically around middle across width,
// returning slots in visiting order (center outwards, left before right for
// even rows). Every index in [0, n) appears exactly once.
func FanOut(n int, middle, width float64) []Slot {
	if n <= 0 {
		return nil
	}
	step := width / float64(n)
	slots := make([]Slot, 0, n)

	if n%2 == 1 {
		center := (n - 1) / 2
		for _, o := range OddOffsets(n) {
			slots = append(slots, Slot{
				Index: center + o,
				X:     middle + step*float64(o),
			})
		}
		return slots
	}

	half := n / 2
	for _, o := range EvenOffsets(n) {
		var (
			index int
			base  float64
			shift int
		)
		if o < 0 {
			index, base, shift = half+o, middle-step/2, o+1
		} else {
			index, base, shift = half+o-1, middle+step/2, o-1
		}
		slots = append(slots, Slot{Index: index, X: base + step*float64(shift)})
	}
	return slots
}
