package hashtable

import "strconv"

// secondaryModulus is the prime used by hash2.
const secondaryModulus = 7

// mod returns a mod m in [0, m).
func mod(a, m int) int {
	r := a % m
	if r < 0 {
		r += m
	}
	return r
}

// hash1 gives the home slot for every strategy.
func hash1(key, capacity int) int {
	return mod(key, capacity)
}

// hash2 gives the double hashing step, always in [1, 7]. A capacity sharing a
// factor with the step leaves some slots unreachable.
func hash2(key int) int {
	return secondaryModulus - mod(key, secondaryModulus)
}

// LoadFactor is insertedCount/capacity kept as an exact ratio.
type LoadFactor struct {
	Inserted int
	Capacity int
}

func (lf LoadFactor) Float() float64 {
	if lf.Capacity <= 0 {
		return 0
	}
	return float64(lf.Inserted) / float64(lf.Capacity)
}

// String renders the ratio with two decimals, rounding half up. Integer math
// keeps 1/8 at "0.13" where %.2f would print "0.12".
func (lf LoadFactor) String() string {
	if lf.Capacity <= 0 {
		return "0.00"
	}
	hundredths := (lf.Inserted*200 + lf.Capacity) / (2 * lf.Capacity)
	frac := hundredths % 100
	s := strconv.Itoa(hundredths/100) + "."
	if frac < 10 {
		s += "0"
	}
	return s + strconv.Itoa(frac)
}
