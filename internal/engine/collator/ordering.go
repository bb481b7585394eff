package collator

// Ordering is the result of a comparison.
type Ordering int

const (
	Less    Ordering = -1
	Equal   Ordering = 0
	Greater Ordering = 1
)

// String returns the ordering name.
func (o Ordering) String() string {
	switch o {
	case Less:
		return "less"
	case Equal:
		return "equal"
	case Greater:
		return "greater"
	default:
		return "invalid"
	}
}

// Reverse returns the opposite ordering.
func (o Ordering) Reverse() Ordering {
	return -o
}

// FromInt maps a negative, zero or positive int to an Ordering.
func FromInt(c int) Ordering {
	switch {
	case c < 0:
		return Less
	case c > 0:
		return Greater
	}
	return Equal
}

func cmpWeights(a, b uint8) Ordering {
	switch {
	case a < b:
		return Less
	case a > b:
		return Greater
	}
	return Equal
}

// CompareOption selects the comparison strategy.
type CompareOption uint8

const (
	// CompareNone sends the whole comparison to the oracle.
	CompareNone CompareOption = iota
	// CompareTryFastPath tries the weight-table path first.
	CompareTryFastPath
)

// String returns the option name.
func (o CompareOption) String() string {
	if o == CompareTryFastPath {
		return "try-fast-path"
	}
	return "none"
}
