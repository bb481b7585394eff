package collator

import "github.com/dshills/ecmastr/internal/engine/ecmastring"

// FastResult is the outcome of the weight-table path.
type FastResult struct {
	// Resolved reports whether Result is final.
	Resolved bool
	// Result is the ordering when Resolved.
	Result Ordering
	// ResumeAt is where the oracle must start when not Resolved. The units
	// before it are identical in both operands.
	ResumeAt int
}

// lookaheadOK reports whether the unit at i is ASCII or past the end. An
// unscanned non-ASCII unit could be a combining mark that changes the
// weight of the unit before it.
func lookaheadOK(v ecmastring.FlatView, i int) bool {
	return i >= v.Len() || v.At(i) < 0x80
}

// TryFastCompare compares a and b with the weight tables. Priority is a
// primary difference, then a length difference (only when the first extra
// unit is itself fast-comparable), then a tertiary difference.
func TryFastCompare(a, b ecmastring.FlatView) FastResult {
	common := min(a.Len(), b.Len())

	var (
		processed   int
		hasDiff     bool
		firstDiffAt int
		l1, l3      Ordering
	)

	bail := func() FastResult {
		if hasDiff {
			return FastResult{ResumeAt: firstDiffAt}
		}
		return FastResult{ResumeAt: max(processed-1, 0)}
	}

	i := 0
	for ; i < common; i++ {
		ca, cb := a.At(i), b.At(i)
		wa, wb := primaryWeight(ca), primaryWeight(cb)
		if wa == 0 || wb == 0 {
			processed = i
			return bail()
		}
		if ca == cb {
			continue
		}
		if !hasDiff {
			hasDiff = true
			firstDiffAt = i
		}
		if wa != wb {
			l1 = cmpWeights(wa, wb)
			break
		}
		if l3 == Equal {
			l3 = cmpWeights(tertiaryWeights[ca], tertiaryWeights[cb])
		}
	}

	if l1 != Equal {
		if !lookaheadOK(a, i+1) || !lookaheadOK(b, i+1) {
			return bail()
		}
		return FastResult{Resolved: true, Result: l1}
	}

	processed = common
	if !lookaheadOK(a, common) || !lookaheadOK(b, common) {
		return bail()
	}

	switch {
	case a.Len() > common:
		if !isFastComparable(a.At(common)) {
			return bail()
		}
		return FastResult{Resolved: true, Result: Greater}
	case b.Len() > common:
		if !isFastComparable(b.At(common)) {
			return bail()
		}
		return FastResult{Resolved: true, Result: Less}
	}
	return FastResult{Resolved: true, Result: l3}
}
