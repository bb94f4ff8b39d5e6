package market

// ReferenceIndex enumerates supported floating benchmarks.
type ReferenceIndex string

const (
	ESTR      ReferenceIndex = "ESTR"
	EURIBOR3M ReferenceIndex = "EURIBOR3M"
	EURIBOR6M ReferenceIndex = "EURIBOR6M"
	TONAR     ReferenceIndex = "TONAR"
	TIBOR3M   ReferenceIndex = "TIBOR3M"
	TIBOR6M   ReferenceIndex = "TIBOR6M"
	SOFR      ReferenceIndex = "SOFR"
	CD91D     ReferenceIndex = "CD91D"
)

// IsOvernight reports whether the reference rate is an overnight index used in OIS discounting/projection.
func IsOvernight(r ReferenceIndex) bool {
	switch r {
	case ESTR, TONAR, SOFR:
		return true
	default:
		return false
	}
}

// TermTenorMonths reports the fixing tenor, in months, implied by a term
// (non-overnight) reference index, e.g. EURIBOR6M -> 6. ok is false for an
// overnight index or an index this package doesn't recognise.
func TermTenorMonths(r ReferenceIndex) (months int, ok bool) {
	switch r {
	case EURIBOR3M, TIBOR3M:
		return 3, true
	case EURIBOR6M, TIBOR6M:
		return 6, true
	case CD91D:
		return 3, true
	default:
		return 0, false
	}
}
