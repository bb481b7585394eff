package heap

// Kind tags an allocation with the string variant it backs.
type Kind uint8

const (
	// LineString is a flat string owning its character bytes.
	LineString Kind = iota
	// SlicedString is a window into a line string.
	SlicedString
	// TreeString is a lazy concatenation node.
	TreeString

	numKinds
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case LineString:
		return "LineString"
	case SlicedString:
		return "SlicedString"
	case TreeString:
		return "TreeString"
	default:
		return "Unknown"
	}
}

// Space selects the heap partition an object is placed in.
type Space uint8

const (
	// Regular is the default young, movable space.
	Regular Space = iota
	// NonMovable holds objects whose address must stay fixed.
	NonMovable
	// ReadOnly holds snapshot data that is never written after sealing.
	ReadOnly
	// OldShared holds strings visible to more than one engine context.
	OldShared
	// NoGC holds objects that are never collected.
	NoGC

	numSpaces
)

// String returns the space name.
func (s Space) String() string {
	switch s {
	case Regular:
		return "regular"
	case NonMovable:
		return "non-movable"
	case ReadOnly:
		return "read-only"
	case OldShared:
		return "old-shared"
	case NoGC:
		return "no-gc"
	default:
		return "unknown"
	}
}

// ParseSpace maps a space name as printed by Space.String back to a Space.
func ParseSpace(name string) (Space, bool) {
	for s := Regular; s < numSpaces; s++ {
		if s.String() == name {
			return s, true
		}
	}
	return Regular, false
}
