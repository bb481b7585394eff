package ecmastring

// FlatView is a transient read-only window over directly addressable units
// of a line string. It is never stored as a string value.
type FlatView struct {
	src    *String
	start  int
	length int
}

// Source returns the line string the view reads from.
func (v FlatView) Source() *String {
	return v.src
}

// Start returns the offset of the view within its source.
func (v FlatView) Start() int {
	return v.start
}

// Len returns the number of units in the view.
func (v FlatView) Len() int {
	return v.length
}

// Compressed reports whether the view's units are stored one byte each.
func (v FlatView) Compressed() bool {
	return v.src.compressed
}

// Latin1 returns the view's bytes. The view must be compressed.
func (v FlatView) Latin1() []byte {
	if debugChecks {
		debugAssert(v.src.compressed, "Latin1 on wide view")
	}
	return v.src.data[v.start : v.start+v.length]
}

// UTF16 returns the view's units. The view must be wide.
func (v FlatView) UTF16() []uint16 {
	if debugChecks {
		debugAssert(!v.src.compressed, "UTF16 on compressed view")
	}
	return wideView(v.src.data)[v.start : v.start+v.length]
}

// At returns unit i of the view.
func (v FlatView) At(i int) uint16 {
	return v.src.lineUnit(v.start + i)
}

// Sub returns the sub-window [start, start+length) of v.
func (v FlatView) Sub(start, length int) FlatView {
	if debugChecks {
		debugAssert(start >= 0 && length >= 0 && start+length <= v.length,
			"Sub [%d:%d] of view length %d", start, start+length, v.length)
	}
	return FlatView{src: v.src, start: v.start + start, length: length}
}

// IsASCII reports whether every unit of the view is below 0x80.
func (v FlatView) IsASCII() bool {
	if v.length == 0 {
		return true
	}
	if v.Compressed() {
		return isASCII8(v.Latin1())
	}
	return isASCII16(v.UTF16())
}

// AppendUTF16 appends the view's units to dst, widening compressed data.
func (v FlatView) AppendUTF16(dst []uint16) []uint16 {
	if !v.Compressed() {
		return append(dst, v.UTF16()...)
	}
	for _, c := range v.Latin1() {
		dst = append(dst, uint16(c))
	}
	return dst
}
