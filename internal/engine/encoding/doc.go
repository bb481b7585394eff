// Package encoding classifies and converts code-unit data for string storage.
//
// A string is stored compressed (one byte per code unit) when every code unit
// is at most 0xFF, and wide (two bytes per unit, UTF-16) otherwise. The
// classifier runs once, at construction, over whichever source data is at
// hand: UTF-8 bytes, UTF-16 units, or Latin-1 bytes.
//
// UTF-8 input is decoded in the modified form used by class files and
// snapshot formats:
//
//   - the overlong pair C0 80 decodes to U+0000
//   - three-byte encoded surrogates (CESU-8) decode to the surrogate unit itself
//   - four-byte sequences decode to a surrogate pair
//   - any other invalid byte decodes to U+FFFD and consumes one byte
//
// Under these rules a UTF-8 input never decodes to more code units than it
// has bytes, so the byte length is a safe capacity for the decoded form.
package encoding
