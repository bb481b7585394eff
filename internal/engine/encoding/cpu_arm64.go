//go:build arm64

package encoding

var scan = scanWord
