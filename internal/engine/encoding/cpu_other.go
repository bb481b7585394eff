//go:build !amd64 && !arm64

package encoding

// Unaligned 64-bit loads are not known to be cheap here.
var scan = scanByte
