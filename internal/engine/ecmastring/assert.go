package ecmastring

import "fmt"

// debugAssert panics when cond is false in builds tagged ecmastr_debug.
// Violations are caller bugs inside the engine, never input errors. Call
// sites sit inside an if debugChecks block so release builds never box
// the format arguments.
func debugAssert(cond bool, format string, args ...any) {
	if debugChecks && !cond {
		panic("ecmastring: " + fmt.Sprintf(format, args...))
	}
}
