//go:build ecmastr_debug

package ecmastring

const debugChecks = true
