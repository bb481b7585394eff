// Package logging builds the structured logger used by the engine and CLI.
//
// Loggers are zerolog loggers. Output goes to a human-readable console
// writer when the destination is a terminal (or when the console format is
// requested explicitly) and to JSON lines otherwise. An optional file sink
// is rotated by lumberjack.
//
// The string core never logs. Only the engine facade, configuration reload
// and the CLI do.
package logging
