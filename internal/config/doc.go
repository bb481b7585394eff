// Package config provides typed configuration for the string engine.
//
// A Config has four sections:
//
//   - strings: length limits, tree and slice thresholds, default heap space
//   - collation: default locale, fast-path allow-list, scratch buffer size
//   - heap: arena page size and byte limit
//   - log: level, format and rotated file sink
//
// # Sources
//
// Values are layered, later sources overriding earlier ones:
//
//  1. Built-in defaults (Default)
//  2. A TOML or YAML file, with "@include" directives resolved
//  3. ECMASTR_* environment variables
//
// Each source is read into a map by the loader sub-package, the maps are
// merged, and the result is decoded into Config with mapstructure using
// weak typing, so "256" and 256 are both accepted for an integer setting
// and "en,de" for a list.
//
//	cfg, err := config.Load("ecmastr.toml")
//	if err != nil {
//	    return err
//	}
//	fmt.Println(cfg.Collation.DefaultLocale)
//
// # Live Reload
//
// A Manager keeps the current Config, re-loads it when the file changes
// (see the watcher sub-package) and notifies subscribers with the old and
// new values. A reload that fails to parse or validate keeps the previous
// Config and is reported through OnError.
//
// # Error Handling
//
// Parse failures are *ParseError with file position when known. Validation
// failures are joined *ValidationError values matching ErrInvalidValue.
package config
