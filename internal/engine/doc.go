// Package engine provides the string engine facade.
//
// An Engine bundles one string factory (allocator, write barrier, heap
// space and length limits), one locale cache, one comparator and one intern
// table behind a single API, configured from config.Config and functional
// options.
//
// # Architecture
//
// The engine is built on several sub-packages:
//
//   - encoding: code-unit classification and MUTF-8 decoding
//   - ecmastring: string values, construction, flattening, hashing
//   - collator: locale comparison with a weight-table fast path
//   - intern: canonical string table
//
// # Basic Usage
//
//	e, err := engine.New()
//	if err != nil {
//	    return err
//	}
//	defer e.Close()
//
//	a, _ := e.FromUTF8([]byte("integer"))
//	b, _ := e.FromUTF8([]byte("Integer"))
//	ord, _ := e.Compare(a, b) // engine.Less under en-US
//
// # Configuration
//
// Configure the engine at creation time:
//
//	cfg, _ := config.Load("ecmastr.toml")
//	e, _ := engine.New(
//	    engine.WithConfig(cfg),
//	    engine.WithLogger(logger),
//	    engine.WithLocale(language.German),
//	)
//
// Collation settings follow the configuration file when watched:
//
//	e.WatchConfig("ecmastr.toml", 100*time.Millisecond)
//
// Changes to string limits, heap layout or logging need a new Engine; a
// reload that changes them is applied to collation only and logged.
//
// # Thread Safety
//
// All Engine methods are safe for concurrent use. String values themselves
// are immutable once returned.
//
// # Logging
//
// Every Engine carries a context id that is attached to its log entries.
// The string core never logs; the engine logs oracle fallbacks and
// allocation failures at debug level and configuration reloads at info.
package engine
