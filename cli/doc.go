// Package cli contains the command line interface for constx.
//
// # Usage
//
// Convert is the default command, so these are equivalent:
//
//	constx convert -i app.conf -o app.xml
//	constx -i app.conf -o app.xml
//
// Other commands render to stdout, evaluate expressions, or start an
// interactive session:
//
//	constx fmt --format yaml app.conf
//	constx query -i app.conf 'port > 1024'
//	constx repl -i app.conf
//
// # Configuration
//
// Flag defaults are read from two files in the user configuration
// directory (for example ~/.config/constx): config.json, and config written
// as constant declarations. Constant names use underscores in place of the
// hyphens in flag names:
//
//	const log_level = "debug";
//	const log_pretty = false;
//
// Command-line flags override config file values. The init command writes
// the current flag values to config.
//
// # Logging Options
//
//   - --log-level: Set minimum log level (trace, debug, info, warn, error)
//   - --log-format: Set log output format (text, json)
//   - --log-time-layout: Set timestamp format (RFC3339, RFC3339Nano, etc.)
//   - --log-caller: Include caller information in log output
//   - --log-pretty: Colorize text output
//
// # Profiling Options
//
// Profiling is only available when built with the pprof build tag:
//
//	go build -tags pprof -o constx .
//
//   - --pprof-mode: Enable profiling (allocs, block, clock, cpu, goroutine,
//     heap, mem, mutex, thread, trace)
//   - --pprof-dir: Set profile output directory (default ~/.cache/constx/pprof)
package cli
