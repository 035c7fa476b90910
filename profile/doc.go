// Package profile provides optional runtime profiling for constx.
//
// Profiling is backed by [github.com/pkg/profile] and compiled in only with
// the "pprof" build tag:
//
//	go build -tags pprof -o constx .
//
// Without the tag every [Config] starts a no-op profiler and [Modes] is
// empty.
//
// # Modes
//
// allocs, block, clock, cpu, goroutine, heap, mem, mutex, thread, and trace.
// Use [Modes] to list them programmatically.
//
// # Usage
//
//	var cfg profile.Config = func() (string, string, bool) { return "", "", false }
//	cfg = profile.WithMode("cpu")(cfg)
//	cfg = profile.WithPath("/tmp/profiles")(cfg)
//	defer cfg.Start().Stop()
//
// From the command line:
//
//	constx --pprof-mode=cpu --pprof-dir=./profiles convert -i app.conf -o app.xml
//	go tool pprof -http=: ./profiles/cpu.pprof
//
// The default output directory is the "pprof" subdirectory of the constx
// cache directory.
package profile

// Tag is the build tag required to enable pprof profiling.
const Tag = `pprof`
