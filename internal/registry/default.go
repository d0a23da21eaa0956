package registry

import "sync"

var (
	defaultOnce sync.Once
	defaultReg  *Registry
)

// Default returns the process-wide registry, lazily initialized on first
// use. Every call to the root package's CreateStream goes through this
// instance; there is no API to reinitialize it within a process run.
func Default() *Registry {
	defaultOnce.Do(func() {
		defaultReg = New()
	})
	return defaultReg
}
