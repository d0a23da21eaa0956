//go:build !rt_spinfree && !rt_safe

// Default backend: a standard user-space mutex (adaptive spin + futex park
// under the hood, via sync.Mutex/sync.RWMutex). Used unless a build is
// tagged rt_spinfree or rt_safe.

package rtlock

import "sync"

// NewMutex returns the default Mutex backend.
func NewMutex() Mutex { return &sync.Mutex{} }

// NewRWMutex returns the default RWMutex backend.
func NewRWMutex() RWMutex { return &sync.RWMutex{} }

// rwMutexAllowsConcurrentReaders is true for every backend except rt_safe,
// whose RWMutex degrades RLock/RUnlock to the same exclusive mutex as
// Lock/Unlock (see rtsafe_linux.go). Consulted only by rtlock_test.go.
const rwMutexAllowsConcurrentReaders = true
