//go:build rt_safe && linux && cgo

// RT-safe backend: a kernel-assisted mutex implementing priority
// inheritance via POSIX pthread_mutex_t configured with
// PTHREAD_PRIO_INHERIT. Eliminates unbounded priority inversion when the
// producer runs at a higher scheduling priority than a subscriber
// connection goroutine. No pure-Go package exposes this (it is a
// glibc/pthread feature with no portable Go binding), hence cgo.
//
// POSIX does not define a priority-inheriting rwlock, so RWMutex here
// degrades to the same mutual-exclusion mutex for both RLock and Lock.

package rtlock

/*
#cgo LDFLAGS: -lpthread
#include <pthread.h>
#include <stdlib.h>

static pthread_mutex_t* rtlock_new_pi_mutex() {
	pthread_mutexattr_t attr;
	pthread_mutexattr_init(&attr);
	pthread_mutexattr_setprotocol(&attr, PTHREAD_PRIO_INHERIT);
	pthread_mutex_t *m = (pthread_mutex_t*)malloc(sizeof(pthread_mutex_t));
	pthread_mutex_init(m, &attr);
	pthread_mutexattr_destroy(&attr);
	return m;
}

static void rtlock_pi_lock(pthread_mutex_t *m) {
	pthread_mutex_lock(m);
}

static void rtlock_pi_unlock(pthread_mutex_t *m) {
	pthread_mutex_unlock(m);
}
*/
import "C"

import (
	"runtime"
	"unsafe"
)

type piMutex struct {
	m *C.pthread_mutex_t
}

// NewMutex returns the rt_safe priority-inheritance Mutex backend.
func NewMutex() Mutex {
	pm := &piMutex{m: C.rtlock_new_pi_mutex()}
	runtime.SetFinalizer(pm, func(x *piMutex) {
		C.free(unsafe.Pointer(x.m))
	})
	return pm
}

func (pm *piMutex) Lock()   { C.rtlock_pi_lock(pm.m) }
func (pm *piMutex) Unlock() { C.rtlock_pi_unlock(pm.m) }

// piRWMutex wraps the same PI mutex for both read and write acquisition,
// since POSIX has no priority-inheriting rwlock variant.
type piRWMutex struct {
	*piMutex
}

// NewRWMutex returns the rt_safe RWMutex backend, degraded to mutual
// exclusion (see package doc).
func NewRWMutex() RWMutex {
	return &piRWMutex{piMutex: &piMutex{m: C.rtlock_new_pi_mutex()}}
}

func (rw *piRWMutex) RLock()   { rw.Lock() }
func (rw *piRWMutex) RUnlock() { rw.Unlock() }

// rwMutexAllowsConcurrentReaders is false for this backend only: POSIX
// defines no priority-inheriting rwlock, so RLock/RUnlock alias the same
// exclusive mutex as Lock/Unlock. Consulted only by rtlock_test.go, which
// skips its concurrent-readers case here.
const rwMutexAllowsConcurrentReaders = false
