//go:build linux && arm64

package spawn

import "golang.org/x/sys/unix"

// arm64 has no fork syscall; clone with SIGCHLD is the equivalent.
func sysFork() (uintptr, unix.Errno) {
	pid, _, errno := unix.RawSyscall(unix.SYS_CLONE, uintptr(unix.SIGCHLD), 0, 0)
	return pid, errno
}
