//go:build linux && !arm64

package spawn

import "golang.org/x/sys/unix"

func sysFork() (uintptr, unix.Errno) {
	pid, _, errno := unix.RawSyscall(unix.SYS_FORK, 0, 0, 0)
	return pid, errno
}
