//go:build !linux

package spawn

// NewRaw is unavailable without fork(2); callers fall back to Reexec.
func NewRaw() (Spawner, error) {
	return nil, ErrRawUnsupported
}
