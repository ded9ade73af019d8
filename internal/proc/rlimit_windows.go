//go:build windows

package proc

// Windows has no per-process resource-limit model comparable to getrlimit.
func selfLimits() (Limits, error) {
	return Limits{}, ErrUnsupported
}
