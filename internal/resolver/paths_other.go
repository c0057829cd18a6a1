//go:build !windows

package resolver

// DefaultPathsEqual compares paths byte for byte
func DefaultPathsEqual(a, b string) bool {
	return a == b
}
