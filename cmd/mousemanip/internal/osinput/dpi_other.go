//go:build !windows

package osinput

// EnableDPIAwareness is a no-op outside Windows.
func EnableDPIAwareness() error {
	return nil
}
