//go:build windows

package osinput

import "golang.org/x/sys/windows"

var procSetProcessDpiAwarenessContext = windows.NewLazySystemDLL("user32.dll").NewProc("SetProcessDpiAwarenessContext")

// DPI_AWARENESS_CONTEXT_SYSTEM_AWARE is ((DPI_AWARENESS_CONTEXT)-2).
const dpiAwarenessContextSystemAware = ^uintptr(1)

// EnableDPIAwareness makes screen metrics and cursor positions use physical
// pixels on scaled displays.
func EnableDPIAwareness() error {
	if err := procSetProcessDpiAwarenessContext.Find(); err != nil {
		return err
	}
	ok, _, err := procSetProcessDpiAwarenessContext.Call(dpiAwarenessContextSystemAware)
	if ok == 0 {
		return err
	}
	return nil
}
