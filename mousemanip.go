// Package mousemanip keeps a desktop session awake by walking the mouse cursor
// around a square while a global hotkey has it enabled.
package mousemanip

// Version is overridden at link time with -ldflags "-X".
var Version = "devel"
