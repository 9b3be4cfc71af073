// Package ports defines the boundary interfaces the navigation core consumes.
//
// The engine never talks to hardware directly: audio playback, keypad input
// and tree storage sit behind these ports so a GPIO keypad, a serial bridge,
// a console emulator or a scripted test harness can stand in for each other
// without touching the core.
package ports
