package tui

import (
	"fmt"

	"github.com/muesli/termenv"
)

// PrintBanner outputs the ASCII art banner shown when the console phone
// starts up.
func PrintBanner() {
	p := termenv.ColorProfile()
	// Amber payphone-keypad palette.
	s1 := termenv.String("                 _ _       _     _                         _ ").Foreground(p.Color("#fbbf24"))
	s2 := termenv.String("  _____      __ (_) |_ ___| |__ | |__   ___   __ _ _ __ __| |").Foreground(p.Color("#f59e0b"))
	s3 := termenv.String(" / __\\ \\ /\\ / / | | __/ __| '_ \\| '_ \\ / _ \\ / _` | '__/ _` |").Foreground(p.Color("#d97706"))
	s4 := termenv.String(" \\__ \\\\ V  V /  | | || (__| | | | |_) | (_) | (_| | | | (_| |").Foreground(p.Color("#b45309"))
	s5 := termenv.String(" |___/ \\_/\\_/   |_|\\__\\___|_| |_|_.__/ \\___/ \\__,_|_|  \\__,_|").Foreground(p.Color("#92400e"))

	fmt.Println()
	fmt.Println(s1)
	fmt.Println(s2)
	fmt.Println(s3)
	fmt.Println(s4)
	fmt.Println(s5)
	fmt.Println()
}
