package tui

import (
	"fmt"

	"github.com/muesli/termenv"
)

// PrintBanner outputs the ASCII art banner for ZapFlow.
func PrintBanner() {
	p := termenv.ColorProfile()
	// Green gradient, WhatsApp-ish
	s1 := termenv.String("  ______          ______ _               ").Foreground(p.Color("#4ade80"))
	s2 := termenv.String(" |___  /         |  ____| |              ").Foreground(p.Color("#34d399"))
	s3 := termenv.String("    / / __ _ _ __| |__  | | _____      __").Foreground(p.Color("#2dd4bf"))
	s4 := termenv.String("   / / / _` | '_ \\  __| | |/ _ \\ \\ /\\ / /").Foreground(p.Color("#22d3ee"))
	s5 := termenv.String("  / /_| (_| | |_) | |    | | (_) \\ V  V / ").Foreground(p.Color("#38bdf8"))
	s6 := termenv.String(" /_____\\__,_| .__/|_|    |_|\\___/ \\_/\\_/  ").Foreground(p.Color("#60a5fa"))
	s7 := termenv.String("            | |                           ").Foreground(p.Color("#818cf8"))
	s8 := termenv.String("            |_|                           ").Foreground(p.Color("#a78bfa"))

	fmt.Println()
	fmt.Println(s1)
	fmt.Println(s2)
	fmt.Println(s3)
	fmt.Println(s4)
	fmt.Println(s5)
	fmt.Println(s6)
	fmt.Println(s7)
	fmt.Println(s8)
	fmt.Println()
}
