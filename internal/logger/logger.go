package logger

import (
	"fmt"
	"strings"
)

// ANSI color codes. Disabled output is not worth the plumbing for a
// local analysis tool; modern Windows terminals handle these fine.
const (
	reset  = "\033[0m"
	bold   = "\033[1m"
	dim    = "\033[2m"
	red    = "\033[31m"
	green  = "\033[32m"
	yellow = "\033[33m"
	cyan   = "\033[36m"
)

func tagged(color, tag, msg string) {
	fmt.Printf("%s[%s]%s %s\n", color+bold, tag, reset, msg)
}

// Info prints an informational message with a cyan tag.
func Info(tag, msg string) {
	tagged(cyan, tag, msg)
}

// Success prints a success message with a green tag.
func Success(tag, msg string) {
	tagged(green, tag, msg)
}

// Warn prints a warning message with a yellow tag.
func Warn(tag, msg string) {
	tagged(yellow, tag, msg)
}

// Error prints an error message with a red tag.
func Error(tag, msg string) {
	tagged(red, tag, msg)
}

// Banner prints the startup banner.
func Banner(version string) {
	if version == "" {
		version = "dev"
	}
	fmt.Println(cyan + bold + `  ___  ___  _    ___   ___  ___  ___ _    ___ _  _ ` + reset)
	fmt.Println(cyan + bold + ` / __|/ _ \| |  |   \ / __|/ _ \| _ ) |  |_ _| \| |` + reset)
	fmt.Println(cyan + bold + `| (_)| (_) | |__| |) | (_)| (_) | _ \ |__ | || .' |` + reset)
	fmt.Println(cyan + bold + ` \___|\___/|____|___/ \___|\___/|___/____|___|_|\_|` + reset)
	fmt.Printf("%sauction market analyzer %s%s\n\n", dim, version, reset)
}

// Section prints a section divider.
func Section(name string) {
	fmt.Printf("\n%s== %s %s%s\n", bold, name, strings.Repeat("=", max(0, 50-len(name))), reset)
}

// Stats prints a key/value statistic line.
func Stats(key string, value interface{}) {
	fmt.Printf("  %s%-24s%s %v\n", dim, key, reset, value)
}

// Server prints the serving address.
func Server(addr string) {
	fmt.Printf("%s[Server]%s Listening on %shttp://%s%s\n", green+bold, reset, bold, addr, reset)
}
