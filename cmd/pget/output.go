package main

import "fmt"

// ANSI color codes
var (
	colorReset  = "\033[0m"
	colorRed    = "\033[91m"
	colorGreen  = "\033[92m"
	colorYellow = "\033[93m"
	colorBlue   = "\033[94m"
	colorCyan   = "\033[96m"
)

// Unicode symbols
var (
	symbolCheck    = "✓"
	symbolCross    = "✗"
	symbolInfo     = "ℹ"
	symbolWarning  = "⚠"
	symbolDownload = "⬇"
)

var runErrorCount int

// Colorized print functions
func printSuccess(msg string) {
	fmt.Printf("%s%s%s %s\n", colorGreen, symbolCheck, colorReset, msg)
}

func printError(msg string) {
	runErrorCount++
	fmt.Printf("%s%s%s %s\n", colorRed, symbolCross, colorReset, msg)
}

func printInfo(msg string) {
	fmt.Printf("%s%s%s %s\n", colorBlue, symbolInfo, colorReset, msg)
}

func printWarning(msg string) {
	fmt.Printf("%s%s%s %s\n", colorYellow, symbolWarning, colorReset, msg)
}

func printDownload(msg string) {
	fmt.Printf("%s%s%s %s\n", colorCyan, symbolDownload, colorReset, msg)
}
