// Package keyreaper provides the command-line interface for the keyreaper
// tool. It configures subcommands (check, carve, hashcat, modules), parses
// flags, and executes the selected command.
//
// Typical usage from a main package:
//
//	package main
//	import "github.com/keyreaper/keyreaper/cmd/keyreaper"
//	func main() { keyreaper.Execute() }
package keyreaper
