// Package core is the stable public API for embedding keyreaper's
// detection engine: check token values against every module, carve an HTTP
// response for crackable tokens, or look up hashcat command templates.
//
// The CLI in cmd/keyreaper is a thin front end over this package.
package core
