// Package preflight provides readiness checks for the paths and the browser
// that reelq depends on.
//
// "reelq doctor" runs RunAll and prints each Result. The individual checks
// are exported so other commands can reuse them.
package preflight
