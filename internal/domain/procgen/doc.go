// Package procgen defines the contract for generating procedure-chain programs, bulk
// synthetic input used to stress the toy-language interpreter.
package procgen
