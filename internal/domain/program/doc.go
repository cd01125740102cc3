// Package program defines the contract of the toy-language interpreter: its run options
// and the result of executing a program.
package program
