// Package pi defines the contract for approximating the constant pi with the Leibniz series.
package pi
