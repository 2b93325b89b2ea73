// Package utils holds small helpers shared by handlers and commands, such
// as form ID formatting and loose boolean parsing.
package utils
