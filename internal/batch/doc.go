// Package batch reads the plain-text word list format, one entry per line
// with optional reading and meaning separated by '='.
package batch
