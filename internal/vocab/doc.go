// Package vocab is the word store. It reads and writes the CSV word file
// and owns the ordered in-memory word list the cycle engine walks through.
package vocab
