// Package session is the application context. A Session owns the settings
// store, the word store and the cycle engine, resolves which word file to
// load at startup and exposes the operations the GUI and CLI call.
//
// A Session is not safe for concurrent use. The GUI calls it from the Fyne
// event loop only; timer callbacks reach it through fyne.Do.
package session
