package logging

import (
	"io"
	"log"
)

// Logf is the package-level diagnostic logger. The terminal belongs to the
// radar display, so it starts muted; SetOutput or SetLogger redirect it.
var Logf func(format string, v ...interface{}) = func(string, ...interface{}) {}

// SetLogger replaces the package logger. Passing nil will set a no-op logger.
func SetLogger(f func(format string, v ...interface{})) {
	if f == nil {
		Logf = func(string, ...interface{}) {}
		return
	}
	Logf = f
}

// SetOutput routes Logf to w with the given prefix.
func SetOutput(w io.Writer, prefix string) {
	l := log.New(w, prefix, log.LstdFlags|log.Lmicroseconds)
	SetLogger(l.Printf)
}
