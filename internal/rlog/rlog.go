// Package rlog is a thin wrapper around the standard library's log.Logger,
// giving the renderer leveled Warn/Info helpers without pulling in a
// structured-logging dependency the rest of the corpus doesn't use either.
package rlog

import (
	"log"
	"os"
)

var std = log.New(os.Stderr, "", log.LstdFlags)

// Warnf logs a warning-level message. The renderer uses this for
// recoverable numeric degeneracies (a refraction march that finds no exit
// surface, a malformed scene line) that shouldn't abort the render.
func Warnf(format string, args ...any) {
	std.Printf("[warn] "+format, args...)
}

// Infof logs an info-level message, used for render progress and
// configuration echoes.
func Infof(format string, args ...any) {
	std.Printf("[info] "+format, args...)
}
