package logging

import (
	"io"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Component returns a child of the global logger tagged with the "cmp" key.
// The global logger is captured when Component is called, so components
// built after Discard stay quiet.
func Component(name string) zerolog.Logger {
	return log.With().Str("cmp", name).Logger()
}

// Discard points the global logger at io.Discard and returns a function
// restoring the previous one. Test mains use it so package tests stay quiet.
func Discard() (restore func()) {
	prev := log.Logger
	log.Logger = zerolog.New(io.Discard).Hook(ContextHook{})
	return func() { log.Logger = prev }
}
