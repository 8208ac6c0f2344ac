// Package logging provides the structured logging interface shared by the
// eintcalc components. Calls go through the Logger interface so that the
// server, calibration and REPL can log the same way whether they run on
// zerolog or on a plain log.Logger.
package logging
