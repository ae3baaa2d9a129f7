// Package logging builds the slog loggers used by vemap.
//
// Levels follow the five names of the original tool: DEBUG, INFO, WARNING,
// ERROR and CRITICAL. CRITICAL has no slog counterpart and is mapped to
// LevelCritical (slog.Level(12)); the text handler prints it, and WARNING,
// under those names.
//
//	lvl, err := logging.ParseLevel("WARNING")
//	fl, err := logging.OpenFile("TestResults/run.log", lvl)
//	defer fl.Close()
//	fl.Info("heuristic_selected", "name", "MINFILL")
//
// Library packages never log unless the caller passes a logger; Discard
// returns the silent default they fall back to.
package logging
