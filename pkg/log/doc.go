// Package log provides the logging abstraction used by the service host.
//
// Two interfaces are defined. [Logger] is the structured front end used by
// components (Debug/Info/Warn/Error with fields). [Sink] is the narrow
// back end contract: Write(level, tag, message) plus a process-wide level
// that can be read and changed at runtime.
//
// Levels are plain integers; a message is written when its level is less
// than or equal to the current level:
//
//	LevelError       = 10
//	LevelWarning     = 100
//	LevelInformation = 1000
//	LevelDebug       = 10000
//	LevelVerbose     = 100000
//
// # Usage
//
//	root := log.NewZerologAdapter()
//	root.SetLevel(log.LevelDebug)
//	logger := root.WithTag("worker")
//	logger.Info("started", log.Int("pid", os.Getpid()))
//
// Tagged children share the level of the adapter they were derived from,
// so a single SetLevel call applies to the entire process.
//
// Use the no-op logger for testing:
//
//	logger := log.NewNoopLogger()
package log
