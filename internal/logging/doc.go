// Package logging builds the slog loggers used across clipsight.
//
// Console output uses tint for compact colorized records when attached to a
// terminal; the json format emits machine-readable records with ts/level/msg
// keys. Loggers can fan out to stderr plus a log file under the configured
// log directory. Component loggers tag every record with the pipeline stage
// that produced it.
package logging
