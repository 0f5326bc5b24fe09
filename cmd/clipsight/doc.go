// Command clipsight is the CLI for the temporal video analysis pipeline. It
// analyzes video files into multi-track JSON artifacts and maintains a small
// SQLite catalog of completed runs.
package main
