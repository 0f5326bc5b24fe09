// Package scenecut detects hard visual cuts by parsing the showinfo output
// of an ffmpeg scene-change filter pass.
package scenecut
