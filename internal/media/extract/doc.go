// Package extract drives ffmpeg to produce the frame sequence and the mono
// audio track an analysis run consumes.
package extract
