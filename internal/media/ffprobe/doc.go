// Package ffprobe shells out to ffprobe for container inspection.
package ffprobe
