// Package whisperx runs speech-to-text over extracted audio by shelling out
// to WhisperX through the uvx launcher and parsing its JSON output.
package whisperx
