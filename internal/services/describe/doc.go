// Package describe turns chat completions into the structured vision and text
// payloads the analysis pipeline consumes: frame captions, scene descriptions,
// background narration, and per-second justifications. It owns the prompt
// text and the lenient payload normalization that tolerates the loose JSON
// vision models return.
package describe
