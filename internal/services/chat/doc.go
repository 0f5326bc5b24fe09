// Package chat wraps an OpenAI-compatible chat-completions endpoint for both
// text and vision requests, with retry/backoff and tolerant JSON decoding of
// model output.
package chat
