// Package analysis implements the temporal signal-extraction pipeline: it
// turns a video file into a multi-track analysis document with keyframe
// captions, contiguous events, scene segments, per-second descriptions, an
// audio transcript, sparse background narration, and a per-second
// justification timeline.
//
// The pipeline is a single sequential control flow. Concurrency exists only
// inside the ordered bounded parallel map that fans out independent
// description requests; every stateful stage (keyframe scan, background
// aggregation, justification chunking) runs strictly in order because each
// iteration depends on its predecessor.
package analysis
