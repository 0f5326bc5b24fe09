package describe

const captionSystemPrompt = "You are a vision model that describes visible actions. " +
	"Be concise and grounded in what is visible."

const captionUserPrompt = "Describe the current frame with 1-2 short sentences focused on actions. " +
	"If you reference people or objects, keep names consistent with known_entities. " +
	"Return ONLY valid JSON with keys: caption, actions, objects, people, setting, confidence. " +
	"Do not wrap in code fences or add extra text. " +
	"confidence is 0-1. actions/objects/people are arrays of short strings."

const describeSystemPrompt = "You are a vision model that describes the scene succinctly. " +
	"Be precise and avoid guessing."

const describeUserPrompt = "Describe the overall scene in 1 short sentence. " +
	"Focus on what's visible and what's happening. " +
	"If something is unknown, leave it out. " +
	"Return ONLY valid JSON with keys: description, actions, objects, people, setting, confidence. " +
	"Do not wrap in code fences or add extra text. " +
	"confidence is 0-1. actions/objects/people are arrays of short strings."

const sceneSystemPrompt = "You describe a single camera angle segment of a video. " +
	"Use only what is visible across the provided frames."

const summarySystemPrompt = "You summarize ongoing video context based on recent visual actions and audio. " +
	"Keep it to 1-2 sentences and avoid repeating static details."

const justifySystemPrompt = "You are analyzing an advertisement video. " +
	"For each second, justify why that moment is likely included. " +
	"Be specific, grounded in the provided visual/audio evidence, and concise. " +
	"If you cannot justify a second, return an empty string for its justification."

const justifyInstructions = "Return ONLY valid JSON as an array of objects with keys: t, justification. " +
	"Use the same t values provided in seconds. Do not add extra text."
