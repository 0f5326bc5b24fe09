package describe

import (
	"encoding/json"
	"strings"

	"clipsight/internal/services/chat"
)

// rawPayload tolerates the loose shapes vision models return: string-or-array
// fields, alternate key names, out-of-range confidence values.
type rawPayload struct {
	Caption     any `json:"caption"`
	Description any `json:"description"`
	Actions     any `json:"actions"`
	Objects     any `json:"objects"`
	People      any `json:"people"`
	Setting     any `json:"setting"`
	KeyElements any `json:"key_elements"`
	Elements    any `json:"elements"`
	Confidence  any `json:"confidence"`
}

// placeholderValues are model non-answers suppressed to the empty string.
var placeholderValues = map[string]struct{}{
	"unknown":  {},
	"unclear":  {},
	"n/a":      {},
	"not sure": {},
}

func parsePayload(content string) (rawPayload, string) {
	var payload rawPayload
	cleaned := chat.CleanText(content)
	if err := chat.DecodeModelJSON(content, &payload); err != nil {
		return rawPayload{}, cleaned
	}
	return payload, cleaned
}

func captionText(payload rawPayload, fallback string) string {
	text := coerceString(payload.Caption)
	if text == "" {
		text = chat.ExtractField(fallback, "caption")
	}
	if text == "" {
		text = chat.CleanText(fallback)
	}
	return text
}

func descriptionText(payload rawPayload, fallback string) string {
	text := coerceString(payload.Description)
	if text == "" {
		text = coerceString(payload.Caption)
	}
	if text == "" {
		text = chat.ExtractField(fallback, "description")
	}
	if text == "" {
		text = chat.CleanText(fallback)
	}
	if _, placeholder := placeholderValues[strings.ToLower(text)]; placeholder {
		return ""
	}
	return text
}

// coerceString renders any JSON value as trimmed text. Structured values are
// re-marshalled so nothing the model produced is silently lost.
func coerceString(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(v)
	case map[string]any, []any:
		encoded, err := json.Marshal(v)
		if err != nil {
			return ""
		}
		return strings.TrimSpace(string(encoded))
	default:
		encoded, err := json.Marshal(v)
		if err != nil {
			return ""
		}
		return strings.Trim(strings.TrimSpace(string(encoded)), `"`)
	}
}

// coerceList renders a string-or-array value as a deduplicated string slice,
// preserving first-seen order.
func coerceList(value any) []string {
	var items []any
	switch v := value.(type) {
	case nil:
		return nil
	case []any:
		items = v
	case string:
		items = []any{v}
	default:
		items = []any{v}
	}

	seen := make(map[string]struct{}, len(items))
	output := make([]string, 0, len(items))
	for _, item := range items {
		label := coerceString(item)
		if label == "" {
			continue
		}
		if _, ok := seen[label]; ok {
			continue
		}
		seen[label] = struct{}{}
		output = append(output, label)
	}
	if len(output) == 0 {
		return nil
	}
	return output
}

func coerceSetting(value any) string {
	if list, ok := value.([]any); ok {
		parts := make([]string, 0, len(list))
		for _, item := range list {
			if text := coerceString(item); text != "" {
				parts = append(parts, text)
			}
		}
		return strings.Join(parts, ", ")
	}
	return coerceString(value)
}

func clampConfidence(value any) float64 {
	var score float64
	switch v := value.(type) {
	case float64:
		score = v
	case json.Number:
		parsed, err := v.Float64()
		if err != nil {
			return 0
		}
		score = parsed
	case string:
		var parsed float64
		if err := json.Unmarshal([]byte(strings.TrimSpace(v)), &parsed); err != nil {
			return 0
		}
		score = parsed
	default:
		return 0
	}
	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}
