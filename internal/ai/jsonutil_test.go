package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// ---- extractJSON tests ----

// TestExtractJSON_BareObject verifies that a plain JSON object is returned as-is.
func TestExtractJSON_BareObject(t *testing.T) {
	got := extractJSON(`{"title": "Goa Getaway"}`)
	assert.Equal(t, `{"title": "Goa Getaway"}`, got)
}

// TestExtractJSON_FencedBlock verifies that a markdown-fenced payload is
// unwrapped, with or without the json language tag.
func TestExtractJSON_FencedBlock(t *testing.T) {
	got := extractJSON("Here you go:\n```json\n{\"title\": \"Goa\"}\n```\nEnjoy!")
	assert.Equal(t, `{"title": "Goa"}`, got)

	got = extractJSON("```\n{\"title\": \"Goa\"}\n```")
	assert.Equal(t, `{"title": "Goa"}`, got)
}

// TestExtractJSON_SurroundingProse verifies that prose around an unfenced
// object is stripped by taking the outermost brace span.
func TestExtractJSON_SurroundingProse(t *testing.T) {
	got := extractJSON(`Sure! {"is_action": true, "action": "swap_activity"} Let me know.`)
	assert.Equal(t, `{"is_action": true, "action": "swap_activity"}`, got)
}

// TestExtractJSON_TrailingComma verifies that trailing commas before a
// closing brace or bracket are removed.
func TestExtractJSON_TrailingComma(t *testing.T) {
	got := extractJSON(`{"days": [1, 2,], "title": "X",}`)
	assert.Equal(t, `{"days": [1, 2], "title": "X"}`, got)
}

// TestExtractJSON_NoObject verifies that a response with no object at all
// yields the empty string.
func TestExtractJSON_NoObject(t *testing.T) {
	assert.Empty(t, extractJSON("I'm sorry, I can't help with that."))
	assert.Empty(t, extractJSON(""))
}

// ---- extractJSONArray tests ----

// TestExtractJSONArray_Fenced verifies array extraction from a fenced block.
func TestExtractJSONArray_Fenced(t *testing.T) {
	got := extractJSONArray("```json\n[\"Beach & Chill\", \"Food & Nightlife\"]\n```")
	assert.Equal(t, `["Beach & Chill", "Food & Nightlife"]`, got)
}

// TestExtractJSONArray_ObjectOnly verifies that a response containing only an
// object (no top-level array brackets) yields the empty string rather than a
// misparsed span.
func TestExtractJSONArray_ObjectOnly(t *testing.T) {
	assert.Empty(t, extractJSONArray(`{"title": "Goa"}`))
}
