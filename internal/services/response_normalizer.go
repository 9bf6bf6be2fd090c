package services

import (
	"encoding/json"
	"strings"

	"github.com/fatihtunali/travelquotebot/internal/models/response_models"
	"go.uber.org/zap"
)

const fence = "```"

type ResponseNormalizerInterface interface {
	// Normalize never fails: output that cannot be decoded becomes the
	// fallback itinerary for the requested day count.
	Normalize(raw string, days int) *response_models.Itinerary
}

type ResponseNormalizer struct {
	logger *zap.Logger
}

func NewResponseNormalizer(logger *zap.Logger) ResponseNormalizerInterface {
	return &ResponseNormalizer{logger: logger}
}

func (n *ResponseNormalizer) Normalize(raw string, days int) *response_models.Itinerary {
	itinerary, err := decodeItinerary(ExtractJSONPayload(raw))
	if err != nil {
		n.logger.Warn("Model output is not an itinerary object, using fallback",
			zap.Int("days", days), zap.Int("raw_length", len(raw)), zap.Error(err))
		return response_models.FallbackItinerary(days)
	}
	if mistyped := itinerary.MistypedFields(); len(mistyped) > 0 {
		n.logger.Warn("Model output has mistyped fields, passing them through",
			zap.Strings("fields", mistyped))
	}
	return itinerary
}

// ExtractJSONPayload strips markdown fences from model output.
//
// A fence tagged json (any case) wins: its body runs to the next fence, or
// to the end of the text when unclosed. Otherwise the body of the first
// fence is used, minus a one-word info string. Text without fences is
// returned trimmed.
func ExtractJSONPayload(raw string) string {
	text := strings.TrimSpace(raw)

	if start, ok := findTaggedFence(text, "json"); ok {
		return strings.TrimSpace(fenceBody(text[start:]))
	}

	idx := strings.Index(text, fence)
	if idx < 0 {
		return text
	}
	body := text[idx+len(fence):]
	if nl := strings.IndexByte(body, '\n'); nl >= 0 {
		if tag := strings.TrimSpace(body[:nl]); isInfoString(tag) {
			body = body[nl+1:]
		}
	}
	return strings.TrimSpace(fenceBody(body))
}

// findTaggedFence returns the offset just past the tag of the first fence
// whose info string starts with tag. The tag must be followed by
// whitespace, an opening brace or bracket, or the end of the text, so that
// both "```json\n{" and "```json {" open a tagged block.
func findTaggedFence(text, tag string) (int, bool) {
	offset := 0
	for {
		idx := strings.Index(text[offset:], fence)
		if idx < 0 {
			return 0, false
		}
		start := offset + idx + len(fence)
		rest := text[start:]
		if len(rest) >= len(tag) && strings.EqualFold(rest[:len(tag)], tag) && endsInfoTag(rest[len(tag):]) {
			return start + len(tag), true
		}
		offset = start
	}
}

func endsInfoTag(s string) bool {
	if s == "" {
		return true
	}
	switch s[0] {
	case ' ', '\t', '\r', '\n', '{', '[':
		return true
	}
	return false
}

func fenceBody(s string) string {
	if end := strings.Index(s, fence); end >= 0 {
		return s[:end]
	}
	return s
}

func isInfoString(s string) bool {
	if s == "" || strings.ContainsAny(s, " \t{}[]\"") {
		return false
	}
	return true
}

// decodeItinerary requires a JSON object. Members of the wrong type are kept
// as sent rather than rejecting the document.
func decodeItinerary(payload string) (*response_models.Itinerary, error) {
	if !strings.HasPrefix(strings.TrimSpace(payload), "{") {
		return nil, response_models.ErrNotAnObject
	}
	var itinerary response_models.Itinerary
	if err := json.Unmarshal([]byte(payload), &itinerary); err != nil {
		return nil, err
	}
	if itinerary.Days == nil {
		itinerary.Days = []response_models.Day{}
	}
	return &itinerary, nil
}
