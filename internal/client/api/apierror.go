package api

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// normalizer extracts a human-readable message from a non-2xx response body.
type normalizer func(contentType string, body []byte) string

// messageFromBody is the default normalizer. The service is duck-typed about
// error shapes: sometimes a "detail" string, sometimes "message", sometimes a
// field-to-messages validation map. Priority order follows the server's habits:
// detail, then message, then the flattened field aggregate, then the raw body.
// An unparseable JSON body yields "", which Error renders as the generic
// status message.
func messageFromBody(contentType string, body []byte) string {
	if !strings.Contains(contentType, "application/json") {
		return string(body)
	}

	var v any
	if err := json.Unmarshal(body, &v); err != nil {
		return ""
	}

	switch data := v.(type) {
	case string:
		return data
	case map[string]any:
		if detail, ok := data["detail"].(string); ok {
			return detail
		}
		if message, ok := data["message"].(string); ok {
			return message
		}
		if aggregate := flattenErrorMap(data); aggregate != "" {
			return aggregate
		}
		return string(body)
	default:
		return string(body)
	}
}

// profileErrorFromBody handles the profile-update endpoint, which reports
// failures under a bespoke "error" field instead of the shapes above.
func profileErrorFromBody(contentType string, body []byte) string {
	if strings.Contains(contentType, "application/json") {
		var data struct {
			Error string `json:"error"`
		}
		if err := json.Unmarshal(body, &data); err == nil && data.Error != "" {
			return data.Error
		}
	}
	return ""
}

// flattenErrorMap aggregates a validation-errors object into one message.
// Array-valued fields are joined with ", ", nested objects are prefixed with
// "field: ". Keys are walked in sorted order so the output is deterministic.
func flattenErrorMap(m map[string]any) string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		switch val := m[key].(type) {
		case nil:
			continue
		case string:
			parts = append(parts, key+": "+val)
		case []any:
			items := make([]string, 0, len(val))
			for _, item := range val {
				items = append(items, fmt.Sprintf("%v", item))
			}
			parts = append(parts, key+": "+strings.Join(items, ", "))
		case map[string]any:
			if nested := flattenErrorMap(val); nested != "" {
				parts = append(parts, key+": "+nested)
			}
		}
	}
	return strings.Join(parts, "\n")
}
