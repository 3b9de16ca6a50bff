package service

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Models sometimes wrap their answer in a markdown code fence and sometimes
// return bare JSON. The extractor handles both without assuming which.
var jsonFence = regexp.MustCompile("(?s)```json\\s*(.*?)\\s*```")

// ExtractJSON pulls a JSON object out of a possibly free-form model response.
// If a ```json fence is present its interior is parsed; otherwise the whole
// trimmed text is parsed. No schema validation happens here; each caller
// checks the keys it needs.
func ExtractJSON(text string) (map[string]json.RawMessage, error) {
	candidate := strings.TrimSpace(text)
	if m := jsonFence.FindStringSubmatch(text); m != nil {
		candidate = strings.TrimSpace(m[1])
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal([]byte(candidate), &obj); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedEstimation, err)
	}
	return obj, nil
}

// looseNumber reads a numeric field from an extracted object, tolerating
// numbers the model quoted as strings. Absent, negative or unparseable
// values collapse to 0 so nutrient fields are never null or NaN.
func looseNumber(obj map[string]json.RawMessage, key string) float64 {
	raw, ok := obj[key]
	if !ok {
		return 0
	}

	var num float64
	if err := json.Unmarshal(raw, &num); err != nil {
		var str string
		if err := json.Unmarshal(raw, &str); err != nil {
			return 0
		}
		parsed, err := strconv.ParseFloat(strings.TrimSpace(str), 64)
		if err != nil {
			return 0
		}
		num = parsed
	}

	if num < 0 {
		return 0
	}
	return num
}
