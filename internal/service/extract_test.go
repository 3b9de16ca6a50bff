package service

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractJSON(t *testing.T) {
	t.Run("should parse a fenced json block", func(t *testing.T) {
		obj, err := ExtractJSON("```json\n{\"a\":1}\n```")
		require.NoError(t, err)
		assert.JSONEq(t, `1`, string(obj["a"]))
	})

	t.Run("should parse a fenced block wrapped in prose", func(t *testing.T) {
		text := "Sure! Here is the estimate you asked for:\n```json\n{\"calories\": 250}\n```\nLet me know if you need anything else."
		obj, err := ExtractJSON(text)
		require.NoError(t, err)
		assert.JSONEq(t, `250`, string(obj["calories"]))
	})

	t.Run("should parse bare json", func(t *testing.T) {
		obj, err := ExtractJSON(`{"a":1}`)
		require.NoError(t, err)
		assert.JSONEq(t, `1`, string(obj["a"]))
	})

	t.Run("should parse bare json with surrounding whitespace", func(t *testing.T) {
		obj, err := ExtractJSON("\n  {\"plan\":\"walk more\"}  \n")
		require.NoError(t, err)
		assert.JSONEq(t, `"walk more"`, string(obj["plan"]))
	})

	t.Run("should fail on non-json prose", func(t *testing.T) {
		obj, err := ExtractJSON("I cannot provide an estimate for that.")
		assert.Nil(t, obj)
		assert.ErrorIs(t, err, ErrMalformedEstimation)
	})

	t.Run("should fail on an unparseable fenced block", func(t *testing.T) {
		obj, err := ExtractJSON("```json\nnot json at all\n```")
		assert.Nil(t, obj)
		assert.ErrorIs(t, err, ErrMalformedEstimation)
	})
}

func TestLooseNumber(t *testing.T) {
	parse := func(t *testing.T, s string) map[string]json.RawMessage {
		t.Helper()
		var obj map[string]json.RawMessage
		require.NoError(t, json.Unmarshal([]byte(s), &obj))
		return obj
	}

	tests := []struct {
		name string
		doc  string
		key  string
		want float64
	}{
		{"plain number", `{"calories": 250}`, "calories", 250},
		{"quoted number", `{"calories": "250"}`, "calories", 250},
		{"quoted zero", `{"fat": "0"}`, "fat", 0},
		{"absent key", `{"calories": 250}`, "protein", 0},
		{"non-numeric string", `{"calories": "unknown"}`, "calories", 0},
		{"null value", `{"calories": null}`, "calories", 0},
		{"negative clamps to zero", `{"calories": -10}`, "calories", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, looseNumber(parse(t, tt.doc), tt.key))
		})
	}
}
