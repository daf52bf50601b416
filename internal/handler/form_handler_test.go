package handler

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/classroom-gateway/internal/validation"
)

func TestFormHandlerValidate(t *testing.T) {
	h := NewFormHandler(testValidator(), 1<<20)

	tests := []struct {
		name      string
		body      interface{}
		state     validation.FormState
		canSubmit bool
		errField  string
	}{
		{name: "empty", body: map[string]string{}, state: validation.FormStateEmpty},
		{name: "valid", body: map[string]string{"meetlink": "https://meet.google.com/abc-defg-hij"}, state: validation.FormStateValid, canSubmit: true},
		{name: "invalid", body: map[string]string{"meetlink": "https://zoom.us/j/1"}, state: validation.FormStateInvalid, errField: "meetlink"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c, w := newJSONContext(http.MethodPost, "/forms/meetlink/validate", tc.body, teacher, ids("schema", "meetlink"))
			h.Validate(c)
			require.Equal(t, http.StatusOK, w.Code)

			var result validation.FormResult
			require.NoError(t, json.Unmarshal(decodeEnvelope(t, w).Data, &result))
			assert.Equal(t, tc.state, result.State)
			assert.Equal(t, tc.canSubmit, result.CanSubmit)
			if tc.errField != "" {
				assert.NotEmpty(t, result.Errors[tc.errField])
			}
		})
	}
}

func TestFormHandlerRejectsUnknownKeysOnMessage(t *testing.T) {
	h := NewFormHandler(testValidator(), 1<<20)
	c, w := newJSONContext(http.MethodPost, "/forms/message/validate", map[string]string{"content": "hi", "extra": "x"}, student, ids("schema", "message"))
	h.Validate(c)
	require.Equal(t, http.StatusOK, w.Code)

	var result validation.FormResult
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, w).Data, &result))
	assert.Equal(t, validation.FormStateInvalid, result.State)
	assert.Contains(t, result.Errors, "extra")
}

func TestFormHandlerRejectsNullUnknownKeyOnMessage(t *testing.T) {
	h := NewFormHandler(testValidator(), 1<<20)
	body := map[string]interface{}{"content": "hi", "extra": nil}
	c, w := newJSONContext(http.MethodPost, "/forms/message/validate", body, student, ids("schema", "message"))
	h.Validate(c)
	require.Equal(t, http.StatusOK, w.Code)

	var result validation.FormResult
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, w).Data, &result))
	assert.Equal(t, validation.FormStateInvalid, result.State)
	assert.False(t, result.CanSubmit)
	assert.Contains(t, result.Errors, "extra")
}

func TestFormHandlerRejectsNonStringValues(t *testing.T) {
	h := NewFormHandler(testValidator(), 1<<20)

	tests := []struct {
		name  string
		body  map[string]interface{}
		field string
	}{
		{name: "number", body: map[string]interface{}{"content": 123}, field: "content"},
		{name: "boolean", body: map[string]interface{}{"content": true}, field: "content"},
		{name: "object", body: map[string]interface{}{"content": "hi", "file": map[string]string{"a": "b"}}, field: "file"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c, w := newJSONContext(http.MethodPost, "/forms/message/validate", tc.body, student, ids("schema", "message"))
			h.Validate(c)
			require.Equal(t, http.StatusBadRequest, w.Code)

			env := decodeEnvelope(t, w)
			require.NotNil(t, env.Error)
			assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)
			assert.Contains(t, env.Error.Details, tc.field)
		})
	}
}

func TestFormHandlerUnknownSchema(t *testing.T) {
	h := NewFormHandler(testValidator(), 1<<20)
	c, w := newJSONContext(http.MethodPost, "/forms/nope/validate", map[string]string{"a": "b"}, student, ids("schema", "nope"))
	h.Validate(c)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
