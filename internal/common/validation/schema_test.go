package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const floorSchema = `{
  "type": "array",
  "items": {
    "type": "object",
    "required": ["id", "level"],
    "properties": {
      "id": {"type": "string", "minLength": 1},
      "level": {"type": "integer"}
    }
  }
}`

func TestSchema_Validate(t *testing.T) {
	s := MustCompile("floors", []byte(floorSchema))

	tests := []struct {
		name      string
		doc       string
		wantValid bool
		wantField string
	}{
		{"valid", `[{"id":"FLR-1","level":1}]`, true, ""},
		{"empty array", `[]`, true, ""},
		{"missing level", `[{"id":"FLR-1"}]`, false, "0"},
		{"wrong type", `[{"id":"FLR-1","level":"one"}]`, false, "0.level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := s.Validate([]byte(tt.doc))
			require.NoError(t, err)
			assert.Equal(t, tt.wantValid, res.Valid)
			if tt.wantValid {
				assert.NoError(t, res.Err())
				return
			}
			assert.True(t, res.HasErrors(tt.wantField), res.GetErrorMessages())
			assert.Error(t, res.Err())
		})
	}
}

func TestSchema_ValidateNotJSON(t *testing.T) {
	s := MustCompile("floors", []byte(floorSchema))
	_, err := s.Validate([]byte(`{not json`))
	assert.Error(t, err)
}

func TestSchema_ValidateGo(t *testing.T) {
	s := MustCompile("floors", []byte(floorSchema))
	res, err := s.ValidateGo([]interface{}{map[string]interface{}{"id": "FLR-1", "level": 2}})
	require.NoError(t, err)
	assert.True(t, res.Valid)
}

func TestCompile_Invalid(t *testing.T) {
	_, err := Compile("broken", []byte(`{"type": 12}`))
	assert.Error(t, err)
	assert.Panics(t, func() { MustCompile("broken", []byte(`{"type": 12}`)) })
}
