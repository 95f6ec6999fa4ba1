// internal/common/validation/schema_test.go
package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func filterSchema() map[string]interface{} {
	return map[string]interface{}{
		"type":     "object",
		"required": []interface{}{"rawFilters"},
		"properties": map[string]interface{}{
			"rawFilters": map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"query":         map[string]interface{}{"type": "string"},
					"minExperience": map[string]interface{}{"type": "number"},
					"sortBy": map[string]interface{}{
						"type": "string",
						"enum": []interface{}{"rating", "experience"},
					},
				},
			},
		},
	}
}

func TestValidateInput(t *testing.T) {
	tests := []struct {
		name      string
		doc       interface{}
		wantValid bool
		wantField string
		wantCode  string
	}{
		{
			name: "valid document",
			doc: map[string]interface{}{
				"rawFilters": map[string]interface{}{"query": "gst", "minExperience": 5, "sortBy": "rating"},
			},
			wantValid: true,
		},
		{
			name:      "empty filters are valid",
			doc:       map[string]interface{}{"rawFilters": map[string]interface{}{}},
			wantValid: true,
		},
		{
			name: "wrong type",
			doc: map[string]interface{}{
				"rawFilters": map[string]interface{}{"minExperience": "five"},
			},
			wantField: "rawFilters.minExperience",
			wantCode:  "INVALID_TYPE",
		},
		{
			name: "value outside enum",
			doc: map[string]interface{}{
				"rawFilters": map[string]interface{}{"sortBy": "name"},
			},
			wantField: "rawFilters.sortBy",
			wantCode:  "ENUM",
		},
		{
			name:     "missing required property",
			doc:      map[string]interface{}{},
			wantCode: "REQUIRED",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := ValidateInput(tt.doc, filterSchema())
			require.NoError(t, err)
			assert.Equal(t, tt.wantValid, res.Valid)
			if tt.wantValid {
				assert.Empty(t, res.Errors)
				assert.NoError(t, res.Err())
				return
			}
			require.NotEmpty(t, res.Errors)
			assert.Equal(t, tt.wantCode, res.Errors[0].Code)
			if tt.wantField != "" {
				assert.Equal(t, tt.wantField, res.Errors[0].Field)
			}
			assert.Error(t, res.Err())
		})
	}
}

func TestCompile_RejectsEmptySchema(t *testing.T) {
	_, err := Compile(nil)
	assert.ErrorIs(t, err, ErrSchemaInvalid)
}

func TestCompile_RejectsMalformedSchema(t *testing.T) {
	_, err := Compile(map[string]interface{}{"type": 42})
	assert.ErrorIs(t, err, ErrSchemaInvalid)
}

func TestSchema_Reuse(t *testing.T) {
	s, err := Compile(filterSchema())
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		res, err := s.Validate(map[string]interface{}{"rawFilters": map[string]interface{}{"sortBy": "experience"}})
		require.NoError(t, err)
		assert.True(t, res.Valid)
	}
}
