package discount

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestParseJSONCodeMapping(t *testing.T) {
	s, err := ParseJSON([]byte(`{"type":"code_mapping","mappings":{"A":25,"B":"30.5","C":0,"D":100}}`))
	require.NoError(t, err)

	cm, ok := s.(CodeMapping)
	require.True(t, ok)
	assert.Equal(t, []string{"A", "B", "C", "D"}, cm.Codes())

	p, found := cm.Lookup("B")
	assert.True(t, found)
	assert.True(t, p.Equal(decimal.RequireFromString("30.5")))

	_, found = cm.Lookup("Z")
	assert.False(t, found)
}

func TestPercentageBounds(t *testing.T) {
	tests := []struct {
		value string
		valid bool
	}{
		{"0", true},
		{"100", true},
		{"55.5", true},
		{"-0.01", false},
		{"100.01", false},
		{"-5", false},
		{"150", false},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			_, err := ParseJSON([]byte(`{"type":"percentage","default_percentage":` + tt.value + `}`))
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}

			_, err = ParseJSON([]byte(`{"type":"code_mapping","mappings":{"X":` + tt.value + `}}`))
			if tt.valid {
				assert.NoError(t, err)
			} else {
				var verr *ValidationError
				require.ErrorAs(t, err, &verr)
				assert.Equal(t, "mappings.X", verr.Field)
			}
		})
	}
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name  string
		input string
		field string
	}{
		{"array", `[1,2]`, ""},
		{"string", `"code_mapping"`, ""},
		{"null", `null`, ""},
		{"missing type", `{"mappings":{}}`, "type"},
		{"non string type", `{"type":3}`, "type"},
		{"unknown type", `{"type":"tiered"}`, "type"},
		{"mappings not object", `{"type":"code_mapping","mappings":[25]}`, "mappings"},
		{"missing mappings", `{"type":"code_mapping"}`, "mappings"},
		{"percentage missing", `{"type":"percentage"}`, "default_percentage"},
		{"percentage text", `{"type":"percentage","default_percentage":"lots"}`, "default_percentage"},
		{"bad description", `{"type":"net_only","description":5}`, "description"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseJSON([]byte(tt.input))
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
		})
	}
}

func TestTagOnlyStructures(t *testing.T) {
	s, err := ParseJSON([]byte(`{"type":"calculated"}`))
	require.NoError(t, err)
	assert.Equal(t, TypeCalculated, s.Type())

	s, err = ParseJSON([]byte(`{"type":"net_only","description":"net list"}`))
	require.NoError(t, err)
	assert.Equal(t, NetOnly{Description: "net list"}, s)
}

func TestValidateYAMLCandidate(t *testing.T) {
	var candidate any
	require.NoError(t, yaml.Unmarshal([]byte("type: code_mapping\nmappings:\n  A: 10\n  B: 12.5\n"), &candidate))

	s, err := Validate(candidate)
	require.NoError(t, err)
	assert.Equal(t, TypeCodeMapping, s.Type())

	for _, doc := range []string{
		"type: percentage\ndefault_percentage: .nan\n",
		"type: percentage\ndefault_percentage: .inf\n",
		"type: percentage\ndefault_percentage: -.inf\n",
		"type: code_mapping\nmappings:\n  A: .nan\n",
	} {
		var c any
		require.NoError(t, yaml.Unmarshal([]byte(doc), &c))
		_, err := Validate(c)
		var vErr *ValidationError
		require.ErrorAs(t, err, &vErr, doc)
		assert.Contains(t, vErr.Message, "finite", doc)
	}
}

func TestValidateNumericCodes(t *testing.T) {
	var candidate any
	require.NoError(t, yaml.Unmarshal([]byte("type: code_mapping\nmappings: {10: 25, 20: 30}\n"), &candidate))

	s, err := Validate(candidate)
	require.NoError(t, err)
	cm := s.(CodeMapping)
	assert.Equal(t, []string{"10", "20"}, cm.Codes())
	p, ok := cm.Lookup("20")
	require.True(t, ok)
	assert.Equal(t, "30", p.String())
}

func TestMarshalRoundTripsThroughValidator(t *testing.T) {
	in := []Structure{
		CodeMapping{Mappings: map[string]decimal.Decimal{"A": decimal.NewFromInt(25)}},
		Percentage{DefaultPercentage: decimal.NewFromInt(15)},
		Calculated{},
		NetOnly{Description: "x"},
	}
	for _, s := range in {
		data, err := json.Marshal(s)
		require.NoError(t, err)
		out, err := ParseJSON(data)
		require.NoError(t, err, string(data))
		assert.Equal(t, s.Type(), out.Type())
	}
}

func TestParseMode(t *testing.T) {
	m, err := ParseMode(" Code_Mapping ")
	require.NoError(t, err)
	assert.Equal(t, ModeCodeMapping, m)

	required, ok := m.RequiredStructure()
	assert.True(t, ok)
	assert.Equal(t, TypeCodeMapping, required)

	_, ok = ModeNetOnly.RequiredStructure()
	assert.False(t, ok)

	_, err = ParseMode("tiered")
	assert.ErrorContains(t, err, "net_only")
}
