package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptional_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name  string
		raw   string
		want  float64
		valid bool
	}{
		{"number", `{"v": 3.5}`, 3.5, true},
		{"zero is a value", `{"v": 0}`, 0, true},
		{"null", `{"v": null}`, 0, false},
		{"missing", `{}`, 0, false},
		{"string", `{"v": "3.5"}`, 0, false},
		{"object", `{"v": {"x": 1}}`, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got struct {
				V Optional[float64] `json:"v"`
			}
			require.NoError(t, json.Unmarshal([]byte(tt.raw), &got))

			v, ok := got.V.Get()
			assert.Equal(t, tt.valid, ok)
			assert.Equal(t, tt.want, v)
		})
	}
}

func TestOptional_MarshalJSON(t *testing.T) {
	raw, err := json.Marshal(struct {
		A Optional[int]    `json:"a"`
		B Optional[string] `json:"b"`
	}{A: Some(7)})
	require.NoError(t, err)

	assert.JSONEq(t, `{"a": 7, "b": null}`, string(raw))
}

func TestMatchCriteria_ActiveModules(t *testing.T) {
	var c MatchCriteria
	require.NoError(t, json.Unmarshal([]byte(`{
		"academics": {"enabled": true, "filters": {"minGpa": 3.2, "testPolicy": "sat"}},
		"financials": {"enabled": false, "filters": {"maxBudget": 1000}},
		"lifestyle": {"enabled": 1, "filters": {"countries": ["USA"]}},
		"future": {"enabled": true}
	}`), &c))

	academics, ok := c.ActiveAcademics()
	require.True(t, ok)
	gpa, _ := academics.MinGPA.Get()
	policy, _ := academics.TestPolicy.Get()
	assert.Equal(t, 3.2, gpa)
	assert.Equal(t, "sat", policy)

	_, ok = c.ActiveFinancials()
	assert.False(t, ok)

	_, ok = c.ActiveLifestyle()
	assert.False(t, ok, "enabled must be exactly true")

	future, ok := c.ActiveFuture()
	require.True(t, ok)
	_, set := future.MinVisaMonths.Get()
	assert.False(t, set)
}

func TestUniversity_VisaMonths(t *testing.T) {
	strength, months := 30.0, 18.0

	assert.Nil(t, (&University{}).VisaMonths())
	assert.Equal(t, &months, (&University{PostStudyWorkVisaMonths: &months}).VisaMonths())
	assert.Equal(t, &strength, (&University{PostGradVisaStrength: &strength, PostStudyWorkVisaMonths: &months}).VisaMonths())
}
