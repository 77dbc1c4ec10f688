package factory_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/gratuity-engine/factory"
	"github.com/warp/gratuity-engine/generic"
	"github.com/warp/gratuity-engine/gratuity"
)

func TestParseScheme_Builtins(t *testing.T) {
	f := factory.NewSchemeFactory()

	for rule, doc := range factory.BuiltinJSON() {
		scheme, err := f.ParseScheme(doc)
		require.NoError(t, err, rule)

		expected := gratuity.NewBuiltinRegistry().MustLookup(rule)
		assert.Equal(t, expected.ID, scheme.ID)
		assert.Equal(t, expected.Name, scheme.Name)
		assert.Equal(t, expected.ProrateFirstTier, scheme.ProrateFirstTier)
		require.Len(t, scheme.Tiers, len(expected.Tiers))
		for i := range expected.Tiers {
			assert.True(t, expected.Tiers[i].Years.Equal(scheme.Tiers[i].Years))
			assert.True(t, expected.Tiers[i].DaysPerYear.Equal(scheme.Tiers[i].DaysPerYear))
		}
	}
}

func TestParseScheme_BareNumbers(t *testing.T) {
	// GIVEN: A custom scheme written with unquoted numbers
	doc := `{
		"id": "flat-30",
		"name": "Flat 30",
		"tiers": [{"years": 0, "days_per_year": 30}]
	}`

	scheme, err := factory.NewSchemeFactory().ParseScheme(doc)
	require.NoError(t, err)

	// THEN: Two years price at 60 daily salaries
	daily := decimal.NewFromInt(100)
	got := scheme.Entitlement(daily, decimal.NewFromInt(2), decimal.NewFromInt(2))
	assert.True(t, decimal.NewFromInt(6000).Equal(got), got.String())
}

func TestParseScheme_Rejections(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"malformed", `{"id":`},
		{"unknown field", `{"id":"x","name":"X","tiers":[{"years":0,"days_per_year":30}],"cap":5}`},
		{"no tiers", `{"id":"x","name":"X","tiers":[]}`},
		{"missing name", `{"id":"x","tiers":[{"years":0,"days_per_year":30}]}`},
		{"zero days", `{"id":"x","name":"X","tiers":[{"years":0,"days_per_year":0}]}`},
		{"unbounded middle tier", `{"id":"x","name":"X","tiers":[{"years":0,"days_per_year":20},{"years":0,"days_per_year":30}]}`},
		{"prorated unbounded first tier", `{"id":"x","name":"X","prorate_first_tier":true,"tiers":[{"years":0,"days_per_year":20}]}`},
	}

	f := factory.NewSchemeFactory()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.ParseScheme(tt.doc)
			assert.Error(t, err)
		})
	}
}

func TestParseScheme_ValidationErrorIsClientError(t *testing.T) {
	_, err := factory.NewSchemeFactory().ParseScheme(`{"id":"x","name":"X","tiers":[]}`)
	assert.ErrorIs(t, err, generic.ErrInvalidScheme)
	assert.True(t, generic.IsClientError(err))
}
