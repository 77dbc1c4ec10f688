/*
Package factory provides JSON to Go scheme conversion.

PURPOSE:
  Converts JSON scheme documents into gratuity.Scheme values and back. The
  built-in rules ship as documents too, so the store can hold built-in and
  custom schemes in one table.

JSON SCHEMA:
  {
    "id": "oldRule",
    "name": "Old Rule",
    "description": "25 days for first 3 years, ...",
    "prorate_first_tier": false,
    "tiers": [
      {"years": "3", "days_per_year": "25"},
      {"years": "3", "days_per_year": "30"},
      {"years": "0", "days_per_year": "35"}
    ]
  }

  "years": "0" marks an unbounded tier. Numbers may be given quoted or bare.

KEY FEATURES:
  - Rejects unknown fields
  - Validates the resulting scheme (see gratuity.Scheme.Validate)
  - Round-trips: ParseScheme(ToJSON(s)) == s

USAGE:
  f := NewSchemeFactory()
  scheme, err := f.ParseScheme(doc)

SEE ALSO:
  - gratuity/scheme.go: Scheme definition and tier math
  - store/sqlite/sqlite.go: Persists scheme documents
*/
package factory

import (
	"bytes"
	"fmt"

	"github.com/goccy/go-json"
	"github.com/shopspring/decimal"
	"github.com/warp/gratuity-engine/gratuity"
)

// =============================================================================
// JSON SCHEMA TYPES
// =============================================================================

// SchemeJSON is the JSON representation of a scheme.
type SchemeJSON struct {
	ID               string     `json:"id"`
	Name             string     `json:"name"`
	Description      string     `json:"description,omitempty"`
	ProrateFirstTier bool       `json:"prorate_first_tier,omitempty"`
	Tiers            []TierJSON `json:"tiers"`
}

// TierJSON represents one tier. Years of 0 means unbounded.
type TierJSON struct {
	Years       decimal.Decimal `json:"years"`
	DaysPerYear decimal.Decimal `json:"days_per_year"`
}

// =============================================================================
// SCHEME FACTORY
// =============================================================================

// SchemeFactory converts JSON schemes to Go structs.
type SchemeFactory struct{}

// NewSchemeFactory creates a new scheme factory.
func NewSchemeFactory() *SchemeFactory {
	return &SchemeFactory{}
}

// ParseScheme parses a JSON string into a validated Scheme.
func (f *SchemeFactory) ParseScheme(jsonStr string) (*gratuity.Scheme, error) {
	var sj SchemeJSON
	dec := json.NewDecoder(bytes.NewReader([]byte(jsonStr)))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&sj); err != nil {
		return nil, fmt.Errorf("failed to parse scheme JSON: %w", err)
	}

	return f.FromJSON(sj)
}

// FromJSON converts SchemeJSON to a validated gratuity.Scheme.
func (f *SchemeFactory) FromJSON(sj SchemeJSON) (*gratuity.Scheme, error) {
	scheme := &gratuity.Scheme{
		ID:               gratuity.Rule(sj.ID),
		Name:             sj.Name,
		Description:      sj.Description,
		ProrateFirstTier: sj.ProrateFirstTier,
	}
	for _, tj := range sj.Tiers {
		scheme.Tiers = append(scheme.Tiers, gratuity.Tier{
			Years:       tj.Years,
			DaysPerYear: tj.DaysPerYear,
		})
	}

	if err := scheme.Validate(); err != nil {
		return nil, err
	}
	return scheme, nil
}

// ToJSON converts a Scheme to SchemeJSON.
func (f *SchemeFactory) ToJSON(scheme gratuity.Scheme) SchemeJSON {
	sj := SchemeJSON{
		ID:               string(scheme.ID),
		Name:             scheme.Name,
		Description:      scheme.Description,
		ProrateFirstTier: scheme.ProrateFirstTier,
		Tiers:            make([]TierJSON, 0, len(scheme.Tiers)),
	}
	for _, t := range scheme.Tiers {
		sj.Tiers = append(sj.Tiers, TierJSON{Years: t.Years, DaysPerYear: t.DaysPerYear})
	}
	return sj
}

// Marshal renders a Scheme as a JSON document.
func (f *SchemeFactory) Marshal(scheme gratuity.Scheme) (string, error) {
	b, err := json.Marshal(f.ToJSON(scheme))
	if err != nil {
		return "", fmt.Errorf("failed to marshal scheme %s: %w", scheme.ID, err)
	}
	return string(b), nil
}

// =============================================================================
// PRESETS
// =============================================================================

// CurrentRuleJSON returns the built-in current rule as a JSON document.
func CurrentRuleJSON() string {
	return mustMarshal(gratuity.CurrentRuleScheme())
}

// OldRuleJSON returns the built-in old rule as a JSON document.
func OldRuleJSON() string {
	return mustMarshal(gratuity.OldRuleScheme())
}

// BuiltinJSON returns every built-in scheme document keyed by rule id.
func BuiltinJSON() map[gratuity.Rule]string {
	return map[gratuity.Rule]string{
		gratuity.RuleCurrent: CurrentRuleJSON(),
		gratuity.RuleOld:     OldRuleJSON(),
	}
}

func mustMarshal(s gratuity.Scheme) string {
	doc, err := NewSchemeFactory().Marshal(s)
	if err != nil {
		panic(err)
	}
	return doc
}
