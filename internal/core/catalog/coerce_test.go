package catalog

import (
	"testing"
)

func TestCoerceRecordsTolerantParsing(t *testing.T) {
	// 數值以字串傳入、評分欄位混合型別
	raw := []byte(`[
		{
			"original_ingredient": "butter",
			"substitute_ingredient": "olive oil",
			"substitution_ratio": "3/4 cup per 1 cup",
			"dietary_reasons": ["dairy-free", "vegan"],
			"flavor_impact": "2",
			"texture_impact": 1,
			"success_rate": "0.92",
			"user_ratings": {"count": "412", "average": 4.5}
		}
	]`)

	recs, err := CoerceRecords(raw)
	if err != nil {
		t.Fatalf("CoerceRecords: %v", err)
	}
	if len(recs) != 1 {
		t.Fatalf("got %d records, want 1", len(recs))
	}

	rec := recs[0]
	if rec.FlavorImpact != 2 {
		t.Errorf("flavor impact = %f, want 2", rec.FlavorImpact)
	}
	if rec.SuccessRate != 0.92 {
		t.Errorf("success rate = %f, want 0.92", rec.SuccessRate)
	}
	if rec.UserRatings.Count != 412 || rec.UserRatings.Average != 4.5 {
		t.Errorf("user ratings = %+v", rec.UserRatings)
	}
}

func TestCoerceRecordsSkipsUnusableEntries(t *testing.T) {
	raw := []byte(`[
		{"original_ingredient": "", "substitute_ingredient": "margarine"},
		{"original_ingredient": "butter"},
		{"original_ingredient": "butter", "substitute_ingredient": "ghee", "success_rate": 0.8}
	]`)

	recs, err := CoerceRecords(raw)
	if err != nil {
		t.Fatalf("CoerceRecords: %v", err)
	}
	if len(recs) != 1 {
		t.Fatalf("got %d records, want 1 (entries without names dropped)", len(recs))
	}
	if recs[0].SubstituteIngredient != "ghee" {
		t.Errorf("surviving record = %q", recs[0].SubstituteIngredient)
	}
}

func TestCoerceRecordsClampsOutOfRangeValues(t *testing.T) {
	raw := []byte(`[
		{
			"original_ingredient": "egg",
			"substitute_ingredient": "flax egg",
			"success_rate": 1.7,
			"flavor_impact": -3,
			"user_ratings": {"count": 10, "average": 9.9}
		}
	]`)

	recs, err := CoerceRecords(raw)
	if err != nil {
		t.Fatalf("CoerceRecords: %v", err)
	}
	rec := recs[0]
	if rec.SuccessRate != 1 {
		t.Errorf("success rate = %f, want clamped to 1", rec.SuccessRate)
	}
	if rec.FlavorImpact != 0 {
		t.Errorf("flavor impact = %f, want clamped to 0", rec.FlavorImpact)
	}
	if rec.UserRatings.Average != 5 {
		t.Errorf("rating average = %f, want clamped to 5", rec.UserRatings.Average)
	}
}

func TestCoerceRecordsRepairsUnquotedKeys(t *testing.T) {
	raw := []byte(`[{original_ingredient: "butter", substitute_ingredient: "ghee"}]`)

	recs, err := CoerceRecords(raw)
	if err != nil {
		t.Fatalf("CoerceRecords should repair unquoted keys: %v", err)
	}
	if len(recs) != 1 || recs[0].SubstituteIngredient != "ghee" {
		t.Errorf("repaired records = %+v", recs)
	}
}

func TestCoerceRecordsMalformedJSON(t *testing.T) {
	if _, err := CoerceRecords([]byte(`{"not": "an array"`)); err == nil {
		t.Error("expected an error for malformed JSON")
	}
}

func TestCoerceRecordsDefaultsMissingFields(t *testing.T) {
	raw := []byte(`[{"original_ingredient": "milk", "substitute_ingredient": "oat milk"}]`)

	recs, err := CoerceRecords(raw)
	if err != nil {
		t.Fatalf("CoerceRecords: %v", err)
	}
	rec := recs[0]
	if rec.SuccessRate != 0 {
		t.Errorf("missing success rate should default to 0, got %f", rec.SuccessRate)
	}
	if rec.DietaryReasons == nil {
		t.Error("dietary reasons should default to an empty slice, not nil")
	}
}
