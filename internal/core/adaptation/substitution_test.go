package adaptation

import (
	"strings"
	"testing"

	"recipe-adapter/internal/core/catalog"
	"recipe-adapter/internal/pkg/common"
)

func dairyFreeProfile() *common.CookingProfile {
	return &common.CookingProfile{
		SkillLevel:          4,
		Allergies:           []string{"dairy"},
		DietaryRestrictions: []string{"dairy-free"},
	}
}

func TestSubstitutionsForConflictingIngredient(t *testing.T) {
	svc, catalogSvc := newTestService(nil)
	defer catalogSvc.Close()
	ctx, cancel := testContext()
	defer cancel()

	ingredients := []common.RecipeIngredient{
		{Name: "butter", Amount: "1", Unit: "cup"},
	}
	profile := &common.CookingProfile{
		SkillLevel:          4,
		DietaryRestrictions: []string{"dairy-free"},
	}

	suggestions := svc.GetSmartSubstitutions(ctx, ingredients, profile)
	if len(suggestions) != 1 {
		t.Fatalf("got %d suggestions, want 1", len(suggestions))
	}

	sub := suggestions[0]
	if sub.OriginalIngredient != "butter" {
		t.Errorf("original ingredient = %q, want butter", sub.OriginalIngredient)
	}
	if len(sub.Substitutes) == 0 {
		t.Fatal("no substitutes returned")
	}
	for _, cand := range sub.Substitutes {
		if len(cand.Reasons) == 0 {
			t.Errorf("substitute %q has no reasons", cand.Record.SubstituteIngredient)
		}
		if cand.MatchScore < 0 || cand.MatchScore > 1 {
			t.Errorf("match score %f out of [0,1]", cand.MatchScore)
		}
	}
}

func TestSubstitutionsRankedBySuccessRate(t *testing.T) {
	svc, catalogSvc := newTestService(nil)
	defer catalogSvc.Close()
	ctx, cancel := testContext()
	defer cancel()

	suggestions := svc.GetSmartSubstitutions(ctx,
		[]common.RecipeIngredient{{Name: "butter"}},
		dairyFreeProfile(),
	)
	if len(suggestions) == 0 {
		t.Fatal("expected suggestions for butter")
	}

	subs := suggestions[0].Substitutes
	for i := 1; i < len(subs); i++ {
		if subs[i].Record.SuccessRate > subs[i-1].Record.SuccessRate {
			t.Errorf("substitutes not sorted by success rate: %f after %f",
				subs[i].Record.SuccessRate, subs[i-1].Record.SuccessRate)
		}
	}
}

func TestSubstitutionsCappedAtMax(t *testing.T) {
	svc, catalogSvc := newTestService(nil)
	defer catalogSvc.Close()
	ctx, cancel := testContext()
	defer cancel()

	suggestions := svc.GetSmartSubstitutions(ctx,
		[]common.RecipeIngredient{{Name: "butter"}},
		dairyFreeProfile(),
	)
	if len(suggestions) == 0 {
		t.Fatal("expected suggestions for butter")
	}
	if got := len(suggestions[0].Substitutes); got > 3 {
		t.Errorf("got %d substitutes, want at most 3", got)
	}
}

func TestNoConflictNoSuggestion(t *testing.T) {
	svc, catalogSvc := newTestService(nil)
	defer catalogSvc.Close()
	ctx, cancel := testContext()
	defer cancel()

	// 無過敏、無限制、無不喜歡：就算目錄有紀錄也不建議
	suggestions := svc.GetSmartSubstitutions(ctx,
		[]common.RecipeIngredient{{Name: "butter"}},
		&common.CookingProfile{SkillLevel: 5},
	)
	if len(suggestions) != 0 {
		t.Errorf("got %d suggestions for non-conflicting ingredient, want 0", len(suggestions))
	}
}

func TestSubstitutionsPreserveInputOrder(t *testing.T) {
	svc, catalogSvc := newTestService(nil)
	defer catalogSvc.Close()
	ctx, cancel := testContext()
	defer cancel()

	ingredients := []common.RecipeIngredient{
		{Name: "milk"},
		{Name: "flour"}, // 無衝突，應被略過
		{Name: "butter"},
	}
	profile := dairyFreeProfile()

	suggestions := svc.GetSmartSubstitutions(ctx, ingredients, profile)
	if len(suggestions) != 2 {
		t.Fatalf("got %d suggestions, want 2", len(suggestions))
	}
	if suggestions[0].OriginalIngredient != "milk" || suggestions[1].OriginalIngredient != "butter" {
		t.Errorf("suggestions out of input order: %q, %q",
			suggestions[0].OriginalIngredient, suggestions[1].OriginalIngredient)
	}
}

func TestAllergyReasonComesFirst(t *testing.T) {
	svc, catalogSvc := newTestService(nil)
	defer catalogSvc.Close()
	ctx, cancel := testContext()
	defer cancel()

	profile := &common.CookingProfile{
		SkillLevel: 4,
		Allergies:  []string{"peanut"},
	}
	suggestions := svc.GetSmartSubstitutions(ctx,
		[]common.RecipeIngredient{{Name: "peanut butter"}},
		profile,
	)
	if len(suggestions) == 0 {
		t.Fatal("expected suggestions for peanut butter with peanut allergy")
	}
	first := suggestions[0].Substitutes[0].Reasons[0]
	if !strings.Contains(first, "peanut allergy") {
		t.Errorf("first reason = %q, want allergy reason first", first)
	}
}

func TestDislikedIngredientTriggersSuggestion(t *testing.T) {
	svc, catalogSvc := newTestService(nil)
	defer catalogSvc.Close()
	ctx, cancel := testContext()
	defer cancel()

	profile := &common.CookingProfile{
		SkillLevel: 4,
		IngredientPreferences: common.IngredientPreferences{
			Disliked: []string{"sour cream"},
		},
	}
	suggestions := svc.GetSmartSubstitutions(ctx,
		[]common.RecipeIngredient{{Name: "sour cream"}},
		profile,
	)
	if len(suggestions) == 0 {
		t.Fatal("expected suggestions for disliked ingredient")
	}
	found := false
	for _, reason := range suggestions[0].Substitutes[0].Reasons {
		if strings.Contains(reason, "prefer to avoid") {
			found = true
		}
	}
	if !found {
		t.Error("expected a disliked-ingredient reason")
	}
}

func TestCatalogFailureTreatedAsNoSuggestions(t *testing.T) {
	svc, catalogSvc := newTestService(failingSource{})
	defer catalogSvc.Close()
	ctx, cancel := testContext()
	defer cancel()

	suggestions := svc.GetSmartSubstitutions(ctx,
		[]common.RecipeIngredient{{Name: "butter"}},
		dairyFreeProfile(),
	)
	if len(suggestions) != 0 {
		t.Errorf("got %d suggestions from a failing catalog, want 0", len(suggestions))
	}
}

func TestPartialCatalogFailureOnlyAffectsOneIngredient(t *testing.T) {
	source := partialSource{inner: catalog.NewMemorySource(), failFor: "milk"}
	svc, catalogSvc := newTestService(source)
	defer catalogSvc.Close()
	ctx, cancel := testContext()
	defer cancel()

	suggestions := svc.GetSmartSubstitutions(ctx,
		[]common.RecipeIngredient{{Name: "milk"}, {Name: "butter"}},
		dairyFreeProfile(),
	)
	if len(suggestions) != 1 {
		t.Fatalf("got %d suggestions, want 1 (butter only)", len(suggestions))
	}
	if suggestions[0].OriginalIngredient != "butter" {
		t.Errorf("surviving suggestion = %q, want butter", suggestions[0].OriginalIngredient)
	}
}
