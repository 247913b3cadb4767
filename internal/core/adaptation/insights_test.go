package adaptation

import (
	"strings"
	"testing"

	"recipe-adapter/internal/pkg/common"
)

func insightsOfType(insights []common.Insight, insightType string) []common.Insight {
	var out []common.Insight
	for _, ins := range insights {
		if ins.InsightType == insightType {
			out = append(out, ins)
		}
	}
	return out
}

func TestTimingInsightWhenRecipeOverruns(t *testing.T) {
	svc, catalogSvc := newTestService(nil)
	defer catalogSvc.Close()

	recipe := &common.Recipe{
		Ingredients:      []common.RecipeIngredient{{Name: "short ribs"}},
		Instructions:     []string{"Simmer for three hours."},
		TotalTimeMinutes: 200,
	}
	profile := &common.CookingProfile{
		SkillLevel:                  6,
		PreferredCookingTimeMinutes: 45,
	}

	insights := svc.GenerateCookingInsights(recipe, profile)
	timing := insightsOfType(insights, common.InsightTimingAdjustment)
	if len(timing) != 1 {
		t.Fatalf("got %d timing insights, want 1", len(timing))
	}
	if !strings.Contains(timing[0].InsightContent, "longer than your usual") {
		t.Errorf("timing insight missing overrun phrasing: %q", timing[0].InsightContent)
	}
}

func TestNoTimingInsightWithinPreference(t *testing.T) {
	svc, catalogSvc := newTestService(nil)
	defer catalogSvc.Close()

	recipe := &common.Recipe{
		Ingredients:      []common.RecipeIngredient{{Name: "eggs"}},
		Instructions:     []string{"Whisk the eggs."},
		TotalTimeMinutes: 20,
	}
	profile := &common.CookingProfile{
		SkillLevel:                  6,
		PreferredCookingTimeMinutes: 45,
	}

	insights := svc.GenerateCookingInsights(recipe, profile)
	if timing := insightsOfType(insights, common.InsightTimingAdjustment); len(timing) != 0 {
		t.Errorf("got %d timing insights for a quick recipe, want 0", len(timing))
	}
}

func TestSafetyWarningsForNovice(t *testing.T) {
	svc, catalogSvc := newTestService(nil)
	defer catalogSvc.Close()

	recipe := &common.Recipe{
		Ingredients: []common.RecipeIngredient{{Name: "chicken"}},
		Instructions: []string{
			"Chop the chicken into cubes.",
			"Fry in hot oil until golden.",
			"Chop the scallions.",
		},
	}

	insights := svc.GenerateCookingInsights(recipe, &common.CookingProfile{SkillLevel: 2})
	warnings := insightsOfType(insights, common.InsightSafetyWarning)

	// 兩個危險類別（刀具、高溫油），同類別只警告一次
	if len(warnings) != 2 {
		t.Fatalf("got %d safety warnings, want 2 (one per hazard category)", len(warnings))
	}
	for _, w := range warnings {
		if len(w.SkillLevelTarget) == 0 {
			t.Error("safety warning missing skill level target")
		}
	}
}

func TestNoSafetyWarningsForExpert(t *testing.T) {
	svc, catalogSvc := newTestService(nil)
	defer catalogSvc.Close()

	recipe := &common.Recipe{
		Ingredients:  []common.RecipeIngredient{{Name: "chicken"}},
		Instructions: []string{"Fry in hot oil until golden."},
	}

	insights := svc.GenerateCookingInsights(recipe, &common.CookingProfile{SkillLevel: 8})
	if warnings := insightsOfType(insights, common.InsightSafetyWarning); len(warnings) != 0 {
		t.Errorf("got %d safety warnings at skill 8, want 0", len(warnings))
	}
}

func TestEquipmentInsightNamesMissingItem(t *testing.T) {
	svc, catalogSvc := newTestService(nil)
	defer catalogSvc.Close()

	recipe := &common.Recipe{
		Ingredients:  []common.RecipeIngredient{{Name: "dough"}},
		Instructions: []string{"Knead the dough in a stand mixer."},
	}
	profile := &common.CookingProfile{SkillLevel: 6, EquipmentAvailable: []string{"oven"}}

	insights := svc.GenerateCookingInsights(recipe, profile)
	equipment := insightsOfType(insights, common.InsightEquipmentRecommendation)
	if len(equipment) == 0 {
		t.Fatal("expected an equipment recommendation for the missing stand mixer")
	}
	if !strings.Contains(equipment[0].InsightContent, "stand mixer") {
		t.Errorf("equipment insight doesn't name the item: %q", equipment[0].InsightContent)
	}
}

func TestTechniqueTipTargetsIncludeUserLevel(t *testing.T) {
	svc, catalogSvc := newTestService(nil)
	defer catalogSvc.Close()

	recipe := &common.Recipe{
		Ingredients:  []common.RecipeIngredient{{Name: "onion"}},
		Instructions: []string{"Sauté the onions until soft."},
	}
	profile := &common.CookingProfile{SkillLevel: 3}

	insights := svc.GenerateCookingInsights(recipe, profile)
	tips := insightsOfType(insights, common.InsightTechniqueTip)
	if len(tips) == 0 {
		t.Fatal("expected a technique tip for sauté")
	}

	found := false
	for _, lvl := range tips[0].SkillLevelTarget {
		if lvl == profile.SkillLevel {
			found = true
		}
	}
	if !found {
		t.Errorf("tip targets %v do not include user level %d", tips[0].SkillLevelTarget, profile.SkillLevel)
	}
}

func TestHiddenTechniqueGetsNoTip(t *testing.T) {
	svc, catalogSvc := newTestService(nil)
	defer catalogSvc.Close()

	// temper 要求等級 7，等級 1 加緩衝 2 仍看不到
	recipe := &common.Recipe{
		Ingredients:  []common.RecipeIngredient{{Name: "eggs"}},
		Instructions: []string{"Temper the eggs with the hot cream."},
	}

	insights := svc.GenerateCookingInsights(recipe, &common.CookingProfile{SkillLevel: 1})
	if tips := insightsOfType(insights, common.InsightTechniqueTip); len(tips) != 0 {
		t.Errorf("got %d tips for a hidden technique, want 0", len(tips))
	}
}

func TestNilInputsYieldNoInsights(t *testing.T) {
	svc, catalogSvc := newTestService(nil)
	defer catalogSvc.Close()

	if insights := svc.GenerateCookingInsights(nil, &common.CookingProfile{}); len(insights) != 0 {
		t.Errorf("nil recipe produced %d insights", len(insights))
	}
	if insights := svc.GenerateCookingInsights(&common.Recipe{}, nil); len(insights) != 0 {
		t.Errorf("nil profile produced %d insights", len(insights))
	}
}
