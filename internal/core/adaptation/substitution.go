package adaptation

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"recipe-adapter/internal/pkg/common"

	"go.uber.org/zap"
)

// GetSmartSubstitutions 為與使用者檔案衝突的食材找替代
// 目錄查詢逐食材併發送出；單筆失敗視為該食材無建議，不影響其他食材
// 輸出順序與輸入食材順序一致
func (s *Service) GetSmartSubstitutions(ctx context.Context, ingredients []common.RecipeIngredient, profile *common.CookingProfile) []common.SubstitutionSuggestion {
	if profile == nil {
		profile = &common.CookingProfile{}
	}
	if len(ingredients) == 0 || s.catalog == nil {
		return []common.SubstitutionSuggestion{}
	}

	// 併發撈每個食材的目錄紀錄，索引對齊輸入順序
	fetched := make([][]common.SubstitutionRecord, len(ingredients))
	var wg sync.WaitGroup
	for i, ing := range ingredients {
		wg.Add(1)
		go func(idx int, name string) {
			defer wg.Done()
			records, err := s.catalog.FetchSubstitutions(ctx, name)
			if err != nil {
				common.LogWarn("目錄查詢失敗，該食材視為無建議",
					zap.String("食材", name),
					zap.Error(err),
				)
				return
			}
			fetched[idx] = records
		}(i, ing.Name)
	}
	wg.Wait()

	suggestions := []common.SubstitutionSuggestion{}
	for i, ing := range ingredients {
		substitutes := s.rankSubstitutes(ing, fetched[i], profile)
		if len(substitutes) == 0 {
			continue
		}
		suggestions = append(suggestions, common.SubstitutionSuggestion{
			OriginalIngredient: ing.Name,
			Substitutes:        substitutes,
		})
	}
	return suggestions
}

// rankSubstitutes 為單一食材篩選、說明並排序候選替代
func (s *Service) rankSubstitutes(ing common.RecipeIngredient, records []common.SubstitutionRecord, profile *common.CookingProfile) []common.RankedSubstitute {
	var ranked []common.RankedSubstitute

	for _, rec := range records {
		if !common.ContainsFold(rec.OriginalIngredient, ing.Name) {
			continue
		}
		reasons := buildReasons(ing, rec, profile)
		if len(reasons) == 0 {
			// 沒有任何衝突理由就不建議換掉這個食材
			continue
		}
		ranked = append(ranked, common.RankedSubstitute{
			Record:     rec,
			Reasons:    reasons,
			MatchScore: matchScore(rec),
		})
	}

	// 成功率高者優先，平手看使用者評分
	sort.SliceStable(ranked, func(i, j int) bool {
		ri, rj := ranked[i].Record, ranked[j].Record
		if ri.SuccessRate != rj.SuccessRate {
			return ri.SuccessRate > rj.SuccessRate
		}
		return ri.UserRatings.Average > rj.UserRatings.Average
	})

	if len(ranked) > s.engine.MaxSubstitutions {
		ranked = ranked[:s.engine.MaxSubstitutions]
	}
	return ranked
}

// buildReasons 依固定順序組理由：過敏 → 飲食限制 → 不喜歡 → 目錄標註
func buildReasons(ing common.RecipeIngredient, rec common.SubstitutionRecord, profile *common.CookingProfile) []string {
	var reasons []string

	for _, allergy := range profile.Allergies {
		if common.ContainsFold(ing.Name, allergy) {
			reasons = append(reasons, fmt.Sprintf("Avoids your %s allergy", allergy))
		}
	}

	for _, restriction := range profile.DietaryRestrictions {
		for _, reason := range rec.DietaryReasons {
			if common.ContainsFold(reason, restriction) {
				reasons = append(reasons, fmt.Sprintf("Fits your %s restriction", restriction))
				break
			}
		}
	}

	for _, disliked := range profile.IngredientPreferences.Disliked {
		if common.ContainsFold(ing.Name, disliked) {
			reasons = append(reasons, fmt.Sprintf("Replaces %s, which you prefer to avoid", ing.Name))
			break
		}
	}

	if len(reasons) > 0 && len(rec.DietaryReasons) > 0 {
		reasons = append(reasons, fmt.Sprintf("Catalog-verified for %s diets", strings.Join(rec.DietaryReasons, ", ")))
	}

	return reasons
}

// matchScore 綜合成功率與評分的媒合分數，固定落在 [0,1]
func matchScore(rec common.SubstitutionRecord) float64 {
	score := 0.8*rec.SuccessRate + 0.2*(rec.UserRatings.Average/5.0)
	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}
