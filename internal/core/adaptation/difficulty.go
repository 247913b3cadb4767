package adaptation

import (
	"fmt"
	"math"
	"strings"

	"recipe-adapter/internal/core/technique"
	"recipe-adapter/internal/pkg/common"
)

// AssessRecipeDifficulty 評估食譜相對於使用者檔案的難度
// 三軸（技法、備料、設備）各自落在 [1,10]，總分為設定權重的加權和
func (s *Service) AssessRecipeDifficulty(recipe *common.Recipe, profile *common.CookingProfile) *common.DifficultyAssessment {
	if recipe == nil {
		recipe = &common.Recipe{}
	}
	if profile == nil {
		profile = &common.CookingProfile{}
	}
	skill := common.ClampSkillLevel(profile.SkillLevel)

	order, counts := detectTechniques(recipe.Instructions, s.techniques)
	detected := detectEquipment(recipe.Instructions)
	missing := missingEquipment(detected, profile.EquipmentAvailable)

	techScore := techniqueComplexity(order, counts, s.techniques)
	prepScore := preparationComplexity(recipe, counts)
	equipScore := equipmentComplexity(len(detected), len(missing))

	overall := s.engine.TechniqueWeight*techScore +
		s.engine.PrepWeight*prepScore +
		s.engine.EquipmentWeight*equipScore
	overall = clampScore(overall)

	gaps := s.skillGaps(order, skill)

	return &common.DifficultyAssessment{
		OverallDifficulty:     round1(overall),
		PreparationComplexity: round1(prepScore),
		EquipmentComplexity:   round1(equipScore),
		TechniqueComplexity:   round1(techScore),
		SkillGaps:             gaps,
		Recommendations:       s.recommendations(overall, equipScore, skill, gaps, detected, missing),
	}
}

// techniqueComplexity 依出現技法的加權平均要求等級計分
// 技法種類越多，額外加一點協調成本
func techniqueComplexity(order []string, counts map[string]int, kb *technique.KnowledgeBase) float64 {
	if len(order) == 0 {
		return 1
	}

	weighted := 0.0
	total := 0
	for _, name := range order {
		entry := kb.Lookup(name)
		if entry == nil {
			continue
		}
		weighted += float64(entry.RequiredSkillLevel * counts[name])
		total += counts[name]
	}
	if total == 0 {
		return 1
	}

	score := weighted/float64(total) + 0.4*float64(len(order)-1)
	return clampScore(score)
}

// preparationComplexity 依步驟數、食材數與技法出現總次數計分
func preparationComplexity(recipe *common.Recipe, counts map[string]int) float64 {
	occurrences := 0
	for _, c := range counts {
		occurrences += c
	}

	score := 1 +
		0.35*float64(len(recipe.Instructions)) +
		0.25*float64(len(recipe.Ingredients)) +
		0.6*float64(occurrences)
	return clampScore(score)
}

// equipmentComplexity 依偵測到的設備數與缺少比例計分
// 缺少過半時分數必然超過 5
func equipmentComplexity(detected, missing int) float64 {
	if detected == 0 {
		return 1
	}

	ratio := float64(missing) / float64(detected)
	base := math.Min(0.4*float64(detected), 3.5)
	score := 1 + base + 8*ratio*ratio
	return clampScore(score)
}

// missingEquipment 比對指令提到但使用者沒有的設備
func missingEquipment(detected, available []string) []string {
	var missing []string
	for _, item := range detected {
		found := false
		for _, have := range available {
			if common.ContainsFold(item, have) {
				found = true
				break
			}
		}
		if !found {
			missing = append(missing, item)
		}
	}
	return missing
}

// skillGaps 找出要求等級高於使用者的技法
func (s *Service) skillGaps(order []string, skill int) []common.SkillGap {
	gaps := []common.SkillGap{}
	for _, name := range order {
		entry := s.techniques.Lookup(name)
		if entry == nil || entry.RequiredSkillLevel <= skill {
			continue
		}
		rec := fmt.Sprintf("Practice %s on a simpler recipe first.", entry.Name)
		if len(entry.Alternatives) > 0 {
			rec += " In the meantime: " + entry.Alternatives[0]
		}
		gaps = append(gaps, common.SkillGap{
			Technique:      entry.Name,
			RequiredLevel:  entry.RequiredSkillLevel,
			UserLevel:      skill,
			Recommendation: rec,
		})
	}
	return gaps
}

// recommendations 組整體建議文字
func (s *Service) recommendations(overall, equipScore float64, skill int, gaps []common.SkillGap, detected, missing []string) []string {
	var recs []string

	if equipScore > 5 && len(missing) > 0 {
		recs = append(recs, fmt.Sprintf(
			"You're missing %d of the %d tools this recipe expects (%s). Line up alternative equipment before you start.",
			len(missing), len(detected), strings.Join(missing, ", "),
		))
	}

	if len(gaps) > 0 {
		names := make([]string, 0, len(gaps))
		for _, gap := range gaps {
			names = append(names, gap.Technique)
		}
		recs = append(recs, fmt.Sprintf(
			"This recipe leans on %s, which is above your current level. Check the skill gaps for easier approaches.",
			strings.Join(names, " and "),
		))
	}

	if overall >= 7 && skill <= s.engine.AssistThreshold {
		recs = append(recs, "Set aside extra time and read every step before turning on the stove.")
	}

	if len(recs) == 0 {
		recs = append(recs, "This recipe is a good match for your current skill level.")
	}
	return recs
}

func clampScore(score float64) float64 {
	if score < 1 {
		return 1
	}
	if score > 10 {
		return 10
	}
	return score
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
