package adaptation

import (
	"fmt"

	"recipe-adapter/internal/pkg/common"
)

// GenerateCookingInsights 產生可執行的烹飪洞察
// 四類：技法訣竅、設備建議、時間提醒、安全警告
// 每筆都帶 skill_level_target，呼叫端可再依對象過濾
func (s *Service) GenerateCookingInsights(recipe *common.Recipe, profile *common.CookingProfile) []common.Insight {
	if recipe == nil || profile == nil {
		return []common.Insight{}
	}
	skill := common.ClampSkillLevel(profile.SkillLevel)
	insights := []common.Insight{}

	// 技法訣竅：只談使用者看得到的技法（可見度規則同技法查詢）
	order, _ := detectTechniques(recipe.Instructions, s.techniques)
	for _, name := range order {
		entry := s.techniques.LookupForSkill(name, skill, s.engine.SkillBuffer)
		if entry == nil {
			continue
		}
		content := entry.Description
		if len(entry.Tips) > 0 {
			content = fmt.Sprintf("%s Tip: %s", entry.Description, entry.Tips[0])
		}
		insights = append(insights, common.Insight{
			InsightType:      common.InsightTechniqueTip,
			InsightContent:   content,
			SkillLevelTarget: levelRange(entry.RequiredSkillLevel-s.engine.SkillBuffer, 10),
		})
	}

	// 設備建議：每個缺少的設備一筆
	detected := detectEquipment(recipe.Instructions)
	for _, item := range missingEquipment(detected, profile.EquipmentAvailable) {
		insights = append(insights, common.Insight{
			InsightType: common.InsightEquipmentRecommendation,
			InsightContent: fmt.Sprintf(
				"No %s in your equipment list. Plan an alternative before starting, or borrow one.", item),
			SkillLevelTarget: levelRange(1, 10),
		})
	}

	// 時間提醒：總時間明顯超出偏好才提
	if insight, ok := s.timingInsight(recipe, profile); ok {
		insights = append(insights, insight)
	}

	// 安全警告：低技能者每個危險類別一筆
	if skill <= s.engine.SafetySkillThreshold {
		for _, rule := range detectHazardCategories(recipe.Instructions) {
			insights = append(insights, common.Insight{
				InsightType:      common.InsightSafetyWarning,
				InsightContent:   rule.warning,
				SkillLevelTarget: levelRange(1, s.engine.SafetySkillThreshold),
			})
		}
	}

	return insights
}

// timingInsight 食譜總時間超過偏好時間的提醒
func (s *Service) timingInsight(recipe *common.Recipe, profile *common.CookingProfile) (common.Insight, bool) {
	preferred := profile.PreferredCookingTimeMinutes
	if preferred <= 0 {
		return common.Insight{}, false
	}

	total := recipe.TotalTimeMinutes
	if total == 0 {
		total = recipe.PrepTimeMinutes + recipe.CookTimeMinutes
	}
	if float64(total) <= float64(preferred)*s.engine.TimeOverrunRatio {
		return common.Insight{}, false
	}

	return common.Insight{
		InsightType: common.InsightTimingAdjustment,
		InsightContent: fmt.Sprintf(
			"This recipe takes about %d minutes, longer than your usual %d-minute window. Prep the ingredients ahead, or split the work across two sessions.",
			total, preferred),
		SkillLevelTarget: levelRange(1, 10),
	}, true
}

// levelRange 產生 [from, to] 的技能等級區間，自動夾在 1–10
func levelRange(from, to int) []int {
	from = common.ClampSkillLevel(from)
	to = common.ClampSkillLevel(to)
	levels := make([]int, 0, to-from+1)
	for lvl := from; lvl <= to; lvl++ {
		levels = append(levels, lvl)
	}
	return levels
}
