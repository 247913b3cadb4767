package common

import (
	"fmt"
	"strings"
)

// RecipeIngredient 食譜中的單一食材
type RecipeIngredient struct {
	Name   string `json:"name"`
	Amount string `json:"amount"`
	Unit   string `json:"unit"`
	Notes  string `json:"notes,omitempty"`
}

// Recipe 食譜（呼叫端已驗證過的唯讀快照）
type Recipe struct {
	Ingredients      []RecipeIngredient `json:"ingredients"`
	Instructions     []string           `json:"instructions"`
	Nutrition        map[string]float64 `json:"nutrition,omitempty"`
	Servings         int                `json:"servings"`
	PrepTimeMinutes  int                `json:"prep_time_minutes"`
	CookTimeMinutes  int                `json:"cook_time_minutes"`
	TotalTimeMinutes int                `json:"total_time_minutes"`
	DifficultyLevel  int                `json:"difficulty_level"`
	Tags             []string           `json:"tags,omitempty"`
}

// IngredientPreferences 食材偏好分組
type IngredientPreferences struct {
	Loved      []string `json:"loved"`
	Disliked   []string `json:"disliked"`
	NeverTried []string `json:"never_tried"`
}

// SuccessHistory 使用者的烹飪成功紀錄
type SuccessHistory struct {
	Attempts  int `json:"attempts"`
	Successes int `json:"successes"`
	Failures  int `json:"failures"`
}

// CookingProfile 使用者烹飪檔案（唯讀快照，引擎不得修改）
type CookingProfile struct {
	SkillLevel                  int                   `json:"skill_level"`
	CookingExperienceYears      int                   `json:"cooking_experience_years"`
	PreferredCookingTimeMinutes int                   `json:"preferred_cooking_time_minutes"`
	EquipmentAvailable          []string              `json:"equipment_available"`
	DietaryRestrictions         []string              `json:"dietary_restrictions"`
	Allergies                   []string              `json:"allergies"`
	SpiceTolerance              int                   `json:"spice_tolerance"`
	IngredientPreferences       IngredientPreferences `json:"ingredient_preferences"`
	SuccessHistory              SuccessHistory        `json:"success_history"`
}

// UserRatings 替代紀錄的使用者評分
type UserRatings struct {
	Count   int     `json:"count"`
	Average float64 `json:"average"`
}

// SubstitutionRecord 目錄中的食材替代紀錄
// 不變式：SuccessRate ∈ [0,1]；數值欄位異常時以 0 回填，不拋錯
type SubstitutionRecord struct {
	OriginalIngredient     string      `json:"original_ingredient"`
	SubstituteIngredient   string      `json:"substitute_ingredient"`
	SubstitutionRatio      string      `json:"substitution_ratio"`
	ContextTags            []string    `json:"context_tags,omitempty"`
	DietaryReasons         []string    `json:"dietary_reasons"`
	FlavorImpact           float64     `json:"flavor_impact"`
	TextureImpact          float64     `json:"texture_impact"`
	NutritionalImpactDelta float64     `json:"nutritional_impact_delta"`
	SuccessRate            float64     `json:"success_rate"`
	UserRatings            UserRatings `json:"user_ratings"`
}

// RankedSubstitute 單一替代候選與其理由
type RankedSubstitute struct {
	Record     SubstitutionRecord `json:"record"`
	Reasons    []string           `json:"reasons_for_suggestion"`
	MatchScore float64            `json:"match_score"`
}

// SubstitutionSuggestion 某食材的替代建議（依輸入順序輸出）
type SubstitutionSuggestion struct {
	OriginalIngredient string             `json:"original_ingredient"`
	Substitutes        []RankedSubstitute `json:"substitutes"`
}

// 指令調整類型
const (
	AdjustmentTechniqueExplanation = "technique_explanation"
	AdjustmentSafetyAdded          = "safety_added"
	AdjustmentVaguenessResolved    = "vagueness_resolved"
)

// InstructionAdjustment 依技能等級改寫後的單一指令
type InstructionAdjustment struct {
	OriginalInstruction string `json:"original_instruction"`
	AdjustedInstruction string `json:"adjusted_instruction"`
	AdjustmentType      string `json:"adjustment_type"`
}

// TechniqueEntry 烹飪技法知識庫條目
type TechniqueEntry struct {
	Name               string   `json:"name"`
	RequiredSkillLevel int      `json:"required_skill_level"`
	Description        string   `json:"description"`
	Tips               []string `json:"tips"`
	Alternatives       []string `json:"alternatives"`
}

// SkillGap 食譜要求超出使用者技能的技法
// 不變式：RequiredLevel > UserLevel
type SkillGap struct {
	Technique      string `json:"technique"`
	RequiredLevel  int    `json:"required_level"`
	UserLevel      int    `json:"user_level"`
	Recommendation string `json:"recommendation"`
}

// DifficultyAssessment 食譜難度評估結果
type DifficultyAssessment struct {
	OverallDifficulty     float64    `json:"overall_difficulty"`
	PreparationComplexity float64    `json:"preparation_complexity"`
	EquipmentComplexity   float64    `json:"equipment_complexity"`
	TechniqueComplexity   float64    `json:"technique_complexity"`
	SkillGaps             []SkillGap `json:"skill_gaps"`
	Recommendations       []string   `json:"recommendations"`
}

// 洞察類型
const (
	InsightTechniqueTip            = "technique_tip"
	InsightEquipmentRecommendation = "equipment_recommendation"
	InsightTimingAdjustment        = "timing_adjustment"
	InsightSafetyWarning           = "safety_warning"
)

// Insight 可執行的烹飪洞察
type Insight struct {
	InsightType      string `json:"insight_type"`
	InsightContent   string `json:"insight_content"`
	SkillLevelTarget []int  `json:"skill_level_target"`
}

// FormatIngredients 格式化食材列表（日誌與除錯用）
func FormatIngredients(ingredients []RecipeIngredient) string {
	var sb strings.Builder
	for _, ing := range ingredients {
		sb.WriteString(fmt.Sprintf("- %s: %s%s", ing.Name, ing.Amount, ing.Unit))
		if ing.Notes != "" {
			sb.WriteString(fmt.Sprintf(" (%s)", ing.Notes))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// ContainsFold 判斷兩字串是否互為子字串（不分大小寫）
// 用於過敏原、偏好與設備名稱的寬鬆比對
func ContainsFold(a, b string) bool {
	a = strings.ToLower(strings.TrimSpace(a))
	b = strings.ToLower(strings.TrimSpace(b))
	if a == "" || b == "" {
		return false
	}
	return strings.Contains(a, b) || strings.Contains(b, a)
}

// ClampSkillLevel 將技能等級限制在 1–10
// 負值或 0 視為需要最大協助，超過 10 視為專家
func ClampSkillLevel(level int) int {
	if level < 1 {
		return 1
	}
	if level > 10 {
		return 10
	}
	return level
}
