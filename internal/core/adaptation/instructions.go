package adaptation

import (
	"fmt"
	"strings"

	"recipe-adapter/internal/pkg/common"
)

// AdjustInstructionsForSkillLevel 依目標技能等級改寫指令
// 技能高於協助門檻時回傳空集合；每條指令最多產生一筆調整，
// adjustment_type 取第一個觸發的規則（技法說明 → 安全提示 → 模糊解析）
func (s *Service) AdjustInstructionsForSkillLevel(instructions []string, targetSkillLevel int, profile *common.CookingProfile) []common.InstructionAdjustment {
	skill := common.ClampSkillLevel(targetSkillLevel)
	adjustments := []common.InstructionAdjustment{}

	if skill > s.engine.AssistThreshold {
		return adjustments
	}

	// 同一技法整份食譜只解釋一次
	explained := make(map[string]bool)

	for _, instruction := range instructions {
		if strings.TrimSpace(instruction) == "" {
			continue
		}

		adjusted := instruction
		adjustmentType := ""

		// 技法說明：超出目標技能的技法附上定義
		for _, name := range detectTechniquesInText(instruction, s.techniques) {
			entry := s.techniques.Lookup(name)
			if entry == nil || entry.RequiredSkillLevel <= skill || explained[name] {
				continue
			}
			explained[name] = true
			adjusted += fmt.Sprintf(" (%s)", entry.Description)
			if adjustmentType == "" {
				adjustmentType = common.AdjustmentTechniqueExplanation
			}
		}

		// 安全提示：低技能者在危險步驟後附加安全句
		if skill <= s.engine.SafetySkillThreshold {
			var clauses []string
			for _, rule := range detectHazards(instruction) {
				clauses = append(clauses, rule.clause)
			}
			if len(clauses) > 0 {
				adjusted += " Safety: " + strings.Join(clauses, "; ") + "."
				if adjustmentType == "" {
					adjustmentType = common.AdjustmentSafetyAdded
				}
			}
		}

		// 模糊措辭：補上具體判斷依據
		for _, rule := range detectVaguePhrases(instruction) {
			adjusted += fmt.Sprintf(" (\"%s\" here: %s)", rule.pattern, rule.guidance)
			if adjustmentType == "" {
				adjustmentType = common.AdjustmentVaguenessResolved
			}
		}

		if adjustmentType == "" {
			continue
		}
		adjustments = append(adjustments, common.InstructionAdjustment{
			OriginalInstruction: instruction,
			AdjustedInstruction: adjusted,
			AdjustmentType:      adjustmentType,
		})
	}

	return adjustments
}
