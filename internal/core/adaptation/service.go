package adaptation

import (
	"recipe-adapter/internal/core/catalog"
	"recipe-adapter/internal/core/technique"
	"recipe-adapter/internal/infrastructure/config"
	"recipe-adapter/internal/pkg/common"
)

// Service 食譜調整引擎
// 純規則式：同樣輸入永遠得到同樣輸出；所有策略數值來自 EngineConfig
type Service struct {
	engine     config.EngineConfig
	catalog    *catalog.Service
	techniques *technique.KnowledgeBase
}

// NewService 創建調整引擎
func NewService(engine config.EngineConfig, catalogSvc *catalog.Service, kb *technique.KnowledgeBase) *Service {
	return &Service{
		engine:     engine,
		catalog:    catalogSvc,
		techniques: kb,
	}
}

// GetCookingTechnique 依使用者技能查詢技法
// 超出 userSkill + buffer 的技法視為不存在，回傳 nil
func (s *Service) GetCookingTechnique(name string, userSkill int) *common.TechniqueEntry {
	return s.techniques.LookupForSkill(name, userSkill, s.engine.SkillBuffer)
}
