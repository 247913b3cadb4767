package adaptation

import (
	"net/http"

	"recipe-adapter/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// InstructionRequest 指令改寫請求
type InstructionRequest struct {
	Instructions     []string               `json:"instructions" binding:"required"`
	TargetSkillLevel int                    `json:"target_skill_level"`
	Profile          *common.CookingProfile `json:"profile"`
}

// InstructionResponse 指令改寫響應
type InstructionResponse struct {
	Adjustments []common.InstructionAdjustment `json:"adjustments"`
}

// HandleInstructions 處理指令改寫請求
func (h *Handler) HandleInstructions(c *gin.Context) {
	requestID := c.GetHeader("X-Request-ID")
	if requestID == "" {
		requestID = common.GenerateUUID()
		c.Header("X-Request-ID", requestID)
	}

	var req InstructionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.LogWarn("Invalid request format",
			zap.Error(err),
			zap.String("request_id", requestID))
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
			"code":  "INVALID_REQUEST",
		})
		return
	}

	// 未帶目標等級時退回檔案中的技能等級
	target := req.TargetSkillLevel
	if target == 0 && req.Profile != nil {
		target = req.Profile.SkillLevel
	}

	adjustments := h.service.AdjustInstructionsForSkillLevel(req.Instructions, target, req.Profile)

	common.LogInfo("指令改寫完成",
		zap.Int("指令數", len(req.Instructions)),
		zap.Int("調整數", len(adjustments)),
		zap.Int("target_skill_level", target),
		zap.String("request_id", requestID),
	)

	c.JSON(http.StatusOK, InstructionResponse{Adjustments: adjustments})
}
