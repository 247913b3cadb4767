package adaptation

import (
	"net/http"

	"recipe-adapter/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AssessmentRequest 難度評估與洞察共用的請求格式
type AssessmentRequest struct {
	Recipe  *common.Recipe         `json:"recipe" binding:"required"`
	Profile *common.CookingProfile `json:"profile" binding:"required"`
}

// InsightResponse 洞察響應
type InsightResponse struct {
	Insights []common.Insight `json:"insights"`
}

// HandleDifficulty 處理難度評估請求
func (h *Handler) HandleDifficulty(c *gin.Context) {
	requestID := c.GetHeader("X-Request-ID")

	var req AssessmentRequest
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

	if err := validateRecipe(req.Recipe); err != nil {
		abortOnValidation(c, requestID, err)
		return
	}

	assessment := h.service.AssessRecipeDifficulty(req.Recipe, req.Profile)

	common.LogInfo("難度評估完成",
		zap.Float64("overall_difficulty", assessment.OverallDifficulty),
		zap.Int("skill_gaps", len(assessment.SkillGaps)),
		zap.String("request_id", requestID),
	)

	c.JSON(http.StatusOK, assessment)
}

// HandleInsights 處理烹飪洞察請求
func (h *Handler) HandleInsights(c *gin.Context) {
	requestID := c.GetHeader("X-Request-ID")

	var req AssessmentRequest
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

	if err := validateRecipe(req.Recipe); err != nil {
		abortOnValidation(c, requestID, err)
		return
	}

	insights := h.service.GenerateCookingInsights(req.Recipe, req.Profile)

	common.LogInfo("洞察產生完成",
		zap.Int("insights", len(insights)),
		zap.String("request_id", requestID),
	)

	c.JSON(http.StatusOK, InsightResponse{Insights: insights})
}
