package adaptation

import (
	"net/http"

	"recipe-adapter/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SubstitutionRequest 替代建議請求
type SubstitutionRequest struct {
	Ingredients []common.RecipeIngredient `json:"ingredients" binding:"required"`
	Profile     *common.CookingProfile    `json:"profile" binding:"required"`
}

// SubstitutionResponse 替代建議響應
type SubstitutionResponse struct {
	Suggestions []common.SubstitutionSuggestion `json:"suggestions"`
}

// HandleSubstitutions 處理替代建議請求
func (h *Handler) HandleSubstitutions(c *gin.Context) {
	requestID := c.GetHeader("X-Request-ID")
	if requestID == "" {
		requestID = common.GenerateUUID()
		c.Header("X-Request-ID", requestID)
	}

	var req SubstitutionRequest
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

	if err := validateIngredients(req.Ingredients); err != nil {
		abortOnValidation(c, requestID, err)
		return
	}

	common.LogDebug("替代建議請求",
		zap.String("ingredients", common.FormatIngredients(req.Ingredients)),
		zap.String("request_id", requestID),
	)

	suggestions := h.service.GetSmartSubstitutions(c.Request.Context(), req.Ingredients, req.Profile)

	common.LogInfo("替代建議已產生",
		zap.Int("食材數", len(req.Ingredients)),
		zap.Int("建議數", len(suggestions)),
		zap.String("request_id", requestID),
	)

	c.JSON(http.StatusOK, SubstitutionResponse{Suggestions: suggestions})
}
