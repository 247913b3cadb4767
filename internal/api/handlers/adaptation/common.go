package adaptation

import (
	"fmt"

	coreAdaptation "recipe-adapter/internal/core/adaptation"
	"recipe-adapter/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler 食譜調整 API 處理器
type Handler struct {
	service *coreAdaptation.Service
}

// NewHandler 創建處理器
func NewHandler(service *coreAdaptation.Service) *Handler {
	return &Handler{service: service}
}

// validateRecipe 檢查食譜欄位是否足以進行評估
func validateRecipe(recipe *common.Recipe) error {
	if recipe == nil {
		return common.NewValidationError("recipe is required")
	}
	if len(recipe.Instructions) == 0 && len(recipe.Ingredients) == 0 {
		return common.NewValidationError("recipe must contain ingredients or instructions")
	}
	return nil
}

// validateIngredients 檢查食材列表
func validateIngredients(ingredients []common.RecipeIngredient) error {
	if len(ingredients) == 0 {
		return common.NewValidationError("ingredients are required")
	}
	for i, ing := range ingredients {
		if ing.Name == "" {
			return common.NewValidationError(fmt.Sprintf("ingredient %d is missing a name", i))
		}
	}
	return nil
}

// abortOnValidation 驗證錯誤回 400，其他錯誤回 500
func abortOnValidation(c *gin.Context, requestID string, err error) {
	if common.IsValidationError(err) {
		common.LogWarn("Invalid request payload",
			zap.Error(err),
			zap.String("request_id", requestID))
		c.JSON(400, gin.H{
			"error": err.Error(),
			"code":  common.ErrCodeInvalidRequest,
		})
		return
	}
	common.LogError("Request validation failed unexpectedly",
		zap.Error(err),
		zap.String("request_id", requestID))
	c.JSON(500, gin.H{
		"error": "Internal server error",
		"code":  common.ErrCodeInternalError,
	})
}
