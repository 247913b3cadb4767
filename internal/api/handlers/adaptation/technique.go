package adaptation

import (
	"net/http"
	"strconv"

	"recipe-adapter/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// HandleTechnique 處理技法查詢請求
// GET /technique/:name?skill_level=N
// 超出使用者可見度的技法一律回 404，不洩漏知識庫內容
func (h *Handler) HandleTechnique(c *gin.Context) {
	requestID := c.GetHeader("X-Request-ID")
	name := c.Param("name")

	skill := 0
	if raw := c.Query("skill_level"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "skill_level must be an integer",
				"code":  "INVALID_REQUEST",
			})
			return
		}
		skill = parsed
	}

	entry := h.service.GetCookingTechnique(name, skill)
	if entry == nil {
		common.LogInfo("技法查無或超出可見度",
			zap.String("technique", name),
			zap.Int("skill_level", skill),
			zap.String("request_id", requestID),
		)
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Technique not found",
			"code":  common.ErrTechniqueNotFound.Code,
		})
		return
	}

	c.JSON(http.StatusOK, entry)
}
