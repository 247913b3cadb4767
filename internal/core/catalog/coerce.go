package catalog

import (
	"encoding/json"
	"strings"

	"recipe-adapter/internal/pkg/common"
)

// ---------------- 寬鬆版中繼結構：容忍外部目錄的欄位型別雜訊 ----------------

type looseRecord struct {
	OriginalIngredient     interface{} `json:"original_ingredient"`
	SubstituteIngredient   interface{} `json:"substitute_ingredient"`
	SubstitutionRatio      interface{} `json:"substitution_ratio"`
	ContextTags            interface{} `json:"context_tags"`
	DietaryReasons         interface{} `json:"dietary_reasons"`
	FlavorImpact           interface{} `json:"flavor_impact"`
	TextureImpact          interface{} `json:"texture_impact"`
	NutritionalImpactDelta interface{} `json:"nutritional_impact_delta"`
	SuccessRate            interface{} `json:"success_rate"`
	UserRatings            interface{} `json:"user_ratings"`
}

// ---------------------------------------------------------------

// CoerceRecords 解析一批目錄紀錄並回填安全預設值
// 名稱缺失的條目整筆丟棄；數值異常以 0 回填；successRate 限制在 [0,1]
func CoerceRecords(raw []byte) ([]common.SubstitutionRecord, error) {
	var loose []looseRecord
	if err := common.ParseJSONBytes(raw, &loose); err != nil {
		// 外部目錄偶見手寫 JSON，補引號後再試一次
		if retry := common.ParseJSON(common.QuoteJSONKeys(string(raw)), &loose); retry != nil {
			return nil, err
		}
	}

	out := make([]common.SubstitutionRecord, 0, len(loose))
	for _, lr := range loose {
		rec, ok := coerceRecord(lr)
		if !ok {
			continue
		}
		out = append(out, rec)
	}
	return out, nil
}

func coerceRecord(lr looseRecord) (common.SubstitutionRecord, bool) {
	original := coerceString(lr.OriginalIngredient)
	substitute := coerceString(lr.SubstituteIngredient)
	// 名稱不可用的紀錄無法比對，整筆跳過
	if original == "" || substitute == "" {
		return common.SubstitutionRecord{}, false
	}

	rec := common.SubstitutionRecord{
		OriginalIngredient:     original,
		SubstituteIngredient:   substitute,
		SubstitutionRatio:      coerceString(lr.SubstitutionRatio),
		ContextTags:            common.CoerceStringSlice(lr.ContextTags),
		DietaryReasons:         common.CoerceStringSlice(lr.DietaryReasons),
		FlavorImpact:           clampFloat(common.CoerceFloat(lr.FlavorImpact, 0), 0, 5),
		TextureImpact:          clampFloat(common.CoerceFloat(lr.TextureImpact, 0), 0, 5),
		NutritionalImpactDelta: common.CoerceFloat(lr.NutritionalImpactDelta, 0),
		SuccessRate:            clampFloat(common.CoerceFloat(lr.SuccessRate, 0), 0, 1),
	}
	if rec.DietaryReasons == nil {
		rec.DietaryReasons = []string{}
	}

	if ratings, ok := lr.UserRatings.(map[string]interface{}); ok {
		rec.UserRatings = common.UserRatings{
			Count:   int(common.CoerceFloat(ratings["count"], 0)),
			Average: clampFloat(common.CoerceFloat(ratings["average"], 0), 0, 5),
		}
	}

	return rec, true
}

func coerceString(raw interface{}) string {
	switch v := raw.(type) {
	case string:
		return strings.TrimSpace(v)
	case json.Number:
		return v.String()
	default:
		return ""
	}
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
