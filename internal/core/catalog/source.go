package catalog

import (
	"context"
	"strings"

	"recipe-adapter/internal/pkg/common"
)

// Source 替代目錄來源
// 查詢以食材名稱（不分大小寫）取得替代紀錄；查無資料回傳空切片
type Source interface {
	FetchSubstitutions(ctx context.Context, ingredient string) ([]common.SubstitutionRecord, error)
}

// NormalizeIngredient 統一食材名稱格式，作為查詢與快取鍵
func NormalizeIngredient(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// MemorySource 內建種子目錄
// 開發與測試用的預設來源；正式環境由 redis 或 remote 提供
type MemorySource struct {
	records map[string][]common.SubstitutionRecord
}

// NewMemorySource 建立已播種的記憶體目錄
func NewMemorySource() *MemorySource {
	return &MemorySource{records: seedCatalog()}
}

// FetchSubstitutions 實現 Source 介面
func (s *MemorySource) FetchSubstitutions(_ context.Context, ingredient string) ([]common.SubstitutionRecord, error) {
	recs := s.records[NormalizeIngredient(ingredient)]
	out := make([]common.SubstitutionRecord, len(recs))
	copy(out, recs)
	return out, nil
}

// Put 新增或覆蓋一組紀錄（測試用）
func (s *MemorySource) Put(ingredient string, recs []common.SubstitutionRecord) {
	s.records[NormalizeIngredient(ingredient)] = recs
}

func seedCatalog() map[string][]common.SubstitutionRecord {
	return map[string][]common.SubstitutionRecord{
		"butter": {
			{
				OriginalIngredient:     "butter",
				SubstituteIngredient:   "olive oil",
				SubstitutionRatio:      "3/4 cup per 1 cup",
				ContextTags:            []string{"sauté", "roast"},
				DietaryReasons:         []string{"dairy-free", "vegan"},
				FlavorImpact:           2,
				TextureImpact:          1,
				NutritionalImpactDelta: -102,
				SuccessRate:            0.92,
				UserRatings:            common.UserRatings{Count: 412, Average: 4.5},
			},
			{
				OriginalIngredient:     "butter",
				SubstituteIngredient:   "coconut oil",
				SubstitutionRatio:      "1:1",
				ContextTags:            []string{"baking"},
				DietaryReasons:         []string{"dairy-free", "vegan"},
				FlavorImpact:           3,
				TextureImpact:          1,
				NutritionalImpactDelta: 0,
				SuccessRate:            0.88,
				UserRatings:            common.UserRatings{Count: 268, Average: 4.2},
			},
			{
				OriginalIngredient:     "butter",
				SubstituteIngredient:   "unsweetened applesauce",
				SubstitutionRatio:      "1/2 cup per 1 cup",
				ContextTags:            []string{"baking"},
				DietaryReasons:         []string{"dairy-free", "low-fat", "vegan"},
				FlavorImpact:           3,
				TextureImpact:          3,
				NutritionalImpactDelta: -650,
				SuccessRate:            0.74,
				UserRatings:            common.UserRatings{Count: 155, Average: 3.9},
			},
			{
				OriginalIngredient:     "butter",
				SubstituteIngredient:   "margarine",
				SubstitutionRatio:      "1:1",
				DietaryReasons:         []string{"dairy-free"},
				FlavorImpact:           1,
				TextureImpact:          1,
				NutritionalImpactDelta: -30,
				SuccessRate:            0.95,
				UserRatings:            common.UserRatings{Count: 523, Average: 4.1},
			},
		},
		"milk": {
			{
				OriginalIngredient:     "milk",
				SubstituteIngredient:   "oat milk",
				SubstitutionRatio:      "1:1",
				DietaryReasons:         []string{"dairy-free", "lactose-free", "vegan", "nut-free"},
				FlavorImpact:           1,
				TextureImpact:          1,
				NutritionalImpactDelta: -20,
				SuccessRate:            0.93,
				UserRatings:            common.UserRatings{Count: 340, Average: 4.6},
			},
			{
				OriginalIngredient:     "milk",
				SubstituteIngredient:   "almond milk",
				SubstitutionRatio:      "1:1",
				DietaryReasons:         []string{"dairy-free", "lactose-free", "vegan"},
				FlavorImpact:           2,
				TextureImpact:          2,
				NutritionalImpactDelta: -60,
				SuccessRate:            0.9,
				UserRatings:            common.UserRatings{Count: 402, Average: 4.3},
			},
			{
				OriginalIngredient:     "milk",
				SubstituteIngredient:   "soy milk",
				SubstitutionRatio:      "1:1",
				DietaryReasons:         []string{"dairy-free", "lactose-free", "vegan"},
				FlavorImpact:           2,
				TextureImpact:          1,
				NutritionalImpactDelta: -15,
				SuccessRate:            0.91,
				UserRatings:            common.UserRatings{Count: 287, Average: 4.2},
			},
		},
		"egg": {
			{
				OriginalIngredient:     "egg",
				SubstituteIngredient:   "ground flaxseed + water",
				SubstitutionRatio:      "1 tbsp flax + 3 tbsp water per egg",
				ContextTags:            []string{"baking"},
				DietaryReasons:         []string{"egg-free", "vegan"},
				FlavorImpact:           1,
				TextureImpact:          2,
				NutritionalImpactDelta: -35,
				SuccessRate:            0.85,
				UserRatings:            common.UserRatings{Count: 198, Average: 4.4},
			},
			{
				OriginalIngredient:     "egg",
				SubstituteIngredient:   "aquafaba",
				SubstitutionRatio:      "3 tbsp per egg",
				ContextTags:            []string{"baking", "meringue"},
				DietaryReasons:         []string{"egg-free", "vegan"},
				FlavorImpact:           0,
				TextureImpact:          1,
				NutritionalImpactDelta: -65,
				SuccessRate:            0.82,
				UserRatings:            common.UserRatings{Count: 121, Average: 4.1},
			},
			{
				OriginalIngredient:     "egg",
				SubstituteIngredient:   "mashed banana",
				SubstitutionRatio:      "1/4 cup per egg",
				ContextTags:            []string{"baking"},
				DietaryReasons:         []string{"egg-free", "vegan"},
				FlavorImpact:           4,
				TextureImpact:          2,
				NutritionalImpactDelta: 30,
				SuccessRate:            0.71,
				UserRatings:            common.UserRatings{Count: 89, Average: 3.7},
			},
		},
		"all-purpose flour": {
			{
				OriginalIngredient:     "all-purpose flour",
				SubstituteIngredient:   "gluten-free flour blend",
				SubstitutionRatio:      "1:1",
				DietaryReasons:         []string{"gluten-free"},
				FlavorImpact:           1,
				TextureImpact:          2,
				NutritionalImpactDelta: 10,
				SuccessRate:            0.87,
				UserRatings:            common.UserRatings{Count: 233, Average: 4.2},
			},
			{
				OriginalIngredient:     "all-purpose flour",
				SubstituteIngredient:   "almond flour",
				SubstitutionRatio:      "1:1 plus extra binder",
				DietaryReasons:         []string{"gluten-free", "low-carb"},
				FlavorImpact:           3,
				TextureImpact:          4,
				NutritionalImpactDelta: 160,
				SuccessRate:            0.69,
				UserRatings:            common.UserRatings{Count: 145, Average: 3.8},
			},
		},
		"heavy cream": {
			{
				OriginalIngredient:     "heavy cream",
				SubstituteIngredient:   "coconut cream",
				SubstitutionRatio:      "1:1",
				DietaryReasons:         []string{"dairy-free", "lactose-free", "vegan"},
				FlavorImpact:           3,
				TextureImpact:          1,
				NutritionalImpactDelta: -40,
				SuccessRate:            0.89,
				UserRatings:            common.UserRatings{Count: 176, Average: 4.3},
			},
			{
				OriginalIngredient:     "heavy cream",
				SubstituteIngredient:   "evaporated milk",
				SubstitutionRatio:      "1:1",
				DietaryReasons:         []string{"low-fat"},
				FlavorImpact:           1,
				TextureImpact:          2,
				NutritionalImpactDelta: -470,
				SuccessRate:            0.8,
				UserRatings:            common.UserRatings{Count: 98, Average: 3.9},
			},
		},
		"peanut butter": {
			{
				OriginalIngredient:     "peanut butter",
				SubstituteIngredient:   "sunflower seed butter",
				SubstitutionRatio:      "1:1",
				DietaryReasons:         []string{"nut-free"},
				FlavorImpact:           2,
				TextureImpact:          0,
				NutritionalImpactDelta: 15,
				SuccessRate:            0.94,
				UserRatings:            common.UserRatings{Count: 211, Average: 4.6},
			},
			{
				OriginalIngredient:     "peanut butter",
				SubstituteIngredient:   "tahini",
				SubstitutionRatio:      "1:1",
				DietaryReasons:         []string{"nut-free"},
				FlavorImpact:           3,
				TextureImpact:          1,
				NutritionalImpactDelta: -20,
				SuccessRate:            0.78,
				UserRatings:            common.UserRatings{Count: 84, Average: 4.0},
			},
		},
		"soy sauce": {
			{
				OriginalIngredient:     "soy sauce",
				SubstituteIngredient:   "coconut aminos",
				SubstitutionRatio:      "1:1",
				DietaryReasons:         []string{"soy-free", "gluten-free"},
				FlavorImpact:           2,
				TextureImpact:          0,
				NutritionalImpactDelta: -5,
				SuccessRate:            0.9,
				UserRatings:            common.UserRatings{Count: 167, Average: 4.4},
			},
			{
				OriginalIngredient:     "soy sauce",
				SubstituteIngredient:   "tamari",
				SubstitutionRatio:      "1:1",
				DietaryReasons:         []string{"gluten-free"},
				FlavorImpact:           1,
				TextureImpact:          0,
				NutritionalImpactDelta: 0,
				SuccessRate:            0.96,
				UserRatings:            common.UserRatings{Count: 243, Average: 4.7},
			},
		},
		"sour cream": {
			{
				OriginalIngredient:     "sour cream",
				SubstituteIngredient:   "plain greek yogurt",
				SubstitutionRatio:      "1:1",
				DietaryReasons:         []string{"low-fat"},
				FlavorImpact:           1,
				TextureImpact:          1,
				NutritionalImpactDelta: -120,
				SuccessRate:            0.93,
				UserRatings:            common.UserRatings{Count: 301, Average: 4.5},
			},
			{
				OriginalIngredient:     "sour cream",
				SubstituteIngredient:   "coconut yogurt",
				SubstitutionRatio:      "1:1",
				DietaryReasons:         []string{"dairy-free", "lactose-free", "vegan"},
				FlavorImpact:           3,
				TextureImpact:          1,
				NutritionalImpactDelta: -60,
				SuccessRate:            0.79,
				UserRatings:            common.UserRatings{Count: 72, Average: 3.8},
			},
		},
		"honey": {
			{
				OriginalIngredient:     "honey",
				SubstituteIngredient:   "maple syrup",
				SubstitutionRatio:      "1:1",
				DietaryReasons:         []string{"vegan"},
				FlavorImpact:           2,
				TextureImpact:          0,
				NutritionalImpactDelta: -12,
				SuccessRate:            0.95,
				UserRatings:            common.UserRatings{Count: 188, Average: 4.6},
			},
		},
	}
}
