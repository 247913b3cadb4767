package technique

import (
	"sort"
	"strings"

	"recipe-adapter/internal/pkg/common"
)

// KnowledgeBase 烹飪技法知識庫
// 靜態種子資料，引擎只讀；維護由外部流程負責
type KnowledgeBase struct {
	entries map[string]common.TechniqueEntry
	aliases map[string]string
}

// entry 種子資料的內部表示
type entry struct {
	name     string
	aliases  []string
	required int
	desc     string
	tips     []string
	alts     []string
}

var seedEntries = []entry{
	{
		name:     "sauté",
		aliases:  []string{"saute", "sautéing", "sauteing"},
		required: 3,
		desc:     "Sautéing means cooking food quickly in a small amount of hot fat over medium-high heat, stirring or tossing often so nothing sticks.",
		tips: []string{
			"Heat the pan before adding oil, and the oil before adding food — food should sizzle on contact.",
			"Don't crowd the pan; cook in batches so the food browns instead of steaming.",
		},
		alts: []string{
			"Pan-fry over steady medium heat, stirring every 30 seconds.",
			"Roast the same ingredients on a sheet pan at 200°C instead.",
		},
	},
	{
		name:     "braise",
		aliases:  []string{"braising", "braised"},
		required: 5,
		desc:     "Braising means browning food first, then cooking it slowly, partly covered in liquid, until it turns tender.",
		tips: []string{
			"Keep the liquid at a bare simmer — big bubbles toughen the meat.",
			"Brown deeply before adding liquid; that color is most of the flavor.",
		},
		alts: []string{
			"Use a slow cooker on low for 6-8 hours with the same liquid.",
			"Simmer smaller pieces in a covered pot on the lowest stove setting.",
		},
	},
	{
		name:     "fold",
		aliases:  []string{"folding", "fold in"},
		required: 4,
		desc:     "Folding means gently combining a light, airy mixture into a heavier one with a spatula, cutting down the middle and sweeping around the bowl to keep the air in.",
		tips: []string{
			"Add a third of the light mixture first to loosen the base, then fold in the rest.",
			"Stop as soon as no streaks remain — extra folding deflates the batter.",
		},
		alts: []string{
			"Stir very gently with a whisk in wide, slow strokes.",
		},
	},
	{
		name:     "deglaze",
		aliases:  []string{"deglazing"},
		required: 5,
		desc:     "Deglazing means pouring a splash of liquid into a hot pan to loosen and dissolve the browned bits stuck to the bottom.",
		tips: []string{
			"Take the pan off the flame before pouring in alcohol.",
			"Scrape with a wooden spoon while the liquid bubbles.",
		},
		alts: []string{
			"Add stock or water and simmer for a minute while scraping the pan.",
		},
	},
	{
		name:     "blanch",
		aliases:  []string{"blanching", "blanched"},
		required: 4,
		desc:     "Blanching means boiling food briefly, then plunging it into ice water to stop the cooking and lock in color.",
		tips: []string{
			"Salt the water generously and keep the ice bath ready before you start.",
		},
		alts: []string{
			"Steam the vegetables for 2-3 minutes and rinse under cold water.",
		},
	},
	{
		name:     "julienne",
		aliases:  []string{"julienned"},
		required: 5,
		desc:     "Julienne means cutting food into thin, even matchsticks, usually about 5cm long and a few millimetres wide.",
		tips: []string{
			"Square off the sides first so the pieces sit flat while you slice.",
		},
		alts: []string{
			"Use a coarse grater or a mandoline with a guard for similar thin strips.",
		},
	},
	{
		name:     "emulsify",
		aliases:  []string{"emulsifying", "emulsion"},
		required: 6,
		desc:     "Emulsifying means combining two liquids that don't naturally mix, like oil and vinegar, into one stable, creamy mixture by adding the oil slowly while whisking hard.",
		tips: []string{
			"Add the oil drop by drop at first; rushing is what breaks the sauce.",
			"A teaspoon of mustard helps hold the emulsion together.",
		},
		alts: []string{
			"Shake everything in a tightly closed jar for 30 seconds just before serving.",
			"Blend with an immersion blender, which is far more forgiving.",
		},
	},
	{
		name:     "temper",
		aliases:  []string{"tempering"},
		required: 7,
		desc:     "Tempering means slowly raising the temperature of a delicate ingredient, like eggs or chocolate, by adding small amounts of a hot liquid while whisking, so it doesn't curdle or seize.",
		tips: []string{
			"Ladle the hot liquid in a thin stream with one hand while whisking with the other.",
		},
		alts: []string{
			"Cook the mixture in a bowl set over barely simmering water, stirring constantly.",
		},
	},
	{
		name:     "brunoise",
		aliases:  []string{"brunoised"},
		required: 7,
		desc:     "Brunoise means cutting food into tiny, uniform cubes of about 3 millimetres, made by dicing julienne strips.",
		tips: []string{
			"Keep the knife tip on the board and let the blade rock through the strips.",
		},
		alts: []string{
			"A small neat dice is fine for almost every home recipe.",
			"Pulse briefly in a food processor, checking after every pulse.",
		},
	},
	{
		name:     "whisk",
		aliases:  []string{"whisking"},
		required: 2,
		desc:     "Whisking means beating ingredients rapidly with a wire whisk to blend them or to work air into them.",
		tips: []string{
			"Tilt the bowl and use quick circular wrist strokes rather than your whole arm.",
		},
		alts: []string{
			"A fork works for small amounts; it just takes a little longer.",
		},
	},
	{
		name:     "simmer",
		aliases:  []string{"simmering"},
		required: 2,
		desc:     "Simmering means keeping a liquid just below boiling, where small bubbles rise gently around the edge of the pot.",
		tips: []string{
			"If it bubbles hard, it's boiling — lower the heat until the surface barely moves.",
		},
		alts: []string{
			"Use the lowest stove setting with the lid ajar.",
		},
	},
	{
		name:     "sear",
		aliases:  []string{"searing", "seared"},
		required: 4,
		desc:     "Searing means cooking the surface of food at high heat until a deep brown crust forms, without cooking it through.",
		tips: []string{
			"Pat the food completely dry first — moisture is the enemy of a crust.",
			"Leave it alone once it hits the pan; moving it early tears the crust.",
		},
		alts: []string{
			"Brown over medium heat a little longer on each side.",
		},
	},
	{
		name:     "poach",
		aliases:  []string{"poaching", "poached"},
		required: 5,
		desc:     "Poaching means cooking food gently in liquid kept well below a boil, so delicate items hold their shape.",
		tips: []string{
			"The water should shimmer, never bubble.",
		},
		alts: []string{
			"Steam in a covered pan with a few spoonfuls of water instead.",
		},
	},
	{
		name:     "caramelize",
		aliases:  []string{"caramelise", "caramelizing", "caramelized"},
		required: 6,
		desc:     "Caramelizing means cooking sugars slowly until they brown and turn deeply sweet and nutty, as with onions cooked low for half an hour.",
		tips: []string{
			"It takes far longer than most recipes admit — plan on 30-40 minutes for onions.",
			"A splash of water rescues a pan that's browning too fast.",
		},
		alts: []string{
			"Soften the onions over medium heat for 10 minutes and accept a lighter color.",
		},
	},
	{
		name:     "knead",
		aliases:  []string{"kneading"},
		required: 4,
		desc:     "Kneading means working dough by pressing, folding and turning it until it becomes smooth and elastic.",
		tips: []string{
			"Push with the heel of your hand, fold, quarter-turn, repeat.",
			"Dough is ready when it springs back from a gentle poke.",
		},
		alts: []string{
			"Use a stand mixer with a dough hook on low for 8 minutes.",
			"Try a no-knead recipe with a long overnight rest.",
		},
	},
}

// NewKnowledgeBase 建立已播種的知識庫
func NewKnowledgeBase() *KnowledgeBase {
	kb := &KnowledgeBase{
		entries: make(map[string]common.TechniqueEntry, len(seedEntries)),
		aliases: make(map[string]string),
	}
	for _, e := range seedEntries {
		kb.entries[e.name] = common.TechniqueEntry{
			Name:               e.name,
			RequiredSkillLevel: e.required,
			Description:        e.desc,
			Tips:               e.tips,
			Alternatives:       e.alts,
		}
		for _, alias := range e.aliases {
			kb.aliases[alias] = e.name
		}
	}
	return kb
}

// Lookup 不分大小寫的名稱或別名查詢，查無回傳 nil
func (kb *KnowledgeBase) Lookup(name string) *common.TechniqueEntry {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		return nil
	}
	if canonical, ok := kb.aliases[key]; ok {
		key = canonical
	}
	if e, ok := kb.entries[key]; ok {
		cp := e
		return &cp
	}
	return nil
}

// LookupForSkill 依可見度規則查詢技法
// 只有 requiredSkillLevel <= userSkill + buffer 時才回傳；
// 落在緩衝區（required > userSkill）的條目必帶非空 alternatives
func (kb *KnowledgeBase) LookupForSkill(name string, userSkill, buffer int) *common.TechniqueEntry {
	e := kb.Lookup(name)
	if e == nil {
		return nil
	}
	userSkill = common.ClampSkillLevel(userSkill)
	if e.RequiredSkillLevel > userSkill+buffer {
		return nil
	}
	return e
}

// Keyword 文字偵測用的關鍵字與其正式技法名稱
type Keyword struct {
	Term      string
	Technique string
}

// Keywords 回傳所有可偵測的關鍵字（名稱加別名），長關鍵字在前
func (kb *KnowledgeBase) Keywords() []Keyword {
	out := make([]Keyword, 0, len(kb.entries)+len(kb.aliases))
	for name := range kb.entries {
		out = append(out, Keyword{Term: name, Technique: name})
	}
	for alias, name := range kb.aliases {
		out = append(out, Keyword{Term: alias, Technique: name})
	}
	// 長關鍵字優先，避免 "sauté" 先於 "sautéing" 截斷比對
	// 同長度依字母序，確保每次呼叫的偵測順序一致
	sort.Slice(out, func(i, j int) bool {
		if len(out[i].Term) != len(out[j].Term) {
			return len(out[i].Term) > len(out[j].Term)
		}
		return out[i].Term < out[j].Term
	})
	return out
}
