package adaptation

import (
	"strings"
	"unicode"

	"recipe-adapter/internal/core/technique"
)

// 規則表：所有文字偵測都走「表 + 單一迴圈」而非巢狀條件，方便增補與測試

// hazardRule 危險動作偵測規則
type hazardRule struct {
	category string
	patterns []string
	clause   string // 附加在指令後的安全提示
	warning  string // 整份食譜層級的安全警告
}

var hazardRules = []hazardRule{
	{
		category: "heat",
		patterns: []string{"hot oil", "high heat", "smoking", "preheat", "hot pan", "sizzle", "splatter", "sauté", "saute", "sear", "fry"},
		clause:   "keep the pan handle turned inward and never leave hot oil unattended",
		warning:  "This recipe works with high heat and hot oil. Keep a lid within reach to smother flare-ups, and never pour water into hot oil.",
	},
	{
		category: "sharp_tools",
		patterns: []string{"knife", "chop", "slice", "dice", "mince", "julienne", "cut", "peel", "mandoline"},
		clause:   "curl your fingertips under and keep the blade angled away from your hand",
		warning:  "This recipe involves a fair amount of knife work. Use a sharp knife on a stable board, and cut slowly with your guiding hand curled under.",
	},
	{
		category: "boiling_liquid",
		patterns: []string{"boil", "boiling", "blanch", "scald", "simmer", "steam"},
		clause:   "lower food into boiling water away from you to avoid splashes",
		warning:  "Boiling liquid is involved here. Use a pot large enough that it won't boil over, and tilt lids away from your face when lifting them.",
	},
	{
		category: "open_flame",
		patterns: []string{"flame", "broil", "torch", "flambé", "flambe", "grill"},
		clause:   "tie back loose clothing and keep flammable items away from the flame",
		warning:  "Open flame or broiler heat is involved. Clear the area around the burner and keep a fire-safe mitt nearby.",
	},
}

// vagueRule 模糊措辭解析規則
type vagueRule struct {
	pattern  string
	guidance string
}

var vagueRules = []vagueRule{
	{"to taste", "start with a small pinch, taste, and adjust a little at a time"},
	{"until done", "set a timer for the low end of the range, then check: juices should run clear and a knife tip should slide in easily"},
	{"as needed", "begin with the smallest amount mentioned and add gradually"},
	{"a splash", "about 1-2 tablespoons"},
	{"a handful", "roughly 1/4 cup"},
	{"until golden", "look for an even light-brown color, about the shade of toast"},
	{"season well", "use about 1/2 teaspoon of salt per pound and a few grinds of pepper, then taste"},
}

// equipmentRule 設備關鍵字與其標準名稱，長關鍵字在前避免誤截
type equipmentRule struct {
	pattern string
	item    string
}

var equipmentRules = []equipmentRule{
	{"pressure cooker", "pressure cooker"},
	{"food processor", "food processor"},
	{"slow cooker", "slow cooker"},
	{"stand mixer", "stand mixer"},
	{"hand mixer", "hand mixer"},
	{"dutch oven", "dutch oven"},
	{"thermometer", "thermometer"},
	{"mandoline", "mandoline"},
	{"sous vide", "sous vide circulator"},
	{"blender", "blender"},
	{"broiler", "oven"},
	{"oven", "oven"},
	{"grill", "grill"},
	{"wok", "wok"},
}

// containsWord 判斷 text 是否含有獨立出現的 term（不分大小寫，詞界為非字母）
// 避免 "sear" 誤中 "season"、"temper" 誤中 "temperature"
func containsWord(text, term string) bool {
	text = strings.ToLower(text)
	term = strings.ToLower(term)
	if term == "" {
		return false
	}

	for start := 0; ; {
		idx := strings.Index(text[start:], term)
		if idx < 0 {
			return false
		}
		idx += start

		beforeOK := idx == 0 || !isWordRune(lastRuneBefore(text, idx))
		end := idx + len(term)
		afterOK := end >= len(text) || !isWordRune(firstRuneAt(text, end))
		if beforeOK && afterOK {
			return true
		}
		start = idx + len(term)
	}
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r)
}

func lastRuneBefore(s string, idx int) rune {
	r := rune(0)
	for _, c := range s[:idx] {
		r = c
	}
	return r
}

func firstRuneAt(s string, idx int) rune {
	for _, c := range s[idx:] {
		return c
	}
	return 0
}

// detectTechniques 掃描指令中的技法關鍵字
// 回傳首次出現順序的技法名稱與出現次數
func detectTechniques(instructions []string, kb *technique.KnowledgeBase) ([]string, map[string]int) {
	keywords := kb.Keywords()
	counts := make(map[string]int)
	var order []string

	for _, instruction := range instructions {
		for _, kw := range keywords {
			if containsWord(instruction, kw.Term) {
				if counts[kw.Technique] == 0 {
					order = append(order, kw.Technique)
				}
				counts[kw.Technique]++
			}
		}
	}
	return order, counts
}

// detectTechniquesInText 單一指令中的技法（首次出現順序）
func detectTechniquesInText(text string, kb *technique.KnowledgeBase) []string {
	var found []string
	seen := make(map[string]bool)
	for _, kw := range kb.Keywords() {
		if !seen[kw.Technique] && containsWord(text, kw.Term) {
			seen[kw.Technique] = true
			found = append(found, kw.Technique)
		}
	}
	return found
}

// detectHazards 單一指令命中的危險類別（依規則表順序）
func detectHazards(text string) []hazardRule {
	var hits []hazardRule
	for _, rule := range hazardRules {
		for _, pattern := range rule.patterns {
			if containsWord(text, pattern) {
				hits = append(hits, rule)
				break
			}
		}
	}
	return hits
}

// detectHazardCategories 整份指令集中出現過的危險類別（去重，依規則表順序）
func detectHazardCategories(instructions []string) []hazardRule {
	seen := make(map[string]bool)
	var hits []hazardRule
	for _, instruction := range instructions {
		for _, rule := range detectHazards(instruction) {
			if !seen[rule.category] {
				seen[rule.category] = true
				hits = append(hits, rule)
			}
		}
	}
	return hits
}

// detectVaguePhrases 單一指令命中的模糊措辭規則
func detectVaguePhrases(text string) []vagueRule {
	lower := strings.ToLower(text)
	var hits []vagueRule
	for _, rule := range vagueRules {
		if strings.Contains(lower, rule.pattern) {
			hits = append(hits, rule)
		}
	}
	return hits
}

// detectEquipment 指令集中提及的設備（去重，首次出現順序）
func detectEquipment(instructions []string) []string {
	seen := make(map[string]bool)
	var items []string
	for _, instruction := range instructions {
		lower := strings.ToLower(instruction)
		for _, rule := range equipmentRules {
			if strings.Contains(lower, rule.pattern) && !seen[rule.item] {
				seen[rule.item] = true
				items = append(items, rule.item)
			}
		}
	}
	return items
}
