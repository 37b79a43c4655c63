package menu

import (
	"gizi-go-worker/enums"
	"gizi-go-worker/structs"
	"strings"
	"unicode"
)

type Role string

const (
	Carbohydrate Role = enums.RoleCarbohydrate
	Vegetable    Role = enums.RoleVegetable
	Protein      Role = enums.RoleProtein
)

// Classifier 判斷一筆食物在一餐中扮演的角色，可同時屬於多個角色
type Classifier interface {
	Roles(item structs.FoodItem) []Role
}

// 印尼文關鍵字以小寫比對名稱子字串
var (
	CarbohydrateKeywords = []string{"nasi", "kentang", "mie"}
	VegetableKeywords    = []string{"sayur", "bayam", "kangkung", "sawi", "capcay", "wortel", "brokoli", "buncis", "sop"}
	ProteinKeywords      = []string{"ayam", "ikan", "telur", "daging", "tahu", "tempe", "udang", "hati"}
)

// 英文關鍵字要整個字相符 (允許複數 s)，避免 "price" 被當成 rice
var (
	CarbohydrateWords = []string{"rice", "potato", "potatoes", "noodle"}
	VegetableWords    = []string{"vegetable", "veggie", "spinach", "soup"}
	ProteinWords      = []string{"chicken", "fish", "egg", "meat", "tofu", "shrimp", "liver"}
)

type KeywordClassifier struct {
	Carbohydrate []string
	Vegetable    []string
	Protein      []string

	CarbohydrateWords []string
	VegetableWords    []string
	ProteinWords      []string
}

// DefaultClassifier 使用上面的關鍵字表
func DefaultClassifier() KeywordClassifier {
	return KeywordClassifier{
		Carbohydrate:      CarbohydrateKeywords,
		Vegetable:         VegetableKeywords,
		Protein:           ProteinKeywords,
		CarbohydrateWords: CarbohydrateWords,
		VegetableWords:    VegetableWords,
		ProteinWords:      ProteinWords,
	}
}

func (k KeywordClassifier) Roles(item structs.FoodItem) []Role {
	name := strings.ToLower(item.Name)
	words := splitWords(name)
	var roles []Role

	isCarb := containsAny(name, k.Carbohydrate) || containsWord(words, k.CarbohydrateWords)
	if isCarb {
		roles = append(roles, Carbohydrate)
	}
	if containsAny(name, k.Vegetable) || containsWord(words, k.VegetableWords) {
		roles = append(roles, Vegetable)
	}
	// 主食類的菜名 (例如 nasi ayam) 不算進蛋白質
	if !isCarb && (containsAny(name, k.Protein) || containsWord(words, k.ProteinWords)) {
		roles = append(roles, Protein)
	}
	return roles
}

// TagClassifier 優先使用資料本身標記的 role，沒有標記才退回關鍵字
type TagClassifier struct {
	Fallback Classifier
}

func (t TagClassifier) Roles(item structs.FoodItem) []Role {
	switch Role(strings.ToLower(strings.TrimSpace(item.Role))) {
	case Carbohydrate:
		return []Role{Carbohydrate}
	case Vegetable:
		return []Role{Vegetable}
	case Protein:
		return []Role{Protein}
	}
	if t.Fallback == nil {
		return nil
	}
	return t.Fallback.Roles(item)
}

func containsAny(name string, keywords []string) bool {
	for _, k := range keywords {
		if k != "" && strings.Contains(name, k) {
			return true
		}
	}
	return false
}

func splitWords(name string) []string {
	return strings.FieldsFunc(name, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

func containsWord(words, keywords []string) bool {
	for _, w := range words {
		for _, k := range keywords {
			if k != "" && (w == k || w == k+"s") {
				return true
			}
		}
	}
	return false
}
