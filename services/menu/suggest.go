package menu

import (
	"gizi-go-worker/structs"
	"math/rand"
	"strings"
)

const (
	suggestionCount     = 5
	minSuggestProtein   = 5
	suggestCalorieSlack = 100
)

// 點心、調味料和白飯不列入晚餐建議
var SuggestBlacklist = []string{"enting", "wijen", "kerupuk", "permen", "kue", "biskuit", "snack", "nasi", "cokelat", "keripik", "sambal"}

type VarietyGroup struct {
	Name     string
	Keywords []string
}

// VarietyGroups 每組最多挑一道，讓建議不會全是同一種蛋白質
var VarietyGroups = []VarietyGroup{
	{"ikan", []string{"ikan", "lele", "tongkol", "nila", "bandeng", "gurame", "udang", "cumi"}},
	{"ayam", []string{"ayam", "bebek"}},
	{"daging", []string{"daging", "sapi", "kambing", "hati"}},
	{"telur", []string{"telur", "puyuh"}},
	{"nabati", []string{"tempe", "tahu"}},
}

// SuggestDishes 挑出最多 5 道晚餐主菜。
// 隨機性只來自 rng，同一個 seed 會得到同樣的結果；rng 為 nil 時不打亂順序。
func SuggestDishes(catalog []structs.FoodItem, targetCalories float64, rng *rand.Rand) []structs.FoodItem {
	var candidates []structs.FoodItem
	for _, item := range catalog {
		name := strings.ToLower(item.Name)
		if containsAny(name, SuggestBlacklist) || item.Protein <= minSuggestProtein {
			continue
		}
		if item.Calories <= targetCalories+suggestCalorieSlack {
			candidates = append(candidates, item)
		}
	}

	picked := make(map[int]bool)
	var suggestions []int
	for _, group := range VarietyGroups {
		var groupIdx []int
		for i, item := range candidates {
			if containsAny(strings.ToLower(item.Name), group.Keywords) {
				groupIdx = append(groupIdx, i)
			}
		}
		if len(groupIdx) == 0 {
			continue
		}
		choice := groupIdx[pick(rng, len(groupIdx))]
		if !picked[choice] {
			picked[choice] = true
			suggestions = append(suggestions, choice)
		}
	}

	if len(suggestions) < suggestionCount {
		var remaining []int
		for i := range candidates {
			if !picked[i] {
				remaining = append(remaining, i)
			}
		}
		shuffle(rng, remaining)
		need := suggestionCount - len(suggestions)
		if need > len(remaining) {
			need = len(remaining)
		}
		suggestions = append(suggestions, remaining[:need]...)
	}

	seen := make(map[string]bool)
	var result []structs.FoodItem
	for _, i := range suggestions {
		item := candidates[i]
		if seen[item.Name] {
			continue
		}
		seen[item.Name] = true
		result = append(result, item)
	}

	shuffleItems(rng, result)
	if len(result) > suggestionCount {
		result = result[:suggestionCount]
	}
	return result
}

func pick(rng *rand.Rand, n int) int {
	if rng == nil {
		return 0
	}
	return rng.Intn(n)
}

func shuffle(rng *rand.Rand, idx []int) {
	if rng == nil {
		return
	}
	rng.Shuffle(len(idx), func(i, j int) { idx[i], idx[j] = idx[j], idx[i] })
}

func shuffleItems(rng *rand.Rand, items []structs.FoodItem) {
	if rng == nil {
		return
	}
	rng.Shuffle(len(items), func(i, j int) { items[i], items[j] = items[j], items[i] })
}
