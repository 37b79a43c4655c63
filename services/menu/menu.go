// Package menu builds meal suggestions from the nutrition catalog.
package menu

import (
	"gizi-go-worker/services"
	"gizi-go-worker/structs"
	"math"
	"strings"
)

type Nutrition struct {
	Calories     int `json:"calories"`
	Protein      int `json:"protein"`
	Fat          int `json:"fat"`
	Carbohydrate int `json:"carbohydrate"`
}

// MenuCombination 一份主食 + 一份蔬菜 + 一份蛋白質
type MenuCombination struct {
	Name      string             `json:"name"`
	Recipe    []string           `json:"recipe"`
	Items     []structs.FoodItem `json:"items"`
	Nutrition Nutrition          `json:"nutrition"`
}

type Combiner struct {
	Classifier Classifier
}

func NewCombiner(classifier Classifier) *Combiner {
	if classifier == nil {
		classifier = DefaultClassifier()
	}
	return &Combiner{Classifier: classifier}
}

// CombineMenu 使用預設關鍵字表
func CombineMenu(catalog []structs.FoodItem, targetCalories float64) *MenuCombination {
	return NewCombiner(nil).Combine(catalog, targetCalories)
}

// Partition 依角色分組，保留資料原本的順序
func (c *Combiner) Partition(catalog []structs.FoodItem) (carbs, veggies, proteins []structs.FoodItem) {
	for _, item := range catalog {
		for _, role := range c.Classifier.Roles(item) {
			switch role {
			case Carbohydrate:
				carbs = append(carbs, item)
			case Vegetable:
				veggies = append(veggies, item)
			case Protein:
				proteins = append(proteins, item)
			}
		}
	}
	return carbs, veggies, proteins
}

// Combine 窮舉所有 主食×蔬菜×蛋白質 組合，取總熱量最接近 targetCalories 的一組。
// 任一組為空就回傳 nil；熱量差相同時保留先找到的組合。
// 複雜度是三組大小相乘，資料庫每組只有數十筆時才適用。
func (c *Combiner) Combine(catalog []structs.FoodItem, targetCalories float64) *MenuCombination {
	carbs, veggies, proteins := c.Partition(catalog)
	if len(carbs) == 0 || len(veggies) == 0 || len(proteins) == 0 {
		return nil
	}

	var best [3]int
	smallestDiff := math.Inf(1)
	for i, carb := range carbs {
		for j, veg := range veggies {
			for k, protein := range proteins {
				total := carb.Calories + veg.Calories + protein.Calories
				if diff := math.Abs(total - targetCalories); diff < smallestDiff {
					smallestDiff = diff
					best = [3]int{i, j, k}
				}
			}
		}
	}

	return newCombination(carbs[best[0]], veggies[best[1]], proteins[best[2]])
}

func newCombination(items ...structs.FoodItem) *MenuCombination {
	var calories, protein, fat, carbohydrate float64
	names := make([]string, 0, len(items))
	for _, item := range items {
		names = append(names, item.Name)
		calories += item.Calories
		protein += item.Protein
		fat += item.Fat
		carbohydrate += item.Carbohydrate
	}
	return &MenuCombination{
		Name:   strings.Join(names, " + "),
		Recipe: names,
		Items:  items,
		Nutrition: Nutrition{
			Calories:     services.Round(calories),
			Protein:      services.Round(protein),
			Fat:          services.Round(fat),
			Carbohydrate: services.Round(carbohydrate),
		},
	}
}

// NearestItem 舊版的配對方式：只挑熱量最接近的單一品項
func NearestItem(items []structs.FoodItem, targetCalories float64) *structs.FoodItem {
	if len(items) == 0 {
		return nil
	}
	best := 0
	for i := 1; i < len(items); i++ {
		if math.Abs(items[i].Calories-targetCalories) < math.Abs(items[best].Calories-targetCalories) {
			best = i
		}
	}
	item := items[best]
	return &item
}
