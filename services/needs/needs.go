// Package needs estimates daily and per-meal energy and protein targets.
package needs

import (
	"fmt"
	"gizi-go-worker/enums"
	"gizi-go-worker/services"
	"gizi-go-worker/structs"
	"math"
	"strings"
)

const (
	DefaultActivityFactor = 1.3

	proteinEnergyShare = 0.15
	kcalPerGramProtein = 4
	breakfastShare     = 0.25
	dinnerShare        = 0.30
)

type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

type Target struct {
	Calories int `json:"calories"`
	Protein  int `json:"protein"`
}

type NutritionTargets struct {
	Daily     Target `json:"daily"`
	Breakfast Target `json:"breakfast"`
	Dinner    Target `json:"dinner"`
}

// Profile 已驗證過的輸入
type Profile struct {
	Category       Category
	Age            float64
	Weight         float64
	Height         float64
	Gender         string
	ActivityFactor float64
}

// NewProfile 驗證表單資料並轉成 Profile
func NewProfile(s structs.SubjectProfile) (Profile, error) {
	var p Profile

	category, err := ParseCategory(s.Category, s.Trimester, s.BreastfeedingAge)
	if err != nil {
		return p, err
	}

	for _, field := range []struct {
		name  string
		value float64
	}{
		{"age", s.Age.Float64()},
		{"weight", s.Weight.Float64()},
		{"height", s.Height.Float64()},
	} {
		if math.IsNaN(field.value) || math.IsInf(field.value, 0) || field.value <= 0 {
			return p, &ValidationError{Field: field.name, Message: "must be a positive number"}
		}
	}

	activity := s.ActivityLevel.Float64()
	if math.IsNaN(activity) || math.IsInf(activity, 0) || activity < 0 {
		return p, &ValidationError{Field: "activity_level", Message: "must not be negative"}
	}
	if activity == 0 {
		activity = DefaultActivityFactor
	}

	return Profile{
		Category:       category,
		Age:            s.Age.Float64(),
		Weight:         s.Weight.Float64(),
		Height:         s.Height.Float64(),
		Gender:         normalizeGender(s.Gender),
		ActivityFactor: activity,
	}, nil
}

// normalizeGender 空白或 male 用男性公式，其他任何值都用女性公式
func normalizeGender(gender string) string {
	switch strings.ToLower(strings.TrimSpace(gender)) {
	case "", enums.GenderMale:
		return enums.GenderMale
	}
	return enums.GenderFemale
}

// Estimate validates the submitted profile and returns its targets.
func Estimate(s structs.SubjectProfile) (NutritionTargets, error) {
	p, err := NewProfile(s)
	if err != nil {
		return NutritionTargets{}, err
	}
	return EstimateProfile(p), nil
}

func EstimateProfile(p Profile) NutritionTargets {
	totalCalories := BMR(p)*p.ActivityFactor + p.Category.calorieAddition()
	protein := totalCalories*proteinEnergyShare/kcalPerGramProtein + p.Category.proteinAddition()

	// 早餐、晚餐各自四捨五入，不會剛好等於每日的 55%
	return NutritionTargets{
		Daily: Target{
			Calories: services.Round(totalCalories),
			Protein:  services.Round(protein),
		},
		Breakfast: Target{
			Calories: services.Round(totalCalories * breakfastShare),
			Protein:  services.Round(protein * breakfastShare),
		},
		Dinner: Target{
			Calories: services.Round(totalCalories * dinnerShare),
			Protein:  services.Round(protein * dinnerShare),
		},
	}
}

// BMR Harris-Benedict
func BMR(p Profile) float64 {
	if p.Category.usesMaleFormula(p.Gender) {
		return 66.5 + 13.75*p.Weight + 5.003*p.Height - 6.75*p.Age
	}
	return 655.1 + 9.563*p.Weight + 1.850*p.Height - 4.676*p.Age
}
