package needs

import (
	"gizi-go-worker/enums"
	"strings"
)

// Category 只會是 Child、Pregnant、Breastfeeding 其中之一
type Category interface {
	Name() string
	// 兒童一律用男性 Harris-Benedict 係數，不看填寫的性別
	usesMaleFormula(gender string) bool
	calorieAddition() float64
	proteinAddition() float64
}

type Child struct{}

type Pregnant struct {
	Trimester string
}

type Breastfeeding struct {
	Stage string
}

func (Child) Name() string                       { return enums.CategoryChild }
func (Child) usesMaleFormula(gender string) bool { return true }
func (Child) calorieAddition() float64           { return 0 }
func (Child) proteinAddition() float64           { return 0 }

func (Pregnant) Name() string { return enums.CategoryPregnant }

func (Pregnant) usesMaleFormula(gender string) bool { return gender != enums.GenderFemale }

func (p Pregnant) calorieAddition() float64 {
	if p.Trimester == enums.TrimesterFirst {
		return 180
	}
	return 300
}

func (Pregnant) proteinAddition() float64 { return 20 }

func (Breastfeeding) Name() string { return enums.CategoryBreastfeeding }

func (Breastfeeding) usesMaleFormula(gender string) bool { return gender != enums.GenderFemale }

func (b Breastfeeding) calorieAddition() float64 {
	if b.Stage == enums.BreastfeedingEarly {
		return 330
	}
	return 400
}

func (Breastfeeding) proteinAddition() float64 { return 20 }

// ParseCategory 依類別檢查對應的必填欄位：懷孕要 trimester，哺乳要 stage
func ParseCategory(name, trimester, stage string) (Category, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case enums.CategoryChild:
		return Child{}, nil
	case enums.CategoryPregnant:
		switch trimester {
		case enums.TrimesterFirst, enums.TrimesterSecond, enums.TrimesterThird:
			return Pregnant{Trimester: trimester}, nil
		case "":
			return nil, &ValidationError{Field: "trimester", Message: "trimester is required for pregnant"}
		default:
			return nil, &ValidationError{Field: "trimester", Message: "trimester must be 1, 2 or 3"}
		}
	case enums.CategoryBreastfeeding:
		switch stage {
		case enums.BreastfeedingEarly, enums.BreastfeedingLate:
			return Breastfeeding{Stage: stage}, nil
		case "":
			return nil, &ValidationError{Field: "breastfeeding_age", Message: "breastfeeding_age is required for breastfeeding"}
		default:
			return nil, &ValidationError{Field: "breastfeeding_age", Message: "breastfeeding_age must be 0-6 or >6"}
		}
	case "":
		return nil, &ValidationError{Field: "category", Message: "category is required"}
	}
	return nil, &ValidationError{Field: "category", Message: "unknown category " + name}
}
