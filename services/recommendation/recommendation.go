// Package recommendation assembles the full nutrition recommendation for one subject.
package recommendation

import (
	"gizi-go-worker/enums"
	"gizi-go-worker/services"
	"gizi-go-worker/services/anemia"
	"gizi-go-worker/services/menu"
	"gizi-go-worker/services/needs"
	"gizi-go-worker/structs"
)

var (
	IronRichFoods     = []string{"Hati ayam", "Daging sapi", "Ikan kembung", "Bayam", "Kacang hijau"}
	FolateRichFoods   = []string{"Bayam", "Brokoli", "Kacang merah", "Jeruk", "Alpukat"}
	VitaminCRichFoods = []string{"Jeruk", "Tomat", "Jambu biji", "Paprika", "Strawberry"}
)

type IMTStatus struct {
	Status string `json:"status"`
	Color  string `json:"color"`
}

// MealRecommendation Found 為 false 時前端要顯示「找不到菜單」
type MealRecommendation struct {
	Found bool                  `json:"found"`
	Menu  *menu.MenuCombination `json:"menu,omitempty"`
}

type Result struct {
	SessionID       string                 `json:"session_id"`
	Category        string                 `json:"category"`
	IMT             float64                `json:"imt"`
	IMTStatus       IMTStatus              `json:"imt_status"`
	AnemiaRisk      anemia.Assessment      `json:"anemia_risk"`
	Needs           needs.NutritionTargets `json:"needs"`
	Breakfast       MealRecommendation     `json:"breakfast"`
	Dinner          MealRecommendation     `json:"dinner"`
	TTDFrequency    string                 `json:"ttd_frequency"`
	IronRichFoods   []string               `json:"iron_rich_foods"`
	FolateRichFoods []string               `json:"folat_rich_foods"`
	VitCRichFoods   []string               `json:"vit_c_rich_foods"`
}

type Builder struct {
	Combiner *menu.Combiner
}

func NewBuilder(combiner *menu.Combiner) *Builder {
	if combiner == nil {
		combiner = menu.NewCombiner(nil)
	}
	return &Builder{Combiner: combiner}
}

// Build 使用預設的關鍵字分類
func Build(session structs.SessionContext, profile structs.SubjectProfile, responses anemia.Responses, catalog []structs.FoodItem) (*Result, error) {
	return NewBuilder(nil).Build(session, profile, responses, catalog)
}

// Build 依序計算需求、貧血風險、早餐與晚餐組合。
// 只會回傳 needs.ValidationError 或 anemia.IncompleteResponseError。
func (b *Builder) Build(session structs.SessionContext, profile structs.SubjectProfile, responses anemia.Responses, catalog []structs.FoodItem) (*Result, error) {
	p, err := needs.NewProfile(profile)
	if err != nil {
		return nil, err
	}
	targets := needs.EstimateProfile(p)

	risk, err := anemia.Score(responses)
	if err != nil {
		return nil, err
	}

	imt := IMT(p.Weight, p.Height)
	category := p.Category.Name()

	return &Result{
		SessionID:       session.SessionID,
		Category:        category,
		IMT:             services.RoundTo(imt, 1),
		IMTStatus:       StatusOf(category, imt),
		AnemiaRisk:      risk,
		Needs:           targets,
		Breakfast:       b.meal(catalog, targets.Breakfast.Calories),
		Dinner:          b.meal(catalog, targets.Dinner.Calories),
		TTDFrequency:    TTDFrequency(category),
		IronRichFoods:   IronRichFoods,
		FolateRichFoods: FolateRichFoods,
		VitCRichFoods:   VitaminCRichFoods,
	}, nil
}

func (b *Builder) meal(catalog []structs.FoodItem, targetCalories int) MealRecommendation {
	combination := b.Combiner.Combine(catalog, float64(targetCalories))
	return MealRecommendation{Found: combination != nil, Menu: combination}
}

// IMT 身高單位為公分
func IMT(weight, heightCM float64) float64 {
	height := heightCM / 100
	return weight / (height * height)
}

// StatusOf 兒童使用較低的門檻
func StatusOf(category string, imt float64) IMTStatus {
	if category == enums.CategoryChild {
		switch {
		case imt < 14:
			return IMTStatus{"Gizi Kurang", enums.ColorYellow}
		case imt < 18.5:
			return IMTStatus{"Gizi Baik", enums.ColorGreen}
		default:
			return IMTStatus{"Gizi Lebih", enums.ColorOrange}
		}
	}
	switch {
	case imt < 18.5:
		return IMTStatus{"Kurus", enums.ColorYellow}
	case imt < 25:
		return IMTStatus{"Normal", enums.ColorGreen}
	case imt < 30:
		return IMTStatus{"Gemuk", enums.ColorOrange}
	default:
		return IMTStatus{"Obesitas", enums.ColorRed}
	}
}

func TTDFrequency(category string) string {
	switch category {
	case enums.CategoryPregnant:
		return "1 tablet/hari"
	case enums.CategoryChild:
		return "1 tablet/minggu (Rematri)"
	default:
		return "Sesuai anjuran"
	}
}
