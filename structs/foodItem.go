package structs

import "encoding/json"

// FoodItem 營養資料庫中的一筆食物，數值以一份為單位
type FoodItem struct {
	ID           string  `json:"id,omitempty"`
	Name         string  `json:"name"`
	Calories     float64 `json:"calories"`
	Protein      float64 `json:"protein"`
	Fat          float64 `json:"fat"`
	Carbohydrate float64 `json:"carbohydrate"`
	Image        string  `json:"image,omitempty"`
	Role         string  `json:"role,omitempty"`
}

// 資料來源的欄位名稱不一致 (英文/印尼文)，全部收進來再挑第一個有值的
type rawFoodItem struct {
	ID           json.RawMessage `json:"id"`
	Name         string          `json:"name"`
	Nama         string          `json:"nama"`
	Calories     Number          `json:"calories"`
	Kalori       Number          `json:"kalori"`
	Protein      Number          `json:"protein"`
	Proteins     Number          `json:"proteins"`
	Fat          Number          `json:"fat"`
	Lemak        Number          `json:"lemak"`
	Carbohydrate Number          `json:"carbohydrate"`
	Karbohidrat  Number          `json:"karbohidrat"`
	Image        string          `json:"image"`
	Gambar       string          `json:"gambar"`
	Role         string          `json:"role"`
}

func (f *FoodItem) UnmarshalJSON(data []byte) error {
	var raw rawFoodItem
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*f = FoodItem{
		ID:           rawID(raw.ID),
		Name:         firstString(raw.Name, raw.Nama),
		Calories:     firstNumber(raw.Calories, raw.Kalori),
		Protein:      firstNumber(raw.Protein, raw.Proteins),
		Fat:          firstNumber(raw.Fat, raw.Lemak),
		Carbohydrate: firstNumber(raw.Carbohydrate, raw.Karbohidrat),
		Image:        firstString(raw.Image, raw.Gambar),
		Role:         raw.Role,
	}
	return nil
}

func rawID(data json.RawMessage) string {
	if len(data) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		return s
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err == nil {
		return n.String()
	}
	return ""
}

func firstString(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func firstNumber(values ...Number) float64 {
	for _, v := range values {
		if v != 0 {
			return v.Float64()
		}
	}
	return 0
}
