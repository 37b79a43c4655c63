package models

import (
	"gizi-go-worker/structs"
	"time"
)

type FoodItem struct {
	ID           int64      `gorm:"column:id;primary_key" json:"id"`
	ExternalID   string     `gorm:"column:external_id" json:"external_id"`
	Name         string     `gorm:"column:name" json:"name"`
	Calories     float64    `gorm:"column:calories" json:"calories"`
	Protein      float64    `gorm:"column:protein" json:"protein"`
	Fat          float64    `gorm:"column:fat" json:"fat"`
	Carbohydrate float64    `gorm:"column:carbohydrate" json:"carbohydrate"`
	Image        string     `gorm:"column:image" json:"image"`
	Role         string     `gorm:"column:role" json:"role"`
	CreatedAt    *time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt    *time.Time `gorm:"column:updated_at" json:"updated_at"`
}

// TableName sets the insert table name for this struct type
func (f *FoodItem) TableName() string {
	return "food_items"
}

func (f *FoodItem) ToStruct() structs.FoodItem {
	return structs.FoodItem{
		ID:           f.ExternalID,
		Name:         f.Name,
		Calories:     f.Calories,
		Protein:      f.Protein,
		Fat:          f.Fat,
		Carbohydrate: f.Carbohydrate,
		Image:        f.Image,
		Role:         f.Role,
	}
}

func NewFoodItem(item structs.FoodItem, now time.Time) FoodItem {
	return FoodItem{
		ExternalID:   item.ID,
		Name:         item.Name,
		Calories:     item.Calories,
		Protein:      item.Protein,
		Fat:          item.Fat,
		Carbohydrate: item.Carbohydrate,
		Image:        item.Image,
		Role:         item.Role,
		CreatedAt:    &now,
		UpdatedAt:    &now,
	}
}
