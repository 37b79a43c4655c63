package catalog

import (
	"fmt"
	"gizi-go-worker/models"
	"gizi-go-worker/structs"
	"time"

	"github.com/jinzhu/gorm"
	gormbulk "github.com/t-tiger/gorm-bulk-insert/v2"
)

const importChunkSize = 500

// Import 把整份 catalog 寫進 food_items，先清空舊資料
func Import(db *gorm.DB, items []structs.FoodItem) error {
	now := time.Now()
	records := make([]interface{}, 0, len(items))
	for _, item := range items {
		if item.Name == "" {
			continue
		}
		records = append(records, models.NewFoodItem(item, now))
	}

	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.AutoMigrate(&models.FoodItem{}).Error; err != nil {
			return fmt.Errorf("migrate food_items: %w", err)
		}
		if err := tx.Delete(&models.FoodItem{}).Error; err != nil {
			return fmt.Errorf("clear food_items: %w", err)
		}
		if len(records) == 0 {
			return nil
		}
		if err := gormbulk.BulkInsert(tx, records, importChunkSize, "ID"); err != nil {
			return fmt.Errorf("bulk insert food_items: %w", err)
		}
		return nil
	})
}
