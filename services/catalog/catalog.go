// Package catalog loads the static nutrition catalog and keeps it in memory.
package catalog

import (
	"encoding/json"
	"fmt"
	"gizi-go-worker/enums"
	"gizi-go-worker/models"
	"gizi-go-worker/structs"
	"io/ioutil"
	"sort"
	"strings"
	"sync"

	"github.com/jinzhu/gorm"
)

const searchLimit = 10

type Loader interface {
	Load() ([]structs.FoodItem, error)
}

type FileLoader struct {
	Path string
}

func (f FileLoader) Load() ([]structs.FoodItem, error) {
	data, err := ioutil.ReadFile(f.Path)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", f.Path, err)
	}
	return Parse(data)
}

type DatabaseLoader struct {
	DB *gorm.DB
}

func (d DatabaseLoader) Load() ([]structs.FoodItem, error) {
	var foodItemEntities []models.FoodItem
	if err := d.DB.Order("id").Find(&foodItemEntities).Error; err != nil {
		return nil, fmt.Errorf("query food_items: %w", err)
	}
	items := make([]structs.FoodItem, 0, len(foodItemEntities))
	for _, entity := range foodItemEntities {
		items = append(items, entity.ToStruct())
	}
	return items, nil
}

// Parse 接受一般的陣列，或是 {"breakfast": [...], "dinner": [...]} 這種分組格式
func Parse(data []byte) ([]structs.FoodItem, error) {
	var items []structs.FoodItem
	if err := json.Unmarshal(data, &items); err == nil {
		return items, nil
	}

	var grouped map[string][]structs.FoodItem
	if err := json.Unmarshal(data, &grouped); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	keys := make([]string, 0, len(grouped))
	for key := range grouped {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		items = append(items, grouped[key]...)
	}
	return items, nil
}

// Service 每個 process 只讀一次資料，讀取失敗不快取，下次再試
type Service struct {
	sync.Mutex
	loader Loader
	items  []structs.FoodItem
	loaded bool
}

func NewService(loader Loader) *Service {
	return &Service{loader: loader}
}

// NewServiceFromConfig 依 catalog.source 決定從檔案或資料庫讀取
func NewServiceFromConfig(source, path string, db *gorm.DB) (*Service, error) {
	switch source {
	case enums.CatalogFromDatabase:
		if db == nil {
			return nil, fmt.Errorf("catalog source %q needs a database connection", source)
		}
		return NewService(DatabaseLoader{DB: db}), nil
	case enums.CatalogFromFile, "":
		return NewService(FileLoader{Path: path}), nil
	}
	return nil, fmt.Errorf("unknown catalog source %q", source)
}

// Items 回傳的 slice 不可修改
func (s *Service) Items() ([]structs.FoodItem, error) {
	s.Lock()
	defer s.Unlock()

	if s.loaded {
		return s.items, nil
	}
	items, err := s.loader.Load()
	if err != nil {
		return nil, err
	}
	s.items = items
	s.loaded = true
	return s.items, nil
}

// Search 名稱不分大小寫的子字串搜尋，最多 10 筆
func Search(items []structs.FoodItem, query string) []structs.FoodItem {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return nil
	}
	var result []structs.FoodItem
	for _, item := range items {
		if strings.Contains(strings.ToLower(item.Name), query) {
			result = append(result, item)
			if len(result) == searchLimit {
				break
			}
		}
	}
	return result
}
