package catalog

import (
	"errors"
	"fmt"
	"gizi-go-worker/structs"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"
)

type countingLoader struct {
	calls int
	fail  bool
}

func (c *countingLoader) Load() ([]structs.FoodItem, error) {
	c.calls++
	if c.fail {
		return nil, errors.New("catalog unavailable")
	}
	return []structs.FoodItem{{Name: "Nasi Putih", Calories: 175}}, nil
}

func TestParse(t *testing.T) {
	t.Run("Array", func(t *testing.T) {
		items, err := Parse([]byte(`[{"name": "Nasi Putih", "calories": 175}, {"nama": "Tahu", "kalori": 80}]`))
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if len(items) != 2 || items[1].Name != "Tahu" || items[1].Calories != 80 {
			t.Errorf("unexpected items %+v", items)
		}
	})

	t.Run("Grouped", func(t *testing.T) {
		items, err := Parse([]byte(`{"dinner": [{"name": "Ikan Bakar"}], "breakfast": [{"name": "Bubur Ayam"}]}`))
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if len(items) != 2 || items[0].Name != "Bubur Ayam" || items[1].Name != "Ikan Bakar" {
			t.Errorf("unexpected items %+v", items)
		}
	})

	t.Run("Invalid", func(t *testing.T) {
		if _, err := Parse([]byte(`"nope"`)); err == nil {
			t.Fatal("Expected an error for invalid catalog, got nil")
		}
	})
}

func TestFileLoader(t *testing.T) {
	dir, err := ioutil.TempDir("", "catalog")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "nutrition.json")
	if err := ioutil.WriteFile(path, []byte(`[{"name": "Sayur Asem", "calories": 60}]`), 0644); err != nil {
		t.Fatal(err)
	}

	items, err := FileLoader{Path: path}.Load()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(items) != 1 || items[0].Name != "Sayur Asem" {
		t.Errorf("unexpected items %+v", items)
	}

	if _, err := (FileLoader{Path: filepath.Join(dir, "missing.json")}).Load(); err == nil {
		t.Error("Expected an error for a missing file, got nil")
	}
}

func TestService_Items(t *testing.T) {
	t.Run("LoadsOnce", func(t *testing.T) {
		loader := &countingLoader{}
		service := NewService(loader)
		for i := 0; i < 3; i++ {
			items, err := service.Items()
			if err != nil {
				t.Fatalf("Expected no error, got %v", err)
			}
			if len(items) != 1 {
				t.Fatalf("Expected 1 item, got %d", len(items))
			}
		}
		if loader.calls != 1 {
			t.Errorf("Expected a single load, got %d", loader.calls)
		}
	})

	t.Run("RetriesAfterFailure", func(t *testing.T) {
		loader := &countingLoader{fail: true}
		service := NewService(loader)
		if _, err := service.Items(); err == nil {
			t.Fatal("Expected an error, got nil")
		}
		loader.fail = false
		if _, err := service.Items(); err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if loader.calls != 2 {
			t.Errorf("Expected 2 loads, got %d", loader.calls)
		}
	})
}

func TestNewServiceFromConfig(t *testing.T) {
	if _, err := NewServiceFromConfig("file", "nutrition.json", nil); err != nil {
		t.Errorf("Expected no error for file source, got %v", err)
	}
	if _, err := NewServiceFromConfig("database", "", nil); err == nil {
		t.Error("Expected an error for database source without connection")
	}
	if _, err := NewServiceFromConfig("s3", "", nil); err == nil {
		t.Error("Expected an error for unknown source")
	}
}

func TestSearch(t *testing.T) {
	var items []structs.FoodItem
	for i := 0; i < 15; i++ {
		items = append(items, structs.FoodItem{Name: fmt.Sprintf("Ayam Goreng %d", i)})
	}
	items = append(items, structs.FoodItem{Name: "Tempe Bacem"})

	if got := Search(items, ""); got != nil {
		t.Errorf("Expected nil for empty query, got %v", got)
	}
	if got := Search(items, "AYAM"); len(got) != 10 {
		t.Errorf("Expected 10 results, got %d", len(got))
	}
	if got := Search(items, "bacem"); len(got) != 1 || got[0].Name != "Tempe Bacem" {
		t.Errorf("unexpected results %v", got)
	}
}
