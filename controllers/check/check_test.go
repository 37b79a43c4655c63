package check

import (
	"encoding/json"
	"errors"
	"gizi-go-worker/structs"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

type staticCatalog struct {
	items []structs.FoodItem
	err   error
}

func (s staticCatalog) Items() ([]structs.FoodItem, error) { return s.items, s.err }

func TestChecker_Alive(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name        string
		catalog     CatalogProvider
		wantMessage string
		wantSize    int
	}{
		{"NoConnection", staticCatalog{items: []structs.FoodItem{{Name: "Nasi Putih"}, {Name: "Tahu"}}}, "Get connection pool fail", 2},
		{"CatalogFailure", staticCatalog{err: errors.New("missing file")}, "catalog load fail: missing file", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checker := &Checker{ConnectionName: "check-test", Catalog: tt.catalog}
			route := gin.New()
			route.GET("/check-live", checker.Alive)

			w := httptest.NewRecorder()
			route.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/check-live", nil))

			var got AliveResponse
			if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
				t.Fatal(err)
			}
			if !got.Success || got.Message != tt.wantMessage {
				t.Errorf("Expected %q, got %+v", tt.wantMessage, got)
			}
			if got.Info.CatalogSize != tt.wantSize {
				t.Errorf("Expected catalog size %d, got %d", tt.wantSize, got.Info.CatalogSize)
			}
			if got.Info.RoutineNum <= 0 {
				t.Errorf("Expected goroutine count, got %d", got.Info.RoutineNum)
			}
		})
	}
}
