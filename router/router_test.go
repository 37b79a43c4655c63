package router

import (
	"gizi-go-worker/controllers/check"
	"gizi-go-worker/controllers/recommendation"
	"gizi-go-worker/structs"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

type staticCatalog []structs.FoodItem

func (s staticCatalog) Items() ([]structs.FoodItem, error) { return s, nil }

func TestRouter(t *testing.T) {
	gin.SetMode(gin.TestMode)
	items := staticCatalog{{Name: "Ikan Bakar", Calories: 150}}
	route := Router(&check.Checker{Catalog: items}, recommendation.New(items, nil, ""), []string{"https://gizi.example"})

	t.Run("ReadProbe", func(t *testing.T) {
		w := httptest.NewRecorder()
		route.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/read-probe", nil))
		if w.Code != http.StatusOK {
			t.Errorf("Expected 200, got %d", w.Code)
		}
	})

	t.Run("AllowedOrigin", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/menu/search?q=ikan", nil)
		req.Header.Set("Origin", "https://gizi.example")
		w := httptest.NewRecorder()
		route.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d", w.Code)
		}
		if got := w.Header().Get("Access-Control-Allow-Origin"); got != "https://gizi.example" {
			t.Errorf("Expected allowed origin header, got %q", got)
		}
	})

	t.Run("ForbiddenOrigin", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/menu/search?q=ikan", nil)
		req.Header.Set("Origin", "https://other.example")
		w := httptest.NewRecorder()
		route.ServeHTTP(w, req)
		if w.Code != http.StatusForbidden {
			t.Errorf("Expected 403, got %d", w.Code)
		}
	})
}

func TestCorsConfig(t *testing.T) {
	if config := corsConfig(nil); !config.AllowAllOrigins {
		t.Error("Expected all origins when none configured")
	}
	if config := corsConfig([]string{"*"}); !config.AllowAllOrigins {
		t.Error("Expected all origins for *")
	}
	config := corsConfig([]string{"https://gizi.example"})
	if config.AllowAllOrigins || len(config.AllowOrigins) != 1 {
		t.Errorf("Unexpected config %+v", config)
	}
}
