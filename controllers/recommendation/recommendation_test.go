package recommendation

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"gizi-go-worker/enums"
	"gizi-go-worker/services/rabbitmq"
	"gizi-go-worker/structs"
	"math/rand"
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

type memoryPublisher struct {
	messages []rabbitmq.Message
	err      error
}

func (m *memoryPublisher) Publish(msg rabbitmq.Message) error {
	if m.err != nil {
		return m.err
	}
	m.messages = append(m.messages, msg)
	return nil
}

var testCatalog = []structs.FoodItem{
	{Name: "Nasi Putih", Calories: 175, Protein: 3, Carbohydrate: 40},
	{Name: "Tumis Kangkung", Calories: 50, Protein: 2, Fat: 3, Carbohydrate: 5},
	{Name: "Ikan Bakar", Calories: 150, Protein: 22, Fat: 6},
	{Name: "Telur Rebus", Calories: 77, Protein: 6, Fat: 5},
}

func newEngine(ctl *Controller) *gin.Engine {
	gin.SetMode(gin.TestMode)
	route := gin.New()
	route.POST("/needs", ctl.Needs)
	route.POST("/anemia-risk", ctl.AnemiaRisk)
	route.POST("/menu/combine", ctl.CombineMenu)
	route.POST("/menu/nearest", ctl.NearestItem)
	route.POST("/menu/suggestions", ctl.Suggestions)
	route.GET("/menu/search", ctl.Search)
	route.POST("/recommendation", ctl.Recommendation)
	route.POST("/recommendation/jobs", ctl.EnqueueJob)
	return route
}

func perform(route *gin.Engine, method, path, body string, header map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range header {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	route.ServeHTTP(w, req)
	return w
}

func answers(value bool) string {
	m := make(map[string]bool)
	for i := 1; i <= 11; i++ {
		m[fmt.Sprintf("q%d", i)] = value
	}
	b, _ := json.Marshal(m)
	return string(b)
}

func TestController_Needs(t *testing.T) {
	route := newEngine(New(staticCatalog{items: testCatalog}, nil, ""))

	t.Run("Success", func(t *testing.T) {
		w := perform(route, http.MethodPost, "/needs", `{"category": "child", "age": "10", "weight": 30, "height": 130}`, nil)
		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}
		var got struct {
			Daily struct {
				Calories int `json:"calories"`
			} `json:"daily"`
		}
		json.Unmarshal(w.Body.Bytes(), &got)
		if got.Daily.Calories <= 0 {
			t.Errorf("Expected positive daily calories, got %d", got.Daily.Calories)
		}
	})

	t.Run("MissingTrimester", func(t *testing.T) {
		w := perform(route, http.MethodPost, "/needs", `{"category": "pregnant", "age": 25, "weight": 55, "height": 158}`, nil)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("Expected 400, got %d", w.Code)
		}
		var got ErrorResponse
		json.Unmarshal(w.Body.Bytes(), &got)
		if got.Field != "trimester" {
			t.Errorf("Expected field trimester, got %q", got.Field)
		}
	})

	t.Run("MalformedBody", func(t *testing.T) {
		w := perform(route, http.MethodPost, "/needs", `{"category": `, nil)
		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d", w.Code)
		}
	})
}

func TestController_AnemiaRisk(t *testing.T) {
	route := newEngine(New(staticCatalog{items: testCatalog}, nil, ""))

	t.Run("Complete", func(t *testing.T) {
		w := perform(route, http.MethodPost, "/anemia-risk", `{"answers": `+answers(true)+`}`, nil)
		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}
		var got struct {
			Score int    `json:"score"`
			Level string `json:"level"`
		}
		json.Unmarshal(w.Body.Bytes(), &got)
		if got.Score != 8 || got.Level != enums.RiskHigh {
			t.Errorf("Expected score 8 %s, got %d %s", enums.RiskHigh, got.Score, got.Level)
		}
	})

	t.Run("Incomplete", func(t *testing.T) {
		w := perform(route, http.MethodPost, "/anemia-risk", `{"answers": {"q1": true, "q2": null}}`, nil)
		if w.Code != http.StatusUnprocessableEntity {
			t.Fatalf("Expected 422, got %d", w.Code)
		}
		var got ErrorResponse
		json.Unmarshal(w.Body.Bytes(), &got)
		if len(got.Missing) != 10 || got.Missing[0] != "q2" {
			t.Errorf("Expected 10 missing starting at q2, got %v", got.Missing)
		}
	})
}

func TestController_Menu(t *testing.T) {
	route := newEngine(New(staticCatalog{items: testCatalog}, nil, ""))

	t.Run("Combine", func(t *testing.T) {
		w := perform(route, http.MethodPost, "/menu/combine", `{"target_calories": 300}`, nil)
		var got MenuResponse
		json.Unmarshal(w.Body.Bytes(), &got)
		if !got.Found || got.Menu == nil {
			t.Fatalf("Expected a menu, got %s", w.Body.String())
		}
		if got.Menu.Name != "Nasi Putih + Tumis Kangkung + Telur Rebus" {
			t.Errorf("Unexpected menu %s", got.Menu.Name)
		}
	})

	t.Run("CombineNoVegetable", func(t *testing.T) {
		route := newEngine(New(staticCatalog{items: []structs.FoodItem{testCatalog[0], testCatalog[2]}}, nil, ""))
		w := perform(route, http.MethodPost, "/menu/combine", `{"target_calories": 300}`, nil)
		var got MenuResponse
		json.Unmarshal(w.Body.Bytes(), &got)
		if w.Code != http.StatusOK || got.Found {
			t.Errorf("Expected 200 without menu, got %d %s", w.Code, w.Body.String())
		}
	})

	t.Run("Nearest", func(t *testing.T) {
		w := perform(route, http.MethodPost, "/menu/nearest", `{"target_calories": 160}`, nil)
		var got ItemResponse
		json.Unmarshal(w.Body.Bytes(), &got)
		if !got.Found || got.Item.Name != "Ikan Bakar" {
			t.Errorf("Expected Ikan Bakar, got %s", w.Body.String())
		}
	})

	t.Run("Suggestions", func(t *testing.T) {
		ctl := New(staticCatalog{items: testCatalog}, nil, "")
		ctl.Rand = func() *rand.Rand { return rand.New(rand.NewSource(1)) }
		w := perform(newEngine(ctl), http.MethodPost, "/menu/suggestions", `{"target_calories": 200}`, nil)
		var got ItemsResponse
		json.Unmarshal(w.Body.Bytes(), &got)
		if len(got.Items) != 2 {
			t.Errorf("Expected 2 suggestions, got %s", w.Body.String())
		}
	})

	t.Run("Search", func(t *testing.T) {
		w := perform(route, http.MethodGet, "/menu/search?q=IKAN", "", nil)
		var got ItemsResponse
		json.Unmarshal(w.Body.Bytes(), &got)
		if len(got.Items) != 1 || got.Items[0].Name != "Ikan Bakar" {
			t.Errorf("Expected Ikan Bakar, got %s", w.Body.String())
		}
	})

	t.Run("CatalogFailure", func(t *testing.T) {
		route := newEngine(New(staticCatalog{err: errors.New("catalog unavailable")}, nil, ""))
		w := perform(route, http.MethodGet, "/menu/search?q=ikan", "", nil)
		if w.Code != http.StatusInternalServerError {
			t.Errorf("Expected 500, got %d", w.Code)
		}
	})
}

func TestController_Recommendation(t *testing.T) {
	route := newEngine(New(staticCatalog{items: testCatalog}, nil, ""))
	body := `{"profile": {"category": "breastfeeding", "breastfeeding_age": "0-6", "age": 28, "weight": 52, "height": 155, "gender": "female"}, "answers": ` + answers(false) + `}`

	t.Run("WithSession", func(t *testing.T) {
		w := perform(route, http.MethodPost, "/recommendation", body, map[string]string{SessionHeader: "abc"})
		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}
		var got struct {
			SessionID  string `json:"session_id"`
			AnemiaRisk struct {
				Level string `json:"level"`
			} `json:"anemia_risk"`
		}
		json.Unmarshal(w.Body.Bytes(), &got)
		if got.SessionID != "abc" {
			t.Errorf("Expected session abc, got %q", got.SessionID)
		}
		if got.AnemiaRisk.Level != enums.RiskLow {
			t.Errorf("Expected %s, got %s", enums.RiskLow, got.AnemiaRisk.Level)
		}
	})

	t.Run("GuestSession", func(t *testing.T) {
		w := perform(route, http.MethodPost, "/recommendation", body, nil)
		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d", w.Code)
		}
		if len(w.Header().Get(SessionHeader)) != 36 {
			t.Errorf("Expected generated uuid session, got %q", w.Header().Get(SessionHeader))
		}
	})
}

func TestController_EnqueueJob(t *testing.T) {
	body := `{"task_id": 7, "profile": {"category": "child", "age": 8, "weight": 25, "height": 125}, "answers": ` + answers(false) + `}`

	t.Run("Published", func(t *testing.T) {
		publisher := &memoryPublisher{}
		route := newEngine(New(staticCatalog{}, publisher, ""))
		w := perform(route, http.MethodPost, "/recommendation/jobs", body, map[string]string{SessionHeader: "job-session"})
		if w.Code != http.StatusAccepted {
			t.Fatalf("Expected 202, got %d: %s", w.Code, w.Body.String())
		}
		if len(publisher.messages) != 1 {
			t.Fatalf("Expected one message, got %d", len(publisher.messages))
		}
		msg := publisher.messages[0]
		var param structs.RecommendationQueueParam
		if err := json.Unmarshal(msg.Body, &param); err != nil {
			t.Fatal(err)
		}
		if msg.Queue != enums.QueueRecommendation || param.QueueType != enums.QueueRecommendation {
			t.Errorf("Expected queue %s, got %s/%s", enums.QueueRecommendation, msg.Queue, param.QueueType)
		}
		if param.TaskID != 7 || param.SessionID != "job-session" {
			t.Errorf("Unexpected param %+v", param)
		}
	})

	t.Run("NoBroker", func(t *testing.T) {
		route := newEngine(New(staticCatalog{}, nil, ""))
		w := perform(route, http.MethodPost, "/recommendation/jobs", body, nil)
		if w.Code != http.StatusServiceUnavailable {
			t.Errorf("Expected 503, got %d", w.Code)
		}
	})

	t.Run("PublishFailure", func(t *testing.T) {
		route := newEngine(New(staticCatalog{}, &memoryPublisher{err: errors.New("channel closed")}, ""))
		w := perform(route, http.MethodPost, "/recommendation/jobs", body, nil)
		if w.Code != http.StatusServiceUnavailable {
			t.Errorf("Expected 503, got %d", w.Code)
		}
	})
}
