package recommendation

import (
	"encoding/json"
	"errors"
	"fmt"
	"gizi-go-worker/enums"
	"gizi-go-worker/services/anemia"
	"gizi-go-worker/services/catalog"
	"gizi-go-worker/services/menu"
	"gizi-go-worker/services/needs"
	"gizi-go-worker/services/rabbitmq"
	recommendationService "gizi-go-worker/services/recommendation"
	"gizi-go-worker/services/trackLog"
	"gizi-go-worker/structs"
	"math/rand"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const SessionHeader = "X-Session-ID"

type Publisher interface {
	Publish(m rabbitmq.Message) error
}

type Controller struct {
	Catalog   recommendationService.CatalogProvider
	Publisher Publisher
	Queue     string
	// 測試時固定 seed
	Rand func() *rand.Rand
}

type ErrorResponse struct {
	Success bool     `json:"success"`
	Message string   `json:"message"`
	Field   string   `json:"field,omitempty"`
	Missing []string `json:"missing,omitempty"`
}

type AnemiaRequest struct {
	Answers map[string]*bool `json:"answers"`
}

type MenuRequest struct {
	TargetCalories structs.Number `json:"target_calories"`
}

type RecommendationRequest struct {
	Profile structs.SubjectProfile `json:"profile"`
	Answers map[string]*bool       `json:"answers"`
}

type JobRequest struct {
	TaskID  uint                   `json:"task_id"`
	Profile structs.SubjectProfile `json:"profile"`
	Answers map[string]*bool       `json:"answers"`
}

type MenuResponse struct {
	Found bool                  `json:"found"`
	Menu  *menu.MenuCombination `json:"menu,omitempty"`
}

type ItemResponse struct {
	Found bool              `json:"found"`
	Item  *structs.FoodItem `json:"item,omitempty"`
}

type ItemsResponse struct {
	Items []structs.FoodItem `json:"items"`
}

type JobResponse struct {
	Success   bool   `json:"success"`
	TaskID    uint   `json:"task_id"`
	SessionID string `json:"session_id"`
	Queue     string `json:"queue"`
}

func New(provider recommendationService.CatalogProvider, publisher Publisher, queue string) *Controller {
	if queue == "" {
		queue = enums.QueueRecommendation
	}
	return &Controller{
		Catalog:   provider,
		Publisher: publisher,
		Queue:     queue,
		Rand: func() *rand.Rand {
			return rand.New(rand.NewSource(time.Now().UnixNano()))
		},
	}
}

// Session 沒帶 header 的一律視為訪客
func Session(c *gin.Context) structs.SessionContext {
	sessionID := c.GetHeader(SessionHeader)
	if sessionID == "" {
		sessionID = uuid.New().String()
	}
	c.Header(SessionHeader, sessionID)
	return structs.SessionContext{SessionID: sessionID, Role: enums.RoleGuest}
}

func (ctl *Controller) Needs(c *gin.Context) {
	var profile structs.SubjectProfile
	if !bindJSON(c, &profile) {
		return
	}
	targets, err := needs.Estimate(profile)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, targets)
}

func (ctl *Controller) AnemiaRisk(c *gin.Context) {
	var req AnemiaRequest
	if !bindJSON(c, &req) {
		return
	}
	assessment, err := anemia.Score(anemia.Responses(req.Answers))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, assessment)
}

func (ctl *Controller) CombineMenu(c *gin.Context) {
	var req MenuRequest
	if !bindJSON(c, &req) {
		return
	}
	items, ok := ctl.items(c)
	if !ok {
		return
	}
	combination := menu.CombineMenu(items, req.TargetCalories.Float64())
	c.JSON(http.StatusOK, MenuResponse{Found: combination != nil, Menu: combination})
}

func (ctl *Controller) NearestItem(c *gin.Context) {
	var req MenuRequest
	if !bindJSON(c, &req) {
		return
	}
	items, ok := ctl.items(c)
	if !ok {
		return
	}
	item := menu.NearestItem(items, req.TargetCalories.Float64())
	c.JSON(http.StatusOK, ItemResponse{Found: item != nil, Item: item})
}

func (ctl *Controller) Suggestions(c *gin.Context) {
	var req MenuRequest
	if !bindJSON(c, &req) {
		return
	}
	items, ok := ctl.items(c)
	if !ok {
		return
	}
	var rng *rand.Rand
	if ctl.Rand != nil {
		rng = ctl.Rand()
	}
	suggestions := menu.SuggestDishes(items, req.TargetCalories.Float64(), rng)
	if suggestions == nil {
		suggestions = []structs.FoodItem{}
	}
	c.JSON(http.StatusOK, ItemsResponse{Items: suggestions})
}

func (ctl *Controller) Search(c *gin.Context) {
	items, ok := ctl.items(c)
	if !ok {
		return
	}
	found := catalog.Search(items, c.Query("q"))
	if found == nil {
		found = []structs.FoodItem{}
	}
	c.JSON(http.StatusOK, ItemsResponse{Items: found})
}

func (ctl *Controller) Recommendation(c *gin.Context) {
	var req RecommendationRequest
	if !bindJSON(c, &req) {
		return
	}
	session := Session(c)
	items, ok := ctl.items(c)
	if !ok {
		return
	}
	result, err := recommendationService.Build(session, req.Profile, anemia.Responses(req.Answers), items)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// EnqueueJob 丟進 queue 由 worker 非同步計算，結果以 callback 回傳
func (ctl *Controller) EnqueueJob(c *gin.Context) {
	var req JobRequest
	if !bindJSON(c, &req) {
		return
	}
	if ctl.Publisher == nil {
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Message: "queue not available"})
		return
	}
	session := Session(c)
	param := structs.RecommendationQueueParam{
		TaskID:    req.TaskID,
		SessionID: session.SessionID,
		Profile:   req.Profile,
		Answers:   req.Answers,
		QueueType: ctl.Queue,
	}
	body, err := json.Marshal(param)
	if err != nil {
		respondError(c, err)
		return
	}
	if err := ctl.Publisher.Publish(rabbitmq.Message{Queue: ctl.Queue, CorrelationID: session.SessionID, Body: body}); err != nil {
		trackLog.Error(fmt.Sprintf("publish task %d to %s fail: %s", req.TaskID, ctl.Queue, err.Error()), true)
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Message: err.Error()})
		return
	}
	c.JSON(http.StatusAccepted, JobResponse{Success: true, TaskID: req.TaskID, SessionID: session.SessionID, Queue: ctl.Queue})
}

func (ctl *Controller) items(c *gin.Context) ([]structs.FoodItem, bool) {
	if ctl.Catalog == nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Message: "catalog not configured"})
		return nil, false
	}
	items, err := ctl.Catalog.Items()
	if err != nil {
		trackLog.Error(fmt.Sprintf("load catalog fail: %s", err.Error()), true)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Message: err.Error()})
		return nil, false
	}
	return items, true
}

func bindJSON(c *gin.Context, v interface{}) bool {
	if err := c.ShouldBindJSON(v); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: err.Error()})
		return false
	}
	return true
}

func respondError(c *gin.Context, err error) {
	var validationErr *needs.ValidationError
	var incompleteErr *anemia.IncompleteResponseError
	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: validationErr.Message, Field: validationErr.Field})
	case errors.As(err, &incompleteErr):
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Message: err.Error(), Missing: incompleteErr.Missing})
	default:
		c.JSON(http.StatusInternalServerError, ErrorResponse{Message: err.Error()})
	}
}
