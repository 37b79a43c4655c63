package recommendation

import (
	"encoding/json"
	"errors"
	"fmt"
	"gizi-go-worker/enums"
	"gizi-go-worker/models"
	"gizi-go-worker/services"
	"gizi-go-worker/services/anemia"
	"gizi-go-worker/services/log"
	"gizi-go-worker/services/needs"
	"gizi-go-worker/structs"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/jinzhu/gorm"
	"github.com/sirupsen/logrus"
)

const (
	activityLogName     = "schedule.go.recommendation"
	activityDescription = "營養建議計算"
	callbackPath        = "/api/v1/workerCallback/recommendation"
)

type CatalogProvider interface {
	Items() ([]structs.FoodItem, error)
}

type ActivityRecorder interface {
	Record(entity *models.ActivityLog) error
}

type GormRecorder struct {
	DB *gorm.DB
}

func (g GormRecorder) Record(entity *models.ActivityLog) error {
	return g.DB.Create(entity).Error
}

// RecommendationService 處理 queue 進來的單筆計算
type RecommendationService struct {
	sync.Mutex
	Catalog    CatalogProvider
	Builder    *Builder
	Recorder   ActivityRecorder
	AppAPI     string
	Location   *time.Location
	Errors     []structs.ErrorModel
	queueParam structs.RecommendationQueueParam
}

func NewRecommendationService(catalog CatalogProvider, recorder ActivityRecorder, appAPI string) *RecommendationService {
	location, err := time.LoadLocation("Asia/Jakarta")
	if err != nil {
		location = time.UTC
	}
	return &RecommendationService{
		Catalog:  catalog,
		Builder:  NewBuilder(nil),
		Recorder: recorder,
		AppAPI:   strings.TrimRight(appAPI, "/"),
		Location: location,
	}
}

// Start 處理資料的主要進入點，計算失敗也會寫 activity log 並回呼
func (r *RecommendationService) Start(param structs.RecommendationQueueParam) (*Result, error) {
	r.Lock()
	defer r.Unlock()

	r.queueParam = param
	r.Errors = nil
	if param.SessionID == "" {
		r.queueParam.SessionID = fmt.Sprintf("task-%d", param.TaskID)
	}
	session := structs.SessionContext{SessionID: r.queueParam.SessionID, Role: enums.RoleGuest}

	var logService log.LogService
	logwr := logService.LoggerInit(session.SessionID).WithFields(logrus.Fields{"task": enums.QueueRecommendation, "task_id": param.TaskID, "session_id": session.SessionID})
	logwr.Info("開始準備資料")

	result, err := r.process(session)
	if err != nil {
		r.handleError(err)
		logwr.WithFields(logrus.Fields{"error_message": err.Error()}).Error("計算失敗")
	} else {
		logwr.WithFields(logrus.Fields{"daily_calories": result.Needs.Daily.Calories, "risk_level": result.AnemiaRisk.Level}).Info("計算完成")
	}

	if insertErr := r.insertActivityLog(result); insertErr != nil {
		logwr.WithFields(logrus.Fields{"error_message": insertErr.Error()}).Error("寫入 activity log 失敗")
	}
	if notifyErr := r.JobDoneNotify(); notifyErr != nil {
		logwr.WithFields(logrus.Fields{"error_message": notifyErr.Error()}).Error("回呼失敗")
	}
	return result, err
}

func (r *RecommendationService) process(session structs.SessionContext) (*Result, error) {
	items, err := r.Catalog.Items()
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	return r.Builder.Build(session, r.queueParam.Profile, anemia.Responses(r.queueParam.Answers), items)
}

func (r *RecommendationService) insertActivityLog(result *Result) error {
	var activityLogJSONModel structs.ActivityLogJsonModel
	activityLogJSONModel.Type = enums.QueueRecommendation
	activityLogJSONModel.TaskID = r.queueParam.TaskID
	activityLogJSONModel.SessionID = r.queueParam.SessionID
	activityLogJSONModel.Result = len(r.Errors) == 0

	if activityLogJSONModel.Result && result != nil {
		activityLogJSONModel.Message = "ok"
		activityLogJSONModel.Statistic = structs.StatisticModel{
			DailyCalories:  result.Needs.Daily.Calories,
			RiskScore:      result.AnemiaRisk.Score,
			RiskLevel:      result.AnemiaRisk.Level,
			BreakfastFound: result.Breakfast.Found,
			DinnerFound:    result.Dinner.Found,
		}
		if items, err := r.Catalog.Items(); err == nil {
			activityLogJSONModel.Statistic.CatalogSize = len(items)
		}
	} else {
		activityLogJSONModel.Message = r.Errors[0].ErrorMessage
		activityLogJSONModel.Messages = r.Errors
	}

	activityLogJSON, _ := json.Marshal(activityLogJSONModel)

	if result != nil {
		resultJSON, _ := json.Marshal(result)
		r.queueParam.Result = string(resultJSON)
	} else {
		r.queueParam.Result = string(activityLogJSON)
	}

	if r.Recorder == nil {
		return nil
	}
	entity := models.NewActivityLog(activityLogName, activityDescription, r.queueParam.SessionID, string(activityLogJSON), time.Now().In(r.Location))
	return r.Recorder.Record(&entity)
}

// JobDoneNotify 把 queue 參數連同結果回傳給 app server
func (r *RecommendationService) JobDoneNotify() error {
	if r.AppAPI == "" {
		return nil
	}
	endpoint := r.AppAPI + callbackPath
	_, err := services.HttpRequest(http.MethodPost, endpoint, nil, r.queueParam)
	return err
}

func (r *RecommendationService) handleError(err error) {
	errorModel := structs.ErrorModel{
		SessionID:    r.queueParam.SessionID,
		ErrorMessage: err.Error(),
	}
	var validationErr *needs.ValidationError
	if errors.As(err, &validationErr) {
		errorModel.Field = validationErr.Field
	}
	var incompleteErr *anemia.IncompleteResponseError
	if errors.As(err, &incompleteErr) {
		errorModel.Field = strings.Join(incompleteErr.Missing, ",")
	}
	r.Errors = append(r.Errors, errorModel)
}
