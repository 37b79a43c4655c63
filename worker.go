package main

import (
	"encoding/json"
	"fmt"
	"gizi-go-worker/models"
	"gizi-go-worker/services"
	"gizi-go-worker/services/rabbitmq"
	"gizi-go-worker/services/recommendation"
	"gizi-go-worker/services/trackLog"
	"gizi-go-worker/structs"
	"net/http"
	"strings"
	"time"

	"github.com/streadway/amqp"
)

const mismatchCallbackPath = "/api/v1/workerCallback/mismatchQueue"

// RecommendationWorker 處理 queue 進來的工作，所有依賴在建立時注入，
// goroutine 之間只共用這些唯讀欄位
type RecommendationWorker struct {
	Catalog  recommendation.CatalogProvider
	Recorder recommendation.ActivityRecorder
	AppAPI   string
	Location *time.Location
	jobs     chan int
}

func NewRecommendationWorker(catalog recommendation.CatalogProvider, recorder recommendation.ActivityRecorder, appAPI string, concurrentAmount int) *RecommendationWorker {
	if concurrentAmount <= 0 {
		concurrentAmount = 1
	}
	location, err := time.LoadLocation("Asia/Jakarta")
	if err != nil {
		location = time.UTC
	}
	return &RecommendationWorker{
		Catalog:  catalog,
		Recorder: recorder,
		AppAPI:   strings.TrimRight(appAPI, "/"),
		Location: location,
		jobs:     make(chan int, concurrentAmount),
	}
}

// Handle 同時最多跑 concurrentAmount 個工作
func (w *RecommendationWorker) Handle(c *rabbitmq.Connection, q string, deliveries <-chan amqp.Delivery) {
	for d := range deliveries {
		w.jobs <- 1
		trackLog.Info(fmt.Sprintf("Queue[%s] 接受資料: %s", q, string(d.Body)), true)

		go func(body []byte) {
			defer func() { <-w.jobs }()
			w.Process(q, body)
		}(d.Body)
	}
}

// Process 處理單筆 queue 訊息
func (w *RecommendationWorker) Process(q string, body []byte) {
	var param structs.RecommendationQueueParam
	if err := json.Unmarshal(body, &param); err != nil {
		trackLog.Error(fmt.Sprintf("Queue[%s] 參數解析失敗: %s", q, err.Error()), true)
		return
	}
	// 檢查queue是否正確
	if q != param.QueueType {
		w.notifyMismatchQueueApi(param.TaskID, q, param.QueueType)
		return
	}

	w.insertActivityLog("schedule.go.job.received", fmt.Sprintf("(%d), queue name: %s, start...", param.TaskID, q))

	service := recommendation.NewRecommendationService(w.Catalog, w.Recorder, w.AppAPI)
	if _, err := service.Start(param); err != nil {
		trackLog.Error(fmt.Sprintf("task %d fail: %s", param.TaskID, err.Error()), true)
	}
}

// 塞入執行紀錄的 log table
func (w *RecommendationWorker) insertActivityLog(jobname string, data interface{}) {
	if w.Recorder == nil {
		return
	}
	activityLogJSON, _ := json.Marshal(data)

	activityLogEntity := models.NewActivityLog(jobname, "golang-worker log", "", string(activityLogJSON), time.Now().In(w.Location))
	activityLogEntity.CauserType = "worker"
	activityLogEntity.SubjectType = ""

	if err := w.Recorder.Record(&activityLogEntity); err != nil {
		trackLog.Error(fmt.Sprintf("insert activity log %s fail: %s", jobname, err.Error()), true)
	}
}

func (w *RecommendationWorker) notifyMismatchQueueApi(taskId uint, queue, queueType string) {
	endpoint := w.AppAPI + mismatchCallbackPath
	body := structs.MismatchQueueResponse{
		TaskId: taskId,
		Queue:  queue,
	}
	trackLog.Info(fmt.Sprintf("[MismatchQueue]queue發生錯誤, task_id: %d, mismatch queue: %s, queue_type: %s, callback url: %s", taskId, queue, queueType, endpoint), true)
	if _, err := services.HttpRequest(http.MethodPost, endpoint, nil, body); err != nil {
		trackLog.Error(err.Error(), true)
	}
}
