package main

import (
	"fmt"
	"gizi-go-worker/controllers/check"
	recommendationController "gizi-go-worker/controllers/recommendation"
	"gizi-go-worker/database"
	"gizi-go-worker/enums"
	"gizi-go-worker/router"
	"gizi-go-worker/services"
	"gizi-go-worker/services/catalog"
	"gizi-go-worker/services/rabbitmq"
	"gizi-go-worker/services/recommendation"
	"gizi-go-worker/services/trackLog"
	"gizi-go-worker/utils"
	"log"
	"net/http"
	"sync"
	"time"

	logLib "gizi-go-worker/services/log"

	"github.com/jinzhu/gorm"
	"github.com/sirupsen/logrus"
)

const queueRetryDelay = 60 * time.Second

func main() {

	// 初始化 env
	var envService utils.EnvService
	envService.InitEnv()
	fmt.Println("參數初始化成功...")
	trackLog.LogTrackInit()

	// 資料庫只在這裡初始化一次，之後由 worker 共用同一個連線池
	var db *gorm.DB
	var recorder recommendation.ActivityRecorder
	if err := database.InitDatabasePool(); err != nil {
		trackLog.Error(fmt.Sprintf("資料庫連線失敗，activity log 將不會寫入: %s", err.Error()), true)
	} else {
		db = database.Mysql
		recorder = recommendation.GormRecorder{DB: db}
	}

	catalogService, err := catalog.NewServiceFromConfig(utils.EnvConfig.Catalog.Source, utils.EnvConfig.Catalog.Path, db)
	if err != nil {
		failOnError(err, "Failed to init catalog")
	}
	if utils.EnvConfig.Catalog.ImportOnStart {
		importCatalog(db)
	}

	worker := NewRecommendationWorker(catalogService, recorder, utils.EnvConfig.Server.AppAPI, utils.EnvConfig.ConcurrentAmount)
	worker.insertActivityLog("schedule.go.job.init", "gizi-worker 初始化")

	defer func() {
		// 發送 ELK
		var logService logLib.LogService
		logwr := logService.LoggerInit("main")
		logwr.WithFields(logrus.Fields{"task": "main", "name": "主程式"}).Error("worker shutdown")
		// 發送 email
		crashEmailAlert()
		database.Close()

		fmt.Println("worker shutdown")
	}()

	queue := utils.EnvConfig.RabbitMQ.Queue
	conn := rabbitmq.NewConnection(enums.ConnectionName, utils.EnvConfig.RabbitMQ.Domain, []string{queue})

	checker := &check.Checker{ConnectionName: enums.ConnectionName, Catalog: catalogService}
	ctl := recommendationController.New(catalogService, conn, queue)
	route := router.Router(checker, ctl, utils.EnvConfig.Router.AllowOrigins)

	// broker 連不上時 HTTP API 照常服務，queue 每分鐘重試
	go func() {
		for {
			if err := RecommendationQueue(conn, worker); err != nil {
				trackLog.Error(fmt.Sprintf("recommendation queue start fail, retry in %s: %s", queueRetryDelay, err.Error()), true)
				time.Sleep(queueRetryDelay)
				continue
			}
			return
		}
	}()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := route.Run(fmt.Sprintf(":%d", utils.EnvConfig.Router.Port)); err != nil {
			trackLog.Error(fmt.Sprintf("router stopped: %s", err.Error()), true)
		}
	}()
	wg.Wait()
}

// importCatalog 把 json 菜單匯入 food_items
func importCatalog(db *gorm.DB) {
	if db == nil {
		trackLog.Error("catalog import skipped: no database connection", true)
		return
	}
	items, err := catalog.NewService(catalog.FileLoader{Path: utils.EnvConfig.Catalog.Path}).Items()
	if err != nil {
		trackLog.Error(fmt.Sprintf("catalog import fail: %s", err.Error()), true)
		return
	}
	if err := catalog.Import(db, items); err != nil {
		trackLog.Error(fmt.Sprintf("catalog import fail: %s", err.Error()), true)
		return
	}
	trackLog.Info(fmt.Sprintf("catalog import %d items", len(items)), true)
}

func RecommendationQueue(conn *rabbitmq.Connection, worker *RecommendationWorker) error {
	if err := conn.Connect(); err != nil {
		return err
	}
	if err := conn.BindQueue(); err != nil {
		return err
	}
	deliveries, err := conn.Consume()
	if err != nil {
		return err
	}

	for q, d := range deliveries {
		go conn.HandleConsumedDeliveries(q, d, worker.Handle)
	}
	log.Printf(" [ %s ] [ %v ] Waiting for messages. To exit press CTRL+C", enums.ConnectionName, conn.Queues)
	return nil
}

func crashEmailAlert() {
	api := utils.EnvConfig.Email.APIUrl
	if api == "" {
		return
	}
	body := map[string]string{"service": "gizi-worker", "message": "worker shutdown"}
	if _, err := services.HttpRequest(http.MethodPost, api, nil, body); err != nil {
		trackLog.Error(fmt.Sprintf("crash email alert fail: %s", err.Error()), true)
	}
}

func failOnError(err error, msg string) {
	if err != nil {
		log.Fatalf("%s: %s", msg, err)
	}
}
