package check

import (
	"encoding/json"
	"fmt"
	"gizi-go-worker/services/rabbitmq"
	"gizi-go-worker/services/trackLog"
	"gizi-go-worker/structs"
	"net/http"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"
)

type AliveResponse struct {
	Success bool      `json:"success"`
	Message string    `json:"message"`
	Info    CheckInfo `json:"info"`
}

type CheckInfo struct {
	Queues      []string `json:"queue"`
	RoutineNum  int      `json:"routine_num"`
	CatalogSize int      `json:"catalog_size"`
}

type CatalogProvider interface {
	Items() ([]structs.FoodItem, error)
}

// Checker 檢查 mq 連線池與菜單資料
type Checker struct {
	ConnectionName string
	Catalog        CatalogProvider
	// 等待 mq 斷線通知的時間
	Wait time.Duration
}

func (k *Checker) Alive(c *gin.Context) {
	resMsg := "main thread alive"
	checkInfo := CheckInfo{}

	if msg := k.checkQueue(&checkInfo); msg != "" {
		resMsg = msg
	}

	// 檢查菜單是否能載入
	if k.Catalog != nil {
		items, err := k.Catalog.Items()
		if err != nil {
			resMsg = fmt.Sprintf("catalog load fail: %s", err.Error())
			trackLog.Error(resMsg, false)
		}
		checkInfo.CatalogSize = len(items)
	}

	// 檢查gorutine數目
	checkInfo.RoutineNum = runtime.NumGoroutine()
	trackLog.Info(fmt.Sprintf("goroutine number: %d", checkInfo.RoutineNum), false)

	c.JSON(http.StatusOK, AliveResponse{true, resMsg, checkInfo})
}

func (k *Checker) checkQueue(checkInfo *CheckInfo) string {
	rabbitConn := rabbitmq.GetConnection(k.ConnectionName)
	//檢查mq實體是否在連線池
	if rabbitConn == nil {
		trackLog.Error("Get connection pool fail", false)
		return "Get connection pool fail"
	}

	resMsg := ""
	// 檢查mq連線
	if rabbitConn.Conn == nil || rabbitConn.Conn.IsClosed() {
		resMsg = "Api detect Connection lost, Reconnecting.."
		trackLog.Error(resMsg, false)
		if err := rabbitConn.Reconnect(); err != nil {
			resMsg = fmt.Sprintf("reconnect rabbit fail: %s", err.Error())
			trackLog.Error(resMsg, false)
			return resMsg
		}
	}
	//檢查mq channel
	if rabbitConn.Channel == nil {
		trackLog.Error("Channel get fail", false)
		return "Channel get fail"
	}
	for _, q := range rabbitConn.Queues {
		queue, queueErr := rabbitConn.Channel.QueueInspect(q)
		if queueErr != nil {
			resMsg = fmt.Sprintf("Queue[%s] error: %s", q, queueErr.Error())
			trackLog.Error(resMsg, false)
			continue
		}
		queueJson, _ := json.Marshal(queue)
		checkInfo.Queues = append(checkInfo.Queues, string(queueJson))
	}

	wait := k.Wait
	if wait == 0 {
		wait = time.Second
	}
	select {
	case err := <-rabbitConn.ApiErr:
		trackLog.Error(fmt.Sprintf("api error: %s", err.Error()), false)
		if err := rabbitConn.Reconnect(); err != nil {
			resMsg = fmt.Sprintf("reconnect rabbit fail: %s", err.Error())
			trackLog.Error(resMsg, false)
		}
	case <-time.After(wait):
	}
	return resMsg
}
