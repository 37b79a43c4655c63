package trackLog

import (
	"fmt"
	"gizi-go-worker/services/log"

	"github.com/sirupsen/logrus"
)

var logTracker *logrus.Entry

func LogTrackInit() {
	var trackerService log.LogService
	temp := trackerService.LoggerInit("tracker")
	logTracker = temp.WithFields(logrus.Fields{"task": "track", "name": "tracker"})
}

func Info(message string, needWriteLog bool) {
	if needWriteLog && logTracker != nil {
		logTracker.Info(message)
	}
	fmt.Println(message)
}

func Error(message string, needWriteLog bool) {
	if needWriteLog && logTracker != nil {
		logTracker.Error(message)
	}
	fmt.Println(message)
}
