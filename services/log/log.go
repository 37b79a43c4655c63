package log

import (
	"fmt"
	"gizi-go-worker/utils"
	"io"
	"net"
	"os"
	"path"
	"strings"
	"sync"
	"time"

	logrustash "github.com/bshuster-repo/logrus-logstash-hook"
	"github.com/elastic/go-elasticsearch/v7"
	"github.com/sirupsen/logrus"
	"gopkg.in/go-extras/elogrus.v7"
)

const hostName = "gizi-golang-worker"

var (
	loggers = make(map[string]*logrus.Logger)
	mutex   = &sync.Mutex{}
)

type LogService struct{}

// LoggerInit 每個 name 當天寫入 logs/<日期>/<name>.log，同一天重複呼叫會拿到同一個 logger
func (l *LogService) LoggerInit(name string) *logrus.Logger {
	name = fileSafeName(name)
	today := time.Now().Format("2006-01-02")
	key := today + "/" + name

	mutex.Lock()
	defer mutex.Unlock()
	if logger, ok := loggers[key]; ok {
		return logger
	}

	//实例化
	logger := logrus.New()
	logger.Out = openLogFile(today, name)
	logger.SetLevel(logrus.DebugLevel)
	logger.SetFormatter(&logrus.TextFormatter{
		TimestampFormat: "2006-01-02 15:04:05",
	})

	if utils.EnvConfig != nil {
		addHooks(logger)
	}

	loggers[key] = logger
	return logger
}

// session id 來自外部，只保留可當檔名的字元
func fileSafeName(name string) string {
	name = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		}
		return '_'
	}, name)
	if name == "" || strings.Trim(name, "_") == "" {
		return "main"
	}
	return name
}

func openLogFile(day, name string) io.Writer {
	logFilePath := "logs/" + day + "/"
	if dir, err := os.Getwd(); err == nil {
		logFilePath = dir + "/logs/" + day + "/"
	}
	if err := os.MkdirAll(logFilePath, 0777); err != nil {
		fmt.Println(err.Error())
		return os.Stdout
	}

	fileName := path.Join(logFilePath, name+".log")
	src, err := os.OpenFile(fileName, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		fmt.Println("err", err)
		return os.Stdout
	}
	return src
}

func addHooks(logger *logrus.Logger) {
	config := utils.EnvConfig.Log

	if config.ElkEnable == 1 {
		client, err := elasticsearch.NewClient(elasticsearch.Config{
			Addresses: []string{config.ElkURL},
		})
		if err != nil {
			logger.Debug(err.Error())
		} else if hook, err := elogrus.NewAsyncElasticHook(client, hostName, logrus.DebugLevel, config.ElkIndex); err != nil {
			logger.Debug(err.Error())
		} else {
			logger.Hooks.Add(hook)
		}
	}

	if config.LogstashEnable == 1 {
		conn, err := net.Dial("udp", config.LogstashURL)
		if err != nil {
			logger.Debug(err)
		} else {
			hook := logrustash.New(conn, logrustash.DefaultFormatter(logrus.Fields{"type": hostName, "index": config.LogstashIndex}))
			logger.Hooks.Add(hook)
		}
	}
}
