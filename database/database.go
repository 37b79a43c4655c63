package database

import (
	"fmt"
	"gizi-go-worker/utils"
	"sync"
	"time"

	"github.com/jinzhu/gorm"
	_ "github.com/jinzhu/gorm/dialects/mysql"
	_ "github.com/jinzhu/gorm/dialects/postgres"
)

var (
	Mysql *gorm.DB
	mutex = &sync.Mutex{}
)

// InitDatabasePool 依 database.client 建立連線池，重複呼叫時沿用現有連線。
// 舊連線 ping 失敗時先關閉再重開。
func InitDatabasePool() error {
	mutex.Lock()
	defer mutex.Unlock()

	if Mysql != nil {
		if Mysql.DB().Ping() == nil {
			return nil
		}
		Mysql.Close()
		Mysql = nil
	}

	config := utils.EnvConfig.Database
	db, err := gorm.Open(config.Client, DSN())
	if err != nil {
		return fmt.Errorf("open %s database: %w", config.Client, err)
	}

	if config.MaxIdle > 0 {
		db.DB().SetMaxIdleConns(int(config.MaxIdle))
	}
	if config.MaxOpenConn > 0 {
		db.DB().SetMaxOpenConns(int(config.MaxOpenConn))
	}
	if config.MaxLifeTime != "" {
		if lifeTime, err := time.ParseDuration(config.MaxLifeTime); err == nil {
			db.DB().SetConnMaxLifetime(lifeTime)
		}
	}
	db.LogMode(config.LogEnable == 1)

	Mysql = db
	return nil
}

// DSN 組合連線字串
func DSN() string {
	config := utils.EnvConfig.Database
	if config.Client == "postgres" {
		dsn := fmt.Sprintf("host=%s port=%s user=%s dbname=%s password=%s",
			config.Host, config.Port, config.User, config.Db, config.Password)
		if config.Params != "" {
			dsn += " " + config.Params
		}
		return dsn
	}

	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s", config.User, config.Password, config.Host, config.Port, config.Db)
	if config.Params != "" {
		dsn += "?" + config.Params
	}
	return dsn
}

func Close() {
	mutex.Lock()
	defer mutex.Unlock()
	if Mysql != nil {
		Mysql.Close()
		Mysql = nil
	}
}
