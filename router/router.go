package router

import (
	"gizi-go-worker/controllers/check"
	"gizi-go-worker/controllers/readProbe"
	"gizi-go-worker/controllers/recommendation"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Router allowOrigins 為空時允許所有來源
func Router(checker *check.Checker, ctl *recommendation.Controller, allowOrigins []string) *gin.Engine {
	route := gin.Default()
	route.Use(cors.New(corsConfig(allowOrigins)))

	route.GET("/read-probe", readProbe.Probe)
	route.GET("/check-live", checker.Alive)

	v1 := route.Group("/api/v1")
	{
		v1.POST("/needs", ctl.Needs)
		v1.POST("/anemia-risk", ctl.AnemiaRisk)
		v1.POST("/menu/combine", ctl.CombineMenu)
		v1.POST("/menu/nearest", ctl.NearestItem)
		v1.POST("/menu/suggestions", ctl.Suggestions)
		v1.GET("/menu/search", ctl.Search)
		v1.POST("/recommendation", ctl.Recommendation)
		v1.POST("/recommendation/jobs", ctl.EnqueueJob)
	}

	return route
}

func corsConfig(allowOrigins []string) cors.Config {
	config := cors.Config{
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", recommendation.SessionHeader},
		ExposeHeaders: []string{recommendation.SessionHeader},
		MaxAge:        12 * time.Hour,
	}
	if len(allowOrigins) == 0 || (len(allowOrigins) == 1 && allowOrigins[0] == "*") {
		config.AllowAllOrigins = true
	} else {
		config.AllowOrigins = allowOrigins
	}
	return config
}
