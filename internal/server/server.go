// Package server exposes the HTTP JSON API. Handlers are thin: they
// parse the request, call a service, and shape the response. Identity
// arrives as an X-User-ID header; session handling lives upstream.
package server

import (
	"net/http"
	"strconv"

	"github.com/example/boilerbuddy/internal/challenges"
	"github.com/example/boilerbuddy/internal/database"
	"github.com/example/boilerbuddy/internal/quiz"
	"github.com/gin-gonic/gin"
)

const userIDHeader = "X-User-ID"

// Server holds the services and repositories the handlers use
type Server struct {
	quiz         *quiz.Service
	challenges   *challenges.Service
	users        *database.UserRepository
	topics       *database.TopicRepository
	achievements *database.AchievementRepository
	activity     *database.ActivityRepository
}

// New creates a server over the given services
func New(quizSvc *quiz.Service, challengeSvc *challenges.Service) *Server {
	return &Server{
		quiz:         quizSvc,
		challenges:   challengeSvc,
		users:        database.NewUserRepository(),
		topics:       database.NewTopicRepository(),
		achievements: database.NewAchievementRepository(),
		activity:     database.NewActivityRepository(),
	}
}

// Router builds the gin engine with all routes registered
func (s *Server) Router() *gin.Engine {
	router := gin.Default()

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	router.POST("/api/users", s.createUser)
	router.GET("/api/topics", s.listTopics)

	api := router.Group("/api", s.requireUser)
	{
		api.POST("/questions/next", s.nextQuestion)
		api.POST("/answers", s.submitAnswer)
		api.GET("/stats", s.stats)
		api.GET("/stats/:topicID", s.topicStats)
		api.GET("/analytics/forgetting-curve", s.forgettingCurve)
		api.GET("/analytics/time-of-day", s.timeOfDay)
		api.GET("/analytics/report", s.report)
		api.GET("/achievements", s.listAchievements)
		api.GET("/level", s.level)
		api.GET("/activity", s.activityFeed)
		api.POST("/challenges", s.createChallenge)
		api.POST("/challenges/:id/respond", s.respondChallenge)
		api.POST("/challenges/:id/score", s.scoreChallenge)
		api.GET("/challenges", s.listChallenges)
	}

	return router
}

// requireUser resolves the caller from the X-User-ID header
func (s *Server) requireUser(c *gin.Context) {
	raw := c.GetHeader(userIDHeader)
	if raw == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing " + userIDHeader + " header"})
		return
	}

	userID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid " + userIDHeader + " header"})
		return
	}

	c.Set("user_id", userID)
	c.Next()
}

func currentUserID(c *gin.Context) int64 {
	return c.GetInt64("user_id")
}
