package server

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/example/boilerbuddy/internal/analytics"
	"github.com/example/boilerbuddy/internal/engine"
	"github.com/example/boilerbuddy/internal/gamification"
	"github.com/example/boilerbuddy/internal/quiz"
	"github.com/example/boilerbuddy/pkg/models"
	"github.com/gin-gonic/gin"
)

// fail maps service errors onto HTTP statuses. Engine validation errors
// are the caller's fault and come back as 400s.
func fail(c *gin.Context, err error) {
	var verr *engine.ValidationError
	if errors.As(err, &verr) {
		c.JSON(http.StatusBadRequest, gin.H{"error": verr.Error()})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}

type createUserRequest struct {
	Username       string `json:"username" binding:"required"`
	FullName       string `json:"full_name"`
	Major          string `json:"major"`
	GraduationYear int    `json:"graduation_year"`
}

func (s *Server) createUser(c *gin.Context) {
	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user := &models.User{
		Username:       req.Username,
		FullName:       req.FullName,
		Major:          req.Major,
		GraduationYear: req.GraduationYear,
	}
	if err := s.users.Create(user); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, user)
}

func (s *Server) listTopics(c *gin.Context) {
	topics, err := s.topics.GetAll()
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"topics": topics, "total": len(topics)})
}

type nextQuestionRequest struct {
	TopicID string `json:"topic_id"` // empty means auto-select
}

func (s *Server) nextQuestion(c *gin.Context) {
	var req nextQuestionRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	question, err := s.quiz.NextQuestion(c.Request.Context(), currentUserID(c), req.TopicID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, question)
}

type submitAnswerRequest struct {
	TopicID       string  `json:"topic_id" binding:"required"`
	Correct       bool    `json:"correct"`
	Difficulty    string  `json:"difficulty"`
	AnswerSeconds float64 `json:"answer_seconds"`
	UsedGuideMe   bool    `json:"used_guide_me"`
}

func (s *Server) submitAnswer(c *gin.Context) {
	var req submitAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	difficulty := engine.Difficulty(req.Difficulty)
	if difficulty == "" {
		difficulty = engine.DifficultyMedium
	}

	result, err := s.quiz.SubmitAnswer(c.Request.Context(), quiz.SubmitRequest{
		UserID:        currentUserID(c),
		TopicID:       req.TopicID,
		Correct:       req.Correct,
		Difficulty:    difficulty,
		AnswerSeconds: req.AnswerSeconds,
		UsedGuideMe:   req.UsedGuideMe,
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (s *Server) stats(c *gin.Context) {
	state, err := s.quiz.StateForUser(currentUserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"progress": state})
}

func (s *Server) topicStats(c *gin.Context) {
	state, err := s.quiz.StateForUser(currentUserID(c))
	if err != nil {
		fail(c, err)
		return
	}

	topicID := c.Param("topicID")
	for _, p := range state {
		if p.TopicID == topicID {
			c.JSON(http.StatusOK, gin.H{
				"progress":          p,
				"learning_velocity": analytics.LearningVelocity(p.AttemptHistory),
			})
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"error": "no progress for topic " + topicID})
}

func (s *Server) forgettingCurve(c *gin.Context) {
	state, err := s.quiz.StateForUser(currentUserID(c))
	if err != nil {
		fail(c, err)
		return
	}

	topics, err := s.topics.GetAll()
	if err != nil {
		fail(c, err)
		return
	}
	names := make(map[string]string, len(topics))
	for _, t := range topics {
		names[t.ID] = t.Name
	}

	c.JSON(http.StatusOK, analytics.ForgettingCurve(state, names))
}

func (s *Server) timeOfDay(c *gin.Context) {
	state, err := s.quiz.StateForUser(currentUserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, analytics.TimeOfDayPerformance(state))
}

func (s *Server) report(c *gin.Context) {
	state, err := s.quiz.StateForUser(currentUserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, analytics.BuildReport(state, time.Now()))
}

func (s *Server) listAchievements(c *gin.Context) {
	statuses, err := s.achievements.GetStatuses(currentUserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"achievements": statuses})
}

func (s *Server) level(c *gin.Context) {
	user, err := s.users.GetByID(currentUserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gamification.Progress(user.TotalXP))
}

func (s *Server) activityFeed(c *gin.Context) {
	limit := 20
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 && n <= 100 {
			limit = n
		}
	}

	events, err := s.activity.GetRecentForUser(currentUserID(c), limit)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"events": events})
}

type createChallengeRequest struct {
	OpponentID int64  `json:"opponent_id" binding:"required"`
	TopicID    string `json:"topic_id" binding:"required"`
}

func (s *Server) createChallenge(c *gin.Context) {
	var req createChallengeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	challenge, err := s.challenges.Create(currentUserID(c), req.OpponentID, req.TopicID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, challenge)
}

type respondChallengeRequest struct {
	Accept bool `json:"accept"`
}

func (s *Server) respondChallenge(c *gin.Context) {
	var req respondChallengeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	challenge, err := s.challenges.Respond(c.Param("id"), currentUserID(c), req.Accept)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, challenge)
}

type scoreChallengeRequest struct {
	Score *int `json:"score" binding:"required"`
}

func (s *Server) scoreChallenge(c *gin.Context) {
	var req scoreChallengeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	challenge, err := s.challenges.SubmitScore(c.Param("id"), currentUserID(c), *req.Score)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, challenge)
}

func (s *Server) listChallenges(c *gin.Context) {
	list, err := s.challenges.ForUser(currentUserID(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"challenges": list})
}
