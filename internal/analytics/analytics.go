// Package analytics derives dashboard views from progress records and
// their attempt history. Everything here is read-only over data the
// caller already loaded.
package analytics

import (
	"math"
	"sort"
	"time"

	"github.com/example/boilerbuddy/internal/engine"
	"github.com/example/boilerbuddy/pkg/models"
)

// Mastery bands used by the report and weak/strong topic lists
const (
	weakMasteryThreshold   = 0.4
	strongMasteryThreshold = 0.8
	weakMinAttempts        = 2
	strongMinAttempts      = 3
)

// StudyStreak counts consecutive days with at least one attempt, walking
// backwards from today. A day without attempts breaks the streak.
func StudyStreak(progress []*models.TopicProgress, today time.Time) int {
	seen := make(map[string]bool)
	for _, p := range progress {
		for _, a := range p.AttemptHistory {
			seen[a.Timestamp.Format("2006-01-02")] = true
		}
	}
	if len(seen) == 0 {
		return 0
	}

	streak := 0
	day := today
	for seen[day.Format("2006-01-02")] {
		streak++
		day = day.AddDate(0, 0, -1)
	}
	return streak
}

// CurveSeries is one topic's projected retention line
type CurveSeries struct {
	TopicID   string    `json:"topic_id"`
	TopicName string    `json:"topic_name"`
	Retention []float64 `json:"retention"` // percentages, one per time label
}

// ForgettingCurveData feeds the retention chart
type ForgettingCurveData struct {
	TimeLabels []string      `json:"time_labels"`
	Topics     []CurveSeries `json:"topics"`
}

var curveLabels = []string{"Now", "1d", "2d", "3d", "5d", "7d", "14d", "30d"}

// ForgettingCurve projects retention for every attempted topic over the
// fixed chart offsets. Topics never attempted or never reviewed are
// skipped.
func ForgettingCurve(progress []*models.TopicProgress, topicNames map[string]string) ForgettingCurveData {
	data := ForgettingCurveData{TimeLabels: curveLabels, Topics: []CurveSeries{}}

	for _, p := range progress {
		if p.Attempts == 0 || p.LastReviewed == nil {
			continue
		}

		series := CurveSeries{
			TopicID:   p.TopicID,
			TopicName: topicNames[p.TopicID],
			Retention: make([]float64, 0, len(engine.ProjectionOffsetsDays)),
		}
		for _, days := range engine.ProjectionOffsetsDays {
			r, err := engine.ProjectRetention(p.Mastery, days)
			if err != nil {
				continue
			}
			series.Retention = append(series.Retention, math.Round(r*1000)/10)
		}
		data.Topics = append(data.Topics, series)
	}

	return data
}

// TimeOfDayData holds accuracy per fixed hour block
type TimeOfDayData struct {
	Labels   []string  `json:"labels"`
	Accuracy []float64 `json:"accuracy"` // percentages
}

var timeBlocks = []struct {
	label    string
	from, to int // [from, to) in local hours; to == 0 means wrap past midnight
}{
	{"6-9 AM", 6, 9},
	{"9-12 PM", 9, 12},
	{"12-3 PM", 12, 15},
	{"3-6 PM", 15, 18},
	{"6-9 PM", 18, 21},
	{"9 PM+", 21, 0},
}

// TimeOfDayPerformance buckets attempts into six hour blocks and reports
// accuracy per block. Hours before 6 AM count toward the late block.
func TimeOfDayPerformance(progress []*models.TopicProgress) TimeOfDayData {
	correct := make([]int, len(timeBlocks))
	total := make([]int, len(timeBlocks))

	for _, p := range progress {
		for _, a := range p.AttemptHistory {
			idx := blockIndex(a.Timestamp.Hour())
			total[idx]++
			if a.Correct {
				correct[idx]++
			}
		}
	}

	data := TimeOfDayData{
		Labels:   make([]string, len(timeBlocks)),
		Accuracy: make([]float64, len(timeBlocks)),
	}
	for i, b := range timeBlocks {
		data.Labels[i] = b.label
		if total[i] > 0 {
			data.Accuracy[i] = math.Round(float64(correct[i])/float64(total[i])*1000) / 10
		}
	}
	return data
}

func blockIndex(hour int) int {
	for i, b := range timeBlocks[:len(timeBlocks)-1] {
		if hour >= b.from && hour < b.to {
			return i
		}
	}
	// 9 PM through 6 AM
	return len(timeBlocks) - 1
}

// TopicStanding is a topic's place in the weak/strong lists
type TopicStanding struct {
	TopicID  string  `json:"topic_id"`
	Mastery  float64 `json:"mastery"`
	Attempts int     `json:"attempts"`
}

// WeakTopics lists topics below the weak threshold with enough attempts
// to be meaningful, lowest mastery first.
func WeakTopics(progress []*models.TopicProgress) []TopicStanding {
	var weak []TopicStanding
	for _, p := range progress {
		if p.Mastery < weakMasteryThreshold && p.Attempts >= weakMinAttempts {
			weak = append(weak, TopicStanding{p.TopicID, p.Mastery, p.Attempts})
		}
	}
	sort.Slice(weak, func(i, j int) bool { return weak[i].Mastery < weak[j].Mastery })
	return weak
}

// StrongTopics lists well-mastered topics, highest mastery first
func StrongTopics(progress []*models.TopicProgress) []TopicStanding {
	var strong []TopicStanding
	for _, p := range progress {
		if p.Mastery >= strongMasteryThreshold && p.Attempts >= strongMinAttempts {
			strong = append(strong, TopicStanding{p.TopicID, p.Mastery, p.Attempts})
		}
	}
	sort.Slice(strong, func(i, j int) bool { return strong[i].Mastery > strong[j].Mastery })
	return strong
}

// LearningVelocity is the correct fraction of the last five attempts.
// Fewer than three attempts is too little signal and yields zero.
func LearningVelocity(history []models.Attempt) float64 {
	recent := history
	if len(recent) > 5 {
		recent = recent[len(recent)-5:]
	}
	if len(recent) < 3 {
		return 0
	}

	correct := 0
	for _, a := range recent {
		if a.Correct {
			correct++
		}
	}
	return float64(correct) / float64(len(recent))
}

// Report summarizes overall learning state
type Report struct {
	TotalAttempts    int     `json:"total_attempts"`
	TotalCorrect     int     `json:"total_correct"`
	OverallAccuracy  float64 `json:"overall_accuracy"` // percent
	AverageMastery   float64 `json:"average_mastery"`
	TopicsMastered   int     `json:"topics_mastered"`    // mastery > 0.8
	TopicsInProgress int     `json:"topics_in_progress"` // 0.4..0.8
	TopicsStruggling int     `json:"topics_struggling"`  // < 0.4
	StudyStreak      int     `json:"study_streak"`
}

// BuildReport aggregates the per-topic records into a progress report
func BuildReport(progress []*models.TopicProgress, today time.Time) Report {
	r := Report{StudyStreak: StudyStreak(progress, today)}

	attempted := 0
	masterySum := 0.0
	for _, p := range progress {
		r.TotalAttempts += p.Attempts
		r.TotalCorrect += p.Correct
		if p.Attempts > 0 {
			attempted++
			masterySum += p.Mastery
		}
		switch {
		case p.Mastery > strongMasteryThreshold:
			r.TopicsMastered++
		case p.Mastery >= weakMasteryThreshold:
			r.TopicsInProgress++
		default:
			r.TopicsStruggling++
		}
	}

	if r.TotalAttempts > 0 {
		r.OverallAccuracy = math.Round(float64(r.TotalCorrect)/float64(r.TotalAttempts)*1000) / 10
	}
	if attempted > 0 {
		r.AverageMastery = masterySum / float64(attempted)
	}
	return r
}
