package engine

import (
	"sort"
	"time"

	"github.com/example/boilerbuddy/pkg/models"
)

// Priority weights. Mastery gap dominates, urgency and forgetting risk
// split the remainder evenly.
const (
	masteryGapWeight    = 0.4
	urgencyWeight       = 0.3
	forgettingWeight    = 0.3
	maxOverdueUrgency   = 2.0
	dueSoonUrgency      = 0.5
	unseenTopicPriority = 100.0
)

// maxWeightedSum normalizes seen-topic scores onto 0..100. The weighted
// sum tops out below 0.4 + 0.3*2.0 + 0.3, so seen topics always rank
// under an unseen topic's fixed 100.
const maxWeightedSum = masteryGapWeight + urgencyWeight*maxOverdueUrgency + forgettingWeight

// TopicPriority is a scored topic produced by RankTopics
type TopicPriority struct {
	TopicID string  `json:"topic_id"`
	Score   float64 `json:"score"`
}

// RankTopics orders topics by study priority, highest first. Topics with
// no attempts always surface first; the rest combine mastery gap, review
// overdueness and predicted forgetting. catalogOrder supplies a stable
// tie-break so the ordering is fully deterministic. An empty input
// yields an empty (non-nil) result.
func RankTopics(progress []*models.TopicProgress, catalogOrder map[string]int, now time.Time) []TopicPriority {
	ranked := make([]TopicPriority, 0, len(progress))

	for _, p := range progress {
		if p.Attempts == 0 {
			ranked = append(ranked, TopicPriority{TopicID: p.TopicID, Score: unseenTopicPriority})
			continue
		}

		masteryGap := 1.0 - p.Mastery

		var urgency float64
		if p.NextReview != nil {
			hoursUntil := p.NextReview.Sub(now).Hours()
			switch {
			case hoursUntil < 0:
				// Overdue: urgency grows with how late the review is
				urgency = -hoursUntil / 24.0
				if urgency > maxOverdueUrgency {
					urgency = maxOverdueUrgency
				}
			case hoursUntil < 24:
				urgency = dueSoonUrgency
			default:
				urgency = 0
			}
		} else {
			urgency = dueSoonUrgency
		}

		// Mastery is the record's own smoothed estimate, always in
		// range, so retention cannot fail here.
		retention, err := EstimateRetention(p.LastReviewed, p.Mastery, now)
		if err != nil {
			retention = 1.0
		}
		forgettingRisk := 1.0 - retention

		weighted := masteryGap*masteryGapWeight + urgency*urgencyWeight + forgettingRisk*forgettingWeight
		score := weighted / maxWeightedSum * 100.0

		ranked = append(ranked, TopicPriority{TopicID: p.TopicID, Score: score})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		return catalogOrder[ranked[i].TopicID] < catalogOrder[ranked[j].TopicID]
	})

	return ranked
}
