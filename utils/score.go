package utils

import (
	"math"
	"math/rand"
)

// Study score bounds. A first study lands in [60,95]; every retake adds
// [1,10] capped at 100.
const (
	firstScoreMin  = 60.0
	firstScoreMax  = 95.0
	retakeBoostMin = 1.0
	retakeBoostMax = 10.0
	maxScore       = 100.0
)

// FirstStudyScore returns the score assigned when a student studies a
// course for the first time.
func FirstStudyScore() float64 {
	return round2(firstScoreMin + rand.Float64()*(firstScoreMax-firstScoreMin))
}

// RetakeScore raises an existing score by a random boost, capped at 100.
func RetakeScore(current float64) float64 {
	next := current + retakeBoostMin + rand.Float64()*(retakeBoostMax-retakeBoostMin)
	if next > maxScore {
		next = maxScore
	}
	return round2(next)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
