package service

// ScoringService converts answer timing into points. Correct answers decay
// linearly from the per-question maximum at t=0 down to a floor of 1 point at
// the time limit; a correct answer never scores below 1, an incorrect answer
// always scores 0.
type ScoringService interface {
	Points(isCorrect bool, timeTakenSeconds float64) float64
	MaxPoints() float64
}

type scoringService struct {
	pointsPerCorrect float64
	timeLimitSeconds float64
}

func NewScoringService(pointsPerCorrect, timeLimitSeconds float64) ScoringService {
	return &scoringService{
		pointsPerCorrect: pointsPerCorrect,
		timeLimitSeconds: timeLimitSeconds,
	}
}

func (s *scoringService) Points(isCorrect bool, timeTakenSeconds float64) float64 {
	if !isCorrect {
		return 0
	}
	if timeTakenSeconds < 0 {
		timeTakenSeconds = 0
	}
	points := s.pointsPerCorrect - (s.pointsPerCorrect-1)*timeTakenSeconds/s.timeLimitSeconds
	if points < 1 {
		return 1
	}
	return points
}

func (s *scoringService) MaxPoints() float64 {
	return s.pointsPerCorrect
}
