package ranking

import "math"

// WinRate is the percentage of games won, rounded to one decimal place.
// A line with no games has a rate of 0.
func WinRate(s Stats) float64 {
	total := s.TotalGames()
	if total == 0 {
		return 0
	}
	return round1(float64(s.Wins) / float64(total) * 100)
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
