package skill

import "math"

// Difficulty scores s by the FIG tariff rules, rounded to hundredths.
//
// Each quarter somersault is worth 0.1 and each half twist 0.1, with 0.1
// more per completed somersault. Straight and piked skills earn bonuses for
// untwisted somersaults and for doubles and triples; tucked skills do not.
func Difficulty(s Skill) float64 {
	twist := s.TotalTwist()
	whole := math.Floor(s.Flip)

	diff := s.Flip*0.4 + twist*0.2 + whole*0.1

	if s.Shape == Straight || s.Shape == Pike {
		if twist == 0 && s.Flip >= 1 {
			diff += 0.1
		}
		if s.Flip >= 2 {
			diff += whole * 0.1
		}
		if s.Flip >= 3 {
			diff += math.Floor(s.Flip-3) * 0.1
		}
	}
	return math.Round(diff*100) / 100
}
