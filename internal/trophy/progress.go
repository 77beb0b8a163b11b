package trophy

// Progress describes how close a user is to a trophy's criteria. Units
// are kind-specific (meters, days, count); Percentage is always clamped
// to [0,100] and a zero target yields 0%, never a division error.
type Progress struct {
	CurrentValue float64 `json:"currentValue"`
	TargetValue  float64 `json:"targetValue"`
	Percentage   int     `json:"percentage"`
	IsComplete   bool    `json:"isComplete"`
}

func NewProgress(current, target float64) Progress {
	if current < 0 {
		current = 0
	}
	if target < 0 {
		target = 0
	}

	pct := 0
	if target > 0 {
		pct = int(current * 100 / target)
		if pct > 100 {
			pct = 100
		}
		if pct < 0 {
			pct = 0
		}
	}

	return Progress{
		CurrentValue: current,
		TargetValue:  target,
		Percentage:   pct,
		IsComplete:   current >= target,
	}
}
