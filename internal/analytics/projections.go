package analytics

import (
	"math"

	"github.com/theirongolddev/smokesense/internal/model"
)

// minutesPerCigarette is the fixed average handling time per cigarette.
// A domain constant, not measured.
const minutesPerCigarette = 7

var timeframes = []struct {
	key  string
	days int
}{
	{"month", 30},
	{"quarter", 90},
	{"year", 365},
	{"5years", 1825},
}

// Projections extrapolates a daily average into consumption, cost and time
// for each standard timeframe. Cigarette counts are rounded to the nearest
// integer first and cost/time derive from the rounded count, so displayed
// numbers stay self-consistent. A non-nil reducedAverage adds a parallel
// reduced-rate block with the cost saved.
func Projections(dailyAverage, pricePerUnit float64, reducedAverage *float64) []model.Projection {
	projections := make([]model.Projection, 0, len(timeframes))

	for _, tf := range timeframes {
		current := rateBlock(dailyAverage, tf.days, pricePerUnit)

		p := model.Projection{
			Timeframe:   tf.key,
			Days:        tf.days,
			CurrentRate: current,
		}

		if reducedAverage != nil {
			reduced := rateBlock(*reducedAverage, tf.days, pricePerUnit)
			p.ReducedRate = &model.ReducedRate{
				RateBlock: reduced,
				Savings:   current.Cost - reduced.Cost,
			}
		}

		projections = append(projections, p)
	}
	return projections
}

func rateBlock(dailyAverage float64, days int, pricePerUnit float64) model.RateBlock {
	cigarettes := int(math.Round(dailyAverage * float64(days)))
	return model.RateBlock{
		Cigarettes: cigarettes,
		Cost:       float64(cigarettes) * pricePerUnit,
		TimeSpent:  cigarettes * minutesPerCigarette,
	}
}
