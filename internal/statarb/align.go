package statarb

import (
	"sort"
	"time"

	"github.com/quantpair/statarb-tui/internal/models"
)

// AlignedPair is two price series restricted to their shared trading days,
// in ascending time order.
type AlignedPair struct {
	Times  []time.Time
	Price1 []float64
	Price2 []float64
}

// Len returns the number of aligned observations
func (a AlignedPair) Len() int { return len(a.Times) }

func dayKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// AlignSeries intersects two series on calendar day. Days present in only one
// series are dropped. If a series repeats a day, the last observation wins.
func AlignSeries(s1, s2 models.PriceSeries) AlignedPair {
	byDay1 := make(map[string]models.PricePoint, s1.Len())
	for _, p := range s1.Points {
		byDay1[dayKey(p.Time)] = p
	}
	byDay2 := make(map[string]models.PricePoint, s2.Len())
	for _, p := range s2.Points {
		byDay2[dayKey(p.Time)] = p
	}

	keys := make([]string, 0, len(byDay1))
	for k := range byDay1 {
		if _, ok := byDay2[k]; ok {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	out := AlignedPair{
		Times:  make([]time.Time, 0, len(keys)),
		Price1: make([]float64, 0, len(keys)),
		Price2: make([]float64, 0, len(keys)),
	}
	for _, k := range keys {
		p1, p2 := byDay1[k], byDay2[k]
		out.Times = append(out.Times, p1.Time)
		out.Price1 = append(out.Price1, p1.Close)
		out.Price2 = append(out.Price2, p2.Close)
	}
	return out
}
