package workout

import (
	"fmt"
	"math"
	"time"
)

// NoneText is shown for a band without any distance.
const NoneText = "brak"

// TypeTotals maps each raw segment type to summed kilometers.
type TypeTotals map[SegmentType]float64

func newTypeTotals() TypeTotals {
	t := make(TypeTotals, len(SegmentTypes))
	for _, st := range SegmentTypes {
		t[st] = 0
	}
	return t
}

// Total is the sum over all types.
func (t TypeTotals) Total() float64 {
	var sum float64
	for _, km := range t {
		sum += km
	}
	return sum
}

// Aggregate sums segment distance times repetitions per segment type.
func Aggregate(workouts []Workout) TypeTotals {
	return AggregateWhere(workouts, nil)
}

// AggregateWhere is Aggregate restricted to workouts whose date satisfies
// inRange. A nil inRange accepts every workout.
func AggregateWhere(workouts []Workout, inRange func(time.Time) bool) TypeTotals {
	totals := newTypeTotals()
	for _, w := range workouts {
		if inRange != nil && !inRange(w.Date) {
			continue
		}
		for _, s := range w.Segments {
			if !s.Type.Valid() {
				continue
			}
			totals[s.Type] += s.TotalDistance()
		}
	}
	return totals
}

// BandShare is one band's part of a Distribution.
type BandShare struct {
	Band     Band
	Distance float64
	Percent  int  // rounded share of the grand total
	HasData  bool // false renders as NoneText
}

// Label is the band legend label.
func (s BandShare) Label() string { return s.Band.Label() }

// Color is the band legend color.
func (s BandShare) Color() string { return s.Band.Color() }

// PercentText renders the share as "45%" or NoneText.
func (s BandShare) PercentText() string {
	if !s.HasData {
		return NoneText
	}
	return fmt.Sprintf("%d%%", s.Percent)
}

// Distribution is the per-band breakdown of TypeTotals, in legend order.
type Distribution struct {
	Shares []BandShare
	Total  float64
}

// ByLabel returns band distances keyed by legend label.
func (d Distribution) ByLabel() map[string]float64 {
	m := make(map[string]float64, len(d.Shares))
	for _, s := range d.Shares {
		m[s.Label()] = s.Distance
	}
	return m
}

// Bands groups the raw totals into display bands.
func (t TypeTotals) Bands() Distribution {
	grouped := make(map[Band]float64, len(Bands))
	for st, km := range t {
		if !st.Valid() {
			continue
		}
		grouped[st.Band()] += km
	}

	d := Distribution{Total: t.Total()}
	for _, b := range Bands {
		share := BandShare{Band: b, Distance: grouped[b]}
		if d.Total > 0 && share.Distance > 0 {
			share.HasData = true
			share.Percent = int(math.Round(share.Distance / d.Total * 100))
		}
		d.Shares = append(d.Shares, share)
	}
	return d
}
