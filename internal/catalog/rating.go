package catalog

// Tally holds the five raw star-count counters for one book. It is the
// only rating state that is ever stored; everything else is derived.
type Tally struct {
	Ratings1 int `json:"ratings_1"`
	Ratings2 int `json:"ratings_2"`
	Ratings3 int `json:"ratings_3"`
	Ratings4 int `json:"ratings_4"`
	Ratings5 int `json:"ratings_5"`
}

// Count returns the total number of ratings in the tally.
func (t Tally) Count() int {
	return t.Ratings1 + t.Ratings2 + t.Ratings3 + t.Ratings4 + t.Ratings5
}

// AggregateTally derives the full Ratings group from raw counters.
//
// The average is the weighted mean rounded half-up to two decimals, and
// it is nil when the tally is empty. Every read path surfaces ratings
// through this one function so the same counters always produce the same
// displayed figures regardless of access path. The SQL rating filters
// compute the identical ROUND(weighted / NULLIF(total, 0), 2) expression,
// so a book's displayed average and its filterability cannot disagree.
func AggregateTally(t Tally) Ratings {
	ratings := Ratings{
		Count:   t.Count(),
		Rating1: t.Ratings1,
		Rating2: t.Ratings2,
		Rating3: t.Ratings3,
		Rating4: t.Ratings4,
		Rating5: t.Ratings5,
	}

	if ratings.Count == 0 {
		return ratings
	}

	weighted := 1*t.Ratings1 + 2*t.Ratings2 + 3*t.Ratings3 + 4*t.Ratings4 + 5*t.Ratings5
	avg := meanHundredths(weighted, ratings.Count)
	ratings.Average = &avg
	return ratings
}

// meanHundredths computes weighted/count rounded half-up to two decimals
// using integer arithmetic only. Postgres numeric ROUND is exact decimal
// half-up; a float64 round trip can land just below the half (1.025 is
// not representable) and round down, so the hundredths are decided in
// integers before the single final division.
func meanHundredths(weighted, count int) float64 {
	hundredths := (200*weighted + count) / (2 * count)
	return float64(hundredths) / 100
}
