package president

// Result is the outcome of a game. Seats are counted from 0, and -1 means nobody.
type Result struct {
	// Winner is the first seat to empty its hand
	Winner int `json:"winner"`

	// Finished lists every seat that emptied its hand, in completion order
	Finished []int `json:"finished"`

	// Loser is the only seat left holding cards
	Loser int `json:"loser"`

	// Dropped lists seats whose connection failed, in the order they failed
	Dropped []int `json:"dropped"`
}

// Ranking returns every seat from best to worst: finishers, the loser, then dropped seats
func (r *Result) Ranking() []int {
	ranking := make([]int, 0, len(r.Finished)+len(r.Dropped)+1)
	ranking = append(ranking, r.Finished...)
	if r.Loser >= 0 {
		ranking = append(ranking, r.Loser)
	}

	return append(ranking, r.Dropped...)
}
