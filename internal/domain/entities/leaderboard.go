package entities

// DisplayRating is the derived aggregate shown in public views, computed from
// approved ratings only. A nil *DisplayRating means no approved rating exists;
// absence of data is distinct from a low score.
type DisplayRating struct {
	Overall float64 `json:"overall"`
	Count   int     `json:"count"`
}

// RankedInvestor represents one leaderboard row
type RankedInvestor struct {
	Rank          int            `json:"rank"`
	Investor      *Investor      `json:"investor"`
	DisplayRating *DisplayRating `json:"displayRating"`
}

// RankingFilter narrows the leaderboard
type RankingFilter struct {
	InvestmentStage string
	HQLocation      string
	Query           string
}

// InvestorProfile represents a public investor page: the investor, its
// displayed rating and the per-dimension breakdown means.
type InvestorProfile struct {
	Investor      *Investor          `json:"investor"`
	DisplayRating *DisplayRating     `json:"displayRating"`
	Breakdown     map[string]float64 `json:"breakdown,omitempty"`
}
