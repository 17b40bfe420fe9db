package model

// ChartPoint is a single labelled value of a bar chart.
type ChartPoint struct {
	Name  string `json:"name"`
	Value Number `json:"value"`
}

// BreakdownSlice is a pie chart slice. Share is a 0-1 fraction of the total.
type BreakdownSlice struct {
	Name  string `json:"name"`
	Value Number `json:"value"`
	Share Number `json:"share"`
}

// TimelinePoint is one year of cumulative savings against the investment.
type TimelinePoint struct {
	Year       string `json:"year"`
	Savings    Number `json:"savings"`
	Investment Number `json:"investment"`
}

type Charts struct {
	CostComparison []ChartPoint     `json:"costComparison"`
	Breakdown      []BreakdownSlice `json:"breakdown"`
	Timeline       []TimelinePoint  `json:"timeline"`
}
