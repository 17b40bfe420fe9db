package model

// Scenario is a named multiplier applied to a base result.
type Scenario struct {
	Name       string  `json:"name" toml:"name"`
	Multiplier float64 `json:"multiplier" toml:"multiplier"`
}

type ScenarioProjection struct {
	Scenario
	Results CalculationResult `json:"results"`
}
