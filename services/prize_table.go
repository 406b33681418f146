package services

import "math/rand"

// Prize is one weighted outcome in a game's prize table.
type Prize struct {
	Name    string `json:"name"`
	Points  int64  `json:"points"`
	Special bool   `json:"special,omitempty"`
	Weight  float64
}

// WeightedTable is an ordered list of weighted outcomes on a 0–100 scale.
//
// Order matters: selection accumulates weights in declared order, so
// reordering entries shifts which outcome wins at cumulative boundaries. The
// tables below keep their original declared order — it is part of the
// designed odds.
type WeightedTable []Prize

// Pick selects the outcome for a draw r in [0, 100): the first entry whose
// cumulative weight reaches r. If the weights sum below 100 and r lands past
// the total, the first entry is the deterministic fallback — a draw always
// resolves.
func (t WeightedTable) Pick(r float64) int {
	acc := 0.0
	for i, p := range t {
		acc += p.Weight
		if r <= acc {
			return i
		}
	}
	return 0
}

// Draw picks an outcome index using the given source.
func (t WeightedTable) Draw(rng *rand.Rand) int {
	return t.Pick(rng.Float64() * 100)
}

// TotalWeight sums the declared weights.
func (t WeightedTable) TotalWeight() float64 {
	total := 0.0
	for _, p := range t {
		total += p.Weight
	}
	return total
}

// SlotSymbols is the slot machine prize table. Rarities sum to 100.
var SlotSymbols = WeightedTable{
	{Name: "100 Points", Points: 100, Weight: 35},
	{Name: "500 Points", Points: 500, Weight: 25},
	{Name: "1000 Points", Points: 1000, Weight: 15},
	{Name: "Gaming Headset", Special: true, Weight: 10},
	{Name: "Nintendo Switch", Special: true, Weight: 2},
	{Name: "Free Credit Card", Special: true, Weight: 5},
	{Name: "Extra Spin", Special: true, Weight: 8},
}

// ClickChallengeTargets weights the target types spawned during the click
// challenge. Bombs subtract score on hit.
var ClickChallengeTargets = WeightedTable{
	{Name: "normal", Points: 10, Weight: 60},
	{Name: "bonus", Points: 25, Weight: 25},
	{Name: "bomb", Points: -15, Weight: 10},
	{Name: "shield", Points: 5, Weight: 5},
}

// TargetRushTargets weights the target types for target rush. Smaller,
// faster targets score more.
var TargetRushTargets = WeightedTable{
	{Name: "red", Points: 10, Weight: 40},
	{Name: "blue", Points: 15, Weight: 30},
	{Name: "yellow", Points: 25, Weight: 20},
	{Name: "green", Points: 50, Weight: 10},
}

// WheelPrizes are the eight wheel segments in board order.
var WheelPrizes = []Prize{
	{Name: "Free Credit Card", Special: true},
	{Name: "1000 Points", Points: 1000},
	{Name: "Gaming Subscription", Special: true},
	{Name: "100 Points", Points: 100},
	{Name: "Exclusive Card Access", Special: true},
	{Name: "10 Points", Points: 10},
	{Name: "Extra Spin", Special: true},
	{Name: "1 Point", Points: 1},
}

var wheelPointIndices = []int{1, 3, 5, 7}

// PickWheelIndex selects a wheel segment. The wheel does not use the
// cumulative table: 70% of draws land on a uniformly chosen point segment,
// the rest fall uniformly across the whole wheel.
func PickWheelIndex(rng *rand.Rand) int {
	if rng.Float64() < 0.7 {
		return wheelPointIndices[rng.Intn(len(wheelPointIndices))]
	}
	return rng.Intn(len(WheelPrizes))
}
