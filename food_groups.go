package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// foodGroup identifies one of the seven exchange-list groups recorded per meal.
type foodGroup int

const (
	groupGrain foodGroup = iota
	groupProtein
	groupVegetable
	groupFruit
	groupDairy
	groupFat
	groupSugar
)

// foodGroups lists every group in display order.
var foodGroups = []foodGroup{groupGrain, groupProtein, groupVegetable, groupFruit, groupDairy, groupFat, groupSugar}

// kcalPerServing is the fixed energy per exchange serving, indexed by foodGroup.
var kcalPerServing = [...]int{
	groupGrain:     80,
	groupProtein:   55,
	groupVegetable: 25,
	groupFruit:     60,
	groupDairy:     120,
	groupFat:       45,
	groupSugar:     20,
}

// groupKeys are the JSON keys used by stored meal snapshots.
var groupKeys = [...]string{
	groupGrain:     "rice",
	groupProtein:   "meat",
	groupVegetable: "veg",
	groupFruit:     "fruit",
	groupDairy:     "milk",
	groupFat:       "fat",
	groupSugar:     "sugar",
}

func (g foodGroup) key() string { return groupKeys[g] }

func (g foodGroup) kcal() int { return kcalPerServing[g] }

// foodRow holds one value per food group: servings for a meal, or kcal once
// passed through computeEnergy.
type foodRow struct {
	Grain     int `json:"rice"`
	Protein   int `json:"meat"`
	Vegetable int `json:"veg"`
	Fruit     int `json:"fruit"`
	Dairy     int `json:"milk"`
	Fat       int `json:"fat"`
	Sugar     int `json:"sugar"`
}

func (r foodRow) get(g foodGroup) int {
	switch g {
	case groupGrain:
		return r.Grain
	case groupProtein:
		return r.Protein
	case groupVegetable:
		return r.Vegetable
	case groupFruit:
		return r.Fruit
	case groupDairy:
		return r.Dairy
	case groupFat:
		return r.Fat
	case groupSugar:
		return r.Sugar
	}
	return 0
}

func (r *foodRow) set(g foodGroup, v int) {
	switch g {
	case groupGrain:
		r.Grain = v
	case groupProtein:
		r.Protein = v
	case groupVegetable:
		r.Vegetable = v
	case groupFruit:
		r.Fruit = v
	case groupDairy:
		r.Dairy = v
	case groupFat:
		r.Fat = v
	case groupSugar:
		r.Sugar = v
	}
}

// maxServings caps a single group in a single meal.
const maxServings = 99

var errServingOutOfRange = errors.New("servings out of range")

// UnmarshalJSON accepts whatever the data-entry form sent for each group:
// numbers, numeric strings, empty strings or null. Anything that is not a
// finite number becomes 0; fractional servings are truncated. Negative counts
// and counts above maxServings are rejected.
func (r *foodRow) UnmarshalJSON(b []byte) error {
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		*r = foodRow{}
		return nil
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	var row foodRow
	for _, g := range foodGroups {
		n, err := servingCount(raw[g.key()])
		if err != nil {
			return fmt.Errorf("%s: %w", g.key(), err)
		}
		row.set(g, n)
	}
	*r = row
	return nil
}

// servingCount coerces a raw JSON value to a whole serving count.
func servingCount(v json.RawMessage) (int, error) {
	if len(v) == 0 {
		return 0, nil
	}
	var n float64
	if err := json.Unmarshal(v, &n); err != nil {
		var s string
		if err := json.Unmarshal(v, &s); err != nil {
			return 0, nil
		}
		n, err = strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return 0, nil
		}
	}
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, nil
	}
	if n < 0 || n >= maxServings+1 {
		return 0, fmt.Errorf("%w: %v", errServingOutOfRange, n)
	}
	return int(n), nil
}

// mealSet is one day's log: four meals plus the dietitian's target row.
type mealSet struct {
	Target    foodRow `json:"target"`
	Breakfast foodRow `json:"breakfast"`
	Lunch     foodRow `json:"lunch"`
	Snack     foodRow `json:"snack"`
	Dinner    foodRow `json:"dinner"`
}

/* ─── Aggregation ────────────────────────────────────────────────────── */

// aggregateIntake sums each group across breakfast, lunch, snack and dinner.
// The target row is not part of intake.
func aggregateIntake(m mealSet) foodRow {
	var total foodRow
	for _, g := range foodGroups {
		total.set(g, m.Breakfast.get(g)+m.Lunch.get(g)+m.Snack.get(g)+m.Dinner.get(g))
	}
	return total
}

// computeEnergy converts servings to kcal per group.
func computeEnergy(row foodRow) foodRow {
	var energy foodRow
	for _, g := range foodGroups {
		energy.set(g, row.get(g)*g.kcal())
	}
	return energy
}

// grandTotal sums all seven group values.
func grandTotal(energy foodRow) int {
	sum := 0
	for _, g := range foodGroups {
		sum += energy.get(g)
	}
	return sum
}

// mealSummary is the derived part of a nutrition log.
type mealSummary struct {
	Intake     foodRow           `json:"intake"`
	Energy     foodRow           `json:"energy"`
	TotalKcal  int               `json:"total_kcal"`
	TargetKcal int               `json:"target_kcal"`
	Comparison []groupComparison `json:"comparison"`
}

// groupComparison is one bar of the target-vs-actual chart.
type groupComparison struct {
	Group  string `json:"group"`
	Target int    `json:"target"`
	Actual int    `json:"actual"`
}

func summarizeMeals(m mealSet) mealSummary {
	intake := aggregateIntake(m)
	energy := computeEnergy(intake)
	return mealSummary{
		Intake:     intake,
		Energy:     energy,
		TotalKcal:  grandTotal(energy),
		TargetKcal: grandTotal(computeEnergy(m.Target)),
		Comparison: compareToTarget(m.Target, intake),
	}
}

// compareToTarget pairs target and actual servings per group in display order.
func compareToTarget(target, actual foodRow) []groupComparison {
	out := make([]groupComparison, 0, len(foodGroups))
	for _, g := range foodGroups {
		out = append(out, groupComparison{Group: g.key(), Target: target.get(g), Actual: actual.get(g)})
	}
	return out
}
