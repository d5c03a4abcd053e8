package main

import "math"

// gender is stored as entered ("Male", "Female" or the Thai labels).
// Only two categories are modeled: anything not male is treated as female.
type gender string

const (
	genderMale     gender = "Male"
	genderFemale   gender = "Female"
	genderMaleTH   gender = "ชาย"
	genderFemaleTH gender = "หญิง"
)

func (g gender) isMale() bool {
	return g == genderMale || g == genderMaleTH
}

// IBW offsets in cm.
const (
	ibwOffsetMale   = 100
	ibwOffsetFemale = 105
)

// activityMultipliers maps activity level strings to their energy multiplier.
// Also used for input validation on the anthropometrics endpoint.
var activityMultipliers = map[string]float64{
	"sedentary":   1.2,
	"light":       1.375,
	"moderate":    1.55,
	"active":      1.725,
	"very_active": 1.9,
}

// computeBMI returns weight / height(m)^2 rounded to 2 decimal places, or 0
// when either input is zero. Negative input is not rejected here.
func computeBMI(weightKg, heightCm float64) float64 {
	if weightKg == 0 || heightCm == 0 {
		return 0
	}
	h := heightCm / 100
	return roundTo(weightKg/(h*h), 2)
}

// computeIBW returns ideal body weight: height-100 for men, height-105 otherwise.
func computeIBW(heightCm float64, g gender) float64 {
	if heightCm == 0 {
		return 0
	}
	if g.isMale() {
		return heightCm - ibwOffsetMale
	}
	return heightCm - ibwOffsetFemale
}

// estimateEnergyRequirement computes BMR (Mifflin-St Jeor) and multiplies it by
// the activity level to suggest a daily energy requirement in kcal.
// Returns ok=false when weight or height is missing, the age is implausible or
// the activity level is unknown.
func estimateEnergyRequirement(weightKg, heightCm float64, age int, g gender, activity string) (bmr, kcal int, ok bool) {
	if weightKg <= 0 || heightCm <= 0 {
		return 0, 0, false
	}
	if age < 0 || age > 130 {
		return 0, 0, false
	}
	mult, found := activityMultipliers[activity]
	if !found {
		return 0, 0, false
	}

	bmrF := 10*weightKg + 6.25*heightCm - 5*float64(age)
	if g.isMale() {
		bmrF += 5
	} else {
		bmrF -= 161
	}
	return int(math.Round(bmrF)), int(math.Round(bmrF * mult)), true
}

// roundTo rounds x to the given number of decimal places.
func roundTo(x float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(x*p) / p
}

// roundHalfUp rounds to the nearest integer with halves going up (-2.5 -> -2),
// the convention the report front end uses.
func roundHalfUp(x float64) int {
	return int(math.Floor(x + 0.5))
}
