// Package units provides shared constants and validation for
// stabilization method names and angle conversions.
package units

import "math"

// Stabilization method constants.
const (
	Translation = "translation"
	Rotation    = "rotation"
	Perspective = "perspective"
)

// ValidMethods contains all valid stabilization method values.
var ValidMethods = []string{Translation, Rotation, Perspective}

// IsValidMethod checks if the given method is in the list of valid methods.
func IsValidMethod(method string) bool {
	for _, m := range ValidMethods {
		if method == m {
			return true
		}
	}
	return false
}

// ValidMethodsString returns a comma-separated string of valid methods
// for error messages.
func ValidMethodsString() string {
	return "translation, rotation, perspective"
}

// RadToDeg converts radians to degrees. Rotation is stored in radians
// internally; degrees appear only in reports and charts.
func RadToDeg(rad float64) float64 {
	return rad * 180.0 / math.Pi
}

// DegToRad converts degrees to radians.
func DegToRad(deg float64) float64 {
	return deg * math.Pi / 180.0
}
