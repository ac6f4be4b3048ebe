package md

import "sort"

// Params carries named scalar parameters for setters that take a variable
// parameter record. Setters declare their required key set and reject
// anything that does not match it exactly.
type Params map[string]float64

// CheckKeys validates that given holds exactly the required keys. required is
// kept in declaration order in the error; given, missing and unknown are
// sorted so the message is deterministic.
func CheckKeys(setter string, required []string, given Params) error {
	want := make(map[string]bool, len(required))
	for _, k := range required {
		want[k] = true
	}

	givenKeys := make([]string, 0, len(given))
	unknown := make([]string, 0)
	for k := range given {
		givenKeys = append(givenKeys, k)
		if !want[k] {
			unknown = append(unknown, k)
		}
	}

	missing := make([]string, 0)
	for _, k := range required {
		if _, ok := given[k]; !ok {
			missing = append(missing, k)
		}
	}

	if len(missing) == 0 && len(unknown) == 0 {
		return nil
	}

	sort.Strings(givenKeys)
	sort.Strings(missing)
	sort.Strings(unknown)

	return &KeyMismatchError{
		Setter:   setter,
		Required: append([]string(nil), required...),
		Given:    givenKeys,
		Missing:  missing,
		Unknown:  unknown,
	}
}
