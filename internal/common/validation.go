package common

import "fmt"

// ValidateRGB checks that every channel is a byte value
func ValidateRGB(rgb [3]int, name string) error {
	for i, v := range rgb {
		if v < 0 || v > 255 {
			return fmt.Errorf("%s[%d] must be between 0 and 255", name, i)
		}
	}
	return nil
}

// ValidateProbability checks that p lies in [0, 1]
func ValidateProbability(p float64, name string) error {
	if p < 0 || p > 1 {
		return fmt.Errorf("%s must be between 0 and 1, got %g", name, p)
	}
	return nil
}

// ValidatePort checks a TCP port number
func ValidatePort(port int, name string) error {
	if port <= 0 || port > 65535 {
		return fmt.Errorf("%s must be between 1 and 65535", name)
	}
	return nil
}
