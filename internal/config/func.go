package config

import (
	"os"
	"strconv"
)

func initUint(variable *uint, name string, defaultValue uint) {
	str := os.Getenv(name)
	val, err := strconv.Atoi(str)
	if len(str) == 0 || err != nil || val < 0 {
		*variable = defaultValue
		return
	}
	*variable = uint(val)
}

func initBool(variable *bool, name string, defaultValue bool) {
	str := os.Getenv(name)
	val, err := strconv.ParseBool(str)
	if len(str) == 0 || err != nil {
		*variable = defaultValue
		return
	}
	*variable = val
}

func initString(variable *string, name string, defaultValue string) {
	str := os.Getenv(name)
	if len(str) == 0 {
		*variable = defaultValue
		return
	}
	*variable = str
}

func initFloat(variable *float64, name string, defaultValue float64) {
	str := os.Getenv(name)
	val, err := strconv.ParseFloat(str, 64)
	if len(str) == 0 || err != nil || val < 0 {
		*variable = defaultValue
		return
	}
	*variable = val
}

func clampUint(val, min, max uint) uint {
	switch {
	case val < min:
		return min
	case val > max:
		return max
	default:
		return val
	}
}
