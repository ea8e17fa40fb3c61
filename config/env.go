package config

import (
	"os"
	"runtime"
	"strconv"
)

// GetNumWorkerMultiplier returns the base value used to calculate the number
// of workers to use for parallel publishing.
// It returns the value in SITETREE_NUMWORKERMULTIPLIER OS env variable if set to a
// positive integer, else the number of logical CPUs.
func GetNumWorkerMultiplier() int {
	if gmp := os.Getenv("SITETREE_NUMWORKERMULTIPLIER"); gmp != "" {
		if p, err := strconv.Atoi(gmp); err == nil && p > 0 {
			return p
		}
	}
	return runtime.NumCPU()
}
