package core

import (
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
)

// GetSeed returns a seed value for random number generation from the
// SWRAND_SEED environment variable, falling back to the current time.
func GetSeed() int64 {
	seedStr := os.Getenv("SWRAND_SEED")
	if seedStr != "" {
		if seed, err := strconv.ParseInt(seedStr, 10, 64); err == nil {
			log.Info().Msgf("Using seed from SWRAND_SEED value: %d", seed)
			return seed
		}
		log.Warn().Msgf("Failed to parse SWRAND_SEED value: %s", seedStr)
	}

	seed := time.Now().UnixNano()
	log.Info().Msgf("Using current time as seed: %d", seed)
	return seed
}
