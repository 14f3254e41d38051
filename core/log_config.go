package core

import (
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// init initializes the logging configuration for the module based on the SWRAND_DEBUG environment variable.
// It sets the global logging level to Disabled, Debug, or Info based on the value of SWRAND_DEBUG.
func init() {
	// Retrieve the SWRAND_DEBUG environment variable, trim spaces, and convert to lowercase.
	debugMode := strings.TrimSpace(strings.ToLower(os.Getenv("SWRAND_DEBUG")))

	// Set the global logging level based on the value of SWRAND_DEBUG.
	if debugMode == "off" || debugMode == "0" {
		// Disable logging if SWRAND_DEBUG is set to "off" or "0".
		zerolog.SetGlobalLevel(zerolog.Disabled)
	} else if debugMode == "full" {
		// Enable debug level logging if SWRAND_DEBUG is set to "full".
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		// Set the logging level to info by default.
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}
