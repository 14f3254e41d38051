package main

import (
	"os"
	"os/signal"

	"github.com/arcaneiq/swrand/cmd"
	"github.com/rs/zerolog/log"
)

// main is the entry point of the swrand CLI. Logging level is configured
// by core's init() (SWRAND_DEBUG); this just wires interrupt handling and
// hands off to cobra.
func main() {
	stopChan := make(chan os.Signal, 1)
	signal.Notify(stopChan, os.Interrupt)
	go listenForInterrupt(stopChan)

	if err := cmd.Execute(); err != nil {
		log.Fatal().Err(err).Msg("swrand failed")
	}
}

func listenForInterrupt(stopChan chan os.Signal) {
	<-stopChan
	log.Fatal().Msg("interrupt signal received, exiting")
}
