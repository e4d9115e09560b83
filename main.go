package main

import (
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	"github.com/openwx/wxcharts/cli"
)

func main() {
	// optional .env file for local development
	if err := godotenv.Load(); err != nil {
		log.WithError(err).Debug("no .env file loaded")
	}

	if err := cli.Execute(); err != nil {
		log.WithError(err).Fatal("Could not start application!")
	}
}
