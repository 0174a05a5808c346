package main

import (
	"os"

	"lotocart/cmd"

	log "github.com/sirupsen/logrus"
)

func main() {
	if err := cmd.Execute(os.Args[1:]); err != nil {
		log.WithError(err).Fatal("lotocart exited with error")
	}
}
