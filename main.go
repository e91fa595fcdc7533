package main

import (
	"log"

	"github.com/atsfoundry/resume-optimizer/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
