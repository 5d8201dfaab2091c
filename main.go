package main

import (
	"log"

	"github.com/mountainops/lifthire/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
