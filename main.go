package main

import (
	"log"

	"github.com/hireloop/matchwise/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
