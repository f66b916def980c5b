package main

import (
	"log"

	"github.com/gdsc-alina/alina/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
