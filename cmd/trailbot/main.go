package main

import (
	_ "embed"
	"os"
)

var (
	GitVersion string
)

//go:embed trailbot.txt
var banner string

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
