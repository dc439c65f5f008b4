// Package main is the sigo command line tool.
package main

import (
	"os"

	"github.com/YuminosukeSato/sigo/pkg/log"
)

func main() {
	if err := NewApp().Run(os.Args); err != nil {
		log.GetLoggerWithName("cli").Error("sigo failed", err)
		os.Exit(1)
	}
}
