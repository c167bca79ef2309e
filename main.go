package main

import (
	"flag"
	"log"

	"github.com/decker502/glowtrail/pkg/app"
)

func main() {
	verbose := flag.Bool("verbose", false, "enable verbose logging")
	flag.Parse()

	if err := app.Run(app.Config{Verbose: *verbose}); err != nil {
		log.Fatalf("glowtrail: %v", err)
	}
}
