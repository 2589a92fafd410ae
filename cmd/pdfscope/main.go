package main

import (
	"log"

	"pdfscope/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		log.Fatalf("pdfscope: %v", err)
	}
}
