package main

import (
	"log"
	osx "os"
)

func run() error { return nil }

func main() {
	defer log.Println("flushed")

	if err := run(); err != nil {
		log.Fatalf("run: %v", err) // want "вызов log.Fatalf в функции main запрещён"
	}

	cleanup := func() {
		osx.Exit(2)
	}
	_ = cleanup

	osx.Exit(1) // want "вызов os.Exit в функции main запрещён"
}

func exit() {
	osx.Exit(3)
}
