package main

import (
	"log"
	_ "time/tzdata" // clock widget zones on images without a zoneinfo database

	"github.com/MrSnakeDoc/dawnpage/internal/app"
)

func main() {
	if err := app.New().Run(); err != nil {
		log.Fatalf("❌ dawnpage failed to start: %v", err)
	}
}
