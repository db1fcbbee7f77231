package main

import (
	"log"

	tool "github.com/stocklight/inventory-backend/internal/tools/seed"
)

func main() {
	if err := tool.NewRootCommand().Execute(); err != nil {
		log.Fatal(err)
	}
}
