package main

import (
	"context"
	"log"

	"github.com/TAPAN-2835/Business-Website/app"
	"github.com/TAPAN-2835/Business-Website/internal/app/bootstrap"
)

func main() {
	if err := app.Run(context.Background(), bootstrap.Hooks); err != nil {
		log.Fatal(err)
	}
}
