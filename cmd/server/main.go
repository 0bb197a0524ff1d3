package main

import (
	"context"
	"log"

	"github.com/Abdurahmanit/GroupProject/property-service/internal/app"
	"github.com/Abdurahmanit/GroupProject/property-service/internal/app/config"
)

func main() {
	cfg := config.MustLoad()

	application, err := app.New(context.Background(), cfg)
	if err != nil {
		log.Fatalf("failed to initialize application: %v", err)
	}

	if err := application.Run(); err != nil {
		log.Fatalf("application terminated with error: %v", err)
	}
}
