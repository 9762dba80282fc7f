package main

import (
	"log"

	"github.com/joho/godotenv"

	"fairness-platform/internal/app"
)

func main() {
	godotenv.Load()

	server, err := app.NewServer()
	if err != nil {
		log.Fatal(err)
	}
	log.Fatal(server.Start())
}
