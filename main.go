package main

import (
	"log"
	"net/http"
	"os"

	"github.com/prabeshkharel/earnkart/app/cmd"
	"github.com/prabeshkharel/earnkart/app/configs"
	"github.com/prabeshkharel/earnkart/app/routes"
)

func main() {
	env := configs.LoadEnv()

	if len(os.Args) > 1 {
		cmd.RunCli()
		return
	}

	configs.InitMidtransClients()

	db, err := configs.OpenConnection()
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}
	log.Println("Database connected.")

	keys, err := configs.LoadSessionKeysFromEnv()
	if err != nil {
		log.Fatalf("Session keys invalid: %v. Run with `generate-keys` to create a pair.", err)
	}

	baseURL := os.Getenv("APP_BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost" + env.Port
	}

	router := routes.NewRouter(db, keys, baseURL)

	server := http.Server{
		Addr:    env.Port,
		Handler: router,
	}

	log.Printf("Server starting on %s", server.Addr)
	if err := server.ListenAndServe(); err != nil {
		log.Fatal(err)
	}
}
