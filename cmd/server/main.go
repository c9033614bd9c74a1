package main

import (
	approuters "Userdir/internal/app_routers"
	"Userdir/internal/configuration"
	"flag"
	"log"
	"os"
)

func main() {
	configPath := flag.String("config", os.Getenv("USERDIR_CONFIG"), "path to the JSON config file")
	flag.Parse()

	container, err := configuration.BuildContainer(*configPath)
	if err != nil {
		log.Fatalf("Failed to build container: %v", err)
	}

	// Ensure cleanup on shutdown
	defer container.Close()

	// Setup routers
	approuters.StartServer(container)
}
