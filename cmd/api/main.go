package main

import (
	_ "fieldops/docs"
	"fieldops/internal/adapter/http/routes"
	"fieldops/internal/infrastructure/logging"
	"log"
	"os"

	_ "github.com/joho/godotenv/autoload"
)

// @title           Field Operations API
// @version         1.0
// @description     Field crew job lifecycle, payment receipts and job push channel backed by DynamoDB.
// @termsOfService  http://swagger.io/terms/

// @contact.name   API Support
// @contact.url    http://www.swagger.io/support
// @contact.email  support@swagger.io

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:8080

// @BasePath  /v1

func main() {
	logger, cleanup := logging.Setup(os.Stderr, os.Getenv("LOG_FILE"), logging.ParseLevel(os.Getenv("LOG_LEVEL")))
	defer func() {
		if err := cleanup(); err != nil {
			log.Printf("closing log file: %v", err)
		}
	}()
	logging.Install(logger)

	routes.Run()
}
