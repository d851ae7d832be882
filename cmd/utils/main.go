package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/appetiteclub/gourmet/cmd/utils/internal/commands"
	"github.com/aquamarinepk/aqm"
	"github.com/joho/godotenv"
)

const (
	appName    = "gourmet-utils"
	appVersion = "0.1.0"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	_ = godotenv.Load()

	// Same namespace as the service so both read the same storage settings
	config, err := aqm.LoadConfig("GOURMET", os.Args[2:])
	if err != nil {
		log.Fatalf("Cannot load config: %v", err)
	}

	logLevel, _ := config.GetString("log.level")
	if logLevel == "" {
		logLevel = "info"
	}
	logger := aqm.NewLogger(logLevel)

	ctx := context.Background()
	command := os.Args[1]

	switch command {
	case "seed-demo":
		if err := commands.SeedDemo(ctx, config, logger); err != nil {
			log.Fatalf("Demo seeding failed: %v", err)
		}
		logger.Info("Demo seeding completed successfully")

	case "clear":
		if err := commands.Clear(ctx, config, logger); err != nil {
			log.Fatalf("Clear failed: %v", err)
		}
		logger.Info("Cart and order history cleared")

	case "version":
		fmt.Printf("%s version %s\n", appName, appVersion)

	case "help", "-h", "--help":
		printUsage()

	default:
		fmt.Printf("Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Printf(`%s - Gourmet utility commands

Usage:
  %s <command> [options]

Commands:
  seed-demo    Install demo order history when the store has none
  clear        Empty the cart and the order history (also resets the demo seed tracker)
  version      Print version information
  help         Show this help message

Environment Variables:
  GOURMET_STORAGE_DRIVER     memory, file, mongo or mysql (default: file)
  GOURMET_STORAGE_FILE_PATH  Snapshot path for the file driver (default: data/gourmet.json)
  GOURMET_DB_MONGO_URL       MongoDB connection URL
  GOURMET_DB_MYSQL_DSN       MySQL DSN
  GOURMET_LOG_LEVEL          Log level: debug, info, error (default: info)

Examples:
  %s seed-demo
  GOURMET_STORAGE_DRIVER=mongo %s clear

`, appName, appName, appName, appName)
}
