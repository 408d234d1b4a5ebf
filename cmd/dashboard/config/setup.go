package config

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/lobo-bot/lobo/pkg/dataaccess"
	"github.com/lobo-bot/lobo/pkg/dataaccess/connection"
	"github.com/lobo-bot/lobo/pkg/logging"
)

func Parse(l *slog.Logger) {
	// Local development keeps its variables in a .env file; in production
	// the environment is populated directly and the file is absent.
	if err := godotenv.Load(); err != nil {
		l.Debug("No .env file loaded", slog.String(logging.KeyError, err.Error()))
	}

	if envBT := os.Getenv(EnvBotToken); envBT != "" {
		l.Debug("Found bot token in environment", slog.String("key", EnvBotToken))
		BotToken = envBT
	}

	if envAppId := os.Getenv(EnvApplicationId); envAppId != "" {
		l.Debug("Found application ID in environment", slog.String("key", EnvApplicationId))
		ApplicationId = envAppId
	}

	if envMongoUri := os.Getenv(EnvMongoUri); envMongoUri != "" {
		l.Debug("Found MongoDB URI in environment", slog.String("key", EnvMongoUri))
		MongoUri = envMongoUri
	}

	if envServerPort := os.Getenv(EnvServerPort); envServerPort != "" {
		l.Debug("Found server port in environment", slog.String("key", EnvServerPort))
		ServerPort = envServerPort
	} else {
		// Default to 8080 if not provided.
		ServerPort = "8080"

		l.Info("No server port provided in environment, defaulting to 8080", slog.String("key", EnvServerPort))
	}

	if BotToken != "" &&
		ApplicationId != "" &&
		MongoUri != "" {

		// All required environment variables have been provided.
		l.Debug("All required environment variables have been provided")
		connectMongo(l)
		return
	}

	l.Error("Not all required environment variables have been provided", slog.String(logging.KeyError, "Incomplete configuration"))
	os.Exit(1)
}

func connectMongo(l *slog.Logger) {
	mongoConn := new(connection.MongoDB)
	mongoConn.ConnectionString = MongoUri

	db, err := mongoConn.Connect()
	if err != nil {
		l.Error("Error connecting to mongo", slog.String(logging.KeyError, err.Error()))
		os.Exit(1)
	} else if db == nil {
		l.Error("MongoDB came back nil", slog.String(logging.KeyError, "MongoDB came back nil"))
		os.Exit(1)
	}

	dataaccess.MongoDB = db

	l.Debug("Connected to MongoDB", slog.String("key", EnvMongoUri))
}
