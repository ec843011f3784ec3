package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort     int
	JWTSecret      string
	GoogleClientID string
	UsersFile      string
	ExercisesFile  string
}

func LoadConfig() Config {
	if os.Getenv("ENV") == "dev" {
		godotenv.Load()
	}

	return Config{
		ServerPort:     getEnvInt("SERVER_PORT", 4000),
		JWTSecret:      getEnv("JWT_SECRET", "secret_fallback"),
		GoogleClientID: getEnv("GOOGLE_CLIENT_ID", "idclient_fallback"),
		UsersFile:      getEnv("USERS_FILE", "users.json"),
		ExercisesFile:  getEnv("EXERCISES_FILE", "exercices.json"),
	}
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if valueStr, exists := os.LookupEnv(key); exists {
		var value int
		fmt.Sscanf(valueStr, "%d", &value)
		return value
	}
	return defaultValue
}
