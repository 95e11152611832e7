package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config bundles the analyzer's runtime settings.
type Config struct {
	// MQTT configuration
	MQTTBroker    string
	MQTTClientID  string
	MQTTUsername  string
	MQTTPassword  string
	MQTTPoseTopic string

	// Storage
	DBPath string

	// Session accounting
	CooldownFrames int
	ScoreDecay     float64
	RepBonus       float64
}

// Load reads configuration from the environment, with .env support.
func Load() *Config {
	// Load .env file if it exists
	_ = godotenv.Load()

	return &Config{
		MQTTBroker:    getEnv("MQTT_BROKER", "tcp://localhost:1883"),
		MQTTClientID:  getEnv("MQTT_CLIENT_ID", "form-analyzer"),
		MQTTUsername:  getEnv("MQTT_USERNAME", ""),
		MQTTPassword:  getEnv("MQTT_PASSWORD", ""),
		MQTTPoseTopic: getEnv("MQTT_TOPIC_POSE", "pose/+/frames"),

		DBPath: getEnv("ANALYZER_DB", "form_analyzer.db"),

		CooldownFrames: getEnvInt("REP_COOLDOWN_FRAMES", 10),
		ScoreDecay:     getEnvFloat("FORM_SCORE_DECAY", 0.5),
		RepBonus:       getEnvFloat("FORM_REP_BONUS", 5),
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	intValue, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Warning: failed to parse %s as int, using default: %v", key, err)
		return defaultValue
	}
	return intValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	floatValue, err := strconv.ParseFloat(value, 64)
	if err != nil {
		log.Printf("Warning: failed to parse %s as float, using default: %v", key, err)
		return defaultValue
	}
	return floatValue
}
