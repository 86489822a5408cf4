package config

import (
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Environment          string
	ServerPort           int
	DatabaseDbPath       string
	DatabaseCacheAddress string
	DatabaseCachePort    int
	SessionTTLHours      int
	S3Endpoint           string
	S3Region             string
	S3Bucket             string
	S3AccessKeyID        string
	S3SecretAccessKey    string
	Version              string
}

func InitConfig() (Config, error) {
	viper.SetEnvPrefix("HEALTHDASH")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.SetDefault("ENVIRONMENT", "development")
	viper.SetDefault("SERVER_PORT", 8080)
	viper.SetDefault("DATABASE_DB_PATH", "data/healthdash.db")
	viper.SetDefault("DATABASE_CACHE_ADDRESS", "localhost")
	viper.SetDefault("DATABASE_CACHE_PORT", 6379)
	viper.SetDefault("SESSION_TTL_HOURS", 168)
	viper.SetDefault("S3_REGION", "us-east-1")
	viper.SetDefault("S3_BUCKET", "healthdash-lab-files")
	viper.SetDefault("VERSION", "dev")

	config := Config{
		Environment:          viper.GetString("ENVIRONMENT"),
		ServerPort:           viper.GetInt("SERVER_PORT"),
		DatabaseDbPath:       viper.GetString("DATABASE_DB_PATH"),
		DatabaseCacheAddress: viper.GetString("DATABASE_CACHE_ADDRESS"),
		DatabaseCachePort:    viper.GetInt("DATABASE_CACHE_PORT"),
		SessionTTLHours:      viper.GetInt("SESSION_TTL_HOURS"),
		S3Endpoint:           viper.GetString("S3_ENDPOINT"),
		S3Region:             viper.GetString("S3_REGION"),
		S3Bucket:             viper.GetString("S3_BUCKET"),
		S3AccessKeyID:        viper.GetString("S3_ACCESS_KEY_ID"),
		S3SecretAccessKey:    viper.GetString("S3_SECRET_ACCESS_KEY"),
		Version:              viper.GetString("VERSION"),
	}

	return config, nil
}
