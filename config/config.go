package config

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type Config struct {
	Server   Server
	Database Database
	Redis    Redis
	Quiz     Quiz
}

type Server struct {
	Port string
}

type Database struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
}

type Redis struct {
	Addr     string
	Password string
	DB       int
}

// Quiz holds the tunables of the quiz session engine.
type Quiz struct {
	FreeDailyLimit           int
	PointsPerCorrect         float64
	QuestionTimeLimitSeconds float64
	SessionInactivityMinutes int
	TermFetchLimit           int
}

func NewConfig() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")

	viper.AutomaticEnv()

	viper.SetDefault("QUIZ_FREE_DAILY_LIMIT", 20)
	viper.SetDefault("QUIZ_POINTS_PER_CORRECT", 10.0)
	viper.SetDefault("QUIZ_QUESTION_TIME_LIMIT_SECONDS", 30.0)
	viper.SetDefault("QUIZ_SESSION_INACTIVITY_MINUTES", 15)
	viper.SetDefault("QUIZ_TERM_FETCH_LIMIT", 50)
	viper.SetDefault("REDIS_ADDR", "localhost:6379")

	if err := viper.ReadInConfig(); err != nil {
		log.Warn().Err(err).Msg("Error reading config file")
	}

	var config Config

	config.Server.Port = viper.GetString("SERVER_PORT")
	config.Database.Host = viper.GetString("DATABASE_HOST")
	config.Database.Port = viper.GetString("DATABASE_PORT")
	config.Database.User = viper.GetString("DATABASE_USER")
	config.Database.Password = viper.GetString("DATABASE_PASSWORD")
	config.Database.Name = viper.GetString("DATABASE_NAME")

	config.Redis.Addr = viper.GetString("REDIS_ADDR")
	config.Redis.Password = viper.GetString("REDIS_PASSWORD")
	config.Redis.DB = viper.GetInt("REDIS_DB")

	config.Quiz.FreeDailyLimit = viper.GetInt("QUIZ_FREE_DAILY_LIMIT")
	config.Quiz.PointsPerCorrect = viper.GetFloat64("QUIZ_POINTS_PER_CORRECT")
	config.Quiz.QuestionTimeLimitSeconds = viper.GetFloat64("QUIZ_QUESTION_TIME_LIMIT_SECONDS")
	config.Quiz.SessionInactivityMinutes = viper.GetInt("QUIZ_SESSION_INACTIVITY_MINUTES")
	config.Quiz.TermFetchLimit = viper.GetInt("QUIZ_TERM_FETCH_LIMIT")

	log.Info().Interface("config", config).Msg("Config loaded")
	return &config, nil
}
