package config

import "time"

// Config holds all configuration for the application.
type Config struct {
	DBName           string
	Port             string
	Turso            TursoConfig
	Slack            SlackConfig
	ProjectID        string
	LeaderboardLimit int
	RequestTimeout   time.Duration
}
type SlackConfig struct {
	Token         string
	ChannelID     string
	SigningSecret string
}
type TursoConfig struct {
	PrimaryURL string
	AuthToken  string
}
