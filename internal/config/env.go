package config

import (
	"github.com/JaimeStill/crypto-monitor/pkg/apiclient"
	"github.com/JaimeStill/crypto-monitor/pkg/logging"
	"github.com/JaimeStill/crypto-monitor/pkg/middleware"
	"github.com/JaimeStill/crypto-monitor/web/app"
)

var serverEnv = &ServerEnv{
	Host:            "SERVER_HOST",
	Port:            "SERVER_PORT",
	ReadTimeout:     "SERVER_READ_TIMEOUT",
	WriteTimeout:    "SERVER_WRITE_TIMEOUT",
	ShutdownTimeout: "SERVER_SHUTDOWN_TIMEOUT",
}

var loggingEnv = &logging.Env{
	Level:  "LOGGING_LEVEL",
	Format: "LOGGING_FORMAT",
	Source: "LOGGING_SOURCE",
}

var backendEnv = &apiclient.Env{
	BaseURL:         "BACKEND_BASE_URL",
	Timeout:         "BACKEND_TIMEOUT",
	MaxResponseSize: "BACKEND_MAX_RESPONSE_SIZE",
	UserAgent:       "BACKEND_USER_AGENT",
}

var appEnv = &app.Env{
	Title:           "APP_TITLE",
	MountID:         "APP_MOUNT_ID",
	RefreshInterval: "APP_REFRESH_INTERVAL",
}

var corsEnv = &middleware.CORSEnv{
	Enabled:          "CORS_ENABLED",
	Origins:          "CORS_ORIGINS",
	AllowedMethods:   "CORS_ALLOWED_METHODS",
	AllowedHeaders:   "CORS_ALLOWED_HEADERS",
	AllowCredentials: "CORS_ALLOW_CREDENTIALS",
	MaxAge:           "CORS_MAX_AGE",
}
