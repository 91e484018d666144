package main

import (
	"strings"
	"time"
)

type Config struct {
	ConnectionBufferSize      int           `env:"CONNECTION_BUFFER_SIZE,default=256"`
	PresenceBufferSize        int           `env:"PRESENCE_BUFFER_SIZE,default=1024"`
	ModerationCharReplacement rune          `env:"MODERATION_CHARACTER_REPLACEMENT,default=42"`
	GCInterval                time.Duration `env:"GC_INTERVAL,default=10m"`
	ShutdownTimeout           time.Duration `env:"SHUTDOWN_TIMEOUT,default=10s"`
	BadgerFilepath            string        `env:"BADGER_FILEPATH,required=true"`
	SearchIndexPath           string        `env:"SEARCH_INDEX_PATH,required=true"`
	JWTSecret                 string        `env:"JWT_SECRET,required=true"`
	AllowedOrigins            string        `env:"ALLOWED_ORIGINS,default=*"`
	LogLevel                  string        `env:"LOG_LEVEL,default=info"`
	Host                      string        `env:"HOST,default=localhost"`
	Port                      int           `env:"PORT,default=8080"`
}

func (c Config) origins() []string {
	parts := strings.Split(c.AllowedOrigins, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
