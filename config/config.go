package config

import (
	"os"
	"strconv"
)

type Config struct {
	ServerPort    string
	UploadDir     string
	MaxUploadSize int64
}

func LoadConfig() *Config {
	serverPort := os.Getenv("SERVER_PORT")
	if serverPort == "" {
		serverPort = "8080"
	}

	uploadDir := os.Getenv("UPLOAD_DIR")
	if uploadDir == "" {
		uploadDir = "./revenue_uploads"
	}

	maxUploadSize := int64(500 * 1024 * 1024) // 500 MB, batch ZIPs of audit PDFs are large
	if v := os.Getenv("MAX_UPLOAD_SIZE"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil && n > 0 {
			maxUploadSize = n
		}
	}

	return &Config{
		ServerPort:    serverPort,
		UploadDir:     uploadDir,
		MaxUploadSize: maxUploadSize,
	}
}
