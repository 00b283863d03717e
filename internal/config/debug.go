package config

import "os"

func IsDebug() bool {
	return os.Getenv("CONDO_DEBUG") == "1"
}

func IsJSONLog() bool {
	return os.Getenv("CONDO_LOG_FORMAT") == "json"
}
