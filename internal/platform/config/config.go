package config

import "os"

// Server captures process level configuration.
type Server struct {
	Addr     string
	DataFile string
}

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() Server {
	addr := os.Getenv("FINCA_ADDR")
	if addr == "" {
		addr = ":8080"
	}
	dataFile := os.Getenv("FINCA_DATA_FILE")
	if dataFile == "" {
		dataFile = "data/community.json"
	}
	return Server{
		Addr:     addr,
		DataFile: dataFile,
	}
}
