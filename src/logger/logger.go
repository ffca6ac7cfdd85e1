package logger

import (
	"os"

	log "github.com/sirupsen/logrus"
)

// Init points logrus at stdout and applies LOG_LEVEL from the environment,
// defaulting to info when the variable is absent or unparseable.
func Init() {
	log.SetOutput(os.Stdout)

	level, err := log.ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil {
		log.SetLevel(log.InfoLevel)
		return
	}

	log.SetLevel(level)
}
