package utils

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

const DEV_ENV_FILENAME = ".env.development"
const PROD_ENV_FILENAME = ".env.production"

// InitEnvironmentVariables loads the env file for the current GO_ENV from
// projectDir. Production deployments inject real environment variables, so
// ENV=production skips file loading entirely, and a missing file in
// development is not an error.
func InitEnvironmentVariables(projectDir string) error {
	if os.Getenv("ENV") == "production" {
		log.Info("Running in production environment")
		return nil
	}

	envFile := filepath.Join(projectDir, DEV_ENV_FILENAME)
	if os.Getenv("GO_ENV") == "production" {
		envFile = filepath.Join(projectDir, PROD_ENV_FILENAME)
	}

	if err := godotenv.Load(envFile); err != nil {
		if os.IsNotExist(err) {
			log.Debugf("no env file at %s", envFile)
			return nil
		}

		return fmt.Errorf("InitEnvironmentVariables: failed to load %s: %w", envFile, err)
	}

	return nil
}
