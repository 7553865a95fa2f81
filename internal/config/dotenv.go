package config

import (
	"os"

	"github.com/joho/godotenv"
)

// dotenvFiles in precedence order. godotenv never overwrites variables that
// are already set, so real environment beats .env.local beats .env.
var dotenvFiles = []string{".env.local", ".env"}

// LoadDotEnv reads the dotenv files present in the working directory and
// returns the ones it loaded, for the startup log.
func LoadDotEnv() []string {
	var loaded []string
	for _, f := range dotenvFiles {
		if _, err := os.Stat(f); err != nil {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			continue
		}
		loaded = append(loaded, f)
	}
	return loaded
}
