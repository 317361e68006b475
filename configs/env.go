package configs

import (
	"os"

	"github.com/joho/godotenv"
	zlog "github.com/rs/zerolog/log"
)

// LoadEnvFor reads one variable, loading .env first when present.
func LoadEnvFor(v string) (x string) {
	err := godotenv.Load()
	if err != nil {
		zlog.Debug().Msg("no .env file found, using environment variables")
	}

	x = os.Getenv(v)
	return
}
