package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	log "github.com/sirupsen/logrus"
)

// secrets are the settings that never go into config.toml.
type secrets struct {
	AdminUsername     string
	AdminPasswordHash string
	AdminGymID        int64
	RedisPassword     string
	SentryDSN         string
	HoneycombEnabled  bool
}

var errAdminCredentialsMissing = errors.New("admin credentials not set, use MEMBERHUB_ADMIN_USERNAME and MEMBERHUB_ADMIN_PASSWORD_HASH")

// loadSecrets reads the MEMBERHUB_* environment. Missing admin credentials
// fail startup, missing optional values only warn.
func loadSecrets(getenv func(string) string) (secrets, error) {
	s := secrets{
		AdminUsername:     getenv("MEMBERHUB_ADMIN_USERNAME"),
		AdminPasswordHash: getenv("MEMBERHUB_ADMIN_PASSWORD_HASH"),
		AdminGymID:        1,
		RedisPassword:     getenv("MEMBERHUB_REDIS_PASS"),
		SentryDSN:         getenv("SENTRY_DSN"),
		HoneycombEnabled:  getenv("HONEYCOMB_ENABLED") == "true",
	}
	if s.AdminUsername == "" || s.AdminPasswordHash == "" {
		return secrets{}, errAdminCredentialsMissing
	}

	if raw := getenv("MEMBERHUB_ADMIN_GYM_ID"); raw != "" {
		gymID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || gymID <= 0 {
			return secrets{}, fmt.Errorf("invalid MEMBERHUB_ADMIN_GYM_ID [%s]", raw)
		}
		s.AdminGymID = gymID
	}

	if s.RedisPassword == "" {
		log.Warnln("MEMBERHUB_REDIS_PASS not set, connecting to redis without a password")
	}
	if getenv("OTEL_SERVICE_NAME") == "" {
		log.Warnln("OTEL_SERVICE_NAME env var not set")
	}
	if s.HoneycombEnabled && getenv("HONEYCOMB_API_KEY") == "" {
		log.Warnln("HONEYCOMB_API_KEY env var not set")
	}

	return s, nil
}

func getenv(key string) string {
	return os.Getenv(key)
}
