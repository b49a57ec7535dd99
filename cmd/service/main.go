package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"runtime/debug"
	"strings"
	"syscall"

	log "github.com/sirupsen/logrus"

	"github.com/2beens/memberhub/internal"
	"github.com/2beens/memberhub/internal/config"
	"github.com/2beens/memberhub/internal/logging"
	"github.com/2beens/memberhub/pkg"
)

func main() {
	env := flag.String("env", "development", "environment [prod | production | dev | development]")
	configPath := flag.String("config", "./config.toml", "path for the TOML config file")
	hashPassword := flag.String("hash-password", "", "print the bcrypt hash for MEMBERHUB_ADMIN_PASSWORD_HASH and exit")
	flag.Parse()

	if *hashPassword != "" {
		hash, err := pkg.HashPassword(*hashPassword, pkg.AdminPasswordHashCost)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		fmt.Println(hash)
		return
	}

	cfg, err := config.Load(*env, *configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %s\n", err)
		os.Exit(1)
	}

	secrets, err := loadSecrets(getenv)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	closeLogs := logging.Setup(logging.LoggerSetupParams{
		LogFileName:      cfg.LogsPath,
		LogToStdout:      cfg.LogToStdout,
		LogLevel:         cfg.LogLevel,
		Environment:      cfg.Environment,
		SentryEnabled:    cfg.SentryEnabled,
		SentryDSN:        secrets.SentryDSN,
		SentryServerName: "memberhub-service",
	})
	defer closeLogs()

	version := versionInfo()
	log.WithFields(log.Fields{
		"env":      *env,
		"port":     cfg.Port,
		"timezone": cfg.ReferenceTimezone,
		"version":  version,
	}).Info("starting memberhub")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	server, err := internal.NewServer(ctx, internal.NewServerParams{
		Config:                  cfg,
		VersionInfo:             version,
		AdminUsername:           secrets.AdminUsername,
		AdminPasswordHash:       secrets.AdminPasswordHash,
		AdminGymID:              secrets.AdminGymID,
		RedisPassword:           secrets.RedisPassword,
		HoneycombTracingEnabled: secrets.HoneycombEnabled,
	})
	if err != nil {
		log.Errorf("new server: %s", err)
		return
	}

	server.Serve(cfg.Host, cfg.Port)

	<-ctx.Done()
	log.Warnln("shutdown signal received")
	server.GracefulShutdown()
}

// versionInfo prefers the vcs revision stamped into the binary, then asks git.
func versionInfo() string {
	if info, ok := debug.ReadBuildInfo(); ok {
		for _, setting := range info.Settings {
			if setting.Key == "vcs.revision" && setting.Value != "" {
				return setting.Value
			}
		}
	}

	out, err := exec.Command("git", "rev-parse", "HEAD").Output()
	if err != nil {
		log.Tracef("no version info: %s", err)
		return ""
	}
	return strings.TrimSpace(pkg.BytesToString(out))
}
