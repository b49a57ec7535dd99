// Package main runs the activity MCP server over stdio, for local MCP clients.
// The backend mounts the same tools at /mcp over streamable HTTP.
package main

import (
	"context"
	"flag"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	log "github.com/sirupsen/logrus"

	"github.com/2beens/memberhub/internal/config"
	"github.com/2beens/memberhub/internal/db"
	"github.com/2beens/memberhub/internal/gymstats/activity"
	"github.com/2beens/memberhub/internal/gymstats/checkins"
	activitymcp "github.com/2beens/memberhub/internal/gymstats/mcp"
	"github.com/2beens/memberhub/internal/gymstats/stats"
	"github.com/2beens/memberhub/internal/gymstats/workouts"
	"github.com/2beens/memberhub/internal/mailer"
	"github.com/2beens/memberhub/internal/members"
)

func main() {
	env := flag.String("env", "development", "environment [prod | production | dev | development]")
	configPath := flag.String("config", "./config.toml", "path to TOML config file")
	flag.Parse()

	cfg, err := config.Load(*env, *configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	loc, err := cfg.Location()
	if err != nil {
		log.Fatalf("reference timezone: %v", err)
	}

	ctx := context.Background()
	dbPool, err := db.NewDBPool(ctx, db.NewDBPoolParams{
		DBHost:         cfg.PostgresHost,
		DBPort:         cfg.PostgresPort,
		DBName:         cfg.PostgresDBName,
		TracingEnabled: false,
	})
	if err != nil {
		log.Fatalf("db pool: %v", err)
	}
	defer dbPool.Close()

	// stdout carries the protocol, keep logs on stderr
	log.SetLevel(log.WarnLevel)

	// no cache: check-ins recorded by the backend never invalidate this process
	statsService := stats.NewService(
		stats.NewDataSource(checkins.NewRepo(dbPool), workouts.NewRepo(dbPool), nil),
		activity.NewAggregator(loc, cfg.FrequencyBuckets),
		nil,
		0,
		nil,
	)
	// otp store and mailer are not reachable from the MCP tools
	membersService := members.NewService(
		members.NewRepo(dbPool),
		nil,
		mailer.NewSender("MemberHub"),
		loc,
		cfg.UPIPayeeFallbackName,
		nil,
	)

	server := activitymcp.NewServer(dbPool, statsService, membersService)
	if err := server.Run(ctx, &mcp.StdioTransport{}); err != nil {
		log.Fatal(err)
	}
}
