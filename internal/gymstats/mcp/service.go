package mcp

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/2beens/memberhub/internal/gymstats/activity"
)

var ErrMemberRequired = errors.New("member_id is required")

// activityService computes member activity (for dependency injection and testing).
type activityService interface {
	Streak(ctx context.Context, memberID int64) int
	Frequency(ctx context.Context, memberID int64) []activity.MonthlyCheckinBucket
	PersonalRecords(ctx context.Context, memberID int64) []activity.PersonalRecord
}

// memberResolver maps a display member id (e.g. GYM1-0042) to the member table id.
type memberResolver interface {
	ResolveMemberID(ctx context.Context, memberID string) (int64, error)
}

// contextService is what the Handler needs, kept small for testability.
type contextService interface {
	GetSchema(ctx context.Context) (string, error)
	MemberStreak(ctx context.Context, member string) (*StreakResult, error)
	CheckinFrequency(ctx context.Context, member string) (*FrequencyResult, error)
	PersonalRecords(ctx context.Context, member string) (*RecordsResult, error)
}

type StreakResult struct {
	MemberID int64 `json:"member_table_id"`
	Streak   int   `json:"streak"`
}

type FrequencyResult struct {
	MemberID int64                           `json:"member_table_id"`
	Buckets  []activity.MonthlyCheckinBucket `json:"buckets"`
}

type RecordsResult struct {
	MemberID int64                     `json:"member_table_id"`
	Records  []activity.PersonalRecord `json:"records"`
}

// ContextService holds dependencies and implements the activity tools' logic.
type ContextService struct {
	schema   SchemaRepo
	activity activityService
	members  memberResolver
}

func NewContextService(schemaRepo SchemaRepo, activity activityService, members memberResolver) *ContextService {
	return &ContextService{
		schema:   schemaRepo,
		activity: activity,
		members:  members,
	}
}

// GetSchema returns the DB schema (table names, columns, types) for the
// tables activity is computed from.
func (s *ContextService) GetSchema(ctx context.Context) (string, error) {
	cols, err := s.schema.ActivityColumns(ctx)
	if err != nil {
		return "", err
	}
	return formatActivitySchema(cols), nil
}

func formatActivitySchema(cols []SchemaColumn) string {
	if len(cols) == 0 {
		return "# Activity DB Schema\n\nNo activity tables found in the database.\n"
	}

	byTable := make(map[string][]SchemaColumn)
	for _, c := range cols {
		byTable[c.Table] = append(byTable[c.Table], c)
	}

	tableOrder := make([]string, 0, len(byTable))
	for t := range byTable {
		tableOrder = append(tableOrder, t)
	}
	sort.Strings(tableOrder)

	var b strings.Builder
	b.WriteString("# Activity DB Schema\n\n")
	b.WriteString("Tables: " + strings.Join(activityTables, ", ") + " (schema: public).\n")
	b.WriteString("Check-in and workout days are calendar days in the configured reference timezone.\n\n")

	for _, tableName := range tableOrder {
		b.WriteString("## ")
		b.WriteString(tableName)
		b.WriteString("\n\n| Column | Type | Nullable | Default | References |\n|--------|------|----------|---------|------------|\n")
		for _, c := range byTable[tableName] {
			nullable := "NO"
			if c.Nullable {
				nullable = "YES"
			}
			fmt.Fprintf(&b, "| %s | %s | %s | %s | %s |\n", c.Name, c.DataType, nullable, orDash(c.Default), orDash(c.References))
		}
		b.WriteString("\n")
	}

	return strings.TrimSuffix(b.String(), "\n\n") + "\n"
}

func orDash(s *string) string {
	if s == nil || *s == "" {
		return "-"
	}
	return *s
}

// resolve accepts either the numeric member table id or the display member id.
func (s *ContextService) resolve(ctx context.Context, member string) (int64, error) {
	member = strings.TrimSpace(member)
	if member == "" {
		return 0, ErrMemberRequired
	}
	if id, err := strconv.ParseInt(member, 10, 64); err == nil && id > 0 {
		return id, nil
	}
	id, err := s.members.ResolveMemberID(ctx, member)
	if err != nil {
		return 0, fmt.Errorf("resolve member %s: %w", member, err)
	}
	return id, nil
}

func (s *ContextService) MemberStreak(ctx context.Context, member string) (*StreakResult, error) {
	id, err := s.resolve(ctx, member)
	if err != nil {
		return nil, err
	}
	return &StreakResult{MemberID: id, Streak: s.activity.Streak(ctx, id)}, nil
}

func (s *ContextService) CheckinFrequency(ctx context.Context, member string) (*FrequencyResult, error) {
	id, err := s.resolve(ctx, member)
	if err != nil {
		return nil, err
	}
	return &FrequencyResult{MemberID: id, Buckets: s.activity.Frequency(ctx, id)}, nil
}

func (s *ContextService) PersonalRecords(ctx context.Context, member string) (*RecordsResult, error) {
	id, err := s.resolve(ctx, member)
	if err != nil {
		return nil, err
	}
	return &RecordsResult{MemberID: id, Records: s.activity.PersonalRecords(ctx, id)}, nil
}
