package mcp

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/2beens/memberhub/internal/db"
)

// NewServer builds an MCP server with member activity tools: schema, streak,
// monthly check-in frequency and personal records.
// Used by cmd/activity_mcp (stdio) and the backend's /mcp mount.
func NewServer(q db.Querier, activity activityService, members memberResolver) *mcp.Server {
	svc := NewContextService(NewSchemaRepo(q), activity, members)
	h := NewHandler(svc)
	s := mcp.NewServer(&mcp.Implementation{
		Name:    "memberhub-activity",
		Version: "1.0.0",
	}, nil)

	mcp.AddTool(s, &mcp.Tool{
		Name:        "get_activity_schema",
		Description: "Returns the DB schema for the tables member activity is computed from (members, checkins, workout_sessions, workout_exercises): columns, types, nullability, defaults and foreign key references.",
	}, h.GetSchemaTool())

	mcp.AddTool(s, &mcp.Tool{
		Name:        "get_member_streak",
		Description: "Returns the member's current check-in streak: consecutive calendar days with a gym visit, ending today or yesterday. Arg: member_id (table id or display id like GYM1-0042).",
	}, h.GetMemberStreakTool())

	mcp.AddTool(s, &mcp.Tool{
		Name:        "get_checkin_frequency",
		Description: "Returns visit counts per calendar month for the member's most recent months with check-ins, oldest first. Arg: member_id.",
	}, h.GetCheckinFrequencyTool())

	mcp.AddTool(s, &mcp.Tool{
		Name:        "get_personal_records",
		Description: "Returns the member's best set per exercise ranked by estimated one-rep max (Epley), with the top weight and the date it was lifted. Arg: member_id.",
	}, h.GetPersonalRecordsTool())

	return s
}
