package mcp

import (
	"context"
	"encoding/json"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Handler parses tool input, calls the service and formats the MCP result.
type Handler struct {
	service contextService
}

func NewHandler(service contextService) *Handler {
	return &Handler{
		service: service,
	}
}

// MemberInput is the input of every per-member activity tool.
type MemberInput struct {
	MemberID string `json:"member_id" jsonschema:"Member table id (e.g. 42) or display member id (e.g. GYM1-0042)"`
}

func errorResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
		IsError: true,
	}
}

func jsonResult(v any) *mcp.CallToolResult {
	raw, err := json.Marshal(v)
	if err != nil {
		return errorResult("Error encoding result: " + err.Error())
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: string(raw)}},
	}
}

// GetSchemaTool returns the MCP tool handler for get_activity_schema.
func (h *Handler) GetSchemaTool() func(context.Context, *mcp.CallToolRequest, any) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, _ any) (*mcp.CallToolResult, any, error) {
		text, err := h.service.GetSchema(ctx)
		if err != nil {
			return errorResult("Error fetching schema: " + err.Error()), nil, nil
		}
		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: text}},
		}, nil, nil
	}
}

// GetMemberStreakTool returns the MCP tool handler for get_member_streak.
func (h *Handler) GetMemberStreakTool() func(context.Context, *mcp.CallToolRequest, MemberInput) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, in MemberInput) (*mcp.CallToolResult, any, error) {
		res, err := h.service.MemberStreak(ctx, in.MemberID)
		if err != nil {
			return errorResult("Error computing streak: " + err.Error()), nil, nil
		}
		return jsonResult(res), nil, nil
	}
}

// GetCheckinFrequencyTool returns the MCP tool handler for get_checkin_frequency.
func (h *Handler) GetCheckinFrequencyTool() func(context.Context, *mcp.CallToolRequest, MemberInput) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, in MemberInput) (*mcp.CallToolResult, any, error) {
		res, err := h.service.CheckinFrequency(ctx, in.MemberID)
		if err != nil {
			return errorResult("Error computing check-in frequency: " + err.Error()), nil, nil
		}
		return jsonResult(res), nil, nil
	}
}

// GetPersonalRecordsTool returns the MCP tool handler for get_personal_records.
func (h *Handler) GetPersonalRecordsTool() func(context.Context, *mcp.CallToolRequest, MemberInput) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, in MemberInput) (*mcp.CallToolResult, any, error) {
		res, err := h.service.PersonalRecords(ctx, in.MemberID)
		if err != nil {
			return errorResult("Error computing personal records: " + err.Error()), nil, nil
		}
		return jsonResult(res), nil, nil
	}
}
