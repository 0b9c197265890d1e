package mcp

import (
	"context"
	"database/sql"
	"encoding/json"
	stderrors "errors"

	"github.com/mark3labs/mcp-go/mcp"

	"chalk/internal/config"
	"chalk/internal/errors"
	"chalk/internal/ops"
)

// Handlers holds dependencies for MCP tool handlers.
type Handlers struct {
	db  *sql.DB
	cfg *config.Config
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(db *sql.DB, cfg *config.Config) *Handlers {
	return &Handlers{db: db, cfg: cfg}
}

// Argument structs, one per tool. Field names mirror the schemas declared
// in tools.go.

type StoreRequest struct {
	Plan  json.RawMessage `json:"plan"`
	Title string          `json:"title,omitempty"`
	Mode  string          `json:"mode,omitempty"`
}

type FetchRequest struct {
	ID             string `json:"id,omitempty"`
	Week           int    `json:"week,omitempty"`
	IncludeDeleted bool   `json:"include_deleted,omitempty"`
	IncludePlan    *bool  `json:"include_plan,omitempty"`
}

type ListRequest struct {
	Unit   string `json:"unit,omitempty"`
	Limit  int    `json:"limit,omitempty"`
	Offset int    `json:"offset,omitempty"`
}

type LatestRequest struct {
	IncludePlan *bool `json:"include_plan,omitempty"`
}

type DeleteRequest struct {
	ID   string `json:"id,omitempty"`
	Week int    `json:"week,omitempty"`
}

type GenerateRequest struct {
	ID   string `json:"id,omitempty"`
	Week int    `json:"week,omitempty"`
}

type ExportRequest struct {
	Path           string `json:"path,omitempty"`
	Name           string `json:"name,omitempty"`
	IncludeDeleted bool   `json:"include_deleted,omitempty"`
}

type ImportRequest struct {
	Path string `json:"path"`
	Mode string `json:"mode,omitempty"`
}

type PurgeRequest struct {
	OlderThanDays *int `json:"older_than_days,omitempty"`
}

// run decodes the tool arguments, invokes op, and converts the outcome to
// an MCP result. Operation errors come back as IsError results, never as
// Go errors, so the client always sees the structured payload.
func run[T any](req mcp.CallToolRequest, op func(T) (any, error)) (*mcp.CallToolResult, error) {
	input, err := decode[T](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}
	result, err := op(input)
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(result)
}

// HandleStore handles the plan_store tool call.
func (h *Handlers) HandleStore(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return run(req, func(in StoreRequest) (any, error) {
		mode := ops.StoreModeError
		if in.Mode == "replace" {
			mode = ops.StoreModeReplace
		}
		return ops.Store(h.db, ops.StoreInput{
			PlanJSON: planJSONString(in.Plan),
			Title:    in.Title,
			Mode:     mode,
		})
	})
}

// HandleFetch handles the plan_fetch tool call.
func (h *Handlers) HandleFetch(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return run(req, func(in FetchRequest) (any, error) {
		return ops.Fetch(h.db, ops.FetchInput{
			ID:             in.ID,
			Week:           in.Week,
			IncludeDeleted: in.IncludeDeleted,
			IncludePlan:    in.IncludePlan,
		})
	})
}

// HandleList handles the plan_list tool call.
func (h *Handlers) HandleList(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return run(req, func(in ListRequest) (any, error) {
		return ops.List(h.db, ops.ListInput{
			Unit:   in.Unit,
			Limit:  in.Limit,
			Offset: in.Offset,
		})
	})
}

// HandleLatest handles the plan_latest tool call.
func (h *Handlers) HandleLatest(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return run(req, func(in LatestRequest) (any, error) {
		return ops.Latest(h.db, ops.LatestInput{IncludePlan: in.IncludePlan})
	})
}

// HandleDelete handles the plan_delete tool call.
func (h *Handlers) HandleDelete(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return run(req, func(in DeleteRequest) (any, error) {
		return ops.Delete(h.db, ops.DeleteInput{ID: in.ID, Week: in.Week})
	})
}

// HandleGenerate handles the plan_generate tool call.
func (h *Handlers) HandleGenerate(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return run(req, func(in GenerateRequest) (any, error) {
		return ops.Generate(ctx, h.db, h.cfg, ops.GenerateInput{ID: in.ID, Week: in.Week})
	})
}

// HandleExport handles the plan_export tool call.
func (h *Handlers) HandleExport(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return run(req, func(in ExportRequest) (any, error) {
		return ops.Export(ctx, h.db, h.cfg, ops.ExportInput{
			Path:           in.Path,
			Name:           in.Name,
			IncludeDeleted: in.IncludeDeleted,
		})
	})
}

// HandleImport handles the plan_import tool call.
func (h *Handlers) HandleImport(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return run(req, func(in ImportRequest) (any, error) {
		mode := ops.ImportModeError
		if in.Mode == "replace" {
			mode = ops.ImportModeReplace
		}
		return ops.Import(h.db, h.cfg, ops.ImportInput{Path: in.Path, Mode: mode})
	})
}

// HandlePurge handles the plan_purge tool call.
func (h *Handlers) HandlePurge(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return run(req, func(in PurgeRequest) (any, error) {
		return ops.Purge(h.db, ops.PurgeInput{OlderThanDays: in.OlderThanDays})
	})
}

// planJSONString normalizes the plan argument to a JSON document string.
// Clients may send the plan as an object or as a pre-serialized string.
func planJSONString(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			return s
		}
	}
	return string(raw)
}

// errorResult converts any error to an IsError tool result. ChalkError
// fields pass through, with one exception: INTERNAL errors drop their
// details so file paths and SQL text never reach the client. Wrapper
// context ("days[2]: ...") stays in the message.
func errorResult(err error) *mcp.CallToolResult {
	errorObj := map[string]any{
		"code":    "INTERNAL",
		"message": "an internal error occurred",
		"status":  500,
	}

	var cErr *errors.ChalkError
	if stderrors.As(err, &cErr) {
		message := cErr.Message
		if full := err.Error(); full != cErr.Error() {
			message = full
		}
		errorObj = map[string]any{
			"code":    cErr.Code,
			"message": message,
			"status":  cErr.Status,
		}
		if cErr.Code != errors.ErrInternal && cErr.Details != nil {
			errorObj["details"] = cErr.Details
		}
	}

	content, _ := json.Marshal(map[string]any{"error": errorObj})
	return &mcp.CallToolResult{
		Content: []mcp.Content{mcp.TextContent{Type: "text", Text: string(content)}},
		IsError: true,
	}
}

func successResult(data any) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultJSON(data)
}
