package mcp

import (
	"context"
	"database/sql"
	"log"
	"maps"
	"slices"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"chalk/internal/config"
)

// KnownTypes lists the type prefixes tool names are grouped under.
var KnownTypes = []string{"plan"}

type toolEntry struct {
	def     mcp.Tool
	handler func(*Handlers) server.ToolHandlerFunc
}

func entry(def mcp.Tool, pick func(*Handlers) server.ToolHandlerFunc) toolEntry {
	return toolEntry{def: def, handler: pick}
}

// toolRegistry is the single source of truth for which tools exist. Both
// registration and the disable-list validation read from it.
var toolRegistry = map[string]toolEntry{
	"plan_store":    entry(storeToolDef, func(h *Handlers) server.ToolHandlerFunc { return h.HandleStore }),
	"plan_fetch":    entry(fetchToolDef, func(h *Handlers) server.ToolHandlerFunc { return h.HandleFetch }),
	"plan_list":     entry(listToolDef, func(h *Handlers) server.ToolHandlerFunc { return h.HandleList }),
	"plan_latest":   entry(latestToolDef, func(h *Handlers) server.ToolHandlerFunc { return h.HandleLatest }),
	"plan_delete":   entry(deleteToolDef, func(h *Handlers) server.ToolHandlerFunc { return h.HandleDelete }),
	"plan_generate": entry(generateToolDef, func(h *Handlers) server.ToolHandlerFunc { return h.HandleGenerate }),
	"plan_export":   entry(exportToolDef, func(h *Handlers) server.ToolHandlerFunc { return h.HandleExport }),
	"plan_import":   entry(importToolDef, func(h *Handlers) server.ToolHandlerFunc { return h.HandleImport }),
	"plan_purge":    entry(purgeToolDef, func(h *Handlers) server.ToolHandlerFunc { return h.HandlePurge }),
}

// AllToolNames returns every registered tool name.
func AllToolNames() []string {
	return slices.Collect(maps.Keys(toolRegistry))
}

// unknownNames filters names down to those the known predicate rejects.
func unknownNames(names []string, known func(string) bool) []string {
	unknown := []string{}
	for _, name := range names {
		if !known(name) {
			unknown = append(unknown, name)
		}
	}
	return unknown
}

// ValidateDisabledTools returns the names that match no registered tool.
func ValidateDisabledTools(names []string) []string {
	return unknownNames(names, func(n string) bool {
		_, ok := toolRegistry[n]
		return ok
	})
}

// ValidateDisabledTypes returns the names that match no known type.
func ValidateDisabledTypes(names []string) []string {
	return unknownNames(names, func(n string) bool {
		return slices.Contains(KnownTypes, n)
	})
}

// GetTypeForTool returns the type prefix of a tool name, the part before
// the first underscore ("plan_store" yields "plan").
func GetTypeForTool(toolName string) string {
	if prefix, _, found := strings.Cut(toolName, "_"); found && prefix != "" {
		return prefix
	}
	return ""
}

// ExpandTypesToTools returns every registered tool whose type prefix is in
// the given list.
func ExpandTypesToTools(types []string) []string {
	if len(types) == 0 {
		return nil
	}
	tools := []string{}
	for name := range toolRegistry {
		if slices.Contains(types, GetTypeForTool(name)) {
			tools = append(tools, name)
		}
	}
	return tools
}

// disabledSet merges the per-tool and per-type disable lists.
func disabledSet(cfg *config.Config) map[string]bool {
	disabled := map[string]bool{}
	for _, name := range ExpandTypesToTools(cfg.DisabledTypes) {
		disabled[name] = true
	}
	for _, name := range cfg.DisabledTools {
		disabled[name] = true
	}
	return disabled
}

// NewServer builds an MCP server with every tool registered except those
// disabled through cfg.DisabledTools or cfg.DisabledTypes.
func NewServer(db *sql.DB, cfg *config.Config, version string) *server.MCPServer {
	s := server.NewMCPServer(
		"chalk",
		version,
		server.WithToolCapabilities(true),
	)

	h := NewHandlers(db, cfg)
	disabled := disabledSet(cfg)
	for name, e := range toolRegistry {
		if !disabled[name] {
			s.AddTool(e.def, e.handler(h))
		}
	}
	return s
}

// Run serves MCP over stdio until the client disconnects. Unknown names in
// the disable lists get a warning instead of failing startup; log writes to
// stderr, so the stdio transport stays clean.
func Run(db *sql.DB, cfg *config.Config, version string) error {
	for _, name := range ValidateDisabledTools(cfg.DisabledTools) {
		log.Printf("warning: disabled_tools entry %q matches no tool", name)
	}
	for _, name := range ValidateDisabledTypes(cfg.DisabledTypes) {
		log.Printf("warning: disabled_types entry %q matches no type", name)
	}
	return server.ServeStdio(NewServer(db, cfg, version))
}

// ToolHandlerFunc is the signature shared by all tool handlers.
type ToolHandlerFunc func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error)
