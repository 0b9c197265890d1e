package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
)

var storeToolDef = mcp.NewTool("plan_store",
	mcp.WithDescription("Store a weekly lesson plan document. The plan is a JSON object with week, unit, and days. Each week number can hold only one active plan."),
	mcp.WithObject("plan",
		mcp.Required(),
		mcp.Description("The week plan document: {week, unit, days: [{topic, objectives, schedule, ...}]}"),
	),
	mcp.WithString("title",
		mcp.Description("Display title for the plan. Defaults to the unit name."),
	),
	mcp.WithString("mode",
		mcp.Description("Collision handling when the week already has an active plan: 'error' (default) or 'replace'."),
		mcp.Enum("error", "replace"),
	),
)

var fetchToolDef = mcp.NewTool("plan_fetch",
	mcp.WithDescription("Fetch a stored lesson plan by id or week number. Exactly one of id or week must be given."),
	mcp.WithString("id",
		mcp.Description("Plan ULID"),
	),
	mcp.WithNumber("week",
		mcp.Description("Week number (positive integer)"),
	),
	mcp.WithBoolean("include_deleted",
		mcp.Description("Allow fetching a soft-deleted plan by id"),
	),
	mcp.WithBoolean("include_plan",
		mcp.Description("Include the full plan document in the response (default true)"),
	),
)

var listToolDef = mcp.NewTool("plan_list",
	mcp.WithDescription("List stored lesson plans ordered by week number."),
	mcp.WithString("unit",
		mcp.Description("Filter to plans whose unit matches exactly"),
	),
	mcp.WithNumber("limit",
		mcp.Description("Page size (default 20, max 100)"),
	),
	mcp.WithNumber("offset",
		mcp.Description("Page offset (default 0)"),
	),
)

var latestToolDef = mcp.NewTool("plan_latest",
	mcp.WithDescription("Return the most recently updated plan, or a null item when none are stored."),
	mcp.WithBoolean("include_plan",
		mcp.Description("Include the full plan document (default false)"),
	),
)

var deleteToolDef = mcp.NewTool("plan_delete",
	mcp.WithDescription("Soft-delete a lesson plan by id or week number. The week becomes available for a new plan; purge removes deleted plans permanently."),
	mcp.WithString("id",
		mcp.Description("Plan ULID"),
	),
	mcp.WithNumber("week",
		mcp.Description("Week number"),
	),
)

var generateToolDef = mcp.NewTool("plan_generate",
	mcp.WithDescription("Generate the week's markdown documents: one lesson plan and one slide outline per day, plus a teacher handout. Files are written under the configured output directory."),
	mcp.WithString("id",
		mcp.Description("Plan ULID"),
	),
	mcp.WithNumber("week",
		mcp.Description("Week number"),
	),
)

var exportToolDef = mcp.NewTool("plan_export",
	mcp.WithDescription("Export stored plans to a JSONL file for backup or transfer."),
	mcp.WithString("path",
		mcp.Description("Destination file path (.jsonl). Defaults to a timestamped file under ~/.chalk/exports/."),
	),
	mcp.WithString("name",
		mcp.Description("Base name for the default export filename"),
	),
	mcp.WithBoolean("include_deleted",
		mcp.Description("Include soft-deleted plans in the export"),
	),
)

var importToolDef = mcp.NewTool("plan_import",
	mcp.WithDescription("Import plans from a JSONL export file."),
	mcp.WithString("path",
		mcp.Required(),
		mcp.Description("Path to the export file"),
	),
	mcp.WithString("mode",
		mcp.Description("Collision handling: 'error' (default, abort on any collision) or 'replace' (overwrite colliding plans)."),
		mcp.Enum("error", "replace"),
	),
)

var purgeToolDef = mcp.NewTool("plan_purge",
	mcp.WithDescription("Permanently delete soft-deleted plans. Irreversible."),
	mcp.WithNumber("older_than_days",
		mcp.Description("Only purge plans deleted more than N days ago"),
	),
)
