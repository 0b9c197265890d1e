package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/urfave/cli/v2"

	"chalk/internal/config"
	"chalk/internal/errors"
	"chalk/internal/ops"
	"chalk/internal/web"
)

// newCLIApp creates the CLI application with all commands.
func newCLIApp(db *sql.DB, cfg *config.Config) *cli.App {
	app := &cli.App{
		Name:    "chalk",
		Usage:   "Classroom lesson plan generator",
		Version: Version,
		Commands: []*cli.Command{
			storeCmd(db),
			fetchCmd(db),
			listCmd(db),
			latestCmd(db),
			deleteCmd(db),
			generateCmd(db, cfg),
			exportCmd(db, cfg),
			importCmd(db, cfg),
			purgeCmd(db),
			serveCmd(db, cfg),
		},
	}
	// The default handler calls os.Exit, which would kill the test binary.
	app.ExitErrHandler = func(_ *cli.Context, _ error) {}
	return app
}

func storeCmd(db *sql.DB) *cli.Command {
	return &cli.Command{
		Name:  "store",
		Usage: "Store a week plan (reads the plan JSON from stdin or --file)",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "file", Aliases: []string{"f"}, Usage: "Read the plan document from a file instead of stdin"},
			&cli.StringFlag{Name: "title", Aliases: []string{"t"}, Usage: "Plan title (defaults to the unit name)"},
			&cli.StringFlag{Name: "mode", Aliases: []string{"m"}, Value: "error", Usage: "Week collision mode: error|replace"},
		},
		Action: func(c *cli.Context) error {
			planJSON, err := readPlanDocument(c)
			if err != nil {
				return err
			}
			return respond(ops.Store(db, ops.StoreInput{
				PlanJSON: planJSON,
				Title:    c.String("title"),
				Mode:     ops.StoreMode(c.String("mode")),
			}))
		},
	}
}

// readPlanDocument takes the plan JSON from --file when given, otherwise
// from piped stdin.
func readPlanDocument(c *cli.Context) (string, error) {
	if path := c.String("file"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return "", outputError(errors.NewInvalidRequest(fmt.Sprintf("cannot read plan file: %v", err)))
		}
		return string(data), nil
	}

	if !stdinHasData() {
		return "", outputError(errors.NewInvalidRequest("plan JSON must be piped via stdin or given with --file"))
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", outputError(errors.NewInternal(err))
	}
	return strings.TrimSpace(string(data)), nil
}

func fetchCmd(db *sql.DB) *cli.Command {
	return &cli.Command{
		Name:      "fetch",
		Usage:     "Fetch a plan by ID or week number",
		ArgsUsage: "[id]",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "week", Aliases: []string{"w"}, Usage: "Week number"},
			&cli.BoolFlag{Name: "include-deleted", Usage: "Include soft-deleted plans"},
			&cli.BoolFlag{Name: "no-plan", Usage: "Exclude the plan document from output"},
		},
		Action: func(c *cli.Context) error {
			input := ops.FetchInput{
				ID:             c.Args().First(),
				Week:           c.Int("week"),
				IncludeDeleted: c.Bool("include-deleted"),
			}
			if c.Bool("no-plan") {
				includePlan := false
				input.IncludePlan = &includePlan
			}
			return respond(ops.Fetch(db, input))
		},
	}
}

func listCmd(db *sql.DB) *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "List stored plans ordered by week number",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "unit", Aliases: []string{"u"}, Usage: "Filter by unit name"},
			&cli.IntFlag{Name: "limit", Aliases: []string{"l"}, Value: 20, Usage: "Maximum items to return"},
			&cli.IntFlag{Name: "offset", Aliases: []string{"o"}, Value: 0, Usage: "Items to skip"},
		},
		Action: func(c *cli.Context) error {
			return respond(ops.List(db, ops.ListInput{
				Unit:   c.String("unit"),
				Limit:  c.Int("limit"),
				Offset: c.Int("offset"),
			}))
		},
	}
}

func latestCmd(db *sql.DB) *cli.Command {
	return &cli.Command{
		Name:  "latest",
		Usage: "Get the most recently updated plan",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "include-plan", Usage: "Include the plan document in output"},
		},
		Action: func(c *cli.Context) error {
			input := ops.LatestInput{}
			if c.Bool("include-plan") {
				includePlan := true
				input.IncludePlan = &includePlan
			}
			return respond(ops.Latest(db, input))
		},
	}
}

func deleteCmd(db *sql.DB) *cli.Command {
	return &cli.Command{
		Name:      "delete",
		Usage:     "Soft-delete a plan",
		ArgsUsage: "[id]",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "week", Aliases: []string{"w"}, Usage: "Week number"},
		},
		Action: func(c *cli.Context) error {
			return respond(ops.Delete(db, ops.DeleteInput{
				ID:   c.Args().First(),
				Week: c.Int("week"),
			}))
		},
	}
}

func generateCmd(db *sql.DB, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:      "generate",
		Usage:     "Generate the week's markdown documents (lesson plans, slides, handout)",
		ArgsUsage: "[id]",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "week", Aliases: []string{"w"}, Usage: "Week number"},
		},
		Action: func(c *cli.Context) error {
			return respond(ops.Generate(context.Background(), db, cfg, ops.GenerateInput{
				ID:   c.Args().First(),
				Week: c.Int("week"),
			}))
		},
	}
}

func exportCmd(db *sql.DB, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "Export plans to a JSONL file",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "path", Aliases: []string{"p"}, Usage: "Export file path (default: ~/.chalk/exports/<name>-<timestamp>.jsonl)"},
			&cli.StringFlag{Name: "name", Aliases: []string{"n"}, Usage: "Base name for the default export filename"},
			&cli.BoolFlag{Name: "include-deleted", Usage: "Include soft-deleted plans"},
		},
		Action: func(c *cli.Context) error {
			return respond(ops.Export(context.Background(), db, cfg, ops.ExportInput{
				Path:           c.String("path"),
				Name:           c.String("name"),
				IncludeDeleted: c.Bool("include-deleted"),
			}))
		},
	}
}

func importCmd(db *sql.DB, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "import",
		Usage: "Import plans from a JSONL file",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "path", Aliases: []string{"p"}, Required: true, Usage: "Import file path"},
			&cli.StringFlag{Name: "mode", Aliases: []string{"m"}, Value: "error", Usage: "Collision mode: error|replace"},
		},
		Action: func(c *cli.Context) error {
			return respond(ops.Import(db, cfg, ops.ImportInput{
				Path: c.String("path"),
				Mode: ops.ImportMode(c.String("mode")),
			}))
		},
	}
}

func purgeCmd(db *sql.DB) *cli.Command {
	return &cli.Command{
		Name:  "purge",
		Usage: "Permanently delete soft-deleted plans",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "older-than", Usage: "Only purge if deleted more than N days ago (e.g., 7d)"},
		},
		Action: func(c *cli.Context) error {
			input := ops.PurgeInput{}
			if olderThan := c.String("older-than"); olderThan != "" {
				days, err := parseDuration(olderThan)
				if err != nil {
					return outputError(errors.NewInvalidRequest(err.Error()))
				}
				input.OlderThanDays = &days
			}
			return respond(ops.Purge(db, input))
		},
	}
}

func serveCmd(db *sql.DB, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Start the web preview UI",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "bind", Aliases: []string{"b"}, Value: "127.0.0.1", Usage: "Bind address"},
			&cli.IntFlag{Name: "port", Aliases: []string{"p"}, Value: 8787, Usage: "Listen port"},
		},
		Action: func(c *cli.Context) error {
			srv := web.NewServer(db, cfg, Version, c.String("bind"), c.Int("port"))
			if err := web.Run(srv); err != nil {
				return cli.Exit(err.Error(), 1)
			}
			return nil
		},
	}
}

// respond writes an operation result as indented JSON on stdout, or its
// error in the CLI format.
func respond[T any](output T, err error) error {
	if err != nil {
		return outputError(err)
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(output)
}

// outputError renders an error as "[CODE] message" with exit status 1.
func outputError(err error) error {
	if cErr, ok := err.(*errors.ChalkError); ok {
		return cli.Exit(fmt.Sprintf("[%s] %s", cErr.Code, cErr.Message), 1)
	}
	return cli.Exit(err.Error(), 1)
}

// stdinHasData reports whether stdin is a pipe rather than a terminal.
func stdinHasData() bool {
	stat, err := os.Stdin.Stat()
	return err == nil && stat.Mode()&os.ModeCharDevice == 0
}

// parseDuration converts a "7d" style duration to a day count.
func parseDuration(s string) (int, error) {
	numStr, ok := strings.CutSuffix(s, "d")
	if !ok {
		return 0, fmt.Errorf("duration must end with 'd' (days), e.g., 7d")
	}
	days, err := strconv.Atoi(numStr)
	if err != nil {
		return 0, fmt.Errorf("invalid duration: %s", s)
	}
	if days < 0 {
		return 0, fmt.Errorf("duration must be non-negative")
	}
	return days, nil
}
