package main

import (
	"fmt"
	"os"
	"path/filepath"

	"chalk/internal/config"
	"chalk/internal/db"
	"chalk/internal/mcp"
)

// Version is set via -ldflags at build time.
var Version = "dev"

// cliCommands maps first arguments that select CLI mode. Anything else
// falls through to the MCP server.
var cliCommands = map[string]bool{
	"store": true, "fetch": true, "list": true, "latest": true,
	"delete": true, "generate": true,
	"export": true, "import": true, "purge": true,
	"serve": true, "help": true,
}

var helpVersionFlags = map[string]bool{
	"--help": true, "-h": true, "--version": true, "-v": true,
}

// firstArg returns the first program argument, or "" when none was given.
func firstArg() string {
	if len(os.Args) < 2 {
		return ""
	}
	return os.Args[1]
}

func isCLIMode() bool {
	arg := firstArg()
	return cliCommands[arg] || helpVersionFlags[arg]
}

func isHelpOrVersion() bool {
	arg := firstArg()
	return helpVersionFlags[arg] || arg == "help"
}

// isTerminal reports whether stdin is a character device rather than a pipe.
func isTerminal() bool {
	stat, err := os.Stdin.Stat()
	return err == nil && stat.Mode()&os.ModeCharDevice != 0
}

func printBanner() {
	fmt.Println(`
    ___ _  _   _   _    _  __
   / __| || | /_\ | |  | |/ /
  | (__| __ |/ _ \| |__| ' <
   \___|_||_/_/ \_\____|_|\_\

  Classroom lesson plan generator

  Usage: chalk <command> [options]
         chalk --help

  MCP server mode requires piped input.`)
}

// loadConfig layers the nearest course config (found by walking upward
// from the working directory) over the global one.
func loadConfig(baseDir string) (*config.Config, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return config.Load(baseDir)
	}
	return config.LoadWithCourse(baseDir, cwd)
}

func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "error: "+format+"\n", args...)
	os.Exit(1)
}

func main() {
	// Running interactively with no arguments almost always means someone
	// typed "chalk" expecting usage, not an MCP server on their terminal.
	if len(os.Args) < 2 && isTerminal() {
		printBanner()
		return
	}

	// Help and version never need the database.
	if isHelpOrVersion() {
		if err := newCLIApp(nil, nil).Run(os.Args); err != nil {
			fatal("%v", err)
		}
		return
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		fatal("could not determine home directory: %v", err)
	}
	baseDir := filepath.Join(homeDir, ".chalk")

	database, err := db.Init(baseDir)
	if err != nil {
		fatal("failed to initialize database: %v", err)
	}
	defer database.Close()

	cfg, err := loadConfig(baseDir)
	if err != nil {
		fatal("failed to load config: %v", err)
	}
	db.ConfigurePool(database, cfg)

	if isCLIMode() {
		if err := newCLIApp(database, cfg).Run(os.Args); err != nil {
			fatal("%v", err)
		}
		return
	}

	// A typo'd subcommand on a terminal should not silently become an MCP
	// server waiting on stdin.
	if len(os.Args) >= 2 && isTerminal() {
		fmt.Fprintf(os.Stderr, "error: unknown command %q\n", os.Args[1])
		fmt.Fprintf(os.Stderr, "Run 'chalk --help' for usage.\n")
		os.Exit(1)
	}

	if err := mcp.Run(database, cfg, Version); err != nil {
		fatal("%v", err)
	}
}
