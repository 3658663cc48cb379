// Package main is the entry point for the Vapi Dashboard TUI. It loads
// configuration, wires the service manager, and runs the Bubble Tea
// program.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"

	"vapi-dashboard-tui/internal/app"
	"vapi-dashboard-tui/internal/config"
	"vapi-dashboard-tui/internal/services"
	"vapi-dashboard-tui/internal/ui/tabs/agent"
	"vapi-dashboard-tui/internal/ui/tabs/calls"
	"vapi-dashboard-tui/internal/ui/tabs/dashboard"
	"vapi-dashboard-tui/internal/version"
)

func main() {
	if len(os.Args) > 1 && (os.Args[1] == "-v" || os.Args[1] == "--version") {
		fmt.Println(version.Info())
		os.Exit(0)
	}

	if len(os.Args) > 1 && (os.Args[1] == "-h" || os.Args[1] == "--help") {
		printUsage()
		os.Exit(0)
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run contains the main application logic, separated for cleaner error handling.
func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	mgr := services.NewManager(cfg)

	model := app.NewModel(mgr)

	// Each tab reads from the shared application state; mutations flow
	// through the root model.
	state := model.GetState()
	cmds := model.GetCommands()
	tabs := []app.Tab{
		dashboard.New(state, cmds), // Tab 0: KPIs and charts
		calls.New(state, cmds),     // Tab 1: call history and review
		agent.New(state, cmds),     // Tab 2: assistant configuration
	}
	model.SetTabs(tabs)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	go func() {
		<-sigChan
		p.Send(tea.Quit())
	}()

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}

// printUsage prints the command-line usage information.
func printUsage() {
	fmt.Println(`Vapi Dashboard TUI - voice assistant call monitor

Usage:
  vdt [flags]

Flags:
  -h, --help      Show this help message
  -v, --version   Show version information

Keyboard Shortcuts:
  1-3             Switch between tabs (Dashboard, Calls, Agent)
  Tab/Shift+Tab   Navigate between tabs
  j/k, Up/Down    Navigate lists
  Enter           Select/confirm
  r               Refresh calls
  Ctrl+L          Log out
  ?               Toggle help
  q, Ctrl+C       Quit

Environment Variables:
  VAPI_BASE_URL       API base URL (default: https://api.vapi.ai)
  VAPI_ASSISTANT_ID   Assistant ID used to prefill the login form
  VAPI_API_TOKEN      API token used to prefill the login form
  CALL_FETCH_LIMIT    Max calls fetched per refresh (default: 50)
  EXPORT_DIR          Directory for xlsx call reports (default: cwd)
  VDT_LOG             Log file path; logging is off when unset

Configuration:
  The application looks for .env files in the following locations:
  - Current directory
  - ~/.config/vapi-dashboard/.env
  - ~/.vapi-dashboard/.env`)
}
