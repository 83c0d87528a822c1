package constants

import (
	tea "github.com/charmbracelet/bubbletea"
)

// SessionState represents the current state of the TUI application
type SessionState int

// ConfirmationMsg is a message to trigger a confirmation dialog
type ConfirmationMsg struct {
	Message string
	Action  func() tea.Cmd
}

const (
	AppName           = "sustainlog"
	Version           = "v0.1.0"
	DefaultBaseURL    = "http://localhost:8000/api"
	DefaultConfigDir  = "~/.config/sustainlog"
	DefaultConfigFile = "~/.config/sustainlog/config.json"
	LogFileName       = "sustainlog.log"

	// DateFormat is the date format the collection uses for action dates (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// Collection resource
	ActionsPath     = "/actions/"
	RequestIDHeader = "X-Request-ID"

	// User-facing messages
	MsgFieldsRequired  = "All fields are required"
	MsgServerRejected  = "Server validation failed"
	MsgLoadFailed      = "Failed to load actions"
	MsgDeleteFailed    = "Failed to delete action"
	MsgConfirmDelete   = "Delete this action?"
	MsgNoActions       = "No actions yet."
	MsgLoading         = "Loading…"
	TitleAddAction     = "Add Sustainability Action"
	TitleEditAction    = "Edit Action"
	TitleActionsList   = "Actions List"
	ValidationFieldKey = "action"
)

// Session States
const (
	StateActions SessionState = iota
	StateEditing
	StateConfirmation
)
