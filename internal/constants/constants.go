// Package constants defines shared configuration constants.
package constants

const (
	// DefaultDir is the per-user directory holding Remora state,
	// relative to the home directory.
	DefaultDir = ".remora"

	// ConfigFile is the configuration file name inside DefaultDir.
	ConfigFile = "config.yaml"

	// HistoryFile is the shell history file name inside DefaultDir.
	HistoryFile = "history"

	// DefaultLogLevel applies when no level is configured.
	DefaultLogLevel = "info"

	// DefaultByteOrder applies when neither the config nor a snapshot
	// names a byte order.
	DefaultByteOrder = "little"

	// DefaultIndent is the indentation step for nested blocks in
	// rendered values.
	DefaultIndent = "  "
)
