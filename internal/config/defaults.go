package config

import "github.com/remora-debug/remora/internal/constants"

// DefaultConfig returns a config with sensible defaults: info-level
// pretty logging, two-space indentation, color when stdout is a
// terminal, little-endian decoding.
func DefaultConfig() *Config {
	return &Config{
		Version: SchemaVersion,
		Logging: LoggingConfig{
			Level:  constants.DefaultLogLevel,
			Pretty: true,
		},
		Render: RenderConfig{
			Indent: constants.DefaultIndent,
			Color:  ColorAuto,
		},
		Decode: DecodeConfig{
			ByteOrder: constants.DefaultByteOrder,
		},
	}
}
