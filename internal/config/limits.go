package config

const (
	// MaxLabelLength matches the VARCHAR(255) label column.
	MaxLabelLength = 255

	// MinRenameLabelLength and MaxRenameLabelLength bound labels set through
	// the rename endpoint. Uploads only require a non-empty label.
	MinRenameLabelLength = 2
	MaxRenameLabelLength = 100

	// MaxPathLength matches the VARCHAR(255) pdf_path and thumb_path columns.
	MaxPathLength = 255

	// DefaultMaxUploadBytes is the request body limit for uploads (50 MiB).
	DefaultMaxUploadBytes = 50 * 1024 * 1024
)
