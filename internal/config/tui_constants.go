package config

// Layout constants.
const (
	// CardWidth is the width of the mission card.
	CardWidth = 48

	// CompactModeThreshold triggers compact rendering below this width.
	CompactModeThreshold = 60

	// BadgeColumns is the number of badges per grid row.
	BadgeColumns = 4

	// BadgeCellWidth is the width of one badge cell.
	BadgeCellWidth = 18

	// ProgressBarWidth is the width of the badge progress bar.
	ProgressBarWidth = 30
)

// Display limits.
const (
	// MaxTitleWidth bounds the mission title on the card.
	MaxTitleWidth = 40

	// MaxDescriptionWidth bounds description lines.
	MaxDescriptionWidth = 44

	// TruncationSuffix appended to truncated strings.
	TruncationSuffix = "..."
)
