package anthropic

// Model ID constants for Anthropic Claude models.
// Use these constants instead of raw strings to avoid typos and get IDE support.
// See https://docs.anthropic.com/en/docs/about-claude/models/overview for the full list.
const (
	// Claude Opus 4.6 — Most capable model with adaptive thinking and fast mode
	ClaudeOpus4_6 = "claude-opus-4-6"

	// Claude Sonnet 4.6 — Balanced performance and capability (new)
	ClaudeSonnet4_6 = "claude-sonnet-4-6"

	// Claude Opus 4.5 — Previous Opus generation with date stamp
	ClaudeOpus4_5_20251101 = "claude-opus-4-5-20251101"

	// Claude Opus 4.5 — Previous Opus generation
	ClaudeOpus4_5 = "claude-opus-4-5"

	// Claude Opus 4 — Dated Opus 4 release
	ClaudeOpus4_20250514 = "claude-opus-4-20250514"

	// Claude Sonnet 4.5 — Previous Sonnet generation with date stamp
	ClaudeSonnet4_5_20250929 = "claude-sonnet-4-5-20250929"

	// Claude Sonnet 4.5 — Previous Sonnet generation
	ClaudeSonnet4_5 = "claude-sonnet-4-5"

	// Claude Sonnet 4 — Dated Sonnet 4 release
	ClaudeSonnet4_20250514 = "claude-sonnet-4-20250514"

	// Claude Haiku 4.5 — Fast and cost-effective model with date stamp
	ClaudeHaiku4_5_20251001 = "claude-haiku-4-5-20251001"

	// Claude Haiku 4.5 — Fast and cost-effective model
	ClaudeHaiku4_5 = "claude-haiku-4-5"

	// Claude 3.7 Sonnet with date stamp
	Claude3_7Sonnet_20250219 = "claude-3-7-sonnet-20250219"

	// Claude 3.5 Haiku with date stamp
	Claude3_5Haiku_20241022 = "claude-3-5-haiku-20241022"

	// Claude 3.5 Sonnet with date stamp
	Claude3_5Sonnet_20241022 = "claude-3-5-sonnet-20241022"

	// Claude 3 Opus with date stamp
	Claude3Opus_20240229 = "claude-3-opus-20240229"

	// Claude 3 Haiku with date stamp
	Claude3Haiku_20240307 = "claude-3-haiku-20240307"
)
