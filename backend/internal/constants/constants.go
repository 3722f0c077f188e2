package constants

// Model defaults
const (
	DefaultChatModel  = "gpt-4o-mini"
	DefaultEmbedModel = "text-embedding-3-large"
)

// Advisor token limits
const (
	RoadmapMaxTokens         = 2000
	SkillGapMaxTokens        = 2000
	RecommendationsMaxTokens = 1500
)

// Vector store
const (
	// JobsCollection is the name of the job postings collection
	JobsCollection = "jobs"
)

// Request limits
const (
	DefaultScrapeLimit = 20
	MaxScrapeLimit     = 100
	DefaultMatchCount  = 5
	MaxMatchCount      = 20

	// MetadataListSeparator joins list-valued metadata fields
	MetadataListSeparator = ", "
)

// Job sources
const (
	SourceIndeed = "indeed"
	SourceManual = "manual"
)
