package pathway

// Purpose labels attached to model calls for the audit log.
const (
	PurposeCurriculum = "curriculum"
	PurposeTheory     = "theory"
)

// Config holds generation settings for the two model calls.
type Config struct {
	CurriculumMaxTokens int     `mapstructure:"curriculum_max_tokens"`
	TheoryMaxTokens     int     `mapstructure:"theory_max_tokens"`
	Temperature         float64 `mapstructure:"temperature"`
}

// DefaultConfig returns sensible defaults for curriculum and theory
// generation.
func DefaultConfig() Config {
	return Config{
		CurriculumMaxTokens: 512,
		TheoryMaxTokens:     2048,
		Temperature:         0.7,
	}
}
