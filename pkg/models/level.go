package models

// VocabularyLevel is the difficulty tier controlling generated-word complexity
type VocabularyLevel string

const (
	// LevelBeginner is the default level for new users
	LevelBeginner VocabularyLevel = "beginner"
	// LevelIntermediate targets everyday vocabulary
	LevelIntermediate VocabularyLevel = "intermediate"
	// LevelAdvanced targets less common vocabulary
	LevelAdvanced VocabularyLevel = "advanced"
	// LevelExpert targets rare and idiomatic vocabulary
	LevelExpert VocabularyLevel = "expert"
)

// Levels lists all vocabulary levels in ascending difficulty order
var Levels = []VocabularyLevel{LevelBeginner, LevelIntermediate, LevelAdvanced, LevelExpert}

// Valid reports whether the level is one of the known tiers
func (l VocabularyLevel) Valid() bool {
	switch l {
	case LevelBeginner, LevelIntermediate, LevelAdvanced, LevelExpert:
		return true
	}
	return false
}
