package engine

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
	DifficultyEpic   Difficulty = "epic"
)

func (d Difficulty) IsValid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard, DifficultyEpic:
		return true
	default:
		return false
	}
}

type Category string

const (
	CategoryWork     Category = "work"
	CategoryHealth   Category = "health"
	CategoryLearning Category = "learning"
	CategoryPersonal Category = "personal"
)

func (c Category) IsValid() bool {
	switch c {
	case CategoryWork, CategoryHealth, CategoryLearning, CategoryPersonal:
		return true
	default:
		return false
	}
}

// Owner identifies the authenticated caller. Name is only a display hint
// used when bootstrapping a fresh profile.
type Owner struct {
	ID   string
	Name string
}
