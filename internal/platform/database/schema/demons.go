package schema

// RefDemonTable represents the 'demons' table.
type RefDemonTable struct {
	Table       string
	ID          string
	Name        string
	Position    string
	Requirement string
	Video       string
	LevelID     string
	Verifier    string
	Publisher   string
	CreatedAt   string
	UpdatedAt   string
}

// RefDemon is the schema definition for demons.
var RefDemon = RefDemonTable{
	Table:       "demons",
	ID:          "id",
	Name:        "name",
	Position:    "position",
	Requirement: "requirement",
	Video:       "video",
	LevelID:     "level_id",
	Verifier:    "verifier",
	Publisher:   "publisher",
	CreatedAt:   "created_at",
	UpdatedAt:   "updated_at",
}

func (t RefDemonTable) Columns() []string {
	return []string{t.ID, t.Name, t.Position, t.Requirement, t.Video, t.LevelID, t.Verifier, t.Publisher, t.CreatedAt, t.UpdatedAt}
}

// RefCreatorTable represents the 'creators' many-to-many join table.
type RefCreatorTable struct {
	Table   string
	Demon   string
	Creator string
}

var RefCreator = RefCreatorTable{
	Table:   "creators",
	Demon:   "demon",
	Creator: "creator",
}

func (t RefCreatorTable) Columns() []string {
	return []string{t.Demon, t.Creator}
}

// RefDemonAdditionTable represents the 'demon_additions' audit table.
type RefDemonAdditionTable struct {
	Table string
	ID    string
	Demon string
	Time  string
	User  string
}

var RefDemonAddition = RefDemonAdditionTable{
	Table: "demon_additions",
	ID:    "id",
	Demon: "demon",
	Time:  "time",
	User:  "member",
}

func (t RefDemonAdditionTable) Columns() []string {
	return []string{t.ID, t.Demon, t.Time, t.User}
}

// RefDemonModificationTable represents the 'demon_modifications' audit table.
type RefDemonModificationTable struct {
	Table  string
	ID     string
	Demon  string
	Time   string
	User   string
	Field  string
	Before string
	After  string
}

var RefDemonModification = RefDemonModificationTable{
	Table:  "demon_modifications",
	ID:     "id",
	Demon:  "demon",
	Time:   "time",
	User:   "member",
	Field:  "field",
	Before: "before_value",
	After:  "after_value",
}

func (t RefDemonModificationTable) Columns() []string {
	return []string{t.ID, t.Demon, t.Time, t.User, t.Field, t.Before, t.After}
}
