package schema

// RefRecordTable represents the 'records' table.
type RefRecordTable struct {
	Table       string
	ID          string
	Progress    string
	Video       string
	RawFootage  string
	Status      string
	Player      string
	Demon       string
	Submitter   string
	CreatedAt   string
	UpdatedAt   string
}

var RefRecord = RefRecordTable{
	Table:      "records",
	ID:         "id",
	Progress:   "progress",
	Video:      "video",
	RawFootage: "raw_footage",
	Status:     "status",
	Player:     "player",
	Demon:      "demon",
	Submitter:  "submitter",
	CreatedAt:  "created_at",
	UpdatedAt:  "updated_at",
}

func (t RefRecordTable) Columns() []string {
	return []string{t.ID, t.Progress, t.Video, t.RawFootage, t.Status, t.Player, t.Demon, t.Submitter, t.CreatedAt, t.UpdatedAt}
}

// RefRecordNoteTable represents the 'record_notes' table.
type RefRecordNoteTable struct {
	Table     string
	ID        string
	RecordID  string
	Content   string
	Author    string
	CreatedAt string
}

var RefRecordNote = RefRecordNoteTable{
	Table:     "record_notes",
	ID:        "id",
	RecordID:  "record",
	Content:   "content",
	Author:    "author",
	CreatedAt: "created_at",
}

func (t RefRecordNoteTable) Columns() []string {
	return []string{t.ID, t.RecordID, t.Content, t.Author, t.CreatedAt}
}

// RefRecordModificationTable represents the 'record_modifications' audit table.
type RefRecordModificationTable struct {
	Table  string
	ID     string
	Record string
	Time   string
	User   string
	Field  string
	Before string
	After  string
}

var RefRecordModification = RefRecordModificationTable{
	Table:  "record_modifications",
	ID:     "id",
	Record: "record",
	Time:   "time",
	User:   "member",
	Field:  "field",
	Before: "before_value",
	After:  "after_value",
}

func (t RefRecordModificationTable) Columns() []string {
	return []string{t.ID, t.Record, t.Time, t.User, t.Field, t.Before, t.After}
}

// RefSubmitterTable represents the 'submitters' table.
type RefSubmitterTable struct {
	Table  string
	ID     string
	IP     string
	Banned string
}

var RefSubmitter = RefSubmitterTable{
	Table:  "submitters",
	ID:     "id",
	IP:     "ip_hash",
	Banned: "banned",
}

func (t RefSubmitterTable) Columns() []string {
	return []string{t.ID, t.IP, t.Banned}
}
