package schema

// RefPlayerTable represents the 'players' table. Name is stored as CITEXT
// at the database level to give case-insensitive uniqueness for free.
type RefPlayerTable struct {
	Table        string
	ID           string
	Name         string
	Banned       string
	Nationality  string
	Subdivision  string
	Score        string
	CreatedAt    string
}

var RefPlayer = RefPlayerTable{
	Table:       "players",
	ID:          "id",
	Name:        "name",
	Banned:      "banned",
	Nationality: "nationality",
	Subdivision: "subdivision",
	Score:       "score",
	CreatedAt:   "created_at",
}

func (t RefPlayerTable) Columns() []string {
	return []string{t.ID, t.Name, t.Banned, t.Nationality, t.Subdivision, t.Score, t.CreatedAt}
}

// RefNationalityTable represents the 'nationalities' lookup table.
type RefNationalityTable struct {
	Table       string
	CountryCode string
	Name        string
	Score       string
}

var RefNationality = RefNationalityTable{
	Table:       "nationalities",
	CountryCode: "iso_country_code",
	Name:        "nation",
	Score:       "score",
}

func (t RefNationalityTable) Columns() []string {
	return []string{t.CountryCode, t.Name, t.Score}
}

// RefSubdivisionTable represents the 'subdivisions' lookup table.
type RefSubdivisionTable struct {
	Table          string
	CountryCode    string
	SubdivisionCode string
	Name           string
	Score          string
}

var RefSubdivision = RefSubdivisionTable{
	Table:           "subdivisions",
	CountryCode:     "iso_country_code",
	SubdivisionCode: "iso_subdivision_code",
	Name:            "name",
	Score:           "score",
}

func (t RefSubdivisionTable) Columns() []string {
	return []string{t.CountryCode, t.SubdivisionCode, t.Name, t.Score}
}

// RefPlayerClaimTable represents the 'player_claims' table.
type RefPlayerClaimTable struct {
	Table          string
	UserID         string
	PlayerID       string
	Verified       string
	LockSubmissions string
}

var RefPlayerClaim = RefPlayerClaimTable{
	Table:           "player_claims",
	UserID:          "member_id",
	PlayerID:        "player_id",
	Verified:        "verified",
	LockSubmissions: "lock_submissions",
}

func (t RefPlayerClaimTable) Columns() []string {
	return []string{t.UserID, t.PlayerID, t.Verified, t.LockSubmissions}
}

// RefMemberTable represents the 'members' table: the minimal identity
// record the core needs to attribute audit-log entries to a principal.
// Full account management (registration, password, sessions) is an
// external collaborator and out of scope.
type RefMemberTable struct {
	Table string
	ID    string
	Name  string
}

var RefMember = RefMemberTable{
	Table: "members",
	ID:    "id",
	Name:  "name",
}

func (t RefMemberTable) Columns() []string {
	return []string{t.ID, t.Name}
}
