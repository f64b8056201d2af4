// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package demonlist

import (
	"context"
	"io"
	"log/slog"

	"github.com/pointercrate-rs/corengine/internal/platform/apperr"
	"github.com/pointercrate-rs/corengine/internal/platform/ratelimit"
	"github.com/pointercrate-rs/corengine/pkg/pagination"
)

// testLogger discards every record, keeping test output clean.
func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeUnitOfWork runs fn directly against the caller's context; the
// fakes below have no transactional state to join, so there is nothing
// to stash.
type fakeUnitOfWork struct{}

func (fakeUnitOfWork) WithinTx(ctx context.Context, fn func(context.Context) error) error {
	return fn(ctx)
}

// fakeDemonRepository is an in-memory [DemonRepository] for service-level tests.
type fakeDemonRepository struct {
	byID     map[int64]*Demon
	creators map[int64][]int64 // demonID -> playerIDs
	nextID   int64
}

func newFakeDemonRepository() *fakeDemonRepository {
	return &fakeDemonRepository{byID: map[int64]*Demon{}, creators: map[int64][]int64{}}
}

func (f *fakeDemonRepository) List(context.Context, DemonFilter, pagination.Query) ([]*Demon, error) {
	return nil, nil
}

func (f *fakeDemonRepository) FindByID(_ context.Context, id int64) (*Demon, error) {
	d, ok := f.byID[id]
	if !ok {
		return nil, apperr.DemonNotFound(id)
	}
	return d, nil
}

func (f *fakeDemonRepository) FindByPosition(_ context.Context, position int) (*Demon, error) {
	for _, d := range f.byID {
		if d.Position == position {
			return d, nil
		}
	}
	return nil, apperr.DemonNotFound(0)
}

func (f *fakeDemonRepository) FindByName(_ context.Context, name string) (*Demon, error) {
	for _, d := range f.byID {
		if d.Name == name {
			return d, nil
		}
	}
	return nil, apperr.DemonNotFound(0)
}

func (f *fakeDemonRepository) MaxPosition(context.Context) (int, error) {
	max := 0
	for _, d := range f.byID {
		if d.Position > max {
			max = d.Position
		}
	}
	return max, nil
}

func (f *fakeDemonRepository) Create(_ context.Context, demon *Demon) error {
	f.nextID++
	demon.ID = f.nextID
	f.byID[demon.ID] = demon
	return nil
}

func (f *fakeDemonRepository) Update(_ context.Context, demon *Demon) error {
	f.byID[demon.ID] = demon
	return nil
}

func (f *fakeDemonRepository) ShiftPositions(_ context.Context, fromPosition, toPosition, delta int) error {
	for _, d := range f.byID {
		if d.Position >= fromPosition && d.Position <= toPosition {
			d.Position += delta
		}
	}
	return nil
}

func (f *fakeDemonRepository) SetPosition(_ context.Context, demonID int64, position int) error {
	if d, ok := f.byID[demonID]; ok {
		d.Position = position
	}
	return nil
}

func (f *fakeDemonRepository) AddCreator(_ context.Context, demonID, playerID int64) error {
	for _, id := range f.creators[demonID] {
		if id == playerID {
			return apperr.CreatorExists()
		}
	}
	f.creators[demonID] = append(f.creators[demonID], playerID)
	return nil
}

func (f *fakeDemonRepository) RemoveCreator(_ context.Context, demonID, playerID int64) error {
	ids := f.creators[demonID]
	for i, id := range ids {
		if id == playerID {
			f.creators[demonID] = append(ids[:i], ids[i+1:]...)
			return nil
		}
	}
	return apperr.CreatorNotFound()
}

func (f *fakeDemonRepository) ListCreators(_ context.Context, demonID int64) ([]*Player, error) {
	return nil, nil
}

// fakePlayerRepository is an in-memory [PlayerRepository] for service-level tests.
type fakePlayerRepository struct {
	byID    map[int64]*Player
	credits map[int64][]int64 // playerID -> demonIDs they created
	nextID  int64
}

func newFakePlayerRepository() *fakePlayerRepository {
	return &fakePlayerRepository{byID: map[int64]*Player{}, credits: map[int64][]int64{}}
}

func (f *fakePlayerRepository) List(context.Context, PlayerFilter, pagination.Query) ([]*Player, error) {
	return nil, nil
}

func (f *fakePlayerRepository) FindByID(_ context.Context, id int64) (*Player, error) {
	p, ok := f.byID[id]
	if !ok {
		return nil, apperr.PlayerNotFound("")
	}
	return p, nil
}

func (f *fakePlayerRepository) FindByName(_ context.Context, name string) (*Player, error) {
	for _, p := range f.byID {
		if p.Name == name {
			return p, nil
		}
	}
	return nil, apperr.PlayerNotFound(name)
}

func (f *fakePlayerRepository) FindOrCreateByName(ctx context.Context, name string) (*Player, error) {
	if p, err := f.FindByName(ctx, name); err == nil {
		return p, nil
	}
	p := &Player{Name: name}
	return p, f.Create(ctx, p)
}

func (f *fakePlayerRepository) Create(_ context.Context, player *Player) error {
	f.nextID++
	player.ID = f.nextID
	f.byID[player.ID] = player
	return nil
}

func (f *fakePlayerRepository) Update(_ context.Context, player *Player) error {
	f.byID[player.ID] = player
	return nil
}

func (f *fakePlayerRepository) UpdateScore(_ context.Context, playerID int64, score float64) error {
	if p, ok := f.byID[playerID]; ok {
		p.Score = score
	}
	return nil
}

func (f *fakePlayerRepository) Delete(_ context.Context, playerID int64) error {
	delete(f.byID, playerID)
	delete(f.credits, playerID)
	return nil
}

func (f *fakePlayerRepository) ReassignRecords(context.Context, int64, int64) error {
	return nil
}

func (f *fakePlayerRepository) ReassignCredits(_ context.Context, fromPlayerID, toPlayerID int64) error {
	f.credits[toPlayerID] = append(f.credits[toPlayerID], f.credits[fromPlayerID]...)
	delete(f.credits, fromPlayerID)
	return nil
}

func (f *fakePlayerRepository) AllIDs(context.Context) ([]int64, error) {
	ids := make([]int64, 0, len(f.byID))
	for id := range f.byID {
		ids = append(ids, id)
	}
	return ids, nil
}

func (f *fakePlayerRepository) DemonsCreatedBy(_ context.Context, playerID int64) ([]int64, error) {
	return f.credits[playerID], nil
}

// fakeRecordRepository is an in-memory [RecordRepository] for service-level tests.
type fakeRecordRepository struct {
	byID   map[int64]*Record
	notes  map[int64][]*RecordNote
	nextID int64
}

func newFakeRecordRepository() *fakeRecordRepository {
	return &fakeRecordRepository{byID: map[int64]*Record{}, notes: map[int64][]*RecordNote{}}
}

func (f *fakeRecordRepository) List(context.Context, RecordFilter, pagination.Query) ([]*Record, error) {
	return nil, nil
}

func (f *fakeRecordRepository) FindByID(_ context.Context, id int64) (*Record, error) {
	r, ok := f.byID[id]
	if !ok {
		return nil, apperr.RecordNotFound(id)
	}
	return r, nil
}

func (f *fakeRecordRepository) FindByVideo(_ context.Context, video string) (*Record, error) {
	for _, r := range f.byID {
		if r.Video != nil && *r.Video == video {
			return r, nil
		}
	}
	return nil, nil
}

func (f *fakeRecordRepository) FindByPlayerAndDemon(_ context.Context, playerID, demonID int64) ([]*Record, error) {
	var out []*Record
	for _, r := range f.byID {
		if r.PlayerID == playerID && r.DemonID == demonID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeRecordRepository) AllByPlayer(_ context.Context, playerID int64) ([]*Record, error) {
	var out []*Record
	for _, r := range f.byID {
		if r.PlayerID == playerID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeRecordRepository) Create(_ context.Context, record *Record) error {
	f.nextID++
	record.ID = f.nextID
	f.byID[record.ID] = record
	return nil
}

func (f *fakeRecordRepository) Update(_ context.Context, record *Record) error {
	f.byID[record.ID] = record
	return nil
}

func (f *fakeRecordRepository) Delete(_ context.Context, recordID int64) error {
	delete(f.byID, recordID)
	delete(f.notes, recordID)
	return nil
}

func (f *fakeRecordRepository) DeleteMany(ctx context.Context, recordIDs []int64) error {
	for _, id := range recordIDs {
		if err := f.Delete(ctx, id); err != nil {
			return err
		}
	}
	return nil
}

func (f *fakeRecordRepository) TransferNotes(_ context.Context, fromRecordID, toRecordID int64) error {
	f.notes[toRecordID] = append(f.notes[toRecordID], f.notes[fromRecordID]...)
	delete(f.notes, fromRecordID)
	return nil
}

func (f *fakeRecordRepository) AddNote(_ context.Context, note *RecordNote) error {
	f.notes[note.RecordID] = append(f.notes[note.RecordID], note)
	return nil
}

func (f *fakeRecordRepository) DeleteNote(_ context.Context, noteID int64) error {
	for recordID, notes := range f.notes {
		for i, n := range notes {
			if n.ID == noteID {
				f.notes[recordID] = append(notes[:i], notes[i+1:]...)
				return nil
			}
		}
	}
	return apperr.NoteNotFound(noteID)
}

func (f *fakeRecordRepository) ListNotes(_ context.Context, recordID int64) ([]*RecordNote, error) {
	return f.notes[recordID], nil
}

func (f *fakeRecordRepository) ApprovedAndVerified(_ context.Context, playerID int64) ([]*Record, []*Demon, error) {
	var records []*Record
	for _, r := range f.byID {
		if r.PlayerID == playerID && r.Status == StatusApproved {
			records = append(records, r)
		}
	}
	return records, nil, nil
}

// fakeSubmitterRepository is an in-memory [SubmitterRepository] for service-level tests.
type fakeSubmitterRepository struct {
	byID     map[int64]*Submitter
	byIPHash map[string]*Submitter
	nextID   int64
}

func newFakeSubmitterRepository() *fakeSubmitterRepository {
	return &fakeSubmitterRepository{byID: map[int64]*Submitter{}, byIPHash: map[string]*Submitter{}}
}

func (f *fakeSubmitterRepository) FindOrCreateByIPHash(_ context.Context, ipHash string) (*Submitter, error) {
	if s, ok := f.byIPHash[ipHash]; ok {
		return s, nil
	}
	f.nextID++
	s := &Submitter{ID: f.nextID, IPHash: ipHash}
	f.byIPHash[ipHash] = s
	f.byID[s.ID] = s
	return s, nil
}

func (f *fakeSubmitterRepository) FindByID(_ context.Context, id int64) (*Submitter, error) {
	s, ok := f.byID[id]
	if !ok {
		return nil, apperr.SubmitterNotFound(id)
	}
	return s, nil
}

func (f *fakeSubmitterRepository) SetBanned(_ context.Context, submitterID int64, banned bool) error {
	if s, ok := f.byID[submitterID]; ok {
		s.Banned = banned
	}
	return nil
}

// fakeNationalityRepository is an in-memory [NationalityRepository] for service-level tests.
type fakeNationalityRepository struct {
	byCode map[string]*Nationality
}

func newFakeNationalityRepository() *fakeNationalityRepository {
	return &fakeNationalityRepository{byCode: map[string]*Nationality{}}
}

func (f *fakeNationalityRepository) FindByCode(_ context.Context, countryCode string) (*Nationality, error) {
	n, ok := f.byCode[countryCode]
	if !ok {
		return nil, apperr.NationalityNotFound(countryCode)
	}
	return n, nil
}

func (f *fakeNationalityRepository) FindSubdivision(_ context.Context, countryCode, subdivisionCode string) (*Subdivision, error) {
	return nil, apperr.SubdivisionNotFound(subdivisionCode)
}

func (f *fakeNationalityRepository) List(context.Context) ([]*Nationality, error) {
	out := make([]*Nationality, 0, len(f.byCode))
	for _, n := range f.byCode {
		out = append(out, n)
	}
	return out, nil
}

func (f *fakeNationalityRepository) UpdateScore(_ context.Context, countryCode string, score float64) error {
	if n, ok := f.byCode[countryCode]; ok {
		n.Score = score
	}
	return nil
}

func (f *fakeNationalityRepository) UpdateSubdivisionScore(context.Context, string, string, float64) error {
	return nil
}

func (f *fakeNationalityRepository) SumMemberScores(context.Context, string, string) (float64, float64, error) {
	return 0, 0, nil
}

// fakeClaimRepository is an in-memory [ClaimRepository] for service-level tests.
type fakeClaimRepository struct {
	byUser map[int64]*Claim
}

func newFakeClaimRepository() *fakeClaimRepository {
	return &fakeClaimRepository{byUser: map[int64]*Claim{}}
}

func (f *fakeClaimRepository) FindByUser(_ context.Context, userID int64) (*Claim, error) {
	return f.byUser[userID], nil
}

func (f *fakeClaimRepository) FindVerifiedByPlayer(_ context.Context, playerID int64) (*Claim, error) {
	for _, c := range f.byUser {
		if c.PlayerID == playerID && c.Verified {
			return c, nil
		}
	}
	return nil, nil
}

func (f *fakeClaimRepository) Create(_ context.Context, claim *Claim) error {
	f.byUser[claim.UserID] = claim
	return nil
}

func (f *fakeClaimRepository) Update(_ context.Context, claim *Claim) error {
	f.byUser[claim.UserID] = claim
	return nil
}

func (f *fakeClaimRepository) Delete(_ context.Context, userID int64) error {
	delete(f.byUser, userID)
	return nil
}

func (f *fakeClaimRepository) ReassignPlayer(_ context.Context, fromPlayerID, toPlayerID int64) error {
	for _, c := range f.byUser {
		if c.PlayerID == fromPlayerID {
			c.PlayerID = toPlayerID
		}
	}
	return nil
}

// fakeAuditRepository is a no-op [AuditRepository] for service-level tests.
type fakeAuditRepository struct{}

func (fakeAuditRepository) AppendDemonEntry(context.Context, *AuditLogEntry) error  { return nil }
func (fakeAuditRepository) AppendRecordEntry(context.Context, *AuditLogEntry) error { return nil }

// newTestService wires every fake into a [Service] ready for
// service-level unit tests.
func newTestService() (*Service, *fakeDemonRepository, *fakePlayerRepository, *fakeRecordRepository, *fakeClaimRepository) {
	demons := newFakeDemonRepository()
	players := newFakePlayerRepository()
	records := newFakeRecordRepository()
	claims := newFakeClaimRepository()

	service := NewService(Dependencies{
		Demons:        demons,
		Players:       players,
		Records:       records,
		Submitters:    newFakeSubmitterRepository(),
		Nationalities: newFakeNationalityRepository(),
		Claims:        claims,
		Audit:         fakeAuditRepository{},
		UnitOfWork:    fakeUnitOfWork{},
		Limiter:       ratelimit.NewRegistry(),
	}, Config{ListSize: 75, ExtendedListSize: 150}, testLogger())

	return service, demons, players, records, claims
}
