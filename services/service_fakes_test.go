package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/iamkameel/scrbrd-beta-2-sub004/models"
	"github.com/iamkameel/scrbrd-beta-2-sub004/repositories"
)

// Map-backed repository fakes shared by the service tests.

type fakeUserRepo struct {
	users  map[int]*models.User
	nextID int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[int]*models.User), nextID: 1}
}

func (r *fakeUserRepo) Create(_ context.Context, user *models.User) error {
	for _, existing := range r.users {
		if existing.Email == user.Email {
			return repositories.ErrUserEmailConflict
		}
	}
	user.ID = r.nextID
	r.nextID++
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id int) (*models.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, repositories.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	for _, user := range r.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (r *fakeUserRepo) Update(_ context.Context, user *models.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return repositories.ErrUserNotFound
	}
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id int) error {
	if _, ok := r.users[id]; !ok {
		return repositories.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

type fakeTeamRepo struct {
	teams map[int]*models.Team
}

func newFakeTeamRepo(teams ...*models.Team) *fakeTeamRepo {
	r := &fakeTeamRepo{teams: make(map[int]*models.Team)}
	for _, team := range teams {
		r.teams[team.ID] = team
	}
	return r
}

func (r *fakeTeamRepo) Create(_ context.Context, team *models.Team) error {
	r.teams[team.ID] = team
	return nil
}

func (r *fakeTeamRepo) GetByID(_ context.Context, id int) (*models.Team, error) {
	team, ok := r.teams[id]
	if !ok {
		return nil, repositories.ErrTeamNotFound
	}
	copied := *team
	return &copied, nil
}

func (r *fakeTeamRepo) List(_ context.Context, schoolID *int) ([]*models.Team, error) {
	out := make([]*models.Team, 0, len(r.teams))
	for _, team := range r.teams {
		if schoolID != nil && team.SchoolID != *schoolID {
			continue
		}
		out = append(out, team)
	}
	return out, nil
}

func (r *fakeTeamRepo) Update(_ context.Context, team *models.Team) error {
	if _, ok := r.teams[team.ID]; !ok {
		return repositories.ErrTeamNotFound
	}
	r.teams[team.ID] = team
	return nil
}

func (r *fakeTeamRepo) UpdateCrestKey(_ context.Context, id int, crestKey *string) error {
	team, ok := r.teams[id]
	if !ok {
		return repositories.ErrTeamNotFound
	}
	team.CrestKey = crestKey
	return nil
}

func (r *fakeTeamRepo) Delete(_ context.Context, id int) error {
	if _, ok := r.teams[id]; !ok {
		return repositories.ErrTeamNotFound
	}
	delete(r.teams, id)
	return nil
}

type fakeOfficialRepo struct {
	officials map[int]*models.Official
}

func newFakeOfficialRepo(officials ...*models.Official) *fakeOfficialRepo {
	r := &fakeOfficialRepo{officials: make(map[int]*models.Official)}
	for _, o := range officials {
		r.officials[o.ID] = o
	}
	return r
}

func (r *fakeOfficialRepo) Create(_ context.Context, official *models.Official) error {
	r.officials[official.ID] = official
	return nil
}

func (r *fakeOfficialRepo) GetByID(_ context.Context, id int) (*models.Official, error) {
	official, ok := r.officials[id]
	if !ok {
		return nil, repositories.ErrOfficialNotFound
	}
	copied := *official
	return &copied, nil
}

func (r *fakeOfficialRepo) List(_ context.Context, role *models.OfficialRole) ([]*models.Official, error) {
	out := make([]*models.Official, 0, len(r.officials))
	for _, o := range r.officials {
		if role != nil && o.Role != *role {
			continue
		}
		out = append(out, o)
	}
	return out, nil
}

func (r *fakeOfficialRepo) Update(_ context.Context, official *models.Official) error {
	if _, ok := r.officials[official.ID]; !ok {
		return repositories.ErrOfficialNotFound
	}
	r.officials[official.ID] = official
	return nil
}

func (r *fakeOfficialRepo) Delete(_ context.Context, id int) error {
	if _, ok := r.officials[id]; !ok {
		return repositories.ErrOfficialNotFound
	}
	delete(r.officials, id)
	return nil
}

type fakeMatchRepo struct {
	matches     map[int]*models.Match
	transitions []*models.MatchTransition
	nextID      int
}

func newFakeMatchRepo(matches ...*models.Match) *fakeMatchRepo {
	r := &fakeMatchRepo{matches: make(map[int]*models.Match), nextID: 1}
	for _, m := range matches {
		r.matches[m.ID] = m
		if m.ID >= r.nextID {
			r.nextID = m.ID + 1
		}
	}
	return r
}

func (r *fakeMatchRepo) Create(_ context.Context, match *models.Match) error {
	match.ID = r.nextID
	r.nextID++
	match.Version = 1
	copied := *match
	r.matches[match.ID] = &copied
	return nil
}

func (r *fakeMatchRepo) GetByID(_ context.Context, id int) (*models.Match, error) {
	match, ok := r.matches[id]
	if !ok {
		return nil, repositories.ErrMatchNotFound
	}
	copied := *match
	return &copied, nil
}

func (r *fakeMatchRepo) List(_ context.Context, filter repositories.MatchListFilter) ([]*models.Match, error) {
	out := make([]*models.Match, 0, len(r.matches))
	for _, m := range r.matches {
		if filter.Season != nil && m.Season != *filter.Season {
			continue
		}
		if filter.TeamID != nil && m.HomeTeamID != *filter.TeamID && m.AwayTeamID != *filter.TeamID {
			continue
		}
		if filter.State != nil && m.State != *filter.State {
			continue
		}
		copied := *m
		out = append(out, &copied)
	}
	return out, nil
}

func (r *fakeMatchRepo) Update(_ context.Context, match *models.Match) error {
	if _, ok := r.matches[match.ID]; !ok {
		return repositories.ErrMatchNotFound
	}
	copied := *match
	r.matches[match.ID] = &copied
	return nil
}

func (r *fakeMatchRepo) UpdateToss(_ context.Context, _ repositories.SQLExecutor, match *models.Match) error {
	return r.Update(context.Background(), match)
}

func (r *fakeMatchRepo) UpdateStateResult(_ context.Context, _ repositories.SQLExecutor, match *models.Match) error {
	return r.Update(context.Background(), match)
}

func (r *fakeMatchRepo) AppendTransition(_ context.Context, _ repositories.SQLExecutor, tr *models.MatchTransition) error {
	r.transitions = append(r.transitions, tr)
	return nil
}

func (r *fakeMatchRepo) ListTransitions(_ context.Context, matchID int) ([]*models.MatchTransition, error) {
	out := make([]*models.MatchTransition, 0)
	for _, tr := range r.transitions {
		if tr.MatchID == matchID {
			out = append(out, tr)
		}
	}
	return out, nil
}

func (r *fakeMatchRepo) Delete(_ context.Context, id int) error {
	if _, ok := r.matches[id]; !ok {
		return repositories.ErrMatchNotFound
	}
	delete(r.matches, id)
	return nil
}

type fakeInningsRepo struct {
	innings map[int]*models.Innings
	nextID  int
}

func newFakeInningsRepo(innings ...*models.Innings) *fakeInningsRepo {
	r := &fakeInningsRepo{innings: make(map[int]*models.Innings), nextID: 1}
	for _, in := range innings {
		r.innings[in.ID] = in
		if in.ID >= r.nextID {
			r.nextID = in.ID + 1
		}
	}
	return r
}

func (r *fakeInningsRepo) Create(_ context.Context, _ repositories.SQLExecutor, innings *models.Innings) error {
	innings.ID = r.nextID
	r.nextID++
	innings.Version = 1
	copied := *innings
	r.innings[innings.ID] = &copied
	return nil
}

func (r *fakeInningsRepo) GetByID(_ context.Context, id int) (*models.Innings, error) {
	in, ok := r.innings[id]
	if !ok {
		return nil, repositories.ErrInningsNotFound
	}
	copied := *in
	return &copied, nil
}

func (r *fakeInningsRepo) GetCurrentByMatch(_ context.Context, matchID int) (*models.Innings, error) {
	var current *models.Innings
	for _, in := range r.innings {
		if in.MatchID != matchID || in.Closed {
			continue
		}
		if current == nil || in.Number > current.Number {
			current = in
		}
	}
	if current == nil {
		return nil, repositories.ErrInningsNotFound
	}
	copied := *current
	return &copied, nil
}

func (r *fakeInningsRepo) ListByMatch(_ context.Context, matchID int) ([]*models.Innings, error) {
	out := make([]*models.Innings, 0)
	for number := 1; number <= len(r.innings); number++ {
		for _, in := range r.innings {
			if in.MatchID == matchID && in.Number == number {
				copied := *in
				out = append(out, &copied)
			}
		}
	}
	return out, nil
}

func (r *fakeInningsRepo) UpdateSummary(_ context.Context, _ repositories.SQLExecutor, innings *models.Innings) error {
	if _, ok := r.innings[innings.ID]; !ok {
		return repositories.ErrInningsNotFound
	}
	copied := *innings
	r.innings[innings.ID] = &copied
	return nil
}

func (r *fakeInningsRepo) Close(_ context.Context, _ repositories.SQLExecutor, innings *models.Innings) error {
	in, ok := r.innings[innings.ID]
	if !ok {
		return repositories.ErrInningsNotFound
	}
	in.Closed = true
	return nil
}

type fakeDeliveryRepo struct {
	deliveries map[int][]models.Delivery
}

func newFakeDeliveryRepo() *fakeDeliveryRepo {
	return &fakeDeliveryRepo{deliveries: make(map[int][]models.Delivery)}
}

func (r *fakeDeliveryRepo) Append(_ context.Context, _ repositories.SQLExecutor, delivery *models.Delivery) error {
	r.deliveries[delivery.InningsID] = append(r.deliveries[delivery.InningsID], *delivery)
	return nil
}

func (r *fakeDeliveryRepo) GetByUID(_ context.Context, uid uuid.UUID) (*models.Delivery, error) {
	for _, list := range r.deliveries {
		for _, d := range list {
			if d.UID == uid {
				copied := d
				return &copied, nil
			}
		}
	}
	return nil, repositories.ErrDeliveryNotFound
}

func (r *fakeDeliveryRepo) ListByInnings(_ context.Context, inningsID int) ([]models.Delivery, error) {
	out := make([]models.Delivery, 0)
	for _, d := range r.deliveries[inningsID] {
		if d.SupersededBy == nil {
			out = append(out, d)
		}
	}
	return out, nil
}

func (r *fakeDeliveryRepo) GetLastByInnings(_ context.Context, _ repositories.SQLExecutor, inningsID int) (*models.Delivery, error) {
	list := r.deliveries[inningsID]
	var last *models.Delivery
	for i := range list {
		if list[i].SupersededBy != nil {
			continue
		}
		if last == nil || list[i].Over > last.Over ||
			(list[i].Over == last.Over && list[i].BallInOver >= last.BallInOver) {
			last = &list[i]
		}
	}
	if last == nil {
		return nil, nil
	}
	copied := *last
	return &copied, nil
}

func (r *fakeDeliveryRepo) MarkSuperseded(_ context.Context, _ repositories.SQLExecutor, uid, supersededBy uuid.UUID) error {
	for inningsID, list := range r.deliveries {
		for i := range list {
			if list[i].UID != uid {
				continue
			}
			if list[i].SupersededBy != nil {
				return repositories.ErrDeliverySuperseded
			}
			r.deliveries[inningsID][i].SupersededBy = &supersededBy
			return nil
		}
	}
	return repositories.ErrDeliveryNotFound
}

type fakeBracketRepo struct {
	brackets map[string]*models.TournamentBracket
	nextID   int
}

func newFakeBracketRepo() *fakeBracketRepo {
	return &fakeBracketRepo{brackets: make(map[string]*models.TournamentBracket), nextID: 1}
}

func (r *fakeBracketRepo) Create(_ context.Context, bracket *models.TournamentBracket) error {
	if _, ok := r.brackets[bracket.Season]; ok {
		return repositories.ErrBracketSeasonConflict
	}
	bracket.ID = r.nextID
	r.nextID++
	copied := *bracket
	r.brackets[bracket.Season] = &copied
	return nil
}

func (r *fakeBracketRepo) GetBySeason(_ context.Context, season string) (*models.TournamentBracket, error) {
	bracket, ok := r.brackets[season]
	if !ok {
		return nil, repositories.ErrBracketNotFound
	}
	copied := *bracket
	copied.Matches = append([]models.BracketMatch(nil), bracket.Matches...)
	return &copied, nil
}

func (r *fakeBracketRepo) UpdateMatches(_ context.Context, bracket *models.TournamentBracket) error {
	stored, ok := r.brackets[bracket.Season]
	if !ok {
		return repositories.ErrBracketNotFound
	}
	stored.Matches = append([]models.BracketMatch(nil), bracket.Matches...)
	return nil
}

func (r *fakeBracketRepo) Delete(_ context.Context, id int) error {
	for season, bracket := range r.brackets {
		if bracket.ID == id {
			delete(r.brackets, season)
			return nil
		}
	}
	return repositories.ErrBracketNotFound
}
