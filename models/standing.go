package models

// TeamStanding is one row of the points table. It is a projection computed
// from completed matches on every request and is never persisted.
type TeamStanding struct {
	TeamID       int     `json:"team_id"`
	TeamName     string  `json:"team_name"`
	Played       int     `json:"played"`
	Won          int     `json:"won"`
	Lost         int     `json:"lost"`
	Tied         int     `json:"tied"`
	NoResult     int     `json:"no_result"`
	RunsFor      int     `json:"runs_for"`
	BallsFor     int     `json:"balls_for"`
	RunsAgainst  int     `json:"runs_against"`
	BallsAgainst int     `json:"balls_against"`
	Points       int     `json:"points"`
	NetRunRate   float64 `json:"net_run_rate"`
}
