package logs

import (
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3" // repository assumes sqlite
)

// Repository records self-play results in a sqlite database.
type Repository struct {
	db *sqlx.DB
}

type Game struct {
	ID        int64     `db:"id"`
	Run       string    `db:"run"`
	Number    int       `db:"game"`
	Timestamp time.Time `db:"time"`
	Players   int       `db:"players"`
	// Seed is stored as text; sqlite integers cannot hold every uint64.
	Seed string `db:"seed"`
	// Result is the outcome kind: win, draw or undecided.
	Result string `db:"result"`
	Winner int    `db:"winner"`
	Rounds int    `db:"rounds"`
	Moves  int    `db:"moves"`

	Seats []Seat `db:"-"`
}

type Seat struct {
	GameID int64  `db:"game_id"`
	Seat   int    `db:"seat"`
	Player string `db:"player"`
	Score  int    `db:"score"`
}

// Standing aggregates one player's results over a run.
type Standing struct {
	Player    string  `db:"player"`
	Games     int     `db:"games"`
	Wins      int     `db:"wins"`
	Ties      int     `db:"ties"`
	MeanScore float64 `db:"mean_score"`
}

func Open(db string) (*Repository, error) {
	sql, err := sqlx.Open("sqlite3", db)
	if err != nil {
		return nil, err
	}
	for _, stmt := range []struct {
		what, sql string
	}{
		{"game table", createGameTable},
		{"seat table", createSeatTable},
		{"player_games view", createPlayerView},
	} {
		if _, err := sql.Exec(stmt.sql); err != nil {
			sql.Close()
			return nil, fmt.Errorf("create %s: %w", stmt.what, err)
		}
	}
	return &Repository{db: sql}, nil
}

func (r *Repository) InsertGame(g *Game) error {
	return r.InsertGames([]*Game{g})
}

// InsertGames records gs in a single transaction, filling in their
// IDs.
func (r *Repository) InsertGames(gs []*Game) error {
	txn, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer txn.Rollback()
	for _, g := range gs {
		if e := insertOne(txn, g); e != nil {
			return e
		}
	}
	return txn.Commit()
}

func insertOne(txn *sqlx.Tx, g *Game) error {
	res, err := txn.NamedExec(insertGame, g)
	if err != nil {
		return fmt.Errorf("insert game %d: %w", g.Number, err)
	}
	if g.ID, err = res.LastInsertId(); err != nil {
		return err
	}
	for i := range g.Seats {
		g.Seats[i].GameID = g.ID
		if _, err := txn.NamedExec(insertSeat, &g.Seats[i]); err != nil {
			return fmt.Errorf("insert seat %d of game %d: %w", i, g.Number, err)
		}
	}
	return nil
}

// Games returns the games of a run in order, with their seats.
func (r *Repository) Games(run string) ([]*Game, error) {
	var out []*Game
	if err := r.db.Select(&out, selectGames, run); err != nil {
		return nil, err
	}
	for _, g := range out {
		if err := r.db.Select(&g.Seats, selectSeats, g.ID); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (r *Repository) Standings(run string) ([]Standing, error) {
	var out []Standing
	err := r.db.Select(&out, selectStandings, run)
	return out, err
}

func (r *Repository) Close() {
	r.db.Close()
}
