package logs

const createGameTable = `
CREATE TABLE IF NOT EXISTS games (
  id integer primary key autoincrement,
  run text not null,
  game integer not null,
  time datetime,
  players int,
  seed text,
  result text,
  winner int,
  rounds int,
  moves int
)`

const createSeatTable = `
CREATE TABLE IF NOT EXISTS seats (
  game_id integer not null references games(id),
  seat int not null,
  player varchar,
  score int
)`

const createPlayerView = `
CREATE VIEW IF NOT EXISTS player_games (
  run, game_id, player, seat, score, win
) AS
SELECT g.run, g.id, s.player, s.seat, s.score,
       CASE
         WHEN g.result = 'win' AND g.winner = s.seat THEN 'win'
         WHEN g.result = 'win' THEN 'lose'
         WHEN g.result = 'draw' THEN 'tie'
         ELSE 'cutoff'
       END
 FROM games g JOIN seats s ON s.game_id = g.id
`

const insertGame = `
INSERT INTO games (run, game, time, players, seed, result, winner, rounds, moves)
VALUES (:run, :game, :time, :players, :seed, :result, :winner, :rounds, :moves)
`

const insertSeat = `
INSERT INTO seats (game_id, seat, player, score)
VALUES (:game_id, :seat, :player, :score)
`

const selectGames = `
SELECT id, run, game, time, players, seed, result, winner, rounds, moves
 FROM games WHERE run = ? ORDER BY game
`

const selectSeats = `
SELECT game_id, seat, player, score FROM seats WHERE game_id = ? ORDER BY seat
`

const selectStandings = `
SELECT player,
       COUNT(*) AS games,
       SUM(CASE win WHEN 'win' THEN 1 ELSE 0 END) AS wins,
       SUM(CASE win WHEN 'tie' THEN 1 ELSE 0 END) AS ties,
       AVG(score) AS mean_score
 FROM player_games WHERE run = ?
 GROUP BY player ORDER BY player
`
