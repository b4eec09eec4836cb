// meta/meta.go
package meta

// MAX_MOVES caps the length of a single game.
const MAX_MOVES = 100000

// WINNING_TILE is the tile that counts a game as won.
const WINNING_TILE = 2048

// INITIAL_TILES is the number of random tiles on a fresh board.
const INITIAL_TILES = 2

// GAMES is the number of games per experiment.
const GAMES = 4

// GO_ROUTINES bounds how many games an experiment plays at once.
const GO_ROUTINES = 1
