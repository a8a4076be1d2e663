package game

import "errors"

// User-facing, recoverable-by-retry failures. The websocket layer unicasts
// these verbatim as error{message} events.
var (
	ErrRoomNotFound        = errors.New("room does not exist")
	ErrNameTaken           = errors.New("name already taken in this room")
	ErrGameInProgress      = errors.New("game has already started in this room")
	ErrNotCreator          = errors.New("only the room creator can start the game")
	ErrInsufficientPlayers = errors.New("at least 2 active players are required to start the game")
)

// ErrNoAvailableCodes is returned when room code generation keeps colliding.
// With a 36^6 code space this is effectively unreachable, but the retry loop
// is bounded rather than infinite.
var ErrNoAvailableCodes = errors.New("could not allocate a room code")
