package internal

// Message is the JSON envelope for every inbound and outbound event.
type Message[T any] struct {
	Type string `json:"type"`
	Data T      `json:"data"`
}

// Inbound payloads.

type JoinRoomData struct {
	Name string `json:"name"`
	Code string `json:"code"`
}

// Outbound payloads.

type RoomCreatedData struct {
	Code      string           `json:"code"`
	Players   []PlayerSnapshot `json:"players"`
	IsCreator bool             `json:"isCreator"`
}

type RoomJoinedData struct {
	Code      string           `json:"code"`
	Players   []PlayerSnapshot `json:"players"`
	IsCreator bool             `json:"isCreator"`
}

type UpdatePlayersData struct {
	Players []PlayerSnapshot `json:"players"`
}

type GameStartedData struct{}

type RoundResultData struct {
	Target        float64          `json:"target"`
	RoundedTarget int              `json:"roundedTarget"`
	Winner        *string          `json:"winner"` // null when the round had no winner
	Scores        []PlayerSnapshot `json:"scores"`
}

type CreatorChangedData struct {
	NewCreator string `json:"newCreator"`
}

type GameEndedData struct {
	Winner string `json:"winner"`
}

type ErrorData struct {
	Message string `json:"message"`
}
