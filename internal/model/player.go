package model

// Player identifies one participant server-side.
type Player struct {
	ID       string
	Color    Color
	TimeLeft int
}

// ClientPlayer is the player view sent to clients.
type ClientPlayer struct {
	ID       string `json:"name"`
	Color    Color  `json:"color"`
	TimeLeft int    `json:"timeLeft"`
}

// MatchFoundEvent tells a queued player which game they were paired into.
type MatchFoundEvent struct {
	GameID string `json:"gameId"`
	Color  Color  `json:"color"`
}
