package model

// MoveKind tags a Move with the side effect its application carries
// beyond relocating the piece at From to To.
type MoveKind int

const (
	// MovePlain relocates a piece; any capture is implicit in the
	// destination square being overwritten.
	MovePlain MoveKind = iota
	// MoveEnPassant additionally removes a captured pawn that sits at
	// neither endpoint of the move.
	MoveEnPassant
	// MoveCastle additionally relocates the castling rook.
	MoveCastle
	// MovePromotion replaces the moved pawn with a new piece.
	MovePromotion
)

// Move describes one ply for Board.Apply. Special kinds carry the extra
// state their side effect needs, fixed at construction time: Board cannot
// recover it from the endpoints alone. A Move is built fresh for each ply
// and consumed once.
type Move struct {
	From Square
	To   Square
	Kind MoveKind

	// Captured is the pawn removed by an en passant capture. It is not
	// on From or To; it sits beside From, behind To.
	Captured *Piece

	// RookFrom and RookTo are the castling rook's endpoints.
	RookFrom Square
	RookTo   Square

	// Promotion is the kind the moved pawn becomes.
	Promotion PieceKind
}

func NewMove(from, to Square) Move {
	return Move{From: from, To: to, Kind: MovePlain}
}

func NewEnPassantMove(from, to Square, captured *Piece) Move {
	return Move{From: from, To: to, Kind: MoveEnPassant, Captured: captured}
}

func NewCastleMove(from, to, rookFrom, rookTo Square) Move {
	return Move{From: from, To: to, Kind: MoveCastle, RookFrom: rookFrom, RookTo: rookTo}
}

func NewPromotionMove(from, to Square, promotion PieceKind) Move {
	return Move{From: from, To: to, Kind: MovePromotion, Promotion: promotion}
}

// SimpleMove is a bare from/to pair, used by move generation before the
// full Move descriptor is built.
type SimpleMove struct {
	From Square `json:"from"`
	To   Square `json:"to"`
}

// WSMove is a move request as received from a client.
type WSMove struct {
	From      Square    `json:"from"`
	To        Square    `json:"to"`
	Promotion PieceKind `json:"promotion"`
}

type CastleRookMove struct {
	From Square `json:"from"`
	To   Square `json:"to"`
}

// Ply is one half-move as recorded in the game history.
type Ply struct {
	Piece          *Piece          `json:"piece"`
	From           Square          `json:"from"`
	To             Square          `json:"to"`
	CapturedPiece  *Piece          `json:"capturedPiece"`
	CastleRookMove *CastleRookMove `json:"castleRookMove"`
	Promotion      PieceKind       `json:"promotion"`
	Notation       string          `json:"notation"`
}

// MovePair groups white's ply with black's reply for history display.
type MovePair struct {
	WhitePly Ply  `json:"whitePly"`
	BlackPly *Ply `json:"blackPly"`
}
