package model

// Move generation. Pseudo-legal moves are produced per piece kind, then
// filtered by applying each candidate to a disposable board copy and
// rejecting those that leave the mover's king attacked. The live board
// is never mutated during generation.

var (
	rookDirs   = [][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}
	bishopDirs = [][2]int{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}}
	knightDirs = [][2]int{{2, 1}, {2, -1}, {-2, 1}, {-2, -1}, {1, 2}, {1, -2}, {-1, 2}, {-1, -2}}
	kingDirs   = [][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}, {1, 1}, {1, -1}, {-1, 1}, {-1, -1}}
)

func (g *Game) legalMovesForColor(c Color) []SimpleMove {
	var legal []SimpleMove
	for file := 1; file <= 8; file++ {
		for rank := 1; rank <= 8; rank++ {
			p := g.state.Board.at(Square{File: file, Rank: rank})
			if p != nil && p.Color == c {
				legal = append(legal, g.legalMovesForPiece(p)...)
			}
		}
	}
	return legal
}

func (g *Game) legalMovesForPiece(p *Piece) []SimpleMove {
	var pseudo []SimpleMove
	switch p.Kind {
	case Pawn:
		pseudo = g.pawnMoves(p)
	case Knight:
		pseudo = g.stepMoves(p, knightDirs)
	case Bishop:
		pseudo = g.slideMoves(p, bishopDirs)
	case Rook:
		pseudo = g.slideMoves(p, rookDirs)
	case Queen:
		pseudo = append(g.slideMoves(p, bishopDirs), g.slideMoves(p, rookDirs)...)
	case King:
		pseudo = append(g.stepMoves(p, kingDirs), g.castleMoves(p)...)
	}
	return g.filterLegalMoves(p.Color, pseudo)
}

// filterLegalMoves keeps the pseudo-legal moves that do not leave c's
// own king in check. Each candidate is probed on a copy, so the
// authoritative board is untouched.
func (g *Game) filterLegalMoves(c Color, pseudo []SimpleMove) []SimpleMove {
	legal := []SimpleMove{}
	for _, mv := range pseudo {
		probe := g.state.Board.Copy()
		if err := probe.Apply(NewMove(mv.From, mv.To)); err != nil {
			continue
		}
		if !kingInCheck(probe, c) {
			legal = append(legal, mv)
		}
	}
	return legal
}

func (g *Game) pawnMoves(p *Piece) []SimpleMove {
	var moves []SimpleMove
	b := g.state.Board
	dir := 1
	if p.Color == Black {
		dir = -1
	}

	one := p.Position.offset(0, dir)
	if one.Valid() && b.at(one) == nil {
		moves = append(moves, SimpleMove{From: p.Position, To: one})
		two := p.Position.offset(0, 2*dir)
		if !p.HasMoved && two.Valid() && b.at(two) == nil {
			moves = append(moves, SimpleMove{From: p.Position, To: two})
		}
	}
	for _, df := range []int{-1, 1} {
		diag := p.Position.offset(df, dir)
		if !diag.Valid() {
			continue
		}
		if target := b.at(diag); target != nil && target.Color != p.Color {
			moves = append(moves, SimpleMove{From: p.Position, To: diag})
		} else if g.state.EnPassantTarget != nil && *g.state.EnPassantTarget == diag {
			moves = append(moves, SimpleMove{From: p.Position, To: diag})
		}
	}
	return moves
}

func (g *Game) stepMoves(p *Piece, dirs [][2]int) []SimpleMove {
	var moves []SimpleMove
	for _, d := range dirs {
		to := p.Position.offset(d[0], d[1])
		if !to.Valid() {
			continue
		}
		if target := g.state.Board.at(to); target == nil || target.Color != p.Color {
			moves = append(moves, SimpleMove{From: p.Position, To: to})
		}
	}
	return moves
}

func (g *Game) slideMoves(p *Piece, dirs [][2]int) []SimpleMove {
	var moves []SimpleMove
	b := g.state.Board
	for _, d := range dirs {
		for to := p.Position.offset(d[0], d[1]); to.Valid(); to = to.offset(d[0], d[1]) {
			target := b.at(to)
			if target == nil {
				moves = append(moves, SimpleMove{From: p.Position, To: to})
				continue
			}
			if target.Color != p.Color {
				moves = append(moves, SimpleMove{From: p.Position, To: to})
			}
			break
		}
	}
	return moves
}

// castleMoves offers the two-square king moves when king and corner rook
// are unmoved and the squares between them are empty. Castling is only
// generated from the standard king file, so boards with a randomized
// back rank castle only when the relevant pieces happen to sit on the
// standard squares.
func (g *Game) castleMoves(p *Piece) []SimpleMove {
	if p.HasMoved || p.Position.File != 5 {
		return nil
	}
	var moves []SimpleMove
	b := g.state.Board
	rank := p.Position.Rank

	queensideRook := b.at(Square{File: 1, Rank: rank})
	if queensideRook != nil && queensideRook.Kind == Rook && !queensideRook.HasMoved &&
		b.at(Square{File: 2, Rank: rank}) == nil &&
		b.at(Square{File: 3, Rank: rank}) == nil &&
		b.at(Square{File: 4, Rank: rank}) == nil {
		moves = append(moves, SimpleMove{From: p.Position, To: Square{File: 3, Rank: rank}})
	}
	kingsideRook := b.at(Square{File: 8, Rank: rank})
	if kingsideRook != nil && kingsideRook.Kind == Rook && !kingsideRook.HasMoved &&
		b.at(Square{File: 6, Rank: rank}) == nil &&
		b.at(Square{File: 7, Rank: rank}) == nil {
		moves = append(moves, SimpleMove{From: p.Position, To: Square{File: 7, Rank: rank}})
	}
	return moves
}

func kingInCheck(b *Board, c Color) bool {
	king := b.KingOf(c)
	if king == nil {
		return false
	}
	return isSquareAttacked(b, c.Opponent(), king.Position)
}

func isSquareAttacked(b *Board, by Color, sq Square) bool {
	for _, d := range rookDirs {
		for to := sq.offset(d[0], d[1]); to.Valid(); to = to.offset(d[0], d[1]) {
			p := b.at(to)
			if p == nil {
				continue
			}
			if p.Color == by && (p.Kind == Rook || p.Kind == Queen) {
				return true
			}
			break
		}
	}
	for _, d := range bishopDirs {
		for to := sq.offset(d[0], d[1]); to.Valid(); to = to.offset(d[0], d[1]) {
			p := b.at(to)
			if p == nil {
				continue
			}
			if p.Color == by && (p.Kind == Bishop || p.Kind == Queen) {
				return true
			}
			break
		}
	}
	for _, d := range knightDirs {
		to := sq.offset(d[0], d[1])
		if !to.Valid() {
			continue
		}
		if p := b.at(to); p != nil && p.Color == by && p.Kind == Knight {
			return true
		}
	}
	for _, d := range kingDirs {
		to := sq.offset(d[0], d[1])
		if !to.Valid() {
			continue
		}
		if p := b.at(to); p != nil && p.Color == by && p.Kind == King {
			return true
		}
	}
	// Pawns attack toward their own direction of travel, so a square is
	// attacked by pawns sitting one rank on the attacker's side of it.
	pawnRank := -1
	if by == Black {
		pawnRank = 1
	}
	for _, df := range []int{-1, 1} {
		to := sq.offset(df, pawnRank)
		if !to.Valid() {
			continue
		}
		if p := b.at(to); p != nil && p.Color == by && p.Kind == Pawn {
			return true
		}
	}
	return false
}
