package model

// Rand is the randomness source for the Chess960 generator: a uniform
// integer draw over [0, n). *math/rand.Rand satisfies it.
type Rand interface {
	Intn(n int) int
}

// chess960BackRank produces a back-rank arrangement for Fischer random
// chess, as 0-indexed files. The bishops go first, one on a random even
// file and one on a random odd file, which pins them to opposite-color
// squares. The queen and both knights then each take a uniformly random
// free file. Of the last three files the rooks take the outer two and
// the king the one between them, so the king always ends up between his
// rooks without a separate check.
func chess960BackRank(rnd Rand) []PieceKind {
	rank := make([]PieceKind, 8)
	free := []int{0, 1, 2, 3, 4, 5, 6, 7}

	evens := []int{0, 2, 4, 6}
	odds := []int{1, 3, 5, 7}
	b1 := evens[rnd.Intn(len(evens))]
	b2 := odds[rnd.Intn(len(odds))]
	rank[b1] = Bishop
	rank[b2] = Bishop
	free = removeFile(free, b1)
	free = removeFile(free, b2)

	for _, kind := range []PieceKind{Queen, Knight, Knight} {
		i := rnd.Intn(len(free))
		rank[free[i]] = kind
		free = append(free[:i], free[i+1:]...)
	}

	// free stays sorted, so these are the leftmost, middle and
	// rightmost remaining files.
	rank[free[0]] = Rook
	rank[free[2]] = Rook
	rank[free[1]] = King
	return rank
}

func removeFile(files []int, file int) []int {
	for i, f := range files {
		if f == file {
			return append(files[:i], files[i+1:]...)
		}
	}
	return files
}
