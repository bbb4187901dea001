package checkers

import "sync"

var (
	zobristOnce sync.Once

	zobristTiles [5][Size][Size]uint64 // 下标 0 (Empty) 不用
	zobristBlack uint64
	zobristOver  uint64
)

func initZobrist() {
	zobristOnce.Do(func() {
		seed := uint64(0x9E3779B97F4A7C15)
		next := func() uint64 {
			seed += 0x9E3779B97F4A7C15
			z := seed
			z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
			z = (z ^ (z >> 27)) * 0x94D049BB133111EB
			return z ^ (z >> 31)
		}

		for t := RedPawn; t <= BlackKing; t++ {
			for r := 0; r < Size; r++ {
				for c := 0; c < Size; c++ {
					zobristTiles[t][r][c] = next()
				}
			}
		}
		zobristBlack = next()
		zobristOver = next()
	})
}

// Hash 全量计算当前局面（格子 + 轮次）的 Zobrist 哈希，日志不参与。
func (b *Board) Hash() uint64 {
	initZobrist()

	var h uint64
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			if t := b.Squares[r][c]; t != Empty {
				h ^= zobristTiles[t][r][c]
			}
		}
	}
	switch b.Turn {
	case Black:
		h ^= zobristBlack
	case GameOver:
		h ^= zobristOver
	}
	return h
}
