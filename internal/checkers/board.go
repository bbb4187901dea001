package checkers

import (
	"strings"
)

const (
	Size       = 8
	NumSquares = Size * Size
)

// 初始盘面：黑方在上（0..2 行），红方在下（5..7 行），只放在深色格
const initialBoardString = `.b.b.b.b
b.b.b.b.
.b.b.b.b
........
........
r.r.r.r.
.r.r.r.r
r.r.r.r.`

// Board = 棋盘 + 轮到谁走 + 走子记录
type Board struct {
	Squares [Size][Size]Tile
	Turn    Turn

	winner Turn // GameOver 表示没有胜者（未结束或外部宣布结束）
	log    []LogEntry
}

func parseInitialBoard() [Size][Size]Tile {
	var sq [Size][Size]Tile
	lines := strings.Split(initialBoardString, "\n")
	if len(lines) != Size {
		panic("initialBoardString 行数不为 8")
	}
	for r, line := range lines {
		if len(line) != Size {
			panic("initialBoardString 列数不为 8")
		}
		for c, ch := range line {
			if ch == '.' {
				continue
			}
			t, ok := charToTile[ch]
			if !ok {
				panic("unknown piece letter: " + string(ch))
			}
			sq[r][c] = t
		}
	}
	return sq
}

// NewBoard 新开一局，红先
func NewBoard() *Board {
	return &Board{
		Squares: parseInitialBoard(),
		Turn:    Red,
		winner:  GameOver,
	}
}

// NewEmptyBoard 空棋盘，测试和摆局用
func NewEmptyBoard(turn Turn) *Board {
	return &Board{Turn: turn, winner: GameOver}
}

// Clone 给搜索用的模拟盘：棋盘和 Turn 完全一致，不带走子记录
func (b *Board) Clone() *Board {
	return &Board{
		Squares: b.Squares,
		Turn:    b.Turn,
		winner:  b.winner,
	}
}

func (b *Board) At(p Position) Tile {
	if !p.OnBoard() {
		return Empty
	}
	return b.Squares[p.Row][p.Col]
}

// Put 摆子；浅色格只能放 Empty
func (b *Board) Put(p Position, t Tile) bool {
	if !p.OnBoard() {
		return false
	}
	if t != Empty && !p.IsDark() {
		return false
	}
	b.Squares[p.Row][p.Col] = t
	return true
}

// Tiles 按行展开的 tile code
func (b *Board) Tiles() []int {
	out := make([]int, 0, NumSquares)
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			out = append(out, int(b.Squares[r][c]))
		}
	}
	return out
}

// History 走子记录（旧的在前），返回副本
func (b *Board) History() []LogEntry {
	return append([]LogEntry(nil), b.log...)
}

func (b *Board) Winner() (Turn, bool) {
	if b.Turn != GameOver || b.winner == GameOver {
		return GameOver, false
	}
	return b.winner, true
}

// Count 统计某一方的子数
func (b *Board) Count(side Turn) (pawns, kings int) {
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			t := b.Squares[r][c]
			if !t.BelongsTo(side) {
				continue
			}
			if t.IsKing() {
				kings++
			} else {
				pawns++
			}
		}
	}
	return pawns, kings
}

// Equal 只比较棋盘和 Turn
func (b *Board) Equal(o *Board) bool {
	return b.Squares == o.Squares && b.Turn == o.Turn
}

func (b *Board) String() string {
	var sb strings.Builder
	sb.WriteString("  01234567\n")
	for r := 0; r < Size; r++ {
		sb.WriteByte(byte('0' + r))
		sb.WriteByte(' ')
		for c := 0; c < Size; c++ {
			sb.WriteRune(tileToChar(b.Squares[r][c]))
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("turn: ")
	sb.WriteString(b.Turn.String())
	return sb.String()
}
