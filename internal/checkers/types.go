package checkers

// Tile 格子内容；数值即对外的 tile code
type Tile int8

const (
	Empty     Tile = 0
	RedPawn   Tile = 1
	RedKing   Tile = 2
	BlackPawn Tile = 3
	BlackKing Tile = 4
)

func (t Tile) IsPawn() bool { return t == RedPawn || t == BlackPawn }
func (t Tile) IsKing() bool { return t == RedKing || t == BlackKing }

// BelongsTo 对 Empty 和 GameOver 都返回 false
func (t Tile) BelongsTo(turn Turn) bool {
	switch turn {
	case Red:
		return t == RedPawn || t == RedKing
	case Black:
		return t == BlackPawn || t == BlackKing
	}
	return false
}

func (t Tile) IsEnemyOf(turn Turn) bool {
	switch turn {
	case Red:
		return t.BelongsTo(Black)
	case Black:
		return t.BelongsTo(Red)
	}
	return false
}

// Promoted 兵升王；王和空格原样返回
func (t Tile) Promoted() Tile {
	switch t {
	case RedPawn:
		return RedKing
	case BlackPawn:
		return BlackKing
	}
	return t
}

// Value 子力：兵 1，王 3
func (t Tile) Value() int {
	switch {
	case t.IsPawn():
		return 1
	case t.IsKing():
		return 3
	}
	return 0
}

func (t Tile) String() string {
	switch t {
	case Empty:
		return "empty"
	case RedPawn:
		return "red_pawn"
	case RedKing:
		return "red_king"
	case BlackPawn:
		return "black_pawn"
	case BlackKing:
		return "black_king"
	}
	return "unknown"
}

type Turn int8

const (
	Red Turn = iota
	Black
	GameOver
)

func (t Turn) Opposite() Turn {
	switch t {
	case Red:
		return Black
	case Black:
		return Red
	}
	return t
}

func (t Turn) String() string {
	switch t {
	case Red:
		return "red"
	case Black:
		return "black"
	}
	return "game_over"
}

// ParseTurn 解析 String() 的输出
func ParseTurn(s string) (Turn, bool) {
	switch s {
	case "red":
		return Red, true
	case "black":
		return Black, true
	case "game_over":
		return GameOver, true
	}
	return GameOver, false
}

// Position 0-based (row, col)
type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func Pos(row, col int) Position { return Position{Row: row, Col: col} }

func (p Position) OnBoard() bool {
	return p.Row >= 0 && p.Row < Size && p.Col >= 0 && p.Col < Size
}

// IsDark 只有 (row+col) 为奇数的格子可以落子
func (p Position) IsDark() bool { return (p.Row+p.Col)%2 == 1 }

func (p Position) add(dr, dc int) Position {
	return Position{Row: p.Row + dr, Col: p.Col + dc}
}

// Move 起点 + 终点 + 可选的被吃子位置
type Move struct {
	From     Position  `json:"-"`
	To       Position  `json:"destination"`
	Captured *Position `json:"captured"`
}

func (m Move) HasCapture() bool { return m.Captured != nil }

// CapturedPiece 日志里记录被吃掉的子和它的位置
type CapturedPiece struct {
	Pawn     Tile     `json:"pawn"`
	Position Position `json:"position"`
}

// LogEntry 一步棋的只读记录，搜索从不读取
type LogEntry struct {
	Pawn     Tile           `json:"pawn"`
	From     Position       `json:"from"`
	To       Position       `json:"to"`
	Captured *CapturedPiece `json:"captured,omitempty"`
}
