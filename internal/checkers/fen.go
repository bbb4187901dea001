package checkers

import (
	"errors"
	"strings"
)

var charToTile = map[rune]Tile{
	'r': RedPawn,
	'R': RedKing,
	'b': BlackPawn,
	'B': BlackKing,
}

func tileToChar(t Tile) rune {
	for ch, v := range charToTile {
		if v == t {
			return ch
		}
	}
	return '.'
}

var turnToChar = map[Turn]byte{
	Red:      'r',
	Black:    'b',
	GameOver: 'x',
}

// Encode 简单 FEN-like：8 行用“/”隔开，空位用数字压缩；空格后 r/b/x 表示轮到谁
func (b *Board) Encode() string {
	var sb strings.Builder
	for r := 0; r < Size; r++ {
		if r > 0 {
			sb.WriteByte('/')
		}
		empty := 0
		for c := 0; c < Size; c++ {
			t := b.Squares[r][c]
			if t == Empty {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteByte(byte('0' + empty))
				empty = 0
			}
			sb.WriteRune(tileToChar(t))
		}
		if empty > 0 {
			sb.WriteByte(byte('0' + empty))
		}
	}
	sb.WriteByte(' ')
	sb.WriteByte(turnToChar[b.Turn])
	return sb.String()
}

var ErrInvalidFEN = errors.New("invalid FEN")

// DecodeBoard 解析 Encode 的输出；浅色格上有子视为非法
func DecodeBoard(fen string) (*Board, error) {
	parts := strings.Fields(fen)
	if len(parts) != 2 {
		return nil, ErrInvalidFEN
	}
	rows := strings.Split(parts[0], "/")
	if len(rows) != Size {
		return nil, ErrInvalidFEN
	}
	b := NewEmptyBoard(Red)
	for r, row := range rows {
		c := 0
		for _, ch := range row {
			if c >= Size {
				return nil, ErrInvalidFEN
			}
			if ch >= '1' && ch <= '8' {
				c += int(ch - '0')
				continue
			}
			if ch == '.' {
				c++
				continue
			}
			t, ok := charToTile[ch]
			if !ok {
				return nil, ErrInvalidFEN
			}
			if !b.Put(Pos(r, c), t) {
				return nil, ErrInvalidFEN
			}
			c++
		}
		if c != Size {
			return nil, ErrInvalidFEN
		}
	}
	switch parts[1] {
	case "r":
		b.Turn = Red
	case "b":
		b.Turn = Black
	case "x":
		b.Turn = GameOver
	default:
		return nil, ErrInvalidFEN
	}
	return b, nil
}
