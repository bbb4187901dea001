package engine

import (
	"fmt"

	"checkers/internal/checkers"
)

// 奇数层为己方（+1），偶数层为对方（-1）
func scoreSign(depth int) int {
	return (depth%2)*2 - 1
}

// moveValue 吃子得分：兵 1，王 3，不吃子 0。
// 吃子位置是空格说明走法生成有 bug，直接 panic。
func moveValue(b *checkers.Board, mv checkers.Move) int {
	if mv.Captured == nil {
		return 0
	}
	victim := b.At(*mv.Captured)
	if victim == checkers.Empty {
		panic(fmt.Sprintf("engine: capture of empty square %v by move %v->%v", *mv.Captured, mv.From, mv.To))
	}
	return victim.Value()
}

// Material 红方视角的子力差，只用于展示
func Material(b *checkers.Board) int {
	rp, rk := b.Count(checkers.Red)
	bp, bk := b.Count(checkers.Black)
	return (rp + 3*rk) - (bp + 3*bk)
}
