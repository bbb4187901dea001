package checkers

// 王的四条斜线，顺序固定（搜索的同分取舍依赖它）
var kingDirs = [4][2]int{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}}

// 兵的前进方向：红向上(-1)，黑向下(+1)
func pawnDir(side Turn) int {
	if side == Red {
		return -1
	}
	return +1
}

// LegalMoves 生成某个格子上棋子的全部走法。
// 浅色格、空格、不是轮到的一方、GameOver 都返回空。
// 不强制吃子：普通走法和吃子走法一起返回。
func (b *Board) LegalMoves(from Position) []Move {
	if !from.OnBoard() || !from.IsDark() {
		return nil
	}
	pc := b.At(from)
	if !pc.BelongsTo(b.Turn) {
		return nil
	}
	var moves []Move
	if pc.IsKing() {
		genKingMoves(b, from, &moves)
	} else {
		genPawnMoves(b, from, &moves)
	}
	return moves
}

func genPawnMoves(b *Board, from Position, moves *[]Move) {
	side := b.Turn
	dir := pawnDir(side)

	// 前左、前右：空格直接走，敌子且后面空就吃
	for _, dc := range [2]int{-1, +1} {
		next := from.add(dir, dc)
		if !next.OnBoard() {
			continue
		}
		dst := b.At(next)
		if dst == Empty {
			*moves = append(*moves, Move{From: from, To: next})
			continue
		}
		if !dst.IsEnemyOf(side) {
			continue
		}
		land := next.add(dir, dc)
		if land.OnBoard() && b.At(land) == Empty {
			captured := next
			*moves = append(*moves, Move{From: from, To: land, Captured: &captured})
		}
	}

	// 后左、后右：只能吃子，不能后退
	for _, dc := range [2]int{-1, +1} {
		over := from.add(-dir, dc)
		land := over.add(-dir, dc)
		if !land.OnBoard() {
			continue
		}
		if b.At(over).IsEnemyOf(side) && b.At(land) == Empty {
			captured := over
			*moves = append(*moves, Move{From: from, To: land, Captured: &captured})
		}
	}
}

// 王：斜线任意远；碰到第一个子，是敌子且紧后一格为空就吃，然后这条线结束
func genKingMoves(b *Board, from Position, moves *[]Move) {
	side := b.Turn
	for _, d := range kingDirs {
		p := from.add(d[0], d[1])
		for p.OnBoard() {
			dst := b.At(p)
			if dst == Empty {
				*moves = append(*moves, Move{From: from, To: p})
				p = p.add(d[0], d[1])
				continue
			}
			if dst.IsEnemyOf(side) {
				land := p.add(d[0], d[1])
				if land.OnBoard() && b.At(land) == Empty {
					captured := p
					*moves = append(*moves, Move{From: from, To: land, Captured: &captured})
				}
			}
			break
		}
	}
}

// MovesForSide 轮到的一方所有棋子的走法，按行优先、再按生成器顺序
func (b *Board) MovesForSide() []Move {
	var moves []Move
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			moves = append(moves, b.LegalMoves(Pos(r, c))...)
		}
	}
	return moves
}

func (b *Board) HasLegalMoves() bool {
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			if len(b.LegalMoves(Pos(r, c))) > 0 {
				return true
			}
		}
	}
	return false
}
