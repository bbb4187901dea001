package checkers

// ApplyMove 走子。to 不在 LegalMoves(from) 里就什么都不做（返回 false），
// 不会留下半步状态：挪子、升王、提子、换边要么全做要么全不做。
func (b *Board) ApplyMove(from, to Position) bool {
	mv, ok := b.findMove(from, to)
	if !ok {
		return false
	}
	entry := b.play(mv)
	b.log = append(b.log, entry)
	return true
}

// Simulate 给搜索的模拟盘用：不重新校验、不写记录。mv 必须来自当前局面的 LegalMoves。
func (b *Board) Simulate(mv Move) {
	b.play(mv)
}

func (b *Board) play(mv Move) LogEntry {
	from, to := mv.From, mv.To
	pc := b.At(from)
	b.Squares[to.Row][to.Col] = pc
	b.Squares[from.Row][from.Col] = Empty

	// 到达底线升王，吃子走法也一样
	if to.Row == 0 || to.Row == Size-1 {
		b.Squares[to.Row][to.Col] = pc.Promoted()
	}

	entry := LogEntry{Pawn: b.At(to), From: from, To: to}
	if mv.Captured != nil {
		kill := *mv.Captured
		entry.Captured = &CapturedPiece{Pawn: b.At(kill), Position: kill}
		b.Squares[kill.Row][kill.Col] = Empty
		// 吃子后还是同一方走
	} else {
		b.Turn = b.Turn.Opposite()
	}
	return entry
}

func (b *Board) findMove(from, to Position) (Move, bool) {
	for _, mv := range b.LegalMoves(from) {
		if mv.To == to {
			return mv, true
		}
	}
	return Move{}, false
}

// DetectGameOver 对方的子被吃光时当前一方获胜（吃子后回合不换，所以要先查这个）；
// 否则轮到的一方无子可动时结束对局，对方获胜。
// ApplyMove 自己从不产生 GameOver，由上层在每步之后调用。
func (b *Board) DetectGameOver() bool {
	if b.Turn == GameOver {
		return true
	}
	if pawns, kings := b.Count(b.Turn.Opposite()); pawns+kings == 0 {
		b.winner = b.Turn
		b.Turn = GameOver
		return true
	}
	if b.HasLegalMoves() {
		return false
	}
	b.winner = b.Turn.Opposite()
	b.Turn = GameOver
	return true
}

// DeclareGameOver 外部宣布结束（认输、超时等）；winner 传 GameOver 表示无胜者
func (b *Board) DeclareGameOver(winner Turn) {
	b.winner = winner
	b.Turn = GameOver
}
