package engine

import (
	"context"
	"log"
	"time"

	"golang.org/x/sync/errgroup"

	"checkers/internal/checkers"
)

// 每隔多少个节点看一次 context
const ctxCheckInterval = 4096

// 搜索结果
type SearchResult struct {
	Move     checkers.Move // 落下的那步（Applied 为 false 时无意义）
	Score    int           // 根节点视角的累计分
	Applied  bool          // 是否真的在棋盘上走了一步
	Stats    Stats
	TimeUsed time.Duration
}

type searcher struct {
	ctx      context.Context
	maxDepth int
	stats    Stats
	aborted  bool
}

func newSearcher(ctx context.Context, maxDepth int) *searcher {
	return &searcher{ctx: ctx, maxDepth: maxDepth}
}

// ChooseMove 搜索并在真实棋盘上落一步；没有可走的棋时棋盘不变
func (e *Engine) ChooseMove(b *checkers.Board) SearchResult {
	res, _ := e.search(context.Background(), b, false)
	return res
}

// ChooseMoveContext 同 ChooseMove，支持取消、TimeLimit 和根节点并行。
// 超时或取消时返回 ctx 的错误，棋盘不变。
func (e *Engine) ChooseMoveContext(ctx context.Context, b *checkers.Board) (SearchResult, error) {
	if e.cfg.TimeLimit > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.cfg.TimeLimit)
		defer cancel()
	}
	return e.search(ctx, b, e.cfg.Parallel)
}

func (e *Engine) search(ctx context.Context, b *checkers.Board, parallel bool) (SearchResult, error) {
	start := time.Now()
	if err := ctx.Err(); err != nil {
		return SearchResult{}, err
	}

	var (
		score int
		best  checkers.Move
		found bool
		stats Stats
		err   error
	)
	if parallel {
		score, best, found, stats, err = e.searchRootParallel(ctx, b)
	} else {
		s := newSearcher(ctx, e.cfg.MaxDepth)
		score, best, found = s.minMax(b, 1, 0, 0)
		stats = s.stats
		if s.aborted {
			err = ctx.Err()
		}
	}

	res := SearchResult{Stats: stats}
	if err != nil {
		res.TimeUsed = time.Since(start)
		return res, err
	}
	if found {
		// 只有根节点的选择落到真实棋盘上
		b.ApplyMove(best.From, best.To)
		res.Move = best
		res.Score = score
		res.Applied = true
	}
	res.TimeUsed = time.Since(start)

	if e.cfg.LogStats {
		if found {
			log.Printf("[engine] move %v->%v score=%d time=%v %+v", best.From, best.To, score, res.TimeUsed, stats)
		} else {
			log.Printf("[engine] no move available, turn=%v %+v", b.Turn, stats)
		}
	}
	return res, nil
}

// minMax 每一层都取最大值，靠 scoreSign 翻转符号实现极大极小（negamax 写法）。
// previousScore 是到当前节点为止的累计分；bestScore 只用于剪枝。
// 吃子后同一方继续走，depth 不变。
func (s *searcher) minMax(b *checkers.Board, depth, previousScore, bestScore int) (int, checkers.Move, bool) {
	if depth > s.maxDepth {
		return previousScore, checkers.Move{}, false
	}
	if s.checkAbort() {
		return previousScore, checkers.Move{}, false
	}

	s.stats.Iterations++

	// 不 panic：可能是用户在对局结束后还点了 AI
	if b.Turn == checkers.GameOver {
		return previousScore, checkers.Move{}, false
	}

	var (
		bestMove    checkers.Move
		bestScoreAt int
		found       bool
	)
	for _, mv := range b.MovesForSide() {
		if s.aborted {
			break
		}
		score, ok := s.explore(b, mv, depth, previousScore, bestScore)
		if !ok {
			continue
		}
		// 同分保留先枚举到的
		if !found || score > bestScoreAt {
			bestMove, bestScoreAt, found = mv, score, true
		}
	}

	if !found {
		return previousScore, checkers.Move{}, false
	}
	return bestScoreAt, bestMove, true
}

// explore 在克隆盘上走 mv 并继续搜索；被剪掉时 ok 为 false
func (s *searcher) explore(b *checkers.Board, mv checkers.Move, depth, previousScore, bestScore int) (int, bool) {
	s.stats.MovesConsidered++

	score := previousScore + scoreSign(depth)*moveValue(b, mv)

	sim := b.Clone()
	sim.Simulate(mv)

	depthChange := 0
	if sim.Turn != b.Turn {
		// 这一手结束了：阈值随深度收紧，不是标准 alpha-beta，可能剪掉真正的最优
		if bestScore-score >= s.maxDepth-depth*2 {
			s.stats.TurnsPruned++
			return 0, false
		}
		s.stats.TurnsPlayed++
		depthChange = 1
	}

	score, _, _ = s.minMax(sim, depth+depthChange, score, max(score, bestScore))
	return score, true
}

func (s *searcher) checkAbort() bool {
	if s.aborted {
		return true
	}
	if s.stats.Iterations%ctxCheckInterval == 0 && s.ctx.Err() != nil {
		s.aborted = true
	}
	return s.aborted
}

// 根节点并行：兄弟节点之间不共享剪枝界，所以每个根着法可以独立在自己的克隆盘上算，
// 合并时按枚举顺序取第一个最大值，结果和串行一致。
func (e *Engine) searchRootParallel(ctx context.Context, b *checkers.Board) (int, checkers.Move, bool, Stats, error) {
	var stats Stats
	stats.Iterations++
	if b.Turn == checkers.GameOver {
		return 0, checkers.Move{}, false, stats, nil
	}

	moves := b.MovesForSide()

	type rootResult struct {
		score int
		ok    bool
		stats Stats
	}
	results := make([]rootResult, len(moves))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.cfg.Workers)
	for i, mv := range moves {
		i, mv := i, mv
		g.Go(func() error {
			s := newSearcher(gctx, e.cfg.MaxDepth)
			score, ok := s.explore(b, mv, 1, 0, 0)
			results[i] = rootResult{score: score, ok: ok, stats: s.stats}
			if s.aborted {
				return gctx.Err()
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		for _, r := range results {
			stats.add(r.stats)
		}
		return 0, checkers.Move{}, false, stats, err
	}

	var (
		bestMove  checkers.Move
		bestScore int
		found     bool
	)
	for i, r := range results {
		stats.add(r.stats)
		if !r.ok {
			continue
		}
		if !found || r.score > bestScore {
			bestMove, bestScore, found = moves[i], r.score, true
		}
	}
	return bestScore, bestMove, found, stats, nil
}
