package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"checkers/internal/checkers"
)

// runCmd 同步执行一个 tea.Cmd 并把结果交回 Update
func runCmd(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	for cmd != nil {
		msg := cmd()
		next, c := m.Update(msg)
		m = next.(Model)
		cmd = c
	}
	return m
}

func TestHumanMoveTriggersAIReply(t *testing.T) {
	m := NewModel(Options{Depth: 3, HumanSide: checkers.Red})
	if cmd := m.Init(); cmd != nil {
		t.Fatalf("red human should move first")
	}

	cmd := m.execCommand("5 0 4 1")
	if cmd == nil {
		t.Fatalf("expected AI reply command")
	}
	if !m.thinking || m.board.Turn != checkers.Black {
		t.Fatalf("thinking=%v turn=%v", m.thinking, m.board.Turn)
	}
	m = runCmd(t, m, cmd)
	if m.thinking {
		t.Fatalf("still thinking after reply")
	}
	if m.board.Turn != checkers.Red || len(m.board.History()) != 2 {
		t.Fatalf("turn=%v history=%d", m.board.Turn, len(m.board.History()))
	}
}

func TestIllegalAndOutOfTurnMoves(t *testing.T) {
	m := NewModel(Options{Depth: 3, HumanSide: checkers.Red})
	if cmd := m.execCommand("5 0 3 2"); cmd != nil {
		t.Fatalf("illegal move should not start AI")
	}
	if m.logLines[len(m.logLines)-1] != "illegal move" {
		t.Fatalf("last log line %q", m.logLines[len(m.logLines)-1])
	}

	m.execCommand("side black")
	if !m.thinking {
		t.Fatalf("switching sides should let the AI move for red")
	}
	m.execCommand("2 1 3 0")
	if m.logLines[len(m.logLines)-1] != "ai is thinking" {
		t.Fatalf("last log line %q", m.logLines[len(m.logLines)-1])
	}
}

func TestStaleAIResultIsDropped(t *testing.T) {
	m := NewModel(Options{Depth: 3, HumanSide: checkers.Black})
	cmd := m.Init()
	if cmd == nil {
		t.Fatalf("AI should open for red")
	}
	m.startAI() // already thinking, no second search
	m.execCommand("new")
	start := m.board.Encode()

	// 旧对局的搜索结果回来了
	stale := cmd()
	next, _ := m.Update(stale)
	m = next.(Model)
	if m.board.Encode() != start || len(m.board.History()) != 0 {
		t.Fatalf("stale result applied to the new board")
	}
	if !m.thinking {
		t.Fatalf("the search for the new game is still pending")
	}
}

func TestMovesCommandSetsHints(t *testing.T) {
	m := NewModel(Options{HumanSide: checkers.GameOver})
	m.execCommand("moves 5 2")
	if len(m.hints) != 2 {
		t.Fatalf("hints=%v", m.hints)
	}
	out := RenderBoard(m.board, m.hints)
	if strings.Count(out, "*") != 2 {
		t.Fatalf("hint marks missing:\n%s", out)
	}
	m.execCommand("moves x")
	if m.logLines[len(m.logLines)-1] != "usage: moves r c" {
		t.Fatalf("last log line %q", m.logLines[len(m.logLines)-1])
	}
}

func TestTwoHumansNoAI(t *testing.T) {
	m := NewModel(Options{HumanSide: checkers.GameOver})
	if m.execCommand("5 0 4 1") != nil {
		t.Fatalf("no AI when both sides are human")
	}
	if m.execCommand("2 1 3 2") != nil || m.board.Turn != checkers.Red {
		t.Fatalf("black move failed, turn=%v", m.board.Turn)
	}
	m.execCommand("log")
	if !strings.Contains(strings.Join(m.logLines, "\n"), "(2,1)->(3,2)") {
		t.Fatalf("log command output missing:\n%s", strings.Join(m.logLines, "\n"))
	}
}

func TestRenderBoardCounts(t *testing.T) {
	out := RenderBoard(checkers.NewBoard(), nil)
	if strings.Count(out, "r") != 12 || strings.Count(out, "b") != 12 {
		t.Fatalf("unexpected board rendering:\n%s", out)
	}
	if lines := strings.Split(strings.TrimRight(out, "\n"), "\n"); len(lines) != 11 {
		t.Fatalf("want 11 lines, got %d", len(lines))
	}
}
