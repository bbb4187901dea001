package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"checkers/internal/checkers"
	"checkers/internal/engine"
)

type mode int

const (
	modeNormal mode = iota
	modeInput
)

type Options struct {
	Depth     int
	Parallel  bool
	HumanSide checkers.Turn // 人类执哪方；GameOver 表示两边都由人走
}

type Model struct {
	board  *checkers.Board
	engine *engine.Engine
	human  checkers.Turn

	thinking bool
	game     int // new 一次加一，丢弃旧对局的搜索结果
	hints    []checkers.Move

	m        mode
	input    textinput.Model
	logLines []string

	width  int
	height int
}

// aiDoneMsg 搜索在棋盘副本上完成，Update 里再把这步落到真实棋盘
type aiDoneMsg struct {
	game int
	res  engine.SearchResult
	err  error
}

func NewModel(opts Options) Model {
	ti := textinput.New()
	ti.Placeholder = "r c r c | ai | moves r c | new | log"
	ti.Prompt = "> "
	ti.CharLimit = 200
	ti.Width = 60

	return Model{
		board:  checkers.NewBoard(),
		engine: engine.NewEngine(engine.SearchConfig{MaxDepth: opts.Depth, Parallel: opts.Parallel}),
		human:  opts.HumanSide,
		m:      modeNormal,
		input:  ti,
		logLines: []string{
			"ready (press i to input command, a for AI move)",
		},
	}
}

func (m Model) Init() tea.Cmd {
	if m.aiToMove() {
		return m.startAI()
	}
	return nil
}

func (m Model) aiToMove() bool {
	if m.human == checkers.GameOver || m.board.Turn == checkers.GameOver {
		return false
	}
	return m.board.Turn != m.human
}

func (m *Model) startAI() tea.Cmd {
	if m.thinking || m.board.Turn == checkers.GameOver {
		return nil
	}
	m.thinking = true
	clone := m.board.Clone()
	e, game := m.engine, m.game
	return func() tea.Msg {
		res, err := e.ChooseMoveContext(context.Background(), clone)
		return aiDoneMsg{game: game, res: res, err: err}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.input.Width = min(80, max(30, m.width-4))
		return m, nil

	case aiDoneMsg:
		return m, m.finishAI(msg)

	case tea.KeyMsg:
		switch m.m {
		case modeNormal:
			switch msg.String() {
			case "q", "ctrl+c":
				return m, tea.Quit
			case "a":
				return m, m.startAI()
			case "i":
				m.m = modeInput
				m.input.SetValue("")
				m.input.Focus()
				return m, nil
			default:
				return m, nil
			}

		case modeInput:
			switch msg.String() {
			case "esc":
				m.m = modeNormal
				m.input.Blur()
				return m, nil
			case "enter":
				cmdline := strings.TrimSpace(m.input.Value())
				m.input.SetValue("")
				m.m = modeNormal
				m.input.Blur()

				if cmdline == "" {
					return m, nil
				}
				return m, m.execCommand(cmdline)
			}

			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			return m, cmd
		}
	}
	return m, nil
}

func (m *Model) finishAI(msg aiDoneMsg) tea.Cmd {
	if msg.game != m.game {
		return nil
	}
	m.thinking = false
	if msg.err != nil {
		m.appendLog(fmt.Sprintf("ai failed: %v", msg.err))
		return nil
	}
	if !msg.res.Applied {
		m.appendLog("ai: no move")
		m.checkGameOver()
		return nil
	}
	mv := msg.res.Move
	if !m.board.ApplyMove(mv.From, mv.To) {
		m.appendLog("ai move discarded (board changed)")
		return nil
	}
	m.hints = nil
	m.appendLog(fmt.Sprintf("ai %s  score=%d considered=%d pruned=%d  %v",
		formatMove(mv), msg.res.Score, msg.res.Stats.MovesConsidered, msg.res.Stats.TurnsPruned, msg.res.TimeUsed.Round(time.Millisecond)))
	if m.checkGameOver() {
		return nil
	}
	// 吃子后 AI 保留回合，继续走
	if m.aiToMove() {
		return m.startAI()
	}
	return nil
}

func (m *Model) execCommand(line string) tea.Cmd {
	m.appendLog("> " + line)

	parts := strings.Fields(line)
	if len(parts) == 0 {
		return nil
	}

	// "5 0 4 1" 直接走子
	if len(parts) == 4 {
		if nums, err := parseInts(parts); err == nil {
			return m.humanMove(checkers.Pos(nums[0], nums[1]), checkers.Pos(nums[2], nums[3]))
		}
	}

	switch parts[0] {
	case "ai":
		return m.startAI()

	case "moves":
		nums, err := parseInts(parts[1:])
		if err != nil || len(nums) != 2 {
			m.appendLog("usage: moves r c")
			return nil
		}
		from := checkers.Pos(nums[0], nums[1])
		m.hints = m.board.LegalMoves(from)
		if len(m.hints) == 0 {
			m.appendLog(fmt.Sprintf("no moves from %d %d", from.Row, from.Col))
			return nil
		}
		for _, mv := range m.hints {
			m.appendLog("  " + formatMove(mv))
		}

	case "new", "reset":
		m.board = checkers.NewBoard()
		m.game++
		m.thinking = false
		m.hints = nil
		m.appendLog("new game")
		if m.aiToMove() {
			return m.startAI()
		}

	case "side":
		if len(parts) != 2 {
			m.appendLog("usage: side red|black|none")
			return nil
		}
		if parts[1] == "none" {
			m.human = checkers.GameOver
		} else if side, ok := checkers.ParseTurn(parts[1]); ok && side != checkers.GameOver {
			m.human = side
		} else {
			m.appendLog(fmt.Sprintf("unknown side: %s", parts[1]))
			return nil
		}
		m.appendLog("human plays " + sideName(m.human))
		if m.aiToMove() {
			return m.startAI()
		}

	case "log":
		history := m.board.History()
		if len(history) == 0 {
			m.appendLog("log is empty")
		}
		for i, e := range history {
			s := fmt.Sprintf("  %3d %s (%d,%d)->(%d,%d)", i+1, e.Pawn, e.From.Row, e.From.Col, e.To.Row, e.To.Col)
			if e.Captured != nil {
				s += fmt.Sprintf(" x %s (%d,%d)", e.Captured.Pawn, e.Captured.Position.Row, e.Captured.Position.Col)
			}
			m.appendLog(s)
		}

	case "fen":
		m.appendLog(m.board.Encode())

	default:
		m.appendLog(fmt.Sprintf("unknown command: %s", parts[0]))
	}
	return nil
}

func (m *Model) humanMove(from, to checkers.Position) tea.Cmd {
	if m.thinking {
		m.appendLog("ai is thinking")
		return nil
	}
	if m.aiToMove() {
		m.appendLog("not your turn")
		return nil
	}
	if !m.board.ApplyMove(from, to) {
		m.appendLog("illegal move")
		return nil
	}
	m.hints = nil
	m.appendLog(fmt.Sprintf("you (%d,%d)->(%d,%d)", from.Row, from.Col, to.Row, to.Col))
	if m.checkGameOver() {
		return nil
	}
	if m.aiToMove() {
		return m.startAI()
	}
	return nil
}

func (m *Model) checkGameOver() bool {
	if !m.board.DetectGameOver() {
		return false
	}
	if w, ok := m.board.Winner(); ok {
		m.appendLog(fmt.Sprintf("game over: %s wins", w))
	}
	return true
}

func parseInts(parts []string) ([]int, error) {
	out := make([]int, len(parts))
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return nil, err
		}
		out[i] = n
	}
	return out, nil
}

func formatMove(mv checkers.Move) string {
	s := fmt.Sprintf("(%d,%d)->(%d,%d)", mv.From.Row, mv.From.Col, mv.To.Row, mv.To.Col)
	if mv.Captured != nil {
		s += fmt.Sprintf(" x (%d,%d)", mv.Captured.Row, mv.Captured.Col)
	}
	return s
}

func sideName(t checkers.Turn) string {
	if t == checkers.GameOver {
		return "none"
	}
	return t.String()
}

func (m *Model) appendLog(s string) {
	m.logLines = append(m.logLines, s)
	if len(m.logLines) > 200 {
		m.logLines = m.logLines[len(m.logLines)-200:]
	}
}

func (m Model) View() string {
	titleStyle := lipgloss.NewStyle().Bold(true)
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1)

	status := "turn:" + m.board.Turn.String()
	if w, ok := m.board.Winner(); ok {
		status = "winner:" + w.String()
	}
	if m.thinking {
		status += " (thinking...)"
	}
	header := titleStyle.Render(fmt.Sprintf("checkers  [%s]  human:%s", status, sideName(m.human)))

	boardBox := boxStyle.Render(RenderBoard(m.board, m.hints))

	logHeight := max(5, m.height-18)
	logStart := max(0, len(m.logLines)-logHeight)
	logBody := strings.Join(m.logLines[logStart:], "\n")
	logBox := boxStyle.Width(max(20, m.width-lipgloss.Width(boardBox)-4)).Height(logHeight).Render(logBody)

	var inputLine string
	if m.m == modeInput {
		inputLine = m.input.View()
	} else {
		inputLine = "press i to enter command, a for AI move, q to quit"
	}
	inputBox := boxStyle.Width(max(20, m.width-2)).Render(inputLine)

	body := lipgloss.JoinHorizontal(lipgloss.Top, boardBox, logBox)
	return header + "\n" + body + "\n" + inputBox + "\n"
}
