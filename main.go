package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"go-snake/internal/food"
	"go-snake/internal/game"
	"go-snake/internal/scoring"
	"go-snake/internal/snake"
	"go-snake/internal/spectator"
	"go-snake/internal/state"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/golang/glog"
	"github.com/joho/godotenv"
)

var (
	redStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))  // Loss messages
	greenStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10")) // Snake body
	scoreStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11")) // Status line
	foodStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("13"))
	headStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	boardStyle = lipgloss.NewStyle().Border(lipgloss.ThickBorder())
)

type keyMap struct {
	Up    key.Binding
	Down  key.Binding
	Left  key.Binding
	Right key.Binding
	Quit  key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Left, k.Right, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

var keys = keyMap{
	Up:    key.NewBinding(key.WithKeys("up", "w", "k"), key.WithHelp("↑/w", "up")),
	Down:  key.NewBinding(key.WithKeys("down", "s", "j"), key.WithHelp("↓/s", "down")),
	Left:  key.NewBinding(key.WithKeys("left", "a", "h"), key.WithHelp("←/a", "left")),
	Right: key.NewBinding(key.WithKeys("right", "d", "l"), key.WithHelp("→/d", "right")),
	Quit:  key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

type LocalState struct {
	Session *game.Session
	Tick    time.Duration
	help    help.Model
}

type TickMsg time.Time

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func (s *LocalState) Init() tea.Cmd {
	return tickCmd(s.Tick)
}

func (s *LocalState) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case TickMsg:
		if s.Session.IsFinished() {
			return s, nil
		}
		s.Session.CurrentGame.HandleTick()
		s.Session.Update()
		return s, tickCmd(s.Tick)

	case tea.KeyMsg:
		if key.Matches(msg, keys.Quit) {
			return s, tea.Quit
		}
		if s.Session.IsFinished() {
			return s, tea.Quit
		}

		g := s.Session.CurrentGame
		if g.State.Loss {
			// Any key moves on to the next level.
			if err := s.Session.Advance(); err != nil {
				glog.Errorf("advancing session: %v", err)
				return s, tea.Quit
			}
			return s, nil
		}

		switch {
		case key.Matches(msg, keys.Up):
			g.HandleDirection(snake.Up)
		case key.Matches(msg, keys.Down):
			g.HandleDirection(snake.Down)
		case key.Matches(msg, keys.Left):
			g.HandleDirection(snake.Left)
		case key.Matches(msg, keys.Right):
			g.HandleDirection(snake.Right)
		}
	}

	return s, nil
}

func (s *LocalState) RenderBoard() string {
	g := s.Session.CurrentGame
	head := g.Controller.Head()

	var b strings.Builder
	for y, row := range g.State.Board {
		if y > 0 {
			b.WriteByte('\n')
		}
		for x, cell := range row {
			switch {
			case cell == snake.Snake && x == head.X && y == head.Y:
				b.WriteString(headStyle.Render("██"))
			case cell == snake.Snake:
				b.WriteString(greenStyle.Render("▓▓"))
			case cell == snake.Food:
				b.WriteString(foodStyle.Render("<>"))
			default:
				b.WriteString(dimStyle.Render(" ·"))
			}
		}
	}
	return boardStyle.Render(b.String())
}

func (s *LocalState) View() string {
	if s.Session.IsFinished() {
		display := greenStyle.Render(fmt.Sprintf("All levels played! Total score: %d", s.Session.TotalScore))
		return display + "\n" + dimStyle.Render("Press any key to exit.") + "\n"
	}

	g := s.Session.CurrentGame
	level := s.Session.CurrentLevel()

	display := fmt.Sprintf("┃ LEVEL: %s", level.DisplayTitle())
	if s.Session.IsBatch {
		display += fmt.Sprintf(" (%d/%d)", s.Session.CurrentIndex+1, len(s.Session.Levels))
	}
	display += "\n" + s.RenderBoard()

	statusLine := "SCORE: " + fmt.Sprint(g.State.Score.CurrentScore) + " | " +
		"FOOD: " + fmt.Sprint(g.State.Score.FoodEaten) + " | " +
		"LENGTH: " + fmt.Sprint(len(g.Controller.Segments())) + " | " +
		"HEADING: " + g.Controller.Direction().String()
	if s.Session.IsBatch {
		statusLine += fmt.Sprintf(" | TOTAL: %d", s.Session.TotalScore)
	}
	display += "\n" + scoreStyle.Render(statusLine)

	if g.State.Score.GetAttempts() > 0 {
		display += fmt.Sprintf("\nAttempt: %d | High score (this level): %d", g.State.Score.GetAttempts()+1, g.State.Score.GetHighScore().Score)
	}

	if g.State.Loss {
		display += "\n" + redStyle.Render(fmt.Sprintf("Game over! Final score: %d", g.State.Score.CurrentScore))
		if g.State.Score.GotHighScore() {
			display += "\nNew high score! Top 5 for this level:"
			for _, entry := range g.State.Score.GetNScoreEntries(5) {
				display += fmt.Sprintf("\n  * %d on %s", entry.Score, entry.Timestamp)
			}
		}
		display += "\n" + dimStyle.Render("Press any key to continue.")
	}

	return display + "\n" + s.help.View(keys) + "\n"
}

// speedFlag accepts a tick interval as a duration ("150ms"), plain
// milliseconds or a named speed.
type speedFlag time.Duration

var namedSpeeds = map[string]time.Duration{
	"slow":   250 * time.Millisecond,
	"normal": 150 * time.Millisecond,
	"fast":   80 * time.Millisecond,
}

func (f *speedFlag) String() string {
	return time.Duration(*f).String()
}

func (f *speedFlag) Set(s string) error {
	if d, ok := namedSpeeds[s]; ok {
		*f = speedFlag(d)
		return nil
	}
	if ms, err := strconv.Atoi(s); err == nil && ms > 0 {
		*f = speedFlag(time.Duration(ms) * time.Millisecond)
		return nil
	}
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return fmt.Errorf("invalid speed %q (use slow, normal, fast, milliseconds or a duration)", s)
	}
	*f = speedFlag(d)
	return nil
}

func envOr(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}

func serveSpectators(ctx context.Context, addr string) snake.Port {
	hub := spectator.NewHub()
	go hub.Run(ctx)

	srv := &http.Server{Addr: addr, Handler: hub.Router()}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			glog.Errorf("spectator server: %v", err)
		}
	}()
	go func() {
		<-ctx.Done()
		srv.Close()
	}()

	glog.Infof("spectators can connect to ws://%s/watch", addr)
	return hub.Port()
}

func main() {
	// .env is optional
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "Warning: error loading .env file: %v\n", err)
	}

	speed := speedFlag(namedSpeeds["normal"])
	if v := os.Getenv("SNAKE_TICK"); v != "" {
		if err := speed.Set(v); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: SNAKE_TICK: %v\n", err)
		}
	}

	var (
		relocate     int
		tickScore    bool
		randomLevels bool
		seed         uint64
		watchAddr    string
		scoresPath   string
		config       string
	)

	flag.Var(&speed, "tick", "Tick interval: slow, normal, fast, milliseconds or a duration like 120ms")
	flag.IntVar(&relocate, "relocate", 0, "Move the food every N ticks (0 disables)")
	flag.BoolVar(&tickScore, "tick-score", false, "Award a point for every tick survived")
	flag.BoolVar(&randomLevels, "random-levels", false, "Shuffle the order of levels")
	flag.Uint64Var(&seed, "seed", uint64(time.Now().UnixNano()), "Seed for food placement")
	flag.StringVar(&watchAddr, "watch", envOr("SNAKE_WATCH", ""), "Serve a websocket spectator feed on this address (e.g. localhost:8080)")
	flag.StringVar(&scoresPath, "scores", envOr("SNAKE_SCORES", ""), "Score file (default ~/.config/go-snake/scores.json)")
	flag.StringVar(&config, "config", "", "Play a single level given as a configuration string")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] [level files or directories...]\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nLevel format: W <width> <height> F <foodX> <foodY> S <U|D|L|R> <length> <x> <y>...\n")
		fmt.Fprintf(os.Stderr, "\nOptions:\n")
		flag.PrintDefaults()
	}

	flag.Parse()
	defer glog.Flush()

	var levels []game.LevelData
	switch {
	case config != "":
		if _, err := snake.ParseConfig(config); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		levels = []game.LevelData{{Config: config, Title: "Custom"}}
	case flag.NArg() > 0:
		var err error
		levels, err = game.LoadLevels(flag.Args())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading levels: %v\n", err)
			os.Exit(1)
		}
	default:
		levels = []game.LevelData{{Config: game.DefaultLevel}}
	}

	storage, err := scoring.NewJSONFileStorage(scoresPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating score storage: %v\n", err)
		os.Exit(1)
	}
	glog.Infof("scores are kept in %s", storage.Path())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var watcher snake.Port
	if watchAddr != "" {
		watcher = serveSpectators(ctx, watchAddr)
	}

	opts := state.GameOptions{
		TickScore:     tickScore,
		RelocateEvery: relocate,
	}
	sess, err := game.NewSession(levels, opts, storage, food.NewGenerator(seed), watcher, randomLevels)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error starting session: %v\n", err)
		os.Exit(1)
	}

	model := &LocalState{
		Session: sess,
		Tick:    time.Duration(speed),
		help:    help.New(),
	}

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running the program: %v\n", err)
		os.Exit(1)
	}

	sess.Update()
	fmt.Printf("Total score: %d\n", sess.TotalScore)
}
