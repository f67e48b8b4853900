// internal/tui/app.go
//
// This is the interactive kata runner. It uses bubbletea, which follows
// The Elm Architecture:
//
// 1. Model: Your application state
// 2. Update: A function that updates state based on messages
// 3. View: A function that renders state to a string
//
// The flow is: User Input -> Message -> Update -> New Model -> View -> Screen

package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/louisabraham/QuantumKatas/internal/catalog"
	"github.com/louisabraham/QuantumKatas/internal/compile"
	"github.com/louisabraham/QuantumKatas/internal/config"
	"github.com/louisabraham/QuantumKatas/internal/diag"
	"github.com/louisabraham/QuantumKatas/internal/grader"
	"github.com/louisabraham/QuantumKatas/internal/kata"
	"github.com/louisabraham/QuantumKatas/internal/katas"
	"github.com/louisabraham/QuantumKatas/qsim"
)

// SubmissionLoader resolves the submitted source for an exercise. The
// default reads <SubmissionsDir>/<SimpleName>.go; tests inject their own.
type SubmissionLoader func(def kata.Definition) (string, error)

// AppOption customizes App construction for tests and alternate runtimes.
type AppOption func(*App)

// WithSubmissionLoader overrides how submission source text is located.
func WithSubmissionLoader(loader SubmissionLoader) AppOption {
	return func(a *App) {
		if loader != nil {
			a.loadSubmission = loader
		}
	}
}

// gradeFinishedMsg carries one grading run's outcome back into Update.
type gradeFinishedMsg struct {
	outcome grader.Outcome
	lines   []string
	err     error
}

// App is the main application model. In bubbletea, this holds ALL your state.
type App struct {
	config  *config.Config
	catalog *catalog.Catalog
	logbook *diag.Logbook

	loadSubmission SubmissionLoader

	// UI components
	exerciseMenu list.Model
	results      viewport.Model
	statusMsg    string
	resultText   string
	lastOutcome  *grader.Outcome
	grading      bool

	// Window size (we get this from bubbletea)
	width  int
	height int
}

// exerciseItem implements list.Item for catalog entries.
type exerciseItem struct {
	def kata.Definition
}

func (i exerciseItem) Title() string { return i.def.QualifiedName() }
func (i exerciseItem) Description() string {
	if i.def.Description != "" {
		return i.def.Description
	}
	return "Press enter to grade " + i.def.Name + ".go"
}
func (i exerciseItem) FilterValue() string { return i.def.QualifiedName() }

// NewApp creates a new App instance rooted at the given project directory.
func NewApp(projectDir string, opts ...AppOption) (*App, error) {
	if err := config.InitQKataDir(projectDir); err != nil {
		return nil, err
	}
	cfg, err := config.NewConfig(projectDir)
	if err != nil {
		return nil, err
	}
	cat, err := katas.NewCatalog()
	if err != nil {
		return nil, err
	}

	var book *diag.Logbook
	if cfg.LogsEnabled() {
		if lb, err := diag.NewLogbook(cfg.LogbookPath()); err == nil {
			book = lb
			book.Append(diag.LevelInfo, "session opened")
		}
	}

	exercises := cat.Exercises()
	items := make([]list.Item, len(exercises))
	for i, def := range exercises {
		items[i] = exerciseItem{def: def}
	}
	menu := list.New(items, list.NewDefaultDelegate(), 0, 0)
	menu.Title = "⬡ QUANTUM KATAS"
	menu.SetShowStatusBar(false)
	menu.SetFilteringEnabled(false)

	app := &App{
		config:       cfg,
		catalog:      cat,
		logbook:      book,
		exerciseMenu: menu,
		results:      viewport.New(0, 0),
		statusMsg:    fmt.Sprintf("Submissions: %s", cfg.SubmissionsDir()),
	}
	app.loadSubmission = defaultSubmissionLoader(cfg)
	for _, opt := range opts {
		if opt != nil {
			opt(app)
		}
	}
	return app, nil
}

func defaultSubmissionLoader(cfg *config.Config) SubmissionLoader {
	return func(def kata.Definition) (string, error) {
		path := filepath.Join(cfg.SubmissionsDir(), def.Name+".go")
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("tui: read submission %s: %w", path, err)
		}
		return string(data), nil
	}
}

// Init is called once when the program starts.
func (a *App) Init() tea.Cmd {
	return nil
}

// Update is called when a message is received.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		leftWidth, rightWidth := a.paneWidths()
		a.exerciseMenu.SetSize(max(20, leftWidth-4), max(10, msg.Height-10))
		a.results.Width = max(20, rightWidth-4)
		a.results.Height = max(10, msg.Height-14)
		a.results.SetContent(a.resultText)
		return a, nil

	case gradeFinishedMsg:
		a.grading = false
		a.handleGradeFinished(msg)
		return a, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			if a.logbook != nil {
				a.logbook.Append(diag.LevelInfo, "session closed")
			}
			return a, tea.Quit
		case "enter":
			if a.grading {
				return a, nil
			}
			if cmd := a.gradeSelectedExercise(); cmd != nil {
				return a, cmd
			}
			return a, nil
		case "esc":
			a.resultText = ""
			a.lastOutcome = nil
			a.results.SetContent("")
			a.statusMsg = fmt.Sprintf("Submissions: %s", a.config.SubmissionsDir())
			return a, nil
		}
	}

	var cmds []tea.Cmd
	var menuCmd tea.Cmd
	a.exerciseMenu, menuCmd = a.exerciseMenu.Update(msg)
	if menuCmd != nil {
		cmds = append(cmds, menuCmd)
	}
	var vpCmd tea.Cmd
	a.results, vpCmd = a.results.Update(msg)
	if vpCmd != nil {
		cmds = append(cmds, vpCmd)
	}
	return a, tea.Batch(cmds...)
}

// gradeSelectedExercise loads the submission for the highlighted exercise
// and grades it off the UI goroutine. Each run builds its own channel and
// engine, so a slow verification never wedges the interface.
func (a *App) gradeSelectedExercise() tea.Cmd {
	item, ok := a.exerciseMenu.SelectedItem().(exerciseItem)
	if !ok {
		return nil
	}
	def := item.def
	a.grading = true
	a.statusMsg = fmt.Sprintf("Grading %s ...", def.QualifiedName())

	load := a.loadSubmission
	cat := a.catalog
	book := a.logbook
	seed := a.config.Seed()

	return func() tea.Msg {
		src, err := load(def)
		if err != nil {
			return gradeFinishedMsg{err: err}
		}
		rec := &lineBuffer{}
		var chOpts []diag.Option
		if book != nil {
			chOpts = append(chOpts, diag.WithLogbook(book))
		}
		ch := diag.New(rec, rec, chOpts...)
		var runnerOpts []grader.Option
		if seed != 0 {
			runnerOpts = append(runnerOpts, grader.WithSimulatorOptions(qsim.WithSeed(seed)))
		}
		runner, err := grader.NewRunner(cat, compile.New(), ch, runnerOpts...)
		if err != nil {
			return gradeFinishedMsg{err: err}
		}
		out := runner.Check(grader.Invocation{Kata: def.QualifiedName(), Source: src})
		return gradeFinishedMsg{outcome: out, lines: rec.take()}
	}
}

func (a *App) handleGradeFinished(msg gradeFinishedMsg) {
	if msg.err != nil {
		a.statusMsg = msg.err.Error()
		a.resultText = errorStyle.Render(msg.err.Error())
		a.results.SetContent(a.resultText)
		return
	}
	out := msg.outcome
	a.lastOutcome = &out

	var b strings.Builder
	for _, line := range msg.lines {
		b.WriteString(line)
		b.WriteString("\n")
	}
	if out.Passed() {
		b.WriteString(successStyle.Render(grader.SuccessBanner()))
		a.statusMsg = fmt.Sprintf("%s passed", out.Kata)
	} else {
		b.WriteString(errorStyle.Render(fmt.Sprintf("%s: %s", out.Kata, out.Status)))
		a.statusMsg = fmt.Sprintf("%s failed (%s)", out.Kata, out.Status)
	}
	a.resultText = b.String()
	a.results.SetContent(a.resultText)
	a.results.GotoBottom()
}

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#5B8DEF")).
			MarginBottom(1)
	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#444444")).
			Padding(0, 1)
	successStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#73F59F"))
	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))
	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#AAAAAA"))
	logHeadStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#5B8DEF"))
)

// View renders the current state to a string.
func (a *App) View() string {
	leftWidth, rightWidth := a.paneWidths()

	header := headerStyle.Render("⬡ QUANTUM KATAS")
	leftBox := boxStyle.Width(max(20, leftWidth)).Render(a.exerciseMenu.View())

	var body string
	if rightWidth > 0 {
		right := lipgloss.JoinVertical(lipgloss.Left,
			a.renderResultPanel(),
			"",
			a.renderLogPanel(),
		)
		rightBox := boxStyle.Width(max(20, rightWidth)).Render(right)
		body = lipgloss.JoinHorizontal(lipgloss.Top, leftBox, rightBox)
	} else {
		body = leftBox
	}

	status := statusStyle.Render(a.statusMsg)
	return lipgloss.JoinVertical(lipgloss.Left, header, body, status)
}

func (a *App) renderResultPanel() string {
	if a.grading {
		return statusStyle.Render("Running verification ...")
	}
	if a.resultText == "" {
		return statusStyle.Render("Select an exercise and press enter to grade it.")
	}
	return a.results.View()
}

func (a *App) renderLogPanel() string {
	if a.logbook == nil {
		return ""
	}
	lines := a.logbook.Tail(8)
	if len(lines) == 0 {
		return ""
	}
	fileName := filepath.Base(a.logbook.Path())
	if fileName == "." || fileName == "" {
		fileName = "log"
	}
	head := logHeadStyle.Render(fmt.Sprintf("LOG · %s", fileName))
	body := statusStyle.Render(strings.Join(lines, "\n"))
	return fmt.Sprintf("%s\n%s", head, body)
}

func (a *App) paneWidths() (left, right int) {
	width := a.width
	if width <= 0 {
		width = 100
	}
	right = max(40, width/2)
	left = width - right - 4
	if left < 30 {
		left = width - 4
		right = 0
	}
	return left, right
}

// Run starts the TUI event loop and blocks until the user quits.
func Run(projectDir string, opts ...AppOption) error {
	app, err := NewApp(projectDir, opts...)
	if err != nil {
		return err
	}
	program := tea.NewProgram(app, tea.WithAltScreen())
	_, err = program.Run()
	return err
}

// lineBuffer captures both diagnostic streams in emission order. The
// channel serializes writers, but take() may race the grading goroutine,
// so it locks too.
type lineBuffer struct {
	mu    sync.Mutex
	lines []string
}

func (b *lineBuffer) Write(p []byte) (int, error) {
	text := strings.TrimRight(string(p), "\n")
	b.mu.Lock()
	defer b.mu.Unlock()
	b.lines = append(b.lines, strings.Split(text, "\n")...)
	return len(p), nil
}

func (b *lineBuffer) take() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]string, len(b.lines))
	copy(out, b.lines)
	return out
}
