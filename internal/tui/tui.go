// Package tui provides a Bubble Tea terminal user interface for gphotos-downloader.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/ravden/gphotos-downloader/internal/auth"
	"github.com/ravden/gphotos-downloader/internal/config"
	"github.com/ravden/gphotos-downloader/internal/download"
	"github.com/ravden/gphotos-downloader/internal/gphotos"
	"github.com/ravden/gphotos-downloader/internal/model"
)

// Styles for the TUI
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF6B6B")).
			MarginBottom(1)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4ECDC4"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#95E1A3"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#A8DADC"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6C757D"))

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#4ECDC4")).
			Padding(1, 2)

	scopeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F8B500"))
)

// State represents the current UI state.
type State int

const (
	StateInput State = iota
	StateAuthorizing
	StateDownloading
	StateComplete
	StateError
)

// Model is the Bubble Tea model for the TUI.
type Model struct {
	state     State
	textInput textinput.Model
	spinner   spinner.Model
	progress  progress.Model
	settings  *config.Settings
	scopes    []model.Scope
	summaries []download.ScopeSummary
	err       error

	// Export context
	ctx    context.Context
	cancel context.CancelFunc

	// Pipeline reference
	manager *download.Manager

	// Polled progress
	itemsDone     int32
	itemsTotal    int32
	receivedBytes int64

	// Options
	noCache bool

	width  int
	height int
}

// NewModel creates a new TUI model.
func NewModel() Model {
	ti := textinput.New()
	ti.Placeholder = "2023-11 2024-02"
	ti.Focus()
	ti.CharLimit = 20
	ti.Width = 30

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))

	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 50

	ctx, cancel := context.WithCancel(context.Background())

	return Model{
		state:     StateInput,
		textInput: ti,
		spinner:   sp,
		progress:  prog,
		settings:  config.DefaultSettings(),
		ctx:       ctx,
		cancel:    cancel,
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick)
}

// Message types
type (
	// InitDoneMsg is sent when authorization and setup complete.
	InitDoneMsg struct {
		Scopes  []model.Scope
		Manager *download.Manager
		Err     error
	}

	// RunDoneMsg is sent when all scopes have been processed.
	RunDoneMsg struct {
		Summaries []download.ScopeSummary
		Err       error
	}

	// TickMsg is for periodic progress updates.
	TickMsg struct{}
)

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.progress.Width = msg.Width - 20
		if m.progress.Width > 80 {
			m.progress.Width = 80
		}
		if m.progress.Width < 20 {
			m.progress.Width = 20
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.cancel()
			return m, tea.Quit

		case "esc":
			if m.state == StateInput {
				return m, tea.Quit
			}
			if m.state == StateDownloading || m.state == StateAuthorizing {
				m.cancel()
				m.state = StateError
				m.err = fmt.Errorf("cancelled by user")
			}

		case "enter":
			if m.state == StateInput && m.textInput.Value() != "" {
				m.state = StateAuthorizing
				return m, tea.Batch(m.initializeExport(), m.spinner.Tick)
			}

		case "c":
			if m.state == StateInput {
				m.noCache = !m.noCache
			}

		case "q":
			if m.state == StateComplete || m.state == StateError {
				return m, tea.Quit
			}

		case "r":
			if m.state == StateComplete || m.state == StateError {
				// Reset for a new export
				m.state = StateInput
				m.scopes = nil
				m.summaries = nil
				m.err = nil
				m.itemsDone = 0
				m.itemsTotal = 0
				m.receivedBytes = 0
				m.manager = nil
				m.ctx, m.cancel = context.WithCancel(context.Background())
				m.textInput.SetValue("")
				m.textInput.Focus()
			}
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	case InitDoneMsg:
		if msg.Err != nil {
			m.state = StateError
			m.err = msg.Err
		} else {
			m.scopes = msg.Scopes
			m.manager = msg.Manager
			m.state = StateDownloading
			cmds = append(cmds, m.startExport(), m.tickProgress())
		}

	case RunDoneMsg:
		m.summaries = msg.Summaries
		if m.manager != nil {
			m.receivedBytes, m.itemsDone, m.itemsTotal = m.manager.GetProgress()
		}
		if msg.Err != nil && m.ctx.Err() == nil {
			m.state = StateError
			m.err = msg.Err
		} else if m.ctx.Err() != nil {
			m.state = StateError
			m.err = fmt.Errorf("cancelled by user")
		} else {
			m.state = StateComplete
		}

	case TickMsg:
		if m.manager != nil && m.state == StateDownloading {
			m.receivedBytes, m.itemsDone, m.itemsTotal = m.manager.GetProgress()

			var percent float64
			if m.itemsTotal > 0 {
				percent = float64(m.itemsDone) / float64(m.itemsTotal)
			}
			progressCmd := m.progress.SetPercent(percent)
			cmds = append(cmds, progressCmd, m.tickProgress())
		}

	case progress.FrameMsg:
		progressModel, cmd := m.progress.Update(msg)
		m.progress = progressModel.(progress.Model)
		cmds = append(cmds, cmd)
	}

	// Update text input
	if m.state == StateInput {
		var cmd tea.Cmd
		m.textInput, cmd = m.textInput.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// tickProgress returns a command to tick progress updates.
func (m Model) tickProgress() tea.Cmd {
	return tea.Tick(200*time.Millisecond, func(_ time.Time) tea.Msg {
		return TickMsg{}
	})
}

// View renders the UI.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("📷 Google Photos Exporter"))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Export a photo library to disk, organized by capture date"))
	b.WriteString("\n\n")

	switch m.state {
	case StateInput:
		b.WriteString(m.viewInput())
	case StateAuthorizing:
		b.WriteString(m.viewAuthorizing())
	case StateDownloading:
		b.WriteString(m.viewDownloading())
	case StateComplete:
		b.WriteString(m.viewComplete())
	case StateError:
		b.WriteString(m.viewError())
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.getHelpText()))

	return b.String()
}

func (m Model) viewInput() string {
	var b strings.Builder

	b.WriteString(subtitleStyle.Render("Enter month range (start end):"))
	b.WriteString("\n\n")
	b.WriteString(m.textInput.View())
	b.WriteString("\n\n")

	noCacheCheck := "[ ]"
	if m.noCache {
		noCacheCheck = "[×]"
	}

	b.WriteString(infoStyle.Render("Options:"))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  %s Ignore cached listings (c)\n", noCacheCheck))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf("Output path: %s", m.settings.OutputPath)))
	b.WriteString("\n")

	return b.String()
}

func (m Model) viewAuthorizing() string {
	var b strings.Builder

	b.WriteString(m.spinner.View())
	b.WriteString(" ")
	b.WriteString(subtitleStyle.Render("Authorizing (check your browser on first run)..."))
	b.WriteString("\n")

	return b.String()
}

func (m Model) viewDownloading() string {
	var b strings.Builder

	if len(m.scopes) > 0 {
		b.WriteString(successStyle.Render(fmt.Sprintf("Exporting %d month(s):", len(m.scopes))))
		b.WriteString("\n")
		for _, s := range m.scopes {
			b.WriteString(scopeStyle.Render(fmt.Sprintf("  ▸ %s", s)))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	var percent float64
	if m.itemsTotal > 0 {
		percent = float64(m.itemsDone) / float64(m.itemsTotal)
	}
	b.WriteString(m.progress.ViewAs(percent))
	b.WriteString("\n")
	b.WriteString(infoStyle.Render(fmt.Sprintf(
		"Items: %d/%d | Received: %s",
		m.itemsDone,
		m.itemsTotal,
		download.FormatBytes(m.receivedBytes),
	)))
	b.WriteString("\n")

	return b.String()
}

func (m Model) viewComplete() string {
	var downloaded, skipped, failed int
	var bytes int64
	for _, s := range m.summaries {
		downloaded += s.Downloaded
		skipped += s.Skipped
		failed += s.Failed
		bytes += s.Bytes
	}

	return boxStyle.Render(fmt.Sprintf(
		"✨ Export Complete!\n\n"+
			"Months: %d\n"+
			"Downloaded: %d\n"+
			"Skipped: %d\n"+
			"Failed: %d\n"+
			"Size: %s",
		len(m.summaries),
		downloaded,
		skipped,
		failed,
		download.FormatBytes(bytes),
	))
}

func (m Model) viewError() string {
	var b strings.Builder

	b.WriteString(errorStyle.Render("❌ Error occurred:"))
	b.WriteString("\n\n")
	if m.err != nil {
		b.WriteString(fmt.Sprintf("  %s", m.err.Error()))
	}

	return b.String()
}

func (m Model) getHelpText() string {
	switch m.state {
	case StateInput:
		return "enter: start • c: ignore cache • esc: quit"
	case StateAuthorizing, StateDownloading:
		return "esc: cancel"
	case StateComplete, StateError:
		return "r: new export • q: quit"
	}
	return ""
}

// initializeExport parses the month range, authorizes, and builds the
// pipeline.
func (m *Model) initializeExport() tea.Cmd {
	input := m.textInput.Value()
	noCache := m.noCache
	ctx := m.ctx

	return func() tea.Msg {
		fields := strings.Fields(input)
		if len(fields) != 2 {
			return InitDoneMsg{Err: fmt.Errorf("want two months like %q, got %q", "2023-11 2024-02", input)}
		}
		startYear, startMonth, err := parseYearMonth(fields[0])
		if err != nil {
			return InitDoneMsg{Err: err}
		}
		endYear, endMonth, err := parseYearMonth(fields[1])
		if err != nil {
			return InitDoneMsg{Err: err}
		}
		scopes, err := model.MonthRange(startYear, startMonth, endYear, endMonth)
		if err != nil {
			return InitDoneMsg{Err: err}
		}

		settings := config.DefaultSettings()
		settings.DisableCache = noCache

		httpClient, err := auth.Client(ctx, settings.CredentialsFile, settings.TokenFile)
		if err != nil {
			return InitDoneMsg{Err: err}
		}
		api := gphotos.NewClient(httpClient, settings.PageSize, zerolog.Nop())

		// Progress is polled via TickMsg; events are not forwarded here.
		manager := download.NewManager(settings, api, nil)

		return InitDoneMsg{Scopes: scopes, Manager: manager}
	}
}

// startExport runs the pipeline in the background.
func (m *Model) startExport() tea.Cmd {
	manager := m.manager
	scopes := m.scopes
	ctx := m.ctx

	return func() tea.Msg {
		if manager == nil {
			return RunDoneMsg{Err: fmt.Errorf("no manager")}
		}
		summaries, err := manager.Run(ctx, scopes)
		return RunDoneMsg{Summaries: summaries, Err: err}
	}
}

func parseYearMonth(s string) (year, month int, err error) {
	var y, mo int
	if _, err := fmt.Sscanf(s, "%d-%d", &y, &mo); err != nil {
		return 0, 0, fmt.Errorf("want YYYY-MM, got %q", s)
	}
	return y, mo, nil
}

// Run starts the TUI application.
func Run() error {
	p := tea.NewProgram(NewModel(), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
