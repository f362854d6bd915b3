// Package tui is the catbreak popup: a small terminal view over the cached
// good-news feed, with inline settings for first-run setup.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/staggeredsix/catbreak/internal/browser"
	"github.com/staggeredsix/catbreak/internal/cache"
	"github.com/staggeredsix/catbreak/internal/news"
	"github.com/staggeredsix/catbreak/internal/settings"
)

type mode int

const (
	modeFeed mode = iota
	modeSettings
)

const fetchTimeout = 30 * time.Second

// Fetcher retrieves the news payload from a backend address.
type Fetcher interface {
	Fetch(ctx context.Context, address string) (*news.Payload, []byte, error)
}

type App struct {
	cfg          settings.Settings
	settingsPath string
	store        *cache.Cache
	fetcher      Fetcher
	openURL      func(string) error

	articles  []news.Article
	cursor    int
	mode      mode
	fetchedAt time.Time

	width  int
	height int

	// Sub-components
	addressInput  textinput.Model
	siteInput     textinput.Model
	settingsFocus int
	spinner       spinner.Model

	// State
	loading  bool
	fetchErr bool
	err      error
}

// RunOpts holds all parameters for launching the popup.
type RunOpts struct {
	Settings     settings.Settings
	SettingsPath string
	Store        *cache.Cache
	Fetcher      Fetcher
}

func NewApp(opts RunOpts) *App {
	ai := textinput.New()
	ai.Placeholder = "192.168.0.10 or host:port"
	ai.CharLimit = 120

	si := textinput.New()
	si.Placeholder = "https://example.com (optional)"
	si.CharLimit = 200

	sp := spinner.New()
	sp.Spinner = spinner.MiniDot
	sp.Style = spinnerStyle

	return &App{
		cfg:          opts.Settings,
		settingsPath: opts.SettingsPath,
		store:        opts.Store,
		fetcher:      opts.Fetcher,
		openURL:      browser.Open,
		addressInput: ai,
		siteInput:    si,
		spinner:      sp,
		loading:      true,
	}
}

func (a *App) Init() tea.Cmd {
	return tea.Batch(a.loadCmd(), a.spinner.Tick)
}

// loadCmd serves the cached payload when present, otherwise performs a
// single fetch and writes the result through to the cache.
func (a *App) loadCmd() tea.Cmd {
	store := a.store
	fetcher := a.fetcher
	address := a.cfg.BackendAddress
	return func() tea.Msg {
		raw, ok, err := store.Read()
		if err == nil && ok {
			if payload, derr := news.Decode(raw); derr == nil {
				at, _ := store.FetchedAt()
				return newsLoadedMsg{payload: payload, fetchedAt: at, fromCache: true}
			}
		}

		if strings.TrimSpace(address) == "" {
			return setupNeededMsg{}
		}

		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()
		payload, body, ferr := fetcher.Fetch(ctx, address)
		if ferr != nil {
			return fetchFailedMsg{err: ferr}
		}
		_ = store.Write(body)
		return newsLoadedMsg{payload: payload, fetchedAt: time.Now()}
	}
}

// refreshCmd drops the cached payload and re-runs the empty-cache path,
// so a manual refresh always hits the backend exactly once.
func (a *App) refreshCmd() tea.Cmd {
	store := a.store
	load := a.loadCmd()
	return func() tea.Msg {
		if err := store.Clear(); err != nil {
			return errMsg{err: err}
		}
		return load()
	}
}

func (a *App) saveSettingsCmd() tea.Cmd {
	path := a.settingsPath
	address := a.addressInput.Value()
	site := a.siteInput.Value()
	return func() tea.Msg {
		saved, err := settings.Save(path, settings.Patch{
			BackendAddress: &address,
			SiteURL:        &site,
		})
		if err != nil {
			return errMsg{err: err}
		}
		return settingsSavedMsg{saved: saved}
	}
}

func (a *App) openCmd(url string) tea.Cmd {
	open := a.openURL
	return func() tea.Msg {
		if err := open(url); err != nil {
			return errMsg{err: err}
		}
		return nil
	}
}

func (a *App) glyph() string {
	if a.cfg.Glyph != "" {
		return a.cfg.Glyph
	}
	return news.DefaultGlyph
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case tea.KeyMsg:
		// Clear sticky error on any keypress
		a.err = nil
		return a.handleKey(msg)

	case newsLoadedMsg:
		a.loading = false
		a.fetchErr = false
		a.articles = msg.payload.Articles
		a.fetchedAt = msg.fetchedAt
		if a.cursor >= len(a.articles) {
			a.cursor = max(0, len(a.articles)-1)
		}
		return a, nil

	case fetchFailedMsg:
		a.loading = false
		a.fetchErr = true
		return a, nil

	case setupNeededMsg:
		a.loading = false
		a.enterSettings()
		return a, textinput.Blink

	case settingsSavedMsg:
		a.cfg = msg.saved
		a.mode = modeFeed
		a.addressInput.Blur()
		a.siteInput.Blur()
		if len(a.articles) == 0 && a.cfg.HasBackend() {
			a.loading = true
			a.fetchErr = false
			return a, tea.Batch(a.loadCmd(), a.spinner.Tick)
		}
		return a, nil

	case errMsg:
		a.err = msg.err
		return a, nil

	case spinner.TickMsg:
		if a.loading {
			var cmd tea.Cmd
			a.spinner, cmd = a.spinner.Update(msg)
			return a, cmd
		}
		return a, nil
	}

	return a, nil
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return a, tea.Quit
	}

	if a.mode == modeSettings {
		return a.handleSettingsKey(msg)
	}

	switch msg.String() {
	case "q", "esc":
		return a, tea.Quit
	case "j", "down":
		if a.cursor < len(a.articles)-1 {
			a.cursor++
		}
		return a, nil
	case "k", "up":
		if a.cursor > 0 {
			a.cursor--
		}
		return a, nil
	case "o", "enter":
		if len(a.articles) > 0 && a.cursor < len(a.articles) {
			return a, a.openCmd(a.articles[a.cursor].URL)
		}
		return a, nil
	case "s":
		if a.cfg.SiteURL != "" {
			return a, a.openCmd(a.cfg.SiteURL)
		}
		return a, nil
	case "r":
		if !a.loading {
			a.loading = true
			a.fetchErr = false
			return a, tea.Batch(a.refreshCmd(), a.spinner.Tick)
		}
		return a, nil
	case "c":
		a.enterSettings()
		return a, textinput.Blink
	}

	return a, nil
}

func (a *App) handleSettingsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		a.mode = modeFeed
		a.addressInput.Blur()
		a.siteInput.Blur()
		return a, nil
	case "tab", "shift+tab", "up", "down":
		if a.settingsFocus == 0 {
			a.settingsFocus = 1
			a.addressInput.Blur()
			a.siteInput.Focus()
		} else {
			a.settingsFocus = 0
			a.siteInput.Blur()
			a.addressInput.Focus()
		}
		return a, textinput.Blink
	case "enter":
		return a, a.saveSettingsCmd()
	}

	var cmd tea.Cmd
	if a.settingsFocus == 0 {
		a.addressInput, cmd = a.addressInput.Update(msg)
	} else {
		a.siteInput, cmd = a.siteInput.Update(msg)
	}
	return a, cmd
}

func (a *App) enterSettings() {
	a.mode = modeSettings
	a.addressInput.SetValue(a.cfg.BackendAddress)
	a.siteInput.SetValue(a.cfg.SiteURL)
	a.settingsFocus = 0
	a.addressInput.Focus()
	a.siteInput.Blur()
}

func (a *App) hints() string {
	if a.cfg.SiteURL != "" {
		return "o open  s site  r refresh  c settings  q quit"
	}
	return "o open  r refresh  c settings  q quit"
}

func (a *App) View() string {
	if a.width == 0 {
		return lipgloss.NewStyle().Foreground(colorAccent).Render("  catbreak")
	}

	if a.mode == modeSettings {
		return a.viewSettings()
	}
	return a.viewFeed()
}

func (a *App) viewFeed() string {
	headerLeft := headerStyle.Render("catbreak")
	headerRight := ""
	if !a.fetchedAt.IsZero() {
		headerRight = headerMetaStyle.Render("fetched " + relativeTime(a.fetchedAt))
	}
	headerGap := a.width - lipgloss.Width(headerLeft) - lipgloss.Width(headerRight)
	if headerGap < 0 {
		headerGap = 0
	}
	header := headerLeft + fmt.Sprintf("%*s", headerGap, "") + headerRight

	contentHeight := a.height - 2
	if contentHeight < 3 {
		contentHeight = 3
	}

	var body string
	switch {
	case a.loading:
		body = centerLine(a.spinner.View()+" Fetching good news...", a.width, contentHeight)
	case a.fetchErr:
		body = centerLine(errorStyle.Render("❌ Could not load news."), a.width, contentHeight)
	case len(a.articles) == 0:
		body = centerLine(emptyStyle.Render("No articles available."), a.width, contentHeight)
	default:
		body = renderRows(a.articles, a.cursor, a.glyph(), contentHeight, a.width-2)
	}

	lines := strings.Split(body, "\n")
	for len(lines) < contentHeight {
		lines = append(lines, "")
	}
	if len(lines) > contentHeight {
		lines = lines[:contentHeight]
	}
	body = strings.Join(lines, "\n")

	status := renderStatusBar(len(a.articles), a.hints(), a.width, a.err)

	return lipgloss.JoinVertical(lipgloss.Left, header, body, status)
}

func (a *App) viewSettings() string {
	form := strings.Join([]string{
		headerStyle.Render("catbreak settings"),
		"",
		inputLabelStyle.Render(" Backend address (host or host:port)"),
		" " + a.addressInput.View(),
		"",
		inputLabelStyle.Render(" Site URL (optional)"),
		" " + a.siteInput.View(),
	}, "\n")

	lines := strings.Split(form, "\n")
	for len(lines) < a.height-1 {
		lines = append(lines, "")
	}
	if len(lines) > a.height-1 {
		lines = lines[:a.height-1]
	}

	hint := statusBarStyle.Width(a.width).Render(" enter save  tab next field  esc back ")
	return strings.Join(lines, "\n") + "\n" + hint
}

// Run starts the popup.
func Run(opts RunOpts) error {
	app := NewApp(opts)
	p := tea.NewProgram(app, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
