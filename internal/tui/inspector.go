package tui

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/JPM1118/imgbind/internal/asset"
	"github.com/JPM1118/imgbind/internal/notify"
	"github.com/JPM1118/imgbind/internal/resolver"
	"github.com/JPM1118/imgbind/internal/session"
	"github.com/JPM1118/imgbind/internal/watch"
)

const (
	colLayer    = 20
	colAsset    = 12
	colName     = 22
	colOutcome  = 12
	colSize     = 11
	minWidth    = 80
	minHeight   = 24
	headerLines = 4 // header + subheader + column header + separator
	footerLines = 2 // notification bar + status bar
)

// Messages

type refreshMsg struct{}

type watchTickMsg time.Time

// PassLog collects resolver pass events until the inspector drains them.
// It must only be used from the Bubble Tea update loop.
type PassLog struct {
	events []resolver.PassEvent
}

// LogPass implements resolver.Logger.
func (p *PassLog) LogPass(e resolver.PassEvent) {
	p.events = append(p.events, e)
}

func (p *PassLog) drain() []resolver.PassEvent {
	events := p.events
	p.events = nil
	return events
}

// Option configures an Inspector.
type Option func(*Inspector)

// WithPassLog feeds resolve passes recorded by log into the notification bar.
func WithPassLog(log *PassLog) Option {
	return func(m *Inspector) {
		m.passLog = log
	}
}

// WithNotifyBar replaces the default notification bar.
func WithNotifyBar(bar *notify.Bar) Option {
	return func(m *Inspector) {
		m.bar = bar
	}
}

// WithWatcher re-resolves whenever w reports a changed replacement file.
func WithWatcher(w *watch.Watcher) Option {
	return func(m *Inspector) {
		m.watcher = w
	}
}

// Inspector is the Bubble Tea model showing how each image layer resolves.
//
// All resolver calls happen inside Update, so the resolver is only ever
// touched from the update loop.
type Inspector struct {
	sess    *session.Session
	rows    []resolver.Resolution
	cursor  int
	width   int
	height  int
	loading bool

	passLog *PassLog
	watcher *watch.Watcher
	bar     *notify.Bar
	now     func() time.Time
}

// NewInspector creates an inspector over an opened session.
func NewInspector(sess *session.Session, opts ...Option) Inspector {
	m := Inspector{
		sess:    sess,
		loading: true,
		bar:     notify.NewBar(20),
		now:     time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&m)
		}
	}
	return m
}

// Rows returns the resolutions currently displayed.
func (m Inspector) Rows() []resolver.Resolution {
	return m.rows
}

// Init schedules the first resolution pass and, when watching, the first
// file check.
func (m Inspector) Init() tea.Cmd {
	refresh := func() tea.Msg { return refreshMsg{} }
	if m.watcher == nil {
		return refresh
	}
	return tea.Batch(refresh, m.scheduleWatch())
}

func (m Inspector) scheduleWatch() tea.Cmd {
	return tea.Tick(m.watcher.Interval(), func(t time.Time) tea.Msg {
		return watchTickMsg(t)
	})
}

// Update handles messages.
func (m Inspector) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case refreshMsg:
		m.reload(m.sess.Resolver.ResolveAll())
		return m, nil

	case watchTickMsg:
		if m.watcher == nil {
			return m, nil
		}
		if changed := m.watcher.Check(time.Time(msg)); len(changed) > 0 {
			m.bar.Push(notify.Notification{Title: "changed", Detail: changedDetail(changed), Timestamp: m.now()})
			m.reload(m.sess.Resolver.ResolveAll())
		}
		return m, m.scheduleWatch()
	}

	return m, nil
}

// reload shows rows and moves pending resolve passes into the bar.
func (m *Inspector) reload(rows []resolver.Resolution) {
	m.loading = false
	m.rows = rows
	if m.cursor >= len(m.rows) {
		m.cursor = max(0, len(m.rows)-1)
	}
	if m.passLog == nil {
		return
	}
	now := m.now()
	for _, e := range m.passLog.drain() {
		if e.Kind == resolver.PassResolve {
			m.bar.Push(notify.FromPass(e, now))
		}
	}
}

func (m Inspector) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "j", "down":
		if m.cursor < len(m.rows)-1 {
			m.cursor++
		}
		return m, nil

	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case "r":
		m.loading = true
		return m, func() tea.Msg { return refreshMsg{} }

	case "s":
		kind := m.sess.ToggleSource()
		m.reload(m.sess.Resolver.Inspect())
		m.bar.Push(notify.Notification{Title: "source", Detail: kind, Timestamp: m.now()})
		return m, nil

	case "G":
		if len(m.rows) > 0 {
			m.cursor = len(m.rows) - 1
		}
		return m, nil

	case "g":
		m.cursor = 0
		return m, nil
	}

	return m, nil
}

// View renders the inspector.
func (m Inspector) View() string {
	if m.width < minWidth || m.height < minHeight {
		return fmt.Sprintf("\n  Terminal too small (need %dx%d, got %dx%d)\n", minWidth, minHeight, m.width, m.height)
	}

	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderSubheader())
	b.WriteString("\n")
	b.WriteString(m.renderColumnHeaders())
	b.WriteString("\n")
	b.WriteString(m.renderSeparator())
	b.WriteString("\n")

	listHeight := m.height - headerLines - footerLines
	b.WriteString(m.renderRows(listHeight))

	b.WriteString(m.renderNotificationBar())
	b.WriteString("\n")
	b.WriteString(m.renderStatusBar())

	return b.String()
}

func (m Inspector) renderHeader() string {
	name := m.sess.Doc.Name
	if name == "" {
		name = "untitled"
	}
	title := headerStyle.Render("imgbind · " + name)

	missing := 0
	for _, r := range m.rows {
		if r.Outcome == resolver.OutcomeMiss {
			missing++
		}
	}

	right := ""
	if missing > 0 {
		right = badgeStyle.Render(fmt.Sprintf("[%d unresolved]", missing))
	}

	gap := m.width - lipgloss.Width(title) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return title + strings.Repeat(" ", gap) + right
}

func (m Inspector) renderSubheader() string {
	if m.loading {
		return subheaderStyle.Render("Resolving...")
	}
	return subheaderStyle.Render(fmt.Sprintf("source: %s · replacements: %d · layers: %d",
		m.sess.SourceKind(), len(m.sess.Resolver.Replacements()), len(m.rows)))
}

func (m Inspector) renderColumnHeaders() string {
	header := padRight("LAYER", colLayer) + padRight("ASSET", colAsset) +
		padRight("NAME", colName) + padRight("OUTCOME", colOutcome) + padRight("SIZE", colSize)
	if m.showDetail() {
		header += "DETAIL"
	}
	return columnHeaderStyle.Render(header)
}

func (m Inspector) renderSeparator() string {
	sep := ""
	for _, w := range []int{colLayer, colAsset, colName, colOutcome, colSize} {
		sep += strings.Repeat("─", w-1) + " "
	}
	if m.showDetail() {
		sep += strings.Repeat("─", 16)
	}
	return subheaderStyle.Render(sep)
}

func (m Inspector) renderRows(height int) string {
	if m.loading && len(m.rows) == 0 {
		return padLines("  Resolving images...\n", height)
	}

	if len(m.rows) == 0 {
		return padLines("  No image layers bound to declared assets.\n", height)
	}

	start := 0
	if m.cursor >= height {
		start = m.cursor - height + 1
	}
	end := min(start+height, len(m.rows))

	var b strings.Builder
	for i := start; i < end; i++ {
		r := m.rows[i]

		prefix := "  "
		if i == m.cursor {
			prefix = cursorStyle.Render("▸ ")
		}

		line := prefix +
			padRight(truncate(r.LayerName, colLayer-3), colLayer-2) +
			padRight(truncate(r.AssetID, colAsset-1), colAsset) +
			padRight(truncate(DisplayName(r.AssetName), colName-1), colName) +
			OutcomeStyle(r.Outcome).Render(padRight(OutcomeLabel(r), colOutcome)) +
			padRight(FormatSize(r), colSize)
		if m.showDetail() {
			line += lipgloss.NewStyle().Foreground(colorMuted).Render(detailText(r))
		}

		b.WriteString(line)
		b.WriteString("\n")
	}

	for i := end - start; i < height; i++ {
		b.WriteString("\n")
	}
	return b.String()
}

func (m Inspector) renderNotificationBar() string {
	return notificationBarStyle.Render("  " + m.bar.Render(m.width-4, m.now()))
}

func (m Inspector) renderStatusBar() string {
	return statusBarStyle.Render("  j/k:navigate  r:re-resolve  s:swap source  q:quit")
}

func (m Inspector) showDetail() bool {
	return m.width >= 100
}

// FormatSize returns "WxH" for the resolved image, or "—".
func FormatSize(r resolver.Resolution) string {
	if r.Image == nil {
		return "—"
	}
	b := r.Image.Bounds()
	return fmt.Sprintf("%dx%d", b.Dx(), b.Dy())
}

// Helpers

func detailText(r resolver.Resolution) string {
	switch {
	case r.Outcome == resolver.OutcomeReplacement:
		return filepath.Base(r.ReplacementPath)
	case r.ReplacementFailed && r.ReplacementPath != "":
		return "missing " + filepath.Base(r.ReplacementPath)
	case r.ReplacementFailed:
		return "no replacement dir"
	case r.Outcome == resolver.OutcomeMiss:
		return "keeps last image"
	default:
		return ""
	}
}

// DisplayName shortens embedded data URLs for display.
func DisplayName(name string) string {
	return asset.Image{Name: name}.DisplayName()
}

func changedDetail(paths []string) string {
	if len(paths) == 1 {
		return filepath.Base(paths[0])
	}
	return fmt.Sprintf("%d replacement files", len(paths))
}

func padRight(s string, width int) string {
	runes := []rune(s)
	if len(runes) >= width {
		return string(runes[:width])
	}
	return s + strings.Repeat(" ", width-len(runes))
}

func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 1 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-1]) + "…"
}

func padLines(content string, height int) string {
	lines := strings.Count(content, "\n")
	padding := height - lines
	if padding > 0 {
		content += strings.Repeat("\n", padding)
	}
	return content
}
