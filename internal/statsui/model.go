// Package statsui provides the Bubble Tea stats interface.
package statsui

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/tuinote/internal/model"
	"github.com/verte-zerg/tuinote/internal/stats"
	"github.com/verte-zerg/tuinote/internal/store"
	"github.com/verte-zerg/tuinote/internal/theory"
)

const (
	tabOverview = iota
	tabNoteTable
	tabNoteCurves
)

const defaultNoteSelection = 5

const (
	filterClef = iota
	filterKey
	filterSince
	filterLast
	filterWindow
)

var (
	activeNavStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F0F0F0")).
			Bold(true).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#C89A3A"))
	inactiveNavStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#B0B0B0")).
				Padding(0, 1).
				Border(lipgloss.RoundedBorder(), true).
				BorderForeground(lipgloss.Color("#4A4A4A"))
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	cardStyle   = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#4A4A4A"))
	cardTitleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	cardValueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	tableMutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#B8B8B8"))
	modalStyle      = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#C89A3A")).
			Padding(1, 2)
)

// Model implements the Bubble Tea stats UI.
type Model struct {
	store *store.Store
	cfg   model.StatsConfig
	names theory.NameStyle

	report     stats.Report
	errMsg     string
	noteErrMsg string

	tabs      []string
	activeTab int
	viewports []viewport.Model
	noteTable table.Model

	width  int
	height int

	filterMode   bool
	filterInputs []textinput.Model
	filterIndex  int
	filterError  string

	noteSelection       []string
	noteSelectionCustom bool
	notePerSession      map[int64]map[string]model.NoteAggregate

	noteInputMode  bool
	noteInput      textinput.Model
	noteInputError string
}

// NewModel constructs a stats UI model. Notes are labelled in the given
// naming style.
func NewModel(st *store.Store, cfg model.StatsConfig, names theory.NameStyle) *Model {
	m := &Model{
		store: st,
		cfg:   cfg,
		names: names,
		tabs:  []string{"Overview", "Note Table", "Note Curves"},
	}
	if notes, err := ParseNotes(cfg.Notes); err == nil && len(notes) > 0 {
		m.noteSelection = notes
		m.noteSelectionCustom = true
	}
	m.initInputs()
	m.initNoteInput()
	m.noteTable = newNoteTable()
	m.initViewports()
	m.refreshReport()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateLayout()
		m.renderTabContents()
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || (msg.String() == "q" && !m.filterMode && !m.noteInputMode) {
			return m, tea.Quit
		}
		if m.filterMode {
			return m.updateFilter(msg)
		}
		if m.noteInputMode {
			return m.updateNoteInput(msg)
		}
		switch msg.String() {
		case "left", "h":
			m.moveTab(-1)
			return m, tea.ClearScreen
		case "right", "l":
			m.moveTab(1)
			return m, tea.ClearScreen
		case "=":
			m.cfg.CurveWindow = nextCurveWindow(m.cfg.CurveWindow)
			m.refreshReport()
			return m, nil
		case "-":
			m.cfg.CurveWindow = prevCurveWindow(m.cfg.CurveWindow)
			m.refreshReport()
			return m, nil
		case "/":
			return m.startFilter()
		case "enter":
			if m.activeTab == tabNoteCurves {
				return m.startNoteInput()
			}
			return m, nil
		case "g", "home":
			if m.activeTab == tabNoteTable {
				m.noteTable.GotoTop()
			} else {
				m.viewports[m.activeTab].GotoTop()
			}
			return m, nil
		case "G", "end":
			if m.activeTab == tabNoteTable {
				m.noteTable.GotoBottom()
			} else {
				m.viewports[m.activeTab].GotoBottom()
			}
			return m, nil
		default:
			if m.activeTab == tabNoteTable {
				var cmd tea.Cmd
				m.noteTable, cmd = m.noteTable.Update(msg)
				return m, cmd
			}
			var cmd tea.Cmd
			m.viewports[m.activeTab], cmd = m.viewports[m.activeTab].Update(msg)
			return m, cmd
		}
	}
	return m, nil
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	if m.noteInputMode {
		return fitLines(m.renderNoteModal(), m.width, m.height)
	}
	headerHeight, bodyHeight, footerHeight := m.layoutHeights()
	header := fitLines(m.renderHeader(), m.width, headerHeight)
	body := fitLines(m.renderBody(bodyHeight), m.width, bodyHeight)
	footer := fitLines(m.renderFooter(), m.width, footerHeight)
	return strings.Join([]string{header, body, footer}, "\n")
}

func (m *Model) initViewports() {
	m.viewports = make([]viewport.Model, len(m.tabs))
	for i := range m.viewports {
		m.viewports[i] = viewport.New(0, 0)
	}
}

func (m *Model) initInputs() {
	m.filterInputs = make([]textinput.Model, filterWindow+1)
	m.filterInputs[filterClef] = newFilterInput("Clef: ")
	m.filterInputs[filterKey] = newFilterInput("Key: ")
	m.filterInputs[filterSince] = newFilterInput("Since (YYYY-MM-DD): ")
	m.filterInputs[filterLast] = newFilterInput("Last: ")
	m.filterInputs[filterWindow] = newFilterInput("Curve window: ")
	m.setInputsFromConfig()
}

func (m *Model) initNoteInput() {
	m.noteInput = newFilterInput("Notes: ")
	m.noteInput.Placeholder = "C, F#, Bb"
}

func newFilterInput(prompt string) textinput.Model {
	input := textinput.New()
	input.Prompt = prompt
	input.CharLimit = 0
	input.Cursor.SetMode(cursor.CursorBlink)
	return input
}

func newNoteTable() table.Model {
	t := table.New(
		table.WithColumns(noteColumns()),
		table.WithHeight(1),
	)
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(lipgloss.Color("#4A4A4A")).
		Foreground(lipgloss.Color("#C0C0C0")).
		Bold(true).
		Padding(0, 1).
		PaddingLeft(0)
	styles.Cell = styles.Cell.
		Padding(0, 1).
		PaddingLeft(0)
	styles.Selected = styles.Cell.
		Foreground(lipgloss.Color("#F0F0F0")).
		Bold(true)
	t.SetStyles(styles)
	return t
}

func noteColumns() []table.Column {
	widths := []int{8, 9, 13, 7, 9}
	cols := make([]table.Column, len(stats.NoteTableHeaders))
	for i, title := range stats.NoteTableHeaders {
		cols[i] = table.Column{Title: title, Width: widths[i]}
	}
	return cols
}

func (m *Model) noteLabel(note string) string {
	letter, acc, err := theory.ParseSpelling(note)
	if err != nil {
		return note
	}
	return theory.DisplayName(letter, acc, m.names)
}

func (m *Model) setInputsFromConfig() {
	m.filterInputs[filterClef].SetValue(strings.TrimSpace(m.cfg.Clef))
	m.filterInputs[filterKey].SetValue(strings.TrimSpace(m.cfg.Key))
	if m.cfg.Since != nil {
		m.filterInputs[filterSince].SetValue(m.cfg.Since.Format("2006-01-02"))
	} else {
		m.filterInputs[filterSince].SetValue("")
	}
	if m.cfg.Last > 0 {
		m.filterInputs[filterLast].SetValue(strconv.Itoa(m.cfg.Last))
	} else {
		m.filterInputs[filterLast].SetValue("")
	}
	m.filterInputs[filterWindow].SetValue(strconv.Itoa(m.cfg.CurveWindow))
}

func (m *Model) layoutHeights() (headerHeight, bodyHeight, footerHeight int) {
	tabsHeight := lipgloss.Height(activeNavStyle.Render("X"))
	if tabsHeight < 1 {
		tabsHeight = 1
	}
	headerHeight = tabsHeight + 1
	footerHeight = 1
	if !m.filterMode && m.errMsg != "" {
		footerHeight++
	}
	bodyHeight = m.height - headerHeight - footerHeight
	if bodyHeight < 1 {
		bodyHeight = 1
	}
	return headerHeight, bodyHeight, footerHeight
}

func (m *Model) updateLayout() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	_, bodyHeight, _ := m.layoutHeights()
	for i := range m.viewports {
		m.viewports[i].Width = m.width
		m.viewports[i].Height = bodyHeight
	}
	m.noteTable.SetWidth(m.width)
	// One row goes to the header.
	m.noteTable.SetHeight(maxInt(1, bodyHeight-1))
	for i := range m.filterInputs {
		promptWidth := lipgloss.Width(m.filterInputs[i].Prompt)
		m.filterInputs[i].Width = maxInt(10, m.width-promptWidth-2)
	}
	promptWidth := lipgloss.Width(m.noteInput.Prompt)
	m.noteInput.Width = maxInt(10, modalInnerWidth(m.width)-promptWidth)
}

func (m *Model) moveTab(delta int) {
	count := len(m.tabs)
	if count == 0 {
		return
	}
	m.activeTab = (m.activeTab + delta + count) % count
	if m.activeTab == tabNoteTable {
		m.noteTable.Focus()
	} else {
		m.noteTable.Blur()
	}
}

func (m *Model) renderTabs() string {
	parts := make([]string, 0, len(m.tabs))
	for i, tab := range m.tabs {
		if i == m.activeTab {
			parts = append(parts, activeNavStyle.Render(tab))
		} else {
			parts = append(parts, inactiveNavStyle.Render(tab))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m *Model) renderHeader() string {
	tabs := padLines(m.renderTabs(), m.width)
	filters := padLines(m.renderFilterSummary(), m.width)
	return tabs + "\n" + filters
}

func (m *Model) renderFilterSummary() string {
	clef := orAny(m.cfg.Clef)
	key := orAny(m.cfg.Key)
	since := "any"
	if m.cfg.Since != nil {
		since = m.cfg.Since.Format("2006-01-02")
	}
	last := "all"
	if m.cfg.Last > 0 {
		last = strconv.Itoa(m.cfg.Last)
	}
	summary := fmt.Sprintf("Settings: clef=%s  key=%s  since=%s  last=%s  window=%d", clef, key, since, last, m.cfg.CurveWindow)
	return headerStyle.Render(truncateLine(summary, m.width))
}

func orAny(s string) string {
	if strings.TrimSpace(s) == "" {
		return "any"
	}
	return s
}

func (m *Model) renderFooter() string {
	if m.filterMode {
		return headerStyle.Render("tab/shift+tab: next field  enter: apply  esc: cancel  quit: ctrl+c")
	}
	help := "Nav: left/right  Scroll: up/down/pgup/pgdn  Window: -/=  Settings: /  Quit: q"
	if m.activeTab == tabNoteCurves {
		help = "Nav: left/right  Scroll: up/down/pgup/pgdn  Edit notes: enter  Window: -/=  Settings: /  Quit: q"
	}
	out := headerStyle.Render(help)
	if m.errMsg != "" {
		out += "\n" + errorStyle.Render(m.errMsg)
	}
	return out
}

func (m *Model) renderFilterForm() string {
	lines := []string{"Settings (enter to apply, esc to cancel)"}
	for _, input := range m.filterInputs {
		lines = append(lines, input.View())
	}
	if m.filterError != "" {
		lines = append(lines, errorStyle.Render(m.filterError))
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderBody(height int) string {
	if m.filterMode {
		return fitLines(m.renderFilterForm(), m.width, height)
	}
	if m.activeTab == tabNoteTable {
		switch {
		case len(m.report.Sessions) == 0:
			return fitLines("No sessions found.", m.width, height)
		case len(m.report.NoteAggsAll) == 0:
			return fitLines("No note stats found.", m.width, height)
		default:
			return fitLines(tableMutedStyle.Render(m.noteTable.View()), m.width, height)
		}
	}
	return fitLines(m.viewports[m.activeTab].View(), m.width, height)
}

func (m *Model) refreshReport() {
	report, err := stats.BuildReport(context.Background(), m.store, m.cfg)
	if err != nil {
		m.errMsg = err.Error()
		m.noteErrMsg = ""
		for i := range m.viewports {
			m.viewports[i].SetContent("Failed to load stats.")
		}
		return
	}
	m.errMsg = ""
	m.report = report
	if !m.noteSelectionCustom {
		m.noteSelection = stats.TopNotesByFrequency(m.report.NoteAggsAll, defaultNoteSelection)
	}
	m.loadNotePerSession()
	rows := stats.NoteTableRows(m.report.NoteAggsAll, m.noteLabel)
	tableRows := make([]table.Row, len(rows))
	for i, r := range rows {
		tableRows[i] = table.Row(r)
	}
	m.noteTable.SetRows(tableRows)
	m.updateLayout()
	m.renderTabContents()
}

func (m *Model) renderTabContents() {
	if len(m.viewports) == 0 || m.errMsg != "" {
		return
	}
	width := m.width
	if width <= 0 {
		width = 80
	}
	m.viewports[tabOverview].SetContent(renderOverview(m.report, m.cfg.CurveWindow, width))
	m.viewports[tabNoteCurves].SetContent(m.renderNoteCurves(width))
}

func renderOverview(report stats.Report, window, width int) string {
	if len(report.Sessions) == 0 {
		return "No sessions found."
	}
	summary := renderSummaryCards(report.Totals, width)
	var buf bytes.Buffer
	if err := stats.RenderCurvesWithSize(&buf, report.Sessions, window, width, true); err != nil {
		return fmt.Sprintf("Failed to render curves: %v", err)
	}
	return strings.TrimRight(summary+"\n\n"+buf.String(), "\n")
}

func renderSummaryCards(t stats.Totals, width int) string {
	cards := []string{
		metricCard("Games", strconv.Itoa(t.Games)),
		metricCard("Answered", strconv.Itoa(t.Answered)),
		metricCard("Avg Acc", fmt.Sprintf("%.1f%%", t.AvgAccuracy*100)),
		metricCard("Avg Time", fmt.Sprintf("%.0f ms", t.AvgTimeMs)),
		metricCard("Best Time", fmt.Sprintf("%.0f ms", t.BestAvgTimeMs)),
		metricCard("Per Minute", fmt.Sprintf("%.1f", t.AvgPerMinute)),
	}
	if width < 80 {
		return strings.Join(cards, "\n")
	}
	row1 := lipgloss.JoinHorizontal(lipgloss.Top, cards[0], cards[1], cards[2])
	row2 := lipgloss.JoinHorizontal(lipgloss.Top, cards[3], cards[4], cards[5])
	return lipgloss.JoinVertical(lipgloss.Left, row1, row2)
}

func metricCard(label, value string) string {
	content := fmt.Sprintf("%s\n%s", cardTitleStyle.Render(label), cardValueStyle.Render(value))
	return cardStyle.Render(content)
}

func (m *Model) renderNoteCurves(width int) string {
	if len(m.report.Sessions) == 0 {
		return "No sessions found."
	}
	if m.noteErrMsg != "" {
		return fmt.Sprintf("Failed to load note curves: %s", m.noteErrMsg)
	}
	if len(m.noteSelection) == 0 {
		return "No notes selected. Press Enter to pick notes."
	}
	labels := make([]string, len(m.noteSelection))
	for i, n := range m.noteSelection {
		labels[i] = m.noteLabel(n)
	}
	header := headerStyle.Render("Notes: " + strings.Join(labels, ", "))
	var buf bytes.Buffer
	if err := stats.RenderNoteCurves(&buf, m.report.Sessions, m.notePerSession, m.noteSelection, m.cfg.CurveWindow, width, true); err != nil {
		return fmt.Sprintf("Failed to render note curves: %v", err)
	}
	return strings.TrimRight(header+"\n"+buf.String(), "\n")
}

func (m *Model) startFilter() (tea.Model, tea.Cmd) {
	m.filterMode = true
	m.filterError = ""
	m.setInputsFromConfig()
	return m, m.setFilterIndex(0)
}

func (m *Model) startNoteInput() (tea.Model, tea.Cmd) {
	m.noteInputMode = true
	m.noteInputError = ""
	m.noteInput.SetValue(strings.Join(m.noteSelection, ", "))
	return m, m.noteInput.Focus()
}

func (m *Model) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.filterMode = false
		m.filterError = ""
		return m, nil
	case tea.KeyEnter:
		if err := m.applyFilter(); err != nil {
			m.filterError = err.Error()
			return m, nil
		}
		m.filterMode = false
		m.filterError = ""
		m.refreshReport()
		return m, nil
	case tea.KeyTab:
		return m, m.setFilterIndex(m.filterIndex + 1)
	case tea.KeyShiftTab:
		return m, m.setFilterIndex(m.filterIndex - 1)
	}
	var cmd tea.Cmd
	m.filterInputs[m.filterIndex], cmd = m.filterInputs[m.filterIndex].Update(msg)
	return m, cmd
}

func (m *Model) updateNoteInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.noteInputMode = false
		m.noteInputError = ""
		return m, nil
	case tea.KeyEnter:
		if err := m.applyNoteInput(); err != nil {
			m.noteInputError = err.Error()
			return m, nil
		}
		m.noteInputMode = false
		m.noteInputError = ""
		m.loadNotePerSession()
		m.renderTabContents()
		return m, nil
	}
	var cmd tea.Cmd
	m.noteInput, cmd = m.noteInput.Update(msg)
	return m, cmd
}

func (m *Model) setFilterIndex(idx int) tea.Cmd {
	count := len(m.filterInputs)
	if count == 0 {
		return nil
	}
	m.filterIndex = (idx + count) % count
	var cmd tea.Cmd
	for i := range m.filterInputs {
		if i == m.filterIndex {
			cmd = m.filterInputs[i].Focus()
		} else {
			m.filterInputs[i].Blur()
		}
	}
	return cmd
}

func (m *Model) applyFilter() error {
	clef := strings.ToLower(strings.TrimSpace(m.filterInputs[filterClef].Value()))
	key := strings.TrimSpace(m.filterInputs[filterKey].Value())
	if key != "" {
		if _, ok := theory.LookupKeySignature(key); !ok {
			return fmt.Errorf("unknown key %q", key)
		}
	}

	var since *time.Time
	if sinceInput := strings.TrimSpace(m.filterInputs[filterSince].Value()); sinceInput != "" {
		parsed, err := time.ParseInLocation("2006-01-02", sinceInput, time.Local)
		if err != nil {
			return fmt.Errorf("invalid since date (expected YYYY-MM-DD)")
		}
		since = &parsed
	}

	last := 0
	if lastInput := strings.TrimSpace(m.filterInputs[filterLast].Value()); lastInput != "" {
		parsed, err := strconv.Atoi(lastInput)
		if err != nil || parsed < 0 {
			return fmt.Errorf("invalid last value (use 0 or positive integer)")
		}
		last = parsed
	}

	window := 1
	if windowInput := strings.TrimSpace(m.filterInputs[filterWindow].Value()); windowInput != "" {
		parsed, err := strconv.Atoi(windowInput)
		if err != nil || parsed < 1 {
			return fmt.Errorf("invalid curve window (use integer >= 1)")
		}
		window = parsed
	}

	m.cfg.Clef = clef
	m.cfg.Key = key
	m.cfg.Since = since
	m.cfg.Last = last
	m.cfg.CurveWindow = window
	return nil
}

func (m *Model) applyNoteInput() error {
	notes, err := ParseNotes(m.noteInput.Value())
	if err != nil {
		return err
	}
	if len(notes) == 0 {
		m.noteSelectionCustom = false
		m.noteSelection = stats.TopNotesByFrequency(m.report.NoteAggsAll, defaultNoteSelection)
		return nil
	}
	m.noteSelectionCustom = true
	m.noteSelection = notes
	return nil
}

func (m *Model) renderNoteModal() string {
	body := []string{
		cardValueStyle.Render("Select Notes"),
		m.noteInput.View(),
		headerStyle.Render("Separate notes with commas or spaces. Leave empty for the most played."),
		headerStyle.Render("Enter to apply / Esc to cancel"),
	}
	if m.noteInputError != "" {
		body = append(body, errorStyle.Render(m.noteInputError))
	}
	box := modalStyle.Width(modalWidth(m.width)).Render(strings.Join(body, "\n"))
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

func (m *Model) loadNotePerSession() {
	m.noteErrMsg = ""
	m.notePerSession = nil
	if m.store == nil || len(m.report.Sessions) == 0 || len(m.noteSelection) == 0 {
		return
	}
	ids := make([]int64, len(m.report.Sessions))
	for i, s := range m.report.Sessions {
		ids[i] = s.SessionID
	}
	perSession, err := m.store.ListNoteStatsForSessions(context.Background(), ids, m.noteSelection)
	if err != nil {
		m.noteErrMsg = err.Error()
		return
	}
	m.notePerSession = perSession
}

// ParseNotes reads a comma or space separated list of note names, in any
// accepted spelling or syllable, and returns their pitch classes in order
// without duplicates.
func ParseNotes(input string) ([]string, error) {
	fields := strings.FieldsFunc(input, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
	seen := map[string]struct{}{}
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		p, err := theory.ParseAnswer(f)
		if err != nil {
			return nil, err
		}
		class, ok := theory.PitchClass(theory.EffectiveSpelling(p, nil))
		if !ok {
			return nil, fmt.Errorf("unrecognized note %q", f)
		}
		if _, dup := seen[class]; dup {
			continue
		}
		seen[class] = struct{}{}
		out = append(out, class)
	}
	return out, nil
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func nextCurveWindow(n int) int {
	if n < 5 {
		return 5
	}
	return (n/5 + 1) * 5
}

func prevCurveWindow(n int) int {
	if n <= 5 {
		return 1
	}
	if n%5 == 0 {
		return n - 5
	}
	return (n / 5) * 5
}

func modalWidth(width int) int {
	return maxInt(40, minInt(width-4, 80))
}

func modalInnerWidth(width int) int {
	w := modalWidth(width) - 6 // 2 border + 4 padding
	if w < 10 {
		return 10
	}
	return w
}

func padLines(s string, width int) string {
	if width <= 0 || s == "" {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = padLine(line, width)
	}
	return strings.Join(lines, "\n")
}

func padLine(line string, width int) string {
	lineWidth := lipgloss.Width(line)
	if lineWidth < width {
		return line + strings.Repeat(" ", width-lineWidth)
	}
	return line
}

func fitLines(s string, width, height int) string {
	if width <= 0 || height <= 0 {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = padLine(line, width)
	}
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, strings.Repeat(" ", width))
	}
	return strings.Join(lines, "\n")
}

func truncateLine(s string, width int) string {
	if width <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width <= 3 {
		return string(runes[:width])
	}
	return string(runes[:width-3]) + "..."
}
