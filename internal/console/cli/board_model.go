package cli

import (
	"context"
	"fmt"
	"strings"

	"fieldops/internal/console/auth"
	"fieldops/internal/console/lifecycle"
	"fieldops/internal/console/navigation"
	"fieldops/internal/console/notify"
	"fieldops/internal/domain/entities"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

const maxRecentNotices = 3

type boardChangedMsg struct{}

type noticeMsg notify.Notice

type commandDoneMsg struct {
	action lifecycle.Action
	jobID  string
	err    error
	skip   <-chan struct{}
}

type boardKeys struct {
	Start    key.Binding
	Complete key.Binding
	Receive  key.Binding
	Navigate key.Binding
	Refresh  key.Binding
	Confirm  key.Binding
	Cancel   key.Binding
	Skip     key.Binding
	Quit     key.Binding
}

var keys = boardKeys{
	Start:    key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "start")),
	Complete: key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "complete")),
	Receive:  key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "payment")),
	Navigate: key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "go to site")),
	Refresh:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
	Confirm:  key.NewBinding(key.WithKeys("y", "enter"), key.WithHelp("y", "confirm")),
	Cancel:   key.NewBinding(key.WithKeys("n", "esc"), key.WithHelp("n", "cancel")),
	Skip:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "skip location")),
	Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

// boardModel is the live job board. Terminal focus and blur drive the push
// channel the way tab visibility would.
type boardModel struct {
	app     *App
	ctx     context.Context
	session auth.Session
	notices *notify.Channel

	table      table.Model
	recent     []notify.Notice
	confirming string
	visible    bool

	// locating is open while a navigation waits for a position fix.
	// Closing it makes the dispatcher fall back to address routing.
	locating chan struct{}
}

func newBoardModel(ctx context.Context, app *App, s auth.Session, notices *notify.Channel) boardModel {
	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "ID", Width: 12},
			{Title: "Title", Width: 28},
			{Title: "Status", Width: 12},
			{Title: "Planned", Width: 12},
			{Title: "Value", Width: 12},
			{Title: "Payment", Width: 10},
		}),
		table.WithFocused(true),
		table.WithHeight(12),
	)
	st := table.DefaultStyles()
	st.Header = st.Header.Foreground(colorHeader).Bold(true)
	st.Selected = st.Selected.Foreground(lipgloss.Color("#282828")).Background(colorHeader)
	t.SetStyles(st)

	m := boardModel{app: app, ctx: ctx, session: s, notices: notices, table: t, visible: true}
	m.refreshRows()
	return m
}

func (m boardModel) Init() tea.Cmd {
	return tea.Batch(waitBoard(m.app.Board.Changed()), waitNotice(m.notices.C()))
}

func waitBoard(ch <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		<-ch
		return boardChangedMsg{}
	}
}

func waitNotice(ch <-chan notify.Notice) tea.Cmd {
	return func() tea.Msg {
		return noticeMsg(<-ch)
	}
}

func (m *boardModel) refreshRows() {
	jobs := m.app.Board.List()
	rows := make([]table.Row, 0, len(jobs))
	for _, j := range jobs {
		status := statusLabel(j.Status)
		if m.app.Board.InFlight(j.ID) {
			status += " …"
		}
		rows = append(rows, table.Row{j.ID, j.Title, status, day(j.PlannedDate), money(j.PayableAmount()), paymentLabel(j)})
	}
	m.table.SetRows(rows)
}

func (m boardModel) selected() (entities.WorkOrder, bool) {
	row := m.table.SelectedRow()
	if row == nil {
		return entities.WorkOrder{}, false
	}
	return m.app.Board.Get(row[0])
}

func (m boardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.FocusMsg:
		m.visible = true
		m.app.Sync.SetVisible(m.ctx, true)
		return m, nil

	case tea.BlurMsg:
		m.visible = false
		m.app.Sync.SetVisible(m.ctx, false)
		return m, nil

	case boardChangedMsg:
		m.refreshRows()
		return m, waitBoard(m.app.Board.Changed())

	case noticeMsg:
		m.recent = append(m.recent, notify.Notice(msg))
		if len(m.recent) > maxRecentNotices {
			m.recent = m.recent[len(m.recent)-maxRecentNotices:]
		}
		return m, waitNotice(m.notices.C())

	case commandDoneMsg:
		if msg.action == lifecycle.ActionNavigate && msg.skip == m.locating {
			m.locating = nil
		}
		if msg.err != nil {
			m.app.Logger.Debug("board command failed", "action", msg.action, "job_id", msg.jobID, "error", msg.err)
		}
		m.refreshRows()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m boardModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.confirming != "" {
		switch {
		case key.Matches(msg, keys.Confirm):
			id := m.confirming
			m.confirming = ""
			return m, m.run(lifecycle.ActionStart, id)
		case key.Matches(msg, keys.Cancel):
			m.confirming = ""
		}
		return m, nil
	}

	if m.locating != nil && key.Matches(msg, keys.Skip) {
		close(m.locating)
		m.locating = nil
		return m, nil
	}

	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, keys.Refresh):
		return m, m.refresh()
	case key.Matches(msg, keys.Start), key.Matches(msg, keys.Complete), key.Matches(msg, keys.Navigate), key.Matches(msg, keys.Receive):
		job, ok := m.selected()
		if !ok {
			return m, nil
		}
		switch {
		case key.Matches(msg, keys.Start):
			if job.CanStart() {
				m.confirming = job.ID
				return m, nil
			}
			return m, m.run(lifecycle.ActionStart, job.ID)
		case key.Matches(msg, keys.Complete):
			return m, m.run(lifecycle.ActionComplete, job.ID)
		case key.Matches(msg, keys.Navigate):
			if m.locating != nil {
				return m, nil
			}
			m.locating = make(chan struct{})
			return m, m.navigate(job.ID, m.locating)
		default:
			m.app.Notices.Notify(notify.Info(fmt.Sprintf("Run `fieldops receive %s` to record the payment", job.ID)))
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// run executes a command off the UI goroutine. The engine reports the
// outcome through the notice channel.
func (m boardModel) run(action lifecycle.Action, jobID string) tea.Cmd {
	app, ctx, s := m.app, m.ctx, m.session
	return func() tea.Msg {
		var err error
		switch action {
		case lifecycle.ActionStart:
			// the board asked for confirmation already
			_, err = app.Engine.Start(ctx, s, jobID, lifecycle.AlwaysConfirm)
		case lifecycle.ActionComplete:
			_, err = app.Engine.Complete(ctx, s, jobID)
		}
		return commandDoneMsg{action: action, jobID: jobID, err: err}
	}
}

// navigate routes to a job's site. Closing skip abandons the position wait.
func (m boardModel) navigate(jobID string, skip <-chan struct{}) tea.Cmd {
	app, ctx, s := m.app, m.ctx, m.session
	return func() tea.Msg {
		job, ok := app.Board.Get(jobID)
		if !ok {
			return commandDoneMsg{action: lifecycle.ActionNavigate, jobID: jobID, err: lifecycle.ErrJobNotFound, skip: skip}
		}
		res, err := app.navigator("", s).Navigate(ctx, navigation.DestinationFor(job), skip)
		if res.Explanation != "" {
			app.Notices.Notify(notify.Info(res.Explanation))
		}
		if err != nil {
			app.Notices.Notify(notify.Error(err.Error()))
		}
		return commandDoneMsg{action: lifecycle.ActionNavigate, jobID: jobID, err: err, skip: skip}
	}
}

func (m boardModel) refresh() tea.Cmd {
	app, ctx, cred := m.app, m.ctx, m.session.Credential
	return func() tea.Msg {
		_, err := app.Auth.Authenticate(ctx, cred.TeamID, cred.Password, auth.Options{Silent: true})
		return commandDoneMsg{err: err}
	}
}

func (m boardModel) View() string {
	var b strings.Builder

	channel := styleOK.Render("● live")
	if !m.app.Sync.IsOpen() {
		channel = styleDim.Render("○ paused")
	}
	fmt.Fprintf(&b, "%s  %s  %s\n\n", styleHeader.Render(strings.ToUpper(displayTeam(m.session))), channel, styleDim.Render(fmt.Sprintf("%d work orders", m.app.Board.Len())))
	b.WriteString(m.table.View())
	b.WriteString("\n")

	if job, ok := m.selected(); ok {
		fmt.Fprintf(&b, "%s  %s\n", styleDim.Render(job.Address), styleDim.Render("actions: "+actionList(job)))
	}
	if m.confirming != "" {
		job, _ := m.app.Board.Get(m.confirming)
		fmt.Fprintf(&b, "%s\n", styleHeader.Render(fmt.Sprintf("Start %q now? (y/n)", job.Title)))
	}
	if m.locating != nil {
		fmt.Fprintf(&b, "%s\n", styleDim.Render("Getting your position… esc to skip"))
	}
	for _, n := range m.recent {
		style := styleOK
		if n.Level == notify.LevelError {
			style = styleError
		}
		fmt.Fprintf(&b, "%s\n", style.Render(n.Message))
	}

	help := []key.Binding{keys.Start, keys.Complete, keys.Receive, keys.Navigate, keys.Refresh, keys.Quit}
	parts := make([]string, len(help))
	for i, k := range help {
		parts[i] = k.Help().Key + " " + k.Help().Desc
	}
	b.WriteString(styleDim.Render(strings.Join(parts, " • ")))
	return b.String()
}

func displayTeam(s auth.Session) string {
	if s.Team.Name != "" {
		return s.Team.Name
	}
	return s.Credential.TeamID
}

func newBoardCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "board",
		Short: "Live job board that follows the backend push channel",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s, err := app.session(ctx)
			if err != nil {
				return err
			}

			notices := notify.NewChannel(16)
			app.Notices.Set(notices)
			defer app.Notices.Set(&notify.Writer{W: app.Out})

			p := tea.NewProgram(newBoardModel(ctx, app, s, notices),
				tea.WithContext(ctx),
				tea.WithAltScreen(),
				tea.WithReportFocus(),
				tea.WithInput(app.In),
				tea.WithOutput(app.Out),
			)
			_, err = p.Run()
			return err
		},
	}
}
