package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"fieldops/internal/console/lifecycle"
	"fieldops/internal/domain/entities"

	"github.com/charmbracelet/lipgloss"
)

var (
	colorGreen  = lipgloss.Color("#8ec07c")
	colorYellow = lipgloss.Color("#fabd2f")
	colorRed    = lipgloss.Color("#fb4934")
	colorBlue   = lipgloss.Color("#83a598")
	colorDim    = lipgloss.Color("#928374")
	colorHeader = lipgloss.Color("#fe8019")

	styleHeader = lipgloss.NewStyle().Foreground(colorHeader).Bold(true)
	styleDim    = lipgloss.NewStyle().Foreground(colorDim)
	styleError  = lipgloss.NewStyle().Foreground(colorRed)
	styleOK     = lipgloss.NewStyle().Foreground(colorGreen)
)

func statusStyle(s entities.WorkOrderStatus) lipgloss.Style {
	switch s {
	case entities.WorkOrderStatusPending:
		return lipgloss.NewStyle().Foreground(colorYellow)
	case entities.WorkOrderStatusInProgress:
		return lipgloss.NewStyle().Foreground(colorBlue)
	case entities.WorkOrderStatusCompleted:
		return lipgloss.NewStyle().Foreground(colorGreen)
	default:
		return styleDim
	}
}

func statusLabel(s entities.WorkOrderStatus) string {
	switch s {
	case entities.WorkOrderStatusPending:
		return "pending"
	case entities.WorkOrderStatusInProgress:
		return "in progress"
	case entities.WorkOrderStatusCompleted:
		return "completed"
	case entities.WorkOrderStatusCancelled:
		return "cancelled"
	}
	return string(s)
}

func paymentLabel(j entities.WorkOrder) string {
	switch {
	case j.Received:
		return "received"
	case j.Status == entities.WorkOrderStatusCompleted && j.PayableAmount() > 0:
		return "to receive"
	default:
		return "-"
	}
}

func money(v float64) string {
	return fmt.Sprintf("R$ %.2f", v)
}

func day(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format("02/01 15:04")
}

func actionList(j entities.WorkOrder) string {
	acts := lifecycle.Actions(j)
	if len(acts) == 0 {
		return "-"
	}
	names := make([]string, len(acts))
	for i, a := range acts {
		names[i] = string(a)
	}
	return strings.Join(names, ", ")
}

// renderJobs prints the board as an aligned table.
func renderJobs(w io.Writer, jobs []entities.WorkOrder) {
	if len(jobs) == 0 {
		fmt.Fprintln(w, styleDim.Render("No work orders assigned."))
		return
	}
	idW, titleW := len("ID"), len("TITLE")
	for _, j := range jobs {
		idW = max(idW, len(j.ID))
		titleW = max(titleW, lipgloss.Width(j.Title))
	}
	titleW = min(titleW, 40)

	row := func(id, title, status, planned, value, payment, actions string, st lipgloss.Style) string {
		return fmt.Sprintf("%-*s  %-*s  %s  %-11s  %12s  %-10s  %s",
			idW, id,
			titleW, truncate(title, titleW),
			st.Width(11).Render(status),
			planned, value, payment, actions)
	}
	fmt.Fprintln(w, styleHeader.Render(row("ID", "TITLE", "STATUS", "PLANNED", "VALUE", "PAYMENT", "ACTIONS", lipgloss.NewStyle())))
	for _, j := range jobs {
		fmt.Fprintln(w, row(j.ID, j.Title, statusLabel(j.Status), day(j.PlannedDate), money(j.PayableAmount()), paymentLabel(j), actionList(j), statusStyle(j.Status)))
	}
}

// renderJob prints one job in detail.
func renderJob(w io.Writer, j entities.WorkOrder) {
	fmt.Fprintln(w, styleHeader.Render(j.Title))
	field := func(k, v string) {
		if v == "" {
			return
		}
		fmt.Fprintf(w, "  %-10s %s\n", styleDim.Render(k), v)
	}
	field("id", j.ID)
	field("status", statusStyle(j.Status).Render(statusLabel(j.Status)))
	field("client", j.ClientName)
	field("address", j.Address)
	field("planned", day(j.PlannedDate))
	if j.StartedAt != nil {
		field("started", day(*j.StartedAt))
	}
	if j.FinishedAt != nil {
		field("finished", day(*j.FinishedAt))
	}
	field("value", money(j.PayableAmount()))
	field("payment", paymentLabel(j))
	for i, s := range j.Services {
		field(fmt.Sprintf("service %d", i+1), strings.Join(nonEmpty(s.ServiceType, s.SiteType, s.SoilType, s.AccessDifficulty), " / "))
	}
	field("notes", j.Notes)
	field("actions", actionList(j))
}

func nonEmpty(ss ...string) []string {
	out := ss[:0]
	for _, s := range ss {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 1 {
		return string(r[:n])
	}
	return string(r[:n-1]) + "…"
}
