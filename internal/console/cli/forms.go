package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"fieldops/internal/console/lifecycle"
	"fieldops/internal/domain/entities"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

func fieldopsHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(colorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(colorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(colorGreen)
	t.Focused.FocusedButton = lipgloss.NewStyle().Background(colorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(colorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(colorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(colorHeader)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(colorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(colorDim)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(colorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(colorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(colorDim)

	return t
}

func required(name string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", name)
		}
		return nil
	}
}

// loginForm asks for the team credential. team may be prefilled.
func loginForm(team, password *string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Team").
				Placeholder("equipe-norte").
				Value(team).
				Validate(required("team")),
			huh.NewInput().
				Title("Operation password").
				EchoMode(huh.EchoModePassword).
				Value(password).
				Validate(required("password")),
		),
	).WithTheme(fieldopsHuhTheme()).WithShowHelp(false)
}

// confirmStart is the interactive start confirmation.
var confirmStart = lifecycle.ConfirmFunc(func(ctx context.Context, job entities.WorkOrder) (bool, error) {
	ok := false
	desc := job.ClientName
	if job.Address != "" {
		desc = strings.TrimSpace(desc + "\n" + job.Address)
	}
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Start %q now?", job.Title)).
				Description(desc).
				Affirmative("Start").
				Negative("Cancel").
				Value(&ok),
		),
	).WithTheme(fieldopsHuhTheme()).WithShowHelp(false).RunWithContext(ctx)
	if errors.Is(err, huh.ErrUserAborted) {
		return false, nil
	}
	return ok, err
})

type paymentInput struct {
	method  string
	receipt string
	file    string
}

func paymentForm(job entities.WorkOrder, in *paymentInput) *huh.Form {
	options := make([]huh.Option[string], 0, len(entities.PaymentMethods))
	for _, m := range entities.PaymentMethods {
		options = append(options, huh.NewOption(paymentMethodLabel(m), string(m)))
	}
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title(fmt.Sprintf("Payment for %q: %s", job.Title, money(job.PayableAmount()))).
				Options(options...).
				Value(&in.method),
			huh.NewInput().
				Title("Receipt reference").
				Placeholder("optional: NSU, pix id, note").
				CharLimit(entities.MaxReceiptLength).
				Value(&in.receipt),
			huh.NewInput().
				Title("Receipt file").
				Placeholder("optional: path to photo or PDF (max 5 MB)").
				Value(&in.file),
		),
	).WithTheme(fieldopsHuhTheme()).WithShowHelp(false)
}

func paymentMethodLabel(m entities.PaymentMethod) string {
	switch m {
	case entities.PaymentMethodPix:
		return "Pix"
	case entities.PaymentMethodDinheiro:
		return "Dinheiro"
	case entities.PaymentMethodCartaoCredito:
		return "Cartão de crédito"
	case entities.PaymentMethodCartaoDebito:
		return "Cartão de débito"
	case entities.PaymentMethodTransferencia:
		return "Transferência"
	case entities.PaymentMethodBoleto:
		return "Boleto"
	}
	return string(m)
}
