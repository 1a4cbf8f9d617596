package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"fieldops/internal/console/lifecycle"

	"github.com/spf13/cobra"
)

func newJobsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "jobs",
		Short: "List the team's work orders",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := app.session(cmd.Context()); err != nil {
				return err
			}
			renderJobs(app.Out, app.Board.List())
			return nil
		},
	}
}

func newShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <job-id>",
		Short: "Show one work order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := app.session(cmd.Context()); err != nil {
				return err
			}
			job, ok := app.Board.Get(args[0])
			if !ok {
				return fmt.Errorf("%w: %s", lifecycle.ErrJobNotFound, args[0])
			}
			renderJob(app.Out, job)
			return nil
		},
	}
}

func newStartCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "start <job-id>",
		Short: "Start a pending work order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s, err := app.session(ctx)
			if err != nil {
				return err
			}

			var confirmer lifecycle.Confirmer
			switch {
			case yes:
				confirmer = lifecycle.AlwaysConfirm
			case app.IsInteractive():
				confirmer = confirmStart
			}

			job, err := app.Engine.Start(ctx, s, args[0], confirmer)
			if errors.Is(err, lifecycle.ErrNotConfirmed) && confirmer == nil {
				return fmt.Errorf("%w (pass --yes to start without a prompt)", err)
			}
			if err != nil {
				return err
			}
			renderJob(app.Out, job)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Start without asking for confirmation")
	return cmd
}

func newCompleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "complete <job-id>",
		Short: "Mark a started work order as completed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s, err := app.session(ctx)
			if err != nil {
				return err
			}
			job, err := app.Engine.Complete(ctx, s, args[0])
			if err != nil {
				return err
			}
			renderJob(app.Out, job)
			return nil
		},
	}
}

func newReceiveCmd(app *App) *cobra.Command {
	var in paymentInput

	cmd := &cobra.Command{
		Use:   "receive <job-id>",
		Short: "Record the payment of a completed work order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s, err := app.session(ctx)
			if err != nil {
				return err
			}

			if in.method == "" && app.IsInteractive() {
				job, ok := app.Board.Get(args[0])
				if !ok {
					return fmt.Errorf("%w: %s", lifecycle.ErrJobNotFound, args[0])
				}
				if err := paymentForm(job, &in).RunWithContext(ctx); err != nil {
					return err
				}
			}

			p := lifecycle.Payment{Method: in.method, Receipt: in.receipt}
			if path := strings.TrimSpace(in.file); path != "" {
				data, err := os.ReadFile(path)
				if err != nil {
					return fmt.Errorf("reading receipt file: %w", err)
				}
				p.File = &lifecycle.ReceiptUpload{Filename: filepath.Base(path), Data: data}
			}

			tx, err := app.Engine.ReceivePayment(ctx, s, args[0], p)
			if err != nil {
				return err
			}
			app.printf("%s transaction %s: %s via %s\n", styleOK.Render("✓"), tx.ID, money(tx.Amount), paymentMethodLabel(tx.PaymentMethod))
			return nil
		},
	}

	cmd.Flags().StringVarP(&in.method, "method", "m", "", "Payment method: pix, dinheiro, cartao_credito, cartao_debito, transferencia, boleto")
	cmd.Flags().StringVar(&in.receipt, "receipt", "", "Receipt reference (NSU, pix id, free text)")
	cmd.Flags().StringVar(&in.file, "file", "", "Receipt photo or PDF")
	return cmd
}
