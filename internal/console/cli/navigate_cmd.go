package cli

import (
	"bufio"
	"fmt"

	"fieldops/internal/console/lifecycle"
	"fieldops/internal/console/navigation"

	"github.com/spf13/cobra"
)

func newNavigateCmd(app *App) *cobra.Command {
	var platform string
	var skipLocation bool

	cmd := &cobra.Command{
		Use:   "navigate <job-id>",
		Short: "Open directions to a work order site",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s, err := app.session(ctx)
			if err != nil {
				return err
			}
			job, ok := app.Board.Get(args[0])
			if !ok {
				return fmt.Errorf("%w: %s", lifecycle.ErrJobNotFound, args[0])
			}

			d := app.navigator(platform, s)
			skip := make(chan struct{})
			switch {
			case skipLocation:
				close(skip)
			case d.Platform().Handheld() && app.IsInteractive():
				app.printf("%s\n", styleDim.Render("Getting your position… press Enter to skip."))
				go func() {
					_, _ = bufio.NewReader(app.In).ReadString('\n')
					close(skip)
				}()
			}

			res, err := d.Navigate(ctx, navigation.DestinationFor(job), skip)
			if res.Explanation != "" {
				app.printf("%s\n", res.Explanation)
			}
			if err != nil {
				for _, uri := range res.Attempted {
					app.printf("  %s\n", uri)
				}
				return err
			}
			app.printf("%s opened %s\n", styleOK.Render("✓"), res.Opened)
			return nil
		},
	}

	cmd.Flags().StringVar(&platform, "platform", "", "Platform signature override (android, ios, mobile, desktop or a user agent)")
	cmd.Flags().BoolVar(&skipLocation, "skip-location", false, "Do not wait for a position fix")
	return cmd
}
