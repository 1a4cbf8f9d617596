package cli

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"fieldops/internal/console/auth"
	"fieldops/internal/console/config"

	"github.com/spf13/cobra"
)

var errNoConfigPath = errors.New("no config file to save to")

func newLoginCmd(app *App) *cobra.Command {
	var (
		password string
		saveTeam bool
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in with the team operation password",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			team := app.Config.Team
			if saveTeam && app.ConfigPath == "" {
				return errNoConfigPath
			}

			if password == "" {
				if app.IsInteractive() {
					if err := loginForm(&team, &password).RunWithContext(ctx); err != nil {
						return err
					}
				} else {
					line, err := bufio.NewReader(app.In).ReadString('\n')
					if err != nil && line == "" {
						return fmt.Errorf("reading password from stdin: %w", err)
					}
					password = strings.TrimRight(line, "\r\n")
				}
			}

			s, err := app.Auth.Authenticate(ctx, team, password, auth.Options{})
			if err != nil {
				return err
			}
			app.printf("%s %d work order(s) assigned\n", styleOK.Render("✓"), app.Board.Len())
			app.Logger.Debug("login", "team_id", s.Team.ID)

			if saveTeam {
				return saveDefaultTeam(app, s.Credential.TeamID)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&password, "password", "", "Operation password (read from stdin when omitted)")
	cmd.Flags().BoolVar(&saveTeam, "save-team", false, "Remember the team in the config file")
	return cmd
}

// saveDefaultTeam stores teamID as the configured team. The password is never
// written to the config file.
func saveDefaultTeam(app *App, teamID string) error {
	if app.ConfigPath == "" {
		return errNoConfigPath
	}
	cfg := app.Config
	cfg.Team = teamID
	if err := config.Save(app.ConfigPath, cfg); err != nil {
		return err
	}
	app.Config.Team = teamID
	app.printf("Saved team %s to %s\n", teamID, app.ConfigPath)
	return nil
}

func newLogoutCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the cached team session",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if _, err := app.session(ctx); err != nil {
				return err
			}
			if err := app.Auth.Logout(ctx); err != nil {
				return err
			}
			app.printf("Logged out.\n")
			return nil
		},
	}
}
