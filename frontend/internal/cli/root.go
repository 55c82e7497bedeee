// Package cli implements the kanban terminal client commands.
package cli

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/flvvius/hackathon-sisc-2025/frontend/internal/apiclient"
	"github.com/flvvius/hackathon-sisc-2025/frontend/internal/boardview"
	"github.com/flvvius/hackathon-sisc-2025/frontend/internal/cliconfig"
	"github.com/flvvius/hackathon-sisc-2025/shared/domain"
	"github.com/flvvius/hackathon-sisc-2025/shared/errors"
	"github.com/flvvius/hackathon-sisc-2025/shared/logger"
)

type app struct {
	out    io.Writer
	errOut io.Writer

	configPath string
	apiURL     string
	token      string
	board      string
	logLevel   string

	cfg    cliconfig.Config
	client *apiclient.APIClient
}

// NewRootCommand builds the kanban command tree writing to out and errOut.
func NewRootCommand(out, errOut io.Writer) *cobra.Command {
	a := &app{out: out, errOut: errOut}

	root := &cobra.Command{
		Use:           "kanban",
		Short:         "Work with kanban boards from the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.configPath, "config", "", "config file (default <user config dir>/kanban/config.toml)")
	pf.StringVar(&a.apiURL, "api-url", "", "API base URL")
	pf.StringVar(&a.token, "token", "", "identity token")
	pf.StringVarP(&a.board, "board", "b", "", "board id")
	pf.StringVar(&a.logLevel, "log-level", "warn", "log level (debug, info, warn, error)")

	root.AddCommand(
		a.loginCmd(),
		a.useCmd(),
		a.meCmd(),
		a.boardsCmd(),
		a.boardCmd(),
		a.listCmd(),
		a.cardCmd(),
		a.memberCmd(),
		a.labelCmd(),
	)
	return root
}

// setup merges the config file with flags and builds the API client.
func (a *app) setup() error {
	logger.InitializeWriter(a.errOut, a.logLevel, false)

	if a.configPath == "" {
		path, err := cliconfig.DefaultPath()
		if err != nil {
			return err
		}
		a.configPath = path
	}
	cfg, err := cliconfig.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.apiURL != "" {
		cfg.APIURL = a.apiURL
	}
	if a.token != "" {
		cfg.Token = a.token
	}
	if a.board != "" {
		cfg.Board = a.board
	}
	a.cfg = cfg
	a.client = apiclient.New(cfg.APIURL, cfg.Token)
	return nil
}

func (a *app) boardId() (domain.BoardId, error) {
	if a.cfg.Board == "" {
		return "", &errors.ValidationError{Message: "No board selected, pass --board or run `kanban use <board>`"}
	}
	return a.cfg.Board, nil
}

func (a *app) loadView(ctx context.Context) (*boardview.View, error) {
	id, err := a.boardId()
	if err != nil {
		return nil, err
	}
	view := boardview.New(a.client, id)
	if err := view.Load(ctx); err != nil {
		return nil, err
	}
	return view, nil
}

// viewError reports a rejected change with the view's notice.
func viewError(view *boardview.View, err error) error {
	if err == nil {
		return nil
	}
	if notice := view.Notice(); notice != "" {
		if view.Stale() {
			notice += " (board could not be refreshed)"
		}
		return stderrors.New(notice)
	}
	return err
}

func (a *app) loginCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "login <token>",
		Short: "Store an identity token and API URL in the config file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.updateConfig(func(cfg *cliconfig.Config) {
				cfg.Token = args[0]
				if a.apiURL != "" {
					cfg.APIURL = a.apiURL
				}
			})
		},
	}
}

func (a *app) useCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "use <board>",
		Short: "Select the default board",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			board, err := a.client.Board(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if err := a.updateConfig(func(cfg *cliconfig.Config) { cfg.Board = board.Id }); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Using board %s (%s)\n", board.Title, board.Id)
			return nil
		},
	}
}

// updateConfig edits the file as stored, without flag overrides.
func (a *app) updateConfig(edit func(*cliconfig.Config)) error {
	cfg, err := cliconfig.Load(a.configPath)
	if err != nil {
		return err
	}
	edit(&cfg)
	return cliconfig.Save(a.configPath, cfg)
}

func (a *app) meCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "me",
		Short: "Show the signed-in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := a.client.Me(cmd.Context())
			if err != nil {
				return err
			}
			line := user.Id
			if user.Name != nil {
				line += "  " + *user.Name
			}
			if user.Email != nil {
				line += "  <" + *user.Email + ">"
			}
			fmt.Fprintln(a.out, line)
			return nil
		},
	}
}
