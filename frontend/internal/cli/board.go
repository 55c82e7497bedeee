package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/flvvius/hackathon-sisc-2025/frontend/internal/boardview"
	"github.com/flvvius/hackathon-sisc-2025/frontend/internal/cliconfig"
	"github.com/flvvius/hackathon-sisc-2025/frontend/internal/render"
	"github.com/flvvius/hackathon-sisc-2025/shared/api"
	"github.com/flvvius/hackathon-sisc-2025/shared/errors"
	"github.com/flvvius/hackathon-sisc-2025/shared/logger"
)

func (a *app) boardsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "boards",
		Short: "List boards you are a member of",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			boards, err := a.client.Boards(cmd.Context())
			if err != nil {
				return err
			}
			if len(boards) == 0 {
				fmt.Fprintln(a.out, "No boards yet, create one with `kanban board create <title>`")
				return nil
			}
			for _, b := range boards {
				marker := " "
				if b.Id == a.cfg.Board {
					marker = "*"
				}
				fmt.Fprintf(a.out, "%s %s  %s\n", marker, b.Id, b.Title)
			}
			return nil
		},
	}
}

func (a *app) boardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "board",
		Short: "Create, show and manage a board",
	}

	var description string
	create := &cobra.Command{
		Use:   "create <title>",
		Short: "Create a board with the default lists",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := api.CreateBoardRequest{Title: args[0]}
			if cmd.Flags().Changed("description") {
				req.Description = &description
			}
			board, err := a.client.CreateBoard(cmd.Context(), req)
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Created board %s (%s)\n", board.Title, board.Id)
			return nil
		},
	}
	create.Flags().StringVarP(&description, "description", "d", "", "board description")

	show := &cobra.Command{
		Use:   "show",
		Short: "Show the board's lists and cards",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			view, err := a.loadView(cmd.Context())
			if err != nil {
				return err
			}
			return a.drawBoard(cmd.Context(), view)
		},
	}

	watch := &cobra.Command{
		Use:   "watch",
		Short: "Show the board and redraw it whenever it changes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			view, err := a.loadView(ctx)
			if err != nil {
				return err
			}
			if err := a.drawBoard(ctx, view); err != nil {
				return err
			}
			return a.client.WatchBoard(ctx, view.BoardId(), func(e api.Event) {
				logger.Log.Debug("board event", "type", e.Type, "entity", e.Entity)
				if err := view.Load(ctx); err != nil {
					render.Notice(a.errOut, "Failed to refresh board: "+err.Error())
					return
				}
				if err := a.drawBoard(ctx, view); err != nil {
					logger.Log.Warn("redraw failed", "error", err)
				}
			})
		},
	}

	var renameDescription string
	rename := &cobra.Command{
		Use:   "rename <title>",
		Short: "Change the board title",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := a.boardId()
			if err != nil {
				return err
			}
			title := args[0]
			req := api.UpdateBoardRequest{Title: &title}
			if cmd.Flags().Changed("description") {
				req.Description = &renameDescription
			}
			board, err := a.client.UpdateBoard(cmd.Context(), id, req)
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Renamed board %s to %s\n", board.Id, board.Title)
			return nil
		},
	}
	rename.Flags().StringVarP(&renameDescription, "description", "d", "", "new board description")

	var confirmed bool
	remove := &cobra.Command{
		Use:   "delete",
		Short: "Delete the board with all its lists and cards",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := a.boardId()
			if err != nil {
				return err
			}
			if !confirmed {
				return &errors.ValidationError{Message: "Deleting a board cannot be undone, pass --yes to confirm"}
			}
			if err := a.client.DeleteBoard(cmd.Context(), id); err != nil {
				return err
			}
			if id == a.cfg.Board {
				err := a.updateConfig(func(cfg *cliconfig.Config) {
					if cfg.Board == id {
						cfg.Board = ""
					}
				})
				if err != nil {
					logger.Log.Warn("could not clear default board", "error", err)
				}
			}
			fmt.Fprintf(a.out, "Deleted board %s\n", id)
			return nil
		},
	}
	remove.Flags().BoolVar(&confirmed, "yes", false, "confirm deletion")

	cmd.AddCommand(create, show, watch, rename, remove)
	return cmd
}

func (a *app) drawBoard(ctx context.Context, view *boardview.View) error {
	board, err := a.client.Board(ctx, view.BoardId())
	if err != nil {
		return err
	}
	return render.Board(a.out, board.Title, view.Columns())
}

func (a *app) listCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Manage the board's lists",
	}

	add := &cobra.Command{
		Use:   "add <title>",
		Short: "Append a list to the board",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			view, err := a.loadView(cmd.Context())
			if err != nil {
				return err
			}
			col, err := view.CreateList(cmd.Context(), args[0])
			if err != nil {
				return viewError(view, err)
			}
			fmt.Fprintf(a.out, "Created list %s (%s)\n", col.Title, col.Id)
			return nil
		},
	}

	var position int
	rename := &cobra.Command{
		Use:   "rename <list> <title>",
		Short: "Rename or reposition a list",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			title := args[1]
			req := api.UpdateListRequest{Title: &title}
			if cmd.Flags().Changed("position") {
				req.Position = &position
			}
			list, err := a.client.UpdateList(cmd.Context(), args[0], req)
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Updated list %s (%s)\n", list.Title, list.Id)
			return nil
		},
	}
	rename.Flags().IntVar(&position, "position", 0, "new position")

	remove := &cobra.Command{
		Use:   "rm <list>",
		Short: "Delete a list and its cards",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.client.DeleteList(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Deleted list %s\n", args[0])
			return nil
		},
	}

	cmd.AddCommand(add, rename, remove)
	return cmd
}
