package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/flvvius/hackathon-sisc-2025/frontend/internal/render"
	"github.com/flvvius/hackathon-sisc-2025/shared/api"
	"github.com/flvvius/hackathon-sisc-2025/shared/domain"
	"github.com/flvvius/hackathon-sisc-2025/shared/errors"
)

// parseLabels turns "text:color" flags into label refs.
func parseLabels(values []string) ([]domain.LabelRef, error) {
	labels := make([]domain.LabelRef, 0, len(values))
	for _, v := range values {
		text, color, ok := strings.Cut(v, ":")
		text = strings.TrimSpace(text)
		if !ok || text == "" {
			return nil, &errors.ValidationError{Message: fmt.Sprintf("Label %q must look like text:color", v)}
		}
		c := domain.LabelColor(strings.ToLower(strings.TrimSpace(color)))
		if !c.Valid() {
			return nil, &errors.ValidationError{Message: fmt.Sprintf("Unknown label color %q", color)}
		}
		labels = append(labels, domain.LabelRef{Text: text, Color: c})
	}
	return labels, nil
}

func (a *app) cardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "card",
		Short: "Create, change and move cards",
	}
	cmd.AddCommand(
		a.cardAddCmd(),
		a.cardShowCmd(),
		a.cardEditCmd(),
		a.cardMoveCmd(),
		a.cardStatusCmd(),
		a.cardRemoveCmd(),
		a.cardTaskCmd(),
		a.cardCommentCmd(),
	)
	return cmd
}

func (a *app) cardAddCmd() *cobra.Command {
	var (
		cardType    string
		description string
		status      string
		labels      []string
	)
	cmd := &cobra.Command{
		Use:   "add <list> <title>",
		Short: "Add a card to the end of a list",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			refs, err := parseLabels(labels)
			if err != nil {
				return err
			}
			req := api.CreateCardRequest{Title: args[1], Type: domain.CardType(cardType)}
			if cmd.Flags().Changed("description") {
				req.Description = &description
			}
			if cmd.Flags().Changed("status") {
				s := domain.Status(status)
				req.Status = &s
			}
			if len(refs) > 0 {
				req.Labels = refs
			}

			view, err := a.loadView(cmd.Context())
			if err != nil {
				return err
			}
			card, err := view.CreateCard(cmd.Context(), args[0], req)
			if err != nil {
				return viewError(view, err)
			}
			fmt.Fprintf(a.out, "Created card %s (%s)\n", card.Title, card.Id)
			return nil
		},
	}
	cmd.Flags().StringVarP(&cardType, "type", "t", string(domain.CardTypeProject), "card type: project, task or comment")
	cmd.Flags().StringVarP(&description, "description", "d", "", "markdown description")
	cmd.Flags().StringVarP(&status, "status", "s", "", "initial status: todo, in-progress or completed")
	cmd.Flags().StringSliceVarP(&labels, "label", "l", nil, "label as text:color, repeatable")
	return cmd
}

func (a *app) cardShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <card>",
		Short: "Show a card with its tasks and comments",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			card, err := a.client.Card(ctx, args[0])
			if err != nil {
				return err
			}
			var tasks []domain.Task
			if card.Type.HasWork() {
				if tasks, err = a.client.Tasks(ctx, card.Id); err != nil {
					return err
				}
			}
			comments, err := a.client.CardComments(ctx, card.Id)
			if err != nil {
				return err
			}
			return render.CardDetail(a.out, card, tasks, comments)
		},
	}
}

func (a *app) cardEditCmd() *cobra.Command {
	var (
		title       string
		description string
		labels      []string
	)
	cmd := &cobra.Command{
		Use:   "edit <card>",
		Short: "Change a card's title, description or labels",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var patch api.UpdateCardRequest
			if cmd.Flags().Changed("title") {
				patch.Title = &title
			}
			if cmd.Flags().Changed("description") {
				patch.Description = &description
			}
			if cmd.Flags().Changed("label") {
				refs, err := parseLabels(labels)
				if err != nil {
					return err
				}
				patch.Labels = &refs
			}
			if patch.Title == nil && patch.Description == nil && patch.Labels == nil {
				return &errors.ValidationError{Message: "Nothing to change, pass --title, --description or --label"}
			}

			view, err := a.loadView(cmd.Context())
			if err != nil {
				return err
			}
			if err := view.UpdateCard(cmd.Context(), args[0], patch); err != nil {
				return viewError(view, err)
			}
			fmt.Fprintf(a.out, "Updated card %s\n", args[0])
			return nil
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "new title")
	cmd.Flags().StringVarP(&description, "description", "d", "", "new markdown description")
	cmd.Flags().StringSliceVarP(&labels, "label", "l", nil, "replace labels, text:color, repeatable")
	return cmd
}

func (a *app) cardMoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "move <card> <list>",
		Short: "Move a card to the end of another list",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			view, err := a.loadView(cmd.Context())
			if err != nil {
				return err
			}
			if err := view.MoveCard(cmd.Context(), args[0], args[1]); err != nil {
				return viewError(view, err)
			}
			fmt.Fprintf(a.out, "Moved card %s to list %s\n", args[0], args[1])
			return nil
		},
	}
}

func (a *app) cardStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status <card>",
		Short: "Advance a card's status: todo, in-progress, completed, todo",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			view, err := a.loadView(cmd.Context())
			if err != nil {
				return err
			}
			next, err := view.CycleStatus(cmd.Context(), args[0])
			if err != nil {
				return viewError(view, err)
			}
			fmt.Fprintf(a.out, "Card %s is now %s\n", args[0], next)
			return nil
		},
	}
}

func (a *app) cardRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <card>",
		Short: "Delete a card",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			view, err := a.loadView(cmd.Context())
			if err != nil {
				return err
			}
			if err := view.DeleteCard(cmd.Context(), args[0]); err != nil {
				return viewError(view, err)
			}
			fmt.Fprintf(a.out, "Deleted card %s\n", args[0])
			return nil
		},
	}
}

func (a *app) cardTaskCmd() *cobra.Command {
	var description string
	cmd := &cobra.Command{
		Use:   "task <card> <title>",
		Short: "Add a subtask to a project or task card",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := api.CreateTaskRequest{Title: args[1]}
			if cmd.Flags().Changed("description") {
				req.Description = &description
			}
			task, err := a.client.CreateTask(cmd.Context(), args[0], req)
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Created task %s (%s)\n", task.Title, task.Id)
			return nil
		},
	}
	cmd.Flags().StringVarP(&description, "description", "d", "", "markdown description")
	return cmd
}

func (a *app) cardCommentCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "comment <card> <text>",
		Short: "Comment on a card",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			comment, err := a.client.AddCardComment(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Added comment %s\n", comment.Id)
			return nil
		},
	}
}
