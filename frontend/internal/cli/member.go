package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/flvvius/hackathon-sisc-2025/frontend/internal/render"
	"github.com/flvvius/hackathon-sisc-2025/shared/api"
	"github.com/flvvius/hackathon-sisc-2025/shared/domain"
)

func (a *app) memberCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "member",
		Short: "Manage who can see and edit the board",
	}

	list := &cobra.Command{
		Use:   "ls",
		Short: "List board members and their roles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := a.boardId()
			if err != nil {
				return err
			}
			members, err := a.client.Members(cmd.Context(), id)
			if err != nil {
				return err
			}
			for _, m := range members {
				who := m.UserId
				if m.User != nil && m.User.Email != nil {
					who += "  " + *m.User.Email
				}
				fmt.Fprintf(a.out, "%-7s %s\n", m.Role, who)
			}
			return nil
		},
	}

	var role string
	add := &cobra.Command{
		Use:   "add <email>",
		Short: "Add a registered user to the board",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := a.boardId()
			if err != nil {
				return err
			}
			m, err := a.client.AddMember(cmd.Context(), id, api.AddMemberRequest{Email: args[0], Role: domain.Role(role)})
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Added %s as %s\n", args[0], m.Role)
			return nil
		},
	}
	add.Flags().StringVarP(&role, "role", "r", string(domain.RoleMember), "role: admin, member or viewer")

	setRole := &cobra.Command{
		Use:   "role <user> <role>",
		Short: "Change a member's role",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := a.boardId()
			if err != nil {
				return err
			}
			m, err := a.client.UpdateMemberRole(cmd.Context(), id, args[0], domain.Role(args[1]))
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "%s is now %s\n", m.UserId, m.Role)
			return nil
		},
	}

	remove := &cobra.Command{
		Use:   "rm <user>",
		Short: "Remove a member from the board",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := a.boardId()
			if err != nil {
				return err
			}
			if err := a.client.RemoveMember(cmd.Context(), id, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Removed %s\n", args[0])
			return nil
		},
	}

	cmd.AddCommand(list, add, setRole, remove)
	return cmd
}

func (a *app) labelCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "label",
		Short: "Manage the board's labels",
	}

	list := &cobra.Command{
		Use:   "ls",
		Short: "List the board's labels",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := a.boardId()
			if err != nil {
				return err
			}
			labels, err := a.client.Labels(cmd.Context(), id)
			if err != nil {
				return err
			}
			for _, l := range labels {
				fmt.Fprintf(a.out, "%s  %s\n", l.Id, render.Label(domain.LabelRef{Text: l.Text, Color: l.Color}))
			}
			return nil
		},
	}

	add := &cobra.Command{
		Use:   "add <text> <color>",
		Short: "Create a label",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := a.boardId()
			if err != nil {
				return err
			}
			label, err := a.client.CreateLabel(cmd.Context(), id, api.CreateLabelRequest{Text: args[0], Color: domain.LabelColor(args[1])})
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Created label %s (%s)\n", label.Text, label.Id)
			return nil
		},
	}

	cmd.AddCommand(list, add)
	return cmd
}
