package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ogdevs/backoffice-client/internal/client"
	"github.com/ogdevs/backoffice-client/models"
)

func newChatCmd(r *root) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Read and send chat messages",
	}
	cmd.AddCommand(
		newChatRoomsCmd(r),
		newChatMessagesCmd(r),
		newChatSendCmd(r),
		newChatFollowCmd(r),
		newChatCreateCmd(r),
		newChatJoinCmd(r),
		newChatLeaveCmd(r),
		newChatDeleteCmd(r),
	)
	return cmd
}

func withApp(r *root, cmd *cobra.Command, assumeYes bool, fn func(*client.App) error) error {
	app, err := r.app(cmd, assumeYes)
	if err != nil {
		return err
	}
	defer app.Close()
	return fn(app)
}

func newChatRoomsCmd(r *root) *cobra.Command {
	return &cobra.Command{
		Use:   "rooms",
		Short: "List the rooms of the current user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(r, cmd, false, func(app *client.App) error {
				rooms, err := app.Chat.Rooms(cmd.Context())
				if err != nil {
					return describe(err)
				}
				if len(rooms) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No rooms.")
					return nil
				}
				for _, room := range rooms {
					fmt.Fprintf(cmd.OutOrStdout(), "%-6d %s", room.ID, room.Name)
					if room.LastMessage != "" {
						fmt.Fprintf(cmd.OutOrStdout(), " - %s", room.LastMessage)
					}
					fmt.Fprintln(cmd.OutOrStdout())
				}
				return nil
			})
		},
	}
}

func newChatMessagesCmd(r *root) *cobra.Command {
	return &cobra.Command{
		Use:   "messages <room-id>",
		Short: "Print the history of a room",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			roomID, err := parseID(args[0])
			if err != nil {
				return err
			}
			return withApp(r, cmd, false, func(app *client.App) error {
				msgs, err := app.Chat.Messages(cmd.Context(), roomID)
				if err != nil {
					return describe(err)
				}
				for _, m := range msgs {
					printMessage(cmd.OutOrStdout(), m)
				}
				return nil
			})
		},
	}
}

func newChatSendCmd(r *root) *cobra.Command {
	return &cobra.Command{
		Use:   "send <room-id> <message>",
		Short: "Send a message over the realtime channel",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			roomID, err := parseID(args[0])
			if err != nil {
				return err
			}
			req := models.MessageRequest{ChatRoomID: roomID, Message: strings.Join(args[1:], " ")}
			return withApp(r, cmd, false, func(app *client.App) error {
				return app.SendChatMessage(cmd.Context(), req)
			})
		},
	}
}

func newChatFollowCmd(r *root) *cobra.Command {
	return &cobra.Command{
		Use:   "follow <room-id>",
		Short: "Print messages of a room as they arrive",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			roomID, err := parseID(args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			return withApp(r, cmd, false, func(app *client.App) error {
				return app.FollowRoom(cmd.Context(), roomID, func(m models.ChatMessage) {
					printMessage(out, m)
				})
			})
		},
	}
}

func newChatCreateCmd(r *root) *cobra.Command {
	var users []string

	cmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a room",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(r, cmd, false, func(app *client.App) error {
				room, err := app.Chat.CreateRoom(cmd.Context(), models.ChatRoomCreationRequest{Name: args[0], UserIDs: users})
				if err != nil {
					return describe(err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Room %d created.\n", room.ID)
				return nil
			})
		},
	}
	cmd.Flags().StringSliceVar(&users, "user", nil, "Member user id (repeatable)")
	return cmd
}

func newChatJoinCmd(r *root) *cobra.Command {
	return &cobra.Command{
		Use:   "join <room-id>",
		Short: "Join a room",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			roomID, err := parseID(args[0])
			if err != nil {
				return err
			}
			return withApp(r, cmd, false, func(app *client.App) error {
				room, err := app.Chat.JoinRoom(cmd.Context(), roomID)
				if err != nil {
					return describe(err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Joined %s.\n", room.Name)
				return nil
			})
		},
	}
}

func newChatLeaveCmd(r *root) *cobra.Command {
	return &cobra.Command{
		Use:   "leave <room-id>",
		Short: "Leave a room",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			roomID, err := parseID(args[0])
			if err != nil {
				return err
			}
			return withApp(r, cmd, false, func(app *client.App) error {
				if err := app.Chat.LeaveRoom(cmd.Context(), roomID); err != nil {
					return describe(err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Left the room.")
				return nil
			})
		},
	}
}

func newChatDeleteCmd(r *root) *cobra.Command {
	var assumeYes bool

	cmd := &cobra.Command{
		Use:   "delete <room-id>",
		Short: "Delete a room after confirmation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			roomID, err := parseID(args[0])
			if err != nil {
				return err
			}
			confirmer := alwaysConfirm
			if !assumeYes {
				confirmer = newPromptConfirmer(cmd.InOrStdin(), cmd.ErrOrStderr())
			}
			ok, err := confirmer.Confirm(cmd.Context(), "Are you sure you want to delete this chat room?")
			if err != nil || !ok {
				fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
				return err
			}
			return withApp(r, cmd, true, func(app *client.App) error {
				if err := app.Chat.DeleteRoom(cmd.Context(), roomID); err != nil {
					return describe(err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Room deleted.")
				return nil
			})
		},
	}
	cmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "Do not ask for confirmation")
	return cmd
}

func printMessage(w io.Writer, m models.ChatMessage) {
	fmt.Fprintf(w, "[%s] %s: %s\n", m.CreatedAt, m.SenderUsername, m.Content)
}
