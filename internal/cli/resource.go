package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ogdevs/backoffice-client/internal/client"
	"github.com/ogdevs/backoffice-client/internal/resource"
)

func newResourceCmd(r *root) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "resource",
		Aliases: []string{"res"},
		Short:   "List and edit back-office resources",
		Long: "Works on tickets, documents, contracts, projects, postes, objectives, audits, " +
			"job-offers and trainings. Payloads are JSON documents given inline or read from stdin with \"-\".",
	}
	cmd.AddCommand(
		newResourceNamesCmd(r),
		newResourceListCmd(r),
		newResourceGetCmd(r),
		newResourceCreateCmd(r),
		newResourceUpdateCmd(r),
		newResourceDeleteCmd(r),
		newResourceUploadCmd(r),
	)
	return cmd
}

// withTable builds the app and resolves the resource named by args[0].
func withTable(r *root, cmd *cobra.Command, name string, assumeYes bool, fn func(*client.App, resource.Table) error) error {
	app, err := r.app(cmd, assumeYes)
	if err != nil {
		return err
	}
	defer app.Close()

	table, err := app.Resources.Lookup(name)
	if err != nil {
		return err
	}
	return fn(app, table)
}

func newResourceNamesCmd(r *root) *cobra.Command {
	return &cobra.Command{
		Use:   "names",
		Short: "List the resource names",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := r.app(cmd, false)
			if err != nil {
				return err
			}
			defer app.Close()

			fmt.Fprintln(cmd.OutOrStdout(), strings.Join(app.Resources.Names(), "\n"))
			return nil
		},
	}
}

func newResourceListCmd(r *root) *cobra.Command {
	return &cobra.Command{
		Use:   "list <resource>",
		Short: "List every item of a resource",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withTable(r, cmd, args[0], false, func(_ *client.App, t resource.Table) error {
				items, err := t.Load(cmd.Context())
				if err != nil {
					return err
				}
				return writeJSON(cmd.OutOrStdout(), items)
			})
		},
	}
}

func newResourceGetCmd(r *root) *cobra.Command {
	return &cobra.Command{
		Use:   "get <resource> <id>",
		Short: "Show one item",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[1])
			if err != nil {
				return err
			}
			return withTable(r, cmd, args[0], false, func(_ *client.App, t resource.Table) error {
				item, err := t.Get(cmd.Context(), id)
				if err != nil {
					return err
				}
				return writeJSON(cmd.OutOrStdout(), item)
			})
		},
	}
}

func newResourceCreateCmd(r *root) *cobra.Command {
	return &cobra.Command{
		Use:   "create <resource> <json|->",
		Short: "Create an item",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			payload, err := readPayload(cmd.InOrStdin(), args[1])
			if err != nil {
				return err
			}
			return withTable(r, cmd, args[0], false, func(_ *client.App, t resource.Table) error {
				item, err := t.Create(cmd.Context(), payload)
				if err != nil {
					return err
				}
				return writeJSON(cmd.OutOrStdout(), item)
			})
		},
	}
}

func newResourceUpdateCmd(r *root) *cobra.Command {
	return &cobra.Command{
		Use:   "update <resource> <id> <json|->",
		Short: "Replace an item",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[1])
			if err != nil {
				return err
			}
			payload, err := readPayload(cmd.InOrStdin(), args[2])
			if err != nil {
				return err
			}
			return withTable(r, cmd, args[0], false, func(_ *client.App, t resource.Table) error {
				item, err := t.Update(cmd.Context(), id, payload)
				if err != nil {
					return err
				}
				return writeJSON(cmd.OutOrStdout(), item)
			})
		},
	}
}

func newResourceDeleteCmd(r *root) *cobra.Command {
	var assumeYes bool

	cmd := &cobra.Command{
		Use:   "delete <resource> <id>",
		Short: "Delete an item after confirmation",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[1])
			if err != nil {
				return err
			}
			return withTable(r, cmd, args[0], assumeYes, func(_ *client.App, t resource.Table) error {
				err := t.Delete(cmd.Context(), id)
				if errors.Is(err, resource.ErrCancelled) {
					fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
					return nil
				}
				return err
			})
		},
	}
	cmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "Do not ask for confirmation")
	return cmd
}

func newResourceUploadCmd(r *root) *cobra.Command {
	return &cobra.Command{
		Use:   "upload <resource> <file>",
		Short: "Upload a file to a resource that accepts uploads",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[1])
			if err != nil {
				return fmt.Errorf("open upload: %w", err)
			}
			defer f.Close()

			return withTable(r, cmd, args[0], false, func(_ *client.App, t resource.Table) error {
				item, err := t.Upload(cmd.Context(), filepath.Base(args[1]), f)
				if err != nil {
					return err
				}
				return writeJSON(cmd.OutOrStdout(), item)
			})
		},
	}
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", raw)
	}
	return id, nil
}

// readPayload returns arg itself, or all of stdin when arg is "-".
func readPayload(stdin io.Reader, arg string) ([]byte, error) {
	if arg != "-" {
		return []byte(arg), nil
	}
	b, err := io.ReadAll(stdin)
	if err != nil {
		return nil, fmt.Errorf("read payload: %w", err)
	}
	return b, nil
}
