package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mohsinonxrm/pptb-mxrm-fetchxml-studio-sub001/internal/store"
)

// NewViewsCommand creates the views command group.
func NewViewsCommand(rootOpts *RootOptions) *cobra.Command {
	var dbPath string

	cmd := &cobra.Command{
		Use:   "views",
		Short: "Manage saved views (query + layout pairs)",
	}

	cmd.PersistentFlags().StringVar(&dbPath, "db", "fetchstudio.db", "path to the view database")

	cmd.AddCommand(newViewsSaveCommand(rootOpts, &dbPath))
	cmd.AddCommand(newViewsListCommand(rootOpts, &dbPath))
	cmd.AddCommand(newViewsDeleteCommand(rootOpts, &dbPath))

	return cmd
}

func newViewsSaveCommand(rootOpts *RootOptions, dbPath *string) *cobra.Command {
	var layoutPath string

	cmd := &cobra.Command{
		Use:           "save <name> <fetch-file>",
		Short:         "Save a view (upserts by name)",
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := formatter(rootOpts, cmd)

			fetchText, err := os.ReadFile(args[1])
			if err != nil {
				f.Error(ErrCodeIO, fmt.Sprintf("cannot read %s", args[1]), err.Error())
				return WrapExitError(ExitCommandError, "read input", err)
			}
			var layoutText []byte
			if layoutPath != "" {
				layoutText, err = os.ReadFile(layoutPath)
				if err != nil {
					f.Error(ErrCodeIO, fmt.Sprintf("cannot read %s", layoutPath), err.Error())
					return WrapExitError(ExitCommandError, "read layout", err)
				}
			}

			s, err := store.Open(*dbPath)
			if err != nil {
				f.Error(ErrCodeStore, "cannot open view database", err.Error())
				return WrapExitError(ExitCommandError, "open database", err)
			}
			defer s.Close()

			view, err := s.SaveView(cmd.Context(), args[0], string(fetchText), string(layoutText))
			if err != nil {
				f.Error(ErrCodeStore, "cannot save view", err.Error())
				return WrapExitError(ExitFailure, "save view", err)
			}
			f.VerboseLog("saved view %s (%s)", view.Name, view.ID)
			return f.Success(view)
		},
	}

	cmd.Flags().StringVar(&layoutPath, "layout", "", "layout XML file to store with the view")

	return cmd
}

func newViewsListCommand(rootOpts *RootOptions, dbPath *string) *cobra.Command {
	return &cobra.Command{
		Use:           "list",
		Short:         "List saved views",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := formatter(rootOpts, cmd)

			s, err := store.Open(*dbPath)
			if err != nil {
				f.Error(ErrCodeStore, "cannot open view database", err.Error())
				return WrapExitError(ExitCommandError, "open database", err)
			}
			defer s.Close()

			views, err := s.ListViews(cmd.Context())
			if err != nil {
				f.Error(ErrCodeStore, "cannot list views", err.Error())
				return WrapExitError(ExitCommandError, "list views", err)
			}
			if rootOpts.Format == "text" {
				for _, v := range views {
					fmt.Fprintf(f.Writer, "%s\t%s\n", v.ID, v.Name)
				}
				return nil
			}
			return f.Success(views)
		},
	}
}

func newViewsDeleteCommand(rootOpts *RootOptions, dbPath *string) *cobra.Command {
	return &cobra.Command{
		Use:           "delete <name>",
		Short:         "Delete a saved view",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := formatter(rootOpts, cmd)

			s, err := store.Open(*dbPath)
			if err != nil {
				f.Error(ErrCodeStore, "cannot open view database", err.Error())
				return WrapExitError(ExitCommandError, "open database", err)
			}
			defer s.Close()

			if err := s.DeleteView(cmd.Context(), args[0]); err != nil {
				if errors.Is(err, store.ErrViewNotFound) {
					f.Error(ErrCodeNotFound, err.Error(), nil)
					return NewExitError(ExitFailure, "view not found")
				}
				f.Error(ErrCodeStore, "cannot delete view", err.Error())
				return WrapExitError(ExitCommandError, "delete view", err)
			}
			return nil
		},
	}
}
