package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mohsinonxrm/pptb-mxrm-fetchxml-studio-sub001/internal/fetchxml"
	"github.com/mohsinonxrm/pptb-mxrm-fetchxml-studio-sub001/internal/layout"
)

// NewColumnsCommand creates the columns command.
func NewColumnsCommand(rootOpts *RootOptions) *cobra.Command {
	var mergePath string

	cmd := &cobra.Command{
		Use:   "columns <file>",
		Short: "Derive a grid layout from a FetchXML document",
		Long: `Emit the grid (layout) XML implied by a query's projected columns.

Without --merge a fresh default layout is generated. With --merge, the
given layout file is reconciled against the query: retained columns
keep their order and width, new columns are appended, removed columns
are dropped.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runColumns(rootOpts, args[0], mergePath, cmd)
		},
	}

	cmd.Flags().StringVar(&mergePath, "merge", "", "existing layout XML file to reconcile")

	return cmd
}

func runColumns(opts *RootOptions, path, mergePath string, cmd *cobra.Command) error {
	f := formatter(opts, cmd)

	text, err := os.ReadFile(path)
	if err != nil {
		f.Error(ErrCodeIO, fmt.Sprintf("cannot read %s", path), err.Error())
		return WrapExitError(ExitCommandError, "read input", err)
	}

	res := fetchxml.Parse(string(text))
	if !res.OK {
		f.Error(ErrCodeParse, "document is invalid", res.Errors)
		return NewExitError(ExitFailure, "document is invalid")
	}

	var cfg layout.Config
	if mergePath == "" {
		cfg = layout.GenerateDefault(res.Tree, nil)
	} else {
		layoutText, err := os.ReadFile(mergePath)
		if err != nil {
			f.Error(ErrCodeIO, fmt.Sprintf("cannot read %s", mergePath), err.Error())
			return WrapExitError(ExitCommandError, "read layout", err)
		}
		gridRes := layout.ParseGrid(string(layoutText))
		if !gridRes.OK {
			f.Error(ErrCodeParse, "layout document is invalid", gridRes.Errors)
			return NewExitError(ExitFailure, "layout document is invalid")
		}
		for _, w := range gridRes.Warnings {
			f.VerboseLog("layout warning: %s", w.Message)
		}
		cfg = layout.Merge(gridRes.Config, res.Tree, nil)
	}

	return f.Raw(layout.SerializeGrid(cfg))
}
