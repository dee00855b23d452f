package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mohsinonxrm/pptb-mxrm-fetchxml-studio-sub001/internal/fetchxml"
)

// NewFormatCommand creates the format command.
func NewFormatCommand(rootOpts *RootOptions) *cobra.Command {
	var write bool

	cmd := &cobra.Command{
		Use:   "format <file>",
		Short: "Rewrite a FetchXML document in canonical form",
		Long: `Parse a FetchXML document and re-serialize it canonically:
lower-case tags, declaration-order attributes, minimal optionals,
two-space indentation. Formatting an already-canonical document is a
byte-for-byte no-op.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFormat(rootOpts, args[0], write, cmd)
		},
	}

	cmd.Flags().BoolVarP(&write, "write", "w", false, "write the result back to the file instead of stdout")

	return cmd
}

func runFormat(opts *RootOptions, path string, write bool, cmd *cobra.Command) error {
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
	for _, w := range res.Warnings {
		f.VerboseLog("warning: %s", w.Message)
	}

	out := fetchxml.Serialize(res.Tree)
	if write {
		if err := os.WriteFile(path, []byte(out), 0o644); err != nil {
			f.Error(ErrCodeIO, fmt.Sprintf("cannot write %s", path), err.Error())
			return WrapExitError(ExitCommandError, "write output", err)
		}
		f.VerboseLog("wrote %s", path)
		return nil
	}
	return f.Raw(out)
}
