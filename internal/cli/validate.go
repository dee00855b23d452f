package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mohsinonxrm/pptb-mxrm-fetchxml-studio-sub001/internal/fetchxml"
)

// ValidationReport is the validate command's payload.
type ValidationReport struct {
	Valid    bool               `json:"valid"`
	Errors   []string           `json:"errors,omitempty"`
	Warnings []fetchxml.Warning `json:"warnings,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	var syntaxOnly bool

	cmd := &cobra.Command{
		Use:   "validate <file>",
		Short: "Validate a FetchXML document",
		Long: `Parse a FetchXML document and report errors and warnings.

Errors are fatal (no tree can be built): empty input, malformed XML,
or a broken fetch/entity root structure. Warnings are recoverable
schema deviations; the document still parses.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args[0], syntaxOnly, cmd)
		},
	}

	cmd.Flags().BoolVar(&syntaxOnly, "syntax-only", false, "check well-formedness and root structure only")

	return cmd
}

func runValidate(opts *RootOptions, path string, syntaxOnly bool, cmd *cobra.Command) error {
	f := formatter(opts, cmd)

	text, err := os.ReadFile(path)
	if err != nil {
		f.Error(ErrCodeIO, fmt.Sprintf("cannot read %s", path), err.Error())
		return WrapExitError(ExitCommandError, "read input", err)
	}
	f.VerboseLog("validating %s (%d bytes)", path, len(text))

	if syntaxOnly {
		if err := fetchxml.ValidateSyntax(string(text)); err != nil {
			f.Error(ErrCodeParse, err.Error(), nil)
			return NewExitError(ExitFailure, "document is invalid")
		}
		return f.Success(ValidationReport{Valid: true})
	}

	res := fetchxml.Parse(string(text))
	report := ValidationReport{Valid: res.OK, Errors: res.Errors, Warnings: res.Warnings}
	if !res.OK {
		f.Error(ErrCodeParse, "document is invalid", report)
		return NewExitError(ExitFailure, "document is invalid")
	}
	if opts.Format == "text" {
		for _, w := range res.Warnings {
			fmt.Fprintf(f.Writer, "warning: %s\n", w.Message)
		}
		fmt.Fprintln(f.Writer, "valid")
		return nil
	}
	return f.Success(report)
}
