// Package cli implements the rutcheck command tree.
package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"jornada/pkg/rut"
)

// ErrInvalidIdentifiers is returned by validate when at least one value fails.
// Callers map it to exit status 1 without printing it again.
var ErrInvalidIdentifiers = errors.New("one or more identifiers are invalid")

type palette struct {
	ok  *color.Color
	bad *color.Color
}

func newPalette(noColor bool) palette {
	p := palette{ok: color.New(color.FgGreen), bad: color.New(color.FgRed, color.Bold)}
	if noColor {
		p.ok.DisableColor()
		p.bad.DisableColor()
	}
	return p
}

// RootCmd returns the rutcheck root command with all subcommands attached.
func RootCmd() *cobra.Command {
	var noColor bool

	root := &cobra.Command{
		Use:   "rutcheck",
		Short: "Format and validate Chilean RUT identifiers",
		Long: `rutcheck formats and validates Chilean taxpayer identifiers (RUT).

Values are taken from the arguments or, when none are given, from stdin
one per line. Punctuation and surrounding text are ignored.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")

	root.AddCommand(formatCmd())
	root.AddCommand(validateCmd(&noColor))
	root.AddCommand(checkDigitCmd())
	return root
}

func formatCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "format [value...]",
		Short: "Print the canonical form of each value",
		Example: `  rutcheck format 123456785         # 12.345.678-5
  printf '76086428-5\n' | rutcheck format`,
		RunE: func(cmd *cobra.Command, args []string) error {
			values, err := inputValues(cmd.InOrStdin(), args)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, v := range values {
				fmt.Fprintln(out, rut.Format(v))
			}
			return nil
		},
	}
}

func validateCmd(noColor *bool) *cobra.Command {
	var quiet bool

	cmd := &cobra.Command{
		Use:   "validate [value...]",
		Short: "Check the verifier of each value",
		Long: `Check the modulo-11 verifier of each value.

Exits with status 1 when any value is invalid.`,
		Example: `  rutcheck validate 11.111.111-1 11.111.111-0
  rutcheck validate --quiet 76086428-5 && echo ok`,
		RunE: func(cmd *cobra.Command, args []string) error {
			values, err := inputValues(cmd.InOrStdin(), args)
			if err != nil {
				return err
			}
			p := newPalette(*noColor)
			out := cmd.OutOrStdout()

			allValid := true
			for _, v := range values {
				valid := rut.Validate(v)
				allValid = allValid && valid
				if quiet {
					continue
				}
				if valid {
					fmt.Fprintf(out, "%s\t%s\n", rut.Format(v), p.ok.Sprint("valid"))
				} else {
					fmt.Fprintf(out, "%s\t%s\n", rut.Format(v), p.bad.Sprint("invalid"))
				}
			}
			if !allValid {
				return ErrInvalidIdentifiers
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "print nothing; report through the exit status only")
	return cmd
}

func checkDigitCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "check-digit <body>",
		Short:   "Compute the verifier for an identifier body",
		Example: `  rutcheck check-digit 12.345.678   # 5`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			verifier, ok := rut.CheckDigit(rut.Clean(args[0]))
			if !ok {
				return fmt.Errorf("body %q must contain at least one digit and only digits", args[0])
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(verifier))
			return nil
		},
	}
}

// inputValues returns args, or the non-blank lines of in when args is empty.
func inputValues(in io.Reader, args []string) ([]string, error) {
	if len(args) > 0 {
		return args, nil
	}
	var values []string
	sc := bufio.NewScanner(in)
	for sc.Scan() {
		if line := strings.TrimSpace(sc.Text()); line != "" {
			values = append(values, line)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read stdin: %w", err)
	}
	return values, nil
}
