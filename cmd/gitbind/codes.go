package main

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	platformerrors "github.com/jmgilman/gitbind/errors"
	"github.com/jmgilman/gitbind/giterr"
	"github.com/jmgilman/gitbind/native"
	"github.com/spf13/cobra"
)

// codeInfo describes how a native code is classified.
type codeInfo struct {
	Code           int    `json:"code"`
	Name           string `json:"name"`
	Kind           string `json:"kind"`
	ErrorCode      string `json:"error_code"`
	Classification string `json:"classification"`
}

func describeCode(code native.Code) codeInfo {
	kind := giterr.KindFor(code)
	return codeInfo{
		Code:           int(code),
		Name:           code.String(),
		Kind:           kind.String(),
		ErrorCode:      string(kind.ErrorCode()),
		Classification: string(platformerrors.DefaultClassification(kind.ErrorCode())),
	}
}

func newExplainCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "explain <code>",
		Short: "Show the error kind a native code classifies to",
		Long: `Show the error kind a native code classifies to.

Codes outside the named set classify as Generic.`,
		Example: "  gitbind explain -- -14",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := strconv.ParseInt(args[0], 10, 32)
			if err != nil {
				return platformerrors.Wrapf(err, platformerrors.CodeInvalidInput, "invalid code %q", args[0])
			}
			info := describeCode(native.Code(n))

			if a.jsonOutput {
				return writeJSON(cmd.OutOrStdout(), info)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "code:           %d\n", info.Code)
			fmt.Fprintf(out, "name:           %s\n", info.Name)
			fmt.Fprintf(out, "kind:           %s\n", info.Kind)
			fmt.Fprintf(out, "error code:     %s\n", info.ErrorCode)
			fmt.Fprintf(out, "classification: %s\n", info.Classification)
			return nil
		},
	}
}

func newCodesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "codes",
		Short: "List every native code and its error kind",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			codes := native.KnownCodes()
			infos := make([]codeInfo, 0, len(codes))
			for _, code := range codes {
				infos = append(infos, describeCode(code))
			}

			if a.jsonOutput {
				return writeJSON(cmd.OutOrStdout(), infos)
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "CODE\tNAME\tKIND\tCLASSIFICATION")
			for _, info := range infos {
				fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", info.Code, info.Name, info.Kind, info.Classification)
			}
			return tw.Flush()
		},
	}
}
