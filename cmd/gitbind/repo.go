package main

import (
	"fmt"
	"io"
	"strings"

	platformerrors "github.com/jmgilman/gitbind/errors"
	"github.com/jmgilman/gitbind/git"
	"github.com/spf13/cobra"
)

func newShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <rev>",
		Short: "Show the object a revision resolves to",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := a.open()
			if err != nil {
				return err
			}
			obj, err := repo.Lookup(args[0])
			if err != nil {
				return err
			}
			if a.jsonOutput {
				return writeJSON(cmd.OutOrStdout(), obj)
			}
			return printObject(cmd.OutOrStdout(), obj)
		},
	}
}

func printObject(w io.Writer, obj git.Object) error {
	switch o := obj.(type) {
	case *git.Commit:
		fmt.Fprintf(w, "commit %s\n", o.Hash)
		for _, p := range o.Parents {
			fmt.Fprintf(w, "parent %s\n", p)
		}
		fmt.Fprintf(w, "Author: %s <%s>\n", o.Author.Name, o.Author.Email)
		fmt.Fprintf(w, "Date:   %s\n\n", o.Author.When.Format("Mon Jan 2 15:04:05 2006 -0700"))
		for _, line := range strings.Split(strings.TrimRight(o.Message, "\n"), "\n") {
			fmt.Fprintf(w, "    %s\n", line)
		}
	case *git.Tree:
		for _, e := range o.Entries {
			fmt.Fprintf(w, "%s %s\t%s\n", e.Mode, e.Hash, e.Name)
		}
	case *git.Blob:
		_, err := w.Write(o.Data)
		if err != nil {
			return platformerrors.Wrap(err, platformerrors.CodeInternal, "failed to write blob")
		}
	case *git.Tag:
		fmt.Fprintf(w, "tag %s\n", o.Name)
		fmt.Fprintf(w, "object %s %s\n", o.Target, o.TargetType)
		fmt.Fprintf(w, "Tagger: %s <%s>\n\n", o.Tagger.Name, o.Tagger.Email)
		fmt.Fprintln(w, strings.TrimRight(o.Message, "\n"))
	}
	return nil
}

func newBranchesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "branches",
		Short: "List local and remote-tracking branches",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			repo, err := a.open()
			if err != nil {
				return err
			}
			var branches []git.Branch
			for b, err := range repo.Branches() {
				if err != nil {
					return err
				}
				branches = append(branches, b)
			}

			if a.jsonOutput {
				return writeJSON(cmd.OutOrStdout(), branches)
			}
			for _, b := range branches {
				marker := " "
				if b.IsHead {
					marker = "*"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n", marker, b.Name, b.Hash.String()[:7])
			}
			return nil
		},
	}
}

func newDiffCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "diff <old> <new>",
		Short: "Summarise changes between two revisions",
		Long: `Summarise changes between two revisions, one line per changed path.

Pass an empty <old> ("") to compare against the empty tree.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := a.open()
			if err != nil {
				return err
			}
			stats, err := repo.Diff(args[0], args[1])
			if err != nil {
				return err
			}

			if a.jsonOutput {
				return writeJSON(cmd.OutOrStdout(), stats)
			}
			for _, s := range stats {
				fmt.Fprintf(cmd.OutOrStdout(), "+%d -%d\t%s\n", s.Added, s.Deleted, s.Path)
			}
			return nil
		},
	}
}
