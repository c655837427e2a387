package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var askCmd = &cobra.Command{
	Use:   "ask <question...>",
	Short: "Answer one question",
	Long: `Answer one question about the statements loaded with --file.

Examples:
  lovegraph ask -f facts.txt Who loves Bob
  lovegraph ask -f facts.txt "Whom Alice hates"
  lovegraph ask -f facts.txt Alice`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		file, _ := cmd.Flags().GetString("file")
		return runAsk(cmd, file, strings.Join(args, " "))
	},
}

var tellCmd = &cobra.Command{
	Use:   "tell <statement...>",
	Short: "Read statements and list who is known",
	Long: `Read statements from the command line (after any loaded with --file)
and print how many relations were stored, followed by all subjects and
objects.

Examples:
  lovegraph tell Alice loves Bob, Carol and Dave but hates Eve.
  lovegraph tell -f facts.txt "Eve likes Alice."`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		file, _ := cmd.Flags().GetString("file")
		return runTell(cmd, file, strings.Join(args, " "))
	},
}

var peopleCmd = &cobra.Command{
	Use:   "people",
	Short: "List all subjects and objects",
	Long: `List everyone the statements loaded with --file mention.

Examples:
  lovegraph people -f facts.txt`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		file, _ := cmd.Flags().GetString("file")
		return runPeople(cmd, file)
	},
}

func runAsk(cmd *cobra.Command, file, question string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	_, err = process(s.base, rootOptions{file: file, question: question}, cmd.OutOrStdout())
	return err
}

func runTell(cmd *cobra.Command, file, text string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	if _, err := process(s.base, rootOptions{file: file}, cmd.OutOrStdout()); err != nil {
		return err
	}
	n, err := s.base.Tell(strings.TrimSpace(text))
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Stored %d relation(s).\n", n)
	fmt.Fprintln(out, s.base.Summary())
	return nil
}

func runPeople(cmd *cobra.Command, file string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	if _, err := process(s.base, rootOptions{file: file}, cmd.OutOrStdout()); err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, s.base.Summary())
	return nil
}
