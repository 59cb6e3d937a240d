package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/alwitt/haiku/generate"
	"github.com/apex/log"
	"github.com/spf13/cobra"
)

var generateSave bool

var generateCmd = &cobra.Command{
	Use:   "generate [subject]",
	Short: "Generate a haiku about a subject",
	Long: `Generate a haiku about a subject.

When no subject is given on the command line it is read from stdin.
A blank subject falls back to "` + generate.DefaultSubject + `".

Examples:
  haiku generate ocean waves
  haiku generate --save autumn rain
  echo "city lights" | haiku generate`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		out := cmd.OutOrStdout()

		subject := strings.TrimSpace(strings.Join(args, " "))
		if subject == "" {
			var err error
			if subject, err = promptSubject(cmd.InOrStdin(), out); err != nil {
				return err
			}
		}
		if subject == "" {
			subject = generate.DefaultSubject
		}

		generator, err := newGenerator()
		if err != nil {
			return err
		}

		poem, err := generator.Generate(ctx, subject)
		if err != nil {
			return fmt.Errorf("failed to generate a haiku [%w]", err)
		}

		fmt.Fprintln(out, "\nGenerated haiku:")
		for _, line := range generate.PoemLines(poem) {
			fmt.Fprintln(out, line)
		}

		if !generateSave {
			return nil
		}
		storage, err := openStorage()
		if err != nil {
			return err
		}
		if storage == nil {
			log.Warn("Haiku store not configured, haiku not saved")
			return nil
		}
		if saved, ok := storage.Save(ctx, subject, poem, nil); ok {
			fmt.Fprintf(out, "\nSaved as %s\n", saved.ID)
		}
		return nil
	},
}

// promptSubject read one subject line from the input
func promptSubject(in io.Reader, out io.Writer) (string, error) {
	fmt.Fprintf(out, "Enter a subject for the haiku (blank for '%s'): ", generate.DefaultSubject)
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("failed to read subject [%w]", err)
	}
	return strings.TrimSpace(line), nil
}

func init() {
	generateCmd.Flags().BoolVar(&generateSave, "save", false, "save the haiku to the history")

	rootCmd.AddCommand(generateCmd)
}
