package main

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var printFlags = struct {
	numbered *bool
}{}

func init() {
	cmd := &cobra.Command{
		Use:     "print <file path>",
		Short:   "Print the contents of a file",
		Example: `  rose print grammar.txt --numbered`,
		Args:    cobra.ExactArgs(1),
		RunE:    runPrint,
	}
	printFlags.numbered = cmd.Flags().BoolP("numbered", "n", false, "prefix each line with its line number")
	rootCmd.AddCommand(cmd)
}

func runPrint(cmd *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("Cannot open the file %s: %w", args[0], err)
	}
	defer f.Close()

	if !*printFlags.numbered {
		_, err := io.Copy(os.Stdout, f)
		return err
	}
	return writeNumbered(os.Stdout, f)
}

// writeNumbered writes src line by line, prefixing each line with a right-aligned line number.
func writeNumbered(w io.Writer, src io.Reader) error {
	var lines []string
	s := bufio.NewScanner(src)
	for s.Scan() {
		lines = append(lines, s.Text())
	}
	if err := s.Err(); err != nil {
		return err
	}

	width := len(fmt.Sprint(len(lines)))
	yellow := color.New(color.FgYellow)
	for i, line := range lines {
		num := yellow.Sprintf("%*v", width, i+1)
		_, err := fmt.Fprintf(w, "%v %v %v\n", num, yellow.Sprint("|"), line)
		if err != nil {
			return err
		}
	}
	return nil
}
