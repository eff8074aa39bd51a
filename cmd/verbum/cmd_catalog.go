package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/taiwoajasa245/verbum-dei-api/internal/bible"
)

var booksCmd = &cobra.Command{
	Use:   "books",
	Short: "List the 73 books of the Catholic canon",
	Args:  cobra.NoArgs,
	RunE:  runBooks,
}

var translationsCmd = &cobra.Command{
	Use:   "translations",
	Short: "List the available translations",
	Args:  cobra.NoArgs,
	RunE:  runTranslations,
}

func runBooks(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	byGroup := bible.BooksByGroup()
	var last bible.BookGroup
	for _, b := range bible.Books {
		if b.Group == last {
			continue
		}
		last = b.Group
		fmt.Fprintf(out, "%s\n", b.Group)
		for _, gb := range byGroup[b.Group] {
			mark := ""
			if gb.Deuterocanonical {
				mark = " (deuterocanônico)"
			}
			fmt.Fprintf(out, "  %2d. %s%s\n", gb.Order, gb.Name, mark)
		}
	}
	return nil
}

func runTranslations(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	for _, key := range bible.TranslationKeys() {
		mark := ""
		if key == bible.DefaultTranslation {
			mark = " (padrão)"
		}
		fmt.Fprintf(out, "  %-13s %s%s\n", key, bible.Translations[key], mark)
	}
	return nil
}
