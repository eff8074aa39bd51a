package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/taiwoajasa245/verbum-dei-api/internal/bible"
)

var (
	clearHistory bool
	deleteNote   bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show the recent searches",
	Args:  cobra.NoArgs,
	RunE:  runHistory,
}

var savedCmd = &cobra.Command{
	Use:   "saved",
	Short: "Manage saved commentaries",
	Long: `List and manage saved commentaries.

Subcommands:
  list    - List saved commentaries (default)
  delete  - Delete one saved commentary by id
  clear   - Delete every saved commentary`,
	RunE: runSavedList,
}

var savedListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved commentaries",
	Args:  cobra.NoArgs,
	RunE:  runSavedList,
}

var savedDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a saved commentary",
	Args:  cobra.ExactArgs(1),
	RunE:  runSavedDelete,
}

var savedClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete every saved commentary",
	Args:  cobra.NoArgs,
	RunE:  runSavedClear,
}

var highlightCmd = &cobra.Command{
	Use:   `highlight "<book chapter:verse>" <color>`,
	Short: "Color a verse (yellow, green, blue, pink or none)",
	Args:  cobra.ExactArgs(2),
	RunE:  runHighlight,
}

var noteCmd = &cobra.Command{
	Use:   `note "<book chapter:verse>" [text]`,
	Short: "Show, write or delete the note on a verse",
	Args:  cobra.RangeArgs(1, 2),
	RunE:  runNote,
}

func runHistory(cmd *cobra.Command, args []string) error {
	ctx := commandContext(cmd)
	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	out := cmd.OutOrStdout()
	if clearHistory {
		if err := a.session.ClearHistory(ctx); err != nil {
			return fmt.Errorf("failed to clear history: %w", err)
		}
		fmt.Fprintln(out, "Histórico apagado.")
		return nil
	}

	history := a.session.History()
	if len(history) == 0 {
		fmt.Fprintln(out, "Nenhuma pesquisa recente.")
		return nil
	}
	for i, term := range history {
		fmt.Fprintf(out, "  %d. %s\n", i+1, term)
	}
	return nil
}

func runSavedList(cmd *cobra.Command, args []string) error {
	a, err := openApp(commandContext(cmd))
	if err != nil {
		return err
	}
	defer a.Close()

	out := cmd.OutOrStdout()
	saved := a.session.Saved()
	if len(saved) == 0 {
		fmt.Fprintln(out, "Nenhum comentário salvo.")
		return nil
	}
	for _, item := range saved {
		fmt.Fprintf(out, "%s  %s  (%s)\n", item.ID, item.Verse.Reference(), item.SavedAt)
		fmt.Fprintf(out, "    %s\n", item.Content.Theological)
	}
	fmt.Fprintf(out, "\nTotal: %d\n", len(saved))
	return nil
}

func runSavedDelete(cmd *cobra.Command, args []string) error {
	ctx := commandContext(cmd)
	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.session.DeleteSaved(ctx, args[0]); err != nil {
		return fmt.Errorf("failed to delete %s: %w", args[0], err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Removido: %s\n", args[0])
	return nil
}

func runSavedClear(cmd *cobra.Command, args []string) error {
	ctx := commandContext(cmd)
	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.session.ClearSaved(ctx); err != nil {
		return fmt.Errorf("failed to clear saved commentaries: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Comentários salvos apagados.")
	return nil
}

func runHighlight(cmd *cobra.Command, args []string) error {
	verse, err := bible.ParseReference(args[0])
	if err != nil {
		return err
	}
	color, err := bible.ParseHighlightColor(args[1])
	if err != nil {
		return err
	}

	ctx := commandContext(cmd)
	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.session.SetHighlight(ctx, verse, color); err != nil {
		return fmt.Errorf("failed to save highlight: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", verse.Reference(), color)
	return nil
}

func runNote(cmd *cobra.Command, args []string) error {
	verse, err := bible.ParseReference(args[0])
	if err != nil {
		return err
	}

	ctx := commandContext(cmd)
	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	out := cmd.OutOrStdout()
	switch {
	case deleteNote:
		if err := a.session.SaveNote(ctx, verse, ""); err != nil {
			return fmt.Errorf("failed to delete note: %w", err)
		}
		fmt.Fprintf(out, "Nota removida: %s\n", verse.Reference())
	case len(args) == 2:
		if err := a.session.SaveNote(ctx, verse, args[1]); err != nil {
			return fmt.Errorf("failed to save note: %w", err)
		}
		fmt.Fprintf(out, "Nota salva: %s\n", verse.Reference())
	default:
		note := a.session.Notes()[verse.ID()]
		if note == "" {
			fmt.Fprintf(out, "Sem nota para %s.\n", verse.Reference())
			return nil
		}
		fmt.Fprintln(out, note)
	}
	return nil
}
