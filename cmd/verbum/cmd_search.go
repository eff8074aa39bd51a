package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/taiwoajasa245/verbum-dei-api/internal/bible"
	"github.com/taiwoajasa245/verbum-dei-api/internal/search"
	"github.com/taiwoajasa245/verbum-dei-api/internal/study"
)

var (
	searchBook        string
	searchTranslation string
	noColor           bool

	verseText      string
	saveCommentary bool
)

const (
	matchOpen  = "\x1b[1;33m"
	matchClose = "\x1b[0m"
)

var searchCmd = &cobra.Command{
	Use:   "search <terms...>",
	Short: "Search the Bible by theme, words or reference",
	Long: `Searches the Catholic Bible. Terms can be a theme ("perdão"), words from a
verse, or a reference ("João 3:16", "Salmos 23"). With --book, a bare number is
read as a chapter of that book.

Whole-chapter answers are printed as continuous text.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

var commentaryCmd = &cobra.Command{
	Use:   "commentary <reference>",
	Short: "Explain a verse with theological and patristic commentary",
	Long: `Generates the commentary and cross-references for one verse, e.g.

  verbum commentary "João 3:16" --text "Com efeito, de tal modo Deus amou o mundo..."`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCommentary,
}

func runSearch(cmd *cobra.Command, args []string) error {
	ctx := commandContext(cmd)
	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	view, err := a.session.Search(ctx, search.Query{
		Term:        strings.Join(args, " "),
		Book:        searchBook,
		Translation: searchTranslation,
	})
	if errors.Is(err, study.ErrRejectedQuery) {
		return fmt.Errorf("search term too short: %w", err)
	}
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(view.Results) == 0 {
		fmt.Fprintln(out, "Nenhum versículo encontrado.")
		return nil
	}
	if view.ReadingMode {
		printChapter(out, view)
		return nil
	}
	printResults(out, view)
	return nil
}

func renderSegments(segments []bible.Segment) string {
	var b strings.Builder
	for _, seg := range segments {
		if seg.Match && !noColor {
			b.WriteString(matchOpen + seg.Text + matchClose)
			continue
		}
		b.WriteString(seg.Text)
	}
	return b.String()
}

func printResults(out io.Writer, view study.SearchView) {
	for i, r := range view.Results {
		marks := ""
		if r.IsPrimary {
			marks += " *"
		}
		if r.Highlight != "" {
			marks += " [" + string(r.Highlight) + "]"
		}
		if r.HasNote {
			marks += " (nota)"
		}
		fmt.Fprintf(out, "%2d. %s%s\n", i+1, r.Verse.Reference(), marks)
		fmt.Fprintf(out, "    %s\n", renderSegments(r.Segments))
	}
	fmt.Fprintf(out, "\n%d versículo(s)\n", len(view.Results))
}

func printChapter(out io.Writer, view study.SearchView) {
	first := view.Results[0].Verse
	fmt.Fprintf(out, "%s %d\n\n", first.Book, first.Chapter)
	parts := make([]string, 0, len(view.Results))
	for _, r := range view.Results {
		parts = append(parts, fmt.Sprintf("[%d] %s", r.Verse.Verse, renderSegments(r.Segments)))
	}
	fmt.Fprintln(out, strings.Join(parts, " "))
}

func runCommentary(cmd *cobra.Command, args []string) error {
	verse, err := bible.ParseReference(strings.Join(args, " "))
	if err != nil {
		return err
	}
	verse.Text = verseText

	ctx := commandContext(cmd)
	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	if _, err := a.session.Select(verse); err != nil {
		return err
	}
	a.session.Wait()
	panel := a.session.Panel()
	state := panel.Commentary

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s\n", verse.Reference())
	if verse.Text != "" {
		fmt.Fprintf(out, "%q\n", verse.Text)
	}
	if panel.Note != "" {
		fmt.Fprintf(out, "Nota: %s\n", panel.Note)
	}
	fmt.Fprintln(out)

	if state.Content != nil {
		c := state.Content
		fmt.Fprintf(out, "Comentário teológico\n%s\n\n", c.Theological)
		if c.Patristic != "" {
			fmt.Fprintf(out, "Tradição patrística (%s)\n%s\n\n", c.PatristicSource, c.Patristic)
		}
		if c.Jerusalem != "" {
			fmt.Fprintf(out, "Nota da Bíblia de Jerusalém\n%s\n\n", c.Jerusalem)
		}
	}

	if len(state.CrossReferences) > 0 {
		fmt.Fprintln(out, "Referências cruzadas")
		for _, ref := range state.CrossReferences {
			fmt.Fprintf(out, "  %s: %s\n", ref.Reference, ref.Reason)
		}
	}

	if state.Error != "" {
		return errors.New(state.Error)
	}

	if saveCommentary {
		item, err := a.session.SaveCommentary(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "\nComentário salvo: %s\n", item.ID)
	}
	return nil
}
