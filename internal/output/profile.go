package output

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/bimmerbailey/penmark/internal/style"
)

// WriteProfile outputs a style profile in the configured format.
func (wr *Writer) WriteProfile(p *style.Profile) error {
	if ok, err := wr.writeStructured(p); ok {
		return err
	}
	if wr.format == FormatTable {
		return wr.writeProfileTable(p)
	}
	return wr.writeProfileText(p)
}

func (wr *Writer) writeProfileText(p *style.Profile) error {
	fmt.Fprintf(wr.w, "Emails analyzed: %d\n", p.TotalAnalyzed)
	if p.TotalAnalyzed < style.LowSampleThreshold {
		warning := "Warning: fewer than 10 emails, analysis may not be accurate."
		if wr.colorize {
			warning = ColorizeWarning(warning)
		}
		fmt.Fprintln(wr.w, warning)
	}
	if p.Language != "" {
		fmt.Fprintf(wr.w, "Language: %s\n", p.Language)
	}

	fmt.Fprintln(wr.w, "\nGreeting:")
	writeUsage(wr, p.Greetings)

	fmt.Fprintln(wr.w, "\nSign-off:")
	writeUsage(wr, p.SignOffs)

	fmt.Fprintln(wr.w, "\nTone:")
	fmt.Fprintf(wr.w, "  Overall: %s\n", p.Tone.OverallTone)
	fmt.Fprintf(wr.w, "  Formality: %.1f/10\n", p.Tone.FormalityScore)
	fmt.Fprintf(wr.w, "  Warmth: %.1f/10\n", p.Tone.WarmthScore)
	fmt.Fprintf(wr.w, "  Professionalism: %.1f/10\n", p.Tone.ProfessionalismScore)

	fmt.Fprintln(wr.w, "\nWriting style:")
	fmt.Fprintf(wr.w, "  Avg email length: %d words\n", p.Characteristics.AvgEmailLength)
	fmt.Fprintf(wr.w, "  Avg sentence length: %d words\n", p.Characteristics.AvgSentenceLength)
	fmt.Fprintf(wr.w, "  Avg paragraphs: %.1f\n", p.Characteristics.AvgParagraphCount)

	if len(p.CommonPhrases) > 0 {
		fmt.Fprintln(wr.w, "\nCommon phrases:")
		for _, phrase := range p.CommonPhrases {
			fmt.Fprintf(wr.w, "  %q\n", phrase)
		}
	}

	fmt.Fprintln(wr.w, "\nEmail categories:")
	for _, c := range profileCategories(p) {
		fmt.Fprintf(wr.w, "  %s: %d emails\n", style.Title(c), p.ResponsePatterns[c].Count)
	}
	return nil
}

func writeUsage(wr *Writer, u style.Usage) {
	fmt.Fprintf(wr.w, "  Most common: %s\n", oneLine(u.MostCommon))
	if pct, ok := u.UsagePercentages[u.MostCommon]; ok {
		fmt.Fprintf(wr.w, "  Used %.2f%% of the time\n", pct)
	}
}

func (wr *Writer) writeProfileTable(p *style.Profile) error {
	tw := tabwriter.NewWriter(wr.w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "CATEGORY\tCOUNT\tAVG WORDS\tSAMPLE")
	fmt.Fprintln(tw, "--------\t-----\t---------\t------")

	for _, c := range profileCategories(p) {
		rp := p.ResponsePatterns[c]
		sample := oneLine(rp.Sample)
		if len(sample) > 50 {
			sample = sample[:47] + "..."
		}
		fmt.Fprintf(tw, "%s\t%d\t%d\t%s\n", c, rp.Count, rp.AvgLength, sample)
	}

	fmt.Fprintf(tw, "\nTOTAL\t%d\t%d\t%s\n", p.TotalAnalyzed, p.Characteristics.AvgEmailLength, p.Tone.OverallTone)
	return tw.Flush()
}

// profileCategories returns the categories present in p in classification
// order.
func profileCategories(p *style.Profile) []string {
	var out []string
	for _, c := range []string{
		style.CategoryQuoteRequests,
		style.CategoryDeliveryScheduling,
		style.CategoryOrders,
		style.CategoryQuestions,
		style.CategoryGeneral,
	} {
		if _, ok := p.ResponsePatterns[c]; ok {
			out = append(out, c)
		}
	}
	return out
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
