package report

import (
	"bufio"
	"fmt"
	"io"

	"github.com/pbaille/catkw/internal/taxonomy"
)

// DefaultResidualLimit caps how many residual entries are printed
const DefaultResidualLimit = 100

// Options tunes the text report
type Options struct {
	ResidualLimit int
}

// WriteText renders a human-readable report
func WriteText(w io.Writer, r *taxonomy.Report, opts Options) error {
	if opts.ResidualLimit <= 0 {
		opts.ResidualLimit = DefaultResidualLimit
	}

	bw := bufio.NewWriter(w)

	fmt.Fprintln(bw, "Suggested blacklist keywords (safe, minimal):")
	list(bw, r.Keywords)

	fmt.Fprintln(bw, "\nCoverage by root (blacklisted/total leaves):")
	for _, c := range r.Coverage {
		fmt.Fprintf(bw, " - %s: %d/%d (%.1f%%)\n", c.Name, c.Blacklisted, c.Total, c.Percent())
	}

	if len(r.Unknown) > 0 {
		fmt.Fprintln(bw, "\nWarning: blacklist entries not found in the category list:")
		list(bw, r.Unknown)
	}

	if len(r.NonLeaf) > 0 {
		fmt.Fprintln(bw, "\nWarning: blacklist entries naming non-leaf categories (ignored, list their leaves instead):")
		list(bw, r.NonLeaf)
	}

	fmt.Fprintln(bw, "\nResidual blacklist entries after applying suggested keywords:")
	if len(r.Residual) == 0 {
		fmt.Fprintln(bw, " - None (0)")
	} else {
		shown := r.Residual
		if len(shown) > opts.ResidualLimit {
			shown = shown[:opts.ResidualLimit]
		}
		list(bw, shown)
		if extra := len(r.Residual) - len(shown); extra > 0 {
			fmt.Fprintf(bw, " ... (+%d more)\n", extra)
		}
	}

	if len(r.Proposals) > 0 {
		fmt.Fprintln(bw, "\nAdditional level-1/2 keywords that exactly cover residuals:")
		list(bw, r.Proposals)
	}

	return bw.Flush()
}

func list(w io.Writer, items []string) {
	for _, it := range items {
		fmt.Fprintf(w, " - %s\n", it)
	}
}
