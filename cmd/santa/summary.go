package main

import (
	"fmt"
	"io"

	"github.com/naveenspark/santa/internal/distribution"
	"github.com/naveenspark/santa/internal/generate"
	"github.com/naveenspark/santa/internal/site"
	"github.com/naveenspark/santa/pkg/client"
)

// ANSI color constants for plain console output (no lipgloss, output may be piped).
const (
	ansiReset  = "\033[0m"
	ansiBold   = "\033[1m"
	ansiItalic = "\033[3m"
	ansiRed    = "\033[38;2;239;68;68m"   // #ef4444
	ansiGreen  = "\033[38;2;52;212;116m"  // #34d474
	ansiGold   = "\033[38;2;212;168;68m"  // #d4a844
	ansiSlate  = "\033[38;2;136;144;160m" // #8890a0
)

// printLogo prints the spaced SANTA wordmark in alternating red and green.
func printLogo(w io.Writer) {
	letters := "SANTA"
	colors := [2]string{ansiRed, ansiGreen}
	fmt.Fprint(w, "\n  ")
	for i, ch := range letters {
		fmt.Fprintf(w, "%s%s%c%s", colors[i%2], ansiBold, ch, ansiReset)
		if i < len(letters)-1 {
			fmt.Fprint(w, "  ")
		}
	}
	fmt.Fprintln(w)
}

// printSummary reports a finished generation run.
func printSummary(w io.Writer, res *generate.Result, siteURL string) {
	printLogo(w)
	fmt.Fprintf(w, "\n  %s%d participants%s  %srun %s%s\n",
		ansiBold, res.Assignment.Len(), ansiReset, ansiSlate, res.RunID, ansiReset)
	fmt.Fprintf(w, "  %s%s%s\n\n", ansiSlate, res.Chain(), ansiReset)

	for _, p := range res.Pages {
		fmt.Fprintf(w, "  %s✓%s %s\n", ansiGreen, ansiReset, p.Path)
	}
	fmt.Fprintf(w, "  %s✓%s %s\n", ansiGreen, ansiReset, res.DistributionPath)
	fmt.Fprintf(w, "  %s✓%s %s\n", ansiGreen, ansiReset, res.PasswordsPath)

	if siteURL == "" {
		fmt.Fprintf(w, "\n  %s!%s SANTA_SITE_URL is not set; links read %s\n",
			ansiGold, ansiReset, distribution.PlaceholderSiteURL)
	}
	fmt.Fprintf(w, "\n  %s│%s %s%sNext: santa deploy, then send each person their link and password.%s\n\n",
		ansiGold, ansiReset, ansiSlate, ansiItalic, ansiReset)
}

// printDeployReport lists what a deploy changed.
func printDeployReport(w io.Writer, target string, rep site.Report) {
	printLogo(w)
	fmt.Fprintf(w, "\n  deployed to %s%s%s\n\n", ansiBold, target, ansiReset)
	for _, key := range rep.Copied {
		fmt.Fprintf(w, "  %s+%s %s\n", ansiGreen, ansiReset, key)
	}
	for _, key := range rep.Removed {
		fmt.Fprintf(w, "  %s-%s %s %s(stale)%s\n", ansiRed, ansiReset, key, ansiSlate, ansiReset)
	}
	for _, id := range rep.Missing {
		fmt.Fprintf(w, "  %s?%s %s %s(no page generated)%s\n", ansiGold, ansiReset, id, ansiSlate, ansiReset)
	}
	fmt.Fprintf(w, "\n  %d copied, %d removed\n\n", len(rep.Copied), len(rep.Removed))
}

// printVerifyReport prints one line per page and returns how many failed.
func printVerifyReport(w io.Writer, statuses []client.PageStatus) int {
	failed := 0
	for _, st := range statuses {
		if st.Err != nil {
			failed++
			fmt.Fprintf(w, "  %s✗%s %s  %s%v%s\n", ansiRed, ansiReset, st.URL, ansiSlate, st.Err, ansiReset)
			continue
		}
		fmt.Fprintf(w, "  %s✓%s %s\n", ansiGreen, ansiReset, st.URL)
	}
	fmt.Fprintf(w, "\n  %d/%d pages ok\n", len(statuses)-failed, len(statuses))
	return failed
}
