package notifier

import (
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"StockSentinel/internal/model"
)

// FormatEmailBody lists each triggered row as "<ticker> - <alerts>" separated by blank lines.
func FormatEmailBody(rows []model.NotifierRow) string {
	var b strings.Builder
	for _, r := range rows {
		fmt.Fprintf(&b, "%s - %s\n\n", r.Ticker, r.AlertText)
	}
	return b.String()
}

// FormatTelegramDigest formats triggered rows into a single HTML message.
func FormatTelegramDigest(rows []model.NotifierRow, now time.Time) string {
	var b strings.Builder
	fmt.Fprintf(&b, "📊 <b>StockSentinel</b> | %s\n", now.Format("2006-01-02"))
	fmt.Fprintf(&b, "%d ticker(s) triggered\n", len(rows))
	for _, r := range rows {
		fmt.Fprintf(&b, "\n<b>%s</b> (vol %s)\n", html.EscapeString(r.Ticker), humanize.Comma(int64(r.Volume)))
		for _, line := range strings.Split(r.AlertText, "\n") {
			if line == "" {
				continue
			}
			fmt.Fprintf(&b, "  %s\n", html.EscapeString(line))
		}
	}
	return b.String()
}

// FormatThresholds renders the active thresholds for the /thresholds command.
func FormatThresholds(th model.AlertThresholds) string {
	var b strings.Builder
	b.WriteString("⚙️ <b>Alert thresholds</b>\n\n")
	fmt.Fprintf(&b, "RSI overbought: &gt; %s\n", humanize.Ftoa(th.RSIUpper))
	fmt.Fprintf(&b, "RSI oversold: &lt; %s\n", humanize.Ftoa(th.RSILower))
	fmt.Fprintf(&b, "Volume spike: &gt; %s× 5-day average\n", humanize.Ftoa(th.VolumeSpikeFactor))
	return b.String()
}

// FormatScanSummary is the reply to /scan when nothing was triggered.
func FormatScanSummary(rep *model.Report) string {
	var b strings.Builder
	fmt.Fprintf(&b, "✅ Scan finished: %d ticker(s), no alerts.\n", len(rep.Rows))
	if len(rep.Failures) > 0 {
		fmt.Fprintf(&b, "⚠️ %d failed:", len(rep.Failures))
		for _, f := range rep.Failures {
			fmt.Fprintf(&b, " %s", html.EscapeString(f.Ticker))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// HelpText lists the supported bot commands.
const HelpText = "Available commands:\n" +
	"• /scan - run a scan now\n" +
	"• /thresholds - show alert thresholds\n" +
	"• /help - show this message"
