package render

import (
	"bytes"
	"fmt"
	"io"

	"market-simulator/src/models"

	"github.com/charmbracelet/glamour"
	md "github.com/nao1215/markdown"
	"github.com/shopspring/decimal"
)

// DefaultWidth is the word wrap used by Print.
const DefaultWidth = 100

// -----------------------------------------------------------------------------

// Render turns markdown into terminal text.
func Render(md string, width int) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("notty"),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", err
	}
	return r.Render(md)
}

// Print renders md to w, writing the raw markdown if rendering fails.
func Print(w io.Writer, md string) {
	out, err := Render(md, DefaultWidth)
	if err != nil {
		out = md
	}
	fmt.Fprint(w, out)
}

// -----------------------------------------------------------------------------
// Markdown builders
// -----------------------------------------------------------------------------

// Assets lists catalog entries.
func Assets(title string, assets []models.MAsset) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	doc.H1(title)
	if len(assets) == 0 {
		doc.PlainText(md.Italic("No matching assets."))
		return doc.String()
	}

	table := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignLeft, md.AlignLeft, md.AlignLeft, md.AlignRight},
		Header:    []string{"Symbol", "Name", "Type", "Sector", "Holdings"},
	}
	for _, a := range assets {
		holdings := ""
		if a.Holdings != nil {
			holdings = decimal.NewFromFloat(*a.Holdings).String()
		}
		table.Rows = append(table.Rows, []string{a.Symbol, a.Name, string(a.Type), a.Sector, holdings})
	}
	doc.Table(table)
	return doc.String()
}

// Snapshots lists one tick of quotes.
func Snapshots(title string, snaps []models.MMarketSnapshot) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	doc.H1(title)

	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignRight, md.AlignRight, md.AlignRight,
			md.AlignRight, md.AlignRight, md.AlignRight,
		},
		Header: []string{"Symbol", "Price", "Change", "Change %", "High", "Low", "Volume"},
	}
	for _, s := range snaps {
		table.Rows = append(table.Rows, []string{
			s.Symbol,
			Price(s.Price),
			Signed(s.Change),
			Signed(s.ChangePercent) + "%",
			Price(s.High),
			Price(s.Low),
			decimal.NewFromInt(s.Volume).String(),
		})
	}
	doc.Table(table)
	return doc.String()
}

// History lists a synthesized series with its summary.
func History(symbol string, points []models.MHistoricalPoint, summary models.MSeriesSummary) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	doc.H1f("%s history", symbol)

	doc.Table(md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignRight, md.AlignRight, md.AlignRight,
			md.AlignRight, md.AlignRight, md.AlignRight,
		},
		Header: []string{"Open", "High", "Low", "Close", "Avg", "Points"},
		Rows: [][]string{{
			Price(summary.Open), Price(summary.High), Price(summary.Low),
			Price(summary.Close), Price(summary.AvgPrice), fmt.Sprint(summary.DataPoints),
		}},
	})
	doc.LF()

	table := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight, md.AlignRight},
		Header:    []string{"Time", "Price", "Volume"},
	}
	for _, p := range points {
		table.Rows = append(table.Rows, []string{p.Time, Price(p.Price), decimal.NewFromFloat(p.Volume).String()})
	}
	doc.Table(table)
	return doc.String()
}

// Portfolio lists held positions and their total.
func Portfolio(v models.MPortfolioValue) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	doc.H2f("Portfolio: %s", v.Display)
	if len(v.Positions) == 0 {
		return doc.String()
	}

	table := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight, md.AlignRight, md.AlignRight},
		Header:    []string{"Symbol", "Holdings", "Price", "Value"},
	}
	for _, p := range v.Positions {
		table.Rows = append(table.Rows, []string{
			p.Symbol,
			decimal.NewFromFloat(p.Holdings).String(),
			Price(p.Price),
			decimal.NewFromFloat(p.Value).StringFixed(2),
		})
	}
	doc.Table(table)
	return doc.String()
}

// -----------------------------------------------------------------------------

// Price formats like the walk rounds: 2 decimals above 1000, else 4.
func Price(p float64) string {
	if p > 1000 {
		return decimal.NewFromFloat(p).StringFixed(2)
	}
	return decimal.NewFromFloat(p).StringFixed(4)
}

// Signed formats v with 2 decimals and an explicit sign.
func Signed(v float64) string {
	d := decimal.NewFromFloat(v).StringFixed(2)
	if v >= 0 {
		return "+" + d
	}
	return d
}
