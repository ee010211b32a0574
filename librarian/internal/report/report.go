package report

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/Astemirdum/librarian/librarian/internal/model"
	"github.com/Astemirdum/librarian/librarian/internal/repository"
	"github.com/go-pdf/fpdf"
	"github.com/pkg/errors"
)

const DefaultWindow = 30 * 24 * time.Hour

var Header = []string{"Code", "Name", "Author", "Phone number"}

type MonthStat struct {
	NewReaders   int `json:"newReaders"`
	BooksTaken   int `json:"booksTaken"`
	TotalReaders int `json:"totalReaders"`
}

type Data struct {
	Generated time.Time  `json:"generated"`
	Stat      MonthStat  `json:"stat"`
	Loans     [][]string `json:"loans"`
}

// Collect gathers the issued copies and the statistics of the trailing window.
func Collect(ctx context.Context, tx repository.Tx, now time.Time, window time.Duration) (Data, error) {
	since := now.Add(-window)

	var (
		d   = Data{Generated: now}
		err error
	)
	if d.Stat.NewReaders, err = tx.CountHistorySince(ctx, model.EventNewReader, since); err != nil {
		return Data{}, err
	}
	if d.Stat.BooksTaken, err = tx.CountHistorySince(ctx, model.EventBookTaken, since); err != nil {
		return Data{}, err
	}
	if d.Stat.TotalReaders, err = tx.CountReaders(ctx); err != nil {
		return Data{}, err
	}

	loans, err := tx.ListLoans(ctx, model.ListOptions{OrderBy: "b.code, l.issue_date"})
	if err != nil {
		return Data{}, err
	}
	d.Loans = make([][]string, 0, len(loans))
	for _, l := range loans {
		d.Loans = append(d.Loans, []string{l.BookCode, l.BookName, l.BookAuthor, l.ReaderPhone})
	}
	return d, nil
}

var widths = []float64{30, 70, 50, 40}

// Render writes the report as an A4 PDF. Core fonts cover Latin only, so
// Cyrillic cells are transliterated.
func Render(w io.Writer, d Data) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Library month report", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 20)
	pdf.CellFormat(0, 12, "Library month report", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, d.Generated.Format("2006-01-02 15:04"), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "", 12)
	for _, line := range []string{
		fmt.Sprintf("Count of new readers: %d", d.Stat.NewReaders),
		fmt.Sprintf("Count of taken books: %d", d.Stat.BooksTaken),
		fmt.Sprintf("Total count of readers: %d", d.Stat.TotalReaders),
	} {
		pdf.CellFormat(0, 7, line, "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 8, "Taken instances of books", "", 1, "L", false, 0, "")

	pdf.SetFillColor(230, 230, 230)
	for i, h := range Header {
		pdf.CellFormat(widths[i], 7, h, "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 10)
	for _, row := range d.Loans {
		for i, cell := range row {
			pdf.CellFormat(widths[i], 6, fit(pdf, Translit(cell), widths[i]-2), "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	if err := pdf.Output(w); err != nil {
		return errors.Wrap(err, "render pdf")
	}
	return nil
}

func fit(pdf *fpdf.Fpdf, s string, width float64) string {
	if pdf.GetStringWidth(s) <= width {
		return s
	}
	r := []rune(s)
	for len(r) > 0 && pdf.GetStringWidth(string(r)+"...") > width {
		r = r[:len(r)-1]
	}
	return string(r) + "..."
}
