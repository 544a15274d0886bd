package export

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/go-pdf/fpdf"
)

// 版面常數，單位為 pt，y 由頁面頂端起算
const (
	marginLeft   = 40.0
	titleTop     = 60.0
	bodyOffset   = 30.0
	lineHeight   = 14.0
	bottomMargin = 50.0
)

// RenderPages 將標題與多行文字排成 Letter 尺寸的 PDF。
// 不換行，過長的行會超出頁面寬度。
func RenderPages(title, body string) ([]byte, error) {
	pdf := layout(title, body)
	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("failed to render pdf: %w", err)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to write pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func layout(title, body string) *fpdf.Fpdf {
	pdf := fpdf.New("P", "pt", "Letter", "")
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetTitle(title, true)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	_, pageHeight := pdf.GetPageSize()
	limit := pageHeight - bottomMargin

	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 14)
	pdf.Text(marginLeft, titleTop, tr(title))

	pdf.SetFont("Helvetica", "", 10)
	y := titleTop + bodyOffset
	for _, line := range splitLines(body) {
		if y > limit {
			pdf.AddPage()
			pdf.SetFont("Helvetica", "", 10)
			y = titleTop
		}
		pdf.Text(marginLeft, y, tr(line))
		y += lineHeight
	}
	return pdf
}

func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.Split(strings.TrimSuffix(s, "\n"), "\n")
}
