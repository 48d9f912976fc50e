package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"unicode/utf16"
	"unicode/utf8"

	"order_report/internal/report"
)

// Writer publishes one report run: the text report on Stdout, an optional
// copy of it at ReportPath and the JSON summary at OutputPath.
type Writer struct {
	Stdout     io.Writer
	ReportPath string
	OutputPath string
}

func NewWriter(stdout io.Writer, reportPath, outputPath string) *Writer {
	return &Writer{Stdout: stdout, ReportPath: reportPath, OutputPath: outputPath}
}

func (w *Writer) Write(rep *report.Report) error {
	text := rep.Text()
	if _, err := fmt.Fprintln(w.Stdout, text); err != nil {
		return fmt.Errorf("failed to print report: %w", err)
	}

	if w.ReportPath != "" {
		if err := os.WriteFile(w.ReportPath, []byte(text), 0o644); err != nil {
			return fmt.Errorf("failed to write report %s: %w", w.ReportPath, err)
		}
	}

	if w.OutputPath == "" {
		return nil
	}
	data, err := EncodeJSON(rep.Summary())
	if err != nil {
		return err
	}
	if err := os.WriteFile(w.OutputPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write summary %s: %w", w.OutputPath, err)
	}
	return nil
}

// EncodeJSON indents with two spaces, leaves HTML characters alone, escapes
// every non-ASCII rune as \uXXXX and omits the trailing newline.
func EncodeJSON(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, fmt.Errorf("failed to encode summary: %w", err)
	}
	return escapeNonASCII(bytes.TrimSuffix(buf.Bytes(), []byte("\n"))), nil
}

// non-ASCII bytes only occur inside JSON strings, so a byte-level pass is safe
func escapeNonASCII(b []byte) []byte {
	out := make([]byte, 0, len(b))
	for len(b) > 0 {
		r, size := utf8.DecodeRune(b)
		b = b[size:]
		switch {
		case r < utf8.RuneSelf:
			out = append(out, byte(r))
		case r > 0xFFFF:
			hi, lo := utf16.EncodeRune(r)
			out = fmt.Appendf(out, `\u%04x\u%04x`, hi, lo)
		default:
			out = fmt.Appendf(out, `\u%04x`, r)
		}
	}
	return out
}
