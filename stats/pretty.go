package stats

import (
	"strings"

	"github.com/asrscore/asrscore"
)

// displayWidth is spec §4.7's CJK-aware column width: a codepoint in
// U+4E00..U+9FA5 counts as width 2, everything else as width 1.
func displayWidth(s string) int {
	w := 0
	for _, r := range s {
		if r >= 0x4E00 && r <= 0x9FA5 {
			w += 2
		} else {
			w++
		}
	}
	return w
}

func pad(s string, width int) string {
	return s + strings.Repeat(" ", width-displayWidth(s)+1)
}

// PrettyPrint renders spec §4.7's four lines for one utterance: the raw hyp
// string, then the column-aligned HYP#/REF/EDIT tracks.
func PrettyPrint(hypText string, alignment asrscore.Alignment) string {
	hypCol := make([]string, len(alignment))
	refCol := make([]string, len(alignment))
	editCol := make([]string, len(alignment))

	for i, op := range alignment {
		switch op.Tag {
		case asrscore.Correct:
			hypCol[i] = op.HypSurface
			refCol[i] = op.RefSurface
			editCol[i] = ""
		case asrscore.Substitute:
			hypCol[i] = op.HypSurface
			refCol[i] = op.RefSurface
			editCol[i] = "S"
		case asrscore.Insert:
			hypCol[i] = op.HypSurface
			refCol[i] = "*"
			editCol[i] = "I"
		case asrscore.Delete:
			hypCol[i] = "*"
			refCol[i] = op.RefSurface
			editCol[i] = "D"
		}
	}

	widths := make([]int, len(alignment))
	for i := range alignment {
		w := displayWidth(hypCol[i])
		if rw := displayWidth(refCol[i]); rw > w {
			w = rw
		}
		if ew := displayWidth(editCol[i]); ew > w {
			w = ew
		}
		widths[i] = w
	}

	var b strings.Builder
	b.WriteString(hypText)
	b.WriteByte('\n')
	writeRow(&b, "HYP#: ", hypCol, widths)
	writeRow(&b, "REF:  ", refCol, widths)
	writeRow(&b, "EDIT: ", editCol, widths)
	return b.String()
}

func writeRow(b *strings.Builder, prefix string, cells []string, widths []int) {
	b.WriteString(prefix)
	for i, cell := range cells {
		b.WriteString(pad(cell, widths[i]))
	}
	b.WriteByte('\n')
}
