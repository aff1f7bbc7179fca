package printer

import (
	"bytes"
	"strings"
	"unicode/utf8"
)

// ESC/POS control bytes
const (
	ESC = 0x1B
	GS  = 0x1D
	LF  = 0x0A
)

type Align byte

const (
	AlignLeft   Align = 0
	AlignCenter Align = 1
	AlignRight  Align = 2
)

type FontSize byte

const (
	FontNormal FontSize = 0x00
	FontDouble FontSize = 0x11
	FontTall   FontSize = 0x01
)

// Document builds an ESC/POS byte stream. Width is the paper width in
// characters: 32 for 58mm rolls, 48 for 80mm.
type Document struct {
	buf   bytes.Buffer
	width int
}

func NewDocument(width int) *Document {
	if width <= 0 {
		width = 32
	}
	d := &Document{width: width}
	d.buf.Write([]byte{ESC, '@'})
	return d
}

func (d *Document) Width() int { return d.width }

func (d *Document) Feed(n int) *Document {
	for i := 0; i < n; i++ {
		d.buf.WriteByte(LF)
	}
	return d
}

func (d *Document) Align(a Align) *Document {
	d.buf.Write([]byte{ESC, 'a', byte(a)})
	return d
}

func (d *Document) Bold(on bool) *Document {
	var b byte
	if on {
		b = 1
	}
	d.buf.Write([]byte{ESC, 'E', b})
	return d
}

func (d *Document) Size(s FontSize) *Document {
	d.buf.Write([]byte{GS, '!', byte(s)})
	return d
}

// Line writes s and a line feed. Text wider than the paper is wrapped.
func (d *Document) Line(s string) *Document {
	for _, part := range wrap(s, d.width) {
		d.buf.WriteString(part)
		d.buf.WriteByte(LF)
	}
	return d
}

// Rule prints a full-width line of ch.
func (d *Document) Rule(ch rune) *Document {
	return d.Line(strings.Repeat(string(ch), d.width))
}

// Pair prints left flush-left and right flush-right on one line. When both
// do not fit, left gets its own line.
func (d *Document) Pair(left, right string) *Document {
	gap := d.width - utf8.RuneCountInString(left) - utf8.RuneCountInString(right)
	if gap < 1 {
		d.Line(left)
		left, gap = "", d.width-utf8.RuneCountInString(right)
		if gap < 0 {
			gap = 0
		}
	}
	d.buf.WriteString(left)
	d.buf.WriteString(strings.Repeat(" ", gap))
	d.buf.WriteString(right)
	d.buf.WriteByte(LF)
	return d
}

// Cut feeds and partially cuts the paper.
func (d *Document) Cut() *Document {
	d.buf.Write([]byte{GS, 'V', 0x01})
	return d
}

func (d *Document) Bytes() []byte {
	return d.buf.Bytes()
}

func wrap(s string, width int) []string {
	runes := []rune(s)
	if len(runes) <= width {
		return []string{s}
	}
	var out []string
	for len(runes) > width {
		cut := width
		for i := width; i > width/2; i-- {
			if runes[i] == ' ' {
				cut = i
				break
			}
		}
		out = append(out, strings.TrimRight(string(runes[:cut]), " "))
		runes = []rune(strings.TrimLeft(string(runes[cut:]), " "))
	}
	if len(runes) > 0 {
		out = append(out, string(runes))
	}
	return out
}
