package inkwell

import (
	"image"
	"image/color"
	"unicode/utf8"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/inconsolata"
	"golang.org/x/image/math/fixed"
)

// FontKind selects one of the faces held by Fonts.
type FontKind uint8

const (
	FontNormal FontKind = iota
	FontSmall
)

const ellipsis = "..."

// Fonts measures and draws text for the widgets.
type Fonts struct {
	faces [2]font.Face
}

// NewFonts returns the built-in bitmap faces.
func NewFonts() *Fonts {
	return &Fonts{faces: [2]font.Face{
		FontNormal: inconsolata.Regular8x16,
		FontSmall:  basicfont.Face7x13,
	}}
}

func (f *Fonts) face(kind FontKind) font.Face {
	if int(kind) < len(f.faces) && f.faces[kind] != nil {
		return f.faces[kind]
	}
	return f.faces[FontNormal]
}

// RenderPlan is a measured piece of text ready to be drawn.
type RenderPlan struct {
	Text      string
	Width     int
	Truncated bool
	kind      FontKind
}

// Plan measures text in the face kind and truncates it with an ellipsis so
// that it fits in maxWidth pixels. A maxWidth of zero or less disables
// truncation.
func (f *Fonts) Plan(kind FontKind, text string, maxWidth int) RenderPlan {
	face := f.face(kind)
	w := font.MeasureString(face, text).Ceil()
	if maxWidth <= 0 || w <= maxWidth {
		return RenderPlan{Text: text, Width: w, kind: kind}
	}

	s := text
	for s != "" {
		_, size := utf8.DecodeLastRuneInString(s)
		s = s[:len(s)-size]
		w = font.MeasureString(face, s+ellipsis).Ceil()
		if w <= maxWidth {
			return RenderPlan{Text: s + ellipsis, Width: w, Truncated: true, kind: kind}
		}
	}

	w = font.MeasureString(face, ellipsis).Ceil()
	if w > maxWidth {
		return RenderPlan{Truncated: true, kind: kind}
	}
	return RenderPlan{Text: ellipsis, Width: w, Truncated: true, kind: kind}
}

// Render draws plan on dst in the given gray, with the left end of the
// baseline at origin.
func (f *Fonts) Render(dst draw.Image, gray uint8, plan RenderPlan, origin Point) {
	if plan.Text == "" {
		return
	}
	d := font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(color.Gray{Y: gray}),
		Face: f.face(plan.kind),
		Dot:  fixed.P(origin.X, origin.Y),
	}
	d.DrawString(plan.Text)
}

// XHeight returns the height of a lowercase x in the face kind.
func (f *Fonts) XHeight(kind FontKind) int {
	b, _ := font.BoundString(f.face(kind), "x")
	return (-b.Min.Y).Ceil()
}

// Em returns the advance of an uppercase M in the face kind.
func (f *Fonts) Em(kind FontKind) int {
	return font.MeasureString(f.face(kind), "M").Ceil()
}

// LineHeight returns the recommended baseline-to-baseline distance.
func (f *Fonts) LineHeight(kind FontKind) int {
	return f.face(kind).Metrics().Height.Ceil()
}

// Baseline returns the baseline that vertically centers lowercase text
// in rect.
func (f *Fonts) Baseline(kind FontKind, rect Rectangle) int {
	return rect.Min.Y + (rect.Height()+f.XHeight(kind))/2
}
