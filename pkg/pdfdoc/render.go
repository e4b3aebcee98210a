package pdfdoc

import (
	"bytes"
	"errors"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/sindegeologico/sindeform/pkg/form"
)

type rgb struct{ r, g, b int }

var (
	colorGreenDark = rgb{0, 94, 60}
	colorGreenSoft = rgb{233, 243, 238}
	colorGold      = rgb{200, 154, 60}
	colorText      = rgb{23, 45, 35}
	colorLabel     = rgb{0, 94, 60}
	colorBorder    = rgb{190, 210, 198}
	colorYears     = rgb{255, 224, 161}
	colorFooter    = rgb{90, 110, 98}
	colorWhite     = rgb{255, 255, 255}
)

// Layout constants in millimetres.
const (
	margin       = 12.0
	headerHeight = 44.0
	logoSize     = 28.0
	columnGap    = 4.0
	fieldHeight  = 16.0
	fieldPitch   = 19.0
	signHeight   = 24.0
	signPitch    = 27.0
	barHeight    = 7.0
	authMinBox   = 32.0
	authLineStep = 4.0
	introLine    = 4.0
	footerOffset = 6.0
)

const (
	orgName    = "SINDEGEOLÓGICO"
	orgSlogan  = "Cuando estamos unidos, nadie queda atrás"
	orgYears   = "50 Años"
	orgLegal   = "SINDICATO DE EMPLEADOS DEL SERVICIO GEOLÓGICO COLOMBIANO"
	orgRegNo   = "Personería jurídica No. 001330 del 14 de mayo de 1975"
	formTitle  = "Solicitud de afiliación SINDEGEOLÓGICO"
	formIntro  = "De manera libre y en ejercicio del derecho fundamental de asociación, consagrado en el artículo 38 de la Constitución Política, solicito mi afiliación a SINDEGEOLÓGICO."
	signLabel  = "En constancia, firmo"
	authLabel  = "Autorización"
	authSuffix = " (continuación)"
)

// Render composes the affiliation form for the record.
func Render(r form.Record, opts ...Option) (*Document, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.SetMargins(margin, margin, margin)
	pdf.SetAutoPageBreak(false, margin)
	pdf.SetCompression(o.compress)
	pdf.SetTitle(formTitle, true)
	pdf.SetCreator(orgName, true)
	created := o.created
	if created.IsZero() {
		created = time.Now()
	}
	pdf.SetCreationDate(created)

	w, h := pdf.GetPageSize()
	c := &composer{
		pdf:     pdf,
		pageW:   w,
		pageH:   h,
		usableW: w - 2*margin,
	}
	c.half = (c.usableW - columnGap) / 2

	pdf.AddPage()
	c.y = margin

	c.header(o.logo)
	c.title()
	c.personalData(r)
	c.authorization(r)
	c.footers()

	if err := pdf.Error(); err != nil {
		return nil, errors.Join(ErrRenderFailed, err)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, errors.Join(ErrRenderFailed, err)
	}
	return &Document{data: buf.Bytes(), pages: pdf.PageCount()}, nil
}

// composer tracks the vertical cursor while drawing.
type composer struct {
	pdf     *fpdf.Fpdf
	pageW   float64
	pageH   float64
	usableW float64
	half    float64
	y       float64
}

// bottom is the lowest y content may reach.
func (c *composer) bottom() float64 { return c.pageH - margin }

// ensureRoom starts a new page unless height fits below the cursor.
func (c *composer) ensureRoom(height float64) {
	if c.y+height <= c.bottom() {
		return
	}
	c.pdf.AddPage()
	c.y = margin
}

func (c *composer) fill(col rgb)  { c.pdf.SetFillColor(col.r, col.g, col.b) }
func (c *composer) draw(col rgb)  { c.pdf.SetDrawColor(col.r, col.g, col.b) }
func (c *composer) color(col rgb) { c.pdf.SetTextColor(col.r, col.g, col.b) }

func (c *composer) font(style string, size float64) {
	c.pdf.SetFont("Helvetica", style, size)
}

func (c *composer) text(x, y float64, s string) {
	c.pdf.Text(x, y, encodeText(s))
}

func (c *composer) centered(cx, y float64, s string) {
	enc := encodeText(s)
	c.pdf.Text(cx-c.pdf.GetStringWidth(enc)/2, y, enc)
}

// wrap wraps s for the current font.
func (c *composer) wrap(s string, width float64) []string {
	return wrapText(encodeText(s), width, c.pdf.GetStringWidth)
}

func (c *composer) header(logo []byte) {
	x, y := margin, c.y

	c.fill(colorGreenDark)
	c.pdf.RoundedRect(x, y, c.usableW, headerHeight, 3, "1234", "F")
	c.fill(colorGold)
	c.pdf.Rect(x, y+headerHeight-2.5, c.usableW, 2.5, "F")

	if info, err := registerImage(c.pdf, "logo", "PNG", logo); err == nil && info != nil {
		c.pdf.ImageOptions("logo", x+3, y+4, logoSize, logoSize, false, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")
	} else {
		c.color(colorWhite)
		c.font("B", 9)
		c.text(x+12, y+20, "LOGO")
	}

	left := x + 36
	right := x + c.usableW - 3
	center := (left + right) / 2

	c.color(colorWhite)
	c.font("B", 19)
	c.centered(center, y+11, orgName)
	c.font("B", 11)
	c.centered(center, y+18, orgSlogan)
	c.color(colorYears)
	c.font("B", 14)
	c.centered(center, y+25, orgYears)
	c.color(colorWhite)
	c.font("B", 9.5)
	c.centered(center, y+32, orgLegal)
	c.font("B", 8.5)
	c.centered(center, y+37, orgRegNo)

	c.y += headerHeight + 6
}

func (c *composer) title() {
	x := margin

	c.fill(colorGreenSoft)
	c.pdf.RoundedRect(x, c.y, c.usableW, 10, 2, "1234", "F")
	c.draw(colorGold)
	c.pdf.SetLineWidth(0.8)
	c.pdf.Line(x+1, c.y+1, x+1, c.y+9)
	c.pdf.SetLineWidth(0.2)
	c.color(colorLabel)
	c.font("B", 13)
	c.text(x+5, c.y+6.8, formTitle)
	c.y += 14

	c.color(colorText)
	c.font("", 9.5)
	lines := c.wrap(formIntro, c.usableW)
	for i, line := range lines {
		c.pdf.Text(x, c.y+float64(i)*introLine, line)
	}
	c.y += float64(len(lines))*introLine + 3
}

func (c *composer) sectionBar(label string) {
	c.fill(colorGreenDark)
	c.pdf.RoundedRect(margin, c.y, c.usableW, barHeight, 1.5, "1234", "F")
	c.color(colorWhite)
	c.font("B", 10)
	c.text(margin+3, c.y+4.7, label)
	c.y += barHeight + 3
}

// box draws an empty labeled frame.
func (c *composer) box(label string, x, y, w, h float64) {
	c.draw(colorBorder)
	c.fill(colorWhite)
	c.pdf.RoundedRect(x, y, w, h, 1.8, "1234", "FD")
	c.color(colorLabel)
	c.font("B", 8)
	c.text(x+2, y+4.2, label)
}

// field draws a labeled box with the first wrapped line of the value.
func (c *composer) field(label, value string, x, y, w float64) {
	c.box(label, x, y, w, fieldHeight)
	c.color(colorText)
	c.font("", 10)
	line := "N/A"
	if lines := c.wrap(orNA(value), w-4); len(lines) > 0 && lines[0] != "" {
		line = lines[0]
	}
	c.pdf.Text(x+2, y+10.5, line)
}

func (c *composer) pair(leftLabel, leftValue, rightLabel, rightValue string) {
	c.field(leftLabel, leftValue, margin, c.y, c.half)
	c.field(rightLabel, rightValue, margin+c.half+columnGap, c.y, c.half)
}

// signature draws a labeled frame with the image scaled to fit inside it.
// Missing or undecodable images leave the frame empty.
func (c *composer) signature(dataURL string, x, y, w float64) {
	c.box(signLabel, x, y, w, signHeight)
	if dataURL == "" {
		return
	}

	name := imageName(dataURL)
	info, err := registerDataURL(c.pdf, name, dataURL)
	if err != nil {
		return
	}

	maxW, maxH := w-6, signHeight-9
	drawW, drawH := fitImage(info.Width(), info.Height(), maxW, maxH)
	drawX := x + (w-drawW)/2
	drawY := y + 6 + (maxH-drawH)/2
	c.pdf.ImageOptions(name, drawX, drawY, drawW, drawH, false, fpdf.ImageOptions{}, 0, "")
}

func (c *composer) personalData(r form.Record) {
	estimate := barHeight + 3 + 4*fieldPitch + signPitch + fieldPitch + 3
	c.ensureRoom(estimate)
	c.sectionBar("DATOS PERSONALES")

	c.pair("Nombres", r.Nombres, "Apellidos", r.Apellidos)
	c.y += fieldPitch
	c.pair("Fecha de ingreso al SGC", r.FechaIngreso, "Dependencia a donde labora", r.Dependencia)
	c.y += fieldPitch
	c.pair("Ciudad", r.Ciudad, "Teléfono", r.Telefono)
	c.y += fieldPitch
	c.pair("Extensión", r.Extension, "Correo electrónico", r.Correo)
	c.y += fieldPitch
	c.signature(r.Firma1Image, margin, c.y, c.usableW)
	c.y += signPitch
	c.pair("C.C. No", r.CC1, "De", r.De1)
	c.y += fieldPitch + 3
}

func (c *composer) authorization(r form.Record) {
	c.font("", 9.5)
	lines := c.wrap(orNA(r.AutorizacionTexto), c.usableW-4)

	head := barHeight + 3 + 2*fieldPitch
	tail := signPitch + fieldPitch + fieldHeight
	c.ensureRoom(head + authBoxHeight(len(lines)) + 3 + tail)

	c.sectionBar("AUTORIZACIÓN")
	c.pair("Yo", r.Yo, "Identificado con C.C. No", r.CCIdentificado)
	c.y += fieldPitch
	c.field("De", r.De2, margin, c.y, c.usableW)
	c.y += fieldPitch

	c.authorizationText(lines)

	c.ensureRoom(tail)
	c.signature(r.Firma2Image, margin, c.y, c.usableW)
	c.y += signPitch
	c.pair("C.C. No", r.CC2, "De", r.De3)
	c.y += fieldPitch
	c.field("Ciudad y fecha", r.CiudadFecha, margin, c.y, c.usableW)
	c.y += fieldHeight
}

// authBoxHeight returns the box height needed for n wrapped lines.
func authBoxHeight(n int) float64 {
	return max(authMinBox, 9.8+float64(n)*authLineStep+2)
}

// authorizationText draws the statement box, splitting it across pages
// when it is taller than a whole page.
func (c *composer) authorizationText(lines []string) {
	label := authLabel
	for {
		room := c.bottom() - c.y
		fit := int((room - 9.8 - 2) / authLineStep)
		whole := authBoxHeight(len(lines))
		if c.y > margin && (whole > room && whole <= c.bottom()-margin || fit < 1) {
			c.pdf.AddPage()
			c.y = margin
			continue
		}

		chunk, height := lines, whole
		if len(lines) > fit {
			chunk, height = lines[:fit], room
		}

		c.box(label, margin, c.y, c.usableW, height)
		c.color(colorText)
		c.font("", 9.5)
		for i, line := range chunk {
			c.pdf.Text(margin+2, c.y+9.8+float64(i)*authLineStep, line)
		}
		c.y += height + 3

		lines = lines[len(chunk):]
		if len(lines) == 0 {
			return
		}
		label = authLabel + authSuffix
		c.pdf.AddPage()
		c.y = margin
	}
}

// footers stamps "n de total" on every page once the page count is final.
func (c *composer) footers() {
	total := c.pdf.PageCount()
	for n := 1; n <= total; n++ {
		c.pdf.SetPage(n)
		c.font("", 9)
		c.color(colorFooter)
		c.centered(c.pageW/2, c.pageH-footerOffset, fmt.Sprintf("%d de %d", n, total))
	}
	c.pdf.SetPage(total)
}
