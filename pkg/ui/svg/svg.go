// Package svg draws a solve report as an SVG diagram: the initial tubes
// side by side, followed by the numbered move list.
package svg

import (
	"fmt"
	"io"
	"strconv"

	"github.com/arthur-debert/tubesort/pkg/errors"
	"github.com/arthur-debert/tubesort/pkg/ui/display"
	"github.com/beevik/etree"
)

// Layout in user units
const (
	margin     = 20
	tubeWidth  = 40
	tubeGap    = 20
	unitHeight = 30
	labelSpace = 24
	lineHeight = 18
	fontSize   = 14
)

// Render builds the diagram document
func Render(report *display.SolveReport) *etree.Document {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	n := len(report.Tubes)
	tubesHeight := report.Capacity * unitHeight
	width := 2*margin + n*tubeWidth + max(n-1, 0)*tubeGap
	lines := summaryLines(report)
	height := 2*margin + tubesHeight + labelSpace + len(lines)*lineHeight

	root := doc.CreateElement("svg")
	root.CreateAttr("xmlns", "http://www.w3.org/2000/svg")
	root.CreateAttr("width", strconv.Itoa(width))
	root.CreateAttr("height", strconv.Itoa(height))
	root.CreateAttr("viewBox", fmt.Sprintf("0 0 %d %d", width, height))
	root.CreateAttr("font-family", "monospace")
	root.CreateAttr("font-size", strconv.Itoa(fontSize))

	title := root.CreateElement("title")
	title.SetText(report.Source)

	tubes := root.CreateElement("g")
	tubes.CreateAttr("class", "tubes")
	for i, tube := range report.Tubes {
		drawTube(tubes, tube, margin+i*(tubeWidth+tubeGap), margin, report.Capacity)
	}

	text := root.CreateElement("g")
	text.CreateAttr("class", "moves")
	y := margin + tubesHeight + labelSpace + lineHeight
	for _, line := range lines {
		t := text.CreateElement("text")
		t.CreateAttr("x", strconv.Itoa(margin))
		t.CreateAttr("y", strconv.Itoa(y))
		t.SetText(line)
		y += lineHeight
	}

	doc.Indent(2)
	return doc
}

// Write renders report to w
func Write(w io.Writer, report *display.SolveReport) error {
	if _, err := Render(report).WriteTo(w); err != nil {
		return errors.Wrap(err, errors.ErrFileWrite, "failed to write svg")
	}
	return nil
}

// WriteFile renders report to path
func WriteFile(path string, report *display.SolveReport) error {
	if err := Render(report).WriteToFile(path); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "failed to write svg to %s", path).
			WithDetail("path", path)
	}
	return nil
}

// drawTube draws the outline of one tube with its units stacked bottom up
// and the tube index underneath
func drawTube(parent *etree.Element, tube display.TubeView, x, y, capacity int) {
	g := parent.CreateElement("g")
	g.CreateAttr("class", "tube")
	g.CreateAttr("data-index", strconv.Itoa(tube.Index))

	height := capacity * unitHeight
	for i, c := range tube.Colors {
		unit := g.CreateElement("rect")
		unit.CreateAttr("x", strconv.Itoa(x))
		unit.CreateAttr("y", strconv.Itoa(y+height-(i+1)*unitHeight))
		unit.CreateAttr("width", strconv.Itoa(tubeWidth))
		unit.CreateAttr("height", strconv.Itoa(unitHeight))
		unit.CreateAttr("fill", c.Hex)
		unit.CreateElement("title").SetText(c.Label)
	}

	outline := g.CreateElement("rect")
	outline.CreateAttr("x", strconv.Itoa(x))
	outline.CreateAttr("y", strconv.Itoa(y))
	outline.CreateAttr("width", strconv.Itoa(tubeWidth))
	outline.CreateAttr("height", strconv.Itoa(height))
	outline.CreateAttr("rx", "6")
	outline.CreateAttr("fill", "none")
	outline.CreateAttr("stroke", "#444444")
	outline.CreateAttr("stroke-width", "2")

	label := g.CreateElement("text")
	label.CreateAttr("x", strconv.Itoa(x+tubeWidth/2))
	label.CreateAttr("y", strconv.Itoa(y+height+labelSpace-6))
	label.CreateAttr("text-anchor", "middle")
	label.SetText(strconv.Itoa(tube.Index))
}

func summaryLines(report *display.SolveReport) []string {
	switch {
	case report.AlreadySolved:
		return []string{"Already solved"}
	case !report.Solved:
		return []string{"No solution"}
	}

	lines := make([]string, 0, len(report.Moves)+1)
	lines = append(lines, fmt.Sprintf("Solved in %d moves", len(report.Moves)))
	for _, m := range report.Moves {
		lines = append(lines, fmt.Sprintf("%d. %d -> %d  %s x%d", m.Step, m.From, m.To, m.Color.Label, m.Count))
	}
	return lines
}
