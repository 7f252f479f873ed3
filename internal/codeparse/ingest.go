// Package codeparse recovers a canvas from declarative-component source text.
//
// The grammar is not a full language, so the ingester is a tolerant
// recursive-descent parser over a lexed tag stream: malformed nodes degrade to
// placeholders or are skipped, and the worst case is a single error-marker
// scene. Ingestion must never take the editor down.
package codeparse

import (
	"fmt"
	"strings"

	"github.com/postcraft/postcraft/backend-go/internal/scene"
	"github.com/postcraft/postcraft/backend-go/internal/typeid"
)

// Ingest parses component source into a canvas. It never fails: empty input
// yields an empty default canvas (the code panel clears the design), input
// with no recoverable tags or an internal panic yields a one-element scene
// reporting the problem.
func Ingest(source string) (c *scene.Canvas) {
	defer func() {
		if r := recover(); r != nil {
			c = errorCanvas(fmt.Sprint(r))
		}
	}()

	if strings.TrimSpace(source) == "" {
		return scene.DefaultCanvas(typeid.NewCanvasID())
	}

	roots := parseNodes(lex(source))
	hasTag := false
	for _, n := range roots {
		if !n.isText() {
			hasTag = true
			break
		}
	}
	if !hasTag {
		return errorCanvas("no component markup found")
	}

	return buildCanvas(roots)
}

func errorCanvas(msg string) *scene.Canvas {
	c := scene.DefaultCanvas(typeid.NewCanvasID())
	c.Add(&scene.Element{
		ID:      typeid.NewElementID(),
		Kind:    scene.KindText,
		Content: "Unable to parse code: " + msg,
		X:       40,
		Y:       40,
		Width:   600,
		Height:  48,
		ZIndex:  1,
		Visible: true,
		Label:   "Parse error",
		Style:   scene.Style{Color: "#cc0000", FontSize: 16},
	})
	return c
}
