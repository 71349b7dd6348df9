// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"fmt"
	"image"
	"strings"
	"sync"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
)

// =============================================================================
// RASTER LAYOUT
// =============================================================================

const (
	// CaptureScale is the raster oversampling factor. The page is rendered
	// at twice its nominal pixel size so the embedded image stays legible.
	CaptureScale = 2

	// pageWidthPx is an A4-proportioned page width (794px at 96dpi) at
	// capture scale.
	pageWidthPx = 794 * CaptureScale

	marginPx   = 64 * CaptureScale
	fontSizePx = 16 * CaptureScale

	lineSpacing = 1.6
	lineHeight  = fontSizePx * lineSpacing
)

// Font parsing is done once; faces are cheap and created per render because
// a font.Face is not safe for concurrent use.
var (
	fontOnce sync.Once
	fontErr  error
	regular  *sfnt.Font
)

func manuscriptFace() (font.Face, error) {
	fontOnce.Do(func() {
		regular, fontErr = opentype.Parse(goregular.TTF)
	})
	if fontErr != nil {
		return nil, fmt.Errorf("parse builtin font: %w", fontErr)
	}
	return opentype.NewFace(regular, &opentype.FaceOptions{
		Size:    fontSizePx,
		DPI:     72,
		Hinting: font.HintingFull,
	})
}

// =============================================================================
// MANUSCRIPT RENDERER
// =============================================================================

// ManuscriptRenderer lays the manuscript out on a single fixed-width page
// whose height follows the wrapped line count.
type ManuscriptRenderer struct{}

// Render word-wraps the text into an A4-width canvas at capture scale and
// returns the raster.
func (r *ManuscriptRenderer) Render(text string) (image.Image, error) {
	face, err := manuscriptFace()
	if err != nil {
		return nil, err
	}

	measure := gg.NewContext(pageWidthPx, 1)
	measure.SetFontFace(face)
	contentWidth := float64(pageWidthPx - 2*marginPx)

	// Wrap paragraph by paragraph: WordWrap drops blank lines, which would
	// collapse paragraph spacing.
	var lines []string
	for _, para := range strings.Split(text, "\n") {
		if strings.TrimSpace(para) == "" {
			lines = append(lines, "")
			continue
		}
		lines = append(lines, measure.WordWrap(para, contentWidth)...)
	}

	contentHeight := float64(len(lines)) * lineHeight
	if contentHeight < lineHeight {
		contentHeight = lineHeight
	}
	height := 2*marginPx + int(contentHeight)

	dc := gg.NewContext(pageWidthPx, height)
	dc.SetRGB(1, 1, 1)
	dc.Clear()
	dc.SetFontFace(face)
	dc.SetRGB(0.13, 0.13, 0.13)

	y := float64(marginPx) + fontSizePx
	for _, line := range lines {
		if line != "" {
			dc.DrawString(line, float64(marginPx), y)
		}
		y += lineHeight
	}

	return dc.Image(), nil
}
