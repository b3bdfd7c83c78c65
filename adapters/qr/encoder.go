// Package qr implements render.QREncoder on top of skip2/go-qrcode.
package qr

import (
	"context"
	"image/color"
	"strconv"
	"strings"

	qrcode "github.com/skip2/go-qrcode"

	"github.com/goliatone/go-quotedoc/render"
)

// Encoder produces PNG QR codes. The zero value is ready to use.
type Encoder struct{}

// New creates a QR encoder.
func New() *Encoder {
	return &Encoder{}
}

// Encode renders the request content as a PNG at the requested size.
func (e *Encoder) Encode(ctx context.Context, req render.QRRequest) ([]byte, error) {
	if strings.TrimSpace(req.Content) == "" {
		return nil, render.NewError(render.KindValidation, "qr content is empty", nil)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	code, err := qrcode.New(req.Content, recoveryLevel(req.Level))
	if err != nil {
		return nil, render.NewError(render.KindInternal, "qr encoding failed", err)
	}

	code.ForegroundColor = parseColor(req.Foreground, color.Black)
	code.BackgroundColor = parseColor(req.Background, color.White)
	if req.Margin <= 0 {
		code.DisableBorder = true
	}

	size := req.Size
	if size <= 0 {
		size = 120
	}
	png, err := code.PNG(size)
	if err != nil {
		return nil, render.NewError(render.KindInternal, "qr png generation failed", err)
	}
	return png, nil
}

func recoveryLevel(level string) qrcode.RecoveryLevel {
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case "L":
		return qrcode.Low
	case "Q":
		return qrcode.High
	case "H":
		return qrcode.Highest
	default:
		return qrcode.Medium
	}
}

// parseColor accepts #rgb and #rrggbb hex colors, falling back when the
// value is malformed.
func parseColor(value string, fallback color.Color) color.Color {
	value = strings.TrimPrefix(strings.TrimSpace(value), "#")
	switch len(value) {
	case 3:
		value = string([]byte{value[0], value[0], value[1], value[1], value[2], value[2]})
	case 6:
	default:
		return fallback
	}
	parsed, err := strconv.ParseUint(value, 16, 32)
	if err != nil {
		return fallback
	}
	return color.RGBA{
		R: uint8(parsed >> 16),
		G: uint8(parsed >> 8),
		B: uint8(parsed),
		A: 0xff,
	}
}
