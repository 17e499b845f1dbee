package present

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"parsetrace/internal/config"
	"parsetrace/internal/forensics"
)

var colorNames = map[string]color.Attribute{
	"black":   color.FgBlack,
	"red":     color.FgRed,
	"green":   color.FgGreen,
	"yellow":  color.FgYellow,
	"blue":    color.FgBlue,
	"magenta": color.FgMagenta,
	"cyan":    color.FgCyan,
	"white":   color.FgWhite,
}

// ParseColor converts a colour name to a foreground attribute. A "hi-"
// prefix selects the bright variant.
func ParseColor(name string) (color.Attribute, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	bright := strings.HasPrefix(name, "hi-")
	attr, ok := colorNames[strings.TrimPrefix(name, "hi-")]
	if !ok {
		return 0, fmt.Errorf("unknown colour %q", name)
	}
	if bright {
		attr += color.FgHiBlack - color.FgBlack
	}
	return attr, nil
}

// Palette holds the colour used for each status.
type Palette struct {
	Opened  *color.Color
	Matched *color.Color
	Failed  *color.Color
}

// NewPalette builds a palette from configured names.
func NewPalette(cfg config.Palette, enabled bool) (Palette, error) {
	build := func(key, name string) (*color.Color, error) {
		attr, err := ParseColor(name)
		if err != nil {
			return nil, fmt.Errorf("palette.%s: %w", key, err)
		}
		c := color.New(attr)
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
		return c, nil
	}

	var (
		p   Palette
		err error
	)
	if p.Opened, err = build("opened", cfg.Opened); err != nil {
		return Palette{}, err
	}
	if p.Matched, err = build("matched", cfg.Matched); err != nil {
		return Palette{}, err
	}
	if p.Failed, err = build("failed", cfg.Failed); err != nil {
		return Palette{}, err
	}
	return p, nil
}

func (p Palette) forStatus(s forensics.Status) *color.Color {
	switch s {
	case forensics.StatusOpened:
		return p.Opened
	case forensics.StatusMatched:
		return p.Matched
	default:
		return p.Failed
	}
}
