package scene

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// The .fit DSL is line-oriented: an optional flow block followed by one
// item statement per line.
//
//	flow {
//		width 140
//		item-gap fixed 10
//		line-gap min 2
//		anchor bottom
//		align trailing
//	}
//
//	item 50x20 gap 4
//	item 30x25 spacing 1 2 3 4
//	item 50x12 anchor 6 break after fill 0.5
var (
	sceneLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Whitespace", Pattern: `[ \t\r]+`},
		{Name: "Newline", Pattern: `\n+`},
		{Name: "Comment", Pattern: `(?://|#)[^\n]*`},
		{Name: "Size", Pattern: `\d+(?:\.\d+)?x\d+(?:\.\d+)?`},
		{Name: "Number", Pattern: `-?\d+(?:\.\d+)?`},
		{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_-]*`},
		{Name: "Punct", Pattern: `[{}]`},
	})

	sceneParser = participle.MustBuild[sceneFile](
		participle.Lexer(sceneLexer),
		participle.Elide("Whitespace", "Comment"),
	)
)

type sceneFile struct {
	Entries []*sceneEntry `parser:"Newline* ( @@ Newline* )*"`
}

type sceneEntry struct {
	Flow *flowBlock `parser:"  @@"`
	Item *itemStmt  `parser:"| @@"`
}

type flowBlock struct {
	Settings []*flowSetting `parser:"'flow' '{' Newline* ( @@ Newline* )* '}'"`
}

type flowSetting struct {
	Width        *float64 `parser:"  'width' @Number"`
	ItemGap      *gapArg  `parser:"| 'item-gap' @@"`
	LineGap      *gapArg  `parser:"| 'line-gap' @@"`
	Anchor       *string  `parser:"| 'anchor' @Ident"`
	Align        *string  `parser:"| 'align' @Ident"`
	Reversed     bool     `parser:"| @'reversed'"`
	Stretched    bool     `parser:"| @'stretched'"`
	ProposeWidth bool     `parser:"| @'propose-width'"`
}

type gapArg struct {
	Fixed   *float64 `parser:"  'fixed' @Number"`
	Min     *float64 `parser:"| 'min' @Number"`
	NoFloor bool     `parser:"| @'no-floor'"`
}

type itemStmt struct {
	Size  sizeArg     `parser:"'item' @Size"`
	Props []*itemProp `parser:"@@*"`
}

type itemProp struct {
	Gap     *float64    `parser:"  'gap' @Number"`
	Spacing *spacingArg `parser:"| 'spacing' @@"`
	Anchor  *float64    `parser:"| 'anchor' @Number"`
	Break   *breakArg   `parser:"| @@"`
}

type spacingArg struct {
	Top      float64 `parser:"@Number"`
	Leading  float64 `parser:"@Number"`
	Bottom   float64 `parser:"@Number"`
	Trailing float64 `parser:"@Number"`
}

type breakArg struct {
	After bool     `parser:"'break' ( @'after' | 'before' )?"`
	Fill  *float64 `parser:"( 'fill' @Number )?"`
}

// sizeArg splits the WxH size token on capture.
type sizeArg struct {
	Width  float64
	Height float64
}

func (s *sizeArg) Capture(values []string) error {
	parts := strings.SplitN(values[0], "x", 2)
	w, err := strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return fmt.Errorf("bad item size %q: %w", values[0], err)
	}
	h, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return fmt.Errorf("bad item size %q: %w", values[0], err)
	}
	s.Width = w
	s.Height = h
	return nil
}

// ParseDSL parses the .fit scene DSL. Errors carry line and column context.
func ParseDSL(input string) (*Document, error) {
	file, err := sceneParser.ParseString("", input)
	if err != nil {
		return nil, fmt.Errorf("parse fit scene: %w", err)
	}
	return file.document()
}

func (f *sceneFile) document() (*Document, error) {
	doc := &Document{}
	seenFlow := false
	for _, entry := range f.Entries {
		switch {
		case entry.Flow != nil:
			if seenFlow {
				return nil, fmt.Errorf("duplicate flow block")
			}
			seenFlow = true
			entry.Flow.apply(&doc.Flow)
		case entry.Item != nil:
			doc.Items = append(doc.Items, entry.Item.config())
		}
	}
	return doc, nil
}

func (b *flowBlock) apply(cfg *FlowConfig) {
	for _, s := range b.Settings {
		switch {
		case s.Width != nil:
			cfg.Width = *s.Width
		case s.ItemGap != nil:
			cfg.ItemGap = s.ItemGap.config()
		case s.LineGap != nil:
			cfg.LineGap = s.LineGap.config()
		case s.Anchor != nil:
			cfg.Anchor = *s.Anchor
		case s.Align != nil:
			cfg.Align = *s.Align
		case s.Reversed:
			cfg.Reversed = true
		case s.Stretched:
			cfg.Stretched = true
		case s.ProposeWidth:
			cfg.ProposeWidth = true
		}
	}
}

func (g *gapArg) config() *GapConfig {
	cfg := &GapConfig{}
	switch {
	case g.Fixed != nil:
		cfg.Fixed = g.Fixed
	case g.NoFloor:
		cfg.NoFloor = true
	case g.Min != nil:
		cfg.Min = *g.Min
	}
	return cfg
}

func (s *itemStmt) config() ItemConfig {
	cfg := ItemConfig{Width: s.Size.Width, Height: s.Size.Height}
	for _, p := range s.Props {
		switch {
		case p.Gap != nil:
			cfg.Gap = *p.Gap
		case p.Spacing != nil:
			cfg.Spacing = &SpacingConfig{
				Top:      p.Spacing.Top,
				Leading:  p.Spacing.Leading,
				Bottom:   p.Spacing.Bottom,
				Trailing: p.Spacing.Trailing,
			}
		case p.Anchor != nil:
			offset := *p.Anchor
			cfg.Anchor = &offset
		case p.Break != nil:
			cfg.Break = &BreakConfig{After: p.Break.After, MinFill: p.Break.Fill}
		}
	}
	return cfg
}
