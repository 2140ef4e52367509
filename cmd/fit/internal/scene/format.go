package scene

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format renders the document canonically for the given file path,
// dispatching on its extension the same way Load does. Canonical form drops
// settings equal to their defaults, so semantically identical scenes format
// identically.
func Format(doc *Document, path string) ([]byte, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML(doc)
	case ".fit":
		return []byte(FormatDSL(doc)), nil
	}
	return nil, fmt.Errorf("unsupported scene format %q (want .yaml, .yml, or .fit)", filepath.Ext(path))
}

// FormatYAML renders the canonical YAML form.
func FormatYAML(doc *Document) ([]byte, error) {
	normalized := *doc
	normalized.Flow = normalizeFlow(doc.Flow)
	data, err := yaml.Marshal(&normalized)
	if err != nil {
		return nil, fmt.Errorf("format yaml scene: %w", err)
	}
	return data, nil
}

// FormatDSL renders the canonical .fit form.
func FormatDSL(doc *Document) string {
	var b strings.Builder

	flow := normalizeFlow(doc.Flow)
	if settings := flowSettings(flow); len(settings) > 0 {
		b.WriteString("flow {\n")
		for _, s := range settings {
			b.WriteString("\t" + s + "\n")
		}
		b.WriteString("}\n")
		if len(doc.Items) > 0 {
			b.WriteString("\n")
		}
	}

	for _, item := range doc.Items {
		b.WriteString(itemDSL(item) + "\n")
	}
	return b.String()
}

// normalizeFlow drops gap configs equal to the default rule so both
// renderers agree on what is worth writing.
func normalizeFlow(cfg FlowConfig) FlowConfig {
	if cfg.ItemGap != nil && cfg.ItemGap.isDefault() {
		cfg.ItemGap = nil
	}
	if cfg.LineGap != nil && cfg.LineGap.isDefault() {
		cfg.LineGap = nil
	}
	if cfg.Anchor == "top" {
		cfg.Anchor = ""
	}
	if cfg.Align == "leading" {
		cfg.Align = ""
	}
	return cfg
}

// isDefault reports whether the gap resolves to the zero rule: preference
// derived with a floor of 0.
func (g *GapConfig) isDefault() bool {
	return g.Fixed == nil && !g.NoFloor && g.Min == 0
}

func flowSettings(cfg FlowConfig) []string {
	var settings []string
	if cfg.Width > 0 {
		settings = append(settings, "width "+num(cfg.Width))
	}
	if cfg.ItemGap != nil {
		settings = append(settings, "item-gap "+gapDSL(cfg.ItemGap))
	}
	if cfg.LineGap != nil {
		settings = append(settings, "line-gap "+gapDSL(cfg.LineGap))
	}
	if cfg.Anchor != "" {
		settings = append(settings, "anchor "+cfg.Anchor)
	}
	if cfg.Align != "" {
		settings = append(settings, "align "+cfg.Align)
	}
	if cfg.Reversed {
		settings = append(settings, "reversed")
	}
	if cfg.Stretched {
		settings = append(settings, "stretched")
	}
	if cfg.ProposeWidth {
		settings = append(settings, "propose-width")
	}
	return settings
}

func gapDSL(g *GapConfig) string {
	switch {
	case g.Fixed != nil:
		return "fixed " + num(*g.Fixed)
	case g.NoFloor:
		return "no-floor"
	default:
		return "min " + num(g.Min)
	}
}

func itemDSL(item ItemConfig) string {
	parts := []string{"item " + num(item.Width) + "x" + num(item.Height)}
	switch {
	case item.Spacing != nil:
		parts = append(parts, fmt.Sprintf("spacing %s %s %s %s",
			num(item.Spacing.Top), num(item.Spacing.Leading),
			num(item.Spacing.Bottom), num(item.Spacing.Trailing)))
	case item.Gap != 0:
		parts = append(parts, "gap "+num(item.Gap))
	}
	if item.Anchor != nil {
		parts = append(parts, "anchor "+num(*item.Anchor))
	}
	if item.Break != nil {
		brk := "break"
		if item.Break.After {
			brk += " after"
		}
		if item.Break.MinFill != nil {
			brk += " fill " + num(*item.Break.MinFill)
		}
		parts = append(parts, brk)
	}
	return strings.Join(parts, " ")
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
