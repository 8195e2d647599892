package render

import (
	"strings"

	"sdkmatrix/internal/projector"
)

// Markdown renders the projected tree as a markdown document. Output is
// deterministic: it follows the projector's ordering exactly and adds no
// state of its own.
func Markdown(views []projector.SectionView) string {
	var sb strings.Builder
	sb.WriteString("# SDK Feature Matrix\n\n")

	if len(views) == 0 {
		sb.WriteString("No results.\n")
		return sb.String()
	}

	for i, view := range views {
		if view.Heading != "" {
			sb.WriteString("## " + view.Heading + "\n\n")
		}

		sb.WriteString("### " + view.Title + "\n\n")
		if view.Description != "" {
			sb.WriteString(view.Description + "\n\n")
		}

		if len(view.IntegrationPaths) > 0 {
			sb.WriteString("Integration paths:\n\n")
			for _, p := range view.IntegrationPaths {
				if p.URL != "" {
					sb.WriteString("- [" + p.Label + "](" + p.URL + ") (" + string(p.Type) + ")\n")
				} else {
					sb.WriteString("- " + p.Label + " (" + string(p.Type) + ")\n")
				}
			}
			sb.WriteString("\n")
		}

		writeFeature(&sb, view.Primary)

		for _, cat := range view.Categories {
			sb.WriteString("#### " + cat.Name + "\n\n")
			for _, feat := range cat.Features {
				writeFeature(&sb, feat)
			}
		}

		if i < len(views)-1 {
			sb.WriteString("---\n\n")
		}
	}

	return strings.TrimRight(sb.String(), "\n") + "\n"
}

func writeFeature(sb *strings.Builder, feat projector.FeatureView) {
	sb.WriteString("**" + feat.Name + "**")
	if feat.Description != "" {
		sb.WriteString(": " + feat.Description)
	}
	sb.WriteString("\n\n")

	if len(feat.Availability) == 0 {
		return
	}

	sb.WriteString("| Framework | Version |\n")
	sb.WriteString("| --- | --- |\n")
	for _, av := range feat.Availability {
		version := av.Version
		if av.Available && av.APIURL != "" {
			version = "[" + av.Version + "](" + av.APIURL + ")"
		}
		sb.WriteString("| " + av.Framework + " | " + version + " |\n")
	}
	sb.WriteString("\n")
}
