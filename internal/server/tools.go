package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// layoutProperties returns the schema properties every layout-based tool
// accepts, merged with extra.
func layoutProperties(extra map[string]interface{}) map[string]interface{} {
	props := map[string]interface{}{
		"report": map[string]interface{}{
			"type":        "string",
			"description": "Absolute path to the page report JSON produced by the accessibility checker",
		},
		"filter": map[string]interface{}{
			"type":        "string",
			"description": "Severity filter: all, violation, potentialviolation, recommendation, potentialrecommendation or manual. Default from config (all)",
			"enum":        []string{"all", "violation", "potentialviolation", "recommendation", "potentialrecommendation", "manual"},
		},
		"cluster": map[string]interface{}{
			"type":        "string",
			"description": "Collision clustering: single-hop (each group compared with its direct neighbours) or transitive (connected components). Default from config (single-hop)",
			"enum":        []string{"single-hop", "transitive"},
		},
	}
	for k, v := range extra {
		props[k] = v
	}
	return props
}

var screenshotProperty = map[string]interface{}{
	"type":        "string",
	"description": "Absolute path to the page screenshot (PNG, JPEG or GIF)",
}

var groupKeyProperty = map[string]interface{}{
	"type":        "string",
	"description": "Group key as returned by a11y_layout: left-top-width-height",
}

var highlightProperties = map[string]interface{}{
	"hovered": map[string]interface{}{
		"type":        "array",
		"items":       map[string]interface{}{"type": "string"},
		"description": "Keys of hovered groups. They are drawn above every other group",
	},
	"selected": map[string]interface{}{
		"type":        "string",
		"description": "Key of the selected group. Drawn on top with a thicker border",
	},
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		{
			Name:        "a11y_report_summary",
			Description: "Summarize a page report: counts per level and how many findings the overlay can show (non-pass, located, drawable, distinct regions, collision clusters).",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": layoutProperties(map[string]interface{}{
					"screenshot": map[string]interface{}{
						"type":        "string",
						"description": "Optional screenshot path; adds its dimensions, format and file size",
					},
				}),
				"required": []string{"report"},
			},
		},
		{
			Name:        "a11y_layout",
			Description: "Group a report's findings by identical bounding box and return each group with its key, bounds, primary level, cascade index and issues, plus the collision clusters.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": layoutProperties(map[string]interface{}{
					"include_issues": map[string]interface{}{
						"type":        "boolean",
						"description": "Include the full issue list of each group. Default true",
						"default":     true,
					},
				}),
				"required": []string{"report"},
			},
		},
		{
			Name:        "a11y_stack",
			Description: "Return the drawing placement of every group: rendered box, z-index and whether it is drawn, for a given hover/selection state.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": layoutProperties(highlightProperties),
				"required":   []string{"report"},
			},
		},
		{
			Name:        "a11y_render_overlay",
			Description: "Draw the report's groups onto its screenshot (level-colored boxes with issue count badges) and return the result as base64-encoded PNG.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": layoutProperties(mergeProperties(highlightProperties, map[string]interface{}{
					"screenshot": screenshotProperty,
					"zoom": map[string]interface{}{
						"type":        "integer",
						"description": "Output scale in percent, 25 to 300. Default from config (100)",
					},
					"zoom_steps": map[string]interface{}{
						"type":        "integer",
						"description": "Zoom in (positive) or out (negative) by this many 25% steps from zoom, as the viewer's zoom buttons do",
					},
					"grid": map[string]interface{}{
						"type":        "integer",
						"description": "Draw a labelled coordinate grid every N screenshot pixels. Default: no grid",
					},
				})),
				"required": []string{"report", "screenshot"},
			},
		},
		{
			Name:        "a11y_crop_group",
			Description: "Crop the screenshot around one group's region, with padding, and return it as base64-encoded PNG for close inspection.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": layoutProperties(map[string]interface{}{
					"screenshot": screenshotProperty,
					"key":        groupKeyProperty,
					"padding": map[string]interface{}{
						"type":        "integer",
						"description": "Pixels of context around the region. Default from config (16)",
					},
					"zoom": map[string]interface{}{
						"type":        "integer",
						"description": "Output scale in percent, 25 to 300. Default 200",
						"default":     200,
					},
				}),
				"required": []string{"report", "screenshot", "key"},
			},
		},
		{
			Name:        "a11y_group_text",
			Description: "Read the visible text under one group's region with OCR, to identify the element the findings refer to.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": layoutProperties(map[string]interface{}{
					"screenshot": screenshotProperty,
					"key":        groupKeyProperty,
					"padding": map[string]interface{}{
						"type":        "integer",
						"description": "Pixels of context around the region. Default 0",
					},
					"language": map[string]interface{}{
						"type":        "string",
						"description": "Tesseract language code. Default from config (eng)",
					},
				}),
				"required": []string{"report", "screenshot", "key"},
			},
		},
		{
			Name:        "a11y_group_colors",
			Description: "Measure the colors under one group's region: most common colors, background, most contrasting foreground and their WCAG contrast ratio. Useful to confirm or dismiss contrast findings.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": layoutProperties(map[string]interface{}{
					"screenshot": screenshotProperty,
					"key":        groupKeyProperty,
					"padding": map[string]interface{}{
						"type":        "integer",
						"description": "Pixels of context around the region. Default 0",
					},
					"count": map[string]interface{}{
						"type":        "integer",
						"description": "Number of colors to return. Default 5",
						"default":     5,
					},
				}),
				"required": []string{"report", "screenshot", "key"},
			},
		},
		{
			Name:        "a11y_find_group",
			Description: "Find the group that holds a finding, identified by rule id and bounds (and optionally DOM path). Returns the group and how many other issues share its box.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": layoutProperties(map[string]interface{}{
					"rule_id": map[string]interface{}{
						"type":        "string",
						"description": "Rule identifier of the finding",
					},
					"bounds": map[string]interface{}{
						"type": "object",
						"properties": map[string]interface{}{
							"left":   map[string]interface{}{"type": "integer"},
							"top":    map[string]interface{}{"type": "integer"},
							"width":  map[string]interface{}{"type": "integer"},
							"height": map[string]interface{}{"type": "integer"},
						},
						"required": []string{"left", "top", "width", "height"},
					},
					"dom_path": map[string]interface{}{
						"type":        "string",
						"description": "DOM path of the finding, to tell apart findings of the same rule on the same box",
					},
				}),
				"required": []string{"report", "rule_id", "bounds"},
			},
		},
	}
}

func mergeProperties(maps ...map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{})
	for _, m := range maps {
		for k, v := range m {
			out[k] = v
		}
	}
	return out
}

// handleToolsList returns the list of available tools
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": GetToolDefinitions(),
		},
	}
}
