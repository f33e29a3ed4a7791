package server

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/billymcdowell/accessibilty-scanner/internal/imaging"
	"github.com/billymcdowell/accessibilty-scanner/internal/layout"
	"github.com/billymcdowell/accessibilty-scanner/internal/logging"
	"github.com/billymcdowell/accessibilty-scanner/internal/ocr"
	"github.com/billymcdowell/accessibilty-scanner/internal/report"
)

// defaultCropZoom is the zoom of a11y_crop_group when none is given.
const defaultCropZoom = 200

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "a11y_layout").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response with code -32000.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	start := time.Now()
	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		logging.Logger.Warnw("Tool execution failed", "tool", params.Name, "error", err)
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}
	logging.Logger.Debugw("Tool executed", "tool", params.Name, "duration", time.Since(start))

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	// Layout
	case "a11y_report_summary":
		return s.handleReportSummary(args)
	case "a11y_layout":
		return s.handleLayout(args)
	case "a11y_stack":
		return s.handleStack(args)
	case "a11y_find_group":
		return s.handleFindGroup(args)

	// Screenshot
	case "a11y_render_overlay":
		return s.handleRenderOverlay(args)
	case "a11y_crop_group":
		return s.handleCropGroup(args)
	case "a11y_group_text":
		return s.handleGroupText(args)
	case "a11y_group_colors":
		return s.handleGroupColors(args)

	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// Panics are suppressed; on marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// === Layout Handlers ===

// layoutArgs are accepted by every tool that lays out a report.
type layoutArgs struct {
	Report  string `json:"report"`
	Filter  string `json:"filter"`
	Cluster string `json:"cluster"`
}

// computeLayout loads the report and runs the layout engine with the
// configured options, overridden by the call's filter and cluster.
func (s *Server) computeLayout(a layoutArgs) (*report.PageReport, *layout.Result, error) {
	if a.Report == "" {
		return nil, nil, fmt.Errorf("report path is required")
	}

	opts := s.cfg.LayoutOptions()
	if a.Filter != "" {
		f, err := layout.ParseFilter(a.Filter)
		if err != nil {
			return nil, nil, err
		}
		opts.Filter = f
	}
	if a.Cluster != "" {
		m, err := layout.ParseClusterMode(a.Cluster)
		if err != nil {
			return nil, nil, err
		}
		opts.Clustering = m
	}

	rep, err := s.reports.Load(a.Report)
	if err != nil {
		return nil, nil, err
	}
	return rep, layout.Compute(rep.Results, opts), nil
}

// lookupGroup finds a group by key in a computed layout.
func lookupGroup(res *layout.Result, key string) (layout.Group, error) {
	if key == "" {
		return layout.Group{}, fmt.Errorf("group key is required")
	}
	g, ok := res.Group(key)
	if !ok {
		return layout.Group{}, fmt.Errorf("no group with key %q (filter %s)", key, res.Options.Filter)
	}
	return g, nil
}

func (s *Server) stackOptions(hovered []string, selected string) layout.StackOptions {
	opts := layout.StackOptions{
		RenderBase: s.cfg.Render.RenderBase,
		Selected:   selected,
		Geometry:   s.cfg.Geometry(),
	}
	if len(hovered) > 0 {
		opts.Hovered = make(map[string]bool, len(hovered))
		for _, k := range hovered {
			opts.Hovered[k] = true
		}
	}
	return opts
}

type reportSummaryArgs struct {
	layoutArgs
	Screenshot string `json:"screenshot"`
}

type reportSummaryResult struct {
	Report     string                  `json:"report"`
	Summary    string                  `json:"summary,omitempty"`
	Counts     report.Counts           `json:"counts"`
	Tally      layout.Tally            `json:"tally"`
	Screenshot *imaging.ScreenshotInfo `json:"screenshot,omitempty"`
}

func (s *Server) handleReportSummary(args json.RawMessage) (interface{}, error) {
	var a reportSummaryArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	rep, res, err := s.computeLayout(a.layoutArgs)
	if err != nil {
		return nil, err
	}
	result := &reportSummaryResult{
		Report:  a.Report,
		Summary: rep.Summary,
		Counts:  rep.LevelCounts(),
		Tally:   res.Tally,
	}
	if a.Screenshot != "" {
		info, err := imaging.LoadScreenshotInfo(s.images, a.Screenshot)
		if err != nil {
			return nil, err
		}
		result.Screenshot = info
	}
	return result, nil
}

type layoutToolArgs struct {
	layoutArgs
	IncludeIssues *bool `json:"include_issues"`
}

func (s *Server) handleLayout(args json.RawMessage) (interface{}, error) {
	var a layoutToolArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	_, res, err := s.computeLayout(a.layoutArgs)
	if err != nil {
		return nil, err
	}
	if a.IncludeIssues != nil && !*a.IncludeIssues {
		for i := range res.Groups {
			res.Groups[i].Issues = nil
		}
	}
	return res, nil
}

type stackArgs struct {
	layoutArgs
	Hovered  []string `json:"hovered"`
	Selected string   `json:"selected"`
}

type stackResult struct {
	Placements []layout.Placement `json:"placements"`
	PaintOrder []string           `json:"paint_order"`
}

func (s *Server) handleStack(args json.RawMessage) (interface{}, error) {
	var a stackArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	_, res, err := s.computeLayout(a.layoutArgs)
	if err != nil {
		return nil, err
	}

	placements := layout.Stack(res.Groups, s.stackOptions(a.Hovered, a.Selected))
	order := layout.PaintOrder(placements)
	keys := make([]string, len(order))
	for i, p := range order {
		keys[i] = p.Key
	}
	return &stackResult{Placements: placements, PaintOrder: keys}, nil
}

type findGroupArgs struct {
	layoutArgs
	RuleID  string        `json:"rule_id"`
	Bounds  report.Bounds `json:"bounds"`
	DOMPath string        `json:"dom_path"`
}

type findGroupResult struct {
	Found bool          `json:"found"`
	Group *layout.Group `json:"group,omitempty"`
	// More is the number of other issues sharing the group's box.
	More int `json:"more"`
}

func (s *Server) handleFindGroup(args json.RawMessage) (interface{}, error) {
	var a findGroupArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.RuleID == "" {
		return nil, fmt.Errorf("rule_id is required")
	}
	_, res, err := s.computeLayout(a.layoutArgs)
	if err != nil {
		return nil, err
	}

	f := report.Finding{RuleID: a.RuleID, Bounds: a.Bounds, Path: report.Path{DOM: a.DOMPath}}
	g, ok := layout.FindGroup(res.Groups, f)
	if !ok && a.DOMPath == "" {
		// Without a DOM path, match on rule and bounds alone.
		g, ok = findByRule(res.Groups, a.RuleID, a.Bounds)
	}
	if !ok {
		return &findGroupResult{Found: false}, nil
	}
	return &findGroupResult{Found: true, Group: &g, More: g.Count() - 1}, nil
}

func findByRule(groups []layout.Group, ruleID string, b report.Bounds) (layout.Group, bool) {
	for _, g := range groups {
		if g.Bounds != b {
			continue
		}
		for _, issue := range g.Issues {
			if issue.RuleID == ruleID {
				return g, true
			}
		}
	}
	return layout.Group{}, false
}

// === Screenshot Handlers ===

type renderOverlayArgs struct {
	stackArgs
	Screenshot string `json:"screenshot"`
	Zoom       int    `json:"zoom"`
	ZoomSteps  int    `json:"zoom_steps"`
	Grid       int    `json:"grid"`
}

func (s *Server) handleRenderOverlay(args json.RawMessage) (interface{}, error) {
	var a renderOverlayArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	_, res, err := s.computeLayout(a.layoutArgs)
	if err != nil {
		return nil, err
	}
	img, err := s.images.Load(a.Screenshot)
	if err != nil {
		return nil, err
	}
	if a.Zoom == 0 {
		a.Zoom = s.cfg.Render.Zoom
	}
	if a.ZoomSteps != 0 {
		a.Zoom = imaging.StepZoom(a.Zoom, a.ZoomSteps)
	}
	if a.Grid < 0 {
		return nil, fmt.Errorf("grid spacing must not be negative, got %d", a.Grid)
	}

	placements := layout.Stack(res.Groups, s.stackOptions(a.Hovered, a.Selected))
	return imaging.RenderOverlay(img, placements, imaging.RenderOptions{Zoom: a.Zoom, GridSpacing: a.Grid})
}

type groupRegionArgs struct {
	layoutArgs
	Screenshot string `json:"screenshot"`
	Key        string `json:"key"`
	Padding    *int   `json:"padding"`
}

type cropGroupArgs struct {
	groupRegionArgs
	Zoom int `json:"zoom"`
}

type cropGroupResult struct {
	*imaging.CropResult
	Group layout.Group `json:"group"`
}

func (s *Server) handleCropGroup(args json.RawMessage) (interface{}, error) {
	var a cropGroupArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Zoom == 0 {
		a.Zoom = defaultCropZoom
	}
	padding := s.cfg.Render.CropPadding
	if a.Padding != nil {
		padding = *a.Padding
	}

	_, res, err := s.computeLayout(a.layoutArgs)
	if err != nil {
		return nil, err
	}
	g, err := lookupGroup(res, a.Key)
	if err != nil {
		return nil, err
	}
	img, err := s.images.Load(a.Screenshot)
	if err != nil {
		return nil, err
	}

	crop, err := imaging.CropGroup(img, g.Bounds, res.Options.Geometry, padding, a.Zoom)
	if err != nil {
		return nil, err
	}
	return &cropGroupResult{CropResult: crop, Group: g}, nil
}

type groupTextArgs struct {
	groupRegionArgs
	Language string `json:"language"`
}

type groupTextResult struct {
	*ocr.RegionText
	Key string `json:"key"`
}

func (s *Server) handleGroupText(args json.RawMessage) (interface{}, error) {
	var a groupTextArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Language == "" {
		a.Language = s.cfg.OCR.Language
	}
	padding := 0
	if a.Padding != nil {
		padding = *a.Padding
	}

	_, res, err := s.computeLayout(a.layoutArgs)
	if err != nil {
		return nil, err
	}
	g, err := lookupGroup(res, a.Key)
	if err != nil {
		return nil, err
	}
	img, err := s.images.Load(a.Screenshot)
	if err != nil {
		return nil, err
	}

	region := imaging.GroupRegion(img.Bounds(), g.Bounds, res.Options.Geometry, padding)
	text, err := ocr.ExtractRegionText(img, region, a.Language)
	if err != nil {
		return nil, err
	}
	return &groupTextResult{RegionText: text, Key: g.Key}, nil
}

type groupColorsArgs struct {
	groupRegionArgs
	Count int `json:"count"`
}

type groupColorsResult struct {
	*imaging.RegionColors
	Key string `json:"key"`
}

func (s *Server) handleGroupColors(args json.RawMessage) (interface{}, error) {
	var a groupColorsArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	padding := 0
	if a.Padding != nil {
		padding = *a.Padding
	}

	_, res, err := s.computeLayout(a.layoutArgs)
	if err != nil {
		return nil, err
	}
	g, err := lookupGroup(res, a.Key)
	if err != nil {
		return nil, err
	}
	img, err := s.images.Load(a.Screenshot)
	if err != nil {
		return nil, err
	}

	region := imaging.GroupRegion(img.Bounds(), g.Bounds, res.Options.Geometry, padding)
	colors, err := imaging.AnalyzeRegionColors(img, region, a.Count)
	if err != nil {
		return nil, err
	}
	return &groupColorsResult{RegionColors: colors, Key: g.Key}, nil
}
