// Package server implements the MCP (Model Context Protocol) server for the
// accessibility overlay.
//
// The server lets an MCP client (an assistant or an editor) explore a page
// report the way the overlay viewer does: which findings share a box, which
// boxes collide and how they fan out, what the page looks like with the
// overlay drawn, and what text sits under a flagged element.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
// Layout:
//   - a11y_report_summary: Level counts and layout tally
//   - a11y_layout: Groups, primary levels, cascade indexes and clusters
//   - a11y_stack: Z-ordered placements for a hover/selection state
//   - a11y_find_group: Group holding a given finding
//
// Screenshot:
//   - a11y_render_overlay: Screenshot with the overlay drawn
//   - a11y_crop_group: Zoomed crop around one group
//   - a11y_group_text: OCR of the text under one group
//   - a11y_group_colors: Colors and contrast ratio under one group
//
// Every tool takes the report path plus optional filter and cluster
// overrides; defaults come from the loaded configuration.
//
// # Caching
//
// Reports and screenshots are cached by path for the lifetime of the
// process. Layouts are recomputed on every call; they are cheap and depend
// on per-call options.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure), -32602 (malformed tools/call
//     params), -32601 (unknown method) or -32700 (unparseable line)
//   - message: Human-readable error description
//   - data: The Go error string
//
// Diagnostics go to stderr through the logging package; stdout carries only
// protocol messages.
//
// # Usage
//
//	srv := server.New(cfg)
//	if err := srv.Run(); err != nil {
//	    log.Fatal(err)
//	}
package server
