package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"
)

// ReportCache provides thread-safe caching of decoded page reports keyed by
// file path.
//
// Reports are treated as immutable once loaded. Use Evict after the scan
// runner rewrites a file so the next Load reads it again.
type ReportCache struct {
	mu      sync.RWMutex
	reports map[string]*PageReport
}

// NewReportCache creates an empty report cache.
func NewReportCache() *ReportCache {
	return &ReportCache{
		reports: make(map[string]*PageReport),
	}
}

// Load returns the report at path, decoding it from disk on first use.
func (c *ReportCache) Load(path string) (*PageReport, error) {
	c.mu.RLock()
	if r, ok := c.reports[path]; ok {
		c.mu.RUnlock()
		return r, nil
	}
	c.mu.RUnlock()

	r, err := LoadFile(path)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.reports[path] = r
	c.mu.Unlock()

	return r, nil
}

// Evict removes the report cached for path, if any.
func (c *ReportCache) Evict(path string) {
	c.mu.Lock()
	delete(c.reports, path)
	c.mu.Unlock()
}

// Clear removes every cached report.
func (c *ReportCache) Clear() {
	c.mu.Lock()
	c.reports = make(map[string]*PageReport)
	c.mu.Unlock()
}

// Len returns the number of cached reports.
func (c *ReportCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.reports)
}

// LoadFile reads and decodes a page report from path.
func LoadFile(path string) (*PageReport, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open report: %w", err)
	}
	defer f.Close()

	r, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return r, nil
}

// Decode reads a page report from r. Both the object form
// {"results": [...]} and a bare array of findings are accepted.
func Decode(r io.Reader) (*PageReport, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read report: %w", err)
	}

	var report PageReport
	if err := json.Unmarshal(data, &report); err == nil {
		if report.Results == nil {
			report.Results = []Finding{}
		}
		return &report, nil
	}

	var results []Finding
	if err := json.Unmarshal(data, &results); err != nil {
		return nil, fmt.Errorf("failed to decode report: %w", err)
	}
	return &PageReport{Results: results}, nil
}
