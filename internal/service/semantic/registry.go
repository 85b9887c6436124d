// Package semantic loads the semantic layer registry and answers catalog
// queries over its measures and dimensions.
package semantic

import (
	"bufio"
	"encoding/json"
	"log/slog"
	"os"
	"sort"
	"strings"

	"finsight/internal/domain"
)

// sampleItemCount is how many items a cube summary previews.
const sampleItemCount = 5

// Registry owns the semantic items loaded from a JSONL source. Immutable
// after Load; safe for concurrent reads.
type Registry struct {
	items []domain.SemanticItem
	cubes []string // distinct cube names in encounter order
}

// rawItem mirrors one JSONL line. Variants may be a JSON array, a
// comma-separated string, or the literal "None".
type rawItem struct {
	Name     string          `json:"name"`
	Group    string          `json:"group"`
	CubeName string          `json:"cube_name"`
	Variants json.RawMessage `json:"variants"`
	Hint     string          `json:"hint"`
}

// Load reads the semantic layer from a line-delimited JSON file. A missing or
// unreadable file fails with RegistryLoadError; lines that do not parse are
// skipped with a warning.
func Load(path string, logger *slog.Logger) (*Registry, error) {
	if logger == nil {
		logger = slog.Default()
	}

	f, err := os.Open(path) //nolint:gosec // path comes from config
	if err != nil {
		return nil, &domain.RegistryLoadError{Path: path, Err: err}
	}
	defer f.Close() //nolint:errcheck

	reg := &Registry{}
	seen := map[string]bool{}
	skipped := 0

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		var raw rawItem
		if err := json.Unmarshal([]byte(line), &raw); err != nil {
			logger.Warn("skipping malformed semantic entry", "line", lineNo, "error", err)
			skipped++
			continue
		}

		item := domain.SemanticItem{
			Name:     raw.Name,
			Group:    raw.Group,
			CubeName: raw.CubeName,
			Variants: parseVariants(raw.Variants),
			Hint:     raw.Hint,
		}
		reg.items = append(reg.items, item)
		if !seen[item.CubeName] {
			seen[item.CubeName] = true
			reg.cubes = append(reg.cubes, item.CubeName)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, &domain.RegistryLoadError{Path: path, Err: err}
	}

	logger.Info("semantic layer loaded",
		"path", path, "items", len(reg.items), "cubes", len(reg.cubes), "skipped", skipped)
	return reg, nil
}

// parseVariants accepts a JSON array of strings or a comma-separated string.
// Absent values and the legacy "None" marker yield nil.
func parseVariants(raw json.RawMessage) []string {
	if len(raw) == 0 {
		return nil
	}

	var list []string
	if err := json.Unmarshal(raw, &list); err == nil {
		if len(list) == 0 {
			return nil
		}
		return list
	}

	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil
	}
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "none") {
		return nil
	}
	var out []string
	for _, v := range strings.Split(s, ",") {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// Search returns every item whose name, hint, or cube name contains the query
// case-insensitively. The optional cube and group filters are exact,
// case-insensitive matches.
func (r *Registry) Search(query, cube, group string) []domain.SemanticItem {
	q := strings.ToLower(query)

	results := []domain.SemanticItem{}
	for _, item := range r.items {
		if cube != "" && !strings.EqualFold(item.CubeName, cube) {
			continue
		}
		if group != "" && !strings.EqualFold(item.Group, group) {
			continue
		}
		if strings.Contains(strings.ToLower(item.Name), q) ||
			strings.Contains(strings.ToLower(item.Hint), q) ||
			strings.Contains(strings.ToLower(item.CubeName), q) {
			results = append(results, item)
		}
	}
	return results
}

// ListCubes summarizes every cube, sorted by total item count descending.
// Ties keep encounter order.
func (r *Registry) ListCubes() []domain.CubeSummary {
	byCube := map[string]*domain.CubeSummary{}
	for _, name := range r.cubes {
		byCube[name] = &domain.CubeSummary{CubeName: name, SampleItems: []domain.SemanticItem{}}
	}
	for _, item := range r.items {
		s := byCube[item.CubeName]
		s.TotalItems++
		if item.Group == domain.GroupMeasures {
			s.MeasuresCount++
		} else {
			s.DimensionsCount++
		}
		if len(s.SampleItems) < sampleItemCount {
			s.SampleItems = append(s.SampleItems, item)
		}
	}

	summaries := make([]domain.CubeSummary, 0, len(r.cubes))
	for _, name := range r.cubes {
		summaries = append(summaries, *byCube[name])
	}
	sort.SliceStable(summaries, func(i, j int) bool {
		return summaries[i].TotalItems > summaries[j].TotalItems
	})
	return summaries
}

// CubeDetails partitions a cube's items into measures and dimensions.
// Returns nil — not an error — when the cube is unknown.
func (r *Registry) CubeDetails(name string) *domain.CubeDetail {
	detail := &domain.CubeDetail{
		CubeName:   name,
		Measures:   []domain.SemanticItem{},
		Dimensions: []domain.SemanticItem{},
	}
	for _, item := range r.items {
		if !strings.EqualFold(item.CubeName, name) {
			continue
		}
		detail.TotalItems++
		if item.Group == domain.GroupMeasures {
			detail.Measures = append(detail.Measures, item)
		} else {
			detail.Dimensions = append(detail.Dimensions, item)
		}
	}
	if detail.TotalItems == 0 {
		return nil
	}
	return detail
}

// Measures returns all measures, optionally filtered by cube.
func (r *Registry) Measures(cube string) []domain.SemanticItem {
	return r.byGroup(domain.GroupMeasures, cube)
}

// Dimensions returns all dimensions, optionally filtered by cube.
func (r *Registry) Dimensions(cube string) []domain.SemanticItem {
	return r.byGroup(domain.GroupDimensions, cube)
}

func (r *Registry) byGroup(group, cube string) []domain.SemanticItem {
	items := []domain.SemanticItem{}
	for _, item := range r.items {
		if item.Group != group {
			continue
		}
		if cube != "" && !strings.EqualFold(item.CubeName, cube) {
			continue
		}
		items = append(items, item)
	}
	return items
}
