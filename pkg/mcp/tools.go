package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/Sumatoshi-tech/boxoffice/pkg/analysis"
	"github.com/Sumatoshi-tech/boxoffice/pkg/boxoffice"
	"github.com/Sumatoshi-tech/boxoffice/pkg/movie"
)

// Tool name constants.
const (
	ToolNameAnalyze  = "boxoffice_analyze"
	ToolNameVariants = "boxoffice_variants"
)

// Sentinel errors for tool input validation.
var (
	// ErrNoAnalyzer indicates the server was built without an Analyzer.
	ErrNoAnalyzer = errors.New("analysis backend is not configured")
	// ErrInvalidDate indicates a week or reference argument is not a date.
	ErrInvalidDate = errors.New("date must be YYYYMMDD or YYYY-MM-DD")
	// ErrNegativeTop indicates a negative top argument.
	ErrNegativeTop = errors.New("top must not be negative")
)

// Defaults fill tool arguments the caller leaves out.
type Defaults struct {
	Family  movie.Family
	SortKey analysis.SortKey
	TopN    int
}

// AnalyzeInput is the input schema for the boxoffice_analyze tool.
type AnalyzeInput struct {
	Variants  []string `json:"variants,omitempty"  jsonschema:"variants to compute (default: all)"`
	Family    string   `json:"family,omitempty"    jsonschema:"credit family for entity-contribution: director company or distributor"`
	Sort      string   `json:"sort,omitempty"      jsonschema:"entity-contribution ranking: total efficiency or stability"`
	Top       int      `json:"top,omitempty"       jsonschema:"rows kept per result (default: server setting)"`
	Week      string   `json:"week,omitempty"      jsonschema:"any day of the week to analyze as YYYYMMDD (default: latest snapshot)"`
	Reference string   `json:"reference,omitempty" jsonschema:"title-age reference date as YYYYMMDD (default: last day of the week)"`
}

// VariantsInput is the input schema for the boxoffice_variants tool.
type VariantsInput struct{}

// VariantInfo describes one analysis variant.
type VariantInfo struct {
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
	Description string `json:"description"`
	Type        string `json:"type"`
}

// ToolOutput is a generic wrapper for tool results.
type ToolOutput struct {
	Data any `json:"data"`
}

func (s *Server) handleAnalyze(
	ctx context.Context, _ *mcpsdk.CallToolRequest, input AnalyzeInput,
) (*mcpsdk.CallToolResult, ToolOutput, error) {
	if s.analyzer == nil {
		return errorResult(ErrNoAnalyzer)
	}

	req, err := s.buildRequest(input)
	if err != nil {
		return errorResult(err)
	}

	rep, err := s.analyzer.Analyze(ctx, req)
	if err != nil {
		return errorResult(fmt.Errorf("analyze: %w", err))
	}

	return jsonResult(rep)
}

func handleVariants(
	_ context.Context, _ *mcpsdk.CallToolRequest, _ VariantsInput,
) (*mcpsdk.CallToolResult, ToolOutput, error) {
	all := analysis.Metrics()
	infos := make([]VariantInfo, 0, len(all))

	for _, m := range all {
		infos = append(infos, VariantInfo{
			Name:        m.Name(),
			DisplayName: m.DisplayName(),
			Description: m.Description(),
			Type:        m.Type(),
		})
	}

	return jsonResult(infos)
}

// buildRequest validates tool arguments and applies the server defaults.
func (s *Server) buildRequest(input AnalyzeInput) (boxoffice.Request, error) {
	req := boxoffice.Request{
		Params: analysis.Params{Family: s.defaults.Family, SortKey: s.defaults.SortKey},
		TopN:   s.defaults.TopN,
	}

	for _, name := range input.Variants {
		variant, err := analysis.ParseVariant(name)
		if err != nil {
			return req, err
		}

		req.Variants = append(req.Variants, variant)
	}

	if input.Family != "" {
		family, err := movie.ParseFamily(input.Family)
		if err != nil {
			return req, err
		}

		req.Params.Family = family
	}

	if input.Sort != "" {
		key, err := analysis.ParseSortKey(input.Sort)
		if err != nil {
			return req, err
		}

		req.Params.SortKey = key
	}

	switch {
	case input.Top < 0:
		return req, fmt.Errorf("%w: %d", ErrNegativeTop, input.Top)
	case input.Top > 0:
		req.TopN = input.Top
	}

	week, err := parseDate(input.Week)
	if err != nil {
		return req, fmt.Errorf("week: %w", err)
	}

	req.Week = week

	reference, err := parseDate(input.Reference)
	if err != nil {
		return req, fmt.Errorf("reference: %w", err)
	}

	req.Params.ReferenceDate = reference

	return req, nil
}

func parseDate(raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, nil
	}

	normalized := movie.ParseOpenDate(raw)
	if normalized == movie.UnknownOpenDate {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, raw)
	}

	return movie.ParseDate(normalized)
}

// errorResult builds a CallToolResult with isError set.
func errorResult(err error) (*mcpsdk.CallToolResult, ToolOutput, error) {
	return &mcpsdk.CallToolResult{
		Content: []mcpsdk.Content{
			&mcpsdk.TextContent{Text: err.Error()},
		},
		IsError: true,
	}, ToolOutput{}, nil
}

// jsonResult builds a CallToolResult with JSON-encoded content.
func jsonResult(value any) (*mcpsdk.CallToolResult, ToolOutput, error) {
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return errorResult(fmt.Errorf("encode result: %w", err))
	}

	return &mcpsdk.CallToolResult{
		Content: []mcpsdk.Content{
			&mcpsdk.TextContent{Text: string(data)},
		},
	}, ToolOutput{Data: value}, nil
}
