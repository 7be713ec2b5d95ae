package constants

import (
	"fmt"
	"strings"
)

// Depth selects how far the pipeline runs for one document.
type Depth string

const (
	DepthClassify Depth = "classify" // classifier only
	DepthExtract  Depth = "extract"  // extractors only, no classification
	DepthAll      Depth = "all"      // classify, extract, validate, compliance, persist
)

// ParseDepth maps a caller-supplied string to a Depth. Empty input
// defaults to DepthAll, matching the processing endpoint's behavior.
func ParseDepth(input string) (Depth, error) {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "":
		return DepthAll, nil
	case string(DepthClassify):
		return DepthClassify, nil
	case string(DepthExtract):
		return DepthExtract, nil
	case string(DepthAll):
		return DepthAll, nil
	default:
		return "", fmt.Errorf("unknown depth: %q", input)
	}
}
