// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/pdiddy/minutes-engine/internal/container"
)

// DefaultMarkitdownImage is the conversion image run by MarkitdownExtractor.
const DefaultMarkitdownImage = "markitdown:latest"

// markitdownTimeout bounds a single container conversion.
const markitdownTimeout = 2 * time.Minute

// MarkitdownExtractor converts PDF and Word documents by piping them through
// the markitdown container image. Plain text is decoded in-process.
type MarkitdownExtractor struct {
	runtime container.Runtime
	image   string
}

// NewMarkitdownExtractor returns an extractor backed by rt. It verifies the
// image exists locally before returning.
func NewMarkitdownExtractor(rt container.Runtime, image string) (*MarkitdownExtractor, error) {
	if image == "" {
		image = DefaultMarkitdownImage
	}
	if err := rt.ImageExists(image); err != nil {
		return nil, fmt.Errorf("markitdown image not available in %s: %w", rt.Name(), err)
	}
	return &MarkitdownExtractor{runtime: rt, image: image}, nil
}

// Extract returns the container's output for supported document types, or ""
// when the type is unsupported or the container fails.
func (m *MarkitdownExtractor) Extract(data []byte, contentType string) string {
	switch Classify(contentType) {
	case KindPlain:
		return DecodePlain(data)
	case KindPDF, KindWord:
	default:
		return ""
	}

	ctx, cancel := context.WithTimeout(context.Background(), markitdownTimeout)
	defer cancel()

	var out bytes.Buffer
	if err := m.runtime.Run(ctx, m.image, bytes.NewReader(data), &out); err != nil {
		return ""
	}
	return strings.TrimSpace(DecodePlain(out.Bytes()))
}
