package ports

import (
	"context"

	"github.com/aretw0/automata/pkg/domain"
)

// ShapeRecognizer classifies a hand-drawn stroke.
// Implementations live outside this module (typically an ML model on the device);
// editor.ApplyStroke applies the recognized shape.
type ShapeRecognizer interface {
	Recognize(ctx context.Context, stroke domain.Stroke) (domain.Shape, error)
}
