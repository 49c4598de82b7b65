package layers

import (
	"context"

	"Hermes/internal/domain/models"
	domsvc "Hermes/internal/domain/service"
)

// GeoPolitical stays neutral until macro and regulatory event feeds exist.
type GeoPolitical struct {
	cfg Config
}

func NewGeoPolitical(cfg Config) *GeoPolitical { return &GeoPolitical{cfg: cfg} }

func (l *GeoPolitical) Name() string { return NameGeoPolitical }

func (l *GeoPolitical) Run(ctx context.Context) (models.LayerOutput, error) {
	return Neutral(l.cfg, l.Name(), ""), nil
}

// Sentiment stays neutral until fear/greed and social inputs exist.
type Sentiment struct {
	cfg Config
}

func NewSentiment(cfg Config) *Sentiment { return &Sentiment{cfg: cfg} }

func (l *Sentiment) Name() string { return NameSentiment }

func (l *Sentiment) Run(ctx context.Context) (models.LayerOutput, error) {
	return Neutral(l.cfg, l.Name(), ""), nil
}

var (
	_ domsvc.Layer = (*GeoPolitical)(nil)
	_ domsvc.Layer = (*Sentiment)(nil)
)
