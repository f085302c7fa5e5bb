package planner

import (
	"context"
	"log"

	"tripcart/genai"
	"tripcart/guides"
	"tripcart/models"
)

// Service runs the four-stage generation pipeline: assemble prompt, request,
// normalize, reconcile. Stages run strictly in order, once per request.
type Service struct {
	Guides *guides.Store
	AI     *genai.Client
}

func NewService(g *guides.Store, ai *genai.Client) *Service {
	return &Service{Guides: g, AI: ai}
}

// Generate produces a finalized plan for the trip, or no plan at all: a
// failure at any stage yields only the error.
func (s *Service) Generate(ctx context.Context, info models.TravelInfo) (*models.ShoppingPlan, error) {
	excerpt := ""
	if s.Guides != nil {
		excerpt = s.Guides.Excerpt(info)
	}
	prompt := BuildPrompt(info, excerpt)

	raw, err := s.AI.GenerateText(ctx, prompt)
	if err != nil {
		return nil, err
	}

	plan, err := Normalize(raw, info.Budget)
	if err != nil {
		log.Printf("plan normalize failed for %s: %v", info.Destination, err)
		return nil, err
	}

	Reconcile(plan, info)
	return plan, nil
}
