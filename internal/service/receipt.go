package service

import (
	"context"
	"encoding/base64"
	"strings"

	"github.com/fundboard/fundboard/internal/domain"
	"github.com/fundboard/fundboard/internal/ocr"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// ReceiptService turns receipt images into expense drafts via an OCR
// provider. It never writes records.
type ReceiptService struct {
	provider ocr.Provider
	planRepo domain.PlanRepository
	guard    *AccessGuard
}

// NewReceiptService creates a new receipt service
func NewReceiptService(provider ocr.Provider, planRepo domain.PlanRepository, guard *AccessGuard) *ReceiptService {
	return &ReceiptService{
		provider: provider,
		planRepo: planRepo,
		guard:    guard,
	}
}

// Scan parses a receipt image and suggests an expense draft (any member).
// The suggested plan type is matched against the workspace's existing plan
// types and falls back to "other".
func (s *ReceiptService) Scan(ctx context.Context, userID, workspaceID uuid.UUID, input domain.ReceiptScan) (*domain.ReceiptDraft, error) {
	if _, _, err := s.guard.RequireMember(ctx, workspaceID, userID); err != nil {
		return nil, err
	}

	if s.provider == nil || !s.provider.IsConfigured() {
		return nil, domain.ErrInternal("receipt scanning is not available")
	}

	image, err := base64.StdEncoding.DecodeString(input.Image)
	if err != nil {
		return nil, domain.ErrFieldValidation("invalid image", map[string][]string{
			"image": {"image must be base64 encoded"},
		})
	}

	receipt, err := s.provider.ParseReceipt(ctx, image, input.MimeType)
	if err != nil {
		log.Error().Err(err).Str("workspace_id", workspaceID.String()).Msg("receipt parsing failed")
		return nil, domain.ErrInternal("failed to parse receipt")
	}

	draft := &domain.ReceiptDraft{
		Amount:            receipt.Amount,
		Date:              receipt.Date,
		Note:              receipt.Merchant,
		SuggestedPlanType: domain.PlanTypeOther,
	}

	if receipt.Category != "" {
		if planType, ok := s.matchPlanType(ctx, workspaceID, receipt.Category); ok {
			draft.SuggestedPlanType = planType
		}
	}

	return draft, nil
}

// matchPlanType case-insensitively matches the provider's category guess
// against existing plan types.
func (s *ReceiptService) matchPlanType(ctx context.Context, workspaceID uuid.UUID, category string) (string, bool) {
	types, err := s.planRepo.ListTypes(ctx, workspaceID)
	if err != nil {
		log.Warn().Err(err).Msg("failed to list plan types for receipt match")
		return "", false
	}

	for _, t := range types {
		if strings.EqualFold(t, category) {
			return t, true
		}
	}

	return "", false
}
