package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Apurer/go-gin-storefront/internal/domains/textgen/ports"
	platformobs "github.com/Apurer/go-gin-storefront/internal/platform/observability"
)

var (
	ErrInvalidInput = errors.New("invalid text generation input")
	// ErrUpstreamUnavailable wraps failures of the text generation provider.
	ErrUpstreamUnavailable = errors.New("text generation unavailable")
)

// Service writes product copy and sales narratives, with canned text when no provider is wired.
type Service struct {
	generator ports.Generator
	logger    *slog.Logger
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewService accepts a nil generator, in which case every call returns fallback text.
func NewService(generator ports.Generator, opts ...Option) *Service {
	s := &Service{generator: generator, logger: platformobs.DiscardLogger()}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// ProductDescription never fails on provider errors; it logs them and returns the fallback copy.
func (s *Service) ProductDescription(ctx context.Context, name, category string) (string, error) {
	name, category = strings.TrimSpace(name), strings.TrimSpace(category)
	if name == "" {
		return "", fmt.Errorf("%w: product name is required", ErrInvalidInput)
	}
	if s.generator == nil {
		s.logger.WarnContext(ctx, "text generation not configured, returning fallback description")
		return FallbackDescription(name, category), nil
	}
	text, err := s.generator.GenerateText(ctx, DescriptionPrompt(name, category))
	if err != nil {
		s.logger.ErrorContext(ctx, "description generation failed", slog.String("product.name", name), slog.String("error", err.Error()))
		return FallbackDescription(name, category), nil
	}
	return text, nil
}

// SalesSummary returns fallback text only when unconfigured; provider failures surface as ErrUpstreamUnavailable.
func (s *Service) SalesSummary(ctx context.Context, figures ports.SalesFigures) (string, error) {
	if s.generator == nil {
		return FallbackSalesSummary(figures), nil
	}
	text, err := s.generator.GenerateText(ctx, SalesSummaryPrompt(figures))
	if err != nil {
		s.logger.ErrorContext(ctx, "sales summary generation failed", slog.String("error", err.Error()))
		return "", fmt.Errorf("%w: failed to generate sales summary: %s", ErrUpstreamUnavailable, err.Error())
	}
	return text, nil
}

func FallbackDescription(name, category string) string {
	return fmt.Sprintf("[MOCK AI] Experience the ultimate %s with the new %s. Designed for performance and style. (Real AI requires GEMINI_API_KEY in .env)", category, name)
}

func FallbackSalesSummary(figures ports.SalesFigures) string {
	top := "None"
	if len(figures.TopSelling) > 0 {
		top = figures.TopSelling[0]
	}
	return fmt.Sprintf("[MOCK AI SUMMARY] Revenue: $%s. Top Item: %s. (Add GEMINI_API_KEY for real insights)", figures.TotalRevenue.String(), top)
}

func DescriptionPrompt(name, category string) string {
	return fmt.Sprintf("Write a compelling, professional, and exciting 2-sentence product description for a product name %q in the category %q. Highlight its key benefits using persuasive sales language.", name, category)
}

func SalesSummaryPrompt(figures ports.SalesFigures) string {
	var sb strings.Builder
	sb.WriteString("Act as a Retail Manager. Analyze this sales data for the week:\n")
	fmt.Fprintf(&sb, "- Total Revenue: $%s\n", figures.TotalRevenue.String())
	fmt.Fprintf(&sb, "- Total Orders: %d\n", figures.TotalOrders)
	fmt.Fprintf(&sb, "- Top Selling Products: %s\n", strings.Join(figures.TopSelling, ", "))
	fmt.Fprintf(&sb, "- Low Stock Alerts: %s\n\n", strings.Join(figures.LowStock, ", "))
	sb.WriteString("Write a concise 3-bullet point summary for the store owner.\n")
	sb.WriteString("1. Revenue Insight\n2. Inventory Action Item\n3. Sales Trend\n")
	return sb.String()
}

var _ ports.Service = (*Service)(nil)
