package application

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Apurer/go-gin-storefront/internal/domains/textgen/ports"
)

type stubGenerator struct {
	text   string
	err    error
	prompt string
}

func (g *stubGenerator) GenerateText(_ context.Context, prompt string) (string, error) {
	g.prompt = prompt
	return g.text, g.err
}

func TestProductDescription_Unconfigured(t *testing.T) {
	text, err := NewService(nil).ProductDescription(context.Background(), "Aero Bottle", "Outdoor")
	require.NoError(t, err)
	assert.Equal(t, "[MOCK AI] Experience the ultimate Outdoor with the new Aero Bottle. Designed for performance and style. (Real AI requires GEMINI_API_KEY in .env)", text)
}

func TestProductDescription_FailureFallsBack(t *testing.T) {
	gen := &stubGenerator{err: errors.New("quota exceeded")}
	text, err := NewService(gen).ProductDescription(context.Background(), "Lamp", "Home")
	require.NoError(t, err)
	assert.Equal(t, FallbackDescription("Lamp", "Home"), text)
}

func TestProductDescription_UsesGenerator(t *testing.T) {
	gen := &stubGenerator{text: "Bright. Beautiful."}
	text, err := NewService(gen).ProductDescription(context.Background(), "Lamp", "Home")
	require.NoError(t, err)
	assert.Equal(t, "Bright. Beautiful.", text)
	assert.Contains(t, gen.prompt, `"Lamp"`)
	assert.Contains(t, gen.prompt, "2-sentence")
}

func TestProductDescription_RequiresName(t *testing.T) {
	_, err := NewService(nil).ProductDescription(context.Background(), " ", "Home")
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestSalesSummary_Unconfigured(t *testing.T) {
	svc := NewService(nil)
	text, err := svc.SalesSummary(context.Background(), ports.SalesFigures{TotalRevenue: decimal.RequireFromString("60"), TopSelling: []string{"Lamp (4 sold)"}})
	require.NoError(t, err)
	assert.Equal(t, "[MOCK AI SUMMARY] Revenue: $60. Top Item: Lamp (4 sold). (Add GEMINI_API_KEY for real insights)", text)

	text, err = svc.SalesSummary(context.Background(), ports.SalesFigures{TotalRevenue: decimal.Zero})
	require.NoError(t, err)
	assert.Contains(t, text, "Top Item: None.")
}

func TestSalesSummary_FailureSurfaces(t *testing.T) {
	gen := &stubGenerator{err: errors.New("timeout")}
	_, err := NewService(gen).SalesSummary(context.Background(), ports.SalesFigures{})
	require.ErrorIs(t, err, ErrUpstreamUnavailable)
	assert.Contains(t, err.Error(), "failed to generate sales summary: timeout")
}

func TestSalesSummaryPrompt(t *testing.T) {
	prompt := SalesSummaryPrompt(ports.SalesFigures{
		TotalRevenue: decimal.RequireFromString("12.5"),
		TotalOrders:  3,
		TopSelling:   []string{"A (2 sold)", "B (1 sold)"},
		LowStock:     []string{"C (1 left)"},
	})
	assert.Contains(t, prompt, "Total Revenue: $12.5")
	assert.Contains(t, prompt, "Top Selling Products: A (2 sold), B (1 sold)")
	assert.Contains(t, prompt, "Low Stock Alerts: C (1 left)")
	assert.Contains(t, prompt, "3-bullet")
}
