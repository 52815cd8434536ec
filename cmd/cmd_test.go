package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alphabetz/alphabetz/internal/converter"
	"github.com/alphabetz/alphabetz/internal/store"
)

func TestConversionInput(t *testing.T) {
	in, err := conversionInput("She writes.", "past-perfect-continuous", "Passive", "question")
	require.NoError(t, err)
	assert.Equal(t, converter.Input{
		Time:     "past",
		Aspect:   "perfect continuous",
		Voice:    "Passive Voice",
		Form:     "Interrogative",
		Sentence: "She writes.",
	}, in)

	ctrl := converter.New()
	ctrl.Input = in
	assert.Equal(t, "Past Perfect Continuous Tense", ctrl.TenseTitle())
}

func TestConversionInputRejects(t *testing.T) {
	_, err := conversionInput("x", "present-imaginary", "active", "negative")
	assert.Error(t, err)
	_, err = conversionInput("x", "present-simple", "middle", "negative")
	assert.Error(t, err)
	_, err = conversionInput("x", "present-simple", "active", "exclamatory")
	assert.Error(t, err)
}

func TestMCChoice(t *testing.T) {
	opts := []string{"Present Simple", "Past Simple", "Future Simple", "Past Perfect"}

	got, err := mcChoice("2", opts)
	require.NoError(t, err)
	assert.Equal(t, "Past Simple", got)

	got, err = mcChoice("past perfect", opts)
	require.NoError(t, err)
	assert.Equal(t, "Past Perfect", got)

	_, err = mcChoice("5", opts)
	assert.ErrorIs(t, err, errBadChoice)
	_, err = mcChoice("Future Perfect", opts)
	assert.ErrorIs(t, err, errBadChoice)
}

func TestFormatCost(t *testing.T) {
	assert.Equal(t, "$0.0030", formatCost(0.003))
	assert.Equal(t, "$1.25", formatCost(1.25))
}

func TestFailedEvents(t *testing.T) {
	events := []store.LLMEventRecord{
		{ID: 1, LLMRequestEventData: store.LLMRequestEventData{Success: true}},
		{ID: 2, LLMRequestEventData: store.LLMRequestEventData{ErrorMessage: "rate limited"}},
	}
	got := failedEvents(events)
	require.Len(t, got, 1)
	assert.Equal(t, 2, got[0].ID)
}

func TestPrintModelCostPartial(t *testing.T) {
	var buf bytes.Buffer
	printModelCost(&buf, []store.LLMUsage{
		{Model: "gemini-2.5-flash", Calls: 1, InputTokens: 1_000_000},
		{Model: "local-model", Calls: 2},
	})
	out := buf.String()
	assert.Contains(t, out, "$0.30")
	assert.Contains(t, out, "TOTAL (partial)")
	assert.Contains(t, out, "No pricing for: local-model")
}

func TestPrintEventMissingBodies(t *testing.T) {
	var buf bytes.Buffer
	printEvent(&buf, &store.LLMEventRecord{
		ID: 7,
		LLMRequestEventData: store.LLMRequestEventData{
			Purpose:      "sentence-conversion",
			ErrorMessage: "missing structure",
		},
	})
	out := buf.String()
	assert.Contains(t, out, "Purpose:   sentence-conversion")
	assert.Contains(t, out, "Error:     missing structure")
	assert.Equal(t, 2, bytes.Count(buf.Bytes(), []byte("(not captured)")))
	assert.NotContains(t, out, "Provider:")
}
