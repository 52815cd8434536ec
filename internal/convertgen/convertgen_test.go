package convertgen

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alphabetz/alphabetz/internal/llm"
)

func testRequest() Request {
	return Request{
		SourceSentence:   "She walks the dog.",
		TargetTenseTitle: "Past Continuous Tense",
		TargetVoice:      "Passive Voice",
		TargetForm:       "Negative",
	}
}

func TestRequestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Request)
		ok     bool
	}{
		{"complete", func(*Request) {}, true},
		{"blank sentence", func(r *Request) { r.SourceSentence = "   " }, false},
		{"no tense", func(r *Request) { r.TargetTenseTitle = "" }, false},
		{"no voice", func(r *Request) { r.TargetVoice = "" }, false},
		{"no form", func(r *Request) { r.TargetForm = "" }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := testRequest()
			tt.mutate(&r)
			err := r.Validate()
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrMissingParameters)
			}
		})
	}
}

func TestBuildPrompt(t *testing.T) {
	r := testRequest()
	r.SourceSentence = "  She walks the dog.  "
	p := BuildPrompt(r)
	assert.Contains(t, p, `Source Sentence: "She walks the dog."`)
	assert.Contains(t, p, "Target Tense: Past Continuous Tense")
	assert.Contains(t, p, "Target Voice: Passive Voice")
	assert.Contains(t, p, "Target Form: Negative")
}

func TestConvert(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockJSON(`{
		"convertedSentence": "The dog was not being walked by her.",
		"structure": "Object + was/were + not + being + V3",
		"explanation": "Passive continuous uses being plus the past participle."
	}`))
	c := New(mock)

	res, err := c.Convert(context.Background(), testRequest())
	require.NoError(t, err)
	assert.Equal(t, "The dog was not being walked by her.", res.ConvertedSentence)
	assert.Equal(t, "Object + was/were + not + being + V3", res.Structure)

	require.Equal(t, 1, mock.CallCount())
	assert.Equal(t, []string{llm.PurposeConversion}, mock.Purposes)
	assert.Same(t, ConversionSchema, mock.Calls[0].Schema)
}

func TestConvert_IncompleteResult(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockJSON(`{
		"convertedSentence": "The dog was not being walked by her.",
		"structure": "",
		"explanation": "x"
	}`))
	_, err := New(mock).Convert(context.Background(), testRequest())
	assert.ErrorIs(t, err, ErrIncompleteResult)
}

func TestConvert_MissingParametersMakesNoCall(t *testing.T) {
	mock := llm.NewMockProvider()
	r := testRequest()
	r.TargetForm = ""
	_, err := New(mock).Convert(context.Background(), r)
	assert.ErrorIs(t, err, ErrMissingParameters)
	assert.Equal(t, 0, mock.CallCount())
}

func TestConvert_RateLimitSurfaces(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Err: &llm.ErrRateLimit{Err: errors.New("429")}})
	_, err := New(mock).Convert(context.Background(), testRequest())
	assert.True(t, llm.IsRateLimited(err), "got %v", err)
}

func TestParseResult(t *testing.T) {
	_, err := ParseResult([]byte(`not json`))
	assert.Error(t, err)

	_, err = ParseResult([]byte(`{"convertedSentence": "x", "explanation": "y"}`))
	assert.ErrorIs(t, err, ErrIncompleteResult)
}

func TestConvert_MissingFieldIsIncomplete(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockJSON(`{"convertedSentence": "a", "explanation": "c"}`),
		llm.MockJSON(`{"convertedSentence": "a", "structure": "b", "explanation": "c"}`),
	)
	_, err := New(mock).Convert(context.Background(), testRequest())
	assert.ErrorIs(t, err, ErrIncompleteResult)

	var inv *llm.ErrInvalidResponse
	assert.ErrorAs(t, err, &inv, "schema failure stays in the message")
	assert.Equal(t, 1, mock.CallCount())
}

func TestConvert_MalformedJSONIsNotIncomplete(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockJSON(`{"convertedSentence": `))
	_, err := New(mock).Convert(context.Background(), testRequest())
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrIncompleteResult)

	var inv *llm.ErrInvalidResponse
	assert.ErrorAs(t, err, &inv)
}
