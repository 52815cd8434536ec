package questiongen

import (
	"encoding/json"
	"fmt"
)

// wireQuestion is the flat JSON shape shared by the model output, the
// gateway response and the client.
type wireQuestion struct {
	ID               int      `json:"id"`
	Type             Type     `json:"type"`
	SourceSentence   string   `json:"sourceSentence,omitempty"`
	TargetTense      string   `json:"targetTense,omitempty"`
	TargetVoice      string   `json:"targetVoice,omitempty"`
	SentenceTemplate string   `json:"sentenceTemplate,omitempty"`
	Sentence         string   `json:"sentence,omitempty"`
	Options          []string `json:"options,omitempty"`
	CorrectAnswer    string   `json:"correctAnswer"`
	Explanation      string   `json:"explanation"`
}

func toWire(q Question) wireQuestion {
	w := wireQuestion{
		ID:            q.QuestionID(),
		Type:          q.Type(),
		CorrectAnswer: q.Answer(),
		Explanation:   q.Explain(),
	}
	switch q := q.(type) {
	case Conversion:
		w.SourceSentence = q.SourceSentence
		w.TargetTense = q.TargetTense
		w.TargetVoice = q.TargetVoice
	case FillInBlank:
		w.SentenceTemplate = q.SentenceTemplate
	case MultipleChoice:
		w.Sentence = q.Sentence
		w.Options = q.Options
	}
	return w
}

func (w wireQuestion) question() (Question, error) {
	base := Base{ID: w.ID, CorrectAnswer: w.CorrectAnswer, Explanation: w.Explanation}
	var q Question
	switch w.Type {
	case TypeConversion:
		q = Conversion{Base: base, SourceSentence: w.SourceSentence, TargetTense: w.TargetTense, TargetVoice: w.TargetVoice}
	case TypeFillInBlank:
		q = FillInBlank{Base: base, SentenceTemplate: w.SentenceTemplate}
	case TypeMultipleChoice:
		q = MultipleChoice{Base: base, Sentence: w.Sentence, Options: w.Options}
	default:
		return nil, fmt.Errorf("question %d: unknown type %q", w.ID, w.Type)
	}
	if err := q.validate(); err != nil {
		return nil, fmt.Errorf("question %d: %w", w.ID, err)
	}
	return q, nil
}

// Batch is a list of questions with the tagged JSON encoding.
type Batch []Question

func (b Batch) MarshalJSON() ([]byte, error) {
	out := make([]wireQuestion, len(b))
	for i, q := range b {
		out[i] = toWire(q)
	}
	return json.Marshal(out)
}

// UnmarshalJSON keeps the valid items and drops the rest.
func (b *Batch) UnmarshalJSON(data []byte) error {
	qs, _, err := ParseBatch(data)
	if err != nil {
		return err
	}
	*b = qs
	return nil
}

// ParseBatch decodes a JSON array of questions. Items that are not a known
// variant or miss a required field are skipped and reported in dropped. A
// body that is not a JSON array is an error.
func ParseBatch(data []byte) (qs Batch, dropped []error, err error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, nil, fmt.Errorf("decode question batch: %w", err)
	}
	qs = make(Batch, 0, len(raw))
	for i, item := range raw {
		var w wireQuestion
		if err := json.Unmarshal(item, &w); err != nil {
			dropped = append(dropped, fmt.Errorf("item %d: %w", i, err))
			continue
		}
		q, err := w.question()
		if err != nil {
			dropped = append(dropped, err)
			continue
		}
		qs = append(qs, q)
	}
	return qs, dropped, nil
}
