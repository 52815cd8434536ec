package questiongen

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// Type tags a question variant on the wire.
type Type string

const (
	TypeConversion     Type = "conversion"
	TypeFillInBlank    Type = "fill-in-the-blank"
	TypeMultipleChoice Type = "multiple-choice"
)

// Types lists every question type in display order.
func Types() []Type {
	return []Type{TypeConversion, TypeFillInBlank, TypeMultipleChoice}
}

// Label is the short name shown in menus.
func (t Type) Label() string {
	switch t {
	case TypeConversion:
		return "Conversion"
	case TypeFillInBlank:
		return "Fill-in-Blank"
	case TypeMultipleChoice:
		return "Recognition"
	}
	return string(t)
}

// Question is one practice item. The concrete type is always one of
// Conversion, FillInBlank or MultipleChoice.
type Question interface {
	QuestionID() int
	Type() Type
	Answer() string
	Explain() string

	validate() error
	withID(id int) Question
}

// Base holds the fields shared by every variant.
type Base struct {
	ID            int
	CorrectAnswer string
	Explanation   string
}

func (b Base) QuestionID() int { return b.ID }
func (b Base) Answer() string  { return b.CorrectAnswer }
func (b Base) Explain() string { return b.Explanation }

func (b Base) validate() error {
	if strings.TrimSpace(b.CorrectAnswer) == "" {
		return errors.New("correctAnswer is empty")
	}
	if strings.TrimSpace(b.Explanation) == "" {
		return errors.New("explanation is empty")
	}
	return nil
}

// Conversion asks the learner to rewrite SourceSentence in another tense and
// voice. CorrectAnswer is the full converted sentence.
type Conversion struct {
	Base
	SourceSentence string
	TargetTense    string
	TargetVoice    string
}

func (Conversion) Type() Type { return TypeConversion }

func (q Conversion) validate() error {
	if q.SourceSentence == "" || q.TargetTense == "" || q.TargetVoice == "" {
		return errors.New("conversion needs sourceSentence, targetTense and targetVoice")
	}
	return q.Base.validate()
}

func (q Conversion) withID(id int) Question {
	q.ID = id
	return q
}

// FillInBlank shows SentenceTemplate with the base verb in parentheses, e.g.
// "They ___ (live) in Paris." CorrectAnswer is the conjugated verb only.
type FillInBlank struct {
	Base
	SentenceTemplate string
}

func (FillInBlank) Type() Type { return TypeFillInBlank }

func (q FillInBlank) validate() error {
	if q.SentenceTemplate == "" {
		return errors.New("fill-in-the-blank needs sentenceTemplate")
	}
	return q.Base.validate()
}

func (q FillInBlank) withID(id int) Question {
	q.ID = id
	return q
}

// VerbHint returns the verb between the first pair of parentheses, or "".
func (q FillInBlank) VerbHint() string {
	_, verb, _ := q.split()
	return verb
}

// Parts returns the template text before and after the "(verb)" slot. A
// "___" placeholder directly before the slot is dropped since the input
// field takes its place.
func (q FillInBlank) Parts() (before, after string) {
	before, _, after = q.split()
	before = strings.TrimRight(before, " ")
	before = strings.TrimRight(strings.TrimSuffix(before, "___"), " ")
	return before, strings.TrimLeft(after, " ")
}

func (q FillInBlank) split() (before, verb, after string) {
	open := strings.Index(q.SentenceTemplate, "(")
	if open < 0 {
		return q.SentenceTemplate, "", ""
	}
	end := strings.Index(q.SentenceTemplate[open:], ")")
	if end < 0 {
		return q.SentenceTemplate, "", ""
	}
	end += open
	return q.SentenceTemplate[:open], q.SentenceTemplate[open+1 : end], q.SentenceTemplate[end+1:]
}

// MultipleChoice asks which tense Sentence is in. Options has exactly four
// tense names and CorrectAnswer is one of them verbatim.
type MultipleChoice struct {
	Base
	Sentence string
	Options  []string
}

func (MultipleChoice) Type() Type { return TypeMultipleChoice }

func (q MultipleChoice) validate() error {
	if q.Sentence == "" {
		return errors.New("multiple-choice needs sentence")
	}
	if len(q.Options) != 4 {
		return fmt.Errorf("multiple-choice needs 4 options, got %d", len(q.Options))
	}
	if !slices.Contains(q.Options, q.CorrectAnswer) {
		return fmt.Errorf("correctAnswer %q is not one of the options", q.CorrectAnswer)
	}
	return q.Base.validate()
}

func (q MultipleChoice) withID(id int) Question {
	q.ID = id
	q.Options = slices.Clone(q.Options)
	return q
}

// Validate reports whether q carries its variant's required fields.
func Validate(q Question) error {
	if q == nil {
		return errors.New("nil question")
	}
	return q.validate()
}
