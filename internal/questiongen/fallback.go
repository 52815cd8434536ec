package questiongen

import "math/rand/v2"

var fallbackQuestions = []Question{
	Conversion{
		Base: Base{
			ID:            1,
			CorrectAnswer: "The dog was being walked by her every morning.",
			Explanation:   "The structure must use: Subject + was/were + being + Past Participle (V3).",
		},
		SourceSentence: "She walks the dog every morning.",
		TargetTense:    "Past Continuous",
		TargetVoice:    "Passive",
	},
	FillInBlank{
		Base: Base{
			ID:            2,
			CorrectAnswer: "have been living",
			Explanation:   `The phrase "since 2018" requires the Present Perfect Continuous tense.`,
		},
		SentenceTemplate: "They ___ (live) in Paris since 2018, and they love the city.",
	},
	MultipleChoice{
		Base: Base{
			ID:            3,
			CorrectAnswer: "Past Perfect",
			Explanation:   `The structure uses "Had + Verb 3," which is the formula for the Past Perfect tense.`,
		},
		Sentence: "Had she finished the laundry before the phone rang?",
		Options:  []string{"Past Simple", "Past Perfect", "Present Perfect", "Future Continuous"},
	},
	Conversion{
		Base: Base{
			ID:            4,
			CorrectAnswer: "The essays will be graded by the teacher.",
			Explanation:   "The structure uses: Object + will be + Past Participle (V3).",
		},
		SourceSentence: "The teacher will grade the essays.",
		TargetTense:    "Future Simple",
		TargetVoice:    "Passive",
	},
	FillInBlank{
		Base: Base{
			ID:            5,
			CorrectAnswer: "has driven",
			Explanation:   `The duration "for ten years" combined with a completed action requires the Present Perfect Simple tense.`,
		},
		SentenceTemplate: "He ___ (drive) a truck for ten years.",
	},
}

// Fallback returns the fixed local question list.
func Fallback() []Question {
	out := make([]Question, len(fallbackQuestions))
	for i, q := range fallbackQuestions {
		out[i] = q.withID(q.QuestionID())
	}
	return out
}

// FallbackN returns the fallback list truncated or padded to n. Padding
// cycles through the list; padded copies get fresh ids.
func FallbackN(n int) []Question {
	return pad(nil, n)
}

// Resolve turns a generator result into exactly count questions: the first
// count generated items are kept and any shortfall is filled from the
// fallback list. When shuffle is set the result order is randomized.
func Resolve(generated []Question, count int, shuffle bool) []Question {
	if count <= 0 {
		return nil
	}
	if len(generated) > count {
		generated = generated[:count]
	}
	qs := pad(generated, count)
	if shuffle {
		rand.Shuffle(len(qs), func(i, j int) { qs[i], qs[j] = qs[j], qs[i] })
	}
	return qs
}

// pad copies qs and appends fallback questions until it has n items.
// Appended items are numbered after the highest id already present so ids
// stay unique within a session.
func pad(qs []Question, n int) []Question {
	out := make([]Question, 0, n)
	out = append(out, qs...)

	next := 0
	for _, q := range out {
		next = max(next, q.QuestionID())
	}
	for i := 0; len(out) < n; i++ {
		next++
		out = append(out, fallbackQuestions[i%len(fallbackQuestions)].withID(next))
	}
	return out
}
