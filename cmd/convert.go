package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/alphabetz/alphabetz/internal/converter"
	"github.com/alphabetz/alphabetz/internal/tenses"
)

var convertCmd = &cobra.Command{
	Use:   "convert <sentence>",
	Short: "Convert a sentence into another tense, voice and form",
	Example: `  alphabetz convert "She writes a letter." --tense past-perfect --voice passive --form negative`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tenseID, _ := cmd.Flags().GetString("tense")
		voiceVal, _ := cmd.Flags().GetString("voice")
		formVal, _ := cmd.Flags().GetString("form")

		in, err := conversionInput(strings.Join(args, " "), tenseID, voiceVal, formVal)
		if err != nil {
			return err
		}

		events, closeStore := optionalEvents(cmd)
		defer closeStore()
		b, err := buildBackends(cmd.Context(), cmd, events)
		if err != nil {
			return fmt.Errorf("LLM provider: %w", err)
		}

		ctrl := converter.New()
		ctrl.Input = in
		ctrl.Step = converter.TotalSteps
		req, token, err := ctrl.Begin()
		if err != nil {
			return err
		}

		fmt.Printf("Converting to %s (%s, %s)...\n\n", req.TargetTenseTitle, req.TargetVoice, req.TargetForm)
		res, convErr := b.Converter.Convert(cmd.Context(), req)
		ctrl.Finish(token, res, convErr)
		if convErr != nil {
			return errors.New(ctrl.Error())
		}

		out := ctrl.Result()
		fmt.Println(out.ConvertedSentence)
		fmt.Println()
		fmt.Printf("Structure:   %s\n", out.Structure)
		fmt.Printf("Explanation: %s\n", out.Explanation)
		return nil
	},
}

// conversionInput maps CLI values onto the converter wizard's choices.
func conversionInput(sentence, tenseID, voice, form string) (converter.Input, error) {
	tmpl, ok := tenses.Get(tenseID)
	if !ok {
		return converter.Input{}, fmt.Errorf("unknown tense %q (see alphabetz tenses)", tenseID)
	}
	time, aspect, _ := strings.Cut(tmpl.ID, "-")

	var in converter.Input
	in.Time = time
	in.Aspect = strings.ReplaceAll(aspect, "-", " ")
	in.Sentence = sentence

	switch strings.ToLower(voice) {
	case "active", "active voice":
		in.Voice = converter.VoiceChoices[0]
	case "passive", "passive voice":
		in.Voice = converter.VoiceChoices[1]
	default:
		return converter.Input{}, fmt.Errorf("invalid voice %q: must be active or passive", voice)
	}

	for _, f := range converter.FormChoices {
		if strings.EqualFold(f, form) || (strings.EqualFold(form, "question") && f == string(tenses.FormInterrogative)) {
			in.Form = f
		}
	}
	if in.Form == "" {
		return converter.Input{}, fmt.Errorf("invalid form %q: must be affirmative, negative or interrogative", form)
	}
	return in, nil
}

func init() {
	convertCmd.Flags().StringP("tense", "t", "present-simple", "Target tense id (e.g. past-perfect)")
	convertCmd.Flags().String("voice", "active", "Target voice: active or passive")
	convertCmd.Flags().String("form", "affirmative", "Target form: affirmative, negative or interrogative")
}
