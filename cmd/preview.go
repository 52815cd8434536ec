package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/alphabetz/alphabetz/internal/questiongen"
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Preview generated practice questions in the terminal (no database)",
	Long: `Generate a question batch and answer it interactively.

This is a stateless developer tool: nothing is recorded. Useful for
evaluating question quality and prompt changes.`,
	RunE: runPreview,
}

func init() {
	previewCmd.Flags().StringSlice("tenses", []string{"present"}, "Tense categories (present, past, future)")
	previewCmd.Flags().StringSlice("forms", []string{"Affirmative"}, "Sentence forms")
	previewCmd.Flags().StringSlice("voices", []string{"Active"}, "Voices (Active, Passive)")
	previewCmd.Flags().StringSlice("types", []string{string(questiongen.TypeConversion)},
		"Question types (conversion, fill-in-the-blank, multiple-choice)")
	previewCmd.Flags().Int("count", 5, "Number of questions to generate")
}

func runPreview(cmd *cobra.Command, args []string) error {
	var s questiongen.Settings
	s.TenseCategories, _ = cmd.Flags().GetStringSlice("tenses")
	s.Forms, _ = cmd.Flags().GetStringSlice("forms")
	s.Voices, _ = cmd.Flags().GetStringSlice("voices")
	s.QuestionTypes, _ = cmd.Flags().GetStringSlice("types")
	s.QuestionCount, _ = cmd.Flags().GetInt("count")
	if err := s.Validate(); err != nil {
		return err
	}

	// No EventRepo; logging skipped.
	ctx := cmd.Context()
	b, err := buildBackends(ctx, cmd, nil)
	if err != nil {
		return fmt.Errorf("LLM provider: %w", err)
	}

	fmt.Printf("Generating %d questions...\n\n", s.QuestionCount)
	generated, err := b.Generator.Generate(ctx, s)
	if err != nil {
		fmt.Printf("Generation failed (%v); using offline questions.\n\n", err)
	}
	questions := questiongen.Resolve(generated, s.QuestionCount, false)

	scanner := bufio.NewScanner(os.Stdin)
	var correct, attempted int

	for i, q := range questions {
		fmt.Printf("── Question %d/%d (%s) ──\n", i+1, len(questions), q.Type().Label())
		printQuestion(q)

		answer, ok := readAnswer(scanner, q)
		if !ok {
			fmt.Println("\n(input closed)")
			break
		}
		if answer == "" {
			fmt.Println("(skipped)")
			fmt.Println()
			continue
		}

		attempted++
		if questiongen.CheckAnswer(answer, q) {
			correct++
			fmt.Println("\033[32m✓ Correct!\033[0m")
		} else {
			fmt.Printf("\033[31m✗ Wrong.\033[0m Answer: %s\n", q.Answer())
		}

		if q.Explain() != "" {
			fmt.Printf("Explanation: %s\n", q.Explain())
		}
		fmt.Println()
	}

	// Summary.
	fmt.Printf("── Summary: %d/%d correct ──\n", correct, attempted)
	return nil
}

func printQuestion(q questiongen.Question) {
	switch q := q.(type) {
	case questiongen.Conversion:
		fmt.Printf("Convert to %s (%s):\n", q.TargetTense, q.TargetVoice)
		fmt.Println(q.SourceSentence)
	case questiongen.FillInBlank:
		fmt.Printf("Conjugate the verb (%s):\n", q.VerbHint())
		fmt.Println(q.SentenceTemplate)
	case questiongen.MultipleChoice:
		fmt.Println("Which tense is used?")
		fmt.Println(q.Sentence)
		for j, c := range q.Options {
			fmt.Printf("  %d) %s\n", j+1, c)
		}
	}
}

var errBadChoice = errors.New("choose a listed option")

// readAnswer reads one line. Multiple-choice answers may be given by
// number. ok is false when input is closed.
func readAnswer(scanner *bufio.Scanner, q questiongen.Question) (string, bool) {
	for {
		fmt.Print("\nYour answer: ")
		if !scanner.Scan() {
			return "", false
		}
		answer := strings.TrimSpace(scanner.Text())
		mc, isMC := q.(questiongen.MultipleChoice)
		if !isMC || answer == "" {
			return answer, true
		}
		choice, err := mcChoice(answer, mc.Options)
		if err != nil {
			fmt.Println(err)
			continue
		}
		return choice, true
	}
}

func mcChoice(answer string, options []string) (string, error) {
	if n, err := strconv.Atoi(answer); err == nil {
		if n < 1 || n > len(options) {
			return "", errBadChoice
		}
		return options[n-1], nil
	}
	for _, o := range options {
		if strings.EqualFold(o, answer) {
			return o, nil
		}
	}
	return "", errBadChoice
}
