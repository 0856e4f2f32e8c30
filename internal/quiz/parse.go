package quiz

import (
	"errors"
	"fmt"
	"strings"
)

// QuestionSeparator splits generated quiz text into questions.
// Part of the wire contract with the generation backend.
const QuestionSeparator = "####"

// OptionCount is the required number of options per question.
const OptionCount = 4

// ErrMalformedOutput indicates generated quiz text that does not match
// the expected structure. The raw segment is preserved for diagnostics.
var ErrMalformedOutput = errors.New("malformed quiz output")

// Question is one parsed single-choice question.
type Question struct {
	Text        string
	Options     []string // exactly four
	Answer      string   // matches one of Options
	Explanation string
}

// Parse splits raw quiz text on the question separator and parses each
// segment into a Question. Any malformed segment fails the whole parse;
// partial quizzes are never surfaced to the user.
func Parse(raw string) ([]Question, error) {
	var questions []Question

	for _, segment := range strings.Split(raw, QuestionSeparator) {
		if strings.TrimSpace(segment) == "" {
			continue
		}
		q, err := parseQuestion(segment)
		if err != nil {
			return nil, err
		}
		questions = append(questions, q)
	}

	if len(questions) == 0 {
		return nil, fmt.Errorf("%w: no questions found", ErrMalformedOutput)
	}

	return questions, nil
}

// parseQuestion parses one segment of exactly four logical lines:
// question text, bracketed option list, "Answer: ..." line, explanation.
func parseQuestion(segment string) (Question, error) {
	var lines []string
	for _, line := range strings.Split(strings.TrimSpace(segment), "\n") {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, strings.TrimSpace(line))
		}
	}

	if len(lines) != 4 {
		return Question{}, fmt.Errorf("%w: expected 4 lines per question, got %d", ErrMalformedOutput, len(lines))
	}

	q := Question{
		Text:        stripDecoration(lines[0]),
		Explanation: stripDecoration(lines[3]),
	}

	options, err := parseOptionList(strings.TrimPrefix(lines[1], "- "))
	if err != nil {
		return Question{}, err
	}
	if len(options) != OptionCount {
		return Question{}, fmt.Errorf("%w: expected %d options, got %d", ErrMalformedOutput, OptionCount, len(options))
	}
	q.Options = options

	answer := stripDecoration(lines[2])
	answer = strings.TrimSpace(strings.TrimPrefix(answer, "Answer:"))
	if answer == "" {
		return Question{}, fmt.Errorf("%w: empty answer line", ErrMalformedOutput)
	}

	found := false
	for _, opt := range options {
		if strings.TrimSpace(opt) == answer {
			found = true
			break
		}
	}
	if !found {
		return Question{}, fmt.Errorf("%w: answer %q is not among the options", ErrMalformedOutput, answer)
	}
	q.Answer = answer

	return q, nil
}

// stripDecoration removes the list-item dash and surrounding quotes the
// backend is prompted to emit around free-text lines.
func stripDecoration(line string) string {
	s := strings.TrimSpace(strings.TrimPrefix(line, "- "))
	s = strings.Trim(s, `"`)
	return strings.TrimSpace(s)
}

// parseOptionList parses a literal list such as
// ["Option 1", "Option 2", 'Option 3', "Option 4"] into its elements.
// Strict and quote-aware; it never evaluates the input.
func parseOptionList(s string) ([]string, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "[") || !strings.HasSuffix(s, "]") {
		return nil, fmt.Errorf("%w: options are not a bracketed list: %q", ErrMalformedOutput, s)
	}
	inner := s[1 : len(s)-1]

	var (
		options []string
		current strings.Builder
		inQuote bool
		quote   byte
		started bool
	)

	flush := func() error {
		item := strings.TrimSpace(current.String())
		current.Reset()
		if !started {
			return nil
		}
		started = false
		if item == "" {
			return fmt.Errorf("%w: empty option in list", ErrMalformedOutput)
		}
		options = append(options, item)
		return nil
	}

	for i := 0; i < len(inner); i++ {
		ch := inner[i]
		switch {
		case inQuote:
			if ch == '\\' && i+1 < len(inner) && (inner[i+1] == quote || inner[i+1] == '\\') {
				current.WriteByte(inner[i+1])
				i++
				continue
			}
			if ch == quote {
				inQuote = false
				continue
			}
			current.WriteByte(ch)
		case ch == '"' || ch == '\'':
			inQuote = true
			quote = ch
			started = true
		case ch == ',':
			if err := flush(); err != nil {
				return nil, err
			}
		case ch == ' ' || ch == '\t':
			if current.Len() > 0 {
				current.WriteByte(ch)
			}
		default:
			// Unquoted content (e.g. a bare number).
			started = true
			current.WriteByte(ch)
		}
	}

	if inQuote {
		return nil, fmt.Errorf("%w: unterminated quote in option list", ErrMalformedOutput)
	}
	if err := flush(); err != nil {
		return nil, err
	}

	return options, nil
}
