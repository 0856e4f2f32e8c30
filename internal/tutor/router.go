package tutor

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/yusufk/chefmate/internal/analysis"
	"github.com/yusufk/chefmate/internal/config"
	"github.com/yusufk/chefmate/internal/curriculum"
	"github.com/yusufk/chefmate/internal/flashcards"
	"github.com/yusufk/chefmate/internal/llm"
	"github.com/yusufk/chefmate/internal/prompts"
	"github.com/yusufk/chefmate/internal/quiz"
	"github.com/yusufk/chefmate/internal/session"
)

// Corrective messages returned for malformed or out-of-range input.
// Non-fatal: the user is told how to retry.
const (
	moduleInputHint   = "Input need to have in this format 'IntegerNumber##Extra information that needs to be added to the module in speech if exists' Where IntegerNumber refers Module Number"
	quizInputHint     = "Input need to be the module number, for example '2'"
	noCurriculumHint  = "There is no curriculum yet. Tell me what you want to learn to cook first."
	noQuizDataMessage = "No quiz results found"
)

// Router dispatches classified utterances to their handlers.
type Router struct {
	classifier Classifier
	provider   llm.Provider
	catalog    *prompts.Catalog
	curricula  *curriculum.Store
	flashcards *flashcards.Generator
	reporter   *analysis.Reporter

	// images is nil when no image backend is configured; image-containing
	// lessons then degrade to text.
	images llm.ImageGenerator
}

// NewRouter wires a Router from its collaborators.
func NewRouter(classifier Classifier, provider llm.Provider, catalog *prompts.Catalog, curricula *curriculum.Store, cards *flashcards.Generator, reporter *analysis.Reporter, images llm.ImageGenerator) *Router {
	return &Router{
		classifier: classifier,
		provider:   provider,
		catalog:    catalog,
		curricula:  curricula,
		flashcards: cards,
		reporter:   reporter,
		images:     images,
	}
}

// Route interprets one utterance, executes exactly one action and
// records both turns on the session transcript. Backend failures
// propagate; malformed input comes back as a corrective text response.
func (r *Router) Route(ctx context.Context, utterance string, sess *session.State) (Response, error) {
	history := sess.History()
	sess.AppendUser(utterance)

	decision, err := r.classifier.Classify(ctx, utterance, history)
	if err != nil {
		return Response{}, err
	}

	resp, err := r.dispatch(ctx, decision, history, sess)
	if err != nil {
		return Response{}, err
	}

	sess.AppendTurn(session.Turn{
		Kind:     transcriptKind(resp.Kind),
		Text:     resp.Text,
		QuizID:   resp.QuizID,
		ImageURL: resp.ImageURL,
	})
	return resp, nil
}

func (r *Router) dispatch(ctx context.Context, d Decision, history string, sess *session.State) (Response, error) {
	switch d.Action {
	case ActionAnswerQuestion:
		return r.answerQuestion(ctx, history, d.Input)
	case ActionGenerateCurriculum:
		return r.generateCurriculum(ctx, sess, d.Input)
	case ActionModuleContent:
		return r.moduleContent(ctx, sess, d.Input)
	case ActionEvaluation:
		return r.evaluation(ctx, sess, d.Input)
	case ActionAnalyze:
		return r.analyze(ctx, sess)
	case ActionChat:
		return textResponse(d.Input), nil
	default:
		return Response{}, fmt.Errorf("unroutable action %q", d.Action)
	}
}

func (r *Router) answerQuestion(ctx context.Context, history, question string) (Response, error) {
	ctx = llm.WithPurpose(ctx, "answer")
	resp, err := r.provider.Generate(ctx, llm.Request{
		System:      prompts.AgentSystemPrompt,
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: r.catalog.AnswerQuestion(history, question)}},
		MaxTokens:   1024,
		Temperature: 0.7,
	})
	if err != nil {
		return Response{}, fmt.Errorf("answer generation: %w", err)
	}
	return textResponse(resp.Text()), nil
}

func (r *Router) generateCurriculum(ctx context.Context, sess *session.State, topic string) (Response, error) {
	cur, err := r.curricula.GetOrGenerate(ctx, topic, sess.Config.Current())
	if err != nil {
		return Response{}, err
	}
	sess.SetCurriculum(cur)
	return textResponse(cur.Markdown()), nil
}

// moduleContent handles 'int##str' requests: teaching content first,
// then flashcards and the optional image concurrently.
func (r *Router) moduleContent(ctx context.Context, sess *session.State, input string) (Response, error) {
	number, extra, ok := parseModuleInput(input)
	if !ok {
		return textResponse(moduleInputHint), nil
	}

	cur := sess.Curriculum()
	if cur.Len() == 0 {
		return textResponse(noCurriculumHint), nil
	}
	mod, ok := cur.Module(number)
	if !ok {
		return textResponse(fmt.Sprintf("Module %d does not exist; the curriculum has %d modules.", number, cur.Len())), nil
	}
	idx := number - 1

	if err := sess.BeginModuleWork(idx); err != nil {
		if errors.Is(err, session.ErrModuleBusy) {
			return textResponse(fmt.Sprintf("Module %d is still being prepared, give it a moment.", number)), nil
		}
		return Response{}, err
	}
	defer sess.EndModuleWork(idx)

	teachCtx := llm.WithPurpose(ctx, "module-content")
	resp, err := r.provider.Generate(teachCtx, llm.Request{
		System:      prompts.AgentSystemPrompt,
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: r.catalog.ModuleContent(mod.Body, extra)}},
		MaxTokens:   2048,
		Temperature: 0.7,
	})
	if err != nil {
		return Response{}, fmt.Errorf("module content generation: %w", err)
	}
	content := resp.Text()
	sess.SetModuleContent(idx, content)

	withImage := sess.Config.Current().Mode == config.ModeImageContaining && r.images != nil

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		cards, err := r.flashcards.Generate(gctx, content)
		if err != nil {
			return err
		}
		sess.SetFlashcards(idx, cards)
		return nil
	})

	var imageURL string
	if withImage {
		g.Go(func() error {
			url, err := r.generateImage(gctx, content)
			if err != nil {
				return err
			}
			imageURL = url
			sess.SetImageURL(idx, url)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return Response{}, err
	}

	if withImage {
		return Response{
			Kind:     KindImage,
			Text:     ImagePrefix + content,
			ImageURL: imageURL,
		}, nil
	}
	return textResponse(content), nil
}

// generateImage extracts the module's key content and renders it with
// the image backend.
func (r *Router) generateImage(ctx context.Context, content string) (string, error) {
	extractCtx := llm.WithPurpose(ctx, "extract-key-content")
	resp, err := r.provider.Generate(extractCtx, llm.Request{
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: r.catalog.ExtractKeyContent(content)}},
		MaxTokens:   512,
		Temperature: 0.5,
	})
	if err != nil {
		return "", fmt.Errorf("key content extraction: %w", err)
	}

	url, err := r.images.GenerateImage(ctx, llm.ImageRequest{
		Prompt: prompts.ImagePrompt(resp.Text()),
	})
	if err != nil {
		return "", fmt.Errorf("image generation: %w", err)
	}
	return url, nil
}

func (r *Router) evaluation(ctx context.Context, sess *session.State, input string) (Response, error) {
	number, err := strconv.Atoi(strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(input), "Module")))
	if err != nil {
		return textResponse(quizInputHint), nil
	}

	cur := sess.Curriculum()
	if cur.Len() == 0 {
		return textResponse(noCurriculumHint), nil
	}
	mod, ok := cur.Module(number)
	if !ok {
		return textResponse(fmt.Sprintf("Module %d does not exist; the curriculum has %d modules.", number, cur.Len())), nil
	}
	idx := number - 1

	content := sess.ModuleContent(idx)
	if content == "" {
		content = mod.Body
	}

	ctx = llm.WithPurpose(ctx, "quiz")
	resp, err := r.provider.Generate(ctx, llm.Request{
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: r.catalog.Quiz(content)}},
		MaxTokens:   2048,
		Temperature: 0.7,
	})
	if err != nil {
		return Response{}, fmt.Errorf("quiz generation: %w", err)
	}

	raw := resp.Text()
	questions, err := quiz.Parse(raw)
	if err != nil {
		return Response{}, err
	}

	inst := session.QuizInstance{
		ID:          uuid.NewString(),
		ModuleIndex: idx,
		Questions:   questions,
	}
	sess.RegisterQuiz(inst)

	return Response{
		Kind:   KindQuiz,
		Text:   QuizPrefix + raw,
		QuizID: inst.ID,
	}, nil
}

func (r *Router) analyze(ctx context.Context, sess *session.State) (Response, error) {
	summary, err := analysis.Summarize(sess.Curriculum(), sess.Engine)
	if err != nil {
		if errors.Is(err, analysis.ErrNoQuizData) {
			return textResponse(noQuizDataMessage), nil
		}
		return Response{}, err
	}

	report, err := r.reporter.Report(ctx, summary)
	if err != nil {
		return Response{}, err
	}

	return Response{
		Kind: KindAnalysis,
		Text: AnalysisPrefix + report,
	}, nil
}

// parseModuleInput splits 'int##str' input. A leading "Module" label on
// the number part is tolerated.
func parseModuleInput(input string) (number int, extra string, ok bool) {
	before, after, found := strings.Cut(input, "##")
	if !found {
		return 0, "", false
	}
	numPart := strings.TrimSpace(strings.ReplaceAll(before, "Module", ""))
	n, err := strconv.Atoi(numPart)
	if err != nil {
		return 0, "", false
	}
	return n, strings.TrimSpace(after), true
}

func transcriptKind(k ResponseKind) session.Kind {
	switch k {
	case KindQuiz:
		return session.KindQuiz
	case KindAnalysis:
		return session.KindAnalysis
	case KindImage:
		return session.KindImage
	default:
		return session.KindText
	}
}
