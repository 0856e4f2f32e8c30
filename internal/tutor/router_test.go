package tutor

import (
	"context"
	"strings"
	"testing"

	"github.com/yusufk/chefmate/internal/analysis"
	"github.com/yusufk/chefmate/internal/config"
	"github.com/yusufk/chefmate/internal/curriculum"
	"github.com/yusufk/chefmate/internal/flashcards"
	"github.com/yusufk/chefmate/internal/llm"
	"github.com/yusufk/chefmate/internal/prompts"
	"github.com/yusufk/chefmate/internal/quiz"
	"github.com/yusufk/chefmate/internal/session"
)

type memCache struct {
	entries map[string]string
}

func (m *memCache) Get(_ context.Context, key string) (string, bool, error) {
	raw, ok := m.entries[key]
	return raw, ok, nil
}

func (m *memCache) Put(_ context.Context, key, _, _, raw string) error {
	if m.entries == nil {
		m.entries = make(map[string]string)
	}
	m.entries[key] = raw
	return nil
}

type fixture struct {
	router  *Router
	mock    *llm.MockProvider
	images  *llm.MockImageGenerator
	session *session.State
	stub    *StubClassifier
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	sess := session.New()
	mock := llm.NewMockProvider()
	images := llm.NewMockImageGenerator("https://img.example/lesson.png")
	catalog := prompts.NewCatalog(sess.Config)
	stub := &StubClassifier{}

	router := NewRouter(
		stub,
		mock,
		catalog,
		curriculum.NewStore(mock, catalog, &memCache{}, curriculum.DefaultGenerateConfig()),
		flashcards.NewGenerator(mock, catalog),
		analysis.NewReporter(mock, catalog),
		images,
	)
	return &fixture{router: router, mock: mock, images: images, session: sess, stub: stub}
}

func (f *fixture) withCurriculum(t *testing.T) {
	t.Helper()
	cur, err := curriculum.Parse("omelette", "# Module 1: Eggs\nbeat them$$$# Module 2: Pan\nheat it")
	if err != nil {
		t.Fatalf("parse curriculum: %v", err)
	}
	f.session.SetCurriculum(cur)
}

func (f *fixture) setMode(t *testing.T, mode config.Mode) {
	t.Helper()
	cfg := f.session.Config.Current()
	cfg.Mode = mode
	if _, err := f.session.Config.Update(cfg); err != nil {
		t.Fatalf("update config: %v", err)
	}
}

func route(t *testing.T, f *fixture, d Decision) Response {
	t.Helper()
	f.stub.Decisions = append(f.stub.Decisions, d)
	resp, err := f.router.Route(context.Background(), "utterance", f.session)
	if err != nil {
		t.Fatalf("route: %v", err)
	}
	return resp
}

func mustParseQuiz(t *testing.T, raw string) []quiz.Question {
	t.Helper()
	qs, err := quiz.Parse(raw)
	if err != nil {
		t.Fatalf("parse quiz: %v", err)
	}
	return qs
}

const validQuiz = `How hot should the pan be?
["Cold", "Medium", "Smoking", "Warm"]
Answer: Medium
Medium heat sets the eggs without browning.`

func TestChat_Passthrough(t *testing.T) {
	f := newFixture(t)
	resp := route(t, f, Decision{Action: ActionChat, Input: "hello there"})
	if resp.Text != "hello there" {
		t.Errorf("chat text = %q, want identity", resp.Text)
	}
	if f.mock.CallCount() != 0 {
		t.Errorf("chat must not call the provider, got %d calls", f.mock.CallCount())
	}
}

func TestGenerateCurriculum_SetsSessionAndStripsSeparator(t *testing.T) {
	f := newFixture(t)
	f.mock.AddResponse(llm.TextResponse("# Module 1: Eggs\nbody$$$# Module 2: Pan\nbody"))

	resp := route(t, f, Decision{Action: ActionGenerateCurriculum, Input: "omelette"})

	if f.session.Curriculum().Len() != 2 {
		t.Fatalf("curriculum len = %d, want 2", f.session.Curriculum().Len())
	}
	if strings.Contains(resp.Text, curriculum.ModuleSeparator) {
		t.Errorf("reply must not contain the module separator: %q", resp.Text)
	}
	if !strings.Contains(resp.Text, "# Module 1: Eggs") {
		t.Errorf("reply missing module content: %q", resp.Text)
	}
}

func TestModuleContent_ParsesNumberAndExtra(t *testing.T) {
	f := newFixture(t)
	f.withCurriculum(t)
	f.mock.AddResponse(llm.TextResponse("lesson for the pan module"))
	f.mock.AddResponse(llm.TextResponse("card one #### card two"))

	resp := route(t, f, Decision{Action: ActionModuleContent, Input: "2##please speak slowly"})

	if f.session.ModuleContent(1) != "lesson for the pan module" {
		t.Error("teaching content not stored under zero-based index 1")
	}
	if !strings.Contains(f.mock.Calls[0].Messages[0].Content, "please speak slowly") {
		t.Error("extra instructions not forwarded to the teaching prompt")
	}
	if resp.Kind != KindText {
		t.Errorf("kind = %q, want text", resp.Kind)
	}
	if got := f.session.Flashcards(1); len(got) != 2 {
		t.Errorf("flashcards = %v, want two cards", got)
	}
}

func TestModuleContent_MissingSeparatorIsCorrective(t *testing.T) {
	f := newFixture(t)
	f.withCurriculum(t)

	resp := route(t, f, Decision{Action: ActionModuleContent, Input: "2"})

	if resp.Text != moduleInputHint {
		t.Errorf("text = %q, want the input hint", resp.Text)
	}
	if f.mock.CallCount() != 0 {
		t.Error("malformed input must not reach the provider")
	}
}

func TestModuleContent_ToleratesModuleLabel(t *testing.T) {
	f := newFixture(t)
	f.withCurriculum(t)
	f.mock.AddResponse(llm.TextResponse("lesson"))
	f.mock.AddResponse(llm.TextResponse("card"))

	route(t, f, Decision{Action: ActionModuleContent, Input: "Module 1##"})

	if f.session.ModuleContent(0) != "lesson" {
		t.Error("'Module 1##' should resolve to the first module")
	}
}

func TestModuleContent_TextOnlyNeverCallsImages(t *testing.T) {
	f := newFixture(t)
	f.withCurriculum(t)
	f.setMode(t, config.ModeTextOnly)
	f.mock.AddResponse(llm.TextResponse("lesson"))
	f.mock.AddResponse(llm.TextResponse("card"))

	resp := route(t, f, Decision{Action: ActionModuleContent, Input: "1##"})

	if f.images.CallCount() != 0 {
		t.Errorf("image calls = %d, want 0", f.images.CallCount())
	}
	if strings.HasPrefix(resp.Text, ImagePrefix) {
		t.Error("text-only response must not carry the image marker")
	}
}

func TestModuleContent_ImageContainingCallsImagesOnce(t *testing.T) {
	f := newFixture(t)
	f.withCurriculum(t)
	f.setMode(t, config.ModeImageContaining)
	f.mock.AddResponse(llm.TextResponse("lesson"))
	f.mock.AddResponse(llm.TextResponse("side output"))
	f.mock.AddResponse(llm.TextResponse("side output"))

	resp := route(t, f, Decision{Action: ActionModuleContent, Input: "1##"})

	if f.images.CallCount() != 1 {
		t.Fatalf("image calls = %d, want exactly 1", f.images.CallCount())
	}
	if !strings.HasPrefix(resp.Text, ImagePrefix) {
		t.Errorf("image response must carry the marker: %q", resp.Text)
	}
	if resp.Kind != KindImage {
		t.Errorf("kind = %q, want image", resp.Kind)
	}
	if f.session.ImageURL(0) != "https://img.example/lesson.png" {
		t.Errorf("image URL not stored: %q", f.session.ImageURL(0))
	}
}

func TestModuleContent_OutOfRange(t *testing.T) {
	f := newFixture(t)
	f.withCurriculum(t)

	resp := route(t, f, Decision{Action: ActionModuleContent, Input: "9##"})

	if !strings.Contains(resp.Text, "does not exist") {
		t.Errorf("text = %q, want out-of-range message", resp.Text)
	}
}

func TestEvaluation_GeneratesAndRegistersQuiz(t *testing.T) {
	f := newFixture(t)
	f.withCurriculum(t)
	f.session.SetModuleContent(1, "taught content for pan")
	f.mock.AddResponse(llm.TextResponse(validQuiz))

	resp := route(t, f, Decision{Action: ActionEvaluation, Input: "2"})

	if !strings.HasPrefix(resp.Text, QuizPrefix) {
		t.Errorf("quiz response must carry the marker: %q", resp.Text)
	}
	if resp.QuizID == "" {
		t.Fatal("quiz response missing instance id")
	}
	inst, ok := f.session.QuizByID(resp.QuizID)
	if !ok {
		t.Fatal("quiz instance not registered")
	}
	if inst.ModuleIndex != 1 {
		t.Errorf("module index = %d, want 1", inst.ModuleIndex)
	}
	if len(inst.Questions) != 1 {
		t.Fatalf("questions = %d, want 1", len(inst.Questions))
	}
	if !strings.Contains(f.mock.Calls[0].Messages[0].Content, "taught content for pan") {
		t.Error("quiz prompt should use the taught content when present")
	}
}

func TestEvaluation_FallsBackToModuleBody(t *testing.T) {
	f := newFixture(t)
	f.withCurriculum(t)
	f.mock.AddResponse(llm.TextResponse(validQuiz))

	route(t, f, Decision{Action: ActionEvaluation, Input: "1"})

	if !strings.Contains(f.mock.Calls[0].Messages[0].Content, "beat them") {
		t.Error("quiz prompt should fall back to the raw module body")
	}
}

func TestEvaluation_NonIntegerIsCorrective(t *testing.T) {
	f := newFixture(t)
	f.withCurriculum(t)

	resp := route(t, f, Decision{Action: ActionEvaluation, Input: "the second one"})

	if resp.Text != quizInputHint {
		t.Errorf("text = %q, want the quiz input hint", resp.Text)
	}
	if f.mock.CallCount() != 0 {
		t.Error("malformed input must not reach the provider")
	}
}

func TestAnalyze_NoAttempts(t *testing.T) {
	f := newFixture(t)
	f.withCurriculum(t)

	resp := route(t, f, Decision{Action: ActionAnalyze})

	if resp.Text != noQuizDataMessage {
		t.Errorf("text = %q, want %q", resp.Text, noQuizDataMessage)
	}
}

func TestAnalyze_WithAttempts(t *testing.T) {
	f := newFixture(t)
	f.withCurriculum(t)

	_, err := f.session.Engine.Submit(0, "q1", mustParseQuiz(t, validQuiz), []string{"Cold"})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	f.mock.AddResponse(llm.TextResponse("You mixed up the pan heat."))

	resp := route(t, f, Decision{Action: ActionAnalyze})

	if !strings.HasPrefix(resp.Text, AnalysisPrefix) {
		t.Errorf("analysis response must carry the marker: %q", resp.Text)
	}
	if resp.Kind != KindAnalysis {
		t.Errorf("kind = %q, want analysis", resp.Kind)
	}
}

func TestRoute_RecordsTranscript(t *testing.T) {
	f := newFixture(t)
	route(t, f, Decision{Action: ActionChat, Input: "hi"})

	turns := f.session.Transcript()
	if len(turns) != 2 {
		t.Fatalf("transcript turns = %d, want 2", len(turns))
	}
	if turns[0].Role != session.RoleUser {
		t.Error("first turn should be the user's")
	}
	if turns[1].Role != session.RoleAssistant || turns[1].Text != "hi" {
		t.Errorf("second turn = %+v, want assistant echo", turns[1])
	}
}
