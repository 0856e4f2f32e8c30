package tutor

// Wire prefixes carried on response text so the transcript records the
// payload kind exactly as generated.
const (
	QuizPrefix     = "Quiz generated "
	AnalysisPrefix = "ANALYSIS:"
	ImagePrefix    = "Image generated "
)

// ResponseKind classifies what a routed turn produced.
type ResponseKind string

const (
	KindText     ResponseKind = "text"
	KindQuiz     ResponseKind = "quiz"
	KindAnalysis ResponseKind = "analysis"
	KindImage    ResponseKind = "image"
)

// Response is the result of routing one utterance.
type Response struct {
	Kind ResponseKind

	// Text is the full response text including any wire prefix.
	Text string

	// QuizID references the registered quiz instance when Kind is KindQuiz.
	QuizID string

	// ImageURL is the generated image location when Kind is KindImage.
	ImageURL string
}

func textResponse(text string) Response {
	return Response{Kind: KindText, Text: text}
}
