// Package tutor routes free-form user utterances to one of six fixed
// actions and executes them against the session.
package tutor

// Action names one of the tutor's capabilities. The generation backend
// picks exactly one per utterance.
type Action string

const (
	ActionAnswerQuestion     Action = "answer_user_question"
	ActionGenerateCurriculum Action = "generate_curriculum"
	ActionModuleContent      Action = "module_content"
	ActionEvaluation         Action = "evaluation"
	ActionAnalyze            Action = "analyze"
	ActionChat               Action = "chat"
)

// Actions lists every routable action in catalog order.
func Actions() []Action {
	return []Action{
		ActionAnswerQuestion,
		ActionGenerateCurriculum,
		ActionModuleContent,
		ActionEvaluation,
		ActionAnalyze,
		ActionChat,
	}
}

// actionDescriptions is the catalog the classifier prompt is built from.
// Each entry tells the model when to pick the action and what its input
// string must look like.
var actionDescriptions = map[Action]string{
	ActionAnswerQuestion:     "Useful when the user asks a question about content generated before and you need to produce an answer. Never use this to switch to the next module. Input is the question the user asked.",
	ActionGenerateCurriculum: "Useful when the user wants to learn how to cook something. Input is the dish or topic the user wants to learn. Wait for further user messages before using other actions.",
	ActionModuleContent:      "If the user wants to proceed to a module and a curriculum was generated before, use this to generate the module's content. Input format is 'int##str' where int is the module number and str is anything extra the user wants added to the lesson, or an empty string.",
	ActionEvaluation:         "Useful when the user wants tests or exercises to check their knowledge. Input format is 'int' where int is the module number.",
	ActionAnalyze:            "Useful when the user wants their quiz performance analyzed. Input is empty.",
	ActionChat:               "Only use this when no other action fits and you just want to chat. Input is the user message.",
}

// Valid reports whether a is one of the routable actions.
func (a Action) Valid() bool {
	_, ok := actionDescriptions[a]
	return ok
}
