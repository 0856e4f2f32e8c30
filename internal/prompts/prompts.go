// Package prompts holds the fixed catalog of generation templates. Every
// template embeds the live user configuration fragment at call time, so a
// configuration change never requires rebuilding the catalog.
package prompts

import (
	"fmt"
	"strings"

	"github.com/yusufk/chefmate/internal/config"
)

// AgentSystemPrompt sets the assistant's role for intent routing and
// conversational answers.
const AgentSystemPrompt = `You are a personalized cooking assistant that helps the user cook and answers their questions about cooking.
If the user wants to learn how to cook a dish, you follow the user's configuration and provide a suitable curriculum teaching that dish.
You answer questions in as much detail as you can and make them easy to understand.
After generating a curriculum you must wait for user input before teaching any module.`

// Catalog renders the parameterized templates, one per capability.
type Catalog struct {
	state *config.State
}

// NewCatalog creates a Catalog bound to the given configuration state.
func NewCatalog(state *config.State) *Catalog {
	return &Catalog{state: state}
}

func (c *Catalog) fragment() string {
	return c.state.Current().Fragment()
}

// AnswerQuestion builds the prompt for a conversational answer.
// History is the rendered transcript so far.
func (c *Catalog) AnswerQuestion(history, question string) string {
	var b strings.Builder
	b.WriteString("You should answer the user's question in detail and make it easy to understand. Make sure the answer is related to the question.\n")
	b.WriteString("Conversation history:\n")
	b.WriteString(history)
	b.WriteString("\nUser question: ")
	b.WriteString(question)
	b.WriteString("\n\nUser Configuration:\n")
	b.WriteString(c.fragment())
	return b.String()
}

// Curriculum builds the curriculum generation prompt for a topic.
// The output contract: modules separated by "$$$", markdown headings with
// "#" for modules and "##" for submodules.
func (c *Catalog) Curriculum(topic string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "The user wants to learn how to cook %s; your responsibility is teaching %s to the user.\n", topic, topic)
	fmt.Fprintf(&b, "Create a curriculum for %s that contains submodules. Add directions describing what the user should learn in each module and submodule.\n", topic)
	b.WriteString("The number of modules is up to you.\n\n")
	b.WriteString("Put \"#\" in front of modules and \"##\" in front of submodules, and put '$$$' between each module to make the output splittable by '$$$'.\n")
	b.WriteString(`Follow this format to generate the curriculum:

# Module 1: [Module title]
###### Directions: [Directions for this module]
## :pushpin: Submodule 1.a: [Submodule title]
###### Directions: [Directions for this submodule]
## :pushpin: Submodule 1.b: [Submodule title]
###### Directions: [Directions for this submodule]

$$$

# Module 2: [Module title]
###### Directions: [Directions for this module]
## :pushpin: Submodule 2.a: [Submodule title]
###### Directions: [Directions for this submodule]
## :pushpin: Submodule 2.b: [Submodule title]
###### Directions: [Directions for this submodule]

Additional Instructions:
    The curriculum should be in markdown format.
    Make every module title in a bigger font and bold important points.
    The number of modules must be 2 or 3 if the user has short time, 3 or 4 if the user has medium time, and up to 7 if the user has long time.
    Don't misspell :pushpin: since it is an emoji code.

User Configuration:
`)
	b.WriteString(c.fragment())
	return b.String()
}

// ModuleContent builds the teaching content prompt for one module.
// extraSpeech carries additional instructions the user attached to the
// request; empty is fine.
func (c *Catalog) ModuleContent(moduleBody, extraSpeech string) string {
	var b strings.Builder
	b.WriteString("Generate content for the following curriculum module. Make sure the generated content is suitable for the user's configuration.\n")
	b.WriteString("You can add new submodules if the user specifically wants to learn something new in this module.")
	if extraSpeech != "" {
		fmt.Fprintf(&b, " You should also be careful about the following while generating the content: %s", extraSpeech)
	}
	b.WriteString("\n\n")
	b.WriteString(moduleBody)
	b.WriteString("\n\nUser Configuration:\n")
	b.WriteString(c.fragment())
	return b.String()
}

// Quiz builds the single-choice-question generation prompt.
// The output contract: questions separated by "####", each with four lines:
// question text, a bracketed list of exactly four options, the correct
// answer prefixed "Answer:", and an explanation.
func (c *Catalog) Quiz(moduleContent string) string {
	var b strings.Builder
	b.WriteString(`Please generate a set of Single-Choice-Questions following the strict output format provided. Each question should assess the user's understanding of the module content and should align with the user's configuration settings. The number of questions should correspond to the user's configuration preferences.

For each question, provide four distinct options and clearly indicate the correct answer with an explanation.

The format for each question must look like this:

- "Question Text"
- ["Option 1", "Option 2", "Option 3", "Option 4"]
- "Answer: Correct Option"
- "Explanation for why the correct option is the right answer."

Repeat this structure for the number of questions specified in the user configuration. Put a #### between each question to make the output splittable.

Module content:
`)
	b.WriteString(moduleContent)
	b.WriteString("\n\nUser Configuration:\n")
	b.WriteString(c.fragment())
	return b.String()
}

// Flashcards builds the flashcard generation prompt.
// The output contract: cards separated by "####".
func (c *Catalog) Flashcards(moduleContent string) string {
	var b strings.Builder
	b.WriteString(`Act as a professional flashcard creator, able to create flashcards from the module content provided.
The cards only contain the most important information, and the wording is optimized so that in minimum time the right bulb in the learner's brain lights up.
The number of words per card is up to you but keep it generally 1-3 words.

Stick to two principles:
First, minimum information principle: formulate the material in as simple a way as possible without losing information or skipping the difficult parts.
Second, optimize wording: reduce error rates, increase specificity, reduce response time and help concentration.

Your output must be in this format:

First Flash Card #### Second Flash Card #### Third Flash Card #### Nth Flash Card
Note: Make sure the output is splittable by '####' characters.

Module content:
`)
	b.WriteString(moduleContent)
	b.WriteString("\n\nUser Configuration:\n")
	b.WriteString(c.fragment())
	return b.String()
}

// Analysis builds the quiz performance report prompt. The configuration
// fragment is deliberately absent: the report always reflects the answers
// as given.
func (c *Catalog) Analysis(statistics, wrongContent string) string {
	var b strings.Builder
	b.WriteString("Act as a reviewer; you are supplied with the user's wrong answers and correct answers. First, look at the user's statistics on the tests and write a report for the user which includes positive and negative feedback where they exist.\n")
	b.WriteString("Assume that the user's name is \"User\" and you are writing a report for \"User\".\n\n")
	b.WriteString(statistics)
	b.WriteString("\n\nYou should prepare module content to help the user understand why they were wrong and how to fix it.\n\n")
	b.WriteString(wrongContent)
	return b.String()
}

// ExtractKeyContent builds the key-content extraction prompt used to seed
// image generation.
func (c *Catalog) ExtractKeyContent(moduleContent string) string {
	return "You should extract the key elements of the module content, which includes the definitions, the examples and things of that kind.\nModule content: " + moduleContent
}

// ImagePrompt builds the final prompt handed to the image backend.
func ImagePrompt(keyContent string) string {
	return "Generate an image that represents the following content. Ensure that any text stands out with sufficient contrast and avoid complex backgrounds that could detract from readability: " + keyContent
}
