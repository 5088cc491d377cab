// Package content holds the static learning catalog: leveled quiz questions
// and branching scenario graphs. Content is read-only at runtime.
package content

// Impact tags classify how a chosen scenario option affects the outcome.
const (
	ImpactSafe    = "safe"
	ImpactWarning = "warning"
	ImpactDanger  = "danger"
	ImpactReport  = "report"
)

// Outcome values for terminal scenario nodes.
const (
	OutcomeSuccess = "success"
	OutcomeFail    = "fail"
	OutcomeReport  = "report"
)

// QuizQuestion is one question in a leveled quiz. Options are presented in
// catalog order; Answer indexes into Options.
type QuizQuestion struct {
	Prompt  string
	Options []string
	Answer  int
}

// Option is one choice on a scenario decision node. Next names the node the
// walk moves to; an empty or unresolvable Next degrades to a fail terminal
// rather than stalling the session.
type Option struct {
	Label    string
	Feedback string
	Impact   string
	Next     string
}

// Node is one step in a scenario graph: either a decision node with Options,
// or a terminal node with an Outcome and no outgoing edges.
type Node struct {
	Text     string
	Progress float64
	Options  []Option
	Terminal bool
	Outcome  string
}

// Scenario is one branching "choose your response" story graph.
type Scenario struct {
	ID     string
	Title  string
	Intro  string
	Reward int64
	Badge  string
	Start  string
	Nodes  map[string]Node
}

// DefaultLanguage is used when a requested language has no catalog.
const DefaultLanguage = "en"

// Catalog provides read access to the static learning content.
type Catalog struct {
	quizzes   map[string]map[int][]QuizQuestion
	scenarios map[string][]Scenario
}

// NewCatalog returns the built-in catalog.
func NewCatalog() *Catalog {
	return &Catalog{
		quizzes:   quizCatalog,
		scenarios: scenarioCatalog,
	}
}

// NewCatalogWith returns a catalog serving the given scenario graphs over the
// built-in quizzes. Used by tests that need pathological graphs.
func NewCatalogWith(scenarios map[string][]Scenario) *Catalog {
	return &Catalog{
		quizzes:   quizCatalog,
		scenarios: scenarios,
	}
}

// MaxLevel returns the highest quiz level defined for a language.
func (c *Catalog) MaxLevel(language string) int {
	levels := c.quizzes[c.resolve(language)]
	max := 0
	for level := range levels {
		if level > max {
			max = level
		}
	}
	return max
}

// Questions returns the ordered question list for (language, level).
// A missing set returns an empty slice, never an error: the quiz machine
// treats an empty catalog as a degraded "no questions" completion.
func (c *Catalog) Questions(language string, level int) []QuizQuestion {
	return c.quizzes[c.resolve(language)][level]
}

// Scenarios returns the scenario list for a language in stable catalog order.
func (c *Catalog) Scenarios(language string) []Scenario {
	return c.scenarios[c.resolve(language)]
}

// Scenario looks up a single scenario by id.
func (c *Catalog) Scenario(language, id string) (Scenario, bool) {
	for _, s := range c.Scenarios(language) {
		if s.ID == id {
			return s, true
		}
	}
	return Scenario{}, false
}

func (c *Catalog) resolve(language string) string {
	if _, ok := c.quizzes[language]; ok {
		return language
	}
	return DefaultLanguage
}
