package engine

import (
	"errors"

	"fraudquest-bot/internal/content"
)

// Scenario engine errors.
var (
	ErrScenarioNotFound = errors.New("scenario not found")
	ErrNoActiveScenario = errors.New("no scenario in progress")
)

// HistoryStep records one decision taken during a scenario walk.
type HistoryStep struct {
	NodeID string
	Choice string
	Impact string
}

// ScenarioState is the session-scoped state of one scenario walk. Exists only
// while the walk is active; discarded on conclusion.
type ScenarioState struct {
	Language   string
	ScenarioID string
	NodeID     string
	History    []HistoryStep
}

// Conclusion is the terminal result of a scenario walk. Reward and Badge are
// set only for success outcomes; the ledger performs the actual grant.
type Conclusion struct {
	Outcome  string
	Text     string
	Progress float64
	Reward   int64
	Badge    string
}

// StepResult is the outcome of one choice: either the walk moved to the next
// decision node, or it concluded.
type StepResult struct {
	Feedback   string
	Impact     string
	Node       *content.Node
	NodeID     string
	Conclusion *Conclusion
}

// ScenarioEngine drives branching scenario walks over the static graph
// catalog. Missing or dangling node references degrade to a fail terminal
// instead of stalling the session.
type ScenarioEngine struct {
	catalog *content.Catalog
}

// NewScenarioEngine creates a scenario engine over the given catalog.
func NewScenarioEngine(catalog *content.Catalog) *ScenarioEngine {
	return &ScenarioEngine{catalog: catalog}
}

// Start begins a walk at the scenario's declared start node.
func (e *ScenarioEngine) Start(language, scenarioID string) (*ScenarioState, *content.Node, error) {
	sc, ok := e.catalog.Scenario(language, scenarioID)
	if !ok {
		return nil, nil, ErrScenarioNotFound
	}

	state := &ScenarioState{
		Language:   language,
		ScenarioID: scenarioID,
		NodeID:     sc.Start,
	}

	node, ok := sc.Nodes[sc.Start]
	if !ok {
		// Broken start reference: conclude immediately rather than crash.
		return state, nil, nil
	}
	return state, &node, nil
}

// Node returns the node the walk currently stands on.
func (e *ScenarioEngine) Node(state *ScenarioState) (*content.Node, error) {
	if state == nil {
		return nil, ErrNoActiveScenario
	}
	sc, ok := e.catalog.Scenario(state.Language, state.ScenarioID)
	if !ok {
		return nil, ErrScenarioNotFound
	}
	node, ok := sc.Nodes[state.NodeID]
	if !ok {
		return nil, ErrScenarioNotFound
	}
	return &node, nil
}

// Choose applies option selection on the current node. The chosen step is
// appended to history, then the walk either advances to the resolved node or
// concludes. An empty or dangling next reference is a deliberate content-error
// fallback: it concludes as a fail terminal carrying the option's feedback.
func (e *ScenarioEngine) Choose(state *ScenarioState, optionIndex int) (*StepResult, error) {
	if state == nil {
		return nil, ErrNoActiveScenario
	}

	sc, ok := e.catalog.Scenario(state.Language, state.ScenarioID)
	if !ok {
		return nil, ErrScenarioNotFound
	}

	node, ok := sc.Nodes[state.NodeID]
	if !ok || node.Terminal {
		return nil, ErrNoActiveScenario
	}

	if optionIndex < 0 || optionIndex >= len(node.Options) {
		return nil, ErrInvalidSelection
	}

	option := node.Options[optionIndex]
	state.History = append(state.History, HistoryStep{
		NodeID: state.NodeID,
		Choice: option.Label,
		Impact: option.Impact,
	})

	res := &StepResult{Feedback: option.Feedback, Impact: option.Impact}

	next, ok := sc.Nodes[option.Next]
	if option.Next == "" || !ok {
		res.Conclusion = &Conclusion{
			Outcome:  content.OutcomeFail,
			Text:     option.Feedback,
			Progress: 1.0,
		}
		return res, nil
	}

	state.NodeID = option.Next
	if next.Terminal {
		res.Conclusion = e.conclude(sc, next)
		return res, nil
	}

	res.Node = &next
	res.NodeID = option.Next
	return res, nil
}

// conclude builds the conclusion for a terminal node. Only success endings
// carry the scenario's reward and badge.
func (e *ScenarioEngine) conclude(sc content.Scenario, node content.Node) *Conclusion {
	c := &Conclusion{
		Outcome:  node.Outcome,
		Text:     node.Text,
		Progress: node.Progress,
	}
	if node.Outcome == content.OutcomeSuccess {
		c.Reward = sc.Reward
		c.Badge = sc.Badge
	}
	return c
}
