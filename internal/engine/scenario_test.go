package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fraudquest-bot/internal/content"
)

func testScenarioEngine() *ScenarioEngine {
	return NewScenarioEngine(content.NewCatalog())
}

func TestScenarioStartUnknownID(t *testing.T) {
	e := testScenarioEngine()

	_, _, err := e.Start("en", "no_such_scenario")
	assert.ErrorIs(t, err, ErrScenarioNotFound)
}

func TestScenarioSuccessPathGrantsRewardAndBadge(t *testing.T) {
	e := testScenarioEngine()
	catalog := content.NewCatalog()
	sc, ok := catalog.Scenario("en", "phishing_link")
	require.True(t, ok)

	state, node, err := e.Start("en", sc.ID)
	require.NoError(t, err)
	require.NotNil(t, node)

	// Walk choosing the safe option on every node until conclusion.
	var conclusion *Conclusion
	for steps := 0; steps < len(sc.Nodes)+1; steps++ {
		safe := -1
		for i, opt := range node.Options {
			if opt.Impact == content.ImpactSafe || opt.Impact == content.ImpactReport {
				safe = i
				break
			}
		}
		require.GreaterOrEqual(t, safe, 0, "node %s has no safe option", state.NodeID)

		result, err := e.Choose(state, safe)
		require.NoError(t, err)
		if result.Conclusion != nil {
			conclusion = result.Conclusion
			break
		}
		node = result.Node
	}

	require.NotNil(t, conclusion)
	assert.Equal(t, content.OutcomeSuccess, conclusion.Outcome)
	assert.Equal(t, int64(30), conclusion.Reward)
	assert.Equal(t, "phishing_hero", conclusion.Badge)
	assert.NotEmpty(t, state.History)
}

func TestScenarioFailTerminalCarriesNoReward(t *testing.T) {
	e := testScenarioEngine()

	state, node, err := e.Start("en", "phishing_link")
	require.NoError(t, err)

	// Walk always choosing the most dangerous option.
	var conclusion *Conclusion
	for steps := 0; steps < 10; steps++ {
		danger := 0
		for i, opt := range node.Options {
			if opt.Impact == content.ImpactDanger {
				danger = i
				break
			}
		}

		result, err := e.Choose(state, danger)
		require.NoError(t, err)
		if result.Conclusion != nil {
			conclusion = result.Conclusion
			break
		}
		node = result.Node
	}

	require.NotNil(t, conclusion)
	assert.Equal(t, content.OutcomeFail, conclusion.Outcome)
	assert.Zero(t, conclusion.Reward)
	assert.Empty(t, conclusion.Badge)
}

func TestScenarioDanglingNextDegradesToFail(t *testing.T) {
	broken := content.Scenario{
		ID:     "broken",
		Title:  "Broken",
		Reward: 10,
		Badge:  "b",
		Start:  "a",
		Nodes: map[string]content.Node{
			"a": {
				Text: "start",
				Options: []content.Option{
					{Label: "go", Feedback: "that path is gone", Impact: content.ImpactWarning, Next: "missing"},
					{Label: "stay", Feedback: "staying", Impact: content.ImpactSafe, Next: ""},
				},
			},
		},
	}

	be := NewScenarioEngine(content.NewCatalogWith(map[string][]content.Scenario{"en": {broken}}))
	bstate, bnode, err := be.Start("en", "broken")
	require.NoError(t, err)
	require.NotNil(t, bnode)

	// Dangling next resolves to a synthetic fail carrying the feedback.
	result, err := be.Choose(bstate, 0)
	require.NoError(t, err)
	require.NotNil(t, result.Conclusion)
	assert.Equal(t, content.OutcomeFail, result.Conclusion.Outcome)
	assert.Equal(t, "that path is gone", result.Conclusion.Text)
	assert.Zero(t, result.Conclusion.Reward)

	// Empty next behaves the same.
	bstate2, _, err := be.Start("en", "broken")
	require.NoError(t, err)
	result2, err := be.Choose(bstate2, 1)
	require.NoError(t, err)
	require.NotNil(t, result2.Conclusion)
	assert.Equal(t, content.OutcomeFail, result2.Conclusion.Outcome)
	assert.Equal(t, "staying", result2.Conclusion.Text)
}

func TestScenarioInvalidOptionIndex(t *testing.T) {
	e := testScenarioEngine()

	state, node, err := e.Start("en", "phishing_link")
	require.NoError(t, err)
	require.NotNil(t, node)

	before := state.NodeID
	_, err = e.Choose(state, len(node.Options))
	assert.ErrorIs(t, err, ErrInvalidSelection)
	assert.Equal(t, before, state.NodeID)
	assert.Empty(t, state.History)
}

func TestScenarioChooseWithoutState(t *testing.T) {
	e := testScenarioEngine()

	_, err := e.Choose(nil, 0)
	assert.ErrorIs(t, err, ErrNoActiveScenario)
}

// TestScenarioFirstOptionTerminates checks every catalog scenario reaches a
// conclusion within |nodes| steps when always choosing the first option.
func TestScenarioFirstOptionTerminates(t *testing.T) {
	catalog := content.NewCatalog()
	e := NewScenarioEngine(catalog)

	for _, sc := range catalog.Scenarios("en") {
		state, node, err := e.Start("en", sc.ID)
		require.NoError(t, err, sc.ID)
		require.NotNil(t, node, sc.ID)

		concluded := false
		for steps := 0; steps <= len(sc.Nodes); steps++ {
			result, err := e.Choose(state, 0)
			require.NoError(t, err, sc.ID)
			if result.Conclusion != nil {
				concluded = true
				break
			}
		}
		assert.True(t, concluded, "scenario %s did not conclude in %d steps", sc.ID, len(sc.Nodes))
	}
}
