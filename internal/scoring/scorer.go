// Package scoring implements the prioritization algorithm behind the
// bundled reference service: weighted urgency/importance/effort/dependency
// factors on a 0-100 scale.
package scoring

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"taskpilot/internal/task"
)

// Weights distributes the four scoring factors. Must sum to 1.0 (±0.01).
type Weights struct {
	Urgency    float64
	Importance float64
	Effort     float64
	Dependency float64
}

// DefaultStrategy is applied when a request names no strategy.
const DefaultStrategy = "smart_balance"

// Strategies is the catalog of named weightings the service accepts.
var Strategies = map[string]Weights{
	"smart_balance":   {Urgency: 0.35, Importance: 0.35, Effort: 0.2, Dependency: 0.1},
	"fastest_wins":    {Urgency: 0.1, Importance: 0.1, Effort: 0.7, Dependency: 0.1},
	"high_impact":     {Urgency: 0.2, Importance: 0.6, Effort: 0.1, Dependency: 0.1},
	"deadline_driven": {Urgency: 0.6, Importance: 0.2, Effort: 0.1, Dependency: 0.1},
}

// StrategyNames returns the catalog keys in stable order.
func StrategyNames() []string {
	names := make([]string, 0, len(Strategies))
	for name := range Strategies {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

var (
	ErrBadWeights      = errors.New("weights must sum to 1.0")
	ErrUnknownStrategy = errors.New("unknown strategy")
	ErrCircularDeps    = errors.New("circular dependencies detected")
)

type Scorer struct {
	weights Weights
	now     func() time.Time
}

// New builds a scorer with explicit weights.
func New(weights Weights) (*Scorer, error) {
	sum := weights.Urgency + weights.Importance + weights.Effort + weights.Dependency
	if sum < 0.99 || sum > 1.01 {
		return nil, ErrBadWeights
	}
	return &Scorer{weights: weights, now: time.Now}, nil
}

// ForStrategy builds a scorer from the named catalog entry.
func ForStrategy(name string) (*Scorer, error) {
	if name == "" {
		name = DefaultStrategy
	}
	w, ok := Strategies[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (valid: %s)", ErrUnknownStrategy, name, strings.Join(StrategyNames(), ", "))
	}
	return New(w)
}

// urgency maps days-until-due to 0-10. Overdue and due-within-a-day both
// score maximum; beyond a week it decays logarithmically.
func (s *Scorer) urgency(due time.Time) float64 {
	days := math.Floor(due.Sub(s.now()).Hours() / 24)
	switch {
	case days < 0:
		return 10
	case days <= 1:
		return 10
	case days <= 3:
		return 9 - (days - 1)
	case days <= 7:
		return 7 - (days-3)/4
	default:
		return math.Max(0, 5-math.Log(days-6))
	}
}

// effort maps estimated hours to 0-10, rewarding quick wins.
func (s *Scorer) effort(hours float64) float64 {
	switch {
	case hours <= 0:
		return 0
	case hours < 1:
		return 10
	case hours <= 2:
		return 10 - hours*1.5
	case hours <= 4:
		return 7 - (hours-2)/2
	default:
		return math.Max(0, 5-math.Log(hours-3))
	}
}

// dependency scores how many other tasks are blocked on this one.
func (s *Scorer) dependency(id int64, tasks []task.Task) float64 {
	count := 0
	for _, t := range tasks {
		for _, dep := range t.Dependencies {
			if dep == id {
				count++
				break
			}
		}
	}
	return math.Min(10, float64(count)*2)
}

// ScoreAll scores every task against the whole collection and returns the
// results sorted by descending priority score.
func (s *Scorer) ScoreAll(tasks []task.Task) ([]task.Result, error) {
	results := make([]task.Result, 0, len(tasks))
	for _, t := range tasks {
		due, err := task.ParseDue(t.DueDate)
		if err != nil {
			return nil, fmt.Errorf("task %d: due_date: %w", t.ID, err)
		}

		breakdown := map[string]float64{
			"urgency":    s.urgency(due),
			"importance": float64(t.Importance),
			"effort":     s.effort(t.EstimatedHours),
			"dependency": s.dependency(t.ID, tasks),
		}
		score := (breakdown["urgency"]*s.weights.Urgency +
			breakdown["importance"]*s.weights.Importance +
			breakdown["effort"]*s.weights.Effort +
			breakdown["dependency"]*s.weights.Dependency) * 10
		score = math.Round(score*100) / 100

		results = append(results, task.Result{
			Task:           t,
			PriorityScore:  score,
			ScoreBreakdown: breakdown,
			Explanation:    explain(breakdown),
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].PriorityScore > results[j].PriorityScore
	})
	return results, nil
}

// explain turns the factor breakdown into the short human summary shown
// next to each scored task.
func explain(breakdown map[string]float64) string {
	var parts []string

	if breakdown["urgency"] >= 9 {
		parts = append(parts, "High urgency (due very soon)")
	} else if breakdown["urgency"] >= 7 {
		parts = append(parts, "Moderate urgency")
	}

	if breakdown["importance"] >= 8 {
		parts = append(parts, "Very important task")
	} else if breakdown["importance"] >= 6 {
		parts = append(parts, "Important task")
	}

	if breakdown["effort"] >= 8 {
		parts = append(parts, "Quick win (low effort)")
	} else if breakdown["effort"] <= 3 {
		parts = append(parts, "High effort")
	}

	if breakdown["dependency"] >= 4 {
		parts = append(parts, "Blocks other tasks")
	}

	if len(parts) == 0 {
		return "Moderate priority based on current factors"
	}
	return strings.Join(parts, " • ")
}

// HasCycle reports whether the dependency graph contains a cycle. Dangling
// ids are fine; they just have no outgoing edges.
func HasCycle(tasks []task.Task) bool {
	graph := make(map[int64][]int64, len(tasks))
	for _, t := range tasks {
		graph[t.ID] = t.Dependencies
	}

	visited := make(map[int64]bool)
	var visit func(node int64, stack map[int64]bool) bool
	visit = func(node int64, stack map[int64]bool) bool {
		visited[node] = true
		stack[node] = true
		for _, next := range graph[node] {
			if stack[next] {
				return true
			}
			if !visited[next] && visit(next, stack) {
				return true
			}
		}
		delete(stack, node)
		return false
	}

	for id := range graph {
		if !visited[id] && visit(id, map[int64]bool{}) {
			return true
		}
	}
	return false
}
