package narrative

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/turf-advisor/internal/metrics"
	"github.com/yourusername/turf-advisor/internal/models"
)

const systemPrompt = "You are a concise French horse-racing tipster. " +
	"Write a short, factual race preview from the structured analysis you are given. " +
	"Never invent numbers; only restate the scores and selections provided."

// Renderer produces the narrative text for an accepted race. It prefers
// the completion collaborator and falls back to a deterministic
// template built solely from already-computed values.
type Renderer struct {
	completer Completer
	enabled   bool
	logger    *logrus.Logger
}

// NewRenderer creates a new renderer. completer may be nil when
// generation is disabled; the template is then always used.
func NewRenderer(completer Completer, enabled bool, logger *logrus.Logger) *Renderer {
	return &Renderer{
		completer: completer,
		enabled:   enabled,
		logger:    logger,
	}
}

// Render returns narrative prose for the analysis. Never fails: any
// completion problem degrades to the template.
func (r *Renderer) Render(ctx context.Context, race *models.Race, analysis *models.RaceAnalysis) string {
	if r.enabled && r.completer != nil {
		text, err := r.completer.Complete(ctx, systemPrompt, buildPrompt(race, analysis))
		if err == nil && strings.TrimSpace(text) != "" {
			return text
		}
		metrics.NarrativeFallbacksTotal.Inc()
		r.logger.WithError(err).WithField("race", race.Label()).Warn("Completion failed, using template narrative")
	}

	return renderTemplate(race, analysis)
}

// buildPrompt serializes the analysis into the user prompt.
func buildPrompt(race *models.Race, analysis *models.RaceAnalysis) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Race: %s, %d m, %s.\n", race.Label(), race.Distance, race.Discipline)
	if race.TrackCondition != "" {
		fmt.Fprintf(&b, "Track condition: %s.\n", race.TrackCondition)
	}
	if race.WeatherCondition != "" {
		fmt.Fprintf(&b, "Weather: %s.\n", race.WeatherCondition)
	}

	b.WriteString("Ranked entrants (number, name, total score, confidence):\n")
	for i, s := range analysis.Scores {
		fmt.Fprintf(&b, "%d. #%d %s — %.1f (%s)\n", i+1, s.EntrantNumber, s.EntrantName, s.Total, s.Confidence)
	}

	fmt.Fprintf(&b, "Win picks: %s. Trio: %s. Quinte: %s.\n",
		joinNumbers(analysis.WinPicks), joinNumbers(analysis.Trio), joinNumbers(analysis.Quinte))

	return b.String()
}

// renderTemplate is the deterministic fallback. It lists the top pick,
// favorites, outsiders, and the selections without inventing anything.
func renderTemplate(race *models.Race, analysis *models.RaceAnalysis) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Analysis for %s over %d m", race.Label(), race.Distance)
	if race.WeatherCondition != "" {
		fmt.Fprintf(&b, " (weather: %s)", race.WeatherCondition)
	}
	b.WriteString(".\n")

	if analysis.TopPick != nil {
		fmt.Fprintf(&b, "Top pick: #%d %s with a total score of %.1f (%s confidence).\n",
			analysis.TopPick.EntrantNumber, analysis.TopPick.EntrantName,
			analysis.TopPick.Total, analysis.TopPick.Confidence)
	}

	if len(analysis.Favorites) > 0 {
		fmt.Fprintf(&b, "Favorites: %s.\n", joinScores(analysis.Favorites))
	}
	if len(analysis.Outsiders) > 0 {
		fmt.Fprintf(&b, "Outsiders to watch: %s.\n", joinScores(analysis.Outsiders))
	}

	fmt.Fprintf(&b, "Suggested win picks: %s. Trio: %s.",
		joinNumbers(analysis.WinPicks), joinNumbers(analysis.Trio))
	if len(analysis.Quinte) == 5 {
		fmt.Fprintf(&b, " Quinte selection: %s.", joinNumbers(analysis.Quinte))
	}

	return b.String()
}

func joinNumbers(numbers []int) string {
	if len(numbers) == 0 {
		return "none"
	}
	parts := make([]string, len(numbers))
	for i, n := range numbers {
		parts[i] = fmt.Sprintf("%d", n)
	}
	return strings.Join(parts, "-")
}

func joinScores(scores []models.EntrantScore) string {
	parts := make([]string, len(scores))
	for i, s := range scores {
		parts[i] = fmt.Sprintf("#%d %s (%.1f)", s.EntrantNumber, s.EntrantName, s.Total)
	}
	return strings.Join(parts, ", ")
}
