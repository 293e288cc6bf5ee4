package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/psychicstar/internal/client/controller"
	"github.com/dmitrijs2005/psychicstar/internal/client/models"
	"github.com/dmitrijs2005/psychicstar/internal/client/quiz"
)

const timeLayout = "2006-01-02 15:04"

func printDashboard(w io.Writer, v controller.View) {
	if v.User == nil {
		return
	}
	fmt.Fprintf(w, "Welcome back, %s.\n", v.User.Name)

	if q := v.User.QuizResults; q != nil {
		fmt.Fprintf(w, "Profile: extraversion %d, agreeableness %d, conscientiousness %d, neuroticism %d, openness %d\n",
			q.Extraversion, q.Agreeableness, q.Conscientiousness, q.Neuroticism, q.Openness)
		fmt.Fprintf(w, "Dominant trait: %s\n", quiz.DominantTrait(q))
	}

	if v.MoodToday {
		fmt.Fprintln(w, "Mood logged today.")
	} else {
		fmt.Fprintln(w, "How do you feel today? Log it with 'mood <1-5>'.")
	}

	fmt.Fprintf(w, "Readings in your history: %d. Type 'ask' to consult the Collective.\n", len(v.Readings))
}

func printHistory(w io.Writer, readings []models.Reading) {
	if len(readings) == 0 {
		fmt.Fprintln(w, "No readings yet.")
		return
	}
	// newest first; historyIndex maps the numbers back
	for n := 1; n <= len(readings); n++ {
		r := readings[historyIndex(len(readings), n)]
		fmt.Fprintf(w, "%d. [%s] %s\n", n, r.Time().Format(timeLayout), oneLine(r.Query, 60))
	}
}

// historyIndex returns the slice index of the n-th entry of a history
// listing of size readings.
func historyIndex(size, n int) int {
	return size - n
}

func oneLine(s string, limit int) string {
	s = strings.Join(strings.Fields(s), " ")
	if r := []rune(s); len(r) > limit {
		return string(r[:limit-1]) + "…"
	}
	return s
}

func printReading(w io.Writer, r models.Reading) {
	fmt.Fprintf(w, "== Reading of %s ==\n", r.Time().Format(timeLayout))
	fmt.Fprintf(w, "Inquiry: %s\n\n", r.Query)

	fmt.Fprintln(w, "Energetic overview")
	fmt.Fprintf(w, "  %s\n  %s\n\n", r.EnergeticOverview.Symbolic, r.EnergeticOverview.Translation)

	fmt.Fprintln(w, "Core traits")
	for _, t := range r.CoreTraits {
		fmt.Fprintf(w, "  - %s (%d%%): %s\n", t.Trait, t.Confidence, t.Description)
	}

	fmt.Fprintln(w, "\nDominant archetypes")
	for _, a := range r.DominantArchetypes {
		fmt.Fprintf(w, "  - %s: %s\n", a.Name, a.Description)
		for _, ind := range a.BehavioralIndicators {
			fmt.Fprintf(w, "      * %s\n", ind)
		}
	}

	fmt.Fprintln(w, "\nAction plan")
	fmt.Fprintf(w, "  Short term:  %s\n", r.ActionPlan.ShortTerm)
	fmt.Fprintf(w, "  Medium term: %s\n", r.ActionPlan.MediumTerm)
	fmt.Fprintf(w, "  Long term:   %s\n", r.ActionPlan.LongTerm)

	if len(r.RedFlags) > 0 {
		fmt.Fprintln(w, "\nRed flags")
		for _, f := range r.RedFlags {
			fmt.Fprintf(w, "  - %s\n", f)
		}
	}

	fmt.Fprintln(w, "\nFuture projection")
	printPath(w, "A", r.FutureProjection.PathA)
	printPath(w, "B", r.FutureProjection.PathB)

	fmt.Fprintf(w, "\n%s\n", r.ClosingWisdom)
}

func printPath(w io.Writer, label string, p models.Path) {
	fmt.Fprintf(w, "  Path %s: %s (%s)\n    %s\n", label, p.PathName, p.Probability, p.Description)
}
