package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/psychicstar/internal/client/controller"
	"github.com/dmitrijs2005/psychicstar/internal/client/quiz"
	"github.com/dmitrijs2005/psychicstar/internal/client/services"
)

func unavailable() error {
	return &controller.Error{Message: controller.MsgUnavailable, Err: controller.ErrWrongState}
}

const consentText = `The Collective reads the energy of your words together with your
personality profile. Your answers and readings are stored on this device and
used only to shape your readings.`

func (a *App) Consent(ctx context.Context) error {
	if a.state() != controller.StateNeedsConsent {
		return unavailable()
	}

	fmt.Fprintln(a.out, consentText)
	answer, err := a.readLine("Type 'yes' to consent")
	if err != nil {
		return err
	}
	if !strings.EqualFold(answer, "yes") {
		fmt.Fprintln(a.out, "Consent is required to continue.")
		return nil
	}

	if err := a.ctrl.Consent(ctx); err != nil {
		return err
	}
	a.printNextStep()
	return nil
}

// Quiz asks every inventory item and re-prompts until the answer is a whole
// number on the 1..7 scale.
func (a *App) Quiz(ctx context.Context) error {
	if a.state() != controller.StateNeedsQuiz {
		return unavailable()
	}

	fmt.Fprintf(a.out, "Rate each statement from %d (disagree strongly) to %d (agree strongly).\n", quiz.MinAnswer, quiz.MaxAnswer)
	answers := make(map[int]int, len(quiz.Items))
	for i, item := range quiz.Items {
		for {
			s, err := a.readLine(fmt.Sprintf("%d/%d. %s", i+1, len(quiz.Items), item.Text))
			if err != nil {
				return err
			}
			v, err := strconv.Atoi(s)
			if err == nil && v >= quiz.MinAnswer && v <= quiz.MaxAnswer {
				answers[item.ID] = v
				break
			}
			fmt.Fprintf(a.out, "Please answer with a number from %d to %d.\n", quiz.MinAnswer, quiz.MaxAnswer)
		}
	}

	if err := a.ctrl.CompleteQuiz(ctx, answers); err != nil {
		return err
	}
	a.printNextStep()
	return nil
}

func (a *App) Mood(ctx context.Context, args []string) error {
	if len(args) != 1 {
		fmt.Fprintf(a.out, "Usage: mood <%d-%d>\n", services.MinMood, services.MaxMood)
		return nil
	}
	v, err := strconv.Atoi(args[0])
	if err != nil {
		fmt.Fprintf(a.out, "Usage: mood <%d-%d>\n", services.MinMood, services.MaxMood)
		return nil
	}

	if err := a.ctrl.LogMood(ctx, v); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Your mood has been recorded.")
	return nil
}

// Ask composes a new inquiry. The question is taken from args or, when
// absent, read as multi-line text.
func (a *App) Ask(ctx context.Context, args []string) error {
	if a.state() != controller.StateComposingReading {
		if err := a.ctrl.NewReading(); err != nil {
			return err
		}
	}

	query := strings.Join(args, " ")
	if query == "" {
		var err error
		query, err = getMultiline(a.reader, "What do you seek to know?", a.out)
		if err != nil {
			return err
		}
		a.touch()
	}

	fmt.Fprintln(a.out, "The Collective is contemplating your inquiry...")
	if err := a.ctrl.RequestReading(ctx, query); err != nil {
		return err
	}

	v := a.ctrl.View()
	if v.State == controller.StateReadingDetail && v.Current != nil {
		printReading(a.out, *v.Current)
	}
	return nil
}

func (a *App) Readings(context.Context) error {
	v := a.ctrl.View()
	if !v.State.SignedIn() {
		return unavailable()
	}
	printHistory(a.out, v.Readings)
	return nil
}

// Show opens a reading by its 1-based position in the history or by id.
func (a *App) Show(_ context.Context, args []string) error {
	if len(args) != 1 {
		fmt.Fprintln(a.out, "Usage: show <n|id>")
		return nil
	}

	id := args[0]
	if n, err := strconv.Atoi(id); err == nil {
		readings := a.ctrl.View().Readings
		if n >= 1 && n <= len(readings) {
			id = readings[historyIndex(len(readings), n)].ID
		}
	}

	if err := a.ctrl.OpenReading(id); err != nil {
		return err
	}
	a.printNextStep()
	return nil
}

func (a *App) Dashboard(context.Context) error {
	if err := a.ctrl.ReturnToDashboard(); err != nil {
		return err
	}
	a.printNextStep()
	return nil
}
