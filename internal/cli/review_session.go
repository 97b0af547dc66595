package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/at-ishikawa/srnotes/internal/queue"
	"github.com/at-ishikawa/srnotes/internal/srs"
)

//go:generate mockgen -source=review_session.go -destination=../mocks/cli/mock_reviewer.go -package=mock_cli Reviewer

// Reviewer stores the response to a card.
type Reviewer interface {
	ReviewCard(ctx context.Context, path string, questionIndex, cardIndex int, response srs.Response) (srs.ScheduleInfo, error)
}

var responseShortcuts = map[string]srs.Response{
	"e": srs.Easy,
	"g": srs.Good,
	"h": srs.Hard,
	"r": srs.Reset,
}

// ReviewSessionCLI asks the cards of a queue one by one
type ReviewSessionCLI struct {
	*InteractiveCLI
	reviewer Reviewer
	queue    *queue.Queue
	reviewed int
}

func NewReviewSessionCLI(reviewer Reviewer, q *queue.Queue, stdin io.Reader, stdout io.Writer) *ReviewSessionCLI {
	return &ReviewSessionCLI{
		InteractiveCLI: newInteractiveCLI(stdin, stdout),
		reviewer:       reviewer,
		queue:          q,
	}
}

// Reviewed returns the number of cards answered in the session
func (r *ReviewSessionCLI) Reviewed() int {
	return r.reviewed
}

func (r *ReviewSessionCLI) Session(ctx context.Context) error {
	w := r.stdoutWriter
	item, err := r.queue.Next()
	if err != nil {
		if errors.Is(err, queue.ErrEmptyQueue) {
			_, _ = fmt.Fprintln(w, "No more cards to review!")
			return errEnd
		}
		return fmt.Errorf("queue.Next() > %w", err)
	}

	deck := item.TopicPath.String()
	if deck == "" {
		deck = item.NotePath
	}
	label := "due"
	if item.IsNew {
		label = "new"
	}
	_, _ = r.italic.Fprintf(w, "[%s] %s (%s, %d left)\n", deck, item.NotePath, label, r.queue.Len())
	_, _ = r.bold.Fprintln(w, item.Front)
	_, _ = fmt.Fprint(w, "Press Enter to show the answer: ")
	if _, err := r.readLine(); err != nil {
		return err
	}
	_, _ = fmt.Fprintln(w, item.Back)

	response, err := r.askResponse()
	if err != nil {
		return err
	}

	schedule, err := r.reviewer.ReviewCard(ctx, item.NotePath, item.QuestionIndex, item.CardIndex, response)
	if err != nil {
		return fmt.Errorf("reviewer.ReviewCard() > %w", err)
	}
	r.reviewed++
	_, _ = r.green.Fprintf(w, "Next review on %s (interval %d days, ease %d)\n",
		schedule.FormatDueDate(),
		schedule.Interval,
		schedule.Ease,
	)
	_, _ = fmt.Fprintln(w)
	return nil
}

// askResponse prompts until a valid response is given. "q" ends the session.
func (r *ReviewSessionCLI) askResponse() (srs.Response, error) {
	for {
		_, _ = fmt.Fprint(r.stdoutWriter, "Response [e]asy/[g]ood/[h]ard/[r]eset, [q]uit: ")
		input, err := r.readLine()
		if err != nil {
			return 0, err
		}
		if input == "q" || input == "quit" {
			return 0, errEnd
		}
		if response, ok := responseShortcuts[input]; ok {
			return response, nil
		}
		response, err := srs.ParseResponse(input)
		if err == nil {
			return response, nil
		}
		_, _ = r.red.Fprintf(r.stdoutWriter, "Unknown response %q\n", input)
	}
}
