// Package session applies user actions to the progress store and tracks the
// current question and counters.
package session

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/verte-zerg/ladder/internal/generator"
	"github.com/verte-zerg/ladder/internal/model"
	"github.com/verte-zerg/ladder/internal/progress"
	"github.com/verte-zerg/ladder/internal/speech"
)

// DefaultNoticeDuration is how long toasts stay visible.
const DefaultNoticeDuration = 3 * time.Second

// Recorder stores submitted answers. It is optional.
type Recorder interface {
	InsertAttempt(ctx context.Context, attempt model.Attempt) (int64, error)
}

// Picker draws a question from a word pool.
type Picker interface {
	Pick(pool map[string]string) (string, string)
}

// State is a snapshot of the session for rendering.
type State struct {
	Category string
	Question string
	Answer   string
	Input    string
	Correct  int
	Errors   int
	Level    model.Level
	Hint     bool
}

// Options configures a Controller.
type Options struct {
	Repository     progress.Repository
	Picker         Picker
	Speaker        speech.Speaker
	Recorder       Recorder
	Logger         logrus.FieldLogger
	Level          model.Level
	Hint           bool
	NoticeDuration time.Duration
	Now            func() time.Time
}

// Controller owns the session state and the in-memory progress store.
type Controller struct {
	repo     progress.Repository
	picker   Picker
	speaker  speech.Speaker
	recorder Recorder
	log      logrus.FieldLogger
	notice   time.Duration
	now      func() time.Time

	words *progress.Words
	state State
}

// New builds a controller and loads progress from the repository.
func New(opts Options) *Controller {
	c := &Controller{
		repo:     opts.Repository,
		picker:   opts.Picker,
		speaker:  opts.Speaker,
		recorder: opts.Recorder,
		log:      opts.Logger,
		notice:   opts.NoticeDuration,
		now:      opts.Now,
	}
	if c.picker == nil {
		c.picker = generator.New()
	}
	if c.speaker == nil {
		c.speaker = speech.Nop{}
	}
	if c.log == nil {
		c.log = logrus.StandardLogger()
	}
	if c.notice <= 0 {
		c.notice = DefaultNoticeDuration
	}
	if c.now == nil {
		c.now = time.Now
	}
	c.state.Level = opts.Level
	c.state.Hint = opts.Hint
	c.words = progress.LoadOrEmpty(c.repo, c.log)
	return c
}

// State returns a copy of the session state.
func (c *Controller) State() State {
	return c.state
}

// Words exposes the progress store for read-only display.
func (c *Controller) Words() *progress.Words {
	return c.words
}

// Dispatch applies an intent and returns the notices it produced.
func (c *Controller) Dispatch(in Intent) []Notice {
	switch in := in.(type) {
	case SelectCategory:
		c.selectCategory(in.Name)
	case SetInput:
		c.state.Input = in.Text
	case Submit:
		return c.submit()
	case Reload:
		c.reload()
	case Review:
		return c.review()
	case Save:
		return c.save()
	case ToggleHint:
		c.state.Hint = !c.state.Hint
	case SetLevel:
		c.state.Level = in.Level
	case Speak:
		c.playAudio()
	}
	return nil
}

func (c *Controller) selectCategory(name string) {
	c.state.Category = name
	c.state.Input = ""
	c.resetCounters()
	c.chooseWord()
	c.log.WithFields(logrus.Fields{
		"category":  name,
		"remaining": c.words.RemainingWords(name),
	}).Debug("category selected")
}

func (c *Controller) submit() []Notice {
	correct := c.state.Input == c.state.Answer
	if c.state.Question != "" {
		c.record(correct)
	}

	var notice Notice
	if correct {
		c.state.Correct++
		c.words.CompleteWord(c.state.Category, c.state.Question, c.state.Answer)
		notice = c.successNotice("Success Word")
	} else {
		c.state.Errors++
		notice = c.errorNotice("Error Word")
	}
	c.state.Input = ""
	c.chooseWord()
	return []Notice{notice}
}

func (c *Controller) reload() {
	c.words = progress.LoadOrEmpty(c.repo, c.log)
	c.state.Input = ""
	c.resetCounters()
	c.chooseWord()
}

func (c *Controller) review() []Notice {
	c.words.Review()
	if c.state.Question == "" {
		c.chooseWord()
	}
	return []Notice{c.successNotice("Review success")}
}

func (c *Controller) save() []Notice {
	if err := c.repo.Save(c.words); err != nil {
		c.log.WithError(err).Error("failed to save progress")
		return []Notice{c.errorNotice("Save failed: " + err.Error())}
	}
	return []Notice{c.successNotice("Save success")}
}

func (c *Controller) chooseWord() {
	pool := c.words.Pool(c.state.Category)
	c.state.Question, c.state.Answer = c.picker.Pick(pool)
	c.playAudio()
}

func (c *Controller) playAudio() {
	if c.state.Level != model.LevelLow || c.state.Question == "" {
		return
	}
	c.speaker.Speak(c.state.Answer)
}

func (c *Controller) resetCounters() {
	c.state.Correct = 0
	c.state.Errors = 0
}

func (c *Controller) record(correct bool) {
	if c.recorder == nil {
		return
	}
	attempt := model.Attempt{
		AnsweredAt: c.now(),
		Category:   c.state.Category,
		Question:   c.state.Question,
		Answer:     c.state.Answer,
		Input:      c.state.Input,
		Correct:    correct,
	}
	if _, err := c.recorder.InsertAttempt(context.Background(), attempt); err != nil {
		c.log.WithError(err).Warn("failed to record attempt")
	}
}

func (c *Controller) successNotice(text string) Notice {
	return Notice{Kind: NoticeSuccess, Text: text, Duration: c.notice}
}

func (c *Controller) errorNotice(text string) Notice {
	return Notice{Kind: NoticeError, Text: text, Duration: c.notice}
}
