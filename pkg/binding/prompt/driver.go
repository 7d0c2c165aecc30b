// Package prompt binds editor models interactively from a terminal. It backs
// the CLI edit command and mirrors the form binder's field naming.
package prompt

import (
	"context"
	"errors"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
)

// ErrAborted signals the user aborted input (e.g. Ctrl+C).
var ErrAborted = errors.New("prompt: aborted")

// Question describes one prompt.
type Question struct {
	Name      string
	Message   string
	Help      string
	Default   string
	Options   []string
	Defaults  []string
	Validator func(string) error
}

// Driver abstracts the terminal so binding can be tested without one.
type Driver interface {
	Input(ctx context.Context, q Question) (string, error)
	Confirm(ctx context.Context, q Question, def bool) (bool, error)
	MultiSelect(ctx context.Context, q Question) ([]string, error)
	TextArea(ctx context.Context, q Question) (string, error)
}

// SurveyDriver prompts on the process terminal.
type SurveyDriver struct {
	Stdio *terminal.Stdio
}

var _ Driver = SurveyDriver{}

func (d SurveyDriver) Input(ctx context.Context, q Question) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	var out string
	p := &survey.Input{
		Message: q.Message,
		Help:    q.Help,
		Default: q.Default,
	}
	opts := d.options()
	if q.Validator != nil {
		validate := q.Validator
		opts = append(opts, survey.WithValidator(func(ans interface{}) error {
			s, _ := ans.(string)
			return validate(s)
		}))
	}
	if err := survey.AskOne(p, &out, opts...); err != nil {
		return "", translateSurveyErr(err)
	}
	return out, nil
}

func (d SurveyDriver) Confirm(ctx context.Context, q Question, def bool) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	var out bool
	p := &survey.Confirm{
		Message: q.Message,
		Help:    q.Help,
		Default: def,
	}
	if err := survey.AskOne(p, &out, d.options()...); err != nil {
		return false, translateSurveyErr(err)
	}
	return out, nil
}

func (d SurveyDriver) MultiSelect(ctx context.Context, q Question) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var out []string
	p := &survey.MultiSelect{
		Message: q.Message,
		Options: q.Options,
		Help:    q.Help,
	}
	if defaults := knownOptions(q.Options, q.Defaults); len(defaults) > 0 {
		p.Default = defaults
	}
	if err := survey.AskOne(p, &out, d.options()...); err != nil {
		return nil, translateSurveyErr(err)
	}
	return out, nil
}

func (d SurveyDriver) TextArea(ctx context.Context, q Question) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	var out string
	p := &survey.Multiline{
		Message: q.Message,
		Help:    q.Help,
		Default: q.Default,
	}
	if err := survey.AskOne(p, &out, d.options()...); err != nil {
		return "", translateSurveyErr(err)
	}
	return out, nil
}

func (d SurveyDriver) options() []survey.AskOpt {
	if d.Stdio == nil {
		return nil
	}
	return []survey.AskOpt{survey.WithStdio(d.Stdio.In, d.Stdio.Out, d.Stdio.Err)}
}

func translateSurveyErr(err error) error {
	if errors.Is(err, terminal.InterruptErr) {
		return ErrAborted
	}
	return err
}

func knownOptions(options, values []string) []string {
	allowed := make(map[string]struct{}, len(options))
	for _, option := range options {
		allowed[option] = struct{}{}
	}
	var out []string
	for _, value := range values {
		if _, ok := allowed[value]; ok {
			out = append(out, value)
		}
	}
	return out
}
