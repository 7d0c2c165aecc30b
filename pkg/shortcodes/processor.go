package shortcodes

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/rs/zerolog"
)

// maxDepth bounds nested expansion of shortcode content.
const maxDepth = 8

// Context is handed to providers while expanding.
type Context struct {
	Model     any
	Processor *Processor
	depth     int
}

// Provider renders shortcodes. handled=false passes the tag to the next
// provider.
type Provider interface {
	Evaluate(ctx context.Context, code Shortcode, sc *Context) (out string, handled bool, err error)
}

// ProviderFunc adapts a function into a Provider.
type ProviderFunc func(ctx context.Context, code Shortcode, sc *Context) (string, bool, error)

func (fn ProviderFunc) Evaluate(ctx context.Context, code Shortcode, sc *Context) (string, bool, error) {
	return fn(ctx, code, sc)
}

// Named returns a provider handling only the given shortcode name.
func Named(name string, render func(ctx context.Context, code Shortcode, sc *Context) (string, error)) Provider {
	name = strings.ToLower(strings.TrimSpace(name))
	return ProviderFunc(func(ctx context.Context, code Shortcode, sc *Context) (string, bool, error) {
		if strings.ToLower(code.Name) != name {
			return "", false, nil
		}
		out, err := render(ctx, code, sc)
		return out, true, err
	})
}

type entry struct {
	provider Provider
	priority int
	order    int
}

// Option configures a Processor.
type Option func(*Processor)

// WithLogger sets the processor logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(p *Processor) {
		p.logger = logger
	}
}

// Processor expands shortcodes using registered providers. Higher priority
// providers are consulted first; ties keep registration order.
type Processor struct {
	mu      sync.RWMutex
	entries []entry
	logger  zerolog.Logger
}

// NewProcessor returns a processor with no providers.
func NewProcessor(options ...Option) *Processor {
	p := &Processor{logger: zerolog.Nop()}
	for _, opt := range options {
		if opt != nil {
			opt(p)
		}
	}
	return p
}

// Register adds provider at priority.
func (p *Processor) Register(provider Provider, priority int) {
	if p == nil || provider == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.entries = append(p.entries, entry{provider: provider, priority: priority, order: len(p.entries)})
	sort.SliceStable(p.entries, func(i, j int) bool {
		if p.entries[i].priority == p.entries[j].priority {
			return p.entries[i].order < p.entries[j].order
		}
		return p.entries[i].priority > p.entries[j].priority
	})
}

// Process expands every shortcode in text. model is exposed to providers.
func (p *Processor) Process(ctx context.Context, text string, model any) (string, error) {
	return p.process(ctx, text, &Context{Model: model, Processor: p})
}

// Expand expands nested content from inside a provider.
func (sc *Context) Expand(ctx context.Context, text string) (string, error) {
	if sc == nil || sc.Processor == nil {
		return text, nil
	}
	return sc.Processor.process(ctx, text, &Context{Model: sc.Model, Processor: sc.Processor, depth: sc.depth + 1})
}

func (p *Processor) process(ctx context.Context, text string, sc *Context) (string, error) {
	if !strings.Contains(text, "[") {
		return text, nil
	}
	if sc.depth > maxDepth {
		return "", errors.New("shortcodes: nesting too deep")
	}

	var b strings.Builder
	pos := 0
	for pos < len(text) {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		t, ok := nextTag(text, pos)
		if !ok {
			break
		}
		b.WriteString(text[pos:t.start])

		if t.escaped {
			b.WriteString(text[t.start+1 : t.end-1])
			pos = t.end
			continue
		}
		if t.closing {
			b.WriteString(text[t.start:t.end])
			pos = t.end
			continue
		}

		code := Shortcode{
			Name:        t.name,
			Args:        ParseArgs(t.args),
			Raw:         text[t.start:t.end],
			SelfClosing: t.selfClosing,
		}
		next := t.end
		closing := ""
		if !t.selfClosing {
			if closeStart, closeEnd, found := closingTag(text, t.name, t.end); found {
				inner, err := sc.Expand(ctx, text[t.end:closeStart])
				if err != nil {
					return "", err
				}
				code.Content = inner
				code.Raw = text[t.start:closeEnd]
				closing = text[closeStart:closeEnd]
				next = closeEnd
			}
		}

		out, handled, err := p.evaluate(ctx, code, sc)
		if err != nil {
			return "", fmt.Errorf("shortcodes: [%s]: %w", code.Name, err)
		}
		if !handled {
			// Unknown tags stay verbatim around their expanded content.
			b.WriteString(text[t.start:t.end])
			b.WriteString(code.Content)
			b.WriteString(closing)
			pos = next
			continue
		}
		b.WriteString(out)
		pos = next
	}
	b.WriteString(text[pos:])
	return b.String(), nil
}

func (p *Processor) evaluate(ctx context.Context, code Shortcode, sc *Context) (string, bool, error) {
	p.mu.RLock()
	entries := append([]entry(nil), p.entries...)
	p.mu.RUnlock()

	for _, e := range entries {
		out, handled, err := e.provider.Evaluate(ctx, code, sc)
		if err != nil {
			return "", true, err
		}
		if handled {
			return out, true, nil
		}
	}
	p.logger.Debug().Str("shortcode", code.Name).Msg("no provider handled shortcode")
	return "", false, nil
}
