// Package grammar binds a lexer and a parser into a named pair the harness
// can run. Built-in grammars register themselves at init.
package grammar

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"grun/internal/diag"
	"grun/internal/parser"
	"grun/internal/source"
	"grun/internal/token"
)

// ErrUnknownGrammar is returned by Lookup for unregistered names.
var ErrUnknownGrammar = errors.New("unknown grammar")

// Options are shared by both halves of a grammar run.
type Options struct {
	Reporter       diag.Reporter // может быть nil
	KeepWhitespace bool
}

// Grammar is a lexer/parser pair over one vocabulary.
type Grammar interface {
	Name() string
	Description() string
	Vocabulary() token.Vocabulary
	// Tokenize returns a filled stream ending with EOF.
	Tokenize(file *source.File, opts Options) (*token.Stream, error)
	// Parse runs the entry production over tokens and counts syntax errors.
	Parse(ctx context.Context, file *source.File, tokens *token.Stream, opts Options) (*parser.Result, error)
}

var (
	mu       sync.RWMutex
	registry = map[string]Grammar{}
)

// Register adds g under its name. Registering the same name twice panics.
func Register(g Grammar) {
	mu.Lock()
	defer mu.Unlock()
	name := g.Name()
	if _, dup := registry[name]; dup {
		panic(fmt.Sprintf("grammar: %q registered twice", name))
	}
	registry[name] = g
}

// Lookup finds a grammar by name (case-insensitive).
func Lookup(name string) (Grammar, error) {
	mu.RLock()
	g, ok := registry[strings.ToLower(name)]
	mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w %q (available: %s)", ErrUnknownGrammar, name, strings.Join(Names(), ", "))
	}
	return g, nil
}

// Names returns registered grammar names, sorted.
func Names() []string {
	mu.RLock()
	defer mu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
