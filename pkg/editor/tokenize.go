package editor

import (
	"cmp"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/aretw0/automata/pkg/nfa"
)

// SymbolSeparator splits an input explicitly into symbols, bypassing
// longest-match tokenization.
const SymbolSeparator = ","

// Tokens is a tokenized input.
type Tokens struct {
	// Symbols is the sequence handed to the simulator. Unknown tokens are kept
	// in place so the run rejects on them.
	Symbols []string
	// Unknown lists the tokens that are not in the alphabet, in input order.
	Unknown []string
}

// Tokenize normalizes input and splits it into alphabet symbols.
//
// If input contains SymbolSeparator, each separated part is one symbol. Otherwise
// the input is scanned left to right taking the longest alphabet symbol whose
// remainder can still be covered by alphabet symbols. A one-character unknown
// token is emitted only where no segmentation covers the rest of the input
// and no symbol matches.
func Tokenize(input string, alphabet []string) Tokens {
	known := make(map[string]struct{}, len(alphabet))
	for _, sym := range alphabet {
		if sym != "" {
			known[sym] = struct{}{}
		}
	}

	var toks Tokens
	emit := func(sym string) {
		toks.Symbols = append(toks.Symbols, sym)
		if _, ok := known[sym]; !ok {
			toks.Unknown = append(toks.Unknown, sym)
		}
	}

	if strings.Contains(input, SymbolSeparator) {
		for _, part := range strings.Split(input, SymbolSeparator) {
			if sym := NormalizeSymbol(part); sym != "" {
				emit(sym)
			}
		}
		return toks
	}

	byLength := longestFirst(known)
	text := NormalizeSymbol(input)

	// covered[i] reports whether text[i:] splits into alphabet symbols.
	covered := make([]bool, len(text)+1)
	covered[len(text)] = true
	for i := len(text) - 1; i >= 0; i-- {
		for _, sym := range byLength {
			if strings.HasPrefix(text[i:], sym) && covered[i+len(sym)] {
				covered[i] = true
				break
			}
		}
	}

	for i := 0; i < len(text); {
		matched := ""
		for _, sym := range byLength {
			if strings.HasPrefix(text[i:], sym) && (covered[i+len(sym)] || !covered[i]) {
				matched = sym
				break
			}
		}
		if matched == "" {
			_, size := utf8.DecodeRuneInString(text[i:])
			matched = text[i : i+size]
		}
		emit(matched)
		i += len(matched)
	}
	return toks
}

// TokenizeFor splits input the way a reads it. Overlapping symbols can give
// several segmentations of one text (with A, AB and BC, "ABC" is A BC or AB C);
// when a accepts any of them, that segmentation is returned. Otherwise the
// result is Tokenize against a's alphabet.
func TokenizeFor(a *nfa.Automaton, input string) Tokens {
	alphabet := a.Alphabet()
	if strings.Contains(input, SymbolSeparator) {
		return Tokenize(input, alphabet)
	}
	if syms, ok := acceptingSegmentation(a, NormalizeSymbol(input), alphabet); ok {
		return Tokens{Symbols: syms}
	}
	return Tokenize(input, alphabet)
}

// acceptingSegmentation simulates every segmentation of text at once, keyed by
// byte offset, then walks back from the final states to pick one that accepts.
func acceptingSegmentation(a *nfa.Automaton, text string, alphabet []string) ([]string, bool) {
	known := make(map[string]struct{}, len(alphabet))
	for _, sym := range alphabet {
		if sym != "" {
			known[sym] = struct{}{}
		}
	}
	byLength := longestFirst(known)
	n := len(text)

	// reach[i] holds every state live after reading text[:i] under some segmentation.
	reach := make([]nfa.StateSet, n+1)
	reach[0] = nfa.InitialConfiguration(a)
	for i := 0; i < n; i++ {
		if reach[i].Empty() {
			continue
		}
		for _, sym := range byLength {
			if !strings.HasPrefix(text[i:], sym) {
				continue
			}
			j := i + len(sym)
			if reach[j] == nil {
				reach[j] = nfa.NewStateSet()
			}
			for s := range nfa.Step(a, reach[i], sym) {
				reach[j].Add(s)
			}
		}
	}

	// live[i] holds the states of reach[i] from which text[i:] can be accepted.
	live := make([]nfa.StateSet, n+1)
	live[n] = nfa.NewStateSet()
	for s := range reach[n] {
		if a.IsFinal(s) {
			live[n].Add(s)
		}
	}
	for i := n - 1; i >= 0; i-- {
		live[i] = nfa.NewStateSet()
		for q := range reach[i] {
			for _, sym := range byLength {
				if strings.HasPrefix(text[i:], sym) && nfa.Step(a, nfa.NewStateSet(q), sym).Intersects(live[i+len(sym)]) {
					live[i].Add(q)
					break
				}
			}
		}
	}
	if live[0].Empty() {
		return nil, false
	}

	var syms []string
	config := reach[0]
	for i := 0; i < n; {
		next, sym := nfa.StateSet(nil), ""
		for _, cand := range byLength {
			if !strings.HasPrefix(text[i:], cand) {
				continue
			}
			if step := nfa.Step(a, config, cand); step.Intersects(live[i+len(cand)]) {
				next, sym = step, cand
				break
			}
		}
		if sym == "" {
			return nil, false
		}
		syms = append(syms, sym)
		config = next
		i += len(sym)
	}
	return syms, true
}

func longestFirst(known map[string]struct{}) []string {
	byLength := make([]string, 0, len(known))
	for sym := range known {
		byLength = append(byLength, sym)
	}
	slices.SortFunc(byLength, func(a, b string) int {
		if c := cmp.Compare(len(b), len(a)); c != 0 {
			return c
		}
		return cmp.Compare(a, b)
	})
	return byLength
}
