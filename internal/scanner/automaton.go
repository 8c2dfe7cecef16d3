// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package scanner

// automaton is an Aho-Corasick matcher over a fixed, lowercased pattern set.
// It reports every occurrence of every pattern, including overlapping ones.
type automaton struct {
	patterns []string
	next     []map[byte]int32
	fail     []int32
	// out lists the pattern indices ending at each state, including those
	// reachable through failure links
	out [][]int32
}

type rawMatch struct {
	pattern int
	start   int
}

func newAutomaton(patterns []string) *automaton {
	a := &automaton{
		patterns: patterns,
		next:     []map[byte]int32{{}},
		fail:     []int32{0},
		out:      [][]int32{nil},
	}

	for i, p := range patterns {
		if p == "" {
			continue
		}
		state := int32(0)
		for j := 0; j < len(p); j++ {
			c := p[j]
			nxt, ok := a.next[state][c]
			if !ok {
				nxt = int32(len(a.next))
				a.next = append(a.next, map[byte]int32{})
				a.fail = append(a.fail, 0)
				a.out = append(a.out, nil)
				a.next[state][c] = nxt
			}
			state = nxt
		}
		a.out[state] = append(a.out[state], int32(i))
	}

	// breadth-first failure links
	queue := make([]int32, 0, len(a.next))
	for _, child := range a.next[0] {
		queue = append(queue, child)
	}
	for len(queue) > 0 {
		state := queue[0]
		queue = queue[1:]
		for c, child := range a.next[state] {
			queue = append(queue, child)
			f := a.fail[state]
			for {
				if target, ok := a.next[f][c]; ok && target != child {
					a.fail[child] = target
					break
				}
				if f == 0 {
					a.fail[child] = 0
					break
				}
				f = a.fail[f]
			}
			a.out[child] = append(a.out[child], a.out[a.fail[child]]...)
		}
	}

	return a
}

// step follows goto/failure transitions from state on byte c
func (a *automaton) step(state int32, c byte) int32 {
	for {
		if nxt, ok := a.next[state][c]; ok {
			return nxt
		}
		if state == 0 {
			return 0
		}
		state = a.fail[state]
	}
}

// findAll returns every occurrence of every pattern in text
func (a *automaton) findAll(text []byte) []rawMatch {
	var matches []rawMatch
	state := int32(0)
	for i := 0; i < len(text); i++ {
		state = a.step(state, text[i])
		for _, p := range a.out[state] {
			matches = append(matches, rawMatch{
				pattern: int(p),
				start:   i + 1 - len(a.patterns[p]),
			})
		}
	}
	return matches
}

// foldASCII lowercases ASCII letters and leaves every other byte untouched,
// so byte offsets in the result line up with the input.
func foldASCII(s string) []byte {
	b := []byte(s)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return b
}
