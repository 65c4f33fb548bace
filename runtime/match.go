package hwpgrt

// MatchTokenOrRollback is the Once-mode primitive a generated parser calls:
// if the token under the cursor has type want, it is consumed and returned;
// otherwise the cursor is left untouched (there is nothing to roll back,
// since nothing was consumed) and ok is false.
func MatchTokenOrRollback(ts *TokenStream, want TokenType) (tok Token, ok bool, err error) {
	mark := ts.Mark()
	tok, err = ts.Peek()
	if err != nil {
		return Token{}, false, err
	}
	if tok.Type != want {
		ts.Reset(mark)
		return Token{}, false, nil
	}
	ts.Advance()
	return tok, true, nil
}

// TryMatchToken is MatchTokenOrRollback without the error plumbing, for
// ZeroOrOnce/ZeroOrMore call sites where a non-match is not a failure.
func TryMatchToken(ts *TokenStream, want TokenType) (Token, bool) {
	tok, ok, err := MatchTokenOrRollback(ts, want)
	if err != nil {
		return Token{}, false
	}
	return tok, ok
}

// MatchTokensOrRollback matches a fixed sequence of token types atomically:
// either all of them match in order and the cursor advances past all of
// them, or none do and the cursor is restored to where it started.
func MatchTokensOrRollback(ts *TokenStream, want ...TokenType) (toks []Token, ok bool, err error) {
	mark := ts.Mark()
	toks = make([]Token, 0, len(want))
	for _, w := range want {
		tok, matched, err := MatchTokenOrRollback(ts, w)
		if err != nil {
			ts.Reset(mark)
			return nil, false, err
		}
		if !matched {
			ts.Reset(mark)
			return nil, false, nil
		}
		toks = append(toks, tok)
	}
	return toks, true, nil
}

// TryMatchTokens is MatchTokensOrRollback without the error plumbing.
func TryMatchTokens(ts *TokenStream, want ...TokenType) ([]Token, bool) {
	toks, ok, err := MatchTokensOrRollback(ts, want...)
	if err != nil {
		return nil, false
	}
	return toks, ok
}
