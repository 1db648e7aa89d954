package lexer

import (
	"strings"
	"testing"
)

func tokenize(t *testing.T, src string) []Token {
	t.Helper()
	tokens, err := Tokenize(src)
	if err != nil {
		t.Fatalf("tokenize failed: %v", err)
	}
	return tokens
}

func types(tokens []Token) []TokenType {
	out := make([]TokenType, 0, len(tokens))
	for _, tok := range tokens {
		out = append(out, tok.Type)
	}
	return out
}

func expectTypes(t *testing.T, got []Token, want []TokenType) {
	t.Helper()
	gotTypes := types(got)
	if len(gotTypes) != len(want) {
		t.Fatalf("token count mismatch: got %v, want %v", gotTypes, want)
	}
	for i := range want {
		if gotTypes[i] != want[i] {
			t.Fatalf("token %d: got %s, want %s (stream %v)", i, gotTypes[i], want[i], gotTypes)
		}
	}
}

func TestBlockKeywordsCompose(t *testing.T) {
	tokens := tokenize(t, "BEGIN CODE\nEND CODE")
	expectTypes(t, tokens, []TokenType{BEGINCODE, NEXTLINE, ENDCODE, EOF})
	if tokens[0].Text != "BEGIN CODE" {
		t.Fatalf("composite text: got %q", tokens[0].Text)
	}
}

func TestBlockKeywordsRejectUnknownBlock(t *testing.T) {
	_, err := Tokenize("BEGIN LOOP\n")
	if err == nil || !strings.Contains(err.Error(), "invalid block keyword") {
		t.Fatalf("expected invalid block keyword error, got %v", err)
	}
}

func TestDeclarationTokens(t *testing.T) {
	tokens := tokenize(t, "INT xyz, abc=100")
	expectTypes(t, tokens, []TokenType{INT, IDENTIFIER, COMMA, IDENTIFIER, ASSIGNMENT, INTLITERAL, EOF})
}

func TestDollarAndNewlineShareTokenType(t *testing.T) {
	tokens := tokenize(t, "$\n")
	expectTypes(t, tokens, []TokenType{NEXTLINE, NEXTLINE, EOF})
	if tokens[0].Text != "$" || tokens[1].Text != "\n" {
		t.Fatalf("separator texts: got %q and %q", tokens[0].Text, tokens[1].Text)
	}
}

func TestConcatElisionAroundDollar(t *testing.T) {
	tokens := tokenize(t, `DISPLAY: "a" & $ & "b"`)
	expectTypes(t, tokens, []TokenType{DISPLAY, COLON, STRINGLITERAL, NEXTLINE, STRINGLITERAL, EOF})
}

func TestCommentEmitsSeparator(t *testing.T) {
	tokens := tokenize(t, "INT x # note\nINT y")
	expectTypes(t, tokens, []TokenType{INT, IDENTIFIER, NEXTLINE, INT, IDENTIFIER, EOF})
}

func TestLineCountingAcrossSeparators(t *testing.T) {
	tokens := tokenize(t, "INT a\n# gone\nINT b")
	var last Token
	for _, tok := range tokens {
		if tok.Type == IDENTIFIER {
			last = tok
		}
	}
	if last.Text != "b" || last.Line != 3 {
		t.Fatalf("expected b on line 3, got %q on line %d", last.Text, last.Line)
	}
}

func TestBoolStringsBecomeBoolLiterals(t *testing.T) {
	tokens := tokenize(t, `"TRUE" "FALSE" "true"`)
	expectTypes(t, tokens, []TokenType{BOOLLITERAL, BOOLLITERAL, STRINGLITERAL, EOF})
}

func TestCharLiteralRequiresOneCharacter(t *testing.T) {
	tokens := tokenize(t, "'x'")
	expectTypes(t, tokens, []TokenType{CHARLITERAL, EOF})

	if _, err := Tokenize("'xy'"); err == nil {
		t.Fatal("expected error for multi-character literal")
	}
	if _, err := Tokenize("'x"); err == nil || !strings.Contains(err.Error(), "unterminated") {
		t.Fatalf("expected unterminated error, got %v", err)
	}
}

func TestEscapeCapturesBrackets(t *testing.T) {
	tokens := tokenize(t, "[[] & xyz & []]")
	expectTypes(t, tokens, []TokenType{ESCAPELITERAL, CONCAT, IDENTIFIER, CONCAT, ESCAPELITERAL, EOF})
	if tokens[0].Text != "[" || tokens[4].Text != "]" {
		t.Fatalf("escape texts: got %q and %q", tokens[0].Text, tokens[4].Text)
	}
}

func TestEscapePlainText(t *testing.T) {
	tokens := tokenize(t, "[hello]")
	expectTypes(t, tokens, []TokenType{ESCAPELITERAL, EOF})
	if tokens[0].Text != "hello" {
		t.Fatalf("escape text: got %q", tokens[0].Text)
	}
}

func TestUnterminatedEscape(t *testing.T) {
	_, err := Tokenize("[oops")
	if err == nil || !strings.Contains(err.Error(), "unterminated escape") {
		t.Fatalf("expected unterminated escape error, got %v", err)
	}
}

func TestNumberScanning(t *testing.T) {
	tokens := tokenize(t, "12 3.5 .25 7.")
	expectTypes(t, tokens, []TokenType{INTLITERAL, FLOATLITERAL, FLOATLITERAL, INTLITERAL, UNKNOWN, EOF})
	if tokens[2].Text != ".25" {
		t.Fatalf("leading-dot float: got %q", tokens[2].Text)
	}
}

func TestSecondDotEndsNumber(t *testing.T) {
	tokens := tokenize(t, "1.2.3")
	expectTypes(t, tokens, []TokenType{FLOATLITERAL, FLOATLITERAL, EOF})
	if tokens[0].Text != "1.2" || tokens[1].Text != ".3" {
		t.Fatalf("split texts: got %q and %q", tokens[0].Text, tokens[1].Text)
	}
}

func TestTwoCharacterOperators(t *testing.T) {
	tokens := tokenize(t, "== <> <= >= ++ -- += -= *= /= %=")
	expectTypes(t, tokens, []TokenType{
		EQUAL, NOTEQUAL, LTEQ, GTEQ, INCREMENT, DECREMENT,
		ADDASSIGN, SUBASSIGN, MULASSIGN, DIVASSIGN, MODASSIGN, EOF,
	})
}

func TestKeywordsAndIdentifiers(t *testing.T) {
	tokens := tokenize(t, "WHILE IF ELSE DISPLAY SCAN BREAK CONTINUE NOT AND OR while")
	expectTypes(t, tokens, []TokenType{
		WHILE, IF, ELSE, DISPLAY, SCAN, BREAK, CONTINUE, NOT, AND, OR, IDENTIFIER, EOF,
	})
}

func TestUnknownCharacterBecomesToken(t *testing.T) {
	tokens := tokenize(t, "@")
	expectTypes(t, tokens, []TokenType{UNKNOWN, EOF})
}

func TestIsReservedWord(t *testing.T) {
	for _, word := range []string{"BEGIN", "END", "IF", "WHILE", "DISPLAY", "INT", "PI"} {
		if !IsReservedWord(word) {
			t.Fatalf("%s should be reserved", word)
		}
	}
	if IsReservedWord("xyz") {
		t.Fatal("xyz should not be reserved")
	}
}
