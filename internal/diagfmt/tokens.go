package diagfmt

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"grun/internal/token"
)

var textEscaper = strings.NewReplacer(
	"\n", `\n`,
	"\r", `\r`,
	"\t", `\t`,
	"\f", `\f`,
)

// EscapeText replaces the four control characters that would break a dump
// line with their two-character escapes. Everything else, backslashes
// included, is written as is.
func EscapeText(s string) string {
	if !strings.ContainsAny(s, "\n\r\t\f") {
		return s
	}
	return textEscaper.Replace(s)
}

// FormatToken renders one token as
//
//	[@index,start:stop='text',<NAME>,channel=CH,line:column]
//
// where the channel clause is present only for tokens off the default channel.
func FormatToken(tok token.Token, vocab token.Vocabulary) string {
	var sb strings.Builder
	sb.Grow(32 + len(tok.Text))
	appendToken(&sb, tok, vocab)
	return sb.String()
}

func appendToken(sb *strings.Builder, tok token.Token, vocab token.Vocabulary) {
	sb.WriteString("[@")
	sb.WriteString(strconv.Itoa(tok.Index))
	sb.WriteByte(',')
	sb.WriteString(strconv.Itoa(tok.Start))
	sb.WriteByte(':')
	sb.WriteString(strconv.Itoa(tok.Stop))
	sb.WriteString("='")
	sb.WriteString(EscapeText(tok.Text))
	sb.WriteString("',<")
	sb.WriteString(vocab.SymbolicName(tok.Type))
	sb.WriteString(">,")
	if tok.Channel != token.DefaultChannel {
		sb.WriteString("channel=")
		sb.WriteString(vocab.ChannelName(tok.Channel))
		sb.WriteByte(',')
	}
	sb.WriteString(strconv.Itoa(tok.Line))
	sb.WriteByte(':')
	sb.WriteString(strconv.Itoa(tok.Column))
	sb.WriteByte(']')
}

// WriteTokens writes one formatted line per token through a buffered writer
// and flushes it before returning. The first write error is returned.
func WriteTokens(w io.Writer, tokens []token.Token, vocab token.Vocabulary) error {
	bw := bufio.NewWriter(w)
	var sb strings.Builder
	for _, tok := range tokens {
		sb.Reset()
		appendToken(&sb, tok, vocab)
		sb.WriteByte('\n')
		if _, err := bw.WriteString(sb.String()); err != nil {
			return err
		}
	}
	return bw.Flush()
}
