package export

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/gomlx/go-botok/tokenizers/api"
	"github.com/pkg/errors"
)

// Format of the rendered tokens.
type Format int

const (
	// FormatText prints the cleaned content of the tokens with syllables, separated by spaces, on one line.
	FormatText Format = iota

	// FormatTagged prints one token per line: its quoted content and its part-of-speech.
	FormatTagged

	// FormatDebug prints all the fields of each token.
	FormatDebug
)

var formatNames = []string{"text", "tagged", "debug"}

func (f Format) String() string {
	if int(f) < 0 || int(f) >= len(formatNames) {
		return "Format(" + strconv.Itoa(int(f)) + ")"
	}
	return formatNames[f]
}

// ParseFormat returns the Format with the given name.
func ParseFormat(name string) (Format, error) {
	for ii, n := range formatNames {
		if strings.EqualFold(n, name) {
			return Format(ii), nil
		}
	}
	return 0, errors.Errorf("unknown format %q, valid formats are %q", name, formatNames)
}

// posColors are the ANSI colors used for each part-of-speech.
var posColors = map[string]lipgloss.Color{
	"NOUN":       "12",
	"PROPN":      "12",
	"VERB":       "9",
	"AUX":        "9",
	"ADJ":        "10",
	"ADV":        "10",
	"PRON":       "11",
	"ADP":        "13",
	"CCONJ":      "13",
	api.AffixPOS: "13",
	"non-word":   "8",
}

// Options of Render.
type Options struct {
	Format Format
}

// Render writes the tokens to w in the format given by opts.
//
// Parts-of-speech are colored when w is a terminal supporting colors.
func Render(w io.Writer, tokens []api.Token, opts Options) error {
	renderer := lipgloss.NewRenderer(w)
	var sb strings.Builder
	switch opts.Format {
	case FormatText:
		var cleaned []string
		for _, tok := range tokens {
			if c := tok.CleanedContent(); c != "" {
				cleaned = append(cleaned, c)
			}
		}
		sb.WriteString(strings.Join(cleaned, " "))
		sb.WriteByte('\n')

	case FormatTagged:
		contentStyle := renderer.NewStyle().Bold(true)
		for _, tok := range tokens {
			posStyle := renderer.NewStyle().Foreground(lipgloss.Color("7"))
			if color, found := posColors[tok.POS]; found {
				posStyle = posStyle.Foreground(color)
			}
			fmt.Fprintf(&sb, "%s/%s\n", contentStyle.Render(strconv.Quote(tok.Content)), posStyle.Render(tok.POS))
		}

	case FormatDebug:
		headerStyle := renderer.NewStyle().Underline(true)
		for ii, tok := range tokens {
			if ii > 0 {
				sb.WriteByte('\n')
			}
			sb.WriteString(headerStyle.Render(fmt.Sprintf("token #%d", ii)))
			sb.WriteByte('\n')
			sb.WriteString(tok.String())
		}

	default:
		return errors.Errorf("unknown format %s", opts.Format)
	}
	if _, err := io.WriteString(w, sb.String()); err != nil {
		return errors.Wrap(err, "failed to write tokens")
	}
	return nil
}
