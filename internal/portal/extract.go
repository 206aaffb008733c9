package portal

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog/log"
)

// ErrFieldNotFound is returned when a labelled balance is missing from the account page.
var ErrFieldNotFound = errors.New("balance field not found")

// Field is one labelled figure from the account details panel.
type Field struct {
	Name  string
	Value string
}

// Labels name the account page entries that hold each balance.
type Labels struct {
	Transaction string
	Shares      string
	HighGrowth  string
}

// Balances are the three scraped display strings. They are not parsed.
type Balances struct {
	Transaction string
	Shares      string
	HighGrowth  string
}

// ExtractFields returns a Field for every anchor matched by selector that has
// both an h4 label and a p value, in document order.
func ExtractFields(r io.Reader, selector string) ([]Field, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse account page: %w", err)
	}

	var fields []Field
	anchors := doc.Find(selector)
	anchors.Each(func(i int, a *goquery.Selection) {
		label := a.Find("h4").First()
		value := a.Find("p").First()
		if label.Length() == 0 || value.Length() == 0 {
			log.Debug().Int("anchor", i).Msg("Skipping anchor without label or value")
			return
		}
		fields = append(fields, Field{
			Name:  strings.TrimSpace(label.Text()),
			Value: strings.TrimSpace(value.Text()),
		})
	})

	log.Debug().
		Int("anchors", anchors.Length()).
		Int("fields", len(fields)).
		Msg("Extracted account fields")
	return fields, nil
}

// SelectBalances picks each balance by label rather than by position. A label
// matches the first unused field whose name contains it, ignoring case.
func SelectBalances(fields []Field, labels Labels) (Balances, error) {
	used := make(map[int]bool, len(fields))

	find := func(label string) (string, error) {
		want := strings.ToLower(strings.TrimSpace(label))
		for i, f := range fields {
			if used[i] {
				continue
			}
			if want != "" && strings.Contains(strings.ToLower(f.Name), want) {
				used[i] = true
				return f.Value, nil
			}
		}
		return "", fmt.Errorf("%w: %q", ErrFieldNotFound, label)
	}

	var b Balances
	var err error
	if b.Transaction, err = find(labels.Transaction); err != nil {
		return Balances{}, err
	}
	if b.Shares, err = find(labels.Shares); err != nil {
		return Balances{}, err
	}
	if b.HighGrowth, err = find(labels.HighGrowth); err != nil {
		return Balances{}, err
	}
	return b, nil
}
