// Package conll renders annotated documents in the CoreNLP-style CoNLL
// layout read by annotation tools such as INCEpTION:
//
//	ID	FORM	LEMMA	POSTAG	NER	HEAD	DEPREL
//
// one tab-separated row per token, each terminated by a newline, no header
// and no sentence separators. A multi-token entity repeats its label on
// every token it covers.
package conll

import (
	"io"
	"strconv"
	"strings"

	"github.com/kittclouds/conllkit/pkg/annotate"
	"github.com/kittclouds/conllkit/pkg/pool"
)

// Sentinel marks an empty column.
const Sentinel = "_"

// SpaceAfterNo is the MISC value for a token not followed by whitespace.
const SpaceAfterNo = "SpaceAfter=No"

// Columns lists the emitted column names in order.
var Columns = []string{"ID", "FORM", "LEMMA", "POSTAG", "NER", "HEAD", "DEPREL"}

// Row is one rendered token.
type Row struct {
	ID     string
	Form   string
	Lemma  string
	PosTag string
	NER    string
	Head   string
	Deprel string

	// Misc is SpaceAfter=No or the sentinel. Emitted only with Options.Misc.
	Misc string
}

// Fields returns the seven standard columns.
func (r Row) Fields() []string {
	return []string{r.ID, r.Form, r.Lemma, r.PosTag, r.NER, r.Head, r.Deprel}
}

// Options selects the output variant.
type Options struct {
	// Misc appends the MISC column as an eighth field.
	Misc bool
}

// Rows computes the rows of doc without rendering them.
func Rows(doc *annotate.Document) []Row {
	labels := doc.EntityLabels()

	rows := make([]Row, len(doc.Tokens))
	for i, tok := range doc.Tokens {
		form, lemma := tok.Text, tok.Lemma
		if tok.IsSpace {
			form, lemma = Sentinel, Sentinel
		}

		ner, ok := labels[tok.Index]
		if !ok {
			ner = Sentinel
		}

		misc := Sentinel
		if !tok.WhitespaceAfter {
			misc = SpaceAfterNo
		}

		rows[i] = Row{
			ID:     strconv.Itoa(tok.Index + 1),
			Form:   orSentinel(form),
			Lemma:  orSentinel(lemma),
			PosTag: orSentinel(tok.POS),
			NER:    orSentinel(ner),
			Head:   Sentinel,
			Deprel: Sentinel,
			Misc:   misc,
		}
	}
	return rows
}

func orSentinel(s string) string {
	if s == "" {
		return Sentinel
	}
	return s
}

// Serialize renders doc in the seven-column layout.
func Serialize(doc *annotate.Document) string {
	return Options{}.Serialize(doc)
}

// Serialize renders doc. It does not modify doc, so repeated calls return
// identical output.
func (o Options) Serialize(doc *annotate.Document) string {
	b := pool.GetBuilder()
	defer pool.PutBuilder(b)

	o.render(b, doc)
	return b.String()
}

// WriteTo streams the rendering of doc to w.
func (o Options) WriteTo(w io.Writer, doc *annotate.Document) (int64, error) {
	b := pool.GetBuilder()
	defer pool.PutBuilder(b)

	o.render(b, doc)
	n, err := io.WriteString(w, b.String())
	return int64(n), err
}

func (o Options) render(b *strings.Builder, doc *annotate.Document) {
	fields := pool.GetStrings()
	defer pool.PutStrings(fields)

	for _, r := range Rows(doc) {
		*fields = append((*fields)[:0], r.Fields()...)
		if o.Misc {
			*fields = append(*fields, r.Misc)
		}
		for i, f := range *fields {
			if i > 0 {
				b.WriteByte('\t')
			}
			b.WriteString(f)
		}
		b.WriteByte('\n')
	}
}
