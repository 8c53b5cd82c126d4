package wordnet

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"math"
	"sort"
	"strconv"
	"strings"

	"go.opentelemetry.io/otel/codes"

	"github.com/cours-de-latin/wordnet/store"
)

// InformationContent holds corpus frequency counts keyed by synset and
// the total count per part of speech.
type InformationContent struct {
	dict   *Dictionary
	counts map[SynsetID]float64
	totals [numSlots]float64
}

// NewInformationContent returns an empty table for d.
func NewInformationContent(d *Dictionary) *InformationContent {
	return &InformationContent{dict: d, counts: make(map[SynsetID]float64)}
}

// LoadInformationContent reads an information content file from src.
func (d *Dictionary) LoadInformationContent(ctx context.Context, src store.Store, name string) (*InformationContent, error) {
	ctx, span := d.opts.tracer.Start(ctx, "wordnet.LoadInformationContent")
	defer span.End()

	rc, err := src.Open(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", name, err)
	}
	defer rc.Close()
	ic, err := ReadInformationContent(d, name, rc)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	return ic, nil
}

// ReadInformationContent parses "<offset><pos> <count> [ROOT]" lines. The
// first line is a header and is skipped. An offset without a synset means
// the file belongs to another dictionary version and aborts the read.
func ReadInformationContent(d *Dictionary, name string, r io.Reader) (*InformationContent, error) {
	ic := NewInformationContent(d)
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), maxLineLength)
	n := 0
	for sc.Scan() {
		n++
		if n == 1 {
			continue
		}
		f := strings.Fields(sc.Text())
		if len(f) < 2 || len(f[0]) < 2 {
			continue
		}
		tok := f[0]
		off, err := strconv.Atoi(tok[:len(tok)-1])
		if err != nil {
			return nil, corrupt(name, n, "bad offset %q", tok)
		}
		pos, ok := posFromTag(tok[len(tok)-1:])
		if !ok {
			return nil, corrupt(name, n, "bad part of speech %q", tok)
		}
		count, err := strconv.ParseFloat(f[1], 64)
		if err != nil {
			return nil, corrupt(name, n, "bad count %q", f[1])
		}
		s := d.SynsetAtOffset(pos, off)
		if s == nil {
			return nil, &ParseError{File: name, Line: n,
				Err: fmt.Errorf("%w: no synset at offset %d%s", ErrInformationContentMismatch, off, pos.Tag())}
		}
		ic.Add(s, count)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	return ic, nil
}

// Add increases the count of s.
func (ic *InformationContent) Add(s *Synset, count float64) {
	ic.counts[s.ID] += count
	ic.totals[s.POS.slot()] += count
}

// Content returns the raw count of s, or -1 when s has none.
func (ic *InformationContent) Content(s *Synset) float64 {
	c, ok := ic.counts[s.ID]
	if !ok {
		return -1
	}
	return c
}

// Total returns the summed count of pos.
func (ic *InformationContent) Total(pos PartOfSpeech) float64 {
	if !pos.Valid() {
		return 0
	}
	return ic.totals[pos.slot()]
}

// IC returns -ln(content/total) for s, or -1 when s has no positive count.
func (ic *InformationContent) IC(s *Synset) float64 {
	c := ic.Content(s)
	total := ic.Total(s.POS)
	if c <= 0 || total <= 0 {
		return -1
	}
	return -math.Log(c / total)
}

// Write emits the table keyed by the synsets' current offsets, so a table
// stays valid after the dictionary is rewritten.
func (ic *InformationContent) Write(w io.Writer) error {
	type row struct {
		key   string
		count float64
	}
	rows := make([]row, 0, len(ic.counts))
	for id, c := range ic.counts {
		s := ic.dict.SynsetByID(id)
		if s == nil {
			continue
		}
		rows = append(rows, row{fmt.Sprintf("%d%s", s.Offset, s.POS.slot().Tag()), c})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].key < rows[j].key })

	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, "wnver::wordnet")
	for _, r := range rows {
		fmt.Fprintf(bw, "%s %s\n", r.key, strconv.FormatFloat(r.count, 'f', -1, 64))
	}
	return bw.Flush()
}
