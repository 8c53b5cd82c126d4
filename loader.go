package wordnet

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/sync/errgroup"

	"github.com/cours-de-latin/wordnet/store"
)

const (
	lexNamesFile  = "lexnames"
	framesFile    = "frames.vrb"
	senseFile     = "index.sense"
	maxLineLength = 1 << 20
)

func indexFile(pos PartOfSpeech) string     { return "index." + pos.Suffix() }
func dataFile(pos PartOfSpeech) string      { return "data." + pos.Suffix() }
func exceptionFile(pos PartOfSpeech) string { return pos.Suffix() + ".exc" }

// Load reads a dictionary directory from src. Index and data files are
// read in two passes so that pointers may reference synsets defined
// later in any file; the sense index is read last.
func Load(ctx context.Context, src store.Store, opts ...Option) (*Dictionary, error) {
	d := New(opts...)
	ctx, span := d.opts.tracer.Start(ctx, "wordnet.Load")
	defer span.End()

	start := time.Now()
	if err := d.load(ctx, src); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	span.SetAttributes(
		attribute.Int("wordnet.synsets", len(d.synsets)),
		attribute.Int("wordnet.lemmas", len(d.index)),
	)
	d.opts.logger.LogDone(ctx, "dictionary loaded", len(d.synsets), len(d.index), time.Since(start))
	return d, nil
}

// LoadDir reads a dictionary from a local directory.
func LoadDir(dir string, opts ...Option) (*Dictionary, error) {
	return Load(context.Background(), store.NewLocal(dir), opts...)
}

func (d *Dictionary) load(ctx context.Context, src store.Store) error {
	// lexnames and frames are needed while parsing data lines
	err := d.each(ctx, numSlots+2, func(ctx context.Context, i int) error {
		switch i {
		case numSlots:
			return optional(d.loadLexNames(ctx, src))
		case numSlots + 1:
			return optional(d.loadFrames(ctx, src))
		default:
			return optional(d.loadExceptions(ctx, src, indexed[i]))
		}
	})
	if err != nil {
		return err
	}

	// pass 1: index files
	var records [numSlots][]indexRecord
	var present [numSlots]bool
	err = d.each(ctx, numSlots, func(ctx context.Context, i int) error {
		recs, err := d.readIndex(ctx, src, indexed[i])
		if errors.Is(err, store.ErrNotFound) {
			return nil
		}
		records[i], present[i] = recs, err == nil
		return err
	})
	if err != nil {
		return err
	}
	for slot := range numSlots {
		d.addStubs(PartOfSpeech(slot), records[slot])
	}

	// pass 2: data files; each worker only touches synsets of its own slot
	err = d.each(ctx, numSlots, func(ctx context.Context, i int) error {
		if !present[i] {
			return nil
		}
		return d.readData(ctx, src, indexed[i])
	})
	if err != nil {
		return err
	}

	d.renumberAll()
	return optional(d.loadSenseIndex(ctx, src))
}

// each runs fn for 0..n-1, concurrently unless parallel loading is off.
func (d *Dictionary) each(ctx context.Context, n int, fn func(ctx context.Context, i int) error) error {
	if !d.opts.parallel {
		for i := range n {
			if err := fn(ctx, i); err != nil {
				return err
			}
		}
		return nil
	}
	g, gctx := errgroup.WithContext(ctx)
	for i := range n {
		g.Go(func() error { return fn(gctx, i) })
	}
	return g.Wait()
}

// optional turns a missing file into success.
func optional(err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return nil
	}
	return err
}

// readLines feeds every line of name to fn with its 1-based number.
func (d *Dictionary) readLines(ctx context.Context, src store.Store, name string, fn func(n int, line string) error) error {
	rc, err := src.Open(ctx, name)
	if err != nil {
		return fmt.Errorf("open %s: %w", name, err)
	}
	defer rc.Close()

	sc := bufio.NewScanner(rc)
	sc.Buffer(make([]byte, 64*1024), maxLineLength)
	n := 0
	for sc.Scan() {
		n++
		if n%4096 == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}
		if err := fn(n, sc.Text()); err != nil {
			return err
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("read %s: %w", name, err)
	}
	d.opts.logger.LogFile(ctx, "read", name, n)
	return nil
}

// isLicense reports whether a line belongs to the license header, which
// is indented by at least one space.
func isLicense(line string) bool {
	return line == "" || line[0] == ' '
}

// loadLexNames reads "NN name pos" lines.
func (d *Dictionary) loadLexNames(ctx context.Context, src store.Store) error {
	return d.readLines(ctx, src, lexNamesFile, func(n int, line string) error {
		f := strings.Fields(line)
		if len(f) < 2 {
			return nil
		}
		idx, err := strconv.Atoi(f[0])
		if err != nil || idx < 0 {
			return corrupt(lexNamesFile, n, "bad index %q", f[0])
		}
		pos := 0
		if len(f) > 2 {
			pos, _ = strconv.Atoi(f[2])
		}
		for len(d.lexNames) <= idx {
			d.lexNames = append(d.lexNames, lexName{})
		}
		d.lexNames[idx] = lexName{name: f[1], pos: pos}
		return nil
	})
}

// loadFrames reads "N template" lines.
func (d *Dictionary) loadFrames(ctx context.Context, src store.Store) error {
	return d.readLines(ctx, src, framesFile, func(n int, line string) error {
		num, text, ok := strings.Cut(strings.TrimSpace(line), " ")
		if !ok {
			return nil
		}
		id, err := strconv.Atoi(num)
		if err != nil {
			return corrupt(framesFile, n, "bad frame number %q", num)
		}
		d.frames[id] = strings.TrimSpace(text)
		return nil
	})
}

// loadExceptions reads "inflected base..." lines.
func (d *Dictionary) loadExceptions(ctx context.Context, src store.Store, pos PartOfSpeech) error {
	m := d.exceptions[pos.slot()]
	return d.readLines(ctx, src, exceptionFile(pos), func(_ int, line string) error {
		f := strings.Fields(line)
		if len(f) < 2 {
			return nil
		}
		m[f[0]] = append(m[f[0]], f[1:]...)
		return nil
	})
}

type indexRecord struct {
	lemma   string
	offsets []int
}

// readIndex parses an index file:
// lemma pos synsetCnt ptrCnt ptr... senseCnt tagsenseCnt offset...
func (d *Dictionary) readIndex(ctx context.Context, src store.Store, pos PartOfSpeech) ([]indexRecord, error) {
	name := indexFile(pos)
	var recs []indexRecord
	err := d.readLines(ctx, src, name, func(n int, line string) error {
		if isLicense(line) {
			return nil
		}
		f := strings.Fields(line)
		if len(f) < 6 {
			return corrupt(name, n, "short index line")
		}
		synsetCnt, err1 := strconv.Atoi(f[2])
		ptrCnt, err2 := strconv.Atoi(f[3])
		if err1 != nil || err2 != nil || synsetCnt < 0 || ptrCnt < 0 {
			return corrupt(name, n, "bad counts")
		}
		i := 4 + ptrCnt + 2
		if len(f) < i+synsetCnt {
			return corrupt(name, n, "expected %d offsets", synsetCnt)
		}
		rec := indexRecord{lemma: NormalizeLemma(f[0]), offsets: make([]int, synsetCnt)}
		for k := range synsetCnt {
			off, err := strconv.Atoi(f[i+k])
			if err != nil {
				return corrupt(name, n, "bad offset %q", f[i+k])
			}
			rec.offsets[k] = off
		}
		recs = append(recs, rec)
		return nil
	})
	return recs, err
}

// addStubs creates one synset per distinct offset and fills the lemma
// index. A stub's sense number is its position in the first index line
// listing it; renumberAll later rebases it on the head lemma.
func (d *Dictionary) addStubs(slot PartOfSpeech, recs []indexRecord) {
	offsets := d.offsets[slot]
	for _, rec := range recs {
		e := d.entry(rec.lemma)
		for i, off := range rec.offsets {
			id, ok := offsets[off]
			if !ok {
				id = SynsetID(len(d.synsets))
				d.synsets = append(d.synsets, &Synset{
					ID:          id,
					Offset:      off,
					POS:         slot,
					SenseNumber: i + 1,
				})
				offsets[off] = id
			}
			e[slot] = append(e[slot], id)
		}
	}
}

// readData fills the stubs of one part of speech from its data file.
func (d *Dictionary) readData(ctx context.Context, src store.Store, pos PartOfSpeech) error {
	name := dataFile(pos)
	return d.readLines(ctx, src, name, func(n int, line string) error {
		if isLicense(line) {
			return nil
		}
		return d.parseData(ctx, name, n, pos.slot(), line)
	})
}

// parseData parses one data line:
// offset lexFile ssType wCnt(hex) (word lexID(hex))+ pCnt
// (symbol offset pos srcTgt(hex))+ [fCnt (+ frame lemma(hex))+] | gloss
func (d *Dictionary) parseData(ctx context.Context, name string, n int, slot PartOfSpeech, line string) error {
	head, gloss, _ := strings.Cut(line, "|")
	f := strings.Fields(head)
	if len(f) < 5 {
		return corrupt(name, n, "short data line")
	}
	off, err := strconv.Atoi(f[0])
	if err != nil {
		return corrupt(name, n, "bad offset %q", f[0])
	}
	id, ok := d.offsets[slot][off]
	if !ok {
		return corrupt(name, n, "offset %d has no index entry", off)
	}
	s := d.synsets[id]

	lexFile, err := strconv.Atoi(f[1])
	if err != nil {
		return corrupt(name, n, "bad lexicographer file %q", f[1])
	}
	pos, ok := posFromTag(f[2])
	if !ok {
		return corrupt(name, n, "bad part of speech %q", f[2])
	}
	wCnt, err := strconv.ParseInt(f[3], 16, 32)
	if err != nil {
		return corrupt(name, n, "bad word count %q", f[3])
	}

	s.POS = pos
	s.LexFileIndex = lexFile
	s.Lemmas = s.Lemmas[:0]
	i := 4
	for range wCnt {
		if i+1 >= len(f) {
			return corrupt(name, n, "truncated word list")
		}
		word, marker := splitMarker(f[i])
		lexID, err := strconv.ParseInt(f[i+1], 16, 32)
		if err != nil {
			return corrupt(name, n, "bad lexical id %q", f[i+1])
		}
		s.Lemmas = append(s.Lemmas, &Lemma{
			Name:         word,
			POS:          pos,
			Synset:       s.ID,
			LexFileName:  d.LexFileName(lexFile),
			LexFileIndex: lexFile,
			LexicalID:    int(lexID),
			Marker:       marker,
		})
		i += 2
	}

	if i >= len(f) {
		return corrupt(name, n, "missing pointer count")
	}
	pCnt, err := strconv.Atoi(f[i])
	if err != nil {
		return corrupt(name, n, "bad pointer count %q", f[i])
	}
	i++
	for range pCnt {
		if i+3 >= len(f) {
			return corrupt(name, n, "truncated pointer list")
		}
		sym, toff, tpos, st := f[i], f[i+1], f[i+2], f[i+3]
		i += 4
		target, ok := d.resolvePointer(toff, tpos)
		if !ok {
			d.opts.logger.WarnContext(ctx, "dangling pointer",
				"file", name, "line", n, "symbol", sym, "target", toff+tpos)
			continue
		}
		r := Relation(sym)
		s.addPointer(r, target)
		if st != "0000" && len(st) == 4 {
			src, err1 := strconv.ParseInt(st[:2], 16, 32)
			dst, err2 := strconv.ParseInt(st[2:], 16, 32)
			if err1 == nil && err2 == nil {
				s.SetRelatedForm(r, target, RelatedForm{Source: int(src), Target: int(dst)})
			}
		}
	}

	if i < len(f) {
		if err := d.parseFrames(s, f[i:]); err != nil {
			return corrupt(name, n, "%v", err)
		}
	}

	s.Definition, s.Examples = parseGloss(gloss)
	return nil
}

func (d *Dictionary) resolvePointer(offset, tag string) (SynsetID, bool) {
	off, err := strconv.Atoi(offset)
	if err != nil {
		return 0, false
	}
	pos, ok := posFromTag(tag)
	if !ok {
		return 0, false
	}
	id, ok := d.offsets[pos.slot()][off]
	return id, ok
}

// parseFrames reads "fCnt (+ frame lemma)+" and binds frame sentences to
// lemmas. Lemma number 0 binds the frame to every lemma.
func (d *Dictionary) parseFrames(s *Synset, f []string) error {
	cnt, err := strconv.Atoi(f[0])
	if err != nil {
		return fmt.Errorf("bad frame count %q", f[0])
	}
	i := 1
	for range cnt {
		if i+2 >= len(f) || f[i] != "+" {
			return errors.New("truncated frame list")
		}
		frame, err1 := strconv.Atoi(f[i+1])
		lemma, err2 := strconv.ParseInt(f[i+2], 16, 32)
		if err1 != nil || err2 != nil {
			return fmt.Errorf("bad frame entry %q %q", f[i+1], f[i+2])
		}
		i += 3
		s.FrameIDs = append(s.FrameIDs, frame)
		s.FrameLemmaIDs = append(s.FrameLemmaIDs, int(lemma))
		d.bindFrame(s, frame, int(lemma))
	}
	return nil
}

func (d *Dictionary) bindFrame(s *Synset, frame, lemma int) {
	tmpl, ok := d.frames[frame]
	if !ok {
		return
	}
	for i, l := range s.Lemmas {
		if lemma == 0 || lemma == i+1 {
			l.Frames = append(l.Frames, strings.ReplaceAll(tmpl, "----", l.String()))
		}
	}
}

// parseGloss splits a gloss into its definition and examples. A part
// opening with a quote is an example and runs to the quote that is
// followed by a ';' or the end of the gloss, so examples may contain
// semicolons. Other parts are split on ';' and form the definition.
func parseGloss(g string) (string, []string) {
	var defs, examples []string
	rest := strings.TrimSpace(g)
	for rest != "" {
		if rest[0] == '"' {
			if end := closingQuote(rest); end > 0 {
				examples = append(examples, rest[1:end])
				rest = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(rest[end+1:]), ";"))
				continue
			}
		}
		var part string
		part, rest, _ = strings.Cut(rest, ";")
		part, rest = strings.TrimSpace(part), strings.TrimSpace(rest)
		switch {
		case part == "":
		case strings.HasPrefix(part, `"`):
			examples = append(examples, strings.Trim(part, `"`))
		default:
			defs = append(defs, part)
		}
	}
	return strings.Join(defs, "; "), examples
}

// closingQuote returns the index of the quote closing the example that
// opens at s[0], or -1.
func closingQuote(s string) int {
	for i := 1; i < len(s); i++ {
		if s[i] != '"' {
			continue
		}
		if after := strings.TrimSpace(s[i+1:]); after == "" || after[0] == ';' {
			return i
		}
	}
	return -1
}

// loadSenseIndex reads "key offset senseNumber tagCount" lines.
func (d *Dictionary) loadSenseIndex(ctx context.Context, src store.Store) error {
	return d.readLines(ctx, src, senseFile, func(n int, line string) error {
		f := strings.Fields(line)
		if len(f) < 3 {
			return nil
		}
		key := strings.ToLower(f[0])
		lemma, ssType, ok := parseSenseKey(key)
		if !ok {
			return corrupt(senseFile, n, "bad sense key %q", f[0])
		}
		off, err := strconv.Atoi(f[1])
		if err != nil {
			return corrupt(senseFile, n, "bad offset %q", f[1])
		}
		pos := PartOfSpeech(ssType - 1)
		id, ok := d.offsets[pos.slot()][off]
		if !ok {
			d.opts.logger.WarnContext(ctx, "sense key without synset", "key", key, "offset", off)
			return nil
		}
		s := d.synsets[id]
		s.SenseKeys = append(s.SenseKeys, key)
		d.senseKeys[key] = id
		if num, err := strconv.Atoi(f[2]); err == nil && num > 0 && lemma == headKey(s) {
			s.SenseNumber = num
		}
		return nil
	})
}
