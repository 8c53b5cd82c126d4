package wordnet

import (
	"bytes"
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/RoaringBitmap/roaring/v2"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/cours-de-latin/wordnet/store"
)

// writePlan holds the layout computed before any byte is emitted.
type writePlan struct {
	width   int
	known   *roaring.Bitmap
	ptrs    [][]Pointer // writable pointers by synset handle
	base    []int       // line length without offset digits
	offsets []int
	order   [numSlots][]SynsetID
}

// Write serializes the dictionary into dst and reassigns every synset
// offset. All files are rendered in memory first, so a rendering failure
// stores nothing. Only synsets reachable from the lemma index are
// written; pointers to other synsets are dropped.
//
// Write mutates offsets and must not run concurrently with readers.
func (d *Dictionary) Write(ctx context.Context, dst store.Store) error {
	ctx, span := d.opts.tracer.Start(ctx, "wordnet.Write")
	defer span.End()

	start := time.Now()
	files, plan, err := d.render()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if err := dst.Put(ctx, name, files[name]); err != nil {
			span.RecordError(err)
			return fmt.Errorf("put %s: %w", name, err)
		}
		d.opts.logger.LogFile(ctx, "write", name, bytes.Count(files[name], []byte{'\n'}))
	}

	d.applyOffsets(plan)
	span.SetAttributes(
		attribute.Int("wordnet.synsets", int(plan.known.GetCardinality())),
		attribute.Int("wordnet.offset_width", plan.width),
	)
	d.opts.logger.LogDone(ctx, "dictionary written", int(plan.known.GetCardinality()), len(d.index), time.Since(start))
	return nil
}

// WriteDir writes the dictionary into a local directory.
func (d *Dictionary) WriteDir(dir string) error {
	return d.Write(context.Background(), store.NewLocal(dir))
}

func (d *Dictionary) render() (map[string][]byte, *writePlan, error) {
	p := d.plan()
	files := make(map[string][]byte)

	for slot := range numSlots {
		var buf bytes.Buffer
		for _, id := range p.order[slot] {
			if buf.Len() != p.offsets[id] {
				return nil, nil, fmt.Errorf("wordnet: %s: offset %d of %s, computed %d",
					dataFile(indexed[slot]), buf.Len(), d.synsets[id].Name(), p.offsets[id])
			}
			buf.Write(d.renderSynset(d.synsets[id], p.ptrs[id], p.width, p.offsets))
		}
		if limit := pow10(p.width); buf.Len() >= limit && len(p.order[slot]) > 0 {
			return nil, nil, fmt.Errorf("wordnet: %s: %d bytes overflow offset width %d",
				dataFile(indexed[slot]), buf.Len(), p.width)
		}
		files[dataFile(indexed[slot])] = buf.Bytes()
		files[indexFile(indexed[slot])] = d.renderIndex(PartOfSpeech(slot), p)
	}

	files[senseFile] = d.renderSenseIndex(p)
	for slot := range numSlots {
		if len(d.exceptions[slot]) > 0 {
			files[exceptionFile(indexed[slot])] = renderExceptions(d.exceptions[slot])
		}
	}
	if len(d.lexNames) > 0 {
		var b bytes.Buffer
		for i, ln := range d.lexNames {
			if ln.name == "" {
				continue
			}
			fmt.Fprintf(&b, "%02d\t%s\t%d\n", i, ln.name, ln.pos)
		}
		files[lexNamesFile] = b.Bytes()
	}
	if len(d.frames) > 0 {
		ids := make([]int, 0, len(d.frames))
		for id := range d.frames {
			ids = append(ids, id)
		}
		sort.Ints(ids)
		var b bytes.Buffer
		for _, id := range ids {
			fmt.Fprintf(&b, "%d %s\n", id, d.frames[id])
		}
		files[framesFile] = b.Bytes()
	}
	return files, p, nil
}

// plan measures every synset, picks the shared offset width and assigns
// offsets breadth-first from each lemma root in alphabetical order.
func (d *Dictionary) plan() *writePlan {
	n := len(d.synsets)
	p := &writePlan{
		known:   roaring.New(),
		ptrs:    make([][]Pointer, n),
		base:    make([]int, n),
		offsets: make([]int, n),
	}
	for _, e := range d.index {
		for slot := range numSlots {
			for _, id := range e[slot] {
				if d.SynsetByID(id) != nil {
					p.known.Add(uint32(id))
				}
			}
		}
	}

	var required, fields [numSlots]int
	it := p.known.Iterator()
	for it.HasNext() {
		id := SynsetID(it.Next())
		s := d.synsets[id]
		for _, ptr := range s.pointers {
			if p.known.Contains(uint32(ptr.Target)) {
				p.ptrs[id] = append(p.ptrs[id], ptr)
			}
		}
		p.base[id] = len(d.renderSynset(s, p.ptrs[id], 0, nil))
		slot := s.POS.slot()
		required[slot] += p.base[id]
		fields[slot] += len(p.ptrs[id]) + 1
	}
	p.width = 1
	for slot := range numSlots {
		if w := offsetWidth(required[slot], fields[slot]); w > p.width {
			p.width = w
		}
	}

	visited := roaring.New()
	var running [numSlots]int
	assign := func(id SynsetID) {
		visited.Add(uint32(id))
		slot := d.synsets[id].POS.slot()
		p.offsets[id] = running[slot]
		running[slot] += p.base[id] + (len(p.ptrs[id])+1)*p.width
		p.order[slot] = append(p.order[slot], id)
	}
	for _, key := range d.Lemmas() {
		e := d.index[key]
		for slot := range numSlots {
			for _, root := range e[slot] {
				if !p.known.Contains(uint32(root)) || visited.Contains(uint32(root)) {
					continue
				}
				assign(root)
				queue := []SynsetID{root}
				for len(queue) > 0 {
					cur := queue[0]
					queue = queue[1:]
					for _, ptr := range p.ptrs[cur] {
						if visited.Contains(uint32(ptr.Target)) {
							continue
						}
						assign(ptr.Target)
						queue = append(queue, ptr.Target)
					}
				}
			}
		}
	}
	return p
}

// offsetWidth finds the smallest digit count w such that a file of
// required bytes plus w digits for each of fields offsets stays below 10^w.
func offsetWidth(required, fields int) int {
	w := digits(required)
	for digits(required+w*fields) > w {
		w++
	}
	return w
}

func digits(n int) int {
	d := 1
	for n >= 10 {
		n /= 10
		d++
	}
	return d
}

func pow10(n int) int {
	p := 1
	for range n {
		p *= 10
	}
	return p
}

func writeOffset(b *bytes.Buffer, off, width int) {
	if width > 0 {
		fmt.Fprintf(b, "%0*d", width, off)
	}
}

// renderSynset produces one data line. A zero width leaves every offset
// field empty, which is how the line length without offsets is measured.
func (d *Dictionary) renderSynset(s *Synset, ptrs []Pointer, width int, offsets []int) []byte {
	var b bytes.Buffer
	off := func(id SynsetID) int {
		if offsets == nil {
			return 0
		}
		return offsets[id]
	}

	writeOffset(&b, off(s.ID), width)
	fmt.Fprintf(&b, " %02d %s %02x ", s.LexFileIndex, s.POS.Tag(), len(s.Lemmas))
	for _, l := range s.Lemmas {
		name := lemmaReplacer.Replace(l.Name)
		if l.Marker != "" {
			name += "(" + l.Marker + ")"
		}
		fmt.Fprintf(&b, "%s %x ", name, l.LexicalID)
	}
	fmt.Fprintf(&b, "%03d", len(ptrs))
	for _, ptr := range ptrs {
		t := d.synsets[ptr.Target]
		form := s.forms[ptr]
		b.WriteString(" ")
		b.WriteString(string(ptr.Relation))
		b.WriteString(" ")
		writeOffset(&b, off(ptr.Target), width)
		fmt.Fprintf(&b, " %s %02x%02x", t.POS.Tag(), form.Source, form.Target)
	}
	if s.POS == Verb {
		fmt.Fprintf(&b, " %02d", len(s.FrameIDs))
		for i, f := range s.FrameIDs {
			fmt.Fprintf(&b, " + %02d %02x", f, s.FrameLemmaIDs[i])
		}
	}
	b.WriteString(" | ")
	b.WriteString(renderGloss(s))
	b.WriteString("  \n")
	return b.Bytes()
}

func renderGloss(s *Synset) string {
	parts := make([]string, 0, len(s.Examples)+1)
	if s.Definition != "" {
		parts = append(parts, glossReplacer.Replace(s.Definition))
	}
	for _, ex := range s.Examples {
		parts = append(parts, `"`+glossReplacer.Replace(ex)+`"`)
	}
	return strings.Join(parts, "; ")
}

// renderIndex emits one line per lemma of the slot, in lemma order.
func (d *Dictionary) renderIndex(slot PartOfSpeech, p *writePlan) []byte {
	var b bytes.Buffer
	for _, key := range d.Lemmas() {
		var ids []SynsetID
		for _, id := range d.index[key][slot] {
			if p.known.Contains(uint32(id)) {
				ids = append(ids, id)
			}
		}
		if len(ids) == 0 {
			continue
		}
		syms := make(map[string]bool)
		for _, id := range ids {
			for _, ptr := range p.ptrs[id] {
				syms[string(ptr.Relation)] = true
			}
		}
		sorted := make([]string, 0, len(syms))
		for sym := range syms {
			sorted = append(sorted, sym)
		}
		sort.Strings(sorted)

		fmt.Fprintf(&b, "%s %s %d %d ", key, indexed[slot].Tag(), len(ids), len(sorted))
		for _, sym := range sorted {
			b.WriteString(sym)
			b.WriteString(" ")
		}
		fmt.Fprintf(&b, "%d 0", len(ids))
		for _, id := range ids {
			b.WriteString(" ")
			writeOffset(&b, p.offsets[id], p.width)
		}
		b.WriteString("  \n")
	}
	return b.Bytes()
}

// renderSenseIndex emits "key offset senseNumber 0" lines in key order.
func (d *Dictionary) renderSenseIndex(p *writePlan) []byte {
	var lines []string
	it := p.known.Iterator()
	for it.HasNext() {
		s := d.synsets[it.Next()]
		for _, key := range s.SenseKeys {
			lines = append(lines, fmt.Sprintf("%s %0*d %d 0\n",
				key, p.width, p.offsets[s.ID], d.senseNumberFor(key, s)))
		}
	}
	sort.Strings(lines)
	return []byte(strings.Join(lines, ""))
}

// senseNumberFor returns the sense number of s under the lemma named by key.
func (d *Dictionary) senseNumberFor(key string, s *Synset) int {
	lemma, _, _ := parseSenseKey(key)
	if lemma == headKey(s) {
		return s.SenseNumber
	}
	if e := d.index[lemma]; e != nil {
		for i, id := range e[s.POS.slot()] {
			if id == s.ID {
				return i + 1
			}
		}
	}
	return 0
}

func renderExceptions(m map[string][]string) []byte {
	forms := make([]string, 0, len(m))
	for f := range m {
		forms = append(forms, f)
	}
	sort.Strings(forms)
	var b bytes.Buffer
	for _, f := range forms {
		b.WriteString(f)
		for _, base := range m[f] {
			b.WriteString(" ")
			b.WriteString(base)
		}
		b.WriteString("\n")
	}
	return b.Bytes()
}

// applyOffsets commits the offsets of a successful write.
func (d *Dictionary) applyOffsets(p *writePlan) {
	for i := range d.offsets {
		d.offsets[i] = make(map[int]SynsetID)
	}
	it := p.known.Iterator()
	for it.HasNext() {
		id := SynsetID(it.Next())
		s := d.synsets[id]
		s.Offset = p.offsets[id]
		d.offsets[s.POS.slot()][s.Offset] = id
	}
}
