package fixture

import (
	"log/slog"
	"reflect"
	"strconv"

	"github.com/goliatone/go-autofixture/pkg/random"
	"github.com/goliatone/go-autofixture/pkg/spec"
)

// Builder materializes templates into records.
type Builder struct {
	opts Options
}

// New creates a Builder with the supplied options. A nil Generator falls back
// to the package default of pkg/random at call time.
func New(options Options) *Builder {
	opts := defaultOptions()
	opts.Generator = options.Generator
	if options.Logger != nil {
		opts.Logger = options.Logger
	}
	return &Builder{opts: opts}
}

func (b *Builder) generator() *random.Generator {
	if b.opts.Generator != nil {
		return b.opts.Generator
	}
	return random.Default()
}

// Create generates one record shaped like template. The template is only
// read. Spec keys missing from the template fail before any value is drawn.
func (b *Builder) Create(template any, specs spec.Map) (*Record, error) {
	value, zeroed := deref(reflect.ValueOf(template))
	if !value.IsValid() || !isObject(value) {
		typ := "nil"
		if value.IsValid() {
			typ = value.Kind().String()
		}
		return nil, unsupportedTypeError("", typ)
	}
	normalized, err := spec.NormalizeMap(specs)
	if err != nil {
		return nil, err
	}
	var w walk
	if zeroed {
		w, _ = w.enter(value.Type())
	}
	return b.createObject("", value, normalized, w)
}

// walk carries the element types of the nil pointers being expanded on the
// current path. A type met again is left out, which ends self-referencing
// types after one level.
type walk struct {
	expanding []reflect.Type
}

func (w walk) zeroed() bool { return len(w.expanding) > 0 }

func (w walk) enter(typ reflect.Type) (walk, bool) {
	for _, t := range w.expanding {
		if t == typ {
			return w, false
		}
	}
	return walk{expanding: append(w.expanding[:len(w.expanding):len(w.expanding)], typ)}, true
}

// CreateMany generates count independent records. A count of zero uses
// ElementCount; a negative count returns an empty slice without reading the
// template.
func (b *Builder) CreateMany(template any, count int, specs spec.Map) ([]*Record, error) {
	switch {
	case count == 0:
		count = ElementCount
	case count < 0:
		return []*Record{}, nil
	}
	records := make([]*Record, 0, count)
	for i := 0; i < count; i++ {
		record, err := b.Create(template, specs)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, nil
}

func (b *Builder) createObject(path string, value reflect.Value, specs spec.Map, w walk) (*Record, error) {
	fields := fieldsOf(value)
	if err := checkSpecKeys(path, fields, specs); err != nil {
		return nil, err
	}

	record := NewRecord()
	for _, f := range fields {
		fieldPath := joinPath(path, f.Name)
		entry, explicit := specs.Lookup(f.Name)
		if err := b.materializeField(record, fieldPath, f, entry, explicit, w); err != nil {
			return nil, withPath(err, fieldPath)
		}
	}
	return record, nil
}

func (b *Builder) materializeField(record *Record, path string, f field, entry any, explicit bool, w walk) error {
	// Zero values from nil pointers carry no samples for interfaces or arrays.
	if w.zeroed() && !hasShape(f.Value) {
		b.opts.Logger.Debug("leaving out field without a sample", slog.String("path", path))
		return nil
	}

	class, err := classify(f.Name, f.Value)
	if err != nil {
		return err
	}

	if explicit && spec.IsSkip(entry) {
		b.opts.Logger.Debug("skipping field", slog.String("path", path))
		return nil
	}

	switch class.Class {
	case ClassObject:
		nested, err := nestedSpecs(entry, explicit)
		if err != nil {
			return specError(f.Name, err)
		}
		next, ok := b.expand(w, class, class.Value.Type(), path)
		if !ok {
			return nil
		}
		child, err := b.createObject(path, class.Value, nested, next)
		if err != nil {
			return err
		}
		record.Set(f.Name, child)

	case ClassArrayOfObjects:
		nested, err := nestedSpecs(entry, explicit)
		if err != nil {
			return specError(f.Name, err)
		}
		next, ok := b.expand(w, class, class.Sample.Type(), path)
		if !ok {
			return nil
		}
		b.opts.Logger.Debug("expanding array of objects", slog.String("path", path), slog.Int("count", ElementCount))
		items := make([]any, 0, ElementCount)
		for i := 0; i < ElementCount; i++ {
			child, err := b.createObject(path+"["+strconv.Itoa(i)+"]", class.Sample, nested, next)
			if err != nil {
				return err
			}
			items = append(items, child)
		}
		record.Set(f.Name, items)

	case ClassArrayOfPrimitives:
		if !explicit {
			entry = class.defaultSpec()
		}
		c, err := resolve(entry)
		if err != nil {
			return specError(f.Name, err)
		}
		if c, err = fitInteger(class, spec.Describe(entry), c); err != nil {
			return specError(f.Name, err)
		}
		b.opts.Logger.Debug("expanding array of primitives", slog.String("path", path), slog.String("spec", c.String()))
		items := make([]any, 0, ElementCount)
		for i := 0; i < ElementCount; i++ {
			items = append(items, b.value(c))
		}
		record.Set(f.Name, items)

	default:
		value, err := b.scalar(f.Name, class, entry, explicit)
		if err != nil {
			return err
		}
		record.Set(f.Name, value)
	}
	return nil
}

func (b *Builder) scalar(name string, class classification, entry any, explicit bool) (any, error) {
	if !explicit {
		if class.Class == ClassUnsupported {
			return nil, unsupportedTypeError(name, class.Type)
		}
		entry = class.defaultSpec()
	} else if err := checkEntry(class.Type, entry); err != nil {
		return nil, specError(name, err)
	}

	c, err := resolve(entry)
	if err != nil {
		return nil, specError(name, err)
	}
	if c, err = fitInteger(class, spec.Describe(entry), c); err != nil {
		return nil, specError(name, err)
	}
	return b.value(c), nil
}

// expand returns the walk for an object that may stand in for a nil pointer.
// ok is false when typ is already being expanded on this path.
func (b *Builder) expand(w walk, class classification, typ reflect.Type, path string) (walk, bool) {
	if !class.Zeroed {
		return w, true
	}
	next, ok := w.enter(typ)
	if !ok {
		b.opts.Logger.Debug("leaving out recursive nil pointer", slog.String("path", path), slog.String("type", typ.String()))
	}
	return next, ok
}

func (b *Builder) value(c spec.Constraint) any {
	return generate(b.generator(), c)
}

func nestedSpecs(entry any, explicit bool) (spec.Map, error) {
	if !explicit || entry == nil {
		return nil, nil
	}
	nested, ok := spec.AsMap(entry)
	if !ok {
		return nil, spec.IncompatibleError(spec.Describe(entry), spec.TypeObject)
	}
	return nested, nil
}

func checkSpecKeys(path string, fields []field, specs spec.Map) error {
	if len(specs) == 0 {
		return nil
	}
	known := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		known[f.Name] = struct{}{}
	}
	for _, name := range specs.Keys() {
		if _, ok := known[name]; !ok {
			err := unknownFieldError(name)
			err.Path = joinPath(path, name)
			return err
		}
	}
	return nil
}

func joinPath(parent, name string) string {
	if parent == "" {
		return name
	}
	return parent + "." + name
}
