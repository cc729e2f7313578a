package migrate

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"github.com/juju/errors"
	"github.com/juju/loggo"
	"github.com/spf13/afero"

	"domain-migrator/internal/common"
	"domain-migrator/internal/diagnostic"
	"domain-migrator/internal/domain"
	"domain-migrator/internal/yamldoc"
)

var logger = loggo.GetLogger("domainmigrate.migrate")

// Names of the conventional locations next to the domain path.
const (
	BackupName       = "original_domain"
	DefaultOutputDir = "new_domain"
)

// Options selects what to migrate and where to put the result.
type Options struct {
	// DomainPath is a domain file or a directory of domain files.
	DomainPath string
	// OutPath is the output file (single file) or directory. Empty, or
	// equal to domain.DefaultDomainPath, selects the default location.
	OutPath string
}

// Result describes a completed migration.
type Result struct {
	DomainPath string
	OutPath    string
	BackupPath string
	// Written lists the output files in write order.
	Written     []string
	Diagnostics diagnostic.Diagnostics
}

// Migrator runs migrations against a filesystem.
type Migrator struct {
	Fs afero.Fs
}

// New returns a Migrator working on fs.
func New(fs afero.Fs) *Migrator {
	return &Migrator{Fs: fs}
}

// Run migrates opts.DomainPath. Precondition failures are returned before
// anything is written. A failure after that point removes the backup and
// every output of this run before the error is returned.
func (m *Migrator) Run(opts Options) (*Result, error) {
	p, err := m.preflight(opts)
	if err != nil {
		return nil, errors.Trace(err)
	}

	r := &run{
		fs:   m.Fs,
		plan: p,
		result: &Result{
			DomainPath: p.domainPath,
			OutPath:    p.outPath,
			BackupPath: p.backupPath,
		},
	}

	err = r.execute()
	if err != nil {
		r.rollback()

		return nil, errors.Trace(err)
	}

	r.result.Written = r.written
	logger.Infof("migrated %s to %s (backup at %s)", p.domainPath, p.outPath, p.backupPath)

	return r.result, nil
}

// source is one input document.
type source struct {
	name string
	path string
	raw  []byte
	doc  *yamldoc.Map
}

type plan struct {
	domainPath string
	dirMode    bool
	backupPath string
	outPath    string
	sources    []source
}

func (m *Migrator) preflight(opts Options) (*plan, error) {
	if opts.DomainPath == "" {
		return nil, preconditionf("no domain path given")
	}

	domainPath := filepath.Clean(opts.DomainPath)

	info, err := m.Fs.Stat(domainPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, preconditionf("domain path %s does not exist", domainPath)
		}

		return nil, ioFailure(err, "inspecting %s", domainPath)
	}

	p := &plan{domainPath: domainPath, dirMode: info.IsDir()}
	parent := filepath.Dir(domainPath)

	p.backupPath = filepath.Join(parent, BackupName)
	if !p.dirMode {
		p.backupPath += ".yml"
	}

	exists, err := afero.Exists(m.Fs, p.backupPath)
	if err != nil {
		return nil, ioFailure(err, "inspecting %s", p.backupPath)
	}

	if exists {
		return nil, preconditionf("backup location %s already exists, remove it and try again", p.backupPath)
	}

	p.outPath = resolveOutPath(opts.OutPath, parent, p.dirMode)

	if p.dirMode {
		err = m.checkOutputDir(p)
	} else {
		err = m.checkOutputFile(p)
	}

	if err != nil {
		return nil, errors.Trace(err)
	}

	err = m.loadSources(p)
	if err != nil {
		return nil, errors.Trace(err)
	}

	err = checkSources(p)
	if err != nil {
		return nil, errors.Trace(err)
	}

	return p, nil
}

func resolveOutPath(out, parent string, dirMode bool) string {
	if out != "" && out != domain.DefaultDomainPath {
		return filepath.Clean(out)
	}

	if dirMode {
		return filepath.Join(parent, DefaultOutputDir)
	}

	return filepath.Join(parent, domain.DefaultDomainPath)
}

func (m *Migrator) checkOutputFile(p *plan) error {
	if p.outPath == p.backupPath {
		return preconditionf("output %s is the backup location", p.outPath)
	}

	exists, err := afero.Exists(m.Fs, p.outPath)
	if err != nil {
		return ioFailure(err, "inspecting %s", p.outPath)
	}

	if exists {
		return preconditionf("output %s already exists, remove it or choose another output path", p.outPath)
	}

	dir := filepath.Dir(p.outPath)

	isDir, err := afero.IsDir(m.Fs, dir)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return ioFailure(err, "inspecting %s", dir)
	}

	if !isDir {
		return preconditionf("output directory %s does not exist", dir)
	}

	return nil
}

func (m *Migrator) checkOutputDir(p *plan) error {
	if within(p.outPath, p.backupPath) {
		return preconditionf("output directory %s is inside the backup location %s", p.outPath, p.backupPath)
	}

	info, err := m.Fs.Stat(p.outPath)
	if errors.Is(err, os.ErrNotExist) {
		// Only the output directory itself is created.
		parent := filepath.Dir(p.outPath)

		isDir, err := afero.IsDir(m.Fs, parent)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return ioFailure(err, "inspecting %s", parent)
		}

		if !isDir {
			return preconditionf("parent directory %s of output %s does not exist", parent, p.outPath)
		}

		return nil
	}

	if err != nil {
		return ioFailure(err, "inspecting %s", p.outPath)
	}

	if !info.IsDir() {
		return preconditionf("output %s is a file, a directory is required", p.outPath)
	}

	empty, err := afero.IsEmpty(m.Fs, p.outPath)
	if err != nil {
		return ioFailure(err, "inspecting %s", p.outPath)
	}

	if !empty {
		return preconditionf("output directory %s is not empty, remove it and try again", p.outPath)
	}

	return nil
}

// within reports whether path is dir or lies below it.
func within(path, dir string) bool {
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return false
	}

	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}

// loadSources finds the input documents and reads them. Directory entries
// are taken in name order; subdirectories are not searched.
func (m *Migrator) loadSources(p *plan) error {
	if !p.dirMode {
		if !domain.IsYAMLFile(p.domainPath) {
			return preconditionf("%s is not a YAML file, only domain YAML files can be migrated", p.domainPath)
		}

		src, ok, err := m.loadSource(p.domainPath)
		if err != nil {
			return errors.Trace(err)
		}

		if !ok {
			return preconditionf("%s is not a domain file, only domain YAML files can be migrated", p.domainPath)
		}

		p.sources = []source{src}

		return nil
	}

	entries, err := afero.ReadDir(m.Fs, p.domainPath)
	if err != nil {
		return ioFailure(err, "listing %s", p.domainPath)
	}

	for _, entry := range entries {
		path := filepath.Join(p.domainPath, entry.Name())
		if entry.IsDir() || !domain.IsYAMLFile(path) {
			logger.Debugf("ignoring %s", path)
			continue
		}

		src, ok, err := m.loadSource(path)
		if err != nil {
			return errors.Trace(err)
		}

		if !ok {
			logger.Debugf("ignoring %s, it declares no domain section", path)
			continue
		}

		p.sources = append(p.sources, src)
	}

	if common.IsEmpty(p.sources) {
		return preconditionf("directory %s does not contain any domain files", p.domainPath)
	}

	return nil
}

// loadSource reads and parses one YAML file. A file that parses but is not
// a mapping or declares no domain section is reported with ok false; a file
// that does not parse is an error.
func (m *Migrator) loadSource(path string) (source, bool, error) {
	raw, err := afero.ReadFile(m.Fs, path)
	if err != nil {
		return source{}, false, ioFailure(err, "reading %s", path)
	}

	doc, err := yamldoc.Parse(raw)
	if errors.Is(err, yamldoc.ErrNotMapping) {
		return source{}, false, nil
	}

	if err != nil {
		return source{}, false, parseFailure(err, "%s", path)
	}

	if !domain.IsDomain(doc) {
		return source{}, false, nil
	}

	if version, ok := domain.Version(doc); ok {
		logger.Debugf("%s declares version %s", path, version)
	}

	return source{
		name: filepath.Base(path),
		path: path,
		raw:  raw,
		doc:  doc,
	}, true, nil
}

func checkSources(p *plan) error {
	var migrated, withSlots, withForms []string

	for _, src := range p.sources {
		if domain.IsMigrated(src.doc) {
			migrated = append(migrated, src.path)
		}

		if src.doc.Has(domain.KeySlots) {
			withSlots = append(withSlots, src.path)
		}

		if src.doc.Has(domain.KeyForms) {
			withForms = append(withForms, src.path)
		}
	}

	if !common.IsEmpty(migrated) {
		return preconditionf("already in %s format: %s", domain.TargetVersion, strings.Join(migrated, ", "))
	}

	if !p.dirMode {
		return nil
	}

	if common.IsMultiple(withSlots) {
		return preconditionf("multiple %q sections in %s, group them in one file", domain.KeySlots, strings.Join(withSlots, ", "))
	}

	if common.IsMultiple(withForms) {
		return preconditionf("multiple %q sections in %s, group them in one file", domain.KeyForms, strings.Join(withForms, ", "))
	}

	if common.IsEmpty(withSlots) && common.IsEmpty(withForms) {
		return preconditionf("no file in %s declares %q or %q", p.domainPath, domain.KeySlots, domain.KeyForms)
	}

	return nil
}

// run holds the side effects of one migration so they can be undone.
type run struct {
	fs     afero.Fs
	plan   *plan
	result *Result

	backupCreated bool
	outDirCreated bool
	written       []string
}

type output struct {
	path string
	doc  *yamldoc.Map
}

func (r *run) execute() error {
	err := r.backup()
	if err != nil {
		return errors.Trace(err)
	}

	outputs, err := r.transform()
	if err != nil {
		return errors.Trace(err)
	}

	return errors.Trace(r.write(outputs))
}

// backup copies every source unchanged to the backup location.
func (r *run) backup() error {
	p := r.plan

	if !p.dirMode {
		r.backupCreated = true

		err := afero.WriteFile(r.fs, p.backupPath, p.sources[0].raw, 0o644)
		if err != nil {
			return ioFailure(err, "writing backup %s", p.backupPath)
		}

		logger.Debugf("backed up %s to %s", p.domainPath, p.backupPath)

		return nil
	}

	r.backupCreated = true

	err := r.fs.Mkdir(p.backupPath, 0o755)
	if err != nil {
		return ioFailure(err, "creating backup directory %s", p.backupPath)
	}

	for _, src := range p.sources {
		target := filepath.Join(p.backupPath, src.name)

		err = afero.WriteFile(r.fs, target, src.raw, 0o644)
		if err != nil {
			return ioFailure(err, "writing backup %s", target)
		}

		logger.Debugf("backed up %s to %s", src.path, target)
	}

	return nil
}

func (r *run) transform() ([]output, error) {
	p := r.plan

	legacy, err := consolidate(p.sources)
	if err != nil {
		return nil, errors.Trace(err)
	}

	if logger.IsTraceEnabled() {
		logger.Tracef("consolidated legacy domain:\n%s", spew.Sdump(legacy))
	}

	forms, slots, err := Restructure(legacy)
	if err != nil {
		return nil, parseFailure(err, "restructuring forms of %s", p.domainPath)
	}

	slots, diags, err := Normalize(legacy, slots)
	r.result.Diagnostics.Merge(diags)

	if err != nil {
		return nil, parseFailure(err, "normalizing slots of %s", p.domainPath)
	}

	outputs := make([]output, 0, len(p.sources))

	for _, src := range p.sources {
		target := p.outPath
		if p.dirMode {
			target = filepath.Join(p.outPath, src.name)
		}

		doc := BumpVersion(src.doc)
		if domain.HasSlotsOrForms(src.doc) {
			doc = Assemble(src.doc, forms, slots)
		}

		outputs = append(outputs, output{path: target, doc: doc})
	}

	return outputs, nil
}

// consolidate gathers slots, forms and entities of all sources into one
// legacy document.
func consolidate(sources []source) (*yamldoc.Map, error) {
	slots := yamldoc.NewMap()
	forms := yamldoc.NewMap()
	entities := []any{}

	for _, src := range sources {
		s, err := domain.Section(src.doc, domain.KeySlots)
		if err != nil {
			return nil, parseFailure(err, "%s", src.path)
		}

		f, err := domain.Section(src.doc, domain.KeyForms)
		if err != nil {
			return nil, parseFailure(err, "%s", src.path)
		}

		e, err := domain.RawEntities(src.doc)
		if err != nil {
			return nil, parseFailure(err, "%s", src.path)
		}

		s.Each(func(k string, v any) { slots.Set(k, yamldoc.CloneValue(v)) })
		f.Each(func(k string, v any) { forms.Set(k, yamldoc.CloneValue(v)) })
		for _, entity := range e {
			entities = append(entities, yamldoc.CloneValue(entity))
		}
	}

	return yamldoc.MapOf(
		domain.KeySlots, slots,
		domain.KeyForms, forms,
		domain.KeyEntities, entities,
	), nil
}

func (r *run) write(outputs []output) error {
	p := r.plan

	if p.dirMode {
		exists, err := afero.DirExists(r.fs, p.outPath)
		if err != nil {
			return ioFailure(err, "inspecting %s", p.outPath)
		}

		if !exists {
			r.outDirCreated = true

			err = r.fs.Mkdir(p.outPath, 0o755)
			if err != nil {
				return ioFailure(err, "creating output directory %s", p.outPath)
			}

			r.result.Diagnostics.AddInfo(
				CodeOutputDirectoryCreated,
				"The output directory did not exist yet and was created.",
				p.outPath,
				"",
			)
		}
	}

	for _, out := range outputs {
		r.written = append(r.written, out.path)

		err := yamldoc.WriteFile(r.fs, out.path, out.doc)
		if err != nil {
			return ioFailure(err, "writing %s", out.path)
		}

		logger.Debugf("wrote %s", out.path)
	}

	return nil
}

// rollback removes everything this run created. Failures are logged so
// that the error which triggered the rollback is the one returned.
func (r *run) rollback() {
	p := r.plan

	for _, d := range r.result.Diagnostics.Warnings {
		logger.Warningf("%s", d)
	}

	if r.backupCreated {
		err := r.fs.RemoveAll(p.backupPath)
		if err != nil {
			logger.Errorf("removing backup %s: %v", p.backupPath, err)
		}
	}

	if r.outDirCreated {
		err := r.fs.RemoveAll(p.outPath)
		if err != nil {
			logger.Errorf("removing output directory %s: %v", p.outPath, err)
		}

		return
	}

	for _, path := range r.written {
		err := r.fs.Remove(path)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			logger.Errorf("removing %s: %v", path, err)
		}
	}
}
