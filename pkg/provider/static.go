package provider

// ClassDef is one class in a declarative hierarchy definition.
type ClassDef struct {
	Name    string   `koanf:"name" json:"name" yaml:"name"`
	Parents []string `koanf:"parents" json:"parents,omitempty" yaml:"parents,omitempty"`
	Methods []string `koanf:"methods" json:"methods,omitempty" yaml:"methods,omitempty"`

	// Origins maps a method name to the class or module where it is truly
	// implemented, for imported functions visible as methods.
	Origins map[string]string `koanf:"origins" json:"origins,omitempty" yaml:"origins,omitempty"`
}

// Definition is a hand-built class hierarchy, the declarative alternative
// to scanning live sources. Class and parent order is meaningful.
type Definition struct {
	Classes []ClassDef `koanf:"classes" json:"classes" yaml:"classes"`

	// Fingerprint is the content digest of the document the definition was
	// loaded from; empty for definitions built in code.
	Fingerprint string `koanf:"-" json:"-" yaml:"-"`
}

// ClassNames returns the defined class names in document order.
func (d *Definition) ClassNames() []string {
	names := make([]string, 0, len(d.Classes))
	for _, c := range d.Classes {
		names = append(names, c.Name)
	}
	return names
}

// StaticProvider serves a Definition. It is immutable after construction
// and safe for concurrent reads.
type StaticProvider struct {
	classes map[string]ClassDef
	order   []string
}

// NewStaticProvider indexes def. Later duplicate class entries are
// ignored.
func NewStaticProvider(def *Definition) *StaticProvider {
	p := &StaticProvider{classes: make(map[string]ClassDef, len(def.Classes))}
	for _, c := range def.Classes {
		if _, ok := p.classes[c.Name]; ok {
			continue
		}
		p.classes[c.Name] = c
		p.order = append(p.order, c.Name)
	}
	return p
}

// Classes returns the defined class names in document order.
func (p *StaticProvider) Classes() []string {
	return append([]string{}, p.order...)
}

// DirectParents returns the declared parents of class, ordered and
// de-duplicated. An unknown class yields nil.
func (p *StaticProvider) DirectParents(class string) []string {
	def, ok := p.classes[class]
	if !ok {
		return nil
	}
	seen := make(map[string]bool, len(def.Parents))
	var parents []string
	for _, parent := range def.Parents {
		if !seen[parent] {
			seen[parent] = true
			parents = append(parents, parent)
		}
	}
	return parents
}

// OwnMethods returns the methods declared on class in document order,
// carrying origins for re-exported functions. An unknown class yields nil.
func (p *StaticProvider) OwnMethods(class string) []Method {
	def, ok := p.classes[class]
	if !ok {
		return nil
	}
	methods := make([]Method, 0, len(def.Methods))
	for _, name := range def.Methods {
		methods = append(methods, Method{Name: name, Origin: def.Origins[name]})
	}
	return methods
}
