package names

// Predefined holds names every compilation needs.
type Predefined struct {
	Empty            Name
	Init             Name // <init>
	Clinit           Name // <clinit>
	This             Name
	Super            Name
	Value            Name
	Length           Name
	Module           Name
	PackageInfo      Name
	ModuleInfo       Name
	SerialVersionUID Name
	JavaLang         Name
	JavaLangObject   Name
	Deprecated       Name
	SuppressWarnings Name
	Asterisk         Name
	Dot              Name
	Slash            Name
}

// Порядок важен: снапшоты полагаются на стабильные индексы.
func newPredefined(t *Table) *Predefined {
	return &Predefined{
		Empty:            t.Empty(),
		Init:             t.InternString("<init>"),
		Clinit:           t.InternString("<clinit>"),
		This:             t.InternString("this"),
		Super:            t.InternString("super"),
		Value:            t.InternString("value"),
		Length:           t.InternString("length"),
		Module:           t.InternString("module"),
		PackageInfo:      t.InternString("package-info"),
		ModuleInfo:       t.InternString("module-info"),
		SerialVersionUID: t.InternString("serialVersionUID"),
		JavaLang:         t.InternString("java.lang"),
		JavaLangObject:   t.InternString("java.lang.Object"),
		Deprecated:       t.InternString("Deprecated"),
		SuppressWarnings: t.InternString("SuppressWarnings"),
		Asterisk:         t.InternString("*"),
		Dot:              t.InternString("."),
		Slash:            t.InternString("/"),
	}
}

// FirstUser is the index of the first name interned after construction.
func (p *Predefined) FirstUser() uint32 {
	return p.Slash.Index() + 1
}
