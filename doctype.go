package pagecraft

import "fmt"

// Doctype selects the document type declaration the renderer emits.
// DoctypeHTML5 is the default; the legacy variants exist for hosts that
// still serve HTML4/XHTML documents.
type Doctype int

const (
	DoctypeHTML5 Doctype = iota
	DoctypeHTML4Strict
	DoctypeHTML4Transitional
	DoctypeXHTML1Strict
	DoctypeXHTML1Transitional
)

var doctypeDeclarations = map[Doctype]string{
	DoctypeHTML5:              `<!DOCTYPE html>`,
	DoctypeHTML4Strict:        `<!DOCTYPE HTML PUBLIC "-//W3C//DTD HTML 4.01//EN" "http://www.w3.org/TR/html4/strict.dtd">`,
	DoctypeHTML4Transitional:  `<!DOCTYPE HTML PUBLIC "-//W3C//DTD HTML 4.01 Transitional//EN" "http://www.w3.org/TR/html4/loose.dtd">`,
	DoctypeXHTML1Strict:       `<!DOCTYPE html PUBLIC "-//W3C//DTD XHTML 1.0 Strict//EN" "http://www.w3.org/TR/xhtml1/DTD/xhtml1-strict.dtd">`,
	DoctypeXHTML1Transitional: `<!DOCTYPE html PUBLIC "-//W3C//DTD XHTML 1.0 Transitional//EN" "http://www.w3.org/TR/xhtml1/DTD/xhtml1-transitional.dtd">`,
}

var doctypeNames = map[string]Doctype{
	"html5":               DoctypeHTML5,
	"html4-strict":        DoctypeHTML4Strict,
	"html4-transitional":  DoctypeHTML4Transitional,
	"xhtml1-strict":       DoctypeXHTML1Strict,
	"xhtml1-transitional": DoctypeXHTML1Transitional,
}

// ParseDoctype maps a configuration name ("html5", "xhtml1-strict", ...) to
// its Doctype. An empty name selects DoctypeHTML5.
func ParseDoctype(name string) (Doctype, error) {
	if name == "" {
		return DoctypeHTML5, nil
	}
	d, ok := doctypeNames[name]
	if !ok {
		return DoctypeHTML5, fmt.Errorf("pagecraft: unknown doctype %q", name)
	}
	return d, nil
}

func (d Doctype) String() string {
	for name, dt := range doctypeNames {
		if dt == d {
			return name
		}
	}
	return "html5"
}

func (d Doctype) declaration() string {
	if decl, ok := doctypeDeclarations[d]; ok {
		return decl
	}
	return doctypeDeclarations[DoctypeHTML5]
}

// xml reports whether void elements must be self-closed and <html> carries
// the XHTML namespace.
func (d Doctype) xml() bool {
	return d == DoctypeXHTML1Strict || d == DoctypeXHTML1Transitional
}
