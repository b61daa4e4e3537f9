package pysrc

import "fmt"

// ImportRecord is a normalized import found in a source file. Module is the
// fully-qualified dotted module name (or the literal wildcard "*"); Relative
// reports whether the statement used the leading-dot form.
type ImportRecord struct {
	Module   string
	Relative bool
}

// String renders the record the way the reports print it.
func (r ImportRecord) String() string {
	if r.Relative {
		return fmt.Sprintf("(%s, relative)", r.Module)
	}

	return fmt.Sprintf("(%s, absolute)", r.Module)
}

// ParseError reports a grammar violation in an import statement. The first
// violation aborts the whole parse; there is no statement-level recovery.
type ParseError struct {
	Message string
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return e.Message
}

func parseErrorf(format string, args ...any) *ParseError {
	return &ParseError{Message: fmt.Sprintf(format, args...)}
}

// parser is a forward-only cursor over a token stream. State lives for a
// single Parse call.
type parser struct {
	tokens []Token
	index  int
	found  []ImportRecord
}

// Parse scans a token stream and returns every import statement it
// recognizes, in source order, preserving duplicates. Tokens that do not
// start an import statement are skipped as ordinary code.
func Parse(tokens []Token) ([]ImportRecord, error) {
	if len(tokens) == 0 {
		return nil, nil
	}

	p := &parser{tokens: tokens}

	for {
		tok, ok := p.current()
		if !ok {
			break
		}

		switch tok.Kind {
		case KindImport:
			if err := p.parseImport(); err != nil {
				return nil, err
			}
		case KindFrom:
			if err := p.parseFrom(); err != nil {
				return nil, err
			}
		default:
			p.advance()
		}
	}

	return p.found, nil
}

func (p *parser) current() (Token, bool) {
	if p.index < len(p.tokens) {
		return p.tokens[p.index], true
	}

	return Token{}, false
}

func (p *parser) advance() {
	p.index++
}

func (p *parser) addImport(module string, relative bool) {
	p.found = append(p.found, ImportRecord{Module: module, Relative: relative})
}

// parseImport handles the absolute form "import a.b.c". Only the first
// dotted identifier after the keyword is captured; anything after it (for
// example the tail of "import a, b") is left for the outer scan loop.
func (p *parser) parseImport() error {
	p.advance() // skip the "import" keyword

	module, err := p.parseDottedIdentifier()
	if err != nil {
		return err
	}

	p.addImport(module, false)

	return nil
}

// parseFrom handles "from [.] a.b import x, y, *". A single optional
// leading dot marks the import relative; multiple leading dots are not part
// of the grammar. A dot-only root ("from . import x") leaves the root name
// empty, so the imported objects resolve to bare names.
func (p *parser) parseFrom() error {
	p.advance() // skip the "from" keyword

	tok, ok := p.current()
	if !ok {
		return parseErrorf("unexpected end of tokens after 'from' keyword")
	}

	relative := false
	if tok.Kind == KindDot {
		relative = true

		p.advance()
	}

	root := ""

	tok, ok = p.current()
	if ok && (tok.Kind == KindIdentifier || tok.Kind == KindStar) {
		var err error

		root, err = p.parseDottedIdentifier()
		if err != nil {
			return err
		}
	}

	if root == "" && !relative {
		return parseErrorf("module identifier should follow 'from' keyword")
	}

	tok, ok = p.current()
	if !ok {
		return parseErrorf("unexpected end of tokens in 'from' import statement")
	}

	if tok.Kind != KindImport {
		return parseErrorf("'import' keyword should follow root module name in 'from' import statement: got %q", tok.Value)
	}

	p.advance() // skip the "import" keyword

	objects, err := p.parseImportedObjects()
	if err != nil {
		return err
	}

	if len(objects) == 0 {
		return parseErrorf("poorly formed 'from' statement never imported any objects")
	}

	// A wildcard anywhere in the list means the whole root module was
	// imported; it overrides every other listed object.
	for _, obj := range objects {
		if obj == "*" {
			p.addImport(root, relative)

			return nil
		}
	}

	for _, obj := range objects {
		module := obj
		if root != "" {
			module = root + "." + obj
		}

		p.addImport(module, relative)
	}

	return nil
}

// parseDottedIdentifier parses "identifier (dot identifier)*", returning the
// joined name. A lone star token is returned verbatim as "*" without being
// consumed; the outer loop advances past it.
func (p *parser) parseDottedIdentifier() (string, error) {
	tok, ok := p.current()
	if !ok {
		return "", parseErrorf("unexpected end of tokens")
	}

	if tok.Kind == KindStar {
		return "*", nil
	}

	if tok.Kind != KindIdentifier {
		return "", parseErrorf("dotted identifier must start with an identifier token, got %q", tok.Value)
	}

	name := ""
	wantDot := false

scan:
	for {
		tok, ok = p.current()

		if wantDot {
			// Any non-dot token ends the dotted identifier.
			if !ok || tok.Kind != KindDot {
				break
			}

			name += "."
			wantDot = false
		} else {
			if !ok {
				return "", parseErrorf("unexpected end of tokens: trailing dot operator")
			}

			switch tok.Kind {
			case KindIdentifier:
				name += tok.Value
				wantDot = true
			case KindDot:
				return "", parseErrorf("invalid identifier: two consecutive dot operators present")
			default:
				break scan
			}
		}

		p.advance()
	}

	return name, nil
}

// parseImportedObjects parses a comma-separated list of dotted identifiers.
// The first entry is optional (an empty list is the caller's error to
// report); entries after a comma are mandatory.
func (p *parser) parseImportedObjects() ([]string, error) {
	var objects []string

	tok, ok := p.current()
	if !ok || (tok.Kind != KindIdentifier && tok.Kind != KindStar) {
		return nil, nil
	}

	first, err := p.parseDottedIdentifier()
	if err != nil {
		return nil, err
	}

	objects = append(objects, first)

	for {
		tok, ok = p.current()
		if !ok || tok.Kind != KindComma {
			break
		}

		p.advance() // skip the comma

		obj, err := p.parseDottedIdentifier()
		if err != nil {
			return nil, err
		}

		objects = append(objects, obj)
	}

	return objects, nil
}
